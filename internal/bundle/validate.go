package bundle

import (
	"fmt"
	"path"
	"strings"
)

func validateFiles(files []File) error {
	seen := make(map[string]struct{}, len(files))
	for i, f := range files {
		if err := validateContainerPath(f.Path); err != nil {
			return fmt.Errorf("%w: file %d path: %v", ErrValidation, i, err)
		}
		if _, ok := seen[f.Path]; ok {
			return fmt.Errorf("%w: duplicate path %q", ErrValidation, f.Path)
		}
		seen[f.Path] = struct{}{}
	}
	return nil
}

func validateContainerPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must not be absolute")
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("path must use forward slashes")
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("path must be normalized: %q", clean)
	}
	if clean == "." {
		return fmt.Errorf("path must not be current directory")
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path must not escape")
	}
	return nil
}
