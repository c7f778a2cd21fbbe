package packer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch packs root into out, then repacks whenever a file below root is
// written, created, removed or renamed. Bursts of events within the configured
// debounce window cause a single repack. Watch returns when ctx is done.
func (p *Packer) Watch(ctx context.Context, root, out string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if _, err := p.PackDir(root, out); err != nil {
		return err
	}

	// The timer only signals. Packing happens on this goroutine, so no pack is
	// in flight once Watch returns.
	fire := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	outAbs := absPath(out)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if absPath(event.Name) == outAbs || isTempFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need their own watch.
				if err := addTree(watcher, event.Name); err != nil {
					p.log.Debug().Err(err).Str("path", event.Name).Msg("watch new path")
				}
			}
			p.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(p.cfg.Debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if _, err := p.PackDir(root, out); err != nil {
				p.log.Error().Err(err).Str("root", root).Msg("repack failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// addTree registers root and every directory below it with w.
// A regular file at root is ignored.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}
