package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/logicossoftware/go-blobpack/internal/cliconfig"
	"github.com/logicossoftware/go-blobpack/internal/packer"
)

var longHelp = strings.TrimSpace(`
Bundle a directory of assets into a single blob and split it apart again.

A blob is a sequence of frames, each a 4-byte cumulative end offset followed
by the frame body. Frame 0 of a bundle names the files stored in the rest.
Stored bundles may be compressed with zip, zstd, lz4 or brotli.
`)

var exampleUsage = strings.TrimSpace(`
  blobpack pack ./assets -o assets.blob.zst
  blobpack inspect assets.blob.zst
  blobpack unpack assets.blob.zst -o ./out
  blobpack watch ./assets -o assets.blob --debounce 250ms
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type app struct {
	cfg     cliconfig.Config
	cfgPath string
}

// load merges file, environment and flag configuration. Flags set on the
// command line win, then BLOBPACK_* variables, then the config file.
func (a *app) load(cmd *cobra.Command) (*packer.Packer, error) {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return nil, err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return nil, err
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cliconfig.SetLogLevel(a.cfg.LogLevel); err != nil {
		return nil, err
	}

	log := cliconfig.Logger()
	log.Debug().Interface("config", a.cfg).Msg("configuration")
	return packer.New(a.cfg, log), nil
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "blobpack",
		Short:         "Pack byte buffers into one blob and split them apart again",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $HOME/.blobpack/config.toml)")
	pf.StringVar(&a.cfg.Compression, "compression", a.cfg.Compression, "stored file codec: none, zip, zstd, lz4, br (none infers from extension)")
	pf.StringVar(&a.cfg.ByteOrder, "byte-order", a.cfg.ByteOrder, "frame header byte order: native, little, big")
	pf.IntVar(&a.cfg.MaxFrames, "max-frames", a.cfg.MaxFrames, "reject blobs with more frames (0 = unlimited)")
	pf.IntVar(&a.cfg.MaxUncompressed, "max-uncompressed", a.cfg.MaxUncompressed, "reject stored files that expand beyond this many bytes")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		newPackCmd(a),
		newUnpackCmd(a),
		newInspectCmd(a),
		newWatchCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := cliconfig.Logger()
		log.Error().Err(err).Msg("blobpack failed")
		os.Exit(1)
	}
}
