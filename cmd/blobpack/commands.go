package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newPackCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pack <dir>",
		Short: "Pack every file below <dir> into a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd)
			if err != nil {
				return err
			}
			st, err := p.PackDir(args[0], out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Packed %d files (%d bytes) into %s\n", st.Files, st.BodyBytes, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "bundle.blob", "output file")
	return cmd
}

func newUnpackCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "Extract the files of a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd)
			if err != nil {
				return err
			}
			n, err := p.UnpackFile(args[0], outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d files into %s\n", n, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the frame layout of a bundle as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd)
			if err != nil {
				return err
			}
			s, err := p.Inspect(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Repack <dir> whenever its contents change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return p.Watch(ctx, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "bundle.blob", "output file")
	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "delay before repacking after a change")
	return cmd
}
