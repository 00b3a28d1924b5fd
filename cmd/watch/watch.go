/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides the watch command for mapio.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mapio/cmd/convert"
	"bennypowers.dev/mapio/cmd/validate"
	"bennypowers.dev/mapio/config"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/load"
)

// Cmd is the watch cobra command.
var Cmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-convert or re-validate maps when they change",
	Long: `Watch directories for changes to map files. With --format each changed
map is converted to that format; without it each changed map is validated.
Files already in the target format are ignored. Defaults to the current
directory. Stop with Ctrl-C.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "", "Target format: "+strings.Join(format.ValidFormats(), ", "))
	Cmd.Flags().Duration("debounce", DefaultDebounce, "Quiet period before a changed file is processed")
}

// Handler processes one changed map file.
type Handler struct {
	FS     fs.FileSystem
	Root   string
	Target format.Format
	Load   load.Options
	Out    io.Writer
	ErrOut io.Writer
}

// Accept reports whether a change to path should be handled. Outputs of
// the conversion itself are skipped to avoid feedback loops.
func (h *Handler) Accept(path string) bool {
	f := format.FromPath(path)
	if f == format.Unsupported {
		return false
	}
	return h.Target == format.Unsupported || f != h.Target
}

// Handle converts or validates path. Failures are reported, not returned,
// so one broken map does not stop the watch.
func (h *Handler) Handle(ctx context.Context, path string) {
	if h.Target == format.Unsupported {
		result := validate.Check(h.FS, path)
		if result.OK() {
			fmt.Fprintf(h.Out, "%s is valid\n", path)
			return
		}
		validate.Report(h.ErrOut, result)
		return
	}

	out, err := load.Convert(ctx, path, h.Load)
	if err != nil {
		fmt.Fprintf(h.ErrOut, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(h.Out, "Wrote %s\n", out)
}

func run(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, root)

	target := format.Unsupported
	if formatFlag != "" {
		if target, err = format.FromString(formatFlag); err != nil {
			return err
		}
	}
	// Emit flags are shared with convert through viper.
	_, emit, err := convert.Options(viper.GetViper(), cfg)
	if err != nil {
		return err
	}

	h := &Handler{
		FS:     filesystem,
		Root:   root,
		Target: target,
		Load:   load.Options{Root: root, FS: filesystem, Format: target, Emit: &emit},
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{root}
	}
	w, err := NewWatcher(debounce, h.Accept, dirs...)
	if err != nil {
		return fmt.Errorf("error watching %s: %w", strings.Join(dirs, ", "), err)
	}
	defer w.Close()

	logger.Info("watching %s", strings.Join(dirs, ", "))
	return Loop(cmd.Context(), w, h)
}

// Loop handles events from w until ctx is done or w is closed.
func Loop(ctx context.Context, w *Watcher, h *Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Debug("changed: %s", path)
			h.Handle(ctx, path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
