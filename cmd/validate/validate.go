/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for mapio.
package validate

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/mapio/config"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/parser"
	"bennypowers.dev/mapio/validator"
)

// ErrInvalid is returned when at least one file failed to validate.
var ErrInvalid = errors.New("validation failed")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate map files",
	Long: `Parse map files and check the invariants a well-formed map keeps:
unique layer and object ids, resolvable tile ids, non-overlapping tilesets
and known component types. Arguments may be globs. With no arguments the
files listed in .config/mapio.yaml are validated.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

// Result is the outcome of validating one map file.
type Result struct {
	Path string
	// Err is the parse failure, if any. Problems is empty when set.
	Err      error
	Problems []validator.ValidationError
}

// OK reports whether the file parsed and broke no invariant.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Problems) == 0
}

// Check parses path and validates the resulting map.
func Check(filesystem fs.FileSystem, path string) Result {
	m, err := parser.Parse(filesystem, path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Problems: validator.Validate(m)}
}

// Report writes the failures of r, one per line.
func Report(w io.Writer, r Result) {
	if r.Err != nil {
		code := parser.CodeOf(r.Err)
		fmt.Fprintf(w, "%s: %s (%s)\n", r.Path, code, code.Cause())
		var pe *parser.Error
		if errors.As(r.Err, &pe) {
			if pe.Path != "" && pe.Path != r.Path {
				fmt.Fprintf(w, "  in %s\n", pe.Path)
			}
			if pe.Err != nil {
				fmt.Fprintf(w, "  %v\n", pe.Err)
			}
		} else {
			fmt.Fprintf(w, "  %v\n", r.Err)
		}
		return
	}
	for i := range r.Problems {
		fmt.Fprintf(w, "%s\n", r.Problems[i].Error())
	}
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	filesystem := fs.NewOSFileSystem()

	var files []string
	if len(args) == 0 {
		cfg := config.LoadOrDefault(filesystem, root)
		files, err = cfg.ExpandFiles(filesystem, root)
	} else {
		files, err = config.ExpandPaths(filesystem, root, args)
	}
	if err != nil {
		return fmt.Errorf("error expanding files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	hasErrors := false
	for _, file := range files {
		if !quiet {
			fmt.Fprintf(out, "Validating %s...\n", file)
		}
		result := Check(filesystem, file)
		if !result.OK() {
			hasErrors = true
			Report(errOut, result)
		}
	}

	if hasErrors {
		return ErrInvalid
	}
	if !quiet {
		fmt.Fprintln(out, "All files valid.")
	}
	return nil
}
