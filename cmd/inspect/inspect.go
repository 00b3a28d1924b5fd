/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package inspect provides the inspect command for mapio.
package inspect

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/mapio/cmd/render"
	"bennypowers.dev/mapio/ir"
	"bennypowers.dev/mapio/load"
)

// Cmd is the inspect cobra command.
var Cmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a map file",
	Long: `Print a summary of a map: its tilesets, the layer tree, properties and
components. Color properties are shown with a swatch in table output.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "table", "Output format: table, json, markdown")
}

func run(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("format")

	m, err := load.Load(cmd.Context(), args[0], load.Options{})
	if err != nil {
		return err
	}
	return Write(cmd.OutOrStdout(), m, outputFormat)
}

// Write renders the summary of m in the named output format.
func Write(w io.Writer, m *ir.Map, outputFormat string) error {
	s := render.Summarize(m)
	switch outputFormat {
	case "table", "":
		return render.Table(w, s)
	case "json":
		return render.JSON(w, s)
	case "markdown", "md":
		return render.Markdown(w, s)
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json, markdown)", outputFormat)
	}
}
