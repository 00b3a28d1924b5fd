/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for mapio.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mapio/config"
	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/load"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert maps between the XML, JSON and YAML dialects",
	Long: `Convert map files between the Tiled XML (.tmx), Tiled JSON (.json) and
YAML (.yaml) dialects. External tilesets are written next to the map.

Examples:
  # Convert one map to JSON next to the input
  mapio convert -f json maps/overworld.tmx

  # Convert to an explicit output path; the format follows its extension
  mapio convert -o build/overworld.yaml maps/overworld.tmx

  # Convert every map matching a glob, embedding tilesets
  mapio convert -f json --embed-tilesets 'maps/**/*.tmx'

  # Convert the files listed in .config/mapio.yaml
  mapio convert`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (single input only)")
	Cmd.Flags().StringP("format", "f", "", "Target format: "+strings.Join(format.ValidFormats(), ", "))
	Cmd.Flags().Bool("embed-tilesets", false, "Store tilesets inline (XML and JSON)")
	Cmd.Flags().Bool("fold-tile-data", false, "Write one row of tile ids per line")
	Cmd.Flags().Bool("indent", false, "Pretty-print XML and JSON output")

	_ = viper.BindPFlag("format", Cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("embedTilesets", Cmd.Flags().Lookup("embed-tilesets"))
	_ = viper.BindPFlag("foldTileData", Cmd.Flags().Lookup("fold-tile-data"))
	_ = viper.BindPFlag("indentOutput", Cmd.Flags().Lookup("indent"))
}

// Request describes one convert invocation.
type Request struct {
	Root   string
	FS     fs.FileSystem
	Files  []string
	Output string
	Format format.Format
	Emit   emitter.Options
}

// Options layers the flags over the project config: a flag the user set
// wins, otherwise the config value applies. The target format stays
// Unsupported without a flag so per-file config formats still apply.
func Options(v *viper.Viper, cfg *config.Config) (format.Format, emitter.Options, error) {
	v.SetDefault("embedTilesets", cfg.EmbedTilesets)
	v.SetDefault("foldTileData", cfg.FoldTileData)
	v.SetDefault("indentOutput", cfg.IndentOutput)

	target := format.Unsupported
	if name := v.GetString("format"); name != "" {
		f, err := format.FromString(name)
		if err != nil {
			return format.Unsupported, emitter.Options{}, err
		}
		target = f
	}
	return target, emitter.Options{
		EmbedTilesets: v.GetBool("embedTilesets"),
		FoldTileData:  v.GetBool("foldTileData"),
		IndentOutput:  v.GetBool("indentOutput"),
	}, nil
}

// Run converts the files of req and returns the written map paths.
func Run(ctx context.Context, req Request) ([]string, error) {
	opts := load.Options{Root: req.Root, FS: req.FS, Format: req.Format, Emit: &req.Emit}

	if len(req.Files) == 0 {
		if req.Output != "" {
			return nil, errors.New("--output requires exactly one input file")
		}
		return load.ConvertAll(ctx, opts)
	}

	files, err := config.ExpandPaths(req.FS, req.Root, req.Files)
	if err != nil {
		return nil, fmt.Errorf("error expanding files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %s", strings.Join(req.Files, ", "))
	}

	if req.Output != "" {
		if len(files) != 1 {
			return nil, errors.New("--output requires exactly one input file")
		}
		out, err := load.ConvertTo(ctx, files[0], req.Output, opts)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	outputs := make([]string, 0, len(files))
	for _, file := range files {
		out, err := load.Convert(ctx, file, opts)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	filesystem := fs.NewOSFileSystem()
	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	target, emit, err := Options(viper.GetViper(), cfg)
	if err != nil {
		return err
	}
	outputs, err := Run(cmd.Context(), Request{
		Root:   root,
		FS:     filesystem,
		Files:  args,
		Output: output,
		Format: target,
		Emit:   emit,
	})
	printOutputs(cmd.OutOrStdout(), outputs)
	return err
}

func printOutputs(w io.Writer, outputs []string) {
	for _, out := range outputs {
		fmt.Fprintf(w, "Wrote %s\n", out)
	}
}
