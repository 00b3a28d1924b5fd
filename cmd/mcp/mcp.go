/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command, a Model Context Protocol server
// over stdio that lets assistants inspect, validate and convert maps.
package mcp

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/mapio/cmd/inspect"
	"bennypowers.dev/mapio/cmd/validate"
	"bennypowers.dev/mapio/emitter"
	"bennypowers.dev/mapio/format"
	"bennypowers.dev/mapio/fs"
	"bennypowers.dev/mapio/internal/logger"
	"bennypowers.dev/mapio/internal/version"
	"bennypowers.dev/mapio/load"
	"bennypowers.dev/mapio/parser"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the tools
inspect_map, validate_map and convert_map. Paths are resolved against the
working directory.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	server := NewServer(fs.NewOSFileSystem(), root)
	return server.Run(cmd.Context(), &sdk.StdioTransport{})
}

// InspectInput are the arguments of inspect_map.
type InspectInput struct {
	Path   string `json:"path" jsonschema:"path of the map file"`
	Format string `json:"format,omitempty" jsonschema:"summary format: markdown (default), table or json"`
}

// ValidateInput are the arguments of validate_map.
type ValidateInput struct {
	Path string `json:"path" jsonschema:"path of the map file"`
}

// ValidateOutput is the structured result of validate_map.
type ValidateOutput struct {
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty" jsonschema:"parse error identifier when the map could not be read"`
	Cause    string   `json:"cause,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// ConvertInput are the arguments of convert_map.
type ConvertInput struct {
	Path          string `json:"path" jsonschema:"path of the source map"`
	Format        string `json:"format,omitempty" jsonschema:"target format: xml, json or yaml"`
	Output        string `json:"output,omitempty" jsonschema:"output path; its extension selects the format"`
	EmbedTilesets bool   `json:"embedTilesets,omitempty" jsonschema:"store tilesets inline (xml and json)"`
	FoldTileData  bool   `json:"foldTileData,omitempty" jsonschema:"write one row of tile ids per line"`
	Indent        bool   `json:"indent,omitempty" jsonschema:"pretty-print xml and json output"`
}

// ConvertOutput is the structured result of convert_map.
type ConvertOutput struct {
	Output string `json:"output"`
}

type tools struct {
	fs   fs.FileSystem
	root string
}

// NewServer returns an MCP server whose tools read and write through
// filesystem, resolving relative paths against root.
func NewServer(filesystem fs.FileSystem, root string) *sdk.Server {
	t := &tools{fs: filesystem, root: root}
	server := sdk.NewServer(&sdk.Implementation{Name: version.Name, Version: version.Get()}, nil)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "inspect_map",
		Description: "Summarize a tile map: tilesets, layer tree, properties and components.",
	}, t.inspect)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "validate_map",
		Description: "Parse a tile map and check ids, tile references, tileset ranges and component types.",
	}, t.validate)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "convert_map",
		Description: "Convert a tile map between the Tiled XML (.tmx), Tiled JSON and YAML dialects.",
	}, t.convert)

	return server
}

func (t *tools) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(t.root, p)
}

func textResult(text string) *sdk.CallToolResult {
	return &sdk.CallToolResult{Content: []sdk.Content{&sdk.TextContent{Text: text}}}
}

func (t *tools) inspect(ctx context.Context, _ *sdk.CallToolRequest, in InspectInput) (*sdk.CallToolResult, any, error) {
	m, err := load.Load(ctx, t.path(in.Path), load.Options{Root: t.root, FS: t.fs})
	if err != nil {
		return nil, nil, err
	}
	outputFormat := in.Format
	if outputFormat == "" {
		outputFormat = "markdown"
	}
	var buf bytes.Buffer
	if err := inspect.Write(&buf, m, outputFormat); err != nil {
		return nil, nil, err
	}
	return textResult(buf.String()), nil, nil
}

func (t *tools) validate(_ context.Context, _ *sdk.CallToolRequest, in ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	result := validate.Check(t.fs, t.path(in.Path))
	out := ValidateOutput{Valid: result.OK()}
	if result.Err != nil {
		code := parser.CodeOf(result.Err)
		out.Error = code.String()
		out.Cause = code.Cause()
	}
	for i := range result.Problems {
		out.Problems = append(out.Problems, result.Problems[i].Error())
	}

	if out.Valid {
		return textResult(result.Path + " is valid"), out, nil
	}
	var buf bytes.Buffer
	validate.Report(&buf, result)
	return textResult(buf.String()), out, nil
}

func (t *tools) convert(ctx context.Context, _ *sdk.CallToolRequest, in ConvertInput) (*sdk.CallToolResult, ConvertOutput, error) {
	opts := load.Options{
		Root: t.root,
		FS:   t.fs,
		Emit: &emitter.Options{
			EmbedTilesets: in.EmbedTilesets,
			FoldTileData:  in.FoldTileData,
			IndentOutput:  in.Indent,
		},
	}
	if in.Format != "" {
		f, err := format.FromString(in.Format)
		if err != nil {
			return nil, ConvertOutput{}, err
		}
		opts.Format = f
	}

	var (
		out string
		err error
	)
	if in.Output != "" {
		out, err = load.ConvertTo(ctx, t.path(in.Path), t.path(in.Output), opts)
	} else {
		// Without a format the project config decides.
		out, err = load.Convert(ctx, t.path(in.Path), opts)
	}
	if err != nil {
		return nil, ConvertOutput{}, err
	}
	return textResult("Wrote " + out), ConvertOutput{Output: out}, nil
}
