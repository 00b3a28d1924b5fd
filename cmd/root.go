/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for mapio.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mapio/cmd/convert"
	"bennypowers.dev/mapio/cmd/inspect"
	"bennypowers.dev/mapio/cmd/mcp"
	"bennypowers.dev/mapio/cmd/validate"
	"bennypowers.dev/mapio/cmd/version"
	"bennypowers.dev/mapio/cmd/watch"
	"bennypowers.dev/mapio/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mapio",
	Short: "Read, write and convert tile maps",
	Long: `mapio converts tile maps between the Tiled XML (.tmx), Tiled JSON and
YAML dialects, validates them and summarizes their contents.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(inspect.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
	rootCmd.AddCommand(watch.Cmd)
}
