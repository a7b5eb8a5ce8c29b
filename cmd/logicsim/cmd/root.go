// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cmd implements the logicsim commands.
//
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "logicsim",
	Short: "Logic circuit editor engine",
	Long: `logicsim runs the logic circuit editor engine without a window:
replay editing sessions, print gate truth tables and compute wire routes.

Settings are read from an optional TOML file (--config) and LOGICSIM_*
environment variables.

Examples:
  logicsim run session.yaml --png out.png   # Replay a session, save a snapshot
  logicsim truth NAND NOR                   # Print truth tables
  logicsim route 100 100 400 300 --gate AND:250,180 --avoid
  logicsim config                           # Print the effective settings`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log editor events")
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newEditor(cmd *cobra.Command, cfg *config.Config) *logicsim.Editor {
	return logicsim.NewEditor(cfg.Settings(), logicsim.WithLogger(newLogger(cmd.ErrOrStderr())))
}
