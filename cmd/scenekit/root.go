package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "scenekit",
	Short: "Scenekit is a scene-based dialog engine for chat bots",
	Long:  `Scenekit runs conversations declared as dialogs: named scenes connected by guarded relations, with per-session history so each chat knows where it is.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "dialogs.yaml", "YAML file declaring the dialogs")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// newLogger builds the logger from the --log-level persistent flag. Bad
// values fall back to info.
func newLogger() *slog.Logger {
	raw, _ := rootCmd.PersistentFlags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}
