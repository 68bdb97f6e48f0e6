package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scenekit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scenekit version %s\n", scenekit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
