package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/pkg/adapters/dialogyaml"
	"github.com/scenekit/scenekit/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dialog file for consistency",
	Long:  `Loads the YAML file and resolves every relation target, reporting unknown scenes, duplicate names, and malformed declarations without starting the engine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}

		dialogs, err := dialogyaml.LoadFile(file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}

		reg, err := registry.NewBuilder().Add(dialogs...).Resolve()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("%s is valid: %d dialogs, %d scenes\n", file, len(dialogs), len(reg.SceneNames()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
