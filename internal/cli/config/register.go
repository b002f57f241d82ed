// Package config provides CLI commands for tellydone configuration management.
// Includes: config init, config show, doctor
package config

import (
	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
)

// Register adds all configuration commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Create or inspect the configuration",
		GroupID: shared.GroupConfiguration,
	}
	configCmd.AddCommand(newInitCmd())
	configCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newDoctorCmd())
}
