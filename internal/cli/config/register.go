// Package config provides the configuration and environment CLI commands:
// config (show, get, set, keys) and doctor.
package config

import (
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
