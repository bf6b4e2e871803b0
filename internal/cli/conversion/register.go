// Package conversion provides the convert command, which runs chemical names
// through OPSIN and renders the results as text, JSON or YAML.
package conversion

import "github.com/spf13/cobra"

// Register adds the conversion commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewConvertCmd())
}
