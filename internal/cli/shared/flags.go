package shared

import (
	"fmt"

	"github.com/go2opsin/go2opsin/internal/config"
	"github.com/spf13/cobra"
)

// Persistent flag names shared by every command
const (
	ConfigFlagName = "config"
	DebugFlagName  = "debug"
)

// DefaultConfigPath is the local config file read when --config is not given.
const DefaultConfigPath = "go2opsin.yml"

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringP(ConfigFlagName, "c", DefaultConfigPath, "Path to local config file (YAML or JSON)")
	root.PersistentFlags().BoolP(DebugFlagName, "d", false, "Enable debug logging")
}

// AddGroups defines the help groups every command is assigned to.
func AddGroups(root *cobra.Command) {
	root.AddGroup(&cobra.Group{ID: GroupConversion, Title: "Conversion:"})
	root.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	root.AddGroup(&cobra.Group{ID: GroupInfo, Title: "Information:"})
}

// LoadConfig loads the configuration named by --config. Configuration
// problems exit with ExitInvalidArguments.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString(ConfigFlagName)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WithExitCode(ExitInvalidArguments, fmt.Errorf("loading configuration: %w", err))
	}
	return cfg, nil
}

// Debug reports whether --debug was passed.
func Debug(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool(DebugFlagName)
	return debug
}
