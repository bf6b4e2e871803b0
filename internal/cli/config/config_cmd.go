package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go2opsin/go2opsin/internal/cli/shared"
	cfgpkg "github.com/go2opsin/go2opsin/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage go2opsin configuration",
		Long: `Manage go2opsin configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (GO2OPSIN_*)
  2. Local config (--config, default ./go2opsin.yml; .json files are read as JSON)
  3. User config (~/.config/go2opsin/config.yml)
  4. Built-in defaults`,
		Example: `  # Show current configuration
  go2opsin config show

  # Make StdInChIKey the default output format for this directory
  go2opsin config set output_format StdInChIKey

  # Point every project at a shared jar
  go2opsin config set jar_path /opt/opsin/opsin.jar --user`,
		GroupID: shared.GroupConfiguration,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Display the current effective configuration values.

Shows the merged result of defaults, user config, local config, and
environment variables.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	showCmd.Flags().Bool("json", false, "Output in JSON format")

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the local or user config.

By default, sets the value in the local config file named by --config.
Use --user to set it in the user-level config (~/.config/go2opsin/config.yml).

The value is validated against the key's expected type before writing.`,
		Example: `  # Allow acids without the 'acid' suffix
  go2opsin config set allow_acid true

  # Kill OPSIN after two minutes, for every project
  go2opsin config set timeout 120 --user`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
	setCmd.Flags().Bool("user", false, "Set in user-level config")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the current value of a configuration key.

Shows the value from the local config, else the user config, else the built-in default.
Environment variables are not consulted; use 'config show' for the effective value.`,
		Args: cobra.ExactArgs(1),
		RunE: runConfigGet,
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List all available configuration keys",
		Long:  `Display all valid configuration keys with their types and descriptions.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigKeys,
	}

	configCmd.AddCommand(showCmd, setCmd, getCmd, keysCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	if useJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	userPath, _ := cfgpkg.UserConfigPath()
	localPath, _ := cmd.Flags().GetString(shared.ConfigFlagName)
	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# User config:  %s\n", userPath)
	fmt.Fprintf(out, "# Local config: %s\n", localPath)
	fmt.Fprintf(out, "\n")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}
	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		return shared.WithExitCode(shared.ExitInvalidArguments, fmt.Errorf("setting config value: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	schema, err := cfgpkg.GetKeySchema(key)
	if err != nil {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	}

	localPath, _ := cmd.Flags().GetString(shared.ConfigFlagName)
	sources := []struct{ scope, path string }{{"local", localPath}}
	if userPath, err := cfgpkg.UserConfigPath(); err == nil {
		sources = append(sources, struct{ scope, path string }{"user", userPath})
	}

	for _, src := range sources {
		value, ok, err := cfgpkg.GetConfigValue(src.path, key)
		if err != nil {
			return fmt.Errorf("reading %s config: %w", src.scope, err)
		}
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s config: %s)\n", key, value, src.scope, src.path)
			return nil
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %v (default)\n", key, schema.Default)
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	printKeys(cmd.OutOrStdout())
	return nil
}

func printKeys(out io.Writer) {
	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)
	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		fmt.Fprintf(out, "  %-18s %-7s %s (default: %v)\n", key, schema.Type, schema.Description, schema.Default)
		if len(schema.AllowedValues) > 0 {
			fmt.Fprintf(out, "  %-18s %-7s values: %v\n", "", "", schema.AllowedValues)
		}
	}
}

// resolveConfigPath picks the file config set writes to.
func resolveConfigPath(cmd *cobra.Command) (string, string, error) {
	if useUser, _ := cmd.Flags().GetBool("user"); useUser {
		path, err := cfgpkg.UserConfigPath()
		if err != nil {
			return "", "", fmt.Errorf("getting user config path: %w", err)
		}
		return path, "user", nil
	}
	path, _ := cmd.Flags().GetString(shared.ConfigFlagName)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "", "", shared.WithExitCode(shared.ExitInvalidArguments,
			fmt.Errorf("config set edits YAML files only; %s is JSON", path))
	}
	return path, "local", nil
}
