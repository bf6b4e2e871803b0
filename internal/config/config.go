// Package config loads go2opsin settings from defaults, config files and
// GO2OPSIN_* environment variables, and turns them into conversion options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go2opsin/go2opsin/internal/opsin"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "GO2OPSIN_"

// Configuration represents the go2opsin configuration
type Configuration struct {
	JavaCmd          string `koanf:"java_cmd" yaml:"java_cmd" json:"java_cmd" validate:"required"`
	JarPath          string `koanf:"jar_path" yaml:"jar_path" json:"jar_path" validate:"required"`
	OutputFormat     string `koanf:"output_format" yaml:"output_format" json:"output_format" validate:"required"`
	AllowAcid        bool   `koanf:"allow_acid" yaml:"allow_acid" json:"allow_acid"`
	AllowRadicals    bool   `koanf:"allow_radicals" yaml:"allow_radicals" json:"allow_radicals"`
	AllowBadStereo   bool   `koanf:"allow_bad_stereo" yaml:"allow_bad_stereo" json:"allow_bad_stereo"`
	WildcardRadicals bool   `koanf:"wildcard_radicals" yaml:"wildcard_radicals" json:"wildcard_radicals"`
	Timeout          int    `koanf:"timeout" yaml:"timeout" json:"timeout" validate:"min=0,max=86400"` // Seconds; 0 disables the timeout
	ScratchDir       string `koanf:"scratch_dir" yaml:"scratch_dir" json:"scratch_dir"`
	LockFile         string `koanf:"lock_file" yaml:"lock_file" json:"lock_file"`
	OutputEncoding   string `koanf:"output_encoding" yaml:"output_encoding" json:"output_encoding"`
	LogLevel         string `koanf:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
}

// UserConfigPath returns the global config file location
// (~/.config/go2opsin/config.yml, honouring XDG_CONFIG_HOME).
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go2opsin", "config.yml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "go2opsin", "config.yml"), nil
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if globalPath, err := UserConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ValidateConfigValues(&cfg, localConfigPath); err != nil {
		return nil, err
	}

	cfg.JavaCmd = expandHomePath(cfg.JavaCmd)
	cfg.JarPath = expandHomePath(cfg.JarPath)
	cfg.ScratchDir = expandHomePath(cfg.ScratchDir)
	cfg.LockFile = expandHomePath(cfg.LockFile)

	return &cfg, nil
}

// loadFile merges a config file into k. Missing files are skipped; the
// parser is chosen by extension (.json, otherwise YAML).
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return k.Load(file.Provider(path), json.Parser())
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), YAMLParser())
}

// Options converts the configuration into conversion options. A relative
// jar path that does not exist under the working directory is looked up
// next to the running executable, where the jar is bundled.
func (c *Configuration) Options() (opsin.Options, error) {
	format, err := opsin.ParseOutputFormat(c.OutputFormat)
	if err != nil {
		return opsin.Options{}, err
	}
	return opsin.Options{
		JavaCmd: c.JavaCmd,
		JarPath: ResolveJarPath(c.JarPath),
		Format:  format,
		Modifiers: opsin.Modifiers{
			AllowAcid:        c.AllowAcid,
			AllowRadicals:    c.AllowRadicals,
			AllowBadStereo:   c.AllowBadStereo,
			WildcardRadicals: c.WildcardRadicals,
		},
		Timeout:    time.Duration(c.Timeout) * time.Second,
		ScratchDir: c.ScratchDir,
		LockFile:   c.LockFile,
		Encoding:   c.OutputEncoding,
	}, nil
}

// ResolveJarPath returns path unchanged if it is absolute or exists, and
// otherwise the same name in the executable's directory when that exists.
func ResolveJarPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	bundled := filepath.Join(filepath.Dir(exe), path)
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}
	return path
}

// envTransform converts environment variable names to config keys
// Example: GO2OPSIN_JAR_PATH -> jar_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
