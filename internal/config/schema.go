package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go2opsin/go2opsin/internal/opsin"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// maxTimeoutSeconds caps the timeout key at one day.
const maxTimeoutSeconds = 86400

// ConfigKeySchema describes one configuration key.
type ConfigKeySchema struct {
	Path          string          // Key name (e.g., "output_format")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types
	Description   string          // Shown by `config keys`
	Default       interface{}

	// Min and Max bound TypeInt values; a zero Max means no upper bound.
	Min, Max int

	// Check adds validation for TypeString values.
	Check func(string) error
}

// logLevels are the logrus level names accepted for log_level.
var logLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"java_cmd": {
		Type:        TypeString,
		Description: "Java launcher used to run the OPSIN jar",
		Default:     opsin.DefaultJavaCmd,
	},
	"jar_path": {
		Type:        TypeString,
		Description: "Path to the OPSIN command-line jar",
		Default:     opsin.DefaultJarPath,
	},
	"output_format": {
		Type:          TypeEnum,
		AllowedValues: opsin.FormatNames(),
		Description:   "Structure format OPSIN emits",
		Default:       string(opsin.DefaultFormat),
	},
	"allow_acid": {
		Type:        TypeBool,
		Description: "Interpret acids without the 'acid' suffix",
		Default:     false,
	},
	"allow_radicals": {
		Type:        TypeBool,
		Description: "Interpret names describing radicals",
		Default:     false,
	},
	"allow_bad_stereo": {
		Type:        TypeBool,
		Description: "Ignore stereochemistry OPSIN cannot interpret",
		Default:     false,
	},
	"wildcard_radicals": {
		Type:        TypeBool,
		Description: "Output radicals as wildcard atoms",
		Default:     false,
	},
	"timeout": {
		Type:        TypeInt,
		Description: "Timeout in seconds for one OPSIN run (0 disables)",
		Default:     0,
		Max:         maxTimeoutSeconds,
	},
	"scratch_dir": {
		Type:        TypeString,
		Description: "Directory for staged input files (empty uses the OS temp dir)",
		Default:     "",
	},
	"lock_file": {
		Type:        TypeString,
		Description: "Lock file serializing OPSIN runs across processes (empty disables)",
		Default:     "",
	},
	"output_encoding": {
		Type:        TypeString,
		Description: "Text encoding of OPSIN output (WHATWG label)",
		Default:     "utf-8",
		Check: func(v string) error {
			_, err := opsin.NewDecoder(v)
			return err
		},
	},
	"log_level": {
		Type:          TypeEnum,
		AllowedValues: logLevels,
		Description:   "Minimum level of log messages written to stderr",
		Default:       "error",
	},
}

func init() {
	for key, schema := range KnownKeys {
		schema.Path = key
		KnownKeys[key] = schema
	}
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for key := range KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue is a command-line value converted to its key's type.
type ParsedValue struct {
	Raw    string
	Parsed interface{}
	Type   ConfigValueType
}

// ValidateValue parses value for key, reporting what is wrong when it does
// not fit the key's schema.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	parsed, err := schema.parse(value)
	if err != nil {
		return ParsedValue{}, err
	}
	return ParsedValue{Raw: value, Parsed: parsed, Type: schema.Type}, nil
}

func (s ConfigKeySchema) parse(value string) (interface{}, error) {
	switch s.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %q", value)
		}
		if n < s.Min || (s.Max > 0 && n > s.Max) {
			return nil, fmt.Errorf("out of range: %d (must be between %d and %d)", n, s.Min, s.Max)
		}
		return n, nil
	case TypeEnum:
		for _, allowed := range s.AllowedValues {
			if value == allowed {
				return value, nil
			}
		}
		return nil, fmt.Errorf("invalid value: %q (valid options: %s)", value, strings.Join(s.AllowedValues, ", "))
	case TypeString:
		if s.Check != nil {
			if err := s.Check(value); err != nil {
				return nil, err
			}
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported type: %v", s.Type)
	}
}
