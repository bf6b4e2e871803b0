package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/go2opsin/go2opsin/internal/opsin"
)

func TestGetKeySchema(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key      string
		wantType ConfigValueType
		wantErr  bool
	}{
		"known bool key":   {key: "allow_acid", wantType: TypeBool},
		"known int key":    {key: "timeout", wantType: TypeInt},
		"known enum key":   {key: "output_format", wantType: TypeEnum},
		"known string key": {key: "jar_path", wantType: TypeString},
		"unknown key":      {key: "max_retries", wantErr: true},
		"empty key":        {key: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			schema, err := GetKeySchema(tt.key)
			if tt.wantErr {
				var unknown ErrUnknownKey
				if !errors.As(err, &unknown) {
					t.Fatalf("GetKeySchema(%q) error = %v, want ErrUnknownKey", tt.key, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetKeySchema(%q) unexpected error: %v", tt.key, err)
			}
			if schema.Type != tt.wantType {
				t.Errorf("GetKeySchema(%q).Type = %v, want %v", tt.key, schema.Type, tt.wantType)
			}
		})
	}
}

func TestEnumKeysHaveAllowedValues(t *testing.T) {
	t.Parallel()

	for key, schema := range KnownKeys {
		if schema.Type == TypeEnum && len(schema.AllowedValues) == 0 {
			t.Errorf("enum key %q has no AllowedValues", key)
		}
	}
}

func TestConfigValueType_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		valueType ConfigValueType
		want      string
	}{
		"bool":    {valueType: TypeBool, want: "bool"},
		"int":     {valueType: TypeInt, want: "int"},
		"string":  {valueType: TypeString, want: "string"},
		"enum":    {valueType: TypeEnum, want: "enum"},
		"unknown": {valueType: ConfigValueType(99), want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tt.valueType.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key        string
		value      string
		wantParsed interface{}
		wantErr    string
	}{
		"bool true":         {key: "allow_radicals", value: "true", wantParsed: true},
		"bool uppercase":    {key: "allow_radicals", value: "FALSE", wantParsed: false},
		"bool invalid":      {key: "allow_radicals", value: "yes", wantErr: "invalid boolean"},
		"int":               {key: "timeout", value: "30", wantParsed: 30},
		"int invalid":       {key: "timeout", value: "soon", wantErr: "invalid integer"},
		"int negative":      {key: "timeout", value: "-1", wantErr: "out of range"},
		"int too large":     {key: "timeout", value: "86401", wantErr: "must be between 0 and 86400"},
		"encoding valid":    {key: "output_encoding", value: "latin1", wantParsed: "latin1"},
		"encoding invalid":  {key: "output_encoding", value: "klingon", wantErr: "unknown output encoding"},
		"log level warning": {key: "log_level", value: "warning", wantParsed: "warning"},
		"format valid":      {key: "output_format", value: "StdInChIKey", wantParsed: "StdInChIKey"},
		"format invalid":    {key: "output_format", value: "SMOLES", wantErr: "valid options: SMILES"},
		"string passthru":   {key: "jar_path", value: "/opt/opsin.jar", wantParsed: "/opt/opsin.jar"},
		"log level invalid": {key: "log_level", value: "loud", wantErr: "invalid value"},
		"unknown key":       {key: "nope", value: "1", wantErr: "unknown configuration key"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateValue(tt.key, tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ValidateValue(%q, %q) error = %v, want containing %q", tt.key, tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateValue(%q, %q) unexpected error: %v", tt.key, tt.value, err)
			}
			if got.Parsed != tt.wantParsed {
				t.Errorf("Parsed = %#v, want %#v", got.Parsed, tt.wantParsed)
			}
		})
	}
}

func TestKnownKeys_PathMatchesKey(t *testing.T) {
	t.Parallel()

	for key, schema := range KnownKeys {
		if schema.Path != key {
			t.Errorf("KnownKeys[%q].Path = %q", key, schema.Path)
		}
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	keys := SortedKeys()
	if len(keys) != len(KnownKeys) {
		t.Fatalf("SortedKeys() returned %d keys, want %d", len(keys), len(KnownKeys))
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("SortedKeys() not sorted: %v", keys)
	}
}

// TestGetDefaults_MatchConversionDefaults ensures config defaults and the
// library defaults describe the same conversion.
func TestGetDefaults_MatchConversionDefaults(t *testing.T) {
	t.Parallel()

	defaults := GetDefaults()
	if len(defaults) != len(KnownKeys) {
		t.Errorf("GetDefaults() has %d keys, KnownKeys has %d", len(defaults), len(KnownKeys))
	}

	want := opsin.DefaultOptions()
	if defaults["java_cmd"] != want.JavaCmd {
		t.Errorf("java_cmd default = %v, want %v", defaults["java_cmd"], want.JavaCmd)
	}
	if defaults["jar_path"] != want.JarPath {
		t.Errorf("jar_path default = %v, want %v", defaults["jar_path"], want.JarPath)
	}
	if defaults["output_format"] != string(want.Format) {
		t.Errorf("output_format default = %v, want %v", defaults["output_format"], want.Format)
	}
	for key, value := range defaults {
		if _, err := ValidateValue(key, fmt.Sprint(value)); err != nil {
			t.Errorf("default for %q does not validate: %v", key, err)
		}
	}
}
