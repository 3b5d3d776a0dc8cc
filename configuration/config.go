package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/consoledump/selflog"
)

// Environment variables that override file settings.
const (
	EnvDebug       = "CONSOLEDUMP_DEBUG"
	EnvScriptNonce = "CONSOLEDUMP_SCRIPT_NONCE"
	EnvTheme       = "CONSOLEDUMP_THEME"
)

// ExtensionConfiguration holds the settings of a dump extension.
type ExtensionConfiguration struct {
	// Debug enables dumps. Nil means not configured, which is off.
	Debug *bool `mapstructure:"Debug" json:"Debug,omitempty" yaml:"Debug,omitempty"`

	// ScriptNonce is the default nonce of dump script elements.
	ScriptNonce string `mapstructure:"ScriptNonce" json:"ScriptNonce,omitempty" yaml:"ScriptNonce,omitempty"`

	// Theme names the terminal preview theme: default, dark or none.
	Theme string `mapstructure:"Theme" json:"Theme,omitempty" yaml:"Theme,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	ConsoleDump ExtensionConfiguration `mapstructure:"ConsoleDump" json:"ConsoleDump" yaml:"ConsoleDump"`
}

// DebugEnabled reports whether debug mode is configured on.
func (c *ExtensionConfiguration) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

// LoadFromFile loads configuration from a JSON or YAML file. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return FromMap(raw)
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return FromMap(raw)
}

// FromMap decodes configuration from a generic map, as produced by JSON or
// YAML decoders. Keys match case-insensitively and scalar strings such as
// "true" are converted. Unknown keys are reported through selflog.
func FromMap(raw map[string]any) (*Configuration, error) {
	var config Configuration
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if len(md.Unused) > 0 && selflog.IsEnabled() {
		selflog.Printf("[configuration] ignoring unknown keys: %v", md.Unused)
	}

	return &config, nil
}

// ApplyEnvironment overrides config with the CONSOLEDUMP_* variables found
// through lookup. A nil lookup uses os.LookupEnv.
func ApplyEnvironment(config *Configuration, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		config.ConsoleDump.Debug = &debug
	}
	if v, ok := lookup(EnvScriptNonce); ok {
		config.ConsoleDump.ScriptNonce = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		config.ConsoleDump.Theme = v
	}
	return nil
}

// ParseBool parses a boolean setting. Besides the forms strconv accepts it
// understands yes/no and on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] invalid boolean '%s'", s)
		}
		return false, fmt.Errorf("unknown boolean value: %s", s)
	}
	return b, nil
}
