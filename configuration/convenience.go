package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/willibrandon/consoledump"
)

// CreateExtensionFromFile creates an extension from a configuration file,
// with environment overrides applied.
func CreateExtensionFromFile(filename string) (*consoledump.Extension, error) {
	config, err := LoadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := ApplyEnvironment(config, nil); err != nil {
		return nil, err
	}

	return NewExtensionBuilder().Build(config), nil
}

// LoadForEnvironment loads consoledump.json from dir and merges
// consoledump.{environment}.json over it. Missing files are skipped and the
// process environment is applied last.
func LoadForEnvironment(dir, environment string) (*Configuration, error) {
	config := &Configuration{}

	base, err := loadOptional(filepath.Join(dir, "consoledump.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}
	if base != nil {
		config = base
	}

	if environment != "" {
		envConfig, err := loadOptional(filepath.Join(dir, "consoledump."+environment+".json"))
		if err != nil {
			return nil, fmt.Errorf("failed to load environment configuration: %w", err)
		}
		if envConfig != nil {
			mergeConfiguration(config, envConfig)
		}
	}

	if err := ApplyEnvironment(config, nil); err != nil {
		return nil, err
	}
	return config, nil
}

func loadOptional(filename string) (*Configuration, error) {
	config, err := LoadFromFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return config, err
}

// mergeConfiguration merges source configuration into target.
// Source values override target values.
func mergeConfiguration(target, source *Configuration) {
	if source.ConsoleDump.Debug != nil {
		debug := *source.ConsoleDump.Debug
		target.ConsoleDump.Debug = &debug
	}
	if source.ConsoleDump.ScriptNonce != "" {
		target.ConsoleDump.ScriptNonce = source.ConsoleDump.ScriptNonce
	}
	if source.ConsoleDump.Theme != "" {
		target.ConsoleDump.Theme = source.ConsoleDump.Theme
	}
}
