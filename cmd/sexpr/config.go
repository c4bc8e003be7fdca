package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models the optional ~/.sexpr.yaml file.
type Config struct {
	Prompt      string `yaml:"prompt"`
	LineEditing bool   `yaml:"line_editing"`
	Dump        bool   `yaml:"dump"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{Prompt: "[%d]>> ", LineEditing: true}
}

// LoadConfig reads the configuration from path.  An empty path means
// ~/.sexpr.yaml, which may be absent.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".sexpr.yaml")
	}
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
