package config

import (
	"bytes"
	"errors"
	"fmt"
	gio "io"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the version of the tool, set at build time.
var Version string

// DefaultConfigPath is the default path to the configuration file.
const DefaultConfigPath = "./config/bst.yml"

// Config is the top level configuration structure.
type Config struct {
	Tree        TreeConfiguration        `yaml:"Tree"`
	Application ApplicationConfiguration `yaml:"Application"`
}

// Default returns configuration used when no file is given.
func Default() Config {
	return Config{
		Tree: TreeConfiguration{
			Hash:       DefaultHash,
			DigestSize: DefaultDigestSize,
		},
		Application: ApplicationConfiguration{
			LogLevel: "info",
			Encoding: EncodingHex,
		},
	}
}

// LoadFile loads config from the provided path. Fields missing in the file
// keep their default values, unknown fields are an error.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, gio.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate checks all configuration sections.
func (c Config) Validate() error {
	if err := c.Tree.Validate(); err != nil {
		return fmt.Errorf("Tree: %w", err)
	}
	if err := c.Application.Validate(); err != nil {
		return fmt.Errorf("Application: %w", err)
	}
	return nil
}
