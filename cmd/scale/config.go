package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment variable, e.g. SCALE_LOG_LEVEL.
const envPrefix = "scale"

// Config is the CLI configuration. Values come from defaults, then the
// optional YAML file, then SCALE_* environment variables, then flags.
type Config struct {
	SS58Format  *uint16  `yaml:"ss58_format" envconfig:"SS58_FORMAT"`
	SpecVersion *uint32  `yaml:"spec_version" envconfig:"SPEC_VERSION"`
	LogLevel    string   `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat   string   `yaml:"log_format" envconfig:"LOG_FORMAT"`
	Metadata    string   `yaml:"metadata" envconfig:"METADATA"`
	Presets     []string `yaml:"presets" envconfig:"PRESETS"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "console",
		Presets:   []string{"default"},
	}
}

// readConfig loads the configuration. An empty path skips the file.
func readConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		fileCfg, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("error merging config file %v: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("error reading environment: %w", err)
	}
	return cfg, nil
}

func readConfigFile(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("error opening config file %v: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("error decoding config file %v: %w", path, err)
	}
	return cfg, nil
}
