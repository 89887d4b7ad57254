package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig carries the optional on-disk settings; flags override
// anything set here.
type fileConfig struct {
	DepthLimit int    `yaml:"depth_limit"`
	Workers    int    `yaml:"workers"`
	Prompt     string `yaml:"prompt"`
	NoStdlib   bool   `yaml:"no_stdlib"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpnc", "config.yaml")
}

// loadConfig reads path if it exists; a missing file is not an error,
// it just means defaults.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %v: %w", path, err)
	}
	return cfg, nil
}
