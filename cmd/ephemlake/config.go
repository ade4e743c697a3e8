package main

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig holds optional defaults normally supplied by flags.
type fileConfig struct {
	Catalog catalogConfig `toml:"catalog"`
	Cache   cacheConfig   `toml:"cache"`
}

type catalogConfig struct {
	Path string `toml:"path"`
}

type cacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// loadConfig reads the TOML config at path. An empty path means no
// config file; a missing explicit path is an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, errors.New("config file not found: " + path)
		}
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
