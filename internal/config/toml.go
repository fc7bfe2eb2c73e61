// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data     DataConfig     `toml:"data"`
	Explorer ExplorerConfig `toml:"explorer"`
	Links    LinksConfig    `toml:"links"`
}

// DataConfig maps corpus source settings.
type DataConfig struct {
	Corpus *string `toml:"corpus"`
	Name   *string `toml:"name"`
}

// ExplorerConfig maps explorer defaults.
type ExplorerConfig struct {
	Sort        *string `toml:"sort"`
	ColorMode   *string `toml:"color-mode"`
	IncludeLive *bool   `toml:"include-live"`
}

// LinksConfig maps link generation bases.
type LinksConfig struct {
	WikiBase  *string `toml:"wiki-base"`
	AudioBase *string `toml:"audio-base"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
