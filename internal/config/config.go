// UMBRA ⸻ internal/config/config.go
// config loading & management

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sombra/internal/formats"
)

// config for daemon mode
type DaemonConfig struct {
	Watch struct {
		Paths []string `toml:"paths"`
	} `toml:"watch"`
	Filter struct {
		Extensions    []string `toml:"extensions"`
		MinAgeSeconds int      `toml:"min_age_seconds"`
	} `toml:"filter"`
	Label struct {
		Template string `toml:"template"`
	} `toml:"label"`
}

// loads the daemon config from an explicit path or the search locations
func LoadDaemonConfig(path string) (*DaemonConfig, error) {
	configPath := path

	if configPath == "" {
		paths := []string{
			"config/velado.toml",
			"./velado.toml",
			filepath.Join(os.Getenv("HOME"), ".sombra/config/velado.toml"),
		}

		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath == "" {
		return nil, fmt.Errorf("velado.toml not found in search paths")
	}

	var config DaemonConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// filter out commented paths and expand leading tildes
	var activePaths []string
	for _, p := range config.Watch.Paths {
		if len(p) == 0 || p[0] == '#' {
			continue
		}
		if strings.HasPrefix(p, "~/") {
			p = filepath.Join(os.Getenv("HOME"), p[2:])
		}
		activePaths = append(activePaths, p)
	}
	config.Watch.Paths = activePaths

	return &config, nil
}

// returns default config values
func GetDefaultConfig() *DaemonConfig {
	config := &DaemonConfig{}
	config.Watch.Paths = []string{
		os.Getenv("HOME") + "/Pictures",
	}
	for _, ext := range formats.SupportedFormats() {
		config.Filter.Extensions = append(config.Filter.Extensions, "."+ext)
	}
	config.Filter.MinAgeSeconds = 2
	return config
}

// saves the current configuration to a file
func SaveDaemonConfig(config *DaemonConfig, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}

// config directory exists
func SetupConfigDir() (string, error) {
	configDir := filepath.Join(os.Getenv("HOME"), ".sombra/config")
	err := os.MkdirAll(configDir, 0755)
	return configDir, err
}
