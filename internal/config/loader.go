package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "runner.yaml"

// Load loads the runner configuration.
// Search order: customPath -> ~/.gravrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files overlay the defaults, so a partial file only changes what it names.
func Load(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(customPath, data)
		if err != nil {
			return RunnerConfig{}, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(path, data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	var cfg RunnerConfig
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes config data on top of the defaults. The format is picked
// from the file extension: .toml uses TOML, anything else YAML.
func Parse(name string, data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gravrun", "configs", filename)
}
