package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds budget configuration loaded from .budget.yaml.
type Config struct {
	Root       string   `yaml:"root"`
	Patterns   []string `yaml:"patterns"`
	TagSource  string   `yaml:"tag_source"`
	Match      string   `yaml:"match"`
	ArchiveTag string   `yaml:"archive_tag"`
	Format     string   `yaml:"format"`
	Workers    int      `yaml:"workers"`
	KeepGoing  bool     `yaml:"keep_going"`
	Exclude    Exclude  `yaml:"exclude"`
}

// Exclude defines paths to skip during scanning.
type Exclude struct {
	Paths []string `yaml:"paths"`
}

// RootDir returns Root with a leading ~ expanded to the home directory.
func (c Config) RootDir() string {
	if c.Root == "~" || strings.HasPrefix(c.Root, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.Root[1:])
		}
	}
	return c.Root
}

// Load searches for .budget.yaml or .budget.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".budget.yaml"),
		filepath.Join(dir, ".budget.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
