package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// EnvConfig names the variable that overrides the default config location.
const EnvConfig = "SMALLSH_CONFIG"

const (
	DefaultPrompt      = ": "
	DefaultHistorySize = 1000
	DefaultKillGrace   = 2 * time.Second
)

type Config struct {
	HistoryFile string        `yaml:"history_file"`
	HistorySize int           `yaml:"history_size"`
	HomeDir     string        `yaml:"home_dir"`
	Prompt      string        `yaml:"prompt"`
	KillGrace   time.Duration `yaml:"kill_grace"`
	Color       *bool         `yaml:"color"`
	Verbose     bool          `yaml:"verbose"`
}

// UseColor reports whether colored diagnostics are enabled. Color is on
// unless the file turns it off.
func (c *Config) UseColor() bool {
	return c.Color == nil || *c.Color
}

// Path resolves the config file location: an explicit path wins, then
// $SMALLSH_CONFIG, then ~/.smallsh/config.yml.
func Path(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	if custom := os.Getenv(EnvConfig); custom != "" {
		return expandHome(custom)
	}
	return filepath.Join(userHomeDir(), ".smallsh", "config.yml")
}

// Load reads the config at file. A missing file is not an error and yields
// the defaults.
func Load(fsys afero.Fs, file string) (*Config, error) {
	cfg := &Config{}
	data, err := afero.ReadFile(fsys, file)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
	}

	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg *Config) *Config {
	if cfg.HomeDir == "" {
		cfg.HomeDir = userHomeDir()
	}
	cfg.HomeDir = expandHome(cfg.HomeDir)

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, ".smallsh_history")
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.KillGrace <= 0 {
		cfg.KillGrace = DefaultKillGrace
	}
	return cfg
}

func expandHome(path string) string {
	if path == "~" {
		return userHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
