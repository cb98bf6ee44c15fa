package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user's persistent preferences, loaded from a TOML file.
// Every field has a flag counterpart; flags win over the file.
//
// Example config (~/.config/slidesmith/config.toml):
//
//	strategy = "compact"
//	formats = ["svg", "png"]
//	scale = 2.0
//	font = "Calibri"
//
//	[cache]
//	backend = "file"        # file, redis, or none
//	dir = "~/.cache/slidesmith"
//	redis_addr = "localhost:6379"
type Config struct {
	Strategy string   `toml:"strategy"`
	Formats  []string `toml:"formats"`
	Scale    float64  `toml:"scale"`
	Font     string   `toml:"font"`

	Cache cacheConfig `toml:"cache"`

	// Flattened from the [cache] table after decode.
	CacheBackend string `toml:"-"`
	CacheDir     string `toml:"-"`
	RedisAddr    string `toml:"-"`
}

type cacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// defaultConfigPath returns ~/.config/slidesmith/config.toml, honoring
// XDG_CONFIG_HOME when set.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields an empty config; a missing
// explicit --config file is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}

	var cfg Config
	if path == "" {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg.CacheBackend = cfg.Cache.Backend
	cfg.CacheDir = expandHome(cfg.Cache.Dir)
	cfg.RedisAddr = cfg.Cache.RedisAddr
	return &cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
