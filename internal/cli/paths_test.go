package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	path := defaultConfigPath()
	if path == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(path, filepath.Join(appName, "config.toml")) {
		t.Errorf("defaultConfigPath() = %q, want .../%s/config.toml", path, appName)
	}
}

func TestDefaultConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if got := defaultConfigPath(); got != want {
		t.Errorf("defaultConfigPath() with XDG_CONFIG_HOME = %q, want %q", got, want)
	}
}

func TestResolvedCacheDirPrefersConfig(t *testing.T) {
	c := &CLI{Config: &Config{CacheDir: "/tmp/deck-cache"}}
	dir, err := c.resolvedCacheDir()
	if err != nil {
		t.Fatalf("resolvedCacheDir() error: %v", err)
	}
	if dir != "/tmp/deck-cache" {
		t.Errorf("resolvedCacheDir() = %q, want configured dir", dir)
	}
}
