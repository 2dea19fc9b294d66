// Package config loads Dashgrid configuration from a TOML file.
//
// Configuration is optional: every field has a default, and a missing file
// is not an error. The CLI looks for the file under the user config
// directory (dashgrid/config.toml) unless a path is given explicitly.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable settings for the CLI and server.
type Config struct {
	// Columns is the default breakpoint width for packing.
	Columns int `toml:"columns"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig configures the caching layer.
type CacheConfig struct {
	// Backend selects the cache implementation: "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend. Empty means the user
	// cache directory.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `toml:"listen"`

	// MongoURI enables the MongoDB board store when set. Empty means the
	// in-memory store.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database name for the MongoDB store.
	MongoDatabase string `toml:"mongo_database"`
}

// RenderConfig configures artifact rendering.
type RenderConfig struct {
	// CellSize is the pixel size of one grid cell.
	CellSize int `toml:"cell_size"`

	// Labels controls whether item IDs are drawn.
	Labels bool `toml:"labels"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Columns: 12,
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Listen:        ":8080",
			MongoDatabase: "dashgrid",
		},
		Render: RenderConfig{
			CellSize: 64,
			Labels:   true,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dashgrid", "config.toml"), nil
}

// Load reads the config file at path, applying defaults for missing fields.
// A missing file returns the defaults without error. An empty path means
// the standard location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
