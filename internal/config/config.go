// Package config loads the optional refgraph.toml configuration file.
//
// Flags always win over the file, and the file wins over built-in
// defaults; the CLI applies that layering, this package only parses.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file looked up in the working directory
// when --config is not given.
const DefaultFileName = "refgraph.toml"

// Config mirrors the refgraph.toml layout.
type Config struct {
	Scan  ScanConfig  `toml:"scan"`
	Serve ServeConfig `toml:"serve"`
	Cache CacheConfig `toml:"cache"`
}

// ScanConfig configures the scan and export commands.
type ScanConfig struct {
	// Exclude lists directory names skipped during traversal,
	// replacing the built-in defaults when set.
	Exclude []string `toml:"exclude"`

	// Top bounds the ranking tables in reports.
	Top int `toml:"top"`

	// Workers bounds concurrent file reads.
	Workers int `toml:"workers"`
}

// ServeConfig configures serve mode.
type ServeConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig configures the artifact cache backend.
type CacheConfig struct {
	// RedisAddr switches the export cache from the file backend to
	// Redis when set.
	RedisAddr string `toml:"redis_addr"`
}

// Load reads the config file at path. An empty path looks for
// refgraph.toml in the working directory and returns the zero Config
// when it does not exist; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
		if _, err := os.Stat(path); err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
