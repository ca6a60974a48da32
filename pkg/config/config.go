// Package config loads scenepatch settings from a TOML file.
//
// The default location follows the XDG convention:
// $XDG_CONFIG_HOME/scenepatch/config.toml, falling back to
// ~/.config/scenepatch/config.toml. A missing file is not an error; every
// field has a default.
//
// Example file:
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
//	prefix = "scenepatch:"
//
//	[store]
//	backend = "postgres"
//	postgres_dsn = "postgres://localhost/scenepatch"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	scale = 2.0
//	fps = 30
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName names the configuration and cache directories.
const AppName = "scenepatch"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

const (
	DefaultCacheTTL       = 24 * time.Hour
	DefaultServerAddr     = ":8080"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultMaxBodyBytes   = 8 << 20
	DefaultScale          = 2.0
	DefaultFPS            = 30
	DefaultRedisPrefix    = AppName + ":"
	DefaultMongoDatabase  = AppName
	DefaultRequestTimeout = 2 * time.Minute
)

// Config is the full settings tree.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// RedisConfig is used when the cache backend is "redis".
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects where the server keeps scene documents.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	PostgresDSN   string `toml:"postgres_dsn"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
}

// RenderConfig holds rendering defaults for the CLI and server.
type RenderConfig struct {
	Scale float64 `toml:"scale"`
	FPS   int     `toml:"fps"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = DefaultRedisPrefix
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreMemory
	}
	if c.Store.MongoDatabase == "" {
		c.Store.MongoDatabase = DefaultMongoDatabase
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Render.Scale <= 0 {
		c.Render.Scale = DefaultScale
	}
	if c.Render.FPS <= 0 {
		c.Render.FPS = DefaultFPS
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("cache: redis backend needs redis.addr"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache: unknown backend %q", c.Cache.Backend))
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("store: mongo backend needs store.mongo_uri"))
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("store: postgres backend needs store.postgres_dsn"))
		}
	default:
		errs = append(errs, fmt.Errorf("store: unknown backend %q", c.Store.Backend))
	}
	return errors.Join(errs...)
}

// Parse decodes TOML data, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the file at path. An empty path means [Path]. A missing file
// yields [Default].
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the configured cache directory or the XDG default
// (~/.cache/scenepatch/).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
