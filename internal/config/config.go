// Package config loads poimap settings from a TOML file, a .env file and
// POIMAP_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/poimap/pkg/errors"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete poimap configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects where maps are kept.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the FileStore root.
	Dir string `toml:"dir"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects where recalculation results are cached.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`

	// Dir is the FileCache root.
	Dir string `toml:"dir"`

	RedisURL string `toml:"redis_url"`

	// Prefix namespaces every cache key, e.g. "team-a:", so that several
	// servers can share one Redis backend.
	Prefix string `toml:"prefix"`
}

// ServerConfig configures `poimap serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Timeouts are Go duration strings, e.g. "15s".
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error. --verbose forces debug.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:       BackendFile,
			Dir:           defaultDataDir(),
			MongoDatabase: "poimap",
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     defaultCacheDir(),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "30s",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration. An empty path uses [DefaultPath] and tolerates
// a missing file; an explicit path must exist. A .env file in the working
// directory is loaded into the environment first, without overriding
// variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
	} else if explicit {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config file %s", path)
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from POIMAP_* variables returned by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Store.Backend, "POIMAP_STORE_BACKEND")
	set(&c.Store.Dir, "POIMAP_DATA_DIR")
	set(&c.Store.MongoURI, "POIMAP_MONGO_URI")
	set(&c.Store.MongoDatabase, "POIMAP_MONGO_DATABASE")
	set(&c.Cache.Backend, "POIMAP_CACHE_BACKEND")
	set(&c.Cache.Dir, "POIMAP_CACHE_DIR")
	set(&c.Cache.RedisURL, "POIMAP_REDIS_URL")
	set(&c.Cache.Prefix, "POIMAP_CACHE_PREFIX")
	set(&c.Server.Addr, "POIMAP_ADDR")
	set(&c.Log.Level, "POIMAP_LOG_LEVEL")
}

// Validate checks backend names and the settings each backend requires.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if err := errors.ValidatePath(c.Store.Dir); err != nil {
			return err
		}
	case BackendMongo:
		if err := errors.ValidateURL(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "store.mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want file or mongo)", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case BackendFile:
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return err
		}
	case BackendRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.redis_url")
		}
	case BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}

	for name, v := range map[string]string{"server.read_timeout": c.Server.ReadTimeout, "server.write_timeout": c.Server.WriteTimeout} {
		if _, err := time.ParseDuration(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", name)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// Timeouts returns the parsed server timeouts. Call after Validate.
func (s ServerConfig) Timeouts() (read, write time.Duration) {
	read, _ = time.ParseDuration(s.ReadTimeout)
	write, _ = time.ParseDuration(s.WriteTimeout)
	return read, write
}

// DefaultPath returns $XDG_CONFIG_HOME/poimap/config.toml, or the OS
// equivalent.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "poimap", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "poimap")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "poimap")
	}
	return filepath.Join(".", "poimap-data")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "poimap")
	}
	return filepath.Join(os.TempDir(), "poimap-cache")
}

const defaultFile = `# poimap configuration

[store]
# backend = "file"        # file or mongo
# dir = "~/.local/share/poimap"
# mongo_uri = "mongodb://localhost:27017"
# mongo_database = "poimap"

[cache]
# backend = "file"        # file, redis or none
# redis_url = "redis://localhost:6379/0"
# prefix = ""             # namespace keys on a shared Redis

[server]
# addr = ":8080"
# read_timeout = "15s"
# write_timeout = "30s"

[log]
# level = "info"
`

// WriteDefault writes a commented default config file to path unless one
// already exists, and returns whether it wrote.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0644); err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return true, nil
}
