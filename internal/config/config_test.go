package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/poimap/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Store.Backend != BackendFile || cfg.Cache.Backend != BackendFile {
		t.Errorf("default backends = %s/%s", cfg.Store.Backend, cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[store]
backend = "file"
dir = "` + filepath.ToSlash(dir) + `/maps"

[cache]
backend = "none"
prefix = "srv1:"

[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != BackendNone || cfg.Cache.Prefix != "srv1:" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	read, write := cfg.Server.Timeouts()
	if read != 5*time.Second || write != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 5s/30s", read, write)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unset fields should keep defaults, log level = %q", cfg.Log.Level)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POIMAP_ADDR", ":2")
	t.Setenv("POIMAP_CACHE_BACKEND", "redis")
	t.Setenv("POIMAP_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":2" {
		t.Errorf("env should override file: addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"POIMAP_STORE_BACKEND": "mongo",
		"POIMAP_MONGO_URI":     "mongodb://db:27017",
		"POIMAP_LOG_LEVEL":     "debug",
		"POIMAP_CACHE_PREFIX":  "team-a:",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Store.Backend != BackendMongo || cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if cfg.Cache.Prefix != "team-a:" {
		t.Errorf("cache prefix = %q", cfg.Cache.Prefix)
	}
	if cfg.Store.MongoDatabase != "poimap" {
		t.Errorf("unset variables should keep defaults, database = %q", cfg.Store.MongoDatabase)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"unknown store", func(c *Config) { c.Store.Backend = "sqlite" }, false},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo }, false},
		{"mongo with uri", func(c *Config) { c.Store.Backend = BackendMongo; c.Store.MongoURI = "mongodb://x" }, true},
		{"redis without url", func(c *Config) { c.Cache.Backend = BackendRedis }, false},
		{"no cache", func(c *Config) { c.Cache.Backend = BackendNone; c.Cache.Dir = "" }, true},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"level case", func(c *Config) { c.Log.Level = "WARN" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	wrote, err := WriteDefault(path)
	if err != nil || !wrote {
		t.Fatalf("WriteDefault = %v, %v", wrote, err)
	}
	wrote, err = WriteDefault(path)
	if err != nil || wrote {
		t.Errorf("second WriteDefault = %v, %v; want false, nil", wrote, err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("default file should load: %v", err)
	}
}
