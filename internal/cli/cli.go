// Package cli implements the poimap command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/internal/config"
	"github.com/matzehuels/poimap/pkg/buildinfo"
	"github.com/matzehuels/poimap/pkg/cache"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/observability"
	"github.com/matzehuels/poimap/pkg/pipeline"
	"github.com/matzehuels/poimap/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "poimap"

	// annotationNoConfig marks commands that run without loading a config
	// file, such as the one that creates it.
	annotationNoConfig = "poimap/no-config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "poimap places points of interest from compass bearings",
		Long: `poimap keeps maps of points of interest. POIs are placed either by
coordinates or by compass bearings and distances taken from other POIs;
bearing-defined positions are resolved in dependency order, with cyclic
references reported and left in place.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.mapCommand())
	root.AddCommand(c.poiCommand())
	root.AddCommand(c.bearingCommand())
	root.AddCommand(c.recalcCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and applies the log level before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cmd.Annotations[annotationNoConfig] == "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return err
		}
	}
	c.cfg = cfg

	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
		observability.NewLogHooks(c.Logger).SetAll()
	}
	c.SetLogLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// config returns the loaded configuration, or the defaults when setup has
// not run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured store and
// cache. Callers must Close it.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	st, err := openStore(ctx, c.config())
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	return pipeline.NewRunner(st, ch, newKeyer(c.config()), c.Logger), nil
}

// newKeyer scopes cache keys when cache.prefix is set. A nil keyer selects
// the runner's default.
func newKeyer(cfg *config.Config) cache.Keyer {
	if cfg.Cache.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		}, store.Options{})
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.Dir, store.Options{})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Store.Backend)
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.config()
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.Cache.RedisURL})
	case config.BackendFile:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, continuing without cache", "dir", cfg.Cache.Dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}

// withRunner opens a runner, calls fn and closes the runner.
func (c *CLI) withRunner(ctx context.Context, fn func(*pipeline.Runner) error) error {
	r, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			c.Logger.Warn("close runner", "err", err)
		}
	}()
	return fn(r)
}
