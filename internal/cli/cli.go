// Package cli implements the scenepatch command-line interface.
//
// The CLI renders scene documents, exports animation frames, compiles
// animation scripts and serves the HTTP API. It is built using cobra and
// logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Render a scene to SVG, PNG or JSON
//   - frames: Export an animation frame by frame
//   - compile: Compile an animation script into a spec
//   - validate: Check scene and animation documents
//   - inspect: Summarize a scene's nodes and edges
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet
// (-q) for warnings only. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/buildinfo"
	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/config"
	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command from configPath (or the XDG
	// default when empty).
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Scenepatch renders declarative scenes onto retained SVG trees",
		Long:         `Scenepatch mounts declarative scene documents (nodes, edges, overlays) onto a retained SVG tree, patches them in place, and exports SVG, PNG or JSON. Animation specs can be compiled, validated and exported frame by frame.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/scenepatch/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// newCache opens the configured cache backend. A file cache that cannot
// be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
			Prefix:   c.Config.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newStore opens the configured scene store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case config.StoreMongo:
		st, err := store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.Config.Store.MongoURI,
			Database: c.Config.Store.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.StorePostgres:
		st, err := store.NewPostgresStore(ctx, c.Config.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend: %q", c.Config.Store.Backend)
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps stdout so callers can always Close.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for "" or "-", else creates path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

// openInput returns stdin for "-", else opens path.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
