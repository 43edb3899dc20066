// Package cli implements the dargo command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dargo/pkg/buildinfo"
	"github.com/matzehuels/dargo/pkg/cache"
	"github.com/matzehuels/dargo/pkg/integrations/crates"
	"github.com/matzehuels/dargo/pkg/observability"
	"github.com/matzehuels/dargo/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dargo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogWarn  = log.WarnLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // summaries and command output
	In     io.Reader // keyboard input for interactive pickers

	config     *Config
	configPath string
	verbose    bool
	quiet      bool
	noCache    bool

	// index overrides the registry index built from config. Tests set it.
	index registry.Index
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		In:     os.Stdin,
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
		Short:        "Dargo edits the dependencies in your Cargo.toml",
		Long:         `Dargo adds, removes and upgrades dependencies in Cargo manifests using the versions published on the crates.io index, leaving comments and formatting untouched.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogWarn
			switch {
			case c.verbose:
				level = LogDebug
			case c.quiet:
				level = LogError
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "only log errors")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dargo/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "do not read or write the index cache")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Register all subcommands
	root.AddCommand(c.addCommand())
	root.AddCommand(c.rmCommand())
	root.AddCommand(c.upgradeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Factory
// =============================================================================

// openIndex builds the registry index described by the config. The returned
// func releases the cache backend.
func (c *CLI) openIndex(ctx context.Context) (registry.Index, func(), error) {
	if c.index != nil {
		return c.index, func() {}, nil
	}
	backend, err := c.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	hooks := logHooks{logger: loggerFromContext(ctx)}
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	client := crates.NewClient(backend, c.cfg().Registry.Index, c.cfg().cacheTTL)
	loggerFromContext(ctx).Debug("using index", "url", client.IndexURL())
	return registry.NewSparse(client), func() { _ = backend.Close() }, nil
}

func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.cfg()
	switch {
	case c.noCache:
		return cache.NewNullCache(), nil
	case cfg.Cache.RedisURL != "":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			loggerFromContext(ctx).Warn("index cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cfg returns the loaded config, or defaults when no command ran the root
// pre-run (as in tests that call run functions directly).
func (c *CLI) cfg() *Config {
	if c.config == nil {
		c.config = defaultConfig()
	}
	return c.config
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dargo/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/dargo/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
