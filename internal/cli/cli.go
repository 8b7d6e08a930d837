// Package cli implements the refgraph command-line interface.
//
// Commands:
//   - scan: build the reference graph for a directory and report on it
//   - export: render the graph as DOT, SVG, or PNG
//   - serve: expose scans and stored reports over HTTP
//   - cache: manage the rendered-artifact cache
//
// All commands support --verbose (-v) for debug-level logging and
// --config for an explicit refgraph.toml. Flags override the config
// file, which overrides built-in defaults.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/internal/config"
	"github.com/refgraph/refgraph/pkg/buildinfo"
	"github.com/refgraph/refgraph/pkg/cache"
	apperrors "github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/scanner"
)

// appName is used for the binary name and cache directory.
const appName = "refgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is the layered file configuration, loaded in the root
	// command's PersistentPreRunE before any command runs.
	Config config.Config

	configPath string
	verbose    bool
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
		Use:          appName,
		Short:        "Refgraph maps file references in a directory tree",
		Long:         `Refgraph scans a directory tree, extracts references between files (Markdown links, PowerShell dot-sourcing and module imports), and reports on the resulting graph: most-referenced files, isolated files, and reference cycles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.DefaultFileName+")")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// scanOptions layers command flags over the config file for the
// scanner. Empty flag values fall through to the config.
func (c *CLI) scanOptions(excludes []string, workers int) scanner.Options {
	if len(excludes) == 0 {
		excludes = c.Config.Scan.Exclude
	}
	if workers <= 0 {
		workers = c.Config.Scan.Workers
	}
	return scanner.Options{
		ExcludeDirs: excludes,
		Workers:     workers,
		Logger:      c.Logger,
	}
}

// topN layers the --top flag over the config file.
func (c *CLI) topN(flag int) int {
	if flag > 0 {
		return flag
	}
	return c.Config.Scan.Top
}

// newCache selects the artifact cache backend: null for --no-cache,
// Redis when configured, file cache otherwise. A failing Redis or an
// unresolvable cache directory degrades to the null cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", addr, "error", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// validateExcludes rejects --exclude entries that could never match.
func validateExcludes(excludes []string) error {
	for _, name := range excludes {
		if err := apperrors.ValidateExcludeName(name); err != nil {
			return err
		}
	}
	return nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/refgraph/).
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
