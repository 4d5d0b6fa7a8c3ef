// Package cli implements the denoup command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/denoup/denoup/pkg/buildinfo"
	"github.com/denoup/denoup/pkg/cache"
	"github.com/denoup/denoup/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "denoup"

	// defaultCacheTTL is how long registry responses stay valid in the
	// cross-run response cache.
	defaultCacheTTL = time.Hour
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "denoup",
		Short:        "Denoup keeps Deno dependency specifiers up to date",
		Long:         `Denoup scans an import map for versioned dependency URLs (deno.land, jsr, npm, CDN mirrors and more), looks up the newest published versions and rewrites the pins in place.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// newResolver creates a registry resolver for CLI use. The backend name
// selects the response cache: "file" (default), "redis" (reads REDIS_URL)
// or "none".
func (c *CLI) newResolver(backend string, refresh bool) (*registry.Resolver, error) {
	store, err := newCacheBackend(backend)
	if err != nil {
		return nil, err
	}
	return registry.NewResolver(registry.Config{
		Backend: store,
		TTL:     defaultCacheTTL,
		Refresh: refresh,
	}), nil
}

func newCacheBackend(name string) (cache.Cache, error) {
	switch name {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		url := os.Getenv("REDIS_URL")
		if url == "" {
			url = "redis://localhost:6379"
		}
		return cache.NewRedisCache(url)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/denoup/).
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
