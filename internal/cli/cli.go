package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/internal/config"
	"github.com/lahtis/glfm/pkg/buildinfo"
	"github.com/lahtis/glfm/pkg/cache"
	"github.com/lahtis/glfm/pkg/integrations/wikidata"
	"github.com/lahtis/glfm/pkg/observability"
	"github.com/lahtis/glfm/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "glfm"

	// redisKey is the Redis hash holding the lookup caches.
	redisKey = "glfm:lookups"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache mappings, by file name (file backend) or key prefix (redis backend).
const (
	cacheParents  = "cache_qid_to_parents"
	cacheLabelIDs = "cache_label_to_qid"
	cacheLabels   = "cache_qid_to_label"
)

var cacheMappings = []string{cacheParents, cacheLabelIDs, cacheLabels}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
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
		Use:   "glfm",
		Short: "GLFM builds a unified catalog of the world's languages",
		Long: `GLFM merges ISO 639, CLDR, Wiktionary, Glottolog and Wikidata data into one
record per language code, and resolves each language family's genealogy.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetStageHooks(stageLogger{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $GLFM_CONFIG or ./glfm.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.familiesCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.posStatsCommand())
	root.AddCommand(c.fetchCLDRCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner logging through ctx's logger.
func newRunner(ctx context.Context) *pipeline.Runner {
	return pipeline.NewRunner(loggerFromContext(ctx))
}

// =============================================================================
// Lookup caches
// =============================================================================

// openCaches opens the lookup caches of the configured backend. The
// returned function flushes and closes them.
func openCaches(ctx context.Context, cfg *config.Config) (pipeline.FamilyCaches, func() error, error) {
	stores, closers, err := openStores(ctx, cfg)
	if err != nil {
		return pipeline.FamilyCaches{}, nil, err
	}
	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return pipeline.FamilyCaches{
		Parents:  stores[cacheParents],
		LabelIDs: stores[cacheLabelIDs],
		Labels:   stores[cacheLabels],
	}, closeAll, nil
}

// openStores returns one store per mapping and the stores to close. The
// redis backend keeps every mapping in one hash, scoped by key prefix.
func openStores(ctx context.Context, cfg *config.Config) (map[string]cache.Store, []io.Closer, error) {
	stores := make(map[string]cache.Store, len(cacheMappings))

	switch cfg.Cache.Backend {
	case config.BackendNone:
		for _, name := range cacheMappings {
			stores[name] = cache.NewNullStore()
		}
		return stores, nil, nil
	case config.BackendRedis:
		shared, err := cache.OpenRedisStore(ctx, cfg.Cache.RedisURL, redisKey)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache %s: %w", redisKey, err)
		}
		for _, name := range cacheMappings {
			stores[name] = cache.NewScoped(shared, name+":")
		}
		return stores, []io.Closer{shared}, nil
	}

	dir, err := lookupCacheDir(cfg)
	if err != nil {
		return nil, nil, err
	}
	var closers []io.Closer
	for _, name := range cacheMappings {
		s, err := cache.OpenFileStore(filepath.Join(dir, name+".json"))
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, nil, fmt.Errorf("open cache %s: %w", name, err)
		}
		stores[name] = s
		closers = append(closers, s)
	}
	return stores, closers, nil
}

// newWikidata creates the Wikidata client of the configuration.
func newWikidata(cfg *config.Config) *wikidata.Client {
	return wikidata.NewClient(cfg.Family.Endpoint, cfg.Family.UserAgent, cfg.Family.Delay)
}

// =============================================================================
// Paths
// =============================================================================

// lookupCacheDir returns the configured cache directory, or the user cache
// directory when none is configured.
func lookupCacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/glfm/).
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
