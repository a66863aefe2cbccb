package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/internal/config"
	"github.com/lahtis/glfm/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the genealogy lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			switch cfg.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled")
				return nil
			case config.BackendRedis:
				n, err := clearRedis(cmd.Context(), cfg.Cache.RedisURL)
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Redis: %s", cfg.Cache.RedisURL)
				return nil
			}

			dir, err := lookupCacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			n, err := clearFiles(dir)
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cache files", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearFiles removes the cache mapping files from dir.
func clearFiles(dir string) (int, error) {
	count := 0
	for _, name := range cacheMappings {
		err := os.Remove(filepath.Join(dir, name+".json"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func clearRedis(ctx context.Context, url string) (int64, error) {
	s, err := cache.OpenRedisStore(ctx, url, redisKey)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	n, err := s.Len(ctx)
	if err != nil {
		return 0, err
	}
	return n, s.Clear(ctx)
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, err := lookupCacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached entries per mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			printKeyValue("Backend", cfg.Cache.Backend)
			if cfg.Cache.Backend == config.BackendRedis {
				s, err := cache.OpenRedisStore(ctx, cfg.Cache.RedisURL, redisKey)
				if err != nil {
					return err
				}
				defer s.Close()
				n, err := s.Len(ctx)
				if err != nil {
					return err
				}
				printKeyValue(redisKey, formatInt(n))
				return nil
			}
			for _, name := range cacheMappings {
				n, err := countEntries(cfg, name)
				if err != nil {
					return err
				}
				printKeyValue(name, formatInt(n))
			}
			return nil
		},
	}
}

func countEntries(cfg *config.Config, name string) (int64, error) {
	if cfg.Cache.Backend == config.BackendNone {
		return 0, nil
	}
	dir, err := lookupCacheDir(cfg)
	if err != nil {
		return 0, err
	}
	s, err := cache.OpenFileStore(filepath.Join(dir, name+".json"))
	if err != nil {
		return 0, err
	}
	return int64(s.Len()), nil
}
