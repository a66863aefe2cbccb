package config

import (
	"fmt"
	"net/url"

	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/pipeline"
)

// Validate checks values the struct tags cannot express.
func (c *Config) Validate() error {
	if err := pipeline.ValidateStrategy(c.Family.Strategy); err != nil {
		return fmt.Errorf("family.strategy: %w", err)
	}
	if c.Family.MaxDepth <= 0 {
		return fmt.Errorf("family.max_depth must be > 0 (got %d)", c.Family.MaxDepth)
	}
	if c.Family.FlushEvery <= 0 {
		return fmt.Errorf("family.flush_every must be > 0 (got %d)", c.Family.FlushEvery)
	}
	if c.Family.Delay < 0 {
		return fmt.Errorf("family.delay must be >= 0 (got %s)", c.Family.Delay)
	}
	for _, id := range c.Family.Generic {
		if err := errors.ValidateQID(id); err != nil {
			return fmt.Errorf("family.generic: %w", err)
		}
	}
	if err := errors.ValidateURL(c.Family.Endpoint); err != nil {
		return fmt.Errorf("family.endpoint: %w", err)
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if _, err := url.Parse(c.Cache.RedisURL); err != nil || c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is invalid: %q", c.Cache.RedisURL)
		}
	default:
		return fmt.Errorf("cache.backend must be one of %s, %s, %s (got %q)", BackendFile, BackendRedis, BackendNone, c.Cache.Backend)
	}

	for name, p := range map[string]string{
		"paths.data_dir":     c.Paths.DataDir,
		"paths.output_dir":   c.Paths.OutputDir,
		"paths.families_dir": c.Paths.FamiliesDir,
	} {
		if err := errors.ValidatePath(p); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
