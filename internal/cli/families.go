package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lahtis/glfm/internal/config"
	"github.com/lahtis/glfm/pkg/observability"
	"github.com/lahtis/glfm/pkg/pipeline"
)

// familyFlags holds the flag values of the families command.
type familyFlags struct {
	strategy   string
	outputDir  string
	maxDepth   int
	fromChains bool
	noLabels   bool
}

// familiesCommand creates the families command for resolving genealogy.
func (c *CLI) familiesCommand() *cobra.Command {
	var flags familyFlags

	cmd := &cobra.Command{
		Use:   "families",
		Short: "Resolve family genealogy and write the family maps",
		Long: `Climb the genealogy of every family code and write the chains and the four
family-level maps (macro, super_macro, ultimate_macro, full_family).

Strategies:
  wikidata    climb Wikidata "subclass of" / "part of" links (cached)
  wiktionary  climb the parent links of the Wiktionary family table (offline)`,
		Example: `  glfm families
  glfm families --strategy wiktionary
  glfm families --from-chains`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runFamilies(cmd.Context(), cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "resolution strategy: wikidata, wiktionary (default from config)")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "output directory (default from config)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "maximum chain length (default from config)")
	cmd.Flags().BoolVar(&flags.fromChains, "from-chains", false, "reclassify the persisted chains instead of climbing")
	cmd.Flags().BoolVar(&flags.noLabels, "no-labels", false, "only use cached labels")

	return cmd
}

func runFamilies(ctx context.Context, cfg *config.Config, flags familyFlags) error {
	logger := loggerFromContext(ctx)

	opts := pipeline.FamilyOptions{
		Sources:     cfg.Paths.Sources(),
		OutputDir:   firstNonEmpty(flags.outputDir, cfg.Paths.FamiliesDir),
		Strategy:    firstNonEmpty(flags.strategy, cfg.Family.Strategy),
		MaxDepth:    cfg.Family.MaxDepth,
		FlushEvery:  cfg.Family.FlushEvery,
		Generic:     cfg.Family.Generic,
		FromChains:  flags.fromChains,
		FetchLabels: !cfg.Family.SkipLabels && !flags.noLabels,
	}
	if flags.maxDepth > 0 {
		opts.MaxDepth = flags.maxDepth
	}

	if opts.Strategy == pipeline.StrategyWikidata {
		caches, closeCaches, err := openCaches(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeCaches(); err != nil {
				logger.Warn("close caches", "error", err)
			}
		}()
		opts.Caches = caches
		opts.Remote = newWikidata(cfg)
	}

	counter := &observability.LookupCounter{}
	observability.SetLookupHooks(counter)
	defer observability.SetLookupHooks(observability.NoopLookupHooks{})

	prog := newProgress(logger)
	res, err := newRunner(ctx).Families(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Classified %d families", res.Stats.Records))

	printSuccess("Family maps written")
	for _, f := range res.Files {
		printFile(f)
	}
	if opts.Strategy == pipeline.StrategyWikidata && !opts.FromChains {
		hits, misses, failures, flushes := counter.Snapshot()
		printLookupStats(hits, misses, failures, flushes)
		if failures > 0 {
			printWarning("%d lookups failed and were not cached; rerun to retry them", failures)
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
