package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/fallback"
	"github.com/lahtis/glfm/pkg/family"
	glfmio "github.com/lahtis/glfm/pkg/io"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/observability"
	"github.com/lahtis/glfm/pkg/source"
	"github.com/lahtis/glfm/pkg/unify"
	"github.com/lahtis/glfm/pkg/validate"
)

// Runner executes pipeline runs. Each runner carries a run id, attached to
// every log line and to the validation report.
type Runner struct {
	RunID  string
	Logger *log.Logger
}

// NewRunner creates a runner with a fresh run id.
// If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return &Runner{
		RunID:  id,
		Logger: logger.With("run", id[:8]),
	}
}

// stage runs fn as a named stage, reporting it to the stage hooks.
func (r *Runner) stage(ctx context.Context, name string, fn func() (int, error)) error {
	observability.Stage().OnStageStart(ctx, name)
	start := time.Now()
	n, err := fn()
	d := time.Since(start)
	observability.Stage().OnStageComplete(ctx, name, n, d, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.Logger.Debug("stage complete", "stage", name, "items", n, "duration", d)
	return nil
}

// =============================================================================
// Build
// =============================================================================

// Build loads the sources, unifies the catalog, validates the fallback
// graph and writes the catalog.
func (r *Runner) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if err := errors.ValidatePath(opts.OutputDir); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &BuildResult{Path: filepath.Join(opts.OutputDir, CatalogFile)}

	var set *source.Set
	err := r.stage(ctx, "load", func() (n int, err error) {
		set, err = source.Load(ctx, opts.Sources)
		if set != nil {
			n = len(set.ISO)
		}
		return n, err
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded sources",
		"iso", len(set.ISO),
		"cldr", len(set.CLDR),
		"lexical", len(set.Lexical),
		"written", len(set.Written),
		"glottolog", len(set.Glottolog))

	_ = r.stage(ctx, "unify", func() (int, error) {
		res.Catalog = unify.Catalog(set)
		return len(res.Catalog), nil
	})
	r.Logger.Info("unified catalog", "records", len(res.Catalog))

	_ = r.stage(ctx, "fallback", func() (int, error) {
		res.Diagnostics = fallback.Validate(res.Catalog)
		return res.Diagnostics.Len(), nil
	})
	if n := res.Diagnostics.Len(); n > 0 {
		r.Logger.Warn("fallback defects", "count", n, "codes", len(res.Diagnostics.Subjects()))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	err = r.stage(ctx, "write", func() (int, error) {
		return len(res.Catalog), glfmio.ExportCatalog(res.Path, res.Catalog)
	})
	if err != nil {
		return nil, err
	}

	res.Stats = Stats{
		Records:     len(res.Catalog),
		Diagnostics: res.Diagnostics.Len(),
		Duration:    time.Since(start),
	}
	r.Logger.Info("wrote catalog", "path", res.Path, "duration", res.Stats.Duration)
	return res, nil
}

// =============================================================================
// Families
// =============================================================================

// Families climbs and classifies the genealogy of every family code and
// writes the family maps.
func (r *Runner) Families(ctx context.Context, opts FamilyOptions) (*FamilyResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	var set *source.Set
	err := r.stage(ctx, "load", func() (n int, err error) {
		set, err = source.LoadFamilies(ctx, opts.Sources)
		if err != nil && opts.FromChains && errors.Is(err, errors.ErrCodeSourceFileMissing) {
			// Reclassifying only needs the sources for labels.
			set, err = source.NewSet(), nil
		}
		if set != nil {
			n = len(set.ISO) + len(set.Families)
		}
		return n, err
	})
	if err != nil {
		return nil, err
	}

	resolver, err := r.resolver(opts, set)
	if err != nil {
		return nil, err
	}

	var chains *family.Chains
	if opts.FromChains {
		err = r.stage(ctx, "chains", func() (n int, err error) {
			chains, err = loadChains(opts.OutputDir)
			if chains != nil {
				n = len(chains.Chains)
			}
			return n, err
		})
	} else {
		codes := familyCodes(set)
		r.Logger.Info("climbing families", "codes", len(codes), "strategy", opts.Strategy)
		err = r.stage(ctx, "climb", func() (n int, err error) {
			chains, err = resolver.Climb(ctx, codes)
			if chains != nil {
				n = len(chains.Chains)
			}
			return n, err
		})
	}
	if err != nil {
		return nil, err
	}

	res := &FamilyResult{}
	_ = r.stage(ctx, "classify", func() (int, error) {
		res.Families = resolver.Classify(ctx, chains)
		return len(res.Families), nil
	})

	err = r.stage(ctx, "write", func() (n int, err error) {
		res.Files, err = glfmio.ExportFamilies(opts.OutputDir, res.Families)
		return len(res.Files), err
	})
	if err != nil {
		return nil, err
	}

	res.Stats = Stats{Records: len(res.Families), Duration: time.Since(start)}
	r.Logger.Info("wrote family maps", "codes", len(res.Families), "files", len(res.Files), "duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) resolver(opts FamilyOptions, set *source.Set) (*family.Resolver, error) {
	res := &family.Resolver{
		Classifier: family.NewClassifier(opts.Generic),
		MaxDepth:   opts.MaxDepth,
		FlushEvery: opts.FlushEvery,
		Logger:     r.Logger,
	}

	switch opts.Strategy {
	case StrategyWiktionary:
		res.Lookup = family.TableLookup{Table: set.Families}
		res.Seeder = family.TableSeeder{Table: set.Families}
		res.Labeler = family.TableLabeler{Table: set.Families}
	case StrategyWikidata:
		labeler := family.NewRemoteLabeler(opts.Remote, opts.Caches.Labels, opts.Caches.LabelIDs, opts.FetchLabels, r.Logger)
		res.Lookup = family.NewRemoteLookup(opts.Remote, opts.Caches.Parents, r.Logger)
		res.Seeder = family.NewRemoteSeeder(opts.Remote, opts.Caches.LabelIDs, set, labeler, r.Logger)
		res.Labeler = labeler
		res.Stores = opts.Caches.stores()
	default:
		return nil, ValidateStrategy(opts.Strategy)
	}
	return res, nil
}

// familyCodes returns the ISO 639-5 codes of set, or the Wiktionary family
// codes when no ISO 639-5 list was loaded.
func familyCodes(set *source.Set) []string {
	var codes []string
	for code, info := range set.ISO {
		if info.ISO639_5 != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		for code := range set.Families {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// loadChains reads persisted chains and, when available, the seeds recorded
// in the full family map.
func loadChains(dir string) (*family.Chains, error) {
	chains, err := glfmio.ImportChains(dir)
	if err != nil {
		return nil, err
	}
	out := &family.Chains{Seeds: map[string]string{}, Chains: chains}
	full, err := glfmio.ImportFamilies(dir)
	if err != nil && !errors.Is(err, errors.ErrCodeSourceFileMissing) {
		return nil, err
	}
	for code, l := range full {
		if l.Seed != "" {
			out.Seeds[code] = l.Seed
		}
	}
	return out, nil
}

// =============================================================================
// Validate
// =============================================================================

// Validate runs the validators over a persisted catalog and writes the
// report into opts.OutputDir.
func (r *Runner) Validate(ctx context.Context, opts ValidateOptions) (*validate.Report, string, error) {
	validators, err := validate.ByName(opts.Validators...)
	if err != nil {
		return nil, "", err
	}
	if err := errors.ValidatePath(opts.OutputDir); err != nil {
		return nil, "", err
	}

	var catalog language.Catalog
	err = r.stage(ctx, "load", func() (n int, err error) {
		catalog, err = glfmio.ImportCatalog(opts.CatalogPath)
		return len(catalog), err
	})
	if err != nil {
		return nil, "", err
	}

	var report *validate.Report
	_ = r.stage(ctx, "validate", func() (int, error) {
		report = validate.Run(r.RunID, catalog, validators)
		return report.Total, nil
	})
	for _, name := range report.Names() {
		if n := report.Results[name].Len(); n > 0 {
			r.Logger.Warn("validation failed", "validator", name, "diagnostics", n)
		} else {
			r.Logger.Debug("validation passed", "validator", name)
		}
	}

	path := filepath.Join(opts.OutputDir, validate.ReportFile)
	err = r.stage(ctx, "write", func() (int, error) {
		return report.Total, glfmio.ExportJSON(path, report)
	})
	if err != nil {
		return nil, "", err
	}
	return report, path, nil
}

// =============================================================================
// POS statistics
// =============================================================================

// POSStats counts part-of-speech tags per language in a Wiktextract dump.
func (r *Runner) POSStats(ctx context.Context, opts POSStatsOptions) (source.POSSummary, error) {
	var sum source.POSSummary
	if err := errors.ValidatePath(opts.Output); err != nil {
		return sum, err
	}
	f, err := os.Open(opts.Input)
	if os.IsNotExist(err) {
		return sum, errors.Wrap(errors.ErrCodeSourceFileMissing, err, "wiktextract dump %q", opts.Input)
	}
	if err != nil {
		return sum, fmt.Errorf("open %s: %w", opts.Input, err)
	}
	defer f.Close()

	var stats map[string]map[string]int
	err = r.stage(ctx, "pos-stats", func() (n int, err error) {
		stats, sum, err = source.BuildPOSStats(f, strings.EqualFold(filepath.Ext(opts.Input), ".gz"))
		return sum.Entries, err
	})
	if err != nil {
		return sum, err
	}
	if sum.Malformed > 0 {
		r.Logger.Warn("skipped malformed lines", "count", sum.Malformed)
	}
	if err := glfmio.ExportJSON(opts.Output, stats); err != nil {
		return sum, err
	}
	r.Logger.Info("wrote pos stats", "path", opts.Output, "languages", len(stats), "entries", sum.Entries)
	return sum, nil
}
