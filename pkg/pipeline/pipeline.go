// Package pipeline runs the GLFM stages end to end.
//
// This package wires the library packages into the runs the command line
// exposes, so every entry point (CLI, tests, the API server) loads,
// resolves and persists data the same way.
//
// # Stages
//
// A build run:
//
//  1. Load: read every source file (ISO 639, CLDR, Wiktionary, ...)
//  2. Unify: one record per ISO code, with derived script, region, tag
//     and fallback
//  3. Fallback: validate the fallback graph
//  4. Write: persist the catalog
//
// A family run loads the ISO 639-5 and Wiktionary family sources, climbs a
// parent chain per family code, classifies the chains and writes the family
// maps. With FromChains set it reuses persisted chains and only
// reclassifies.
//
// A missing required source aborts the run before anything is written.
// Data-quality defects never abort: they are returned as diagnostics.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Build(ctx, pipeline.BuildOptions{
//	    Sources:   paths,
//	    OutputDir: "output",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Diagnostics.Len())
package pipeline

import (
	"time"

	"github.com/lahtis/glfm/pkg/cache"
	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/family"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// CatalogFile is the file name of the persisted catalog.
	CatalogFile = "unified_languages.json"

	// POSStatsFile is the default output of the POS statistics builder.
	POSStatsFile = "pos_stats.json"
)

// Family resolution strategies.
const (
	StrategyWikidata   = "wikidata"
	StrategyWiktionary = "wiktionary"
)

// DefaultStrategy is the family strategy used when none is given.
const DefaultStrategy = StrategyWikidata

// ValidStrategies is the set of supported family strategies.
var ValidStrategies = map[string]bool{
	StrategyWikidata:   true,
	StrategyWiktionary: true,
}

// =============================================================================
// Options
// =============================================================================

// BuildOptions configures a catalog build.
type BuildOptions struct {
	Sources   source.Paths
	OutputDir string
}

// FamilyCaches are the stores the remote strategy memoizes into. Nil stores
// disable caching for that mapping.
type FamilyCaches struct {
	Parents  cache.Store // node id → parent ids
	LabelIDs cache.Store // label → node id ("" for a miss)
	Labels   cache.Store // node id → label
}

func (c FamilyCaches) stores() []cache.Store {
	var out []cache.Store
	for _, s := range []cache.Store{c.Parents, c.LabelIDs, c.Labels} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// FamilyOptions configures a family run.
type FamilyOptions struct {
	Sources   source.Paths
	OutputDir string

	Strategy   string
	MaxDepth   int
	FlushEvery int
	Generic    []string

	// FromChains reclassifies the chains persisted in OutputDir instead of
	// climbing again.
	FromChains bool

	// FetchLabels allows the remote strategy to fetch labels it has not
	// cached.
	FetchLabels bool

	// Remote is required by the wikidata strategy.
	Remote family.Remote
	Caches FamilyCaches
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *FamilyOptions) ValidateAndSetDefaults() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := errors.ValidatePath(o.OutputDir); err != nil {
		return err
	}
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max depth must be positive, got %d", o.MaxDepth)
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = family.DefaultMaxDepth
	}
	if o.FlushEvery <= 0 {
		o.FlushEvery = family.DefaultFlushEvery
	}
	if o.Generic == nil {
		o.Generic = family.DefaultGeneric
	}
	if o.Strategy == StrategyWikidata && o.Remote == nil {
		return errors.New(errors.ErrCodeInvalidInput, "the %s strategy needs a remote client", o.Strategy)
	}
	return nil
}

// ValidateOptions configures a validation run.
type ValidateOptions struct {
	CatalogPath string
	OutputDir   string
	Validators  []string // empty runs all
}

// POSStatsOptions configures the POS statistics builder.
type POSStatsOptions struct {
	Input  string // Wiktextract JSONL dump, optionally .gz
	Output string
}

// =============================================================================
// Results
// =============================================================================

// BuildResult is the outcome of a catalog build.
type BuildResult struct {
	Catalog     language.Catalog
	Diagnostics errors.List
	Path        string
	Stats       Stats
}

// FamilyResult is the outcome of a family run.
type FamilyResult struct {
	Families language.FamilyMap
	Files    []string
	Stats    Stats
}

// Stats contains run statistics.
type Stats struct {
	Records     int
	Diagnostics int
	Duration    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateStrategy checks that a family strategy is valid.
func ValidateStrategy(strategy string) error {
	if !ValidStrategies[strategy] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid strategy: %q (must be one of: %s, %s)", strategy, StrategyWikidata, StrategyWiktionary)
	}
	return nil
}
