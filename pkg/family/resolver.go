package family

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lahtis/glfm/pkg/cache"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/observability"
)

// DefaultFlushEvery is how many codes are climbed between cache flushes.
const DefaultFlushEvery = 20

// Prefetcher is implemented by labelers that can resolve many labels in
// one round trip.
type Prefetcher interface {
	Prefetch(ctx context.Context, ids []string)
}

// Resolver climbs and classifies the genealogy of many codes.
type Resolver struct {
	Lookup     Lookup
	Seeder     Seeder
	Labeler    Labeler
	Classifier *Classifier

	MaxDepth   int
	FlushEvery int
	Stores     []cache.Store // flushed every FlushEvery codes and at the end
	Logger     *log.Logger
}

// Chains holds the climb results of a run.
type Chains struct {
	Seeds  map[string]string   `json:"seeds"`
	Chains map[string][]string `json:"chains"`
}

func (r *Resolver) defaults() {
	if r.MaxDepth <= 0 {
		r.MaxDepth = DefaultMaxDepth
	}
	if r.FlushEvery <= 0 {
		r.FlushEvery = DefaultFlushEvery
	}
	if r.Classifier == nil {
		r.Classifier = NewClassifier(nil)
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
}

// Climb seeds and climbs every code, in sorted order. Codes without a seed
// get an empty chain. Stores are flushed periodically and before
// returning, including on cancellation, so finished lookups survive.
func (r *Resolver) Climb(ctx context.Context, codes []string) (*Chains, error) {
	r.defaults()
	sorted := append([]string(nil), codes...)
	sort.Strings(sorted)

	out := &Chains{
		Seeds:  make(map[string]string, len(sorted)),
		Chains: make(map[string][]string, len(sorted)),
	}
	start := time.Now()
	for i, code := range sorted {
		if err := ctx.Err(); err != nil {
			r.flush(context.WithoutCancel(ctx))
			return out, err
		}

		seed, ok := r.Seeder.Seed(ctx, code)
		if !ok {
			r.Logger.Debug("no seed", "code", code)
			out.Chains[code] = []string{}
			continue
		}
		out.Seeds[code] = seed
		out.Chains[code] = Climb(ctx, seed, r.Lookup, r.MaxDepth)
		r.Logger.Debug("climbed", "code", code, "seed", seed, "depth", len(out.Chains[code]))

		if (i+1)%r.FlushEvery == 0 {
			r.flush(ctx)
			r.Logger.Info("progress", "codes", i+1, "of", len(sorted), "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}
	r.flush(ctx)
	return out, ctx.Err()
}

// Classify reduces climbed chains to lineages, prefetching labels first
// when the labeler supports it.
func (r *Resolver) Classify(ctx context.Context, c *Chains) language.FamilyMap {
	r.defaults()
	if p, ok := r.Labeler.(Prefetcher); ok {
		var ids []string
		for code, chain := range c.Chains {
			ids = append(ids, r.Classifier.Ancestors(chain)...)
			if seed := c.Seeds[code]; seed != "" {
				ids = append(ids, seed)
			}
		}
		p.Prefetch(ctx, ids)
		r.flush(ctx)
	}
	return r.Classifier.Classify(ctx, c.Seeds, c.Chains, r.Labeler)
}

// Resolve climbs and classifies codes.
func (r *Resolver) Resolve(ctx context.Context, codes []string) (language.FamilyMap, *Chains, error) {
	chains, err := r.Climb(ctx, codes)
	if err != nil {
		return nil, chains, err
	}
	return r.Classify(ctx, chains), chains, nil
}

func (r *Resolver) flush(ctx context.Context) {
	for _, s := range r.Stores {
		if err := s.Flush(ctx); err != nil {
			r.Logger.Warn("cache flush failed", "err", err)
		}
	}
	observability.Lookup().OnFlush(ctx, len(r.Stores))
}
