package family

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lahtis/glfm/pkg/cache"
	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/observability"
	"github.com/lahtis/glfm/pkg/source"
)

// Remote is the genealogy API a RemoteLookup consults. It is satisfied by
// *wikidata.Client.
type Remote interface {
	Parents(ctx context.Context, id string) ([]string, error)
	Search(ctx context.Context, label string) (string, bool, error)
	Labels(ctx context.Context, ids []string) (map[string]string, error)
}

// RemoteLookup answers parents from a remote API, memoized in a store.
// Successful answers, empty ones included, are cached; failures are not,
// so a later run retries them.
type RemoteLookup struct {
	remote  Remote
	parents cache.Store
	logger  *log.Logger
}

// NewRemoteLookup creates a lookup backed by remote and the id→parents store.
func NewRemoteLookup(remote Remote, parents cache.Store, logger *log.Logger) *RemoteLookup {
	if parents == nil {
		parents = cache.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RemoteLookup{remote: remote, parents: parents, logger: logger}
}

// Parents returns the cached or fetched parents of node.
func (r *RemoteLookup) Parents(ctx context.Context, node string) []string {
	var cached []string
	if hit, err := r.parents.Get(ctx, node, &cached); err == nil && hit {
		observability.Lookup().OnLookup(ctx, node, true)
		return cached
	}
	observability.Lookup().OnLookup(ctx, node, false)

	parents, err := r.remote.Parents(ctx, node)
	if err != nil {
		if ctx.Err() == nil {
			err = errors.Wrap(errors.ErrCodeRemoteLookupFailure, err, "parents of %s", node)
			r.logger.Warn("remote lookup failed", "node", node, "err", err)
			observability.Lookup().OnLookupFailure(ctx, node, err)
		}
		return nil
	}
	if err := r.parents.Set(ctx, node, parents); err != nil {
		r.logger.Warn("cache write failed", "node", node, "err", err)
	}
	return parents
}

// Seeder finds the genealogy node a family code starts climbing from.
type Seeder interface {
	Seed(ctx context.Context, code string) (string, bool)
}

// TableSeeder seeds each Wiktionary family code with itself.
type TableSeeder struct {
	Table source.FamilyTable
}

// Seed returns code when the family module knows it.
func (t TableSeeder) Seed(_ context.Context, code string) (string, bool) {
	_, ok := t.Table[code]
	return code, ok
}

// RemoteSeeder maps a family code to a Wikidata id: the Wiktionary
// family's declared item when there is one, else a label search on the
// family's name. Searches are memoized in the label→id store, misses
// included.
type RemoteSeeder struct {
	remote   Remote
	labelIDs cache.Store
	families source.FamilyTable
	iso      map[string]source.ISOInfo
	labeler  *RemoteLabeler
	logger   *log.Logger
}

// NewRemoteSeeder creates a seeder. labeler, when not nil, learns the
// label of every id the seeder resolves.
func NewRemoteSeeder(remote Remote, labelIDs cache.Store, set *source.Set, labeler *RemoteLabeler, logger *log.Logger) *RemoteSeeder {
	if labelIDs == nil {
		labelIDs = cache.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RemoteSeeder{
		remote:   remote,
		labelIDs: labelIDs,
		families: set.Families,
		iso:      set.ISO,
		labeler:  labeler,
		logger:   logger,
	}
}

// Seed returns the Wikidata id for code.
func (s *RemoteSeeder) Seed(ctx context.Context, code string) (string, bool) {
	if e, ok := s.families[code]; ok && e.WikidataItem != "" {
		s.labeler.Remember(e.WikidataItem, e.CanonicalName)
		return e.WikidataItem, true
	}

	label := s.iso[code].Name
	if label == "" {
		label = s.families[code].CanonicalName
	}
	if label == "" {
		return "", false
	}

	var id string
	if hit, err := s.labelIDs.Get(ctx, label, &id); err == nil && hit {
		observability.Lookup().OnLookup(ctx, label, true)
		s.labeler.Remember(id, label)
		return id, id != ""
	}
	observability.Lookup().OnLookup(ctx, label, false)

	id, found, err := s.remote.Search(ctx, label)
	if err != nil {
		if ctx.Err() == nil {
			err = errors.Wrap(errors.ErrCodeRemoteLookupFailure, err, "search %q", label)
			s.logger.Warn("label search failed", "code", code, "label", label, "err", err)
			observability.Lookup().OnLookupFailure(ctx, label, err)
		}
		return "", false
	}
	if !found {
		id = ""
	}
	if err := s.labelIDs.Set(ctx, label, id); err != nil {
		s.logger.Warn("cache write failed", "label", label, "err", err)
	}
	s.labeler.Remember(id, label)
	return id, found
}

// RemoteLabeler resolves Wikidata labels. Labels learned while seeding are
// used first, then the inverted label→id store, then the id→label store,
// then (when fetch is enabled) the remote API.
type RemoteLabeler struct {
	remote   Remote
	store    cache.Store
	labelIDs cache.Store
	fetch    bool
	logger   *log.Logger

	mu       sync.Mutex
	learned  map[string]string
	inverted map[string]string
	invert   sync.Once
}

// NewRemoteLabeler creates a labeler over the id→label store. labelIDs is
// the label→id store the seeder fills; its entries name the ids they map to.
func NewRemoteLabeler(remote Remote, store, labelIDs cache.Store, fetch bool, logger *log.Logger) *RemoteLabeler {
	if store == nil {
		store = cache.NewNullStore()
	}
	if labelIDs == nil {
		labelIDs = cache.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RemoteLabeler{
		remote:   remote,
		store:    store,
		labelIDs: labelIDs,
		fetch:    fetch,
		logger:   logger,
		learned:  map[string]string{},
	}
}

// Remember records label for id. The first label recorded wins.
func (l *RemoteLabeler) Remember(id, label string) {
	if l == nil || id == "" || label == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.learned[id]; !ok {
		l.learned[id] = label
	}
}

// known returns a label learned this run or found in the label→id store.
func (l *RemoteLabeler) known(ctx context.Context, id string) (string, bool) {
	l.invert.Do(func() { l.inverted = l.invertLabelIDs(ctx) })

	l.mu.Lock()
	defer l.mu.Unlock()
	if label, ok := l.learned[id]; ok {
		return label, true
	}
	label, ok := l.inverted[id]
	return label, ok
}

// invertLabelIDs maps each id of the label→id store to the first label (in
// key order) that names it. Cached misses map to "" and are skipped.
func (l *RemoteLabeler) invertLabelIDs(ctx context.Context) map[string]string {
	out := make(map[string]string)
	_, err := cache.Range(ctx, l.labelIDs, func(label string, decode func(any) error) error {
		var id string
		if err := decode(&id); err != nil || id == "" {
			return nil
		}
		if _, ok := out[id]; !ok {
			out[id] = label
		}
		return nil
	})
	if err != nil {
		l.logger.Warn("read label cache failed", "err", err)
	}
	return out
}

// Label returns the label of id.
func (l *RemoteLabeler) Label(ctx context.Context, id string) (string, bool) {
	if label, ok := l.known(ctx, id); ok {
		return label, true
	}

	var label string
	if hit, err := l.store.Get(ctx, id, &label); err == nil && hit {
		return label, label != ""
	}
	if !l.fetch {
		return "", false
	}
	l.Prefetch(ctx, []string{id})
	_, _ = l.store.Get(ctx, id, &label)
	return label, label != ""
}

// Prefetch fetches the labels of the ids not yet known, in batches, and
// stores them. Ids the remote has no label for are stored as empty so they
// are not asked for again.
func (l *RemoteLabeler) Prefetch(ctx context.Context, ids []string) {
	if !l.fetch {
		return
	}
	var missing []string
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := l.known(ctx, id); ok {
			continue
		}
		var label string
		if hit, err := l.store.Get(ctx, id, &label); err == nil && hit {
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)

	labels, err := l.remote.Labels(ctx, missing)
	if err != nil && ctx.Err() == nil {
		err = errors.Wrap(errors.ErrCodeRemoteLookupFailure, err, "labels for %d ids", len(missing))
		l.logger.Warn("label fetch failed", "err", err)
		observability.Lookup().OnLookupFailure(ctx, "labels", err)
	}
	for _, id := range missing {
		label, ok := labels[id]
		if !ok && err != nil {
			continue
		}
		if serr := l.store.Set(ctx, id, label); serr != nil {
			l.logger.Warn("cache write failed", "id", id, "err", serr)
		}
	}
}
