package attr

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DataSource supplies the attribute catalogue and per-id raw relation maps.
// Implemented by aolaapi.Client; tests substitute fakes.
type DataSource interface {
	FetchAttributes(ctx context.Context) ([]Attribute, error)
	FetchRelations(ctx context.Context, id int) (RawRelations, error)
}

// preloadConcurrency bounds the defend-direction relation fan-out.
const preloadConcurrency = 8

// Repository caches the catalogue and raw relation maps for the process
// lifetime. Entries are fetched lazily on first need and never invalidated
// here; any refresh policy belongs to the data source. Safe for concurrent
// use: entries are immutable once written.
type Repository struct {
	source DataSource

	mu        sync.RWMutex
	attrs     []Attribute
	byID      map[int]string
	relations map[int]RawRelations
}

// NewRepository creates a repository over the given data source.
func NewRepository(source DataSource) *Repository {
	return &Repository{
		source:    source,
		relations: make(map[int]RawRelations),
	}
}

// Attributes returns the catalogue sorted by id, fetching it on first call.
func (r *Repository) Attributes(ctx context.Context) ([]Attribute, error) {
	r.mu.RLock()
	attrs := r.attrs
	r.mu.RUnlock()
	if attrs != nil {
		return attrs, nil
	}

	fetched, err := r.source.FetchAttributes(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].ID < fetched[j].ID })

	byID := make(map[int]string, len(fetched))
	for _, a := range fetched {
		byID[a.ID] = a.Name
	}

	r.mu.Lock()
	if r.attrs == nil {
		r.attrs, r.byID = fetched, byID
	}
	attrs = r.attrs
	r.mu.Unlock()
	return attrs, nil
}

// NameIndex returns the id→name catalogue index, fetching the catalogue if
// needed.
func (r *Repository) NameIndex(ctx context.Context) (map[int]string, error) {
	if _, err := r.Attributes(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID, nil
}

// Find resolves an attribute by id, returning ok=false when the id is not in
// the catalogue.
func (r *Repository) Find(ctx context.Context, id int) (Attribute, bool, error) {
	index, err := r.NameIndex(ctx)
	if err != nil {
		return Attribute{}, false, err
	}
	name, ok := index[id]
	return Attribute{ID: id, Name: name}, ok, nil
}

// Relations returns the raw relation map for id, fetching it on first call.
func (r *Repository) Relations(ctx context.Context, id int) (RawRelations, error) {
	r.mu.RLock()
	cached, ok := r.relations[id]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	fetched, err := r.source.FetchRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.relations[id]; ok {
		fetched = existing
	} else {
		r.relations[id] = fetched
	}
	r.mu.Unlock()
	return fetched, nil
}

// Lookup returns a RelationLookup over the maps already resident in the
// repository. It never fetches.
func (r *Repository) Lookup() RelationLookup {
	return func(id int) (RawRelations, bool) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		rel, ok := r.relations[id]
		return rel, ok
	}
}

// PreloadRelations fetches the raw relation map of every attribute except
// subjectID, so that defend-direction classification sees a fully populated
// lookup. Fetches run with bounded concurrency; the first error aborts the
// remaining fetches.
func (r *Repository) PreloadRelations(ctx context.Context, subjectID int) error {
	attrs, err := r.Attributes(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, a := range attrs {
		if a.ID == subjectID {
			continue
		}
		g.Go(func() error {
			_, err := r.Relations(ctx, a.ID)
			return err
		})
	}
	return g.Wait()
}
