package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"inventory-sync/core/cache"
	"inventory-sync/core/entity"
	"inventory-sync/core/registry"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrMalformedResponse means the registry confirmed a create but the
	// response carried no identifier. The registry violated its contract;
	// the owning device's resolution fails.
	ErrMalformedResponse = errors.New("registry create response has no identifier")

	// ErrCreateFailed means the create was rejected and the fallback
	// lookup found no existing entity for the natural key either.
	ErrCreateFailed = errors.New("create failed with no existing match")

	// ErrEmptyKey means the draft's name slugs down to nothing, so there
	// is no natural key to resolve by.
	ErrEmptyKey = errors.New("entity has empty natural key")
)

// Resolver runs the find-or-create protocol against one registry using
// one run-scoped cache. Safe for concurrent use.
type Resolver struct {
	api   *registry.Client
	cache *cache.Cache
	log   *zap.Logger

	// skipLookup disables the fallback lookup after a failed create.
	// Cheaper, but not race-safe when another writer can create the same
	// natural key concurrently.
	skipLookup bool

	sf singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSkipLookup disables the race-fallback lookup. Only suitable when
// this process is the registry's sole writer.
func WithSkipLookup() Option {
	return func(r *Resolver) { r.skipLookup = true }
}

// New creates a resolver over the given registry client and cache.
func New(api *registry.Client, c *cache.Cache, log *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{api: api, cache: c, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure guarantees that draft exists in the registry and has its
// identifier populated. At most one entity per (kind, natural key) is
// created for the whole run.
func Ensure[T entity.Model](ctx context.Context, r *Resolver, store *cache.Store[T], draft T) error {
	key := draft.CacheKey()
	if key == "" {
		return fmt.Errorf("%s: %w", draft.Endpoint(), ErrEmptyKey)
	}

	// Optimistic path: already resolved this run.
	if cached, ok := store.Get(key); ok && cached.GetID() != 0 {
		r.log.Debug("cache hit", zap.String("endpoint", draft.Endpoint()), zap.String("key", key), zap.Int("id", cached.GetID()))
		draft.SetID(cached.GetID())
		return nil
	}
	r.log.Debug("cache miss", zap.String("endpoint", draft.Endpoint()), zap.String("key", key))

	// Collapse concurrent resolutions of the same (kind, key): one caller
	// performs the create, the rest adopt its result.
	sfKey := draft.Endpoint() + "|" + key
	id, err, _ := r.sf.Do(sfKey, func() (any, error) {
		if cached, ok := store.Get(key); ok && cached.GetID() != 0 {
			return cached.GetID(), nil
		}
		return findOrCreate(ctx, r, store, draft, key)
	})
	if err != nil {
		return err
	}

	draft.SetID(id.(int))
	return nil
}

// findOrCreate issues the create and, when the registry rejects it,
// converges on the entity another writer created for the same key.
func findOrCreate[T entity.Model](ctx context.Context, r *Resolver, store *cache.Store[T], draft T, key string) (int, error) {
	body, err := draft.CreateBody()
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", draft.Endpoint(), key, err)
	}

	created, createErr := registry.Create[T](ctx, r.api, draft.Endpoint(), body)
	if createErr == nil {
		id := created.GetID()
		if id == 0 {
			return 0, fmt.Errorf("%s %q: %w", draft.Endpoint(), key, ErrMalformedResponse)
		}
		r.log.Info("created", zap.String("endpoint", draft.Endpoint()), zap.String("key", key), zap.Int("id", id))
		store.Put(key, created)
		return id, nil
	}

	if r.skipLookup {
		return 0, fmt.Errorf("%s %q: %w", draft.Endpoint(), key, createErr)
	}

	// The create may have lost a race against another writer. A filtered
	// lookup by natural key resolves the conflict by convergence.
	field, value := draft.FilterBy()
	filter := url.Values{}
	filter.Set(field, value)

	matches, lookupErr := registry.List[T](ctx, r.api, draft.Endpoint(), filter)
	if lookupErr != nil || len(matches) != 1 {
		r.log.Warn("fallback lookup did not converge",
			zap.String("endpoint", draft.Endpoint()),
			zap.String("key", key),
			zap.Int("matches", len(matches)),
			zap.Error(lookupErr))
		return 0, fmt.Errorf("%s %q: %w: %w", draft.Endpoint(), key, ErrCreateFailed, createErr)
	}

	existing := matches[0]
	if existing.GetID() == 0 {
		return 0, fmt.Errorf("%s %q: %w", draft.Endpoint(), key, ErrMalformedResponse)
	}

	r.log.Debug("adopted existing", zap.String("endpoint", draft.Endpoint()), zap.String("key", key), zap.Int("id", existing.GetID()))
	store.Put(key, existing)
	return existing.GetID(), nil
}
