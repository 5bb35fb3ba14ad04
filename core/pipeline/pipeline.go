package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"inventory-sync/core/cache"
	"inventory-sync/core/consolidate"
	"inventory-sync/core/entity"
	"inventory-sync/core/registry"
	"inventory-sync/core/resolve"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is one external inventory system. Fetch returns the source's
// native records already wrapped as merge contributions.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Fetch pulls all records from the source.
	Fetch(ctx context.Context) ([]consolidate.Record, error)
}

// Pipeline drives one full run against a single registry.
type Pipeline struct {
	api         *registry.Client
	cache       *cache.Cache
	resolver    *resolve.Resolver
	sources     []Source
	log         *zap.Logger
	concurrency int
}

// New assembles a pipeline. Concurrency below one falls back to the
// config default.
func New(api *registry.Client, c *cache.Cache, r *resolve.Resolver, sources []Source, log *zap.Logger, cfg Config) *Pipeline {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 10
	}
	return &Pipeline{
		api:         api,
		cache:       c,
		resolver:    r,
		sources:     sources,
		log:         log,
		concurrency: concurrency,
	}
}

// Preload warms the cache by paginating every reference-entity collection
// from the registry, concurrently per kind. A kind that fails to load is
// logged and left cold: that only costs extra creates later, not
// correctness.
func (p *Pipeline) Preload(ctx context.Context) {
	var wg sync.WaitGroup

	warm := func(fn func() (string, int, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label, n, err := fn()
			if err != nil {
				p.log.Warn("cache preload failed", zap.String("kind", label), zap.Error(err))
				return
			}
			p.log.Debug("cache preloaded", zap.String("kind", label), zap.Int("count", n))
		}()
	}

	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointManufacturers, p.cache.Manufacturers)
		return "manufacturer", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointDeviceTypes, p.cache.DeviceTypes)
		return "device-type", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointDeviceRoles, p.cache.Roles)
		return "device-role", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointSites, p.cache.Sites)
		return "site", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointPlatforms, p.cache.Platforms)
		return "platform", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointTags, p.cache.Tags)
		return "tag", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointContacts, p.cache.Contacts)
		return "contact", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointVirtualMachines, p.cache.VirtualMachines)
		return "virtual-machine", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointIPAddresses, p.cache.IPAddresses)
		return "ip-address", n, err
	})
	warm(func() (string, int, error) {
		n, err := preloadStore(ctx, p.api, entity.EndpointDevices, p.cache.Devices)
		return "device", n, err
	})

	wg.Wait()
}

// preloadStore lists one collection and indexes it by natural key.
func preloadStore[T entity.Model](ctx context.Context, api *registry.Client, endpoint string, store *cache.Store[T]) (int, error) {
	items, err := registry.List[T](ctx, api, endpoint, nil)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if key := item.CacheKey(); key != "" {
			store.Put(key, item)
		}
	}
	return len(items), nil
}

// Run executes one full synchronization and returns its report. The
// report always comes back, including when every device failed; only the
// surrounding process decides whether that is fatal.
func (p *Pipeline) Run(ctx context.Context) *Report {
	report := &Report{
		RunID:        uuid.NewString(),
		Started:      time.Now(),
		SourceCounts: make(map[string]int),
	}
	log := p.log.With(zap.String("run_id", report.RunID))
	log.Info("sync run starting", zap.Int("sources", len(p.sources)), zap.Int("concurrency", p.concurrency))

	prep := time.Now()
	p.Preload(ctx)
	batches := p.fetchSources(ctx, log, report)
	report.PrepDuration = time.Since(prep)

	step := time.Now()
	report.Devices = consolidate.Devices(batches...)
	report.ConsolidateDuration = time.Since(step)
	log.Info("consolidated devices", zap.Int("count", len(report.Devices)))

	step = time.Now()
	report.Outcomes = p.pushAll(ctx, log, report.Devices)
	report.SyncDuration = time.Since(step)

	report.Finished = time.Now()
	report.Summary = summarize(report)
	log.Info("sync run finished",
		zap.Int("devices", report.Summary.Devices),
		zap.Int("created", report.Summary.Created),
		zap.Int("updated", report.Summary.Updated),
		zap.Int("failed", report.Summary.Failed),
		zap.Duration("prep", report.PrepDuration),
		zap.Duration("consolidate", report.ConsolidateDuration),
		zap.Duration("sync", report.SyncDuration))

	return report
}

// fetchSources pulls every source concurrently. A failing source yields
// an empty batch and a warning, never a run failure.
func (p *Pipeline) fetchSources(ctx context.Context, log *zap.Logger, report *Report) [][]consolidate.Record {
	batches := make([][]consolidate.Record, len(p.sources))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			records, err := src.Fetch(ctx)
			if err != nil {
				log.Warn("source fetch failed", zap.String("source", src.Name()), zap.Error(err))
				records = nil
			}
			batches[i] = records
			mu.Lock()
			report.SourceCounts[src.Name()] = len(records)
			mu.Unlock()
			log.Info("source fetched", zap.String("source", src.Name()), zap.Int("records", len(records)))
		}(i, src)
	}
	wg.Wait()

	return batches
}

// pushAll pushes every consolidated draft with bounded concurrency and
// collects per-device outcomes. No device failure aborts a sibling.
func (p *Pipeline) pushAll(ctx context.Context, log *zap.Logger, devices map[string]*entity.Device) []Outcome {
	outcomes := make([]Outcome, 0, len(devices))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for key, draft := range devices {
		key, draft := key, draft
		g.Go(func() error {
			action, err := p.pushDevice(ctx, draft)

			outcome := Outcome{Key: key, Action: action}
			if err != nil {
				outcome.Error = err.Error()
				log.Error("device sync failed", zap.String("device", key), zap.Error(err))
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Key < outcomes[j].Key })
	return outcomes
}

// pushDevice resolves one draft's components and performs the
// create-or-update against the registry.
func (p *Pipeline) pushDevice(ctx context.Context, d *entity.Device) (string, error) {
	if err := p.resolver.EnsureDeviceComponents(ctx, d); err != nil {
		return "failed", err
	}

	body, err := d.CreateBody()
	if err != nil {
		return "failed", err
	}

	key := d.CacheKey()
	if cached, ok := p.cache.Devices.Get(key); ok && cached.GetID() != 0 {
		updated, err := registry.Update[*entity.Device](ctx, p.api, d.Endpoint(), cached.GetID(), body)
		if err != nil {
			return "failed", err
		}
		d.SetID(updated.GetID())
		p.cache.Devices.Put(key, updated)
		return "updated", nil
	}

	created, err := registry.Create[*entity.Device](ctx, p.api, d.Endpoint(), body)
	if err != nil {
		return "failed", err
	}
	if created.GetID() == 0 {
		return "failed", resolve.ErrMalformedResponse
	}
	d.SetID(created.GetID())
	p.cache.Devices.Put(key, created)
	return "created", nil
}

// SyncContacts resolves contact drafts against the registry with the same
// bounded fan-out as devices. Failures are logged and counted, never
// fatal.
func (p *Pipeline) SyncContacts(ctx context.Context, contacts []*entity.Contact) []Outcome {
	outcomes := make([]Outcome, 0, len(contacts))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, contact := range contacts {
		contact := contact
		g.Go(func() error {
			outcome := Outcome{Key: contact.CacheKey(), Action: "created"}
			if err := p.resolver.EnsureContact(ctx, contact); err != nil {
				outcome.Action = "failed"
				outcome.Error = err.Error()
				p.log.Warn("contact sync failed", zap.String("contact", contact.Name), zap.Error(err))
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func summarize(report *Report) Summary {
	s := Summary{Devices: len(report.Devices)}
	for _, o := range report.Outcomes {
		switch {
		case o.Error != "":
			s.Failed++
		case o.Action == "updated":
			s.Updated++
		case o.Action == "created":
			s.Created++
		}
	}
	return s
}
