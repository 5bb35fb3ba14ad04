package cmd

import (
	"context"

	"inventory-sync/core/cache"
	"inventory-sync/core/config"
	"inventory-sync/core/database"
	"inventory-sync/core/entity"
	"inventory-sync/core/pipeline"
	"inventory-sync/core/registry"
	"inventory-sync/core/resolve"
	"inventory-sync/core/runlog"
	"inventory-sync/core/storage"
	"inventory-sync/feature/fortigate"
	"inventory-sync/feature/intune"
	"inventory-sync/feature/nagios"

	"go.uber.org/zap"
)

// app bundles the wired synchronization engine with its optional
// persistence side cars.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	pipe     *pipeline.Pipeline
	intune   *intune.Client
	recorder *runlog.Recorder
	archiver *storage.Archiver
}

// buildApp wires configuration into a ready synchronization engine.
// Optional pieces (sources, database, storage) that fail to initialize
// are logged and skipped so one broken system never blocks the rest.
func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) *app {
	api := registry.NewClient(cfg.Registry)
	store := cache.New()

	var opts []resolve.Option
	if cfg.Sync.SkipLookup {
		opts = append(opts, resolve.WithSkipLookup())
	}
	resolver := resolve.New(api, store, log, opts...)

	a := &app{cfg: cfg, log: log}

	var sources []pipeline.Source

	if cfg.Sources.Intune.Enabled {
		if client, err := intune.Connect(ctx, cfg.Sources.Intune); err != nil {
			log.Warn("intune source disabled", zap.Error(err))
		} else {
			a.intune = client
			sources = append(sources, intune.NewSource(client, cfg.Sources.Intune))
		}
	}
	if cfg.Sources.Fortigate.Enabled {
		if client, err := fortigate.NewClient(cfg.Sources.Fortigate); err != nil {
			log.Warn("fortigate source disabled", zap.Error(err))
		} else {
			sources = append(sources, fortigate.NewSource(client, cfg.Sources.Fortigate))
		}
	}
	if cfg.Sources.Nagios.Enabled {
		client := nagios.NewClient(cfg.Sources.Nagios)
		sources = append(sources, nagios.NewSource(client, cfg.Sources.Nagios))
	}
	log.Info("sources configured", zap.Int("count", len(sources)))

	a.pipe = pipeline.New(api, store, resolver, sources, log, cfg.Sync)

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			log.Warn("run history disabled, database unreachable", zap.Error(err))
		} else {
			rec := runlog.NewRecorder(db)
			if err := rec.Migrate(); err != nil {
				log.Warn("run history disabled, migration failed", zap.Error(err))
			} else {
				a.recorder = rec
				log.Info("run history enabled")
			}
		}
	}

	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			log.Warn("snapshot archival disabled, storage client failed", zap.Error(err))
		} else {
			archiver := storage.NewArchiver(client, cfg.Storage, log)
			if err := archiver.EnsureBucket(ctx); err != nil {
				log.Warn("snapshot archival disabled, bucket unavailable", zap.Error(err))
			} else {
				a.archiver = archiver
				log.Info("snapshot archival enabled", zap.String("bucket", cfg.Storage.Bucket))
			}
		}
	}

	return a
}

// run executes one full synchronization: devices, then contacts, then
// the optional persistence side effects. It always returns a report.
func (a *app) run(ctx context.Context) *pipeline.Report {
	report := a.pipe.Run(ctx)

	a.syncContacts(ctx)

	if a.recorder != nil {
		if err := a.recorder.Record(ctx, report); err != nil {
			a.log.Warn("failed to record run history", zap.Error(err))
		}
	}
	if a.archiver != nil {
		if err := a.archiver.Save(ctx, report); err != nil {
			a.log.Warn("failed to archive run snapshot", zap.Error(err))
		}
	}

	return report
}

// syncContacts mirrors directory users into registry contacts when the
// endpoint management source is connected.
func (a *app) syncContacts(ctx context.Context) {
	if a.intune == nil {
		return
	}

	users, err := a.intune.FetchUsers(ctx)
	if err != nil {
		a.log.Warn("contact sync skipped, user fetch failed", zap.Error(err))
		return
	}

	contacts := make([]*entity.Contact, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, u.Contact())
	}

	outcomes := a.pipe.SyncContacts(ctx, contacts)
	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}
	a.log.Info("contacts synchronized",
		zap.Int("contacts", len(contacts)),
		zap.Int("failed", failed))
}
