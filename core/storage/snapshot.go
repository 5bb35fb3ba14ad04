package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"inventory-sync/core/pipeline"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// snapshotPrefix namespaces report snapshots within the bucket.
const snapshotPrefix = "runs/"

// Archiver uploads run reports as JSON snapshots and prunes old ones.
type Archiver struct {
	client Client
	bucket string
	retain int
	log    *zap.Logger
}

// NewArchiver wires a storage client to a bucket.
func NewArchiver(client Client, cfg Config, log *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		retain: cfg.RetainRuns,
		log:    log,
	}
}

// EnsureBucket creates the snapshot bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", a.bucket, err)
	}
	a.log.Info("snapshot bucket created", zap.String("bucket", a.bucket))
	return nil
}

// Save uploads one report and prunes snapshots beyond the retention
// count. Object names sort chronologically so pruning is a name sort.
func (a *Archiver) Save(ctx context.Context, report *pipeline.Report) error {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	name := ObjectName(report)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %q: %w", name, err)
	}
	a.log.Info("snapshot archived", zap.String("object", name), zap.Int("bytes", len(body)))

	if a.retain > 0 {
		if err := a.prune(ctx); err != nil {
			// Pruning failure must not fail the run that just archived.
			a.log.Warn("snapshot pruning failed", zap.Error(err))
		}
	}
	return nil
}

// ObjectName derives the snapshot key from the run's start time and ID.
func ObjectName(report *pipeline.Report) string {
	return fmt.Sprintf("%s%s-%s.json",
		snapshotPrefix,
		report.Started.UTC().Format("20060102T150405Z"),
		report.RunID)
}

// prune removes the oldest snapshots beyond the retention count.
func (a *Archiver) prune(ctx context.Context) error {
	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: snapshotPrefix}) {
		if obj.Err != nil {
			return obj.Err
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}
	if len(names) <= a.retain {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-a.retain] {
		if err := a.client.RemoveObject(ctx, a.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove snapshot %q: %w", name, err)
		}
		a.log.Debug("snapshot pruned", zap.String("object", name))
	}
	return nil
}
