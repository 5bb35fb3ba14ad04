package storage_test

import (
	"context"
	"testing"
	"time"

	"inventory-sync/core/pipeline"
	"inventory-sync/core/storage"
	"inventory-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testReport() *pipeline.Report {
	return &pipeline.Report{
		RunID:   "11111111-2222-3333-4444-555555555555",
		Started: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		Summary: pipeline.Summary{Devices: 2, Created: 2},
	}
}

func objectChannel(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestObjectName(t *testing.T) {
	name := storage.ObjectName(testReport())
	assert.Equal(t, "runs/20260829T103000Z-11111111-2222-3333-4444-555555555555.json", name)
}

func TestArchiver_Save(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snaps", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	a := storage.NewArchiver(client, storage.Config{Bucket: "snaps"}, zap.NewNop())
	require.NoError(t, a.Save(context.Background(), testReport()))

	client.AssertCalled(t, "PutObject", mock.Anything, "snaps",
		storage.ObjectName(testReport()), mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_Save_PrunesBeyondRetention(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snaps", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "snaps", mock.Anything).
		Return(objectChannel(
			"runs/20260828T090000Z-old.json",
			"runs/20260829T103000Z-new.json",
		))
	client.On("RemoveObject", mock.Anything, "snaps", "runs/20260828T090000Z-old.json", mock.Anything).
		Return(nil)

	a := storage.NewArchiver(client, storage.Config{Bucket: "snaps", RetainRuns: 1}, zap.NewNop())
	require.NoError(t, a.Save(context.Background(), testReport()))

	client.AssertCalled(t, "RemoveObject", mock.Anything, "snaps",
		"runs/20260828T090000Z-old.json", mock.Anything)
	client.AssertNumberOfCalls(t, "RemoveObject", 1)
}

func TestArchiver_EnsureBucket(t *testing.T) {
	t.Run("CreatesMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snaps").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "snaps", mock.Anything).Return(nil)

		a := storage.NewArchiver(client, storage.Config{Bucket: "snaps"}, zap.NewNop())
		require.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertCalled(t, "MakeBucket", mock.Anything, "snaps", mock.Anything)
	})

	t.Run("KeepsExisting", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snaps").Return(true, nil)

		a := storage.NewArchiver(client, storage.Config{Bucket: "snaps"}, zap.NewNop())
		require.NoError(t, a.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})
}
