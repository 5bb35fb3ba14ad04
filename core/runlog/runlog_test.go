package runlog

import (
	"context"
	"testing"
	"time"

	"inventory-sync/core/pipeline"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRecorder(t *testing.T) (*Recorder, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRecorder(db), mock
}

func TestRecorder_Record(t *testing.T) {
	rec, mock := newMockRecorder(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `sync_run_devices`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	report := &pipeline.Report{
		RunID:    "f1b6f7a0-0000-0000-0000-000000000001",
		Started:  time.Now().Add(-time.Minute),
		Finished: time.Now(),
		Outcomes: []pipeline.Outcome{
			{Key: "host-1", Action: "created"},
			{Key: "host-2", Action: "failed", Error: "device type unresolved"},
		},
		Summary: pipeline.Summary{Devices: 2, Created: 1, Failed: 1},
	}

	require.NoError(t, rec.Record(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_History(t *testing.T) {
	rec, mock := newMockRecorder(t)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `sync_runs`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "started", "finished", "devices", "created", "updated", "failed"}).
			AddRow("run-b", now, now, 3, 1, 2, 0).
			AddRow("run-a", now.Add(-time.Hour), now.Add(-time.Hour), 3, 3, 0, 0))

	runs, err := rec.History(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].ID)
	assert.Equal(t, 2, runs[0].Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_Get(t *testing.T) {
	rec, mock := newMockRecorder(t)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `sync_runs`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "started", "finished", "devices", "created", "updated", "failed"}).
			AddRow("run-a", now, now, 1, 0, 0, 1))
	mock.ExpectQuery("SELECT \\* FROM `sync_run_devices`").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "run_id", "device", "action", "error"}).
			AddRow(1, "run-a", "host-1", "failed", "push rejected"))

	run, err := rec.Get(context.Background(), "run-a")
	require.NoError(t, err)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "host-1", run.Results[0].Device)
	assert.Equal(t, "push rejected", run.Results[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromReport(t *testing.T) {
	report := &pipeline.Report{
		RunID: "run-a",
		Outcomes: []pipeline.Outcome{
			{Key: "host-1", Action: "updated"},
		},
		Summary: pipeline.Summary{Devices: 1, Updated: 1},
	}

	run := fromReport(report)
	assert.Equal(t, "run-a", run.ID)
	assert.Equal(t, 1, run.Updated)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "run-a", run.Results[0].RunID)
	assert.Equal(t, "updated", run.Results[0].Action)
}
