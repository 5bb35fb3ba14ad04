package runlog

import (
	"context"
	"time"

	"inventory-sync/core/pipeline"

	"gorm.io/gorm"
)

// Run is one synchronization run's persisted summary row.
type Run struct {
	// ID is the run's UUID, assigned by the pipeline.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Started and Finished bound the run's wall-clock time.
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	// Devices is the consolidated device count the run pushed.
	Devices int `json:"devices"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	// Results holds the per-device outcomes of this run.
	Results []DeviceResult `gorm:"foreignKey:RunID" json:"results,omitempty"`
}

// TableName overrides the default pluralization.
func (Run) TableName() string { return "sync_runs" }

// DeviceResult is one device's outcome within a run.
type DeviceResult struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// RunID links the result to its run.
	RunID string `gorm:"size:36;index" json:"-"`
	// Device is the canonical device key.
	Device string `gorm:"size:255" json:"device"`
	// Action is what the run did: created, updated or failed.
	Action string `gorm:"size:16" json:"action"`
	// Error carries the failure message when Action is failed.
	Error string `gorm:"type:text" json:"error,omitempty"`
}

// TableName overrides the default pluralization.
func (DeviceResult) TableName() string { return "sync_run_devices" }

// Recorder persists run reports and serves run history queries.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder wraps an established database connection.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Migrate creates or updates the run-history tables.
func (r *Recorder) Migrate() error {
	return r.db.AutoMigrate(&Run{}, &DeviceResult{})
}

// Record persists one report, run row and device results together.
func (r *Recorder) Record(ctx context.Context, report *pipeline.Report) error {
	run := fromReport(report)
	return r.db.WithContext(ctx).Create(&run).Error
}

// History returns the most recent runs, newest first, without their
// per-device results.
func (r *Recorder) History(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := r.db.WithContext(ctx).
		Order("started DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

// Get loads one run with its device results.
func (r *Recorder) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.db.WithContext(ctx).
		Preload("Results").
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// fromReport flattens a pipeline report into its persisted form.
func fromReport(report *pipeline.Report) Run {
	run := Run{
		ID:       report.RunID,
		Started:  report.Started,
		Finished: report.Finished,
		Devices:  report.Summary.Devices,
		Created:  report.Summary.Created,
		Updated:  report.Summary.Updated,
		Failed:   report.Summary.Failed,
	}
	for _, o := range report.Outcomes {
		run.Results = append(run.Results, DeviceResult{
			RunID:  report.RunID,
			Device: o.Key,
			Action: o.Action,
			Error:  o.Error,
		})
	}
	return run
}
