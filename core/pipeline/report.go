package pipeline

import (
	"time"

	"inventory-sync/core/entity"
)

// Outcome is the per-device result of one run.
type Outcome struct {
	// Key is the device's canonical natural key.
	Key string `json:"key"`
	// Action records what the pipeline did: "created", "updated" or "failed".
	Action string `json:"action"`
	// Error is the flattened causal chain when the device failed.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a run's outcomes.
type Summary struct {
	// Devices is the number of canonical devices after consolidation.
	Devices int `json:"devices"`
	// Created counts devices newly created in the registry.
	Created int `json:"created"`
	// Updated counts devices patched over an existing registry entity.
	Updated int `json:"updated"`
	// Failed counts devices whose resolution or push failed.
	Failed int `json:"failed"`
}

// Report describes one completed run.
type Report struct {
	// RunID uniquely identifies the run across logs, snapshots and the
	// run history.
	RunID string `json:"run_id"`
	// Started and Finished bound the run.
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	// PrepDuration covers cache preload and source fetching,
	// ConsolidateDuration the merge, SyncDuration the registry push.
	PrepDuration        time.Duration `json:"prep_duration"`
	ConsolidateDuration time.Duration `json:"consolidate_duration"`
	SyncDuration        time.Duration `json:"sync_duration"`

	// SourceCounts is the number of raw records each source produced.
	SourceCounts map[string]int `json:"source_counts"`

	// Devices holds the consolidated drafts, keyed by canonical
	// identity, as they were pushed. Retained for snapshot archival.
	Devices map[string]*entity.Device `json:"devices"`

	// Outcomes lists the per-device results.
	Outcomes []Outcome `json:"outcomes"`

	// Summary aggregates the outcomes.
	Summary Summary `json:"summary"`
}
