// Package syncapi exposes the synchronization engine over HTTP.
//
// It provides four endpoints under /sync:
//
//   - POST /sync/runs    triggers a run and returns its full report
//   - GET  /sync/runs    lists persisted run history
//   - GET  /sync/runs/:id returns one run with per-device results
//   - GET  /sync/status  reports the in-progress flag and last summary
//
// Runs are serialized per process: a trigger while a run is executing
// returns 409 Conflict. History endpoints answer 503 when no database
// is configured, since persistence is optional.
package syncapi
