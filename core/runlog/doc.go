// Package runlog persists synchronization run history.
//
// Every pipeline run produces a report; the Recorder flattens it into a
// run row plus one row per device outcome. History powers the API's run
// listing and is the audit trail for "what changed when".
//
// Persistence is optional. When no database is configured the recorder
// is simply never constructed and runs leave no history.
package runlog
