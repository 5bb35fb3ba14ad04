// Package database handles the optional run-history database connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection with pooling and timeout
// settings applied. The connection is verified with a ping before being
// handed to callers.
//
// Run-history persistence is an optional concern: when the database is
// unreachable, synchronization still runs and only the history is lost.
// Callers are expected to log the failure and continue.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
package database
