// Package pipeline drives one full synchronization run.
//
// A run preloads the entity cache from the registry (best effort, per
// kind), pulls raw records from every source collaborator concurrently,
// consolidates them into one draft per canonical device identity, and
// pushes each draft through component resolution and a create-or-update
// call with bounded concurrency. Per-device failures are collected into
// the run report and never abort sibling devices.
package pipeline
