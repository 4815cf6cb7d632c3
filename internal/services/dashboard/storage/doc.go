// Package storage defines persistence contracts for dashboard preferences.
//
// Handlers depend on these interfaces so tests can run without SQLite.
package storage
