package storage

import (
	"github.com/louisbranch/adpulse/internal/theme"
)

// ErrNotFound is returned when no record exists for a key. It is the theme
// package's sentinel so theme resolution can fall through to the system
// preference.
var ErrNotFound = theme.ErrNotFound

// PreferenceStore persists appearance preferences per browser session.
type PreferenceStore interface {
	theme.Store
}

// Store is a composite interface for dashboard storage concerns.
type Store interface {
	PreferenceStore
	Close() error
}
