// Package sqlite implements dashboard storage on an embedded SQLite file.
package sqlite
