// Package table implements a headless tabular data engine.
//
// An Engine owns the interaction state of one rendered table (sorting, column
// filters, the global search text, row selection, column visibility and
// pagination) and derives the visible projection from it on every read:
// source rows are filtered, then sorted, then sliced into a page. Rendering is
// left to callers, which read the projection through the accessors and map
// user events onto the state transitions.
//
// The projection is recomputed from scratch on each read. That keeps ordering
// observable and deterministic and is sized for dashboard data (tens to low
// thousands of rows); callers with larger sources should page upstream.
//
// An Engine is not safe for concurrent use. Callers sharing one across
// goroutines serialize access themselves.
package table
