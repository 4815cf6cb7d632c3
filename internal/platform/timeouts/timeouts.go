// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps the time spent writing a response, exports included.
const Write = 30 * time.Second

// Idle bounds keep-alive connections between requests.
const Idle = 2 * time.Minute

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TableSession is how long an idle campaign table keeps its state.
const TableSession = 30 * time.Minute
