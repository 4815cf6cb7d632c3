package campaign

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultRefreshInterval is how often the live feed drifts revenue.
const DefaultRefreshInterval = 30 * time.Second

// Live holds the KPI cards shown on the dashboard and drifts the revenue
// card on every tick. It is safe for concurrent use.
type Live struct {
	mu      sync.RWMutex
	metrics []Metric
	revenue Money
	updated time.Time

	now    func() time.Time
	jitter func() int
}

// LiveOption customizes a Live feed.
type LiveOption func(*Live)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) LiveOption {
	return func(l *Live) { l.now = now }
}

// WithJitter overrides the random revenue change applied per tick.
func WithJitter(jitter func() int) LiveOption {
	return func(l *Live) { l.jitter = jitter }
}

// NewLive builds a feed seeded with the initial metrics.
func NewLive(opts ...LiveOption) *Live {
	l := &Live{
		metrics: Metrics(),
		revenue: initialRevenue,
		now:     time.Now,
		// Between -200 and +299.
		jitter: func() int { return rand.IntN(500) - 200 },
	}
	for _, opt := range opts {
		opt(l)
	}
	l.updated = l.now()
	return l
}

// Snapshot returns a copy of the current metrics and their update time.
func (l *Live) Snapshot() ([]Metric, time.Time) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Metric, len(l.metrics))
	copy(out, l.metrics)
	return out, l.updated
}

// Revenue returns the current total revenue.
func (l *Live) Revenue() Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revenue
}

// Tick applies one random revenue change.
func (l *Live) Tick() {
	delta := l.jitter()
	l.mu.Lock()
	defer l.mu.Unlock()

	previous := l.revenue
	l.revenue = previous + Money(delta)
	pct := 0.0
	if previous != 0 {
		pct = float64(l.revenue-previous) / float64(previous) * 100
	}
	for i := range l.metrics {
		if l.metrics[i].ID != MetricTotalRevenue {
			continue
		}
		l.metrics[i].Value = l.revenue.String()
		l.metrics[i].Change = formatChange(pct)
		l.metrics[i].Positive = pct >= 0
	}
	l.updated = l.now()
}

// Touch marks the metrics as refreshed without changing them.
func (l *Live) Touch() {
	l.mu.Lock()
	l.updated = l.now()
	l.mu.Unlock()
}

// Run ticks every interval until ctx is done.
func (l *Live) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

func formatChange(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}
