package dashboard

import (
	"sync"
	"time"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/menu"
	"github.com/louisbranch/adpulse/internal/platform/timeouts"
	"github.com/louisbranch/adpulse/internal/table"
)

// tableSessionCleanupInterval controls how often expired sessions are purged.
const tableSessionCleanupInterval = 5 * time.Minute

// tableSession is one browser session's campaigns table and View menu.
// Callers hold mu while reading or mutating either.
type tableSession struct {
	mu        sync.Mutex
	engine    *table.Engine[campaign.Record]
	viewMenu  *viewMenu
	expiresAt time.Time
}

// tableSessions keeps per-session engines for an idle TTL.
type tableSessions struct {
	mu          sync.Mutex
	sessions    map[string]*tableSession
	ttl         time.Duration
	pageSize    int
	clock       menu.Clock
	now         func() time.Time
	lastCleanup time.Time
}

func newTableSessions(pageSize int, clock menu.Clock) *tableSessions {
	return &tableSessions{
		sessions: make(map[string]*tableSession),
		ttl:      timeouts.TableSession,
		pageSize: pageSize,
		clock:    clock,
		now:      time.Now,
	}
}

// acquire returns the session for sessionID locked, creating it when
// missing or expired. created reports a fresh session. Callers must call
// release.
func (s *tableSessions) acquire(sessionID string) (session *tableSession, created bool) {
	s.mu.Lock()
	now := s.now()
	s.cleanupLocked(now)
	session, ok := s.sessions[sessionID]
	if !ok || now.After(session.expiresAt) {
		engine := campaign.NewEngine(campaign.Records(), s.pageSize)
		session = &tableSession{
			engine:   engine,
			viewMenu: newViewMenu(engine, s.clock),
		}
		s.sessions[sessionID] = session
		created = true
	}
	session.expiresAt = now.Add(s.ttl)
	s.mu.Unlock()

	session.mu.Lock()
	return session, created
}

func (s *tableSessions) release(session *tableSession) {
	if session != nil {
		session.mu.Unlock()
	}
}

func (s *tableSessions) delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *tableSessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *tableSessions) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < tableSessionCleanupInterval {
		return
	}
	for key, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, key)
		}
	}
	s.lastCleanup = now
}
