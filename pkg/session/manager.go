// Package session owns the per-conversation dialogue state: creation, lazy
// expiry, turn recording, and resolution of references to prior results.
package session

import (
	"sync"
	"time"

	"code-assistant-be/pkg/store"
)

// Repository abstracts session storage: key-value semantics keyed by session
// id. The in-memory go-cache repository is the default; Redis backs it when
// durability across restarts is wanted.
type Repository interface {
	Get(sessionID string) (*store.Session, bool)
	Save(session *store.Session)
	Delete(sessionID string)
}

// Manager coordinates access to sessions. Each session id maps to its own
// mutex, so two concurrent turns on one session serialize while unrelated
// sessions never contend.
type Manager struct {
	repo        Repository
	idleTimeout time.Duration
	historyCap  int

	locks sync.Map // session id -> *sync.Mutex
	now   func() time.Time
}

const (
	DefaultIdleTimeout = 1 * time.Hour
	DefaultHistoryCap  = 50
)

// NewManager creates a session manager. idleTimeout <= 0 and historyCap <= 0
// fall back to the defaults.
func NewManager(repo Repository, idleTimeout time.Duration, historyCap int) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	return &Manager{
		repo:        repo,
		idleTimeout: idleTimeout,
		historyCap:  historyCap,
		now:         time.Now,
	}
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// GetOrCreate returns a copy of the session state. An expired or unknown id
// yields a fresh session; clients cannot be assumed to track server-side
// expiry, so this never fails. The returned copy is safe to read without
// holding the session lock.
func (m *Manager) GetOrCreate(sessionID string) *store.Session {
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session := m.loadOrCreateLocked(sessionID)
	// Any access restarts the idle window.
	session.LastActiveAt = m.now()
	m.repo.Save(session)
	return session.Clone()
}

// Update applies fn to the authoritative session state under the session
// lock and persists the result. Callers run provider calls BEFORE Update so
// the lock is never held across slow I/O.
func (m *Manager) Update(sessionID string, fn func(*store.Session)) *store.Session {
	mu := m.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session := m.loadOrCreateLocked(sessionID)
	fn(session)
	session.LastActiveAt = m.now()
	m.repo.Save(session)
	return session.Clone()
}

// RecordTurn appends a turn to the session history, capping its length.
// LastResults is untouched: only a search turn may replace it.
func (m *Manager) RecordTurn(sessionID, utterance, intentLabel string, resultRef []string) {
	m.Update(sessionID, func(s *store.Session) {
		m.appendTurnLocked(s, utterance, intentLabel, resultRef)
	})
}

// RecordSearchTurn appends a code-search turn and replaces LastResults
// wholesale with the new result set, in rank order. An empty result set still
// replaces: "explain the first one" after a miss must not reach back to a
// stale earlier search.
func (m *Manager) RecordSearchTurn(sessionID, utterance string, resultIDs []string) {
	m.Update(sessionID, func(s *store.Session) {
		m.appendTurnLocked(s, utterance, "code_search", resultIDs)
		s.LastResults = append([]string(nil), resultIDs...)
	})
}

func (m *Manager) appendTurnLocked(s *store.Session, utterance, intentLabel string, resultRef []string) {
	s.History = append(s.History, store.Turn{
		Utterance: utterance,
		Intent:    intentLabel,
		ResultRef: resultRef,
		At:        m.now(),
	})
	if len(s.History) > m.historyCap {
		s.History = s.History[len(s.History)-m.historyCap:]
	}
}

// loadOrCreateLocked checks expiry lazily: the repository may still hold a
// session whose idle window has passed, which is treated as absent.
func (m *Manager) loadOrCreateLocked(sessionID string) *store.Session {
	now := m.now()

	if session, found := m.repo.Get(sessionID); found {
		if now.Sub(session.LastActiveAt) <= m.idleTimeout {
			return session
		}
		m.repo.Delete(sessionID)
	}

	session := &store.Session{
		ID:           sessionID,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	m.repo.Save(session)
	return session
}
