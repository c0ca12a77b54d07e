package main

import (
	"sync"

	"github.com/hydropure/water-assistant/session"
)

// SessionManager hands out per-client sessions keyed by the id the client
// presents. Turns within one session run sequentially on its websocket
// connection; the lock only guards the map.
type SessionManager struct {
	mu           sync.Mutex
	sessions     map[string]*session.Session
	historyLimit int
}

func NewSessionManager(historyLimit int) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*session.Session),
		historyLimit: historyLimit,
	}
}

func (m *SessionManager) Get(id string) *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess
	}

	sess := session.New(id, m.historyLimit)
	m.sessions[id] = sess

	return sess
}

func (m *SessionManager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}
