// Package history keeps per-conversation transcripts in memory. The HTTP
// and websocket surfaces send the transcript along with every request, so
// this manager exists for the stateful transports (Telegram) and for the
// reminder scheduler's broadcast bookkeeping.
package history

import (
	"sync"

	"taskchat/internal/agent"
)

type Manager struct {
	mu       sync.RWMutex
	sessions map[string][]agent.Turn
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string][]agent.Turn)}
}

// Get returns a copy of the transcript; mutating it does not affect the
// stored state.
func (m *Manager) Get(conversationID string) []agent.Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.sessions[conversationID]
	out := make([]agent.Turn, len(turns))
	copy(out, turns)
	return out
}

// Replace swaps in the transcript an agent turn produced. The agent
// extends histories copy-on-append, so storing its output wholesale is
// safe.
func (m *Manager) Replace(conversationID string, turns []agent.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[conversationID] = turns
}

func (m *Manager) Reset(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, conversationID)
}
