package builder

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps builder sessions by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   func(string)
}

// NewStore creates an empty store. New sessions log through logger.
func NewStore(logger func(string)) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create starts a session and returns its id.
func (st *Store) Create(title string) (string, *Session) {
	id := uuid.New().String()
	s := NewSession(title)
	s.SetLogger(st.logger)

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return id, s
}

// Get returns the session for id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session. It reports whether the id was known.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len is the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
