package app

import (
	"sync"

	"github.com/Rushi8087/xerox-automation/internal/clock"
	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// Session wraps one user's in-progress order state. All mutations go through
// the session's own mutex, so operations on different sessions never contend.
type Session struct {
	mu   sync.Mutex
	data domain.Session

	// fileSeq only ever grows, so file IDs stay unique within the session
	// even after entries are removed from the list.
	fileSeq int
}

// Snapshot returns a copy of the session state safe to hand to callers.
func (s *Session) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Registry maps user identities to sessions. It is the single source of truth
// for "is there an in-flight order for this user". The registry lock guards
// only the maps; per-session state is guarded by each session's mutex.
type Registry struct {
	mu      sync.Mutex
	clock   clock.Clock
	byUser  map[string]*Session
	byToken map[string]*Session
}

func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		clock:   clk,
		byUser:  make(map[string]*Session),
		byToken: make(map[string]*Session),
	}
}

// GetOrCreate returns the user's current session, creating a fresh one with
// new session and order tokens when none exists.
func (r *Registry) GetOrCreate(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byUser[userID]; ok {
		return s
	}
	return r.createLocked(userID)
}

// Reset unconditionally discards any existing session for the user and
// creates a new one. Both the session token and the order ID are reissued.
func (r *Registry) Reset(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[userID]; ok {
		delete(r.byToken, old.Snapshot().ID)
	}
	return r.createLocked(userID)
}

// FindBySessionID resolves a session by its opaque web token.
func (r *Registry) FindBySessionID(token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) createLocked(userID string) *Session {
	s := &Session{
		data: domain.Session{
			ID:        newSessionToken(),
			OrderID:   newOrderID(),
			UserID:    userID,
			CreatedAt: r.clock.Now(),
		},
	}
	r.byUser[userID] = s
	r.byToken[s.data.ID] = s
	return s
}
