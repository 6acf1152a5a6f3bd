package history

import (
	"sync"
	"time"

	"github.com/jonesrussell/stash/internal/config"
)

// SessionRegistry keys undo/redo stacks by (userID, contentID) so HTTP
// handlers can drive a session's history across requests. Sessions that have
// been idle past the TTL are dropped lazily on access.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[sessionKey]*session
	ttl      time.Duration
}

type sessionKey struct {
	userID    string
	contentID string
}

type session struct {
	stack    *Stack
	lastSeen time.Time
}

// NewSessionRegistry creates a registry with the given idle TTL.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionRegistry{
		sessions: make(map[sessionKey]*session),
		ttl:      ttl,
	}
}

// Get returns the stack for the given session, seeding a new one with
// initial content if none exists or the previous one expired.
func (r *SessionRegistry) Get(userID, contentID, initial string) *Stack {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictExpired(now)

	key := sessionKey{userID: userID, contentID: contentID}
	if sess, ok := r.sessions[key]; ok {
		sess.lastSeen = now
		return sess.stack
	}

	stack := New(initial, config.MaxHistoryEntries)
	r.sessions[key] = &session{stack: stack, lastSeen: now}
	return stack
}

// Drop discards the session's history entirely, as happens when the editing
// session ends.
func (r *SessionRegistry) Drop(userID, contentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionKey{userID: userID, contentID: contentID})
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *SessionRegistry) evictExpired(now time.Time) {
	for key, sess := range r.sessions {
		if now.Sub(sess.lastSeen) > r.ttl {
			delete(r.sessions, key)
		}
	}
}
