// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/un-design/models"
)

// CookieName is the session cookie set at login
const CookieName = "undesign_session"

type Session struct {
	Token     string
	Identity  models.Identity
	HasVoted  bool
	CreatedAt time.Time
}

// SessionStore keeps sessions in memory, keyed by an opaque token.
// A zero TTL means sessions never expire.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for id and returns its token
func (s *SessionStore) Create(id models.Identity) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{
		Token:     uuid.NewString(),
		Identity:  id,
		CreatedAt: s.now(),
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for token; expired sessions are dropped
func (s *SessionStore) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if s.ttl > 0 && s.now().Sub(sess.CreatedAt) > s.ttl {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// MarkVoted sets the session's has-voted flag
func (s *SessionStore) MarkVoted(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[token]; ok {
		sess.HasVoted = true
		s.sessions[token] = sess
	}
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
