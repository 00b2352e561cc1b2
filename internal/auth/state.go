package auth

import (
	"sync"
	"time"
)

// pendingLogin is what start remembers for callback, keyed by the OAuth state.
type pendingLogin struct {
	verifier string
	next     string
	expires  time.Time
}

// loginStore holds in-flight logins in memory. Each state can be taken once.
type loginStore struct {
	mu    sync.Mutex
	items map[string]pendingLogin
	now   func() time.Time
}

func newLoginStore(now func() time.Time) *loginStore {
	return &loginStore{items: make(map[string]pendingLogin), now: now}
}

// put saves a login and drops expired ones.
func (s *loginStore) put(state string, login pendingLogin, ttl time.Duration) {
	now := s.now()
	login.expires = now.Add(ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.items {
		if now.After(v.expires) {
			delete(s.items, k)
		}
	}
	s.items[state] = login
}

func (s *loginStore) take(state string) (pendingLogin, bool) {
	s.mu.Lock()
	login, ok := s.items[state]
	delete(s.items, state)
	s.mu.Unlock()
	if !ok || s.now().After(login.expires) {
		return pendingLogin{}, false
	}
	return login, true
}
