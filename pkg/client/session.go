package client

import "sync"

// Session is the client's identity: the token and the user it belongs to.
// It is the only place a client keeps who is logged in, and it is replaced
// wholesale on login, refresh and logout.
type Session struct {
	mu           sync.RWMutex
	token        string
	user         *User
	capabilities map[string]struct{}
}

func newSession() *Session {
	return &Session{}
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the session user, nil when logged out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Can reports whether the server granted the capability on the last refresh.
func (s *Session) Can(capability string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.capabilities[capability]
	return ok
}

// Restore installs a previously saved token. Call Client.Refresh to load
// the user behind it.
func (s *Session) Restore(token string) {
	s.set(token, nil, nil)
}

// Clear forgets the identity.
func (s *Session) Clear() {
	s.set("", nil, nil)
}

func (s *Session) set(token string, user *User, capabilities []string) {
	caps := make(map[string]struct{}, len(capabilities))
	for _, c := range capabilities {
		caps[c] = struct{}{}
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.capabilities = caps
	s.mu.Unlock()
}

func (s *Session) update(user *User, capabilities []string) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	s.set(token, user, capabilities)
}
