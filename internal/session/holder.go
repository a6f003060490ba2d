package session

import "sync"

// Holder is the mutable slot the HTTP client reads the bearer token from.
// Commands run on other goroutines, so access is guarded.
type Holder struct {
	mu sync.RWMutex
	s  *Session
}

func NewHolder(s *Session) *Holder { return &Holder{s: s} }

func (h *Holder) Set(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = s
}

func (h *Holder) Get() *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s
}

// Token returns the active bearer token, empty when signed out.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.s == nil {
		return ""
	}
	return h.s.Token
}
