package presence

import "sync"

// Switch forwards to a Presence that can be replaced or disabled at runtime
type Switch struct {
	mu     sync.RWMutex
	target Presence
}

// NewSwitch creates a switch forwarding to p, or to Nop when p is nil
func NewSwitch(p Presence) *Switch {
	s := &Switch{}
	s.Set(p)
	return s
}

// Set replaces the target and closes the previous one
func (s *Switch) Set(p Presence) {
	if p == nil {
		p = Nop{}
	}
	s.mu.Lock()
	prev := s.target
	s.target = p
	s.mu.Unlock()
	if prev != nil && prev != p {
		_ = prev.Close()
	}
}

func (s *Switch) current() Presence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

func (s *Switch) UpdateDetails(details string) { s.current().UpdateDetails(details) }
func (s *Switch) UpdateState(state string)     { s.current().UpdateState(state) }
func (s *Switch) ClearState()                  { s.current().ClearState() }
func (s *Switch) ResetTime()                   { s.current().ResetTime() }

// Close closes the target and falls back to Nop
func (s *Switch) Close() error {
	s.mu.Lock()
	prev := s.target
	s.target = Nop{}
	s.mu.Unlock()
	return prev.Close()
}
