// Package presence publishes the launcher activity to a third-party status
// display.
package presence

// Presence receives activity updates at each launch phase
type Presence interface {
	UpdateDetails(details string)
	UpdateState(state string)
	ClearState()
	ResetTime()
	Close() error
}

// Nop discards every update. It is used when presence is disabled or the
// client could not connect.
type Nop struct{}

func (Nop) UpdateDetails(string) {}
func (Nop) UpdateState(string)   {}
func (Nop) ClearState()          {}
func (Nop) ResetTime()           {}
func (Nop) Close() error         { return nil }
