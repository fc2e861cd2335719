// Package client implements the counter-side of the protocol: an
// explicit view state and a reconnecting WebSocket session around it.
package client

import "strconv"

// Status describes the transport side of the client state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
)

func (s Status) String() string {
	if s == StatusConnected {
		return "connected"
	}
	return "disconnected"
}

// State is the client-visible counter state, independent of any
// rendering surface. Count is meaningless while Known is false: a
// freshly connected client has no authoritative count and shows an
// unknown sentinel until the first delta is applied. The value is the
// sum of all deltas observed since the last reconnect; clients that
// joined at different times drift apart, which is accepted.
type State struct {
	Status Status
	Room   string
	Count  int64
	Known  bool
}

// Connect marks the transport up and reasserts the unknown sentinel.
func (s *State) Connect() {
	s.Status = StatusConnected
	s.Count = 0
	s.Known = false
}

// Disconnect marks the transport down. The sentinel is reasserted so a
// stale count is never displayed across a reconnect.
func (s *State) Disconnect() {
	s.Status = StatusDisconnected
	s.Count = 0
	s.Known = false
}

// ApplyDelta folds one observed delta into the accumulator, treating
// an unknown count as zero.
func (s *State) ApplyDelta(amount int64) {
	if !s.Known {
		s.Count = 0
		s.Known = true
	}
	s.Count += amount
}

// Display renders the count for a UI, "?" while unknown.
func (s *State) Display() string {
	if !s.Known {
		return "?"
	}
	return strconv.FormatInt(s.Count, 10)
}
