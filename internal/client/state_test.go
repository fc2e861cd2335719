package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateStartsUnknown(t *testing.T) {
	s := State{Status: StatusDisconnected, Room: "room1"}
	assert.False(t, s.Known)
	assert.Equal(t, "?", s.Display())
}

func TestStateFirstDeltaTreatsUnknownAsZero(t *testing.T) {
	s := State{}
	s.Connect()
	assert.Equal(t, "?", s.Display())

	s.ApplyDelta(-3)
	assert.True(t, s.Known)
	assert.Equal(t, int64(-3), s.Count)
	assert.Equal(t, "-3", s.Display())

	s.ApplyDelta(5)
	assert.Equal(t, int64(2), s.Count)
	assert.Equal(t, "2", s.Display())
}

func TestStateConnectReassertsSentinel(t *testing.T) {
	s := State{}
	s.Connect()
	s.ApplyDelta(7)
	assert.Equal(t, "7", s.Display())

	// Reconnect: the previous count is not authoritative any more.
	s.Disconnect()
	assert.Equal(t, StatusDisconnected, s.Status)
	assert.Equal(t, "?", s.Display())

	s.Connect()
	assert.Equal(t, StatusConnected, s.Status)
	assert.Equal(t, "?", s.Display())

	s.ApplyDelta(1)
	assert.Equal(t, "1", s.Display())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "connected", StatusConnected.String())
	assert.Equal(t, "disconnected", StatusDisconnected.String())
}
