package core

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestRelay() *Relay {
	logger := zerolog.Nop()
	return NewRelay(&logger)
}

func mustFrame(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case frame := <-c.Events:
		return frame
	default:
		t.Fatalf("expected a frame for %s, got none", c.ID)
		return ""
	}
}

func mustNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case frame := <-c.Events:
		t.Fatalf("expected no frame for %s, got %q", c.ID, frame)
	default:
	}
}

// The two-client scenario end to end: shared room, resubscribe, and
// the departed member stops receiving.
func TestRelaySubscribeAndDelta(t *testing.T) {
	relay := newTestRelay()
	a := NewClient("a", 8)
	b := NewClient("b", 8)

	relay.HandleFrame(a, "Subscribe: room1")
	relay.HandleFrame(b, "Subscribe: room1")

	relay.HandleFrame(a, "+1 room1")
	if got := mustFrame(t, b); got != "+1" {
		t.Fatalf("b received %q, want %q", got, "+1")
	}
	mustNoFrame(t, a) // sender is never echoed

	relay.HandleFrame(a, "Subscribe: room2")
	relay.HandleFrame(b, "+3 room1")
	mustNoFrame(t, a) // no longer a member of room1
}

// The room token embedded in a delta is authoritative: an unsubscribed
// connection can post into any room, and a subscribed one can post
// past its own subscription. The reference client never does either,
// but the protocol deliberately leaves it open.
func TestRelayDeltaToForeignRoom(t *testing.T) {
	relay := newTestRelay()
	member := NewClient("member", 8)
	stranger := NewClient("stranger", 8)

	relay.HandleFrame(member, "Subscribe: room1")
	relay.HandleFrame(stranger, "-2 room1")

	if got := mustFrame(t, member); got != "-2" {
		t.Fatalf("member received %q, want %q", got, "-2")
	}
	if room := relay.Registry().Room(stranger); room != "" {
		t.Fatalf("stranger unexpectedly subscribed to %q", room)
	}
}

func TestRelaySubscribedSenderTargetsOtherRoom(t *testing.T) {
	relay := newTestRelay()
	a := NewClient("a", 8)
	b := NewClient("b", 8)

	relay.HandleFrame(a, "Subscribe: room1")
	relay.HandleFrame(b, "Subscribe: room2")

	relay.HandleFrame(a, "+5 room2")
	if got := mustFrame(t, b); got != "+5" {
		t.Fatalf("b received %q, want %q", got, "+5")
	}
}

func TestRelayMalformedFramesDropped(t *testing.T) {
	relay := newTestRelay()
	a := NewClient("a", 8)
	b := NewClient("b", 8)

	relay.HandleFrame(a, "Subscribe: room1")
	relay.HandleFrame(b, "Subscribe: room1")

	for _, raw := range []string{"hello", "", "Subscribe:", "++1 room1", "1.5 room1"} {
		relay.HandleFrame(a, raw)
	}
	mustNoFrame(t, a)
	mustNoFrame(t, b)

	// Relay state is intact after the garbage.
	relay.HandleFrame(a, "+1 room1")
	if got := mustFrame(t, b); got != "+1" {
		t.Fatalf("b received %q, want %q", got, "+1")
	}
}

func TestRelayDetachLeavesRoom(t *testing.T) {
	relay := newTestRelay()
	a := NewClient("a", 8)
	b := NewClient("b", 8)

	relay.HandleFrame(a, "Subscribe: room1")
	relay.HandleFrame(b, "Subscribe: room1")

	relay.Detach(a)
	relay.HandleFrame(b, "+1 room1")
	mustNoFrame(t, a)

	if n := relay.Registry().Members("room1"); n != 1 {
		t.Fatalf("room1 has %d members, want 1", n)
	}

	relay.Detach(b)
	if rooms, _ := relay.Registry().Stats(); rooms != 0 {
		t.Fatalf("%d rooms left after all members detached", rooms)
	}

	// Detach for a client that never subscribed must be safe.
	relay.Detach(NewClient("never", 8))
}
