// Package core implements the room-scoped counter relay: connection
// handles, the room registry, and the frame dispatch loop driving it.
package core

import (
	"github.com/rs/zerolog"

	"github.com/vmarkelov/wscount/internal/proto"
)

// Relay routes inbound frames between connections sharing a room. Each
// connection moves through three states: connected with no room,
// subscribed to exactly one room, closed. Frames drive the transitions;
// the transport layer calls HandleFrame for every inbound text frame
// and Detach exactly once on closure.
type Relay struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewRelay constructs a relay with an empty registry.
func NewRelay(logger *zerolog.Logger) *Relay {
	return &Relay{
		registry: NewRegistry(logger),
		log:      logger,
	}
}

// Registry exposes the room registry for stats and tests.
func (r *Relay) Registry() *Registry {
	return r.registry
}

// HandleFrame applies one inbound raw text frame from c. Subscribe
// frames move the client between rooms; delta frames fan out to the
// room named in the frame. The named room is authoritative even when
// it differs from the sender's subscription, so a client may post into
// a room it never joined. Unrecognized frames are dropped silently:
// the protocol has no error channel and one client's bad input must
// never disturb another.
func (r *Relay) HandleFrame(c *Client, raw string) {
	frame := proto.Parse(raw)
	switch frame.Kind {
	case proto.KindSubscribe:
		r.registry.Join(c, frame.Room)
	case proto.KindDelta:
		reached := r.registry.Broadcast(frame.Room, proto.FormatDelta(frame.Amount), c)
		r.log.Debug().
			Str("client", c.ID).
			Str("room", frame.Room).
			Int64("amount", frame.Amount).
			Int("reached", reached).
			Msg("delta relayed")
	default:
		r.log.Debug().Str("client", c.ID).Msg("unrecognized frame dropped")
	}
}

// Detach removes a closed connection from whatever room it occupies.
// Safe to call for clients that never subscribed.
func (r *Relay) Detach(c *Client) {
	r.registry.Leave(c)
	r.log.Debug().Str("client", c.ID).Msg("client detached")
}
