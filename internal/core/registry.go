package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// room is one broadcast partition. Its lock serializes membership
// mutation against broadcast iteration for this room only, so traffic
// in one room never contends with another.
type room struct {
	mu      sync.RWMutex
	members map[*Client]struct{}
}

func newRoom() *room {
	return &room{members: make(map[*Client]struct{})}
}

// Registry maps room ids to member sets. The outer lock guards the
// map and each client's current-room field; per-room member sets are
// guarded by the room's own lock. Lock order is always outer before
// inner. Broadcasts on different rooms run concurrently, sharing the
// outer lock only in read mode; Join and Leave take it in write mode,
// so membership changes serialize across rooms. Those are O(1) map
// updates, which keeps broadcast throughput independent of room count
// while the map and current-room fields stay consistent under a
// reclaim racing a join. Rooms are created lazily on first Join and
// reclaimed as soon as their last member leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
	log   *zerolog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		rooms: make(map[string]*room),
		log:   logger,
	}
}

// Join subscribes c to roomID, leaving any previous room first. A
// client is a member of at most one room; the last Join wins. Joining
// the room the client is already in is a no-op.
func (r *Registry) Join(c *Client, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.room == roomID {
		return
	}
	r.detachLocked(c)

	rm, ok := r.rooms[roomID]
	if !ok {
		rm = newRoom()
		r.rooms[roomID] = rm
	}
	rm.mu.Lock()
	rm.members[c] = struct{}{}
	count := len(rm.members)
	rm.mu.Unlock()
	c.room = roomID

	r.log.Debug().Str("client", c.ID).Str("room", roomID).Int("members", count).Msg("joined room")
}

// Leave removes c from whatever room it occupies. No-op when the
// client never subscribed.
func (r *Registry) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachLocked(c)
}

// detachLocked removes c from its current room and reclaims the room
// if it became empty. Caller holds r.mu.
func (r *Registry) detachLocked(c *Client) {
	if c.room == "" {
		return
	}
	if rm, ok := r.rooms[c.room]; ok {
		rm.mu.Lock()
		delete(rm.members, c)
		empty := len(rm.members) == 0
		rm.mu.Unlock()
		if empty {
			delete(r.rooms, c.room)
			r.log.Debug().Str("room", c.room).Msg("room reclaimed")
		}
	}
	c.room = ""
}

// Room returns the client's current subscription, or "" when unsubscribed.
func (r *Registry) Room(c *Client) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return c.room
}

// Broadcast delivers payload to every member of roomID except exclude
// and returns the number of clients reached. Delivery is at most once,
// best effort: a recipient with a full buffer is skipped without
// affecting the others, and an unknown room delivers to nobody.
// Iteration order across recipients is unspecified.
func (r *Registry) Broadcast(roomID, payload string, exclude *Client) int {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()

	delivered := 0
	for m := range rm.members {
		if m == exclude {
			continue
		}
		if m.TrySend(payload) {
			delivered++
		} else {
			r.log.Warn().Str("client", m.ID).Str("room", roomID).Msg("slow consumer, frame dropped")
		}
	}
	return delivered
}

// Members reports the current size of a room, zero for unknown rooms.
func (r *Registry) Members(roomID string) int {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.members)
}

// Stats returns the number of live rooms and subscribed clients.
func (r *Registry) Stats() (rooms, clients int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms = len(r.rooms)
	for _, rm := range r.rooms {
		rm.mu.RLock()
		clients += len(rm.members)
		rm.mu.RUnlock()
	}
	return rooms, clients
}
