package core

// Client is one relay participant: the core-side handle to a duplex
// text channel. Outbound frames are queued on Events by the registry;
// the transport layer drains them. The current room is owned by the
// Registry and never touched outside its locks.
type Client struct {
	ID     string
	Events chan string

	room string
}

// NewClient constructs a client with an outbound buffer of the given
// capacity. When the buffer is full further frames are dropped rather
// than blocking the broadcaster.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 8
	}
	return &Client{
		ID:     id,
		Events: make(chan string, buffer),
	}
}

// TrySend queues an outbound frame without blocking. Reports false
// when the client's buffer is full and the frame was dropped.
func (c *Client) TrySend(frame string) bool {
	select {
	case c.Events <- frame:
		return true
	default:
		return false
	}
}
