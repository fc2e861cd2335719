package client

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vmarkelov/wscount/internal/proto"
)

// ErrDisconnected is returned by Send while no session is established.
var ErrDisconnected = errors.New("not connected")

const defaultRetryDelay = 2 * time.Second

// Options configure a Reconnector.
type Options struct {
	// URL of the relay's WebSocket endpoint, e.g. ws://host:8080/ws.
	URL string
	// Room to subscribe to. Empty generates a fresh UUID token, the
	// same shape the browser client produces.
	Room string
	// RetryDelay between reconnect attempts. Defaults to 2s.
	RetryDelay time.Duration
	// OnDelta is invoked after any delta is folded into the state,
	// local sends included. Optional.
	OnDelta func(amount int64, state State)
	// OnStatus is invoked on every connect and disconnect. Optional.
	OnStatus func(state State)
	Logger   *zerolog.Logger
}

// Reconnector maintains one subscription against the relay for as long
// as its context lives. Connection loss is absorbed: the subscription
// is replayed on every successful redial and the displayed count is
// reset to unknown, so the client only ever shows deltas it observed
// on the current session.
type Reconnector struct {
	opts Options

	mu    sync.Mutex // guards state and conn
	state State
	conn  *websocket.Conn
}

// New builds a Reconnector; Run must be called to establish a session.
func New(opts Options) *Reconnector {
	if opts.Room == "" {
		opts.Room = uuid.NewString()
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	return &Reconnector{
		opts:  opts,
		state: State{Status: StatusDisconnected, Room: opts.Room},
	}
}

// Room returns the room token this client subscribes to.
func (r *Reconnector) Room() string {
	return r.opts.Room
}

// State returns a snapshot of the current client state.
func (r *Reconnector) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Send forwards amount to the relay and applies it locally without
// waiting for any echo; the relay never sends one. The state mutates
// and OnDelta fires only once the frame is handed to the transport, so
// a failed send leaves both untouched and they can never disagree.
func (r *Reconnector) Send(ctx context.Context, amount int64) error {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()
	if conn == nil {
		return ErrDisconnected
	}

	frame := proto.FormatDelta(amount) + " " + r.opts.Room
	if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		return err
	}

	r.mu.Lock()
	r.state.ApplyDelta(amount)
	snapshot := r.state
	r.mu.Unlock()
	if r.opts.OnDelta != nil {
		r.opts.OnDelta(amount, snapshot)
	}
	return nil
}

// Run dials, subscribes, and consumes broadcasts until ctx is
// cancelled, redialing after RetryDelay whenever the session drops.
// There is no retry limit; the loop ends only with the context.
func (r *Reconnector) Run(ctx context.Context) error {
	for {
		err := r.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.opts.Logger.Warn().Err(err).
			Dur("retry_in", r.opts.RetryDelay).
			Str("room", r.opts.Room).
			Msg("connection lost")

		select {
		case <-time.After(r.opts.RetryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Reconnector) session(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, r.opts.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	subscribe := proto.SubscribePrefix + r.opts.Room
	if err := conn.Write(ctx, websocket.MessageText, []byte(subscribe)); err != nil {
		return err
	}

	r.mu.Lock()
	r.conn = conn
	r.state.Connect()
	snapshot := r.state
	r.mu.Unlock()
	if r.opts.OnStatus != nil {
		r.opts.OnStatus(snapshot)
	}
	r.opts.Logger.Info().Str("room", r.opts.Room).Msg("subscribed")

	defer func() {
		r.mu.Lock()
		r.conn = nil
		r.state.Disconnect()
		down := r.state
		r.mu.Unlock()
		if r.opts.OnStatus != nil {
			r.opts.OnStatus(down)
		}
	}()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		amount, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			// The relay only ever sends bare deltas; tolerate anything else.
			continue
		}

		r.mu.Lock()
		r.state.ApplyDelta(amount)
		snapshot := r.state
		r.mu.Unlock()
		if r.opts.OnDelta != nil {
			r.opts.OnDelta(amount, snapshot)
		}
	}
}
