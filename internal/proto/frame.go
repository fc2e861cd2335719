// Package proto defines the text wire format spoken over the counter
// relay's WebSocket connections and a pure parser for it.
package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// SubscribePrefix is the literal prefix of a subscribe frame.
const SubscribePrefix = "Subscribe: "

// FrameKind discriminates parsed inbound frames.
type FrameKind int

const (
	// KindUnrecognized marks a frame matching neither known form.
	// Such frames are dropped without a response.
	KindUnrecognized FrameKind = iota
	// KindSubscribe requests membership in a room.
	KindSubscribe
	// KindDelta is a signed counter increment addressed to a room.
	KindDelta
)

// Frame is the result of parsing one inbound text frame.
// Room is set for KindSubscribe and KindDelta; Amount only for KindDelta.
type Frame struct {
	Kind   FrameKind
	Room   string
	Amount int64
}

// Parse interprets a raw text frame. It recognizes exactly two forms:
//
//	Subscribe: <roomId>
//	<signedInteger> <roomId>
//
// Room tokens are opaque and case-sensitive; no format is enforced
// beyond being a single non-empty token. Everything else parses as
// KindUnrecognized.
func Parse(raw string) Frame {
	if room, ok := strings.CutPrefix(raw, SubscribePrefix); ok {
		if !validToken(room) {
			return Frame{Kind: KindUnrecognized}
		}
		return Frame{Kind: KindSubscribe, Room: room}
	}

	amountTok, room, ok := strings.Cut(raw, " ")
	if !ok || !validToken(room) {
		return Frame{Kind: KindUnrecognized}
	}
	amount, err := strconv.ParseInt(amountTok, 10, 64)
	if err != nil {
		return Frame{Kind: KindUnrecognized}
	}
	return Frame{Kind: KindDelta, Room: room, Amount: amount}
}

// FormatDelta renders a delta for broadcast. The sign is always
// explicit, so recipients can feed the frame straight into an
// accumulating integer parser.
func FormatDelta(amount int64) string {
	return fmt.Sprintf("%+d", amount)
}

func validToken(tok string) bool {
	return tok != "" && !strings.ContainsRune(tok, ' ')
}
