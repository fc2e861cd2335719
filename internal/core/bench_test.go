package core

import (
	"strconv"
	"testing"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	reg := newTestRegistry()

	sender := NewClient("sender", 1)
	reg.Join(sender, "bench")

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient("c"+strconv.Itoa(i), 64)
		reg.Join(c, "bench")
		clients = append(clients, c)
	}

	// Drain recipients so the buffered path stays hot.
	for _, c := range clients {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reg.Broadcast("bench", "+1", sender)
	}
}

func BenchmarkBroadcast_10(b *testing.B)  { benchmarkBroadcast(b, 10) }
func BenchmarkBroadcast_100(b *testing.B) { benchmarkBroadcast(b, 100) }
func BenchmarkBroadcast_500(b *testing.B) { benchmarkBroadcast(b, 500) }
