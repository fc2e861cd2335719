// Command counter is a terminal client for a wscount room: it keeps a
// subscription alive, prints every observed delta, and reads
// increments from stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmarkelov/wscount/internal/client"
	"github.com/vmarkelov/wscount/internal/log"
)

var (
	flagAddr  string
	flagRoom  string
	flagRetry time.Duration
	flagLevel string
)

var rootCmd = &cobra.Command{
	Use:   "counter",
	Short: "Join a wscount room and count along from the terminal",
	Long: `counter joins a room on a wscount relay and mirrors its counter.

Type +, -, or a signed amount like +5 and press Enter to send a delta.
The connection is re-established automatically after loss; the count
shows ? until the first delta of a session arrives.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagAddr, "addr", "ws://localhost:8080/ws", "relay WebSocket address")
	rootCmd.Flags().StringVar(&flagRoom, "room", "", "room token (default: generate a fresh one)")
	rootCmd.Flags().DurationVar(&flagRetry, "retry", 2*time.Second, "delay between reconnect attempts")
	rootCmd.Flags().StringVar(&flagLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
}

func run(cmd *cobra.Command, _ []string) error {
	logger := log.New(flagLevel)

	rec := client.New(client.Options{
		URL:        flagAddr,
		Room:       flagRoom,
		RetryDelay: flagRetry,
		Logger:     logger,
		OnStatus: func(st client.State) {
			fmt.Printf("[%s] count: %s\n", st.Status, st.Display())
		},
		OnDelta: func(amount int64, st client.State) {
			fmt.Printf("%+d -> count: %s\n", amount, st.Display())
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("room %s via %s\n", rec.Room(), flagAddr)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := rec.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("session loop exited")
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		amount, ok := parseInput(scanner.Text())
		if !ok {
			fmt.Println("enter +, -, or a signed amount like +5 (q to quit)")
			continue
		}
		if amount == 0 {
			break // q / quit
		}
		if err := rec.Send(ctx, amount); err != nil {
			if errors.Is(err, client.ErrDisconnected) {
				fmt.Println("not connected, delta not sent")
				continue
			}
			logger.Warn().Err(err).Msg("send failed")
		}
	}

	stop()
	<-runDone
	return scanner.Err()
}

// parseInput maps a stdin line onto a delta. Zero with ok=true means quit.
func parseInput(line string) (int64, bool) {
	switch line = strings.TrimSpace(line); line {
	case "q", "quit", "exit":
		return 0, true
	case "+":
		return 1, true
	case "-":
		return -1, true
	case "":
		return 0, false
	default:
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
