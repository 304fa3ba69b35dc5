package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch [date]",
		Short: "Stream live updates for a session",
		Long: `Connect to the session's websocket feed and print updates as they happen.

Events include:
  - round-added: A round was recorded
  - roster-updated: A player was renamed

Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchSession(ctx, cmd.OutOrStdout(), dateArg(args), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// FeedEvent is a live session update (matches the websocket feed)
type FeedEvent struct {
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Round     *Round    `json:"round,omitempty"`
	Summary   Summary   `json:"summary"`
}

func watchSession(ctx context.Context, w io.Writer, date string, jsonOutput bool) error {
	// The live feed is served by the web router, not the API router
	wsURL := client.WebsocketURL("/sessions/" + date + "/ws")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock ReadJSON on cancellation
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	if !jsonOutput {
		_, _ = fmt.Fprintf(w, "Watching session %s\n", date)
	}

	for {
		var event FeedEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					_, _ = fmt.Fprintln(w, "Disconnected")
				}
				return nil
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				continue
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printFeedEvent(w, event, jsonOutput)
	}
}

func printFeedEvent(w io.Writer, event FeedEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		_, _ = fmt.Fprintln(w, string(data))
		return
	}

	timestamp := event.Timestamp.Local().Format("2006-01-02 15:04:05")
	var detail string
	switch {
	case event.Round != nil:
		detail = fmt.Sprintf("round %d: %s", event.Round.Round, event.Round.Distribution)
	default:
		names := make([]string, len(event.Summary.Rankings))
		for i, r := range event.Summary.Rankings {
			names[i] = r.Name
		}
		detail = "players: " + strings.Join(names, ", ")
	}
	_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event.Type, detail)

	if len(event.Summary.Rankings) > 0 {
		leader := event.Summary.Rankings[0]
		_, _ = fmt.Fprintf(w, "  leader: %s (%s)\n", leader.Name, formatPoints(leader.Total))
	}
}
