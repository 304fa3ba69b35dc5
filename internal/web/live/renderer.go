package live

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/mcoot/findingfriends/internal/api/response"
	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/stats"
	"github.com/mcoot/findingfriends/internal/web/templates/components"
)

// FeedEvent is the JSON payload pushed to websocket clients
type FeedEvent struct {
	Type      model.EventType  `json:"type"`
	Date      string           `json:"date"`
	Timestamp time.Time        `json:"timestamp"`
	Round     *response.Round  `json:"round,omitempty"`
	Summary   response.Summary `json:"summary"`
}

// RenderSessionEvent renders an event against the session's current state.
// The HTML is the replacement live board; the JSON carries the round and standings.
func RenderSessionEvent(ctx context.Context, event model.Event, session *model.Session) (Message, error) {
	summary := stats.Summarize(stats.SessionRankings(session), len(session.Rounds))
	summary.SessionCount = 1

	var buf bytes.Buffer
	if err := components.LiveBoard(summary, session.Rounds).Render(ctx, &buf); err != nil {
		return Message{}, err
	}

	feed := FeedEvent{
		Type:      event.Type,
		Date:      string(event.Date),
		Timestamp: event.Timestamp.UTC(),
		Summary:   response.SummaryFromModel(summary),
	}
	if event.Round != nil {
		r := response.RoundFromModel(event.Round)
		feed.Round = &r
	}
	data, err := json.Marshal(feed)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Name: string(event.Type),
		HTML: buf.String(),
		JSON: data,
	}, nil
}
