package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/storage"
)

// renderTimeout bounds the storage read behind each broadcast
const renderTimeout = 5 * time.Second

// Broadcaster pushes session changes to live viewers
type Broadcaster struct {
	hubManager *HubManager
	storage    storage.Storage
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, storage storage.Storage, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		storage:    storage,
		logger:     logger.With(slog.String("component", "live-broadcaster")),
	}
}

// Publish renders the event and fans it out to the session's viewers.
// Nothing is rendered when nobody is watching.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.Date)
	if hub == nil || hub.ClientCount() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	session, err := b.storage.GetSession(ctx, event.Date)
	if err != nil {
		b.logger.Error("live failed to load session",
			slog.String("date", string(event.Date)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	msg, err := RenderSessionEvent(ctx, event, session)
	if err != nil {
		b.logger.Error("live failed to render event",
			slog.String("date", string(event.Date)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.Broadcast(msg)
}
