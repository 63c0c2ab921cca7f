package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventMatchesUpdated = "matches_updated"

type MatchesUpdatedEvent struct {
	Type           string    `json:"type"`
	StartupID      uuid.UUID `json:"startup_id"`
	MatchesCreated int       `json:"matches_created"`
	Timestamp      string    `json:"timestamp"`
}

// Notifier publishes match events to the dashboards of the users involved.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

// NotifyMatchesUpdated tells the startup and each matched investor that the
// startup's match set was replaced.
func (n *Notifier) NotifyMatchesUpdated(startupID uuid.UUID, investorIDs []uuid.UUID, matchesCreated int) {
	if n == nil || n.hub == nil {
		return
	}

	evt := MatchesUpdatedEvent{
		Type:           EventMatchesUpdated,
		StartupID:      startupID,
		MatchesCreated: matchesCreated,
		Timestamp:      n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Warn("ws event encode failed", zap.Error(err))
		return
	}

	n.hub.Send(b, append([]uuid.UUID{startupID}, investorIDs...)...)
}
