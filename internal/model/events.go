package model

import "time"

// EventType identifies the type of session event
type EventType string

const (
	EventRoundAdded    EventType = "round-added"
	EventRosterUpdated EventType = "roster-updated"
)

// Event is published to live subscribers of a session
type Event struct {
	Type      EventType
	Timestamp time.Time
	Date      SessionDate
	Round     *Round // set for round-added
}
