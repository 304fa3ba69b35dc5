package model

import (
	"fmt"
	"time"
)

// SessionDateLayout is the calendar-date format used as a session key
const SessionDateLayout = "2006-01-02"

// SessionDate identifies a session by calendar date (YYYY-MM-DD)
type SessionDate string

// ParseSessionDate validates a date label
func ParseSessionDate(s string) (SessionDate, error) {
	t, err := time.Parse(SessionDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return SessionDate(t.Format(SessionDateLayout)), nil
}

// DateOf returns the session date containing t, in t's location
func DateOf(t time.Time) SessionDate {
	return SessionDate(t.Format(SessionDateLayout))
}

// Session holds all rounds recorded on one calendar date
type Session struct {
	Date      SessionDate
	Players   []string // current roster, always RosterSize names
	Rounds    []Round
	NextRound int // 1-based number the next appended round receives
}

// NewSession creates an empty session with the default roster
func NewSession(date SessionDate) *Session {
	return &Session{
		Date:      date,
		Players:   DefaultRoster(),
		Rounds:    []Round{},
		NextRound: 1,
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := &Session{
		Date:      s.Date,
		Players:   append([]string(nil), s.Players...),
		Rounds:    make([]Round, len(s.Rounds)),
		NextRound: s.NextRound,
	}
	for i, r := range s.Rounds {
		c.Rounds[i] = r.Clone()
	}
	return c
}

// PlayerIndex returns the roster seat for a name, or -1
func (s *Session) PlayerIndex(name string) int {
	for i, p := range s.Players {
		if p == name {
			return i
		}
	}
	return -1
}
