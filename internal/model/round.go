package model

import "time"

// Mode selects the team layout for a round
type Mode string

const (
	ModeNormal Mode = "Normal" // Host picks up to two friends
	ModeSolo   Mode = "1v5"    // Host plays alone against everyone
)

// Valid reports whether the mode is one of the supported variants
func (m Mode) Valid() bool {
	return m == ModeNormal || m == ModeSolo
}

// Winner classifies which side took the round
type Winner string

const (
	WinnerHost      Winner = "Host"      // 1v5 host beat the bid
	WinnerHostTeam  Winner = "Host Team" // Normal host team beat the bid
	WinnerOpponents Winner = "Opponents"
)

// HostSideWon returns true if the host (and friends) won the round
func (w Winner) HostSideWon() bool {
	return w == WinnerHost || w == WinnerHostTeam
}

// Game rule constants
const (
	MinBid             = 80
	NoBidsSentinel     = 160 // "No Bids" is recorded as a bid of 160
	SoloBid            = 200 // 1v5 rounds always play to 200
	MaxOpponentScore   = 400
	TotalPoints        = 400
	MaxFriends         = 2
	OpponentMultiplier = 1.5
	QualifyingGames    = 3 // minimum sample for best host / best friend
)

// RoundInput is a round configuration as submitted by a caller.
// Players are referenced by their roster seat.
type RoundInput struct {
	Mode          Mode
	HostIndex     int
	FriendIndices []int
	Bid           int
	OpponentScore int
}

// RoundResult is the scoring outcome for one round
type RoundResult struct {
	Scores       map[string]float64
	Winner       Winner
	Distribution string
}

// Round is a completed, immutable round record within a session
type Round struct {
	Round         int
	Mode          Mode
	Players       []string // roster snapshot at the time of the round
	Host          string
	Friends       []string
	Bid           int
	OpponentScore int
	Scores        map[string]float64
	Winner        Winner
	Distribution  string
	RecordedAt    time.Time
}

// Clone returns a deep copy of the round
func (r Round) Clone() Round {
	c := r
	c.Players = append([]string(nil), r.Players...)
	c.Friends = append([]string(nil), r.Friends...)
	c.Scores = make(map[string]float64, len(r.Scores))
	for name, score := range r.Scores {
		c.Scores[name] = score
	}
	return c
}
