package model

import "fmt"

// RosterSize is the number of seats at a Finding Friends table
const RosterSize = 6

// DefaultRoster returns the placeholder names a new session starts with
func DefaultRoster() []string {
	players := make([]string, RosterSize)
	for i := range players {
		players[i] = fmt.Sprintf("Player %d", i+1)
	}
	return players
}

// PlayerTotal is one player's cumulative score over a set of rounds
type PlayerTotal struct {
	Name  string
	Total float64
}

// RoleStats counts how often a player took each role and how often that role won
type RoleStats struct {
	Hosted      int
	HostWins    int
	FriendGames int
	FriendWins  int
	Played      int
}

// Ranking combines a player's total with their role record
type Ranking struct {
	Name string
	RoleStats
	Total      float64
	HostRate   int // percentage, 0 when never hosted
	FriendRate int // percentage, 0 when never a friend
}

// Summary is the derived view of a set of rounds
type Summary struct {
	Rankings        []Ranking
	BestHost        *Ranking // nil if nobody hosted enough rounds
	BestFriend      *Ranking // nil if nobody was a friend in enough rounds
	MostGamesPlayed *Ranking // nil if there are no rounds
	RoundCount      int
	SessionCount    int
}
