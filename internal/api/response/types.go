package response

import (
	"time"

	"github.com/mcoot/findingfriends/internal/archive"
	"github.com/mcoot/findingfriends/internal/model"
)

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// Round represents a recorded round
type Round struct {
	Round         int                `json:"round"`
	Mode          string             `json:"mode"`
	Players       []string           `json:"players"`
	Host          string             `json:"host"`
	Friends       []string           `json:"friends"`
	Bid           int                `json:"bid"`
	OpponentScore int                `json:"opponent_score"`
	Scores        map[string]float64 `json:"scores"`
	Winner        string             `json:"winner"`
	Distribution  string             `json:"distribution"`
	RecordedAt    time.Time          `json:"recorded_at"`
}

// RoundFromModel converts a model.Round
func RoundFromModel(r *model.Round) Round {
	friends := r.Friends
	if friends == nil {
		friends = []string{}
	}
	return Round{
		Round:         r.Round,
		Mode:          string(r.Mode),
		Players:       r.Players,
		Host:          r.Host,
		Friends:       friends,
		Bid:           r.Bid,
		OpponentScore: r.OpponentScore,
		Scores:        r.Scores,
		Winner:        string(r.Winner),
		Distribution:  r.Distribution,
		RecordedAt:    r.RecordedAt,
	}
}

// Session represents a session with its rounds
type Session struct {
	Date      string   `json:"date"`
	Players   []string `json:"players"`
	Rounds    []Round  `json:"rounds"`
	NextRound int      `json:"next_round"`
	Editable  bool     `json:"editable"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session, editable bool) Session {
	rounds := make([]Round, len(s.Rounds))
	for i := range s.Rounds {
		rounds[i] = RoundFromModel(&s.Rounds[i])
	}
	return Session{
		Date:      string(s.Date),
		Players:   s.Players,
		Rounds:    rounds,
		NextRound: s.NextRound,
		Editable:  editable,
	}
}

// SessionListItem summarises a session in the list endpoint
type SessionListItem struct {
	Date       string   `json:"date"`
	Players    []string `json:"players"`
	RoundCount int      `json:"round_count"`
}

// SessionList is the response for listing sessions
type SessionList struct {
	Today    string            `json:"today"`
	Sessions []SessionListItem `json:"sessions"`
}

// SessionListFromModel converts stored sessions
func SessionListFromModel(today model.SessionDate, sessions []*model.Session) SessionList {
	items := make([]SessionListItem, len(sessions))
	for i, s := range sessions {
		items[i] = SessionListItem{
			Date:       string(s.Date),
			Players:    s.Players,
			RoundCount: len(s.Rounds),
		}
	}
	return SessionList{Today: string(today), Sessions: items}
}

// Ranking is one leaderboard line
type Ranking struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Played      int     `json:"played"`
	Hosted      int     `json:"hosted"`
	HostWins    int     `json:"host_wins"`
	HostRate    int     `json:"host_rate"`
	FriendGames int     `json:"friend_games"`
	FriendWins  int     `json:"friend_wins"`
	FriendRate  int     `json:"friend_rate"`
}

// RankingFromModel converts a model.Ranking
func RankingFromModel(r model.Ranking) Ranking {
	return Ranking{
		Name:        r.Name,
		Total:       r.Total,
		Played:      r.Played,
		Hosted:      r.Hosted,
		HostWins:    r.HostWins,
		HostRate:    r.HostRate,
		FriendGames: r.FriendGames,
		FriendWins:  r.FriendWins,
		FriendRate:  r.FriendRate,
	}
}

func optionalRanking(r *model.Ranking) *Ranking {
	if r == nil {
		return nil
	}
	out := RankingFromModel(*r)
	return &out
}

// Summary is a derived leaderboard
type Summary struct {
	Rankings        []Ranking `json:"rankings"`
	BestHost        *Ranking  `json:"best_host"`
	BestFriend      *Ranking  `json:"best_friend"`
	MostGamesPlayed *Ranking  `json:"most_games_played"`
	RoundCount      int       `json:"round_count"`
	SessionCount    int       `json:"session_count"`
}

// SummaryFromModel converts a model.Summary
func SummaryFromModel(s model.Summary) Summary {
	rankings := make([]Ranking, len(s.Rankings))
	for i, r := range s.Rankings {
		rankings[i] = RankingFromModel(r)
	}
	return Summary{
		Rankings:        rankings,
		BestHost:        optionalRanking(s.BestHost),
		BestFriend:      optionalRanking(s.BestFriend),
		MostGamesPlayed: optionalRanking(s.MostGamesPlayed),
		RoundCount:      s.RoundCount,
		SessionCount:    s.SessionCount,
	}
}

// Standings is the summary for one session
type Standings struct {
	Date     string `json:"date"`
	Editable bool   `json:"editable"`
	Summary
}

// Record is an archived round record
type Record struct {
	ID          string             `json:"id"`
	SessionDate string             `json:"session_date"`
	Round       int                `json:"round"`
	Mode        string             `json:"mode"`
	Players     []string           `json:"players"`
	Scores      map[string]float64 `json:"scores"`
	CreatedAt   time.Time          `json:"created_at"`
}

// RecordList is the response for recent records
type RecordList struct {
	Records []Record `json:"records"`
}

// RecordListFromArchive converts archive records
func RecordListFromArchive(records []archive.Record) RecordList {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{
			ID:          r.ID,
			SessionDate: string(r.SessionDate),
			Round:       r.Round,
			Mode:        string(r.Mode),
			Players:     r.Players,
			Scores:      r.Scores,
			CreatedAt:   r.CreatedAt,
		}
	}
	return RecordList{Records: out}
}
