package stats

import (
	"math"
	"sort"

	"github.com/mcoot/findingfriends/internal/model"
)

// TotalsByPlayer sums each player's score across rounds, highest first.
// Players with equal totals keep the order they first appeared in.
func TotalsByPlayer(rounds []model.Round) []model.PlayerTotal {
	names := namesInRounds(rounds)
	totals := make(map[string]float64, len(names))
	for _, r := range rounds {
		for name, score := range r.Scores {
			totals[name] += score
		}
	}

	result := make([]model.PlayerTotal, len(names))
	for i, name := range names {
		result[i] = model.PlayerTotal{Name: name, Total: totals[name]}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})

	return result
}

// RoleStats counts roles and wins for the given players. Names in the rounds
// that are not in players are ignored.
func RoleStats(players []string, rounds []model.Round) map[string]*model.RoleStats {
	result := make(map[string]*model.RoleStats, len(players))
	for _, p := range players {
		result[p] = &model.RoleStats{}
	}

	for _, r := range rounds {
		won := r.Winner.HostSideWon()

		for _, p := range r.Players {
			if st, ok := result[p]; ok {
				st.Played++
			}
		}

		if st, ok := result[r.Host]; ok {
			st.Hosted++
			if won {
				st.HostWins++
			}
		}

		for _, f := range r.Friends {
			if st, ok := result[f]; ok {
				st.FriendGames++
				if won {
					st.FriendWins++
				}
			}
		}
	}

	return result
}

// Rankings combines totals and role stats for every player seen in rounds,
// ordered by total score descending.
func Rankings(rounds []model.Round) []model.Ranking {
	return rankingsFor(namesInRounds(rounds), rounds)
}

// SessionRankings ranks a single session. The current roster is always
// included, followed by any older names that only appear in its rounds.
func SessionRankings(session *model.Session) []model.Ranking {
	names := append([]string(nil), session.Players...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range namesInRounds(session.Rounds) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return rankingsFor(names, session.Rounds)
}

func rankingsFor(names []string, rounds []model.Round) []model.Ranking {
	totals := make(map[string]float64, len(names))
	for _, r := range rounds {
		for name, score := range r.Scores {
			totals[name] += score
		}
	}
	roles := RoleStats(names, rounds)

	result := make([]model.Ranking, len(names))
	for i, name := range names {
		st := *roles[name]
		result[i] = model.Ranking{
			Name:       name,
			RoleStats:  st,
			Total:      totals[name],
			HostRate:   rate(st.HostWins, st.Hosted),
			FriendRate: rate(st.FriendWins, st.FriendGames),
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})

	return result
}

// rate returns wins/games as a rounded percentage
func rate(wins, games int) int {
	if games == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(games) * 100))
}

// BestHost returns the highest host win rate among players who hosted at
// least QualifyingGames rounds. Earlier rankings win ties.
func BestHost(rankings []model.Ranking) (model.Ranking, bool) {
	return best(rankings,
		func(r model.Ranking) bool { return r.Hosted >= model.QualifyingGames },
		func(r model.Ranking) int { return r.HostRate },
	)
}

// BestFriend returns the highest friend win rate among players who were a
// friend in at least QualifyingGames rounds.
func BestFriend(rankings []model.Ranking) (model.Ranking, bool) {
	return best(rankings,
		func(r model.Ranking) bool { return r.FriendGames >= model.QualifyingGames },
		func(r model.Ranking) int { return r.FriendRate },
	)
}

// MostGamesPlayed returns the player who played the most rounds
func MostGamesPlayed(rankings []model.Ranking) (model.Ranking, bool) {
	return best(rankings,
		func(r model.Ranking) bool { return r.Played > 0 },
		func(r model.Ranking) int { return r.Played },
	)
}

func best(rankings []model.Ranking, qualifies func(model.Ranking) bool, value func(model.Ranking) int) (model.Ranking, bool) {
	var top model.Ranking
	found := false
	for _, r := range rankings {
		if !qualifies(r) {
			continue
		}
		if !found || value(r) > value(top) {
			top = r
			found = true
		}
	}
	return top, found
}

// AllRounds flattens sessions into one history for all-time aggregation
func AllRounds(sessions []*model.Session) []model.Round {
	var rounds []model.Round
	for _, s := range sessions {
		rounds = append(rounds, s.Rounds...)
	}
	return rounds
}

// Summarize builds the full derived view for a set of rankings
func Summarize(rankings []model.Ranking, roundCount int) model.Summary {
	summary := model.Summary{
		Rankings:   rankings,
		RoundCount: roundCount,
	}
	if r, ok := BestHost(rankings); ok {
		summary.BestHost = &r
	}
	if r, ok := BestFriend(rankings); ok {
		summary.BestFriend = &r
	}
	if r, ok := MostGamesPlayed(rankings); ok {
		summary.MostGamesPlayed = &r
	}
	return summary
}

// namesInRounds lists every player appearing in rounds, in first-seen order
func namesInRounds(rounds []model.Round) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rounds {
		for _, p := range r.Players {
			if !seen[p] {
				seen[p] = true
				names = append(names, p)
			}
		}
		// Scores should be keyed by the snapshot; keep any stray key anyway.
		var stray []string
		for p := range r.Scores {
			if !seen[p] {
				seen[p] = true
				stray = append(stray, p)
			}
		}
		sort.Strings(stray)
		names = append(names, stray...)
	}
	return names
}
