package scoring

import (
	"math"

	"github.com/mcoot/findingfriends/internal/model"
)

// Compute scores a validated round. players is the full roster; every name
// receives an entry, with 0 for players who earned nothing.
//
// The host side wins only when the opponents finish strictly below the bid.
// Winning shares are whole points that always add up to the distributable
// pool; losing opponents split opponentScore*1.5 evenly and are not rounded.
func Compute(mode model.Mode, players []string, hostIndex int, friendIndices []int, bid, opponentScore int) model.RoundResult {
	scores := make(map[string]float64, len(players))
	for _, p := range players {
		scores[p] = 0
	}

	if mode == model.ModeSolo {
		friendIndices = nil
	}

	onHostTeam := make(map[int]bool, len(friendIndices)+1)
	onHostTeam[hostIndex] = true
	for _, idx := range friendIndices {
		onHostTeam[idx] = true
	}

	var opponents []string
	for i, p := range players {
		if !onHostTeam[i] {
			opponents = append(opponents, p)
		}
	}

	host := players[hostIndex]
	hostTeamWins := opponentScore < bid

	var winner model.Winner
	var recipients []string

	switch {
	case hostTeamWins && mode == model.ModeSolo:
		scores[host] = model.TotalPoints
		winner = model.WinnerHost
		recipients = []string{host}

	case hostTeamWins:
		distributable := float64(model.TotalPoints - opponentScore)
		shares := splitDistributable(distributable, len(friendIndices))
		scores[host] = shares[0]
		recipients = append(recipients, host)
		for i, idx := range friendIndices {
			scores[players[idx]] = shares[i+1]
			recipients = append(recipients, players[idx])
		}
		winner = model.WinnerHostTeam

	default:
		// Opponents can never be empty: a full roster leaves at least three.
		share := float64(opponentScore) * model.OpponentMultiplier / float64(len(opponents))
		for _, p := range opponents {
			scores[p] = share
		}
		winner = model.WinnerOpponents
		recipients = opponents
	}

	return model.RoundResult{
		Scores:       scores,
		Winner:       winner,
		Distribution: describe(mode, winner, bid, opponentScore, recipients, scores),
	}
}

// splitDistributable divides the pool between the host (index 0) and friends.
// The last share is always the remainder so the shares sum exactly.
func splitDistributable(distributable float64, friendCount int) []float64 {
	switch friendCount {
	case 0:
		return []float64{distributable}
	case 1:
		hostShare := math.Round(distributable * 0.75)
		return []float64{hostShare, distributable - hostShare}
	default:
		hostShare := math.Round(distributable * 0.5)
		firstFriend := math.Round((distributable - hostShare) / 2)
		return []float64{hostShare, firstFriend, distributable - hostShare - firstFriend}
	}
}
