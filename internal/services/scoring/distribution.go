package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/findingfriends/internal/model"
)

// describe renders the human-readable summary stored alongside a round
func describe(mode model.Mode, winner model.Winner, bid, opponentScore int, recipients []string, scores map[string]float64) string {
	var b strings.Builder

	switch winner {
	case model.WinnerHost:
		b.WriteString("Host wins " + string(mode))
	case model.WinnerHostTeam:
		b.WriteString("Host Team wins")
	default:
		b.WriteString("Opponents win")
	}
	fmt.Fprintf(&b, " (bid %d, opponents %d): ", bid, opponentScore)

	parts := make([]string, len(recipients))
	for i, name := range recipients {
		parts[i] = name + " +" + FormatPoints(scores[name])
	}
	b.WriteString(strings.Join(parts, ", "))

	return b.String()
}

// FormatPoints prints a score with as few digits as needed (63, 52.5)
func FormatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
