package scoring

import (
	"fmt"

	"github.com/mcoot/findingfriends/internal/model"
)

// Validate checks a round configuration against the game rules.
// friends must already exclude the host.
func Validate(mode model.Mode, friends []int, bid, opponentScore int) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", model.ErrInvalidRound, mode)
	}
	if mode == model.ModeNormal && len(friends) > model.MaxFriends {
		return fmt.Errorf("%w: %d friends selected, at most %d allowed", model.ErrInvalidRound, len(friends), model.MaxFriends)
	}
	if bid < model.MinBid && bid != model.NoBidsSentinel {
		return fmt.Errorf("%w: bid %d is below %d", model.ErrInvalidRound, bid, model.MinBid)
	}
	if opponentScore < 0 || opponentScore > model.MaxOpponentScore {
		return fmt.Errorf("%w: opponent score %d outside [0, %d]", model.ErrInvalidRound, opponentScore, model.MaxOpponentScore)
	}
	return nil
}

// ResolveRound prepares a submitted round for validation: seat indices are
// range-checked, the host and duplicates are dropped from the friend list, and
// 1v5 rounds lose their friends and play to the fixed bid.
func ResolveRound(roster []string, input model.RoundInput) (model.RoundInput, error) {
	if input.HostIndex < 0 || input.HostIndex >= len(roster) {
		return input, fmt.Errorf("%w: host seat %d out of range", model.ErrInvalidRound, input.HostIndex)
	}

	resolved := input
	resolved.FriendIndices = nil

	if input.Mode == model.ModeSolo {
		resolved.Bid = model.SoloBid
		return resolved, nil
	}

	seen := make(map[int]bool, len(input.FriendIndices))
	for _, idx := range input.FriendIndices {
		if idx < 0 || idx >= len(roster) {
			return input, fmt.Errorf("%w: friend seat %d out of range", model.ErrInvalidRound, idx)
		}
		if idx == input.HostIndex || seen[idx] {
			continue
		}
		seen[idx] = true
		resolved.FriendIndices = append(resolved.FriendIndices, idx)
	}

	return resolved, nil
}
