package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/findingfriends/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mode          model.Mode
		friends       []int
		bid           int
		opponentScore int
		wantErr       bool
	}{
		{"normal no friends", model.ModeNormal, nil, 150, 100, false},
		{"normal two friends", model.ModeNormal, []int{1, 2}, 80, 0, false},
		{"normal three friends", model.ModeNormal, []int{1, 2, 3}, 150, 100, true},
		{"solo", model.ModeSolo, nil, 200, 210, false},
		{"bid below minimum", model.ModeNormal, nil, 70, 100, true},
		{"bid at minimum", model.ModeNormal, nil, 80, 100, false},
		{"no bids sentinel", model.ModeNormal, nil, 160, 100, false},
		{"bid above ui range is allowed", model.ModeNormal, nil, 155, 100, false},
		{"negative opponent score", model.ModeNormal, nil, 150, -5, true},
		{"opponent score at max", model.ModeNormal, nil, 150, 400, false},
		{"opponent score above max", model.ModeNormal, nil, 150, 405, true},
		{"unknown mode", model.Mode("2v4"), nil, 150, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mode, tt.friends, tt.bid, tt.opponentScore)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidRound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveRoundDropsHostAndDuplicates(t *testing.T) {
	roster := model.DefaultRoster()

	resolved, err := ResolveRound(roster, model.RoundInput{
		Mode:          model.ModeNormal,
		HostIndex:     1,
		FriendIndices: []int{1, 3, 3, 0},
		Bid:           120,
		OpponentScore: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 0}, resolved.FriendIndices)
	assert.Equal(t, 120, resolved.Bid)
}

func TestResolveRoundSoloClearsFriendsAndFixesBid(t *testing.T) {
	roster := model.DefaultRoster()

	resolved, err := ResolveRound(roster, model.RoundInput{
		Mode:          model.ModeSolo,
		HostIndex:     0,
		FriendIndices: []int{1, 2},
		Bid:           90,
		OpponentScore: 210,
	})
	require.NoError(t, err)

	assert.Empty(t, resolved.FriendIndices)
	assert.Equal(t, model.SoloBid, resolved.Bid)
}

func TestResolveRoundRejectsOutOfRangeSeats(t *testing.T) {
	roster := model.DefaultRoster()

	_, err := ResolveRound(roster, model.RoundInput{Mode: model.ModeNormal, HostIndex: 6, Bid: 100})
	assert.ErrorIs(t, err, model.ErrInvalidRound)

	_, err = ResolveRound(roster, model.RoundInput{Mode: model.ModeNormal, HostIndex: 0, FriendIndices: []int{-1}, Bid: 100})
	assert.ErrorIs(t, err, model.ErrInvalidRound)
}

func TestResolvedHostInFriendsDoesNotCountTowardsLimit(t *testing.T) {
	roster := model.DefaultRoster()

	resolved, err := ResolveRound(roster, model.RoundInput{
		Mode:          model.ModeNormal,
		HostIndex:     0,
		FriendIndices: []int{0, 1, 2},
		Bid:           100,
		OpponentScore: 50,
	})
	require.NoError(t, err)

	assert.NoError(t, Validate(resolved.Mode, resolved.FriendIndices, resolved.Bid, resolved.OpponentScore))
}
