package rules_test

import (
	"testing"

	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/mitchelldurbincs/bao/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type seat struct {
	id    int
	bowls core.Bowls
}

func (s seat) GetID() int { return s.id }
func (s seat) GetBowls() core.Bowls { return s.bowls }

func TestPlayerLost(t *testing.T) {
	tests := []struct {
		name   string
		bowls  core.Bowls
		normal bool
		easy   bool
	}{
		{"opening position", core.NewBowls(), false, false},
		{"all empty", core.Bowls{}, true, true},
		{"front row only", testutil.BowlsOf(0, 3, 0, 1), false, true},
		{"single inner stone", testutil.SparseBowls(map[int]uint{15: 1}), false, false},
	}

	normal := rules.NewWinConditionChecker(testutil.NopLogger(), core.ModeNormal)
	easy := rules.NewWinConditionChecker(testutil.NopLogger(), core.ModeEasy)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.normal, normal.PlayerLost(&tt.bowls))
			assert.Equal(t, tt.easy, easy.PlayerLost(&tt.bowls))
		})
	}
}

func TestPlayerLost_Idempotent(t *testing.T) {
	boards := []core.Bowls{
		core.NewBowls(),
		{},
		testutil.BowlsOf(0, 3, 0, 1),
		testutil.SparseBowls(map[int]uint{8: 2, 15: 1}),
		testutil.FilledBowls(1),
	}

	for _, mode := range []core.Mode{core.ModeNormal, core.ModeEasy} {
		wc := rules.NewWinConditionChecker(testutil.NopLogger(), mode)
		for i, bowls := range boards {
			before := bowls
			first := wc.PlayerLost(&bowls)
			second := wc.PlayerLost(&bowls)

			assert.Equal(t, first, second, "mode %s board %d", mode, i)
			assert.Equal(t, before, bowls, "mode %s board %d left unchanged", mode, i)
		}
	}
}

func TestLegalMoveCalculator(t *testing.T) {
	lmc := rules.NewLegalMoveCalculator()
	own := testutil.SparseBowls(map[int]uint{0: 1, 3: 2, 9: 7, 15: 1})

	mask := lmc.GetLegalActionMask(&own)
	for i, legal := range mask {
		assert.Equal(t, i == 3 || i == 9, legal, "bowl %d", i)
	}

	assert.Equal(t, []int{3, 9}, lmc.LegalMoves(&own))
	assert.True(t, lmc.IsMoveLegal(&own, 9))
	assert.False(t, lmc.IsMoveLegal(&own, 0))
	assert.False(t, lmc.IsMoveLegal(&own, 16))
	assert.False(t, lmc.IsMoveLegal(&own, -1))
	assert.True(t, lmc.HasAnyLegalMove(&own))
}

func TestLegalMoveCalculator_Stalemate(t *testing.T) {
	lmc := rules.NewLegalMoveCalculator()
	own := testutil.FilledBowls(1)

	assert.Empty(t, lmc.LegalMoves(&own))
	assert.False(t, lmc.HasAnyLegalMove(&own))
}

func TestWinConditionChecker(t *testing.T) {
	logger := testutil.NopLogger()

	tests := []struct {
		name       string
		mode       core.Mode
		mover      core.Bowls
		wantOver   bool
		wantWinner int
		wantReason rules.Reason
	}{
		{
			name:       "game continues",
			mode:       core.ModeNormal,
			mover:      core.NewBowls(),
			wantWinner: -1,
			wantReason: rules.ReasonNone,
		},
		{
			name:       "normal board cleared",
			mode:       core.ModeNormal,
			mover:      core.Bowls{},
			wantOver:   true,
			wantWinner: 2,
			wantReason: rules.ReasonBoardCleared,
		},
		{
			name:       "easy inner row cleared",
			mode:       core.ModeEasy,
			mover:      testutil.BowlsOf(4, 4, 4),
			wantOver:   true,
			wantWinner: 2,
			wantReason: rules.ReasonBoardCleared,
		},
		{
			name:       "normal front row stones keep the game alive",
			mode:       core.ModeNormal,
			mover:      testutil.BowlsOf(4, 4, 4),
			wantWinner: -1,
			wantReason: rules.ReasonNone,
		},
		{
			name:       "stones but no playable bowl",
			mode:       core.ModeNormal,
			mover:      testutil.FilledBowls(1),
			wantOver:   true,
			wantWinner: 2,
			wantReason: rules.ReasonNoLegalMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc := rules.NewWinConditionChecker(logger, tt.mode)

			over, winner, reason := wc.CheckGameOver(
				seat{id: 1, bowls: tt.mover},
				seat{id: 2, bowls: core.NewBowls()},
			)
			assert.Equal(t, tt.wantOver, over)
			assert.Equal(t, tt.wantWinner, winner)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "none", rules.ReasonNone.String())
	assert.Equal(t, "board_cleared", rules.ReasonBoardCleared.String())
	assert.Equal(t, "no_legal_move", rules.ReasonNoLegalMove.String())
}
