package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapMoveError(t *testing.T) {
	tests := []struct {
		name     string
		move     *MoveAction
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			move:  &MoveAction{PlayerID: 1, Bowl: 3},
			err:   nil,
			isNil: true,
		},
		{
			name:     "move with bowl index",
			move:     &MoveAction{PlayerID: 1, Bowl: 17},
			err:      ErrIndexOutOfRange,
			expected: "player 1: sow from bowl 17: bowl index out of range",
		},
		{
			name:     "insufficient stones",
			move:     &MoveAction{PlayerID: 2, Bowl: 9},
			err:      ErrInsufficientStones,
			expected: "player 2: sow from bowl 9: bowl holds fewer than 2 stones",
		},
		{
			name:     "generic move fallback",
			move:     nil,
			err:      ErrGameOver,
			expected: "player move: game is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapMoveError(tt.move, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapGameStateError(t *testing.T) {
	tests := []struct {
		name     string
		turn     int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			turn:  5,
			phase: "sowing",
			isNil: true,
		},
		{
			name:     "game over",
			turn:     31,
			phase:    "Ended",
			err:      ErrGameOver,
			expected: "game turn 31 [Ended]: game is over",
		},
		{
			name:     "aborted sowing",
			turn:     12,
			phase:    "sowing",
			err:      ErrEndlessSowing,
			expected: "game turn 12 [sowing]: sowing exceeded step limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapGameStateError(tt.turn, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapPlayerError(t *testing.T) {
	assert.Nil(t, WrapPlayerError(1, "setup", nil))

	err := WrapPlayerError(2, "select bowl", ErrInvalidPlayer)
	assert.Equal(t, "player 2 select bowl: invalid player ID", err.Error())
	assert.ErrorIs(t, err, ErrInvalidPlayer)
}

func TestGameError(t *testing.T) {
	t.Run("with player ID", func(t *testing.T) {
		err := NewGameError(7, 2, "sow", ErrEndlessSowing)
		assert.Equal(t, "turn 7: player 2 sow: sowing exceeded step limit", err.Error())
		assert.True(t, errors.Is(err, ErrEndlessSowing))
	})

	t.Run("without player ID", func(t *testing.T) {
		err := NewGameError(40, 0, "win condition check", ErrGameOver)
		assert.Equal(t, "turn 40: win condition check: game is over", err.Error())
		assert.True(t, errors.Is(err, ErrGameOver))
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		gameErr := fmt.Errorf("match: %w", NewGameError(3, 1, "read input", errors.New("stdin closed")))

		var extracted *GameError
		require.True(t, errors.As(gameErr, &extracted))
		assert.Equal(t, 3, extracted.Turn)
		assert.Equal(t, 1, extracted.PlayerID)
		assert.Equal(t, "read input", extracted.Operation)
	})
}

func TestWrappedIllegalMoveKeepsBothCauses(t *testing.T) {
	move := &MoveAction{PlayerID: 1, Bowl: 4}
	err := WrapMoveError(move, fmt.Errorf("%w: %w", ErrIllegalMove, ErrInsufficientStones))

	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.ErrorIs(t, err, ErrInsufficientStones)
	assert.NotErrorIs(t, err, ErrIndexOutOfRange)
}
