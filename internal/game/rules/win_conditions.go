package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bao/internal/game/core"
)

// Reason explains why a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonBoardCleared: the player to move has no stones where the mode requires them.
	ReasonBoardCleared
	// ReasonNoLegalMove: the player to move has stones but no bowl with two or more.
	ReasonNoLegalMove
)

func (r Reason) String() string {
	switch r {
	case ReasonBoardCleared:
		return "board_cleared"
	case ReasonNoLegalMove:
		return "no_legal_move"
	default:
		return "none"
	}
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
	mode   core.Mode
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger, mode core.Mode) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
		mode:   mode,
	}
}

// PlayerLost reports whether bowls count as lost under the checker's mode.
// Normal requires all 16 bowls empty, Easy only the inner row. bowls is
// only read.
func (wc *WinConditionChecker) PlayerLost(bowls *core.Bowls) bool {
	return bowls.Lost(wc.mode)
}

// CheckGameOver evaluates the position from the point of view of the player
// about to move. That player loses if their bowls are lost under the mode or
// if no bowl can start a move; the opponent is then the winner.
// Returns (isGameOver, winnerID, reason); winnerID is -1 while the game goes on.
func (wc *WinConditionChecker) CheckGameOver(mover, opponent Player) (bool, int, Reason) {
	wc.logger.Debug().Int("mover_id", mover.GetID()).Msg("Checking game over conditions")

	bowls := mover.GetBowls()
	reason := ReasonNone
	switch {
	case wc.PlayerLost(&bowls):
		reason = ReasonBoardCleared
	case !bowls.HasLegalMove():
		reason = ReasonNoLegalMove
	}

	if reason == ReasonNone {
		return false, -1, ReasonNone
	}

	winnerID := opponent.GetID()
	wc.logger.Info().
		Int("winner_player_id", winnerID).
		Int("loser_player_id", mover.GetID()).
		Str("reason", reason.String()).
		Msg("Winner determined")
	return true, winnerID, reason
}

// Player interface to avoid circular imports
type Player interface {
	GetID() int
	GetBowls() core.Bowls
}
