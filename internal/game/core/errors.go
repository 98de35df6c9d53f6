package core

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange    = errors.New("bowl index out of range")
	ErrInsufficientStones = errors.New("bowl holds fewer than 2 stones")
	ErrIllegalMove        = errors.New("illegal move")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrEndlessSowing      = errors.New("sowing exceeded step limit")
	ErrInvalidDirection   = errors.New("invalid sowing direction")
	ErrInvalidMode        = errors.New("invalid rule mode")
)

// WrapMoveError adds the mover and source bowl to err.
func WrapMoveError(move *MoveAction, err error) error {
	if err == nil {
		return nil
	}
	if move == nil {
		return fmt.Errorf("player move: %w", err)
	}
	return fmt.Errorf("player %d: sow from bowl %d: %w", move.PlayerID, move.Bowl, err)
}

// WrapGameStateError adds the turn number and processing phase to err.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds a player and the operation being performed to err.
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError is a structured error carrying game context.
// PlayerID 0 means the error is not tied to a seat.
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{
		Turn:      turn,
		PlayerID:  playerID,
		Operation: operation,
		Err:       err,
	}
}

func (e *GameError) Error() string {
	if e.PlayerID > 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }
