package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	GameID string
	Logger zerolog.Logger

	// Seats holds the display names of player 1 and player 2
	Seats [2]string

	// StartTime is when PhaseRunning was entered
	StartTime time.Time
	// EndTime is when PhaseEnded was entered
	EndTime time.Time

	// Winner is the seat (1 or 2) of the winner, -1 while undecided
	Winner int
	// Reason describes why the game ended
	Reason string
	// Turn is the last turn number reported to the machine
	Turn int

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, seats [2]string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Seats:  seats,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: -1,
	}
}

// IsReady returns true if both seats are occupied
func (gc *GameContext) IsReady() bool {
	return gc.Seats[0] != "" && gc.Seats[1] != ""
}

// GetElapsedTime returns the time between game start and end (or now)
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
