package states

import (
	"fmt"
	"time"
)

// InitializingState represents engine construction
type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }

func (s *InitializingState) Phase() GamePhase { return PhaseInitializing }

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error { return nil }

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State { return &RunningState{} }

func (s *RunningState) Phase() GamePhase { return PhaseRunning }

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Str("player_1", ctx.Seats[0]).
		Str("player_2", ctx.Seats[1]).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("turn", ctx.Turn).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("cannot run game without two seated players")
	}
	return nil
}

// EndingState represents winner determination
type EndingState struct{}

func NewEndingState() State { return &EndingState{} }

func (s *EndingState) Phase() GamePhase { return PhaseEnding }

func (s *EndingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Str("reason", ctx.Reason).
		Msg("Game ending, determining final results")
	return nil
}

func (s *EndingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game ending phase complete")
	return nil
}

func (s *EndingState) Validate(ctx *GameContext) error {
	if ctx.Winner < 0 && ctx.Error == nil {
		return fmt.Errorf("ending state requires either a winner or an error")
	}
	return nil
}

// EndedState represents a completed game
type EndedState struct{}

func NewEndedState() State { return &EndedState{} }

func (s *EndedState) Phase() GamePhase { return PhaseEnded }

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Int("final_turn", ctx.Turn).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error { return nil }

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State { return &ErrorState{} }

func (s *ErrorState) Phase() GamePhase { return PhaseError }

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Game entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Recovering from error state")
	ctx.Error = nil
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}

// ResetState clears per-game results so the engine can start over
type ResetState struct{}

func NewResetState() State { return &ResetState{} }

func (s *ResetState) Phase() GamePhase { return PhaseReset }

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Resetting game")

	ctx.StartTime = time.Time{}
	ctx.EndTime = time.Time{}
	ctx.Winner = -1
	ctx.Reason = ""
	ctx.Turn = 0
	ctx.Error = nil
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error { return nil }
