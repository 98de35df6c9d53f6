package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/events"
	"github.com/mitchelldurbincs/bao/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single turn
type TurnProcessor struct {
	engine *Engine
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{engine: engine}
}

// ProcessTurn plays one move for the current player: it checks the pick,
// sows, records statistics, publishes events, passes the turn and finally
// closes the game if the next player cannot continue. An illegal pick leaves
// the state untouched and returns an error wrapping core.ErrIllegalMove.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context, bowl int) (core.SowResult, error) {
	e := tp.engine

	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return core.SowResult{}, err
	}

	if err := tp.validateGameState(); err != nil {
		return core.SowResult{}, err
	}

	turn := e.gs.Turn
	slot := e.gs.CurrentSlot()
	move := &core.MoveAction{PlayerID: slot + 1, Bowl: bowl}

	turnLogger := e.logger.With().Int("turn", turn).Int("player_id", move.PlayerID).Logger()

	if err := tp.validateMove(move, turnLogger); err != nil {
		return core.SowResult{}, err
	}

	turnStartTime := time.Now()
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, turn, move.PlayerID))

	res, err := e.ApplyMove(bowl)
	if err != nil {
		tp.fail(turn, err)
		return res, core.WrapGameStateError(turn, "sowing", err)
	}

	tp.publishMove(turn, move.PlayerID, res)
	e.recordMove(slot, res)

	e.AdvanceTurn()
	e.stateMachine.GetContext().Turn = turn

	e.eventBus.Publish(events.NewTurnEndedEvent(e.gameID, turn, move.PlayerID, time.Since(turnStartTime)))
	turnLogger.Debug().Msg("Turn finished")

	if e.gameOver {
		if err := tp.endGame(turn); err != nil {
			return res, err
		}
	}
	return res, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.engine.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive moves
func (tp *TurnProcessor) validateGameState() error {
	e := tp.engine
	currentPhase := e.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveActions() {
		e.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Int("turn", e.gs.Turn).
			Msg("Attempted to play a move in phase that cannot receive actions")
		if currentPhase == states.PhaseEnded {
			return core.WrapGameStateError(e.gs.Turn, currentPhase.String(), core.ErrGameOver)
		}
		return fmt.Errorf("game is in %s phase and cannot receive moves", currentPhase)
	}

	if e.gameOver {
		e.logger.Warn().Int("turn", e.gs.Turn).Msg("Attempted to play a move in a game that is already over")
		return core.WrapGameStateError(e.gs.Turn, currentPhase.String(), core.ErrGameOver)
	}

	return nil
}

// validateMove rejects picks outside the board or from bowls with fewer than two stones
func (tp *TurnProcessor) validateMove(move *core.MoveAction, turnLogger zerolog.Logger) error {
	e := tp.engine
	slot := move.PlayerID - 1

	err := move.Validate(&e.gs.Players[slot].Bowls)
	if err == nil {
		return nil
	}

	e.recordRejected(slot)
	turnLogger.Warn().Err(err).Int("bowl", move.Bowl).Msg("Move rejected")
	e.eventBus.Publish(events.NewMoveRejectedEvent(e.gameID, e.gs.Turn, move.PlayerID, move.Bowl, err.Error()))

	return core.WrapMoveError(move, fmt.Errorf("%w: %w", core.ErrIllegalMove, err))
}

// publishMove publishes the move summary followed by one event per capture
func (tp *TurnProcessor) publishMove(turn, playerID int, res core.SowResult) {
	e := tp.engine
	e.eventBus.Publish(events.NewMoveExecutedEvent(
		e.gameID,
		turn,
		playerID,
		res.Start,
		res.End,
		res.Sown,
		res.Relays,
		res.CapturedStones(),
		res.OpponentLost,
	))

	for _, c := range res.Captures {
		e.eventBus.Publish(events.NewStonesCapturedEvent(
			e.gameID,
			turn,
			playerID,
			c.Index,
			c.OpponentIndex,
			c.SecondIndex,
			c.Stones,
		))
	}
}

// fail moves the game into the Error phase after an aborted move
func (tp *TurnProcessor) fail(turn int, cause error) {
	e := tp.engine
	gc := e.stateMachine.GetContext()
	gc.Turn = turn
	gc.Error = cause

	if err := e.stateMachine.TransitionTo(states.PhaseError, "move aborted"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to transition to Error state")
	}
}

// endGame walks the state machine to Ended and announces the result
func (tp *TurnProcessor) endGame(finalTurn int) error {
	e := tp.engine
	gc := e.stateMachine.GetContext()
	gc.Winner = e.winnerID
	gc.Reason = e.reason.String()

	if err := e.stateMachine.TransitionTo(states.PhaseEnding, e.reason.String()); err != nil {
		return core.WrapGameStateError(finalTurn, "ending", err)
	}
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, "winner determined"); err != nil {
		return core.WrapGameStateError(finalTurn, "ending", err)
	}

	winner, _ := e.Winner()
	e.eventBus.Publish(events.NewGameEndedEvent(
		e.gameID,
		winner.ID,
		winner.Name,
		e.reason.String(),
		gc.GetElapsedTime(),
		finalTurn,
	))
	return nil
}
