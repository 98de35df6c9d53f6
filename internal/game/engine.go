package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/events"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/mitchelldurbincs/bao/internal/game/states"
	"github.com/rs/zerolog"
)

// DefaultMaxSowSteps bounds a single move when the config does not.
const DefaultMaxSowSteps = 100000

type Engine struct {
	gs          *GameState
	gameID      string
	logger      zerolog.Logger
	baseLogger  zerolog.Logger
	maxSowSteps int

	gameOver bool
	winnerID int
	reason   rules.Reason

	legalMoves    *rules.LegalMoveCalculator
	winCondition  *rules.WinConditionChecker
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	turnProcessor *TurnProcessor

	stats [2]PlayerStats
}

// NewEngine creates and initializes a game engine ready for the first move.
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step validates and plays the current player's move from bowl, then hands
// the turn to the opponent.
func (e *Engine) Step(ctx context.Context, bowl int) (core.SowResult, error) {
	return e.turnProcessor.ProcessTurn(ctx, bowl)
}

// ApplyMove sows from bowl for the current player. It does not check the
// two-stone selection rule and does not advance the turn. State is only
// changed when sowing completes without error.
func (e *Engine) ApplyMove(bowl int) (core.SowResult, error) {
	slot := e.gs.CurrentSlot()
	move := &core.MoveAction{PlayerID: slot + 1, Bowl: bowl}

	if e.gameOver {
		return core.SowResult{}, core.WrapMoveError(move, core.ErrGameOver)
	}
	if !core.InBounds(bowl) {
		return core.SowResult{}, core.WrapMoveError(move, core.ErrIndexOutOfRange)
	}

	mover := e.gs.Players[slot].Bowls
	opponent := e.gs.Players[1-slot].Bowls
	before := mover.Sum() + opponent.Sum()

	res, err := core.Sow(&mover, &opponent, bowl, e.gs.Direction, e.gs.Mode, e.maxSowSteps)
	if err != nil {
		e.logger.Error().
			Err(err).
			Int("player_id", move.PlayerID).
			Int("bowl", bowl).
			Uint("sown", res.Sown).
			Msg("Sowing aborted")
		return res, core.WrapMoveError(move, err)
	}

	if after := mover.Sum() + opponent.Sum(); after != before {
		return res, core.WrapMoveError(move, fmt.Errorf("stone count changed from %d to %d", before, after))
	}

	e.gs.Players[slot].Bowls = mover
	e.gs.Players[1-slot].Bowls = opponent

	e.logger.Debug().
		Int("player_id", move.PlayerID).
		Int("start", res.Start).
		Int("end", res.End).
		Uint("sown", res.Sown).
		Int("relays", res.Relays).
		Int("captures", len(res.Captures)).
		Bool("opponent_lost", res.OpponentLost).
		Msg("Move applied")

	return res, nil
}

// AdvanceTurn passes play to the other seat and re-evaluates the end of game.
func (e *Engine) AdvanceTurn() {
	e.gs.Turn++
	e.checkGameOver()
}

// checkGameOver evaluates the position for the player about to move.
func (e *Engine) checkGameOver() {
	over, winnerID, reason := e.winCondition.CheckGameOver(e.CurrentPlayer(), e.Opponent())
	e.gameOver = over
	e.winnerID = winnerID
	e.reason = reason
}

// IsMoveLegal reports whether the current player may sow from bowl.
func (e *Engine) IsMoveLegal(bowl int) bool {
	return e.legalMoves.IsMoveLegal(&e.gs.Players[e.gs.CurrentSlot()].Bowls, bowl)
}

// HasAnyLegalMove reports whether the current player can move at all.
func (e *Engine) HasAnyLegalMove() bool {
	return e.legalMoves.HasAnyLegalMove(&e.gs.Players[e.gs.CurrentSlot()].Bowls)
}

// LegalMoves lists the bowls the current player may sow from.
func (e *Engine) LegalMoves() []int {
	return e.legalMoves.LegalMoves(&e.gs.Players[e.gs.CurrentSlot()].Bowls)
}

// Winner returns the winning player once the game is over.
func (e *Engine) Winner() (Player, bool) {
	if !e.gameOver || e.winnerID < 1 {
		return Player{}, false
	}
	return e.gs.Players[e.winnerID-1], true
}

// Loser returns the player who could not continue.
func (e *Engine) Loser() (Player, bool) {
	if !e.gameOver || e.winnerID < 1 {
		return Player{}, false
	}
	return e.gs.Players[2-e.winnerID], true
}

// Public accessors
func (e *Engine) GameState() GameState { return *e.gs }
func (e *Engine) IsGameOver() bool { return e.gameOver }
func (e *Engine) Outcome() rules.Reason { return e.reason }
func (e *Engine) Turn() int { return e.gs.Turn }
func (e *Engine) CurrentPlayer() Player { return e.gs.Players[e.gs.CurrentSlot()] }
func (e *Engine) Opponent() Player { return e.gs.Players[e.gs.OpponentSlot()] }
func (e *Engine) GameID() string { return e.gameID }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
func (e *Engine) CurrentPhase() states.GamePhase { return e.stateMachine.CurrentPhase() }
func (e *Engine) StateHistory() []states.Transition { return e.stateMachine.GetHistory() }
func (e *Engine) Logger() zerolog.Logger { return e.logger }
