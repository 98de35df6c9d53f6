package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/events"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/mitchelldurbincs/bao/internal/game/states"
	"github.com/rs/zerolog"
)

// PlayerConfig describes one seat.
type PlayerConfig struct {
	Name  string
	Agent AgentKind
}

// GameConfig holds everything needed to set up a game
type GameConfig struct {
	Direction core.Direction
	Mode      core.Mode
	Players   [2]PlayerConfig

	// MaxSowSteps caps stone drops in a single move; 0 uses DefaultMaxSowSteps,
	// a negative value disables the cap.
	MaxSowSteps int

	GameID   string
	Logger   zerolog.Logger
	EventBus *events.EventBus
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates an engine with a fresh board and moves it into the Running phase
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before setup")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	gs := ei.initializeGameState()
	engine := ei.createEngine(gs)

	// The player to move first may already be stuck on a degenerate board
	engine.checkGameOver()

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.publishGameStarted()

	if engine.gameOver {
		if err := engine.turnProcessor.endGame(0); err != nil {
			return nil, err
		}
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("direction", gs.Direction.String()).
		Str("mode", gs.Mode.String()).
		Str("player_1", gs.Players[0].Name).
		Str("player_2", gs.Players[1].Name).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.MaxSowSteps == 0 {
		ei.config.MaxSowSteps = DefaultMaxSowSteps
	}
	for i := range ei.config.Players {
		p := &ei.config.Players[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("Player %d", i+1)
		}
		if p.Agent != AgentHuman && p.Agent != AgentRandom {
			return core.WrapPlayerError(i+1, "setup", fmt.Errorf("%w: agent %s", core.ErrInvalidPlayer, p.Agent))
		}
	}
	if ei.config.Direction != core.Clockwise && ei.config.Direction != core.CounterClockwise {
		return core.ErrInvalidDirection
	}
	if ei.config.Mode != core.ModeNormal && ei.config.Mode != core.ModeEasy {
		return core.ErrInvalidMode
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.logger)
	}
	return nil
}

// initializeGameState creates the opening position: two stones in every bowl, turn 1
func (ei *EngineInitializer) initializeGameState() *GameState {
	gs := &GameState{
		Turn:      1,
		Direction: ei.config.Direction,
		Mode:      ei.config.Mode,
	}
	for i, pc := range ei.config.Players {
		gs.Players[i] = Player{
			ID:    i + 1,
			Name:  pc.Name,
			Agent: pc.Agent,
			Bowls: core.NewBowls(),
		}
	}
	return gs
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *GameState) *Engine {
	gameLogger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	gameContext := states.NewGameContext(
		ei.config.GameID,
		[2]string{gs.Players[0].Name, gs.Players[1].Name},
		ei.logger,
	)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	engine := &Engine{
		gs:           gs,
		gameID:       ei.config.GameID,
		logger:       gameLogger,
		baseLogger:   ei.logger,
		maxSowSteps:  ei.config.MaxSowSteps,
		winnerID:     -1,
		legalMoves:   rules.NewLegalMoveCalculator(),
		winCondition: rules.NewWinConditionChecker(gameLogger, gs.Mode),
		eventBus:     ei.config.EventBus,
		stateMachine: stateMachine,
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// initializeStateMachine moves the machine from Initializing to Running
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Running state")
		return err
	}
	return nil
}

func (e *Engine) publishGameStarted() {
	e.eventBus.Publish(events.NewGameStartedEvent(
		e.gameID,
		e.gs.Direction.String(),
		e.gs.Mode.String(),
		[2]string{e.gs.Players[0].Name, e.gs.Players[1].Name},
	))
}

// Reset puts a finished game back to the opening position under the same
// configuration and a new game ID, ready for another match.
func (e *Engine) Reset(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if phase := e.stateMachine.CurrentPhase(); !phase.IsTerminal() {
		return fmt.Errorf("cannot reset game in %s phase", phase)
	}
	if err := e.stateMachine.Reset(); err != nil {
		return fmt.Errorf("state machine reset failed: %w", err)
	}

	e.gameID = uuid.NewString()
	e.logger = e.baseLogger.With().Str("game_id", e.gameID).Logger()
	e.winCondition = rules.NewWinConditionChecker(e.logger, e.gs.Mode)

	gc := e.stateMachine.GetContext()
	gc.GameID = e.gameID
	gc.Logger = e.logger

	e.gs.Turn = 1
	for i := range e.gs.Players {
		e.gs.Players[i].Bowls = core.NewBowls()
	}
	e.resetStats()
	e.checkGameOver()

	if err := e.stateMachine.TransitionTo(states.PhaseRunning, "Game reset"); err != nil {
		return err
	}
	e.publishGameStarted()

	e.logger.Info().Msg("Game reset to opening position")
	return nil
}
