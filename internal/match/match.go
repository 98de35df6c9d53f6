// Package match drives a game from the first move to a winner, asking each
// seat's selector for bowls and retrying rejected picks.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game"
	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/mitchelldurbincs/bao/internal/player"
	"github.com/rs/zerolog"
)

// Messages shown to human players.
const (
	PromptFormat        = "%s enter bowl index:"
	InvalidIndexMessage = "Please enter a valid index (0-15). Bowl must contain at least 2 stones."
	NoMovesFormat       = "%s: no possible moves left :("
)

// ErrTooManyAttempts is returned when a seat exceeds Config.MaxAttempts
// rejected picks in a single turn.
var ErrTooManyAttempts = errors.New("too many rejected picks")

// RenderMode controls when the board is printed.
type RenderMode string

const (
	// RenderHuman prints the board before every human move.
	RenderHuman RenderMode = "human"
	// RenderAlways prints the board before every move and after the last one.
	RenderAlways RenderMode = "always"
	// RenderNever never prints the board.
	RenderNever RenderMode = "never"
)

// ParseRenderMode accepts "human", "always" or "never".
func ParseRenderMode(s string) (RenderMode, error) {
	switch m := RenderMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RenderHuman, RenderAlways, RenderNever:
		return m, nil
	}
	return "", fmt.Errorf("unknown render mode %q", s)
}

// Config tunes the driver loop.
type Config struct {
	// MaxAttempts bounds rejected picks per turn; 0 means unlimited.
	MaxAttempts int
	Render      RenderMode
	Color       bool
}

// Result summarises a finished game.
type Result struct {
	GameID   string
	Winner   game.Player
	Loser    game.Player
	Reason   rules.Reason
	Turns    int
	Stats    [2]game.PlayerStats
	Duration time.Duration
}

// Match plays one game on an engine.
type Match struct {
	engine    *game.Engine
	selectors [2]player.MoveSelector
	out       io.Writer
	cfg       Config
	logger    zerolog.Logger
}

// New creates a match. selectors[0] plays seat 1, selectors[1] seat 2.
func New(engine *game.Engine, selectors [2]player.MoveSelector, out io.Writer, cfg Config, logger zerolog.Logger) *Match {
	if out == nil {
		out = io.Discard
	}
	if cfg.Render == "" {
		cfg.Render = RenderHuman
	}
	return &Match{
		engine:    engine,
		selectors: selectors,
		out:       out,
		cfg:       cfg,
		logger:    logger.With().Str("component", "Match").Str("game_id", engine.GameID()).Logger(),
	}
}

// Run plays until the engine reports game over and returns the outcome.
func (m *Match) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	for !m.engine.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		cur := m.engine.CurrentPlayer()
		if m.shouldRender(cur) {
			fmt.Fprint(m.out, m.engine.Render(game.RenderOptions{Color: m.cfg.Color}))
		}

		if err := m.playTurn(ctx, cur); err != nil {
			return Result{}, err
		}
	}

	return m.finish(time.Since(start))
}

// playTurn asks the current seat for bowls until one is accepted.
func (m *Match) playTurn(ctx context.Context, cur game.Player) error {
	sel := m.selectors[cur.ID-1]
	if sel == nil {
		return core.WrapPlayerError(cur.ID, "select bowl", core.ErrInvalidPlayer)
	}

	for attempts := 0; ; {
		turn := m.engine.Turn()
		if cur.IsHuman() {
			fmt.Fprintf(m.out, PromptFormat+"\n", cur.Name)
		}

		idx, err := sel.SelectBowl(ctx, player.ViewFor(m.engine.GameState()))
		if err != nil {
			return core.NewGameError(turn, cur.ID, "select bowl", err)
		}

		_, err = m.engine.Step(ctx, idx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, core.ErrIllegalMove) {
			return err
		}

		attempts++
		if cur.IsHuman() {
			fmt.Fprintln(m.out, InvalidIndexMessage)
		}
		if m.cfg.MaxAttempts > 0 && attempts >= m.cfg.MaxAttempts {
			m.logger.Warn().Int("player_id", cur.ID).Int("attempts", attempts).Msg("Giving up on player")
			return core.NewGameError(turn, cur.ID, "select bowl", fmt.Errorf("%w: %d in a row", ErrTooManyAttempts, attempts))
		}
	}
}

func (m *Match) shouldRender(cur game.Player) bool {
	switch m.cfg.Render {
	case RenderAlways:
		return true
	case RenderHuman:
		return cur.IsHuman()
	default:
		return false
	}
}

func (m *Match) finish(elapsed time.Duration) (Result, error) {
	winner, ok := m.engine.Winner()
	if !ok {
		return Result{}, core.WrapGameStateError(m.engine.Turn(), m.engine.CurrentPhase().String(),
			errors.New("game ended without a winner"))
	}
	loser, _ := m.engine.Loser()

	if loser.IsHuman() && !loser.Bowls.HasLegalMove() {
		fmt.Fprintf(m.out, NoMovesFormat+"\n", loser.Name)
	}
	if m.cfg.Render == RenderAlways {
		fmt.Fprint(m.out, m.engine.Render(game.RenderOptions{Color: m.cfg.Color}))
	}

	res := Result{
		GameID:   m.engine.GameID(),
		Winner:   winner,
		Loser:    loser,
		Reason:   m.engine.Outcome(),
		Turns:    m.engine.Turn() - 1,
		Stats:    m.engine.Stats(),
		Duration: elapsed,
	}

	m.logger.Info().
		Int("winner_id", winner.ID).
		Str("winner", winner.Name).
		Str("reason", res.Reason.String()).
		Int("turns", res.Turns).
		Int("relays", res.Stats[winner.ID-1].Relays).
		Uint("stones_captured", res.Stats[winner.ID-1].StonesCaptured).
		Dur("duration", elapsed).
		Msg("Match finished")

	return res, nil
}
