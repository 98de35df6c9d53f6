package player

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Strategy selects how RandomSelector draws a bowl.
type Strategy string

const (
	// StrategyLegal draws uniformly among bowls holding at least two stones.
	StrategyLegal Strategy = "legal"
	// StrategyUniform draws uniformly from all 16 bowls and relies on the
	// caller rejecting illegal picks.
	StrategyUniform Strategy = "uniform"
)

// ParseStrategy accepts "legal" or "uniform".
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyLegal:
		return StrategyLegal, nil
	case StrategyUniform:
		return StrategyUniform, nil
	}
	return "", fmt.Errorf("unknown random strategy %q", s)
}

// RandomSelector picks bowls with a seeded generator.
type RandomSelector struct {
	rng      *rand.Rand
	strategy Strategy
	legal    *rules.LegalMoveCalculator
	logger   zerolog.Logger
}

// NewRandomSelector creates a random selector. A zero seed is replaced by
// the current time.
func NewRandomSelector(seed uint64, strategy Strategy, logger zerolog.Logger) (*RandomSelector, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSelector{
		rng:      rand.New(rand.NewSource(seed)),
		strategy: strategy,
		legal:    rules.NewLegalMoveCalculator(),
		logger:   logger.With().Str("component", "RandomSelector").Str("strategy", string(strategy)).Logger(),
	}, nil
}

// Strategy returns the draw strategy in use.
func (r *RandomSelector) Strategy() Strategy { return r.strategy }

// SelectBowl draws a bowl index for view.
func (r *RandomSelector) SelectBowl(ctx context.Context, view BoardView) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	if r.strategy == StrategyUniform {
		return r.rng.Intn(core.BowlCount), nil
	}

	moves := r.legal.LegalMoves(&view.Own)
	if len(moves) == 0 {
		return -1, fmt.Errorf("player %d has no bowl to sow: %w", view.PlayerID, core.ErrIllegalMove)
	}
	idx := moves[r.rng.Intn(len(moves))]

	r.logger.Debug().
		Int("player_id", view.PlayerID).
		Int("bowl", idx).
		Int("choices", len(moves)).
		Msg("Random bowl selected")
	return idx, nil
}
