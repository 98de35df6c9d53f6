package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game"
	"github.com/mitchelldurbincs/bao/internal/game/rules"
	"github.com/mitchelldurbincs/bao/internal/player"
	"github.com/rs/zerolog"
)

// SeriesResult tallies a run of games played on one engine.
type SeriesResult struct {
	Games      int
	Wins       [2]int
	Reasons    map[rules.Reason]int
	TotalTurns int
	Longest    int
	Duration   time.Duration
}

// AverageTurns returns the mean game length, or 0 before any game finished.
func (sr SeriesResult) AverageTurns() float64 {
	if sr.Games == 0 {
		return 0
	}
	return float64(sr.TotalTurns) / float64(sr.Games)
}

// Series plays a fixed number of games, resetting the engine between them.
type Series struct {
	engine    *game.Engine
	selectors [2]player.MoveSelector
	out       io.Writer
	cfg       Config
	games     int
	logger    zerolog.Logger
}

// NewSeries creates a series of n games.
func NewSeries(engine *game.Engine, selectors [2]player.MoveSelector, n int, out io.Writer, cfg Config, logger zerolog.Logger) (*Series, error) {
	if n < 1 {
		return nil, fmt.Errorf("series needs at least one game, got %d", n)
	}
	return &Series{
		engine:    engine,
		selectors: selectors,
		out:       out,
		cfg:       cfg,
		games:     n,
		logger:    logger.With().Str("component", "Series").Logger(),
	}, nil
}

// Run plays every game in order. onResult, if non-nil, sees each result
// as soon as its game finishes.
func (s *Series) Run(ctx context.Context, onResult func(int, Result)) (SeriesResult, error) {
	sr := SeriesResult{Reasons: make(map[rules.Reason]int)}
	start := time.Now()

	for i := 0; i < s.games; i++ {
		if i > 0 {
			if err := s.engine.Reset(ctx); err != nil {
				return sr, fmt.Errorf("reset before game %d: %w", i+1, err)
			}
		}

		res, err := New(s.engine, s.selectors, s.out, s.cfg, s.logger).Run(ctx)
		if err != nil {
			return sr, fmt.Errorf("game %d: %w", i+1, err)
		}

		sr.Games++
		sr.Wins[res.Winner.ID-1]++
		sr.Reasons[res.Reason]++
		sr.TotalTurns += res.Turns
		if res.Turns > sr.Longest {
			sr.Longest = res.Turns
		}
		if onResult != nil {
			onResult(i+1, res)
		}
	}

	sr.Duration = time.Since(start)
	s.logger.Info().
		Int("games", sr.Games).
		Int("wins_1", sr.Wins[0]).
		Int("wins_2", sr.Wins[1]).
		Float64("avg_turns", sr.AverageTurns()).
		Dur("duration", sr.Duration).
		Msg("Series finished")

	return sr, nil
}
