// Package player provides the move selectors that pick a bowl for a seat:
// an interactive one reading from a terminal and a seeded random one.
package player

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/bao/internal/game"
	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/rs/zerolog"
)

// BoardView is what a selector sees when asked for a move.
type BoardView struct {
	PlayerID  int
	Own       core.Bowls
	Opponent  core.Bowls
	Direction core.Direction
	Mode      core.Mode
	Turn      int
}

// ViewFor builds the view of the player whose turn it is.
func ViewFor(gs game.GameState) BoardView {
	cur, opp := gs.CurrentSlot(), gs.OpponentSlot()
	return BoardView{
		PlayerID:  gs.Players[cur].ID,
		Own:       gs.Players[cur].Bowls,
		Opponent:  gs.Players[opp].Bowls,
		Direction: gs.Direction,
		Mode:      gs.Mode,
		Turn:      gs.Turn,
	}
}

// MoveSelector picks a bowl index for the player described by view. The index
// is not guaranteed to be legal; callers validate it and ask again.
type MoveSelector interface {
	SelectBowl(ctx context.Context, view BoardView) (int, error)
}

// Options configures NewSelector.
type Options struct {
	// Input is shared by every human seat so buffered input is never lost
	// between them.
	Input  *bufio.Reader
	Output io.Writer

	Seed     uint64
	Strategy Strategy

	Logger zerolog.Logger
}

// NewSelector returns the selector implementing kind.
func NewSelector(kind game.AgentKind, opts Options) (MoveSelector, error) {
	switch kind {
	case game.AgentHuman:
		if opts.Input == nil {
			return nil, fmt.Errorf("human selector requires an input reader")
		}
		out := opts.Output
		if out == nil {
			out = io.Discard
		}
		return NewHumanSelector(opts.Input, out, opts.Logger), nil
	case game.AgentRandom:
		strategy := opts.Strategy
		if strategy == "" {
			strategy = StrategyLegal
		}
		return NewRandomSelector(opts.Seed, strategy, opts.Logger)
	default:
		return nil, fmt.Errorf("no selector for agent kind %s", kind)
	}
}
