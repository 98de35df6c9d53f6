package game

import "github.com/mitchelldurbincs/bao/internal/game/core"

// This file contains per-player statistics kept by the engine.

// PlayerStats counts what one seat did over a game.
type PlayerStats struct {
	Moves          int
	Relays         int
	Captures       int
	StonesCaptured uint
	StonesSown     uint
	Rejected       int
}

// Stats returns a copy of the statistics for both seats, indexed like GameState.Players.
func (e *Engine) Stats() [2]PlayerStats {
	return e.stats
}

// recordMove folds a completed sowing into the mover's statistics.
func (e *Engine) recordMove(slot int, res core.SowResult) {
	s := &e.stats[slot]
	s.Moves++
	s.Relays += res.Relays
	s.Captures += len(res.Captures)
	s.StonesCaptured += res.CapturedStones()
	s.StonesSown += res.Sown

	e.logger.Debug().
		Int("player_id", slot+1).
		Int("moves", s.Moves).
		Int("relays", s.Relays).
		Uint("stones_captured", s.StonesCaptured).
		Msg("Player stats updated")
}

// recordRejected counts a pick the rules refused.
func (e *Engine) recordRejected(slot int) {
	e.stats[slot].Rejected++
}

func (e *Engine) resetStats() {
	e.stats = [2]PlayerStats{}
}
