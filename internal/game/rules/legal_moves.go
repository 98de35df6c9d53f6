package rules

import "github.com/mitchelldurbincs/bao/internal/game/core"

// LegalMoveCalculator computes legal moves for players
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalActionMask returns one entry per bowl; true means the bowl may be sown.
func (lmc *LegalMoveCalculator) GetLegalActionMask(own *core.Bowls) [core.BowlCount]bool {
	var mask [core.BowlCount]bool
	for i := range own {
		mask[i] = own.CanSowFrom(i)
	}
	return mask
}

// LegalMoves returns the indices of all bowls that may be sown, in ascending order.
func (lmc *LegalMoveCalculator) LegalMoves(own *core.Bowls) []int {
	moves := make([]int, 0, core.BowlCount)
	for i := range own {
		if own.CanSowFrom(i) {
			moves = append(moves, i)
		}
	}
	return moves
}

// IsMoveLegal reports whether idx is in range and holds at least two stones.
func (lmc *LegalMoveCalculator) IsMoveLegal(own *core.Bowls, idx int) bool {
	return own.CanSowFrom(idx)
}

// HasAnyLegalMove reports whether at least one bowl holds two or more stones.
func (lmc *LegalMoveCalculator) HasAnyLegalMove(own *core.Bowls) bool {
	return own.HasLegalMove()
}
