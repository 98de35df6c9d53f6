package core

const (
	BowlCount     = 16
	InnerRowStart = 8
	InitialStones = 2
	// MinSowStones is the fewest stones a bowl must hold to be picked as a move.
	MinSowStones = 2
)

// Bowls is one player's half of the board.
// Indices 0..7 are the front row, 8..15 the inner row facing the opponent.
type Bowls [BowlCount]uint

// NewBowls returns a half board with InitialStones in every bowl.
func NewBowls() Bowls {
	var b Bowls
	for i := range b {
		b[i] = InitialStones
	}
	return b
}

// InBounds reports whether idx addresses a bowl.
func InBounds(idx int) bool {
	return idx >= 0 && idx < BowlCount
}

// IsInnerRow reports whether idx is in the row adjacent to the opponent.
func IsInnerRow(idx int) bool {
	return idx >= InnerRowStart && idx < BowlCount
}

// Sum returns the total number of stones on this half.
func (b *Bowls) Sum() uint {
	var total uint
	for _, n := range b {
		total += n
	}
	return total
}

// InnerRowEmpty reports whether bowls 8..15 are all empty.
func (b *Bowls) InnerRowEmpty() bool {
	for _, n := range b[InnerRowStart:] {
		if n != 0 {
			return false
		}
	}
	return true
}

// Empty reports whether every bowl is empty.
func (b *Bowls) Empty() bool {
	for _, n := range b {
		if n != 0 {
			return false
		}
	}
	return true
}

// CanSowFrom reports whether bowl idx holds enough stones to start a move.
func (b *Bowls) CanSowFrom(idx int) bool {
	return InBounds(idx) && b[idx] >= MinSowStones
}

// MirrorIndex maps an inner-row index of one player to the facing
// inner-row index of the opponent.
func MirrorIndex(idx int) int {
	return (BowlCount - 1 - idx) + InnerRowStart
}

// AcrossIndex maps an opponent inner-row index to the front-row bowl
// behind it on the same side.
func AcrossIndex(idx int) int {
	return BowlCount - 1 - idx
}
