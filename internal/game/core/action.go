package core

// MoveAction is a request by a seat to sow from one of its own bowls.
type MoveAction struct {
	PlayerID int
	Bowl     int
}

// Validate checks the move against the mover's half of the board.
func (m *MoveAction) Validate(own *Bowls) error {
	if !InBounds(m.Bowl) {
		return ErrIndexOutOfRange
	}
	if own[m.Bowl] < MinSowStones {
		return ErrInsufficientStones
	}
	return nil
}
