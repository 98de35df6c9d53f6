package core

// Capture records one steal triggered by a relay landing in the mover's inner row.
type Capture struct {
	// Index is the mover's landing bowl.
	Index int
	// OpponentIndex is the facing opponent bowl, MirrorIndex(Index).
	OpponentIndex int
	// SecondIndex is the opponent's front-row bowl behind OpponentIndex,
	// taken only in ModeNormal; -1 otherwise.
	SecondIndex int
	// Stones is the total taken; it may be zero.
	Stones uint
}

// SowResult summarises a completed sowing move.
type SowResult struct {
	Start    int
	End      int
	Sown     uint
	Relays   int
	Captures []Capture
	// OpponentLost is set when a capture emptied the opponent and ended the move.
	OpponentLost bool
	// Banked is the number of stones still in hand when a capture ended the
	// move; they are left in the landing bowl.
	Banked uint
}

// CapturedStones returns the total taken over all captures.
func (r SowResult) CapturedStones() uint {
	var total uint
	for _, c := range r.Captures {
		total += c.Stones
	}
	return total
}

// Sow picks up every stone in mover[start] and distributes them one per bowl
// in direction dir. When the last stone lands in a bowl that then holds at
// least two stones, that bowl is picked up and sowing continues (a relay).
// A relay landing in the inner row also steals from the opponent according
// to mode. Sowing stops when the hand runs out on a previously empty bowl or
// when a capture leaves the opponent lost.
//
// limit caps the number of single-stone drops; limit <= 0 means no cap.
// Sow mutates both halves in place, including when it returns an error.
func Sow(mover, opponent *Bowls, start int, dir Direction, mode Mode, limit int) (SowResult, error) {
	res := SowResult{Start: start, End: start}
	if !InBounds(start) {
		return res, ErrIndexOutOfRange
	}

	idx := start
	hand := mover[idx]
	mover[idx] = 0

	steps := 0
	for hand > 0 {
		if limit > 0 && steps >= limit {
			res.End = idx
			return res, ErrEndlessSowing
		}
		idx = dir.Next(idx)
		hand--
		mover[idx]++
		steps++
		res.Sown++

		if hand > 0 || mover[idx] < MinSowStones {
			continue
		}

		hand = mover[idx]
		mover[idx] = 0
		res.Relays++

		if !IsInnerRow(idx) {
			continue
		}

		c := steal(opponent, idx, mode)
		hand += c.Stones
		res.Captures = append(res.Captures, c)

		if opponent.Lost(mode) {
			mover[idx] += hand
			res.Banked = hand
			res.OpponentLost = true
			break
		}
	}

	res.End = idx
	return res, nil
}

func steal(opponent *Bowls, idx int, mode Mode) Capture {
	c := Capture{
		Index:         idx,
		OpponentIndex: MirrorIndex(idx),
		SecondIndex:   -1,
	}
	c.Stones = opponent[c.OpponentIndex]
	opponent[c.OpponentIndex] = 0

	if mode == ModeNormal {
		c.SecondIndex = AcrossIndex(c.OpponentIndex)
		c.Stones += opponent[c.SecondIndex]
		opponent[c.SecondIndex] = 0
	}
	return c
}

// Lost reports whether a player holding these bowls has lost under mode.
func (b *Bowls) Lost(mode Mode) bool {
	if mode == ModeEasy {
		return b.InnerRowEmpty()
	}
	return b.Empty()
}

// HasLegalMove reports whether any bowl can start a move.
func (b *Bowls) HasLegalMove() bool {
	for i := range b {
		if b[i] >= MinSowStones {
			return true
		}
	}
	return false
}
