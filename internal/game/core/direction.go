package core

import (
	"fmt"
	"strings"
)

// Direction is the sowing direction, fixed for a whole game.
type Direction int

const (
	// Clockwise sows towards lower indices, wrapping from 0 to 15.
	Clockwise Direction = iota
	// CounterClockwise sows towards higher indices, wrapping from 15 to 0.
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Next returns the bowl index following idx in direction d.
func (d Direction) Next(idx int) int {
	if d == Clockwise {
		if idx < 1 {
			return BowlCount - 1
		}
		return idx - 1
	}
	if idx+1 > BowlCount-1 {
		return 0
	}
	return idx + 1
}

// ParseDirection accepts "cw", "clockwise", "ccw" and "counter-clockwise".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise":
		return Clockwise, nil
	case "ccw", "counter-clockwise", "counterclockwise":
		return CounterClockwise, nil
	}
	return Clockwise, fmt.Errorf("%q: %w", s, ErrInvalidDirection)
}
