package core

import (
	"fmt"
	"strings"
)

// Mode selects which bowls must be empty for a player to lose.
type Mode int

const (
	// ModeNormal: a player loses when all 16 bowls are empty.
	ModeNormal Mode = iota
	// ModeEasy: a player loses when the inner row (8..15) is empty.
	ModeEasy
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeEasy:
		return "easy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "normal" and "easy".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return ModeNormal, nil
	case "easy":
		return ModeEasy, nil
	}
	return ModeNormal, fmt.Errorf("%q: %w", s, ErrInvalidMode)
}
