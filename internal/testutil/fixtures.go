package testutil

import "github.com/mitchelldurbincs/bao/internal/game/core"

// BowlsOf builds a board half from explicit counts; missing trailing bowls are empty.
func BowlsOf(counts ...uint) core.Bowls {
	var b core.Bowls
	copy(b[:], counts)
	return b
}

// FilledBowls returns a board half with n stones in every bowl.
func FilledBowls(n uint) core.Bowls {
	var b core.Bowls
	for i := range b {
		b[i] = n
	}
	return b
}

// SparseBowls builds a board half from index -> count pairs.
func SparseBowls(counts map[int]uint) core.Bowls {
	var b core.Bowls
	for idx, n := range counts {
		b[idx] = n
	}
	return b
}
