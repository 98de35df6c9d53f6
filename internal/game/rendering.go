package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/bao/internal/common"
	"github.com/mitchelldurbincs/bao/internal/game/core"
)

// This file contains board rendering for the game engine.

// RenderOptions controls terminal output of the board
type RenderOptions struct {
	// Color enables ANSI colours for the active seat and empty bowls
	Color bool
}

const (
	rowSeparator   = "-----------------------------------------"
	roundSeparator = "===================================================="
)

var (
	frontRowDesc = []int{7, 6, 5, 4, 3, 2, 1, 0}
	frontRowAsc  = []int{0, 1, 2, 3, 4, 5, 6, 7}
	innerRowAsc  = []int{8, 9, 10, 11, 12, 13, 14, 15}
	innerRowDesc = []int{15, 14, 13, 12, 11, 10, 9, 8}
)

// Render returns the board as seen from player 1's side: player 2's half on
// top with its front row furthest away, both inner rows meeting in the
// middle, and player 1's front row at the bottom. Index rows label every
// bowl so a human can pick one.
func (e *Engine) Render(opts RenderOptions) string {
	gs := e.gs
	p1, p2 := &gs.Players[0], &gs.Players[1]
	current := gs.CurrentSlot()

	var sb strings.Builder
	sb.Grow(1024)

	writeHeader(&sb, p2, current == 1, opts)
	writeIndexRow(&sb, frontRowDesc)
	writeSeparator(&sb, rowSeparator, opts)
	writeCountRow(&sb, &p2.Bowls, frontRowDesc, opts)
	sb.WriteString("\n")

	writeSeparator(&sb, rowSeparator, opts)
	writeIndexRow(&sb, innerRowAsc)
	writeSeparator(&sb, rowSeparator, opts)
	writeCountRow(&sb, &p2.Bowls, innerRowAsc, opts)
	fmt.Fprintf(&sb, " Stones: %d\n", p2.Bowls.Sum())

	sb.WriteString(common.Colorize(roundSeparator, common.SeparatorColor, opts.Color))
	fmt.Fprintf(&sb, " Round: %d\n", gs.Turn)

	writeCountRow(&sb, &p1.Bowls, innerRowDesc, opts)
	fmt.Fprintf(&sb, " Stones: %d\n", p1.Bowls.Sum())
	writeSeparator(&sb, rowSeparator, opts)
	writeIndexRow(&sb, innerRowDesc)
	writeSeparator(&sb, rowSeparator, opts)
	writeCountRow(&sb, &p1.Bowls, frontRowAsc, opts)
	sb.WriteString("\n")
	writeSeparator(&sb, rowSeparator, opts)
	writeIndexRow(&sb, frontRowAsc)

	writeHeader(&sb, p1, current == 0, opts)

	return sb.String()
}

func writeHeader(sb *strings.Builder, p *Player, active bool, opts RenderOptions) {
	left, right, name := "  ", "  ", p.Name
	if active {
		left = common.Colorize("->", common.ActiveMarkerColor, opts.Color)
		right = common.Colorize("<-", common.ActiveMarkerColor, opts.Color)
		name = common.Colorize(name, common.PlayerColor(p.ID), opts.Color)
	}
	fmt.Fprintf(sb, "           %s%s%s\n", left, name, right)
}

func writeIndexRow(sb *strings.Builder, indices []int) {
	sb.WriteString("|")
	for _, i := range indices {
		sb.WriteString(" ")
		sb.WriteString(core.IntToStringFixedWidth(i, 2))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func writeCountRow(sb *strings.Builder, bowls *core.Bowls, indices []int, opts RenderOptions) {
	sb.WriteString("|")
	for _, i := range indices {
		cell := core.IntToStringFixedWidth(int(bowls[i]), 2)
		if bowls[i] == 0 {
			cell = common.Colorize(cell, common.EmptyBowlColor, opts.Color)
		}
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(" |")
	}
}

func writeSeparator(sb *strings.Builder, line string, opts RenderOptions) {
	sb.WriteString(common.Colorize(line, common.SeparatorColor, opts.Color))
	sb.WriteString("\n")
}
