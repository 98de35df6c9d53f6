package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/bao/internal/game/core"
)

// AgentKind selects who picks a player's moves.
type AgentKind int

const (
	AgentHuman AgentKind = iota
	AgentRandom
)

func (a AgentKind) String() string {
	switch a {
	case AgentHuman:
		return "human"
	case AgentRandom:
		return "random"
	default:
		return fmt.Sprintf("AgentKind(%d)", int(a))
	}
}

// ParseAgentKind accepts "human" or "random", case-insensitively.
func ParseAgentKind(s string) (AgentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return AgentHuman, nil
	case "random":
		return AgentRandom, nil
	default:
		return AgentHuman, fmt.Errorf("unknown agent kind %q", s)
	}
}

// Player is one seat at the board. ID is 1 or 2.
type Player struct {
	ID    int
	Name  string
	Agent AgentKind
	Bowls core.Bowls
}

func (p Player) GetID() int { return p.ID }
func (p Player) GetBowls() core.Bowls { return p.Bowls }
func (p Player) StoneCount() uint { return p.Bowls.Sum() }
func (p Player) IsHuman() bool { return p.Agent == AgentHuman }
func (p Player) String() string { return fmt.Sprintf("%s (player %d)", p.Name, p.ID) }

// GameState is a value snapshot of a game. Players[0] is seat 1, Players[1] seat 2.
type GameState struct {
	Turn      int
	Direction core.Direction
	Mode      core.Mode
	Players   [2]Player
}

// CurrentSlot returns the Players index whose turn it is: odd turns belong to seat 1.
func (gs *GameState) CurrentSlot() int {
	if gs.Turn%2 == 1 {
		return 0
	}
	return 1
}

// OpponentSlot returns the Players index of the player waiting.
func (gs *GameState) OpponentSlot() int {
	return 1 - gs.CurrentSlot()
}

// TotalStones returns the number of stones on the whole board.
func (gs *GameState) TotalStones() uint {
	return gs.Players[0].Bowls.Sum() + gs.Players[1].Bowls.Sum()
}
