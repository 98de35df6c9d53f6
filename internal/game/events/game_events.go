package events

import (
	"time"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeMoveExecuted    = "move.executed"
	TypeMoveRejected    = "move.rejected"
	TypeStonesCaptured  = "stones.captured"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Direction string
	Mode      string
	Players   [2]string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID, direction, mode string, players [2]string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Direction: direction,
		Mode:      mode,
		Players:   players,
	}
}

// GameEndedEvent is published when a game ends
type GameEndedEvent struct {
	BaseEvent
	Winner     int
	WinnerName string
	Reason     string
	Duration   time.Duration
	FinalTurn  int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, winnerName, reason string, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Winner:     winner,
		WinnerName: winnerName,
		Reason:     reason,
		Duration:   duration,
		FinalTurn:  finalTurn,
	}
}

// TurnStartedEvent is published before a move is applied
type TurnStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	TurnNumber int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, playerID int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		Metadata:   EventMetadata{PlayerID: playerID, Turn: turn},
		TurnNumber: turn,
	}
}

// TurnEndedEvent is published after the move is applied and the turn advanced
type TurnEndedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	TurnNumber    int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, playerID int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		Metadata:      EventMetadata{PlayerID: playerID, Turn: turn},
		TurnNumber:    turn,
		ProcessedTime: processedTime,
	}
}

// MoveExecutedEvent summarises a completed sowing move
type MoveExecutedEvent struct {
	BaseEvent
	Metadata       EventMetadata
	PlayerID       int
	Start          int
	End            int
	Sown           uint
	Relays         int
	CapturedStones uint
	OpponentLost   bool
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, turn, playerID, start, end int, sown uint, relays int, captured uint, opponentLost bool) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent:      newBase(TypeMoveExecuted, gameID),
		Metadata:       EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:       playerID,
		Start:          start,
		End:            end,
		Sown:           sown,
		Relays:         relays,
		CapturedStones: captured,
		OpponentLost:   opponentLost,
	}
}

// MoveRejectedEvent is published when a selected bowl cannot be sown
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	PlayerID int
	Bowl     int
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, turn, playerID, bowl int, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:  playerID,
		Bowl:      bowl,
		Reason:    reason,
	}
}

// StonesCapturedEvent is published once per capture inside a move
type StonesCapturedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	PlayerID      int
	Index         int
	OpponentIndex int
	SecondIndex   int
	Stones        uint
}

// NewStonesCapturedEvent creates a new StonesCapturedEvent
func NewStonesCapturedEvent(gameID string, turn, playerID, index, opponentIndex, secondIndex int, stones uint) *StonesCapturedEvent {
	return &StonesCapturedEvent{
		BaseEvent:     newBase(TypeStonesCaptured, gameID),
		Metadata:      EventMetadata{PlayerID: playerID, Turn: turn},
		PlayerID:      playerID,
		Index:         index,
		OpponentIndex: opponentIndex,
		SecondIndex:   secondIndex,
		Stones:        stones,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
