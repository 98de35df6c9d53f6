package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - engine and seats being created
	PhaseInitializing GamePhase = iota

	// PhaseRunning - moves are being played
	PhaseRunning

	// PhaseEnding - winner determined, results being published
	PhaseEnding

	// PhaseEnded - final state
	PhaseEnded

	// PhaseError - a move or setup failed
	PhaseError

	// PhaseReset - back to a fresh board without tearing the engine down
	PhaseReset
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhaseRunning:      "Running",
	PhaseEnding:       "Ending",
	PhaseEnded:        "Ended",
	PhaseError:        "Error",
	PhaseReset:        "Reset",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions returns true if moves may be applied in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhaseEnding, PhaseError}
	case PhaseEnding:
		return []GamePhase{PhaseEnded, PhaseError}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseError:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase. Unknown names map to PhaseInitializing.
func ParsePhase(s string) GamePhase {
	for phase, name := range phaseNames {
		if name == s {
			return phase
		}
	}
	return PhaseInitializing
}
