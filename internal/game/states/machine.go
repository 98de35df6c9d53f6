package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game/events"
)

// maxHistory bounds the transitions kept per machine. A game needs about
// four; the rest covers repeated error recoveries between resets.
const maxHistory = 256

// State is one phase's behaviour. Validate guards entry, Enter and Exit
// update the shared GameContext.
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	Validate(ctx *GameContext) error
}

// Transition is one entry of the machine's history.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Turn      int
	Timestamp time.Time
	Reason    string
}

// StateMachine moves a game through its phases, recording each move and
// announcing it on the event bus.
type StateMachine struct {
	mu       sync.RWMutex
	phase    GamePhase
	states   map[GamePhase]State
	context  *GameContext
	history  []Transition
	eventBus *events.EventBus
}

// NewStateMachine returns a machine in PhaseInitializing with the built-in
// states registered. eventBus may be nil.
func NewStateMachine(ctx *GameContext, eventBus *events.EventBus) *StateMachine {
	sm := &StateMachine{
		phase:    PhaseInitializing,
		states:   make(map[GamePhase]State, 6),
		context:  ctx,
		eventBus: eventBus,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewRunningState(),
		NewEndingState(),
		NewEndedState(),
		NewErrorState(),
		NewResetState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation for state.Phase().
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// TransitionTo moves the machine to target. On failure the phase is unchanged.
// The transition is published after the lock is released, so event handlers
// may query the machine.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	t, err := sm.transitionLocked(target, reason)
	sm.mu.Unlock()
	if err != nil {
		return err
	}
	sm.announce(t)
	return nil
}

// transitionLocked performs and records one transition; sm.mu must be held.
func (sm *StateMachine) transitionLocked(target GamePhase, reason string) (Transition, error) {
	from := sm.phase
	if !from.CanTransitionTo(target) {
		return Transition{}, fmt.Errorf("invalid transition from %s to %s", from, target)
	}

	next, ok := sm.states[target]
	if !ok {
		return Transition{}, fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.context); err != nil {
		return Transition{}, fmt.Errorf("target state validation failed: %w", err)
	}

	// A failing Exit is logged but does not block leaving the phase.
	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.context); err != nil {
			sm.context.Logger.Error().Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.context); err != nil {
		sm.phase = from
		return Transition{}, fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	t := Transition{
		From:      from,
		To:        target,
		Turn:      sm.context.Turn,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	sm.history = append(sm.history, t)
	if n := len(sm.history); n > maxHistory {
		sm.history = sm.history[n-maxHistory:]
	}
	return t, nil
}

// announce publishes and logs t; sm.mu must not be held.
func (sm *StateMachine) announce(t Transition) {
	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(
			sm.context.GameID, t.From.String(), t.To.String(), t.Reason))
	}

	sm.context.Logger.Info().
		Str("from_phase", t.From.String()).
		Str("to_phase", t.To.String()).
		Int("turn", t.Turn).
		Str("reason", t.Reason).
		Msg("State transition completed")
}

// GetHistory returns a copy of the recorded transitions, oldest first.
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.history...)
}

func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase.CanTransitionTo(target)
}

// Reset walks a terminal machine back to PhaseInitializing through PhaseReset
// and clears the history. Both steps happen under one lock; their events are
// published afterwards.
func (sm *StateMachine) Reset() error {
	done, err := sm.resetLocked()
	for _, t := range done {
		sm.announce(t)
	}
	return err
}

func (sm *StateMachine) resetLocked() ([]Transition, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var done []Transition
	if sm.phase != PhaseReset {
		t, err := sm.transitionLocked(PhaseReset, "Reset requested")
		if err != nil {
			return nil, err
		}
		done = append(done, t)
	}
	sm.history = sm.history[:0]

	t, err := sm.transitionLocked(PhaseInitializing, "Reset complete")
	if err != nil {
		return done, err
	}
	return append(done, t), nil
}
