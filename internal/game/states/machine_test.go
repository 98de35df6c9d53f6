package states

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/bao/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPhases = []GamePhase{
	PhaseInitializing, PhaseRunning, PhaseEnding, PhaseEnded, PhaseError, PhaseReset,
}

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhaseEnding, "Ending"},
		{PhaseEnded, "Ended"},
		{PhaseError, "Error"},
		{PhaseReset, "Reset"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestParsePhase(t *testing.T) {
	for _, phase := range allPhases {
		assert.Equal(t, phase, ParsePhase(phase.String()))
	}
	assert.Equal(t, PhaseInitializing, ParsePhase("Lobby"))
}

func TestGamePhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.True(t, PhaseError.IsTerminal())
		assert.False(t, PhaseRunning.IsTerminal())
		assert.False(t, PhaseEnding.IsTerminal())
	})

	t.Run("CanReceiveActions", func(t *testing.T) {
		assert.True(t, PhaseRunning.CanReceiveActions())
		assert.False(t, PhaseInitializing.CanReceiveActions())
		assert.False(t, PhaseEnding.CanReceiveActions())
		assert.False(t, PhaseEnded.CanReceiveActions())
	})
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseInitializing, []GamePhase{PhaseRunning, PhaseError}},
		{PhaseRunning, []GamePhase{PhaseEnding, PhaseError}},
		{PhaseEnding, []GamePhase{PhaseEnded, PhaseError}},
		{PhaseEnded, []GamePhase{PhaseReset}},
		{PhaseError, []GamePhase{PhaseReset}},
		{PhaseReset, []GamePhase{PhaseInitializing}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())

			for _, target := range allPhases {
				assert.Equal(t, contains(tt.allowed, target), tt.from.CanTransitionTo(target),
					"%s -> %s", tt.from, target)
			}
		})
	}

	assert.Empty(t, GamePhase(42).AllowedTransitions())
}

func contains(phases []GamePhase, target GamePhase) bool {
	for _, p := range phases {
		if p == target {
			return true
		}
	}
	return false
}

func TestGameContext(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("NewGameContext", func(t *testing.T) {
		ctx := NewGameContext("test-game", [2]string{"North", "South"}, logger)
		assert.Equal(t, "test-game", ctx.GameID)
		assert.Equal(t, -1, ctx.Winner)
		assert.Equal(t, "North", ctx.Seats[0])
		assert.True(t, ctx.IsReady())
	})

	t.Run("IsReady", func(t *testing.T) {
		ctx := NewGameContext("test-game", [2]string{"North", ""}, logger)
		assert.False(t, ctx.IsReady())

		ctx.Seats[1] = "South"
		assert.True(t, ctx.IsReady())
	})

	t.Run("GetElapsedTime", func(t *testing.T) {
		ctx := NewGameContext("test-game", [2]string{"a", "b"}, logger)

		assert.Equal(t, time.Duration(0), ctx.GetElapsedTime())

		ctx.StartTime = time.Now().Add(-10 * time.Second)
		elapsed := ctx.GetElapsedTime()
		assert.Greater(t, elapsed, 9*time.Second)
		assert.Less(t, elapsed, 11*time.Second)

		ctx.EndTime = ctx.StartTime.Add(5 * time.Second)
		assert.Equal(t, 5*time.Second, ctx.GetElapsedTime())
	})
}

func TestStateMachine(t *testing.T) {
	logger := zerolog.Nop()

	setup := func() (*StateMachine, *GameContext) {
		ctx := NewGameContext("test-game", [2]string{"North", "South"}, logger)
		eventBus := events.NewEventBus()
		sm := NewStateMachine(ctx, eventBus)
		return sm, ctx
	}

	t.Run("NewStateMachine", func(t *testing.T) {
		sm, _ := setup()
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Len(t, sm.states, len(allPhases))
	})

	t.Run("Valid Transitions", func(t *testing.T) {
		sm, ctx := setup()

		require.NoError(t, sm.TransitionTo(PhaseRunning, "setup complete"))
		assert.Equal(t, PhaseRunning, sm.CurrentPhase())
		assert.False(t, ctx.StartTime.IsZero())

		ctx.Winner = 1
		ctx.Reason = "board_cleared"
		require.NoError(t, sm.TransitionTo(PhaseEnding, "player 1 won"))
		assert.Equal(t, PhaseEnding, sm.CurrentPhase())

		require.NoError(t, sm.TransitionTo(PhaseEnded, "game over"))
		assert.Equal(t, PhaseEnded, sm.CurrentPhase())
		assert.False(t, ctx.EndTime.IsZero())
	})

	t.Run("Invalid Transitions", func(t *testing.T) {
		sm, _ := setup()

		err := sm.TransitionTo(PhaseEnded, "skip steps")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transition")
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	})

	t.Run("State Validation", func(t *testing.T) {
		sm, ctx := setup()

		ctx.Seats[1] = ""
		err := sm.TransitionTo(PhaseRunning, "missing seat")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "two seated players")
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

		ctx.Seats[1] = "South"
		require.NoError(t, sm.TransitionTo(PhaseRunning, "start game"))

		err = sm.TransitionTo(PhaseEnding, "no winner")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "winner or an error")

		err = sm.TransitionTo(PhaseError, "no error")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires an error")
	})

	t.Run("History Tracking", func(t *testing.T) {
		sm, ctx := setup()

		_ = sm.TransitionTo(PhaseRunning, "reason1")
		ctx.Winner = 2
		ctx.Turn = 7
		_ = sm.TransitionTo(PhaseEnding, "reason2")
		_ = sm.TransitionTo(PhaseEnded, "reason3")

		history := sm.GetHistory()
		require.Len(t, history, 3)

		assert.Equal(t, PhaseInitializing, history[0].From)
		assert.Equal(t, PhaseRunning, history[0].To)
		assert.Equal(t, "reason1", history[0].Reason)

		assert.Equal(t, PhaseRunning, history[1].From)
		assert.Equal(t, PhaseEnding, history[1].To)
		assert.Equal(t, 7, history[1].Turn)

		assert.Equal(t, PhaseEnding, history[2].From)
		assert.Equal(t, PhaseEnded, history[2].To)
		assert.Equal(t, "reason3", history[2].Reason)
	})

	t.Run("Error State Recovery", func(t *testing.T) {
		sm, ctx := setup()

		ctx.Error = errors.New("test error")
		require.NoError(t, sm.TransitionTo(PhaseError, "error occurred"))
		assert.Equal(t, PhaseError, sm.CurrentPhase())

		require.NoError(t, sm.TransitionTo(PhaseReset, "recover from error"))
		assert.Equal(t, PhaseReset, sm.CurrentPhase())
		assert.Nil(t, ctx.Error)

		require.NoError(t, sm.TransitionTo(PhaseInitializing, "restart"))
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	})

	t.Run("Reset From Ended", func(t *testing.T) {
		sm, ctx := setup()

		require.NoError(t, sm.TransitionTo(PhaseRunning, "start"))
		ctx.Winner = 1
		ctx.Turn = 12
		require.NoError(t, sm.TransitionTo(PhaseEnding, "won"))
		require.NoError(t, sm.TransitionTo(PhaseEnded, "done"))

		done := make(chan error, 1)
		go func() { done <- sm.Reset() }()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Reset did not return")
		}

		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Equal(t, -1, ctx.Winner)
		assert.Equal(t, 0, ctx.Turn)
		history := sm.GetHistory()
		require.Len(t, history, 1)
		assert.Equal(t, PhaseReset, history[0].From)
	})

	t.Run("Reset Rejected While Running", func(t *testing.T) {
		sm, _ := setup()
		require.NoError(t, sm.TransitionTo(PhaseRunning, "start"))

		assert.Error(t, sm.Reset())
		assert.Equal(t, PhaseRunning, sm.CurrentPhase())
	})

	t.Run("Publishes Transition Events", func(t *testing.T) {
		ctx := NewGameContext("evt-game", [2]string{"a", "b"}, logger)
		bus := events.NewEventBus()
		var got []*events.StateTransitionEvent
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			got = append(got, e.(*events.StateTransitionEvent))
		})
		sm := NewStateMachine(ctx, bus)

		require.NoError(t, sm.TransitionTo(PhaseRunning, "go"))
		require.Len(t, got, 1)
		assert.Equal(t, "evt-game", got[0].GameID())
		assert.Equal(t, "Initializing", got[0].FromPhase)
		assert.Equal(t, "Running", got[0].ToPhase)
		assert.Equal(t, "go", got[0].Reason)
	})

	t.Run("Handlers May Query The Machine", func(t *testing.T) {
		ctx := NewGameContext("reentrant", [2]string{"a", "b"}, logger)
		bus := events.NewEventBus()
		sm := NewStateMachine(ctx, bus)

		var seen []GamePhase
		bus.SubscribeFunc(events.TypeStateTransition, func(events.Event) {
			seen = append(seen, sm.CurrentPhase())
			_ = sm.GetHistory()
			_ = sm.GetContext()
		})

		done := make(chan error, 1)
		go func() {
			if err := sm.TransitionTo(PhaseRunning, "start"); err != nil {
				done <- err
				return
			}
			ctx.Winner = 1
			if err := sm.TransitionTo(PhaseEnding, "won"); err != nil {
				done <- err
				return
			}
			if err := sm.TransitionTo(PhaseEnded, "done"); err != nil {
				done <- err
				return
			}
			done <- sm.Reset()
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("transition handler blocked the state machine")
		}

		assert.Equal(t, []GamePhase{
			PhaseRunning, PhaseEnding, PhaseEnded, PhaseInitializing, PhaseInitializing,
		}, seen)
	})

	t.Run("CanTransitionTo", func(t *testing.T) {
		sm, _ := setup()

		assert.True(t, sm.CanTransitionTo(PhaseRunning))
		assert.True(t, sm.CanTransitionTo(PhaseError))
		assert.False(t, sm.CanTransitionTo(PhaseEnding))
		assert.False(t, sm.CanTransitionTo(PhaseEnded))
	})
}

// MockState for testing custom state implementations
type MockState struct {
	phase       GamePhase
	enterCalled bool
	exitCalled  bool
	enterError  error
	exitError   error
}

func (m *MockState) Phase() GamePhase            { return m.phase }
func (m *MockState) Enter(*GameContext) error    { m.enterCalled = true; return m.enterError }
func (m *MockState) Exit(*GameContext) error     { m.exitCalled = true; return m.exitError }
func (m *MockState) Validate(*GameContext) error { return nil }

func TestStateMachine_CustomStates(t *testing.T) {
	ctx := NewGameContext("test-game", [2]string{"a", "b"}, zerolog.Nop())
	sm := NewStateMachine(ctx, nil)

	t.Run("RegisterCustomState", func(t *testing.T) {
		mockState := &MockState{phase: GamePhase(100)}
		sm.RegisterState(mockState)
		assert.Contains(t, sm.states, GamePhase(100))
	})

	t.Run("StateCallbacks", func(t *testing.T) {
		runningMock := &MockState{phase: PhaseRunning}
		endingMock := &MockState{phase: PhaseEnding}
		sm.RegisterState(runningMock)
		sm.RegisterState(endingMock)

		require.NoError(t, sm.TransitionTo(PhaseRunning, "test"))
		assert.True(t, runningMock.enterCalled)
		assert.False(t, runningMock.exitCalled)

		require.NoError(t, sm.TransitionTo(PhaseEnding, "test"))
		assert.True(t, runningMock.exitCalled)
		assert.True(t, endingMock.enterCalled)
	})

	t.Run("EnterFailureRollsBack", func(t *testing.T) {
		failing := &MockState{phase: PhaseEnded, enterError: errors.New("boom")}
		sm.RegisterState(failing)
		before := len(sm.GetHistory())

		err := sm.TransitionTo(PhaseEnded, "test")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, PhaseEnding, sm.CurrentPhase())
		assert.Len(t, sm.GetHistory(), before, "failed transitions are not recorded")
	})
}
