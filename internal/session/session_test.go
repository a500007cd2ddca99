package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time {
	return f.current
}

func (f *fakeClock) advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestRegistry() (*Registry, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	return NewRegistry(clock.now), clock
}

// advanceTo drives a fresh session forward to the wanted phase, satisfying
// each intermediate predicate the cheap way (empty stimulus sets are
// vacuously complete).
func advanceTo(t *testing.T, s *Session, want Phase) {
	t.Helper()
	for s.Snapshot().Phase != want {
		_, err := s.Advance()
		require.NoError(t, err)
	}
}

func TestNewSessionStartsAtDemographics(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)

	state := s.Snapshot()
	assert.Equal(t, PhaseDemographics, state.Phase)
	assert.True(t, state.Completed)
	assert.False(t, state.Finished)
}

func TestRegistryReturnsSameSession(t *testing.T) {
	registry, _ := newTestRegistry()
	assert.Same(t, registry.Get(42), registry.Get(42))
	assert.NotSame(t, registry.Get(42), registry.Get(43))
}

func TestSteppedPhaseRequiresAllSteps(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartAPractice)

	s.SetStimuli([]int{1, 2, 3})
	_, err := s.Advance()
	assert.Error(t, err)

	s.RecordStep()
	s.RecordStep()
	_, err = s.Advance()
	assert.Error(t, err)

	s.RecordStep()
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePartAFormal, phase)
}

func TestForagingPhaseCompletesWhenAllVisited(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)

	s.SetStimuli([]int{10, 20})
	_, err := s.Advance()
	assert.Error(t, err)

	require.NoError(t, s.MarkVisited(10))
	_, err = s.Advance()
	assert.Error(t, err)

	require.NoError(t, s.MarkVisited(20))
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePartBFormal, phase)
}

func TestMarkVisitedRejectsUnknownStimulus(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)
	s.SetStimuli([]int{10})

	assert.Error(t, s.MarkVisited(99))
}

// An empty active set is vacuously complete: the phase ends silently with
// no interaction, which the study design accepts.
func TestForagingPhaseVacuousCompletion(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)

	s.SetStimuli([]int{})
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePartBFormal, phase)
}

// The phase timer pre-empts the visited check
func TestTimerExpiryPreemptsVisitedCheck(t *testing.T) {
	registry, clock := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)

	s.SetStimuli([]int{10, 20})
	_, err := s.Advance()
	require.Error(t, err)

	clock.advance(practiceTimeLimit + time.Second)
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePartBFormal, phase)
}

func TestFormalTimerIsLonger(t *testing.T) {
	registry, clock := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBFormal)

	s.SetStimuli([]int{1})
	clock.advance(practiceTimeLimit + time.Second)
	_, err := s.Advance()
	assert.Error(t, err, "formal phase must not expire on the practice timer")

	clock.advance(formalTimeLimit)
	_, err = s.Advance()
	assert.NoError(t, err)
}

// Phase-local state does not leak across transitions
func TestVisitedSetClearedOnTransition(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)

	s.SetStimuli([]int{10})
	require.NoError(t, s.MarkVisited(10))
	_, err := s.Advance()
	require.NoError(t, err)

	state := s.Snapshot()
	assert.Equal(t, PhasePartBFormal, state.Phase)
	assert.Empty(t, state.Visited)
	assert.Empty(t, state.Available)
}

// The deadline is armed on phase entry, not lazily
func TestTimerArmedOnPhaseEntry(t *testing.T) {
	registry, clock := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartBPractice)

	state := s.Snapshot()
	require.NotNil(t, state.Deadline)
	assert.Equal(t, clock.now().Add(practiceTimeLimit), *state.Deadline)
}

// Every foraging phase carries a timer, the passage phases included
func TestPassagePhasesCarryTimers(t *testing.T) {
	registry, clock := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhasePartCPractice)

	state := s.Snapshot()
	require.NotNil(t, state.Deadline)
	assert.Equal(t, clock.now().Add(practiceTimeLimit), *state.Deadline)

	s.SetStimuli([]int{4, 5})
	_, err := s.Advance()
	require.Error(t, err)

	clock.advance(practiceTimeLimit + time.Second)
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePartCFormal, phase)

	state = s.Snapshot()
	require.NotNil(t, state.Deadline)
	assert.Equal(t, clock.now().Add(formalTimeLimit), *state.Deadline)
}

func TestFinishedIsTerminal(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)
	advanceTo(t, s, PhaseFinished)

	state := s.Snapshot()
	assert.True(t, state.Finished)

	// advancing a finished session is a no-op
	phase, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, phase)
}

func TestFullSequenceIsMonotonic(t *testing.T) {
	registry, _ := newTestRegistry()
	s := registry.Get(42)

	var seen []Phase
	seen = append(seen, s.Snapshot().Phase)
	for !s.Snapshot().Finished {
		phase, err := s.Advance()
		require.NoError(t, err)
		seen = append(seen, phase)
	}

	assert.Equal(t, phaseOrder, seen)
}
