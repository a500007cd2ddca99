// Package session holds the server-side view of each participant's
// progress through the study: a linear phase sequence with per-phase
// completion predicates (all stimuli visited, fixed step count, or timer
// expiry). Phases never move backwards.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Phase is one stage of the study sequence
type Phase string

const (
	PhaseDemographics     Phase = "demographics"
	PhasePartAPractice    Phase = "part-a-practice"
	PhasePartAFormal      Phase = "part-a-formal"
	PhasePartBPractice    Phase = "part-b-practice"
	PhasePartBFormal      Phase = "part-b-formal"
	PhasePartCPractice    Phase = "part-c-practice"
	PhasePartCFormal      Phase = "part-c-formal"
	PhaseVocabulary       Phase = "vocabulary"
	PhaseLetterComparison Phase = "letter-comparison"
	PhaseAssessment       Phase = "assessment"
	PhaseFinished         Phase = "finished"
)

var phaseOrder = []Phase{
	PhaseDemographics,
	PhasePartAPractice,
	PhasePartAFormal,
	PhasePartBPractice,
	PhasePartBFormal,
	PhasePartCPractice,
	PhasePartCFormal,
	PhaseVocabulary,
	PhaseLetterComparison,
	PhaseAssessment,
	PhaseFinished,
}

const (
	practiceTimeLimit = 240 * time.Second
	formalTimeLimit   = 900 * time.Second
)

type phaseRule struct {
	timeLimit time.Duration // 0 = no timer
	foraging  bool          // complete when every available stimulus is visited
	stepped   bool          // complete after the registered step count
}

// Phases without an entry complete unconditionally: their progress lives
// in the submit endpoints, the machine only sequences them.
var phaseRules = map[Phase]phaseRule{
	PhasePartAPractice: {stepped: true},
	PhasePartAFormal:   {stepped: true},
	PhasePartBPractice: {foraging: true, timeLimit: practiceTimeLimit},
	PhasePartBFormal:   {foraging: true, timeLimit: formalTimeLimit},
	PhasePartCPractice: {foraging: true, timeLimit: practiceTimeLimit},
	PhasePartCFormal:   {foraging: true, timeLimit: formalTimeLimit},
}

// State is a JSON-able snapshot of one session
type State struct {
	Deadline      *time.Time `json:"deadline,omitempty"`
	Phase         Phase      `json:"phase"`
	Available     []int      `json:"available"`
	Visited       []int      `json:"visited"`
	ParticipantID int64      `json:"participantId"`
	StepsDone     int        `json:"stepsDone"`
	StepsRequired int        `json:"stepsRequired"`
	Completed     bool       `json:"completed"`
	Finished      bool       `json:"finished"`
}

// Session tracks one participant. The visited set is scoped to the current
// phase and cleared on every transition.
type Session struct {
	now           func() time.Time
	available     map[int]bool
	visited       map[int]bool
	deadline      time.Time
	participantID int64
	phaseIndex    int
	stepsDone     int
	stepsRequired int
	mu            sync.Mutex
}

func newSession(participantID int64, now func() time.Time) *Session {
	s := &Session{
		participantID: participantID,
		now:           now,
		available:     map[int]bool{},
		visited:       map[int]bool{},
	}
	s.armTimer()
	return s
}

func (s *Session) phase() Phase {
	return phaseOrder[s.phaseIndex]
}

func (s *Session) rule() phaseRule {
	return phaseRules[s.phase()]
}

func (s *Session) armTimer() {
	if limit := s.rule().timeLimit; limit > 0 {
		s.deadline = s.now().Add(limit)
	} else {
		s.deadline = time.Time{}
	}
}

func (s *Session) timerExpired() bool {
	return !s.deadline.IsZero() && !s.now().Before(s.deadline)
}

// completed evaluates the current phase's predicate. The timer pre-empts
// everything else; a foraging phase over an empty available set is
// vacuously complete.
func (s *Session) completed() bool {
	if s.timerExpired() {
		return true
	}
	rule := s.rule()
	switch {
	case rule.foraging:
		for id := range s.available {
			if !s.visited[id] {
				return false
			}
		}
		return true
	case rule.stepped:
		return s.stepsDone >= s.stepsRequired
	default:
		return true
	}
}

// SetStimuli registers the active stimulus set of the current phase. For
// stepped phases the set size doubles as the required step count.
func (s *Session) SetStimuli(ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.available = make(map[int]bool, len(ids))
	for _, id := range ids {
		s.available[id] = true
	}
	if s.rule().stepped {
		s.stepsRequired = len(ids)
	}
}

// MarkVisited records one visited stimulus
func (s *Session) MarkVisited(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available[id] {
		return fmt.Errorf("stimulus %d is not in the active set of phase %s", id, s.phase())
	}
	s.visited[id] = true
	return nil
}

// RecordStep advances a fixed-step phase by one
func (s *Session) RecordStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepsDone++
}

// Advance moves to the next phase once the current completion predicate
// holds. Phase-local state is dropped on transition; finished is terminal
// and advancing there is a no-op.
func (s *Session) Advance() (Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase() == PhaseFinished {
		return PhaseFinished, nil
	}
	if !s.completed() {
		return s.phase(), fmt.Errorf("phase %s is not complete", s.phase())
	}

	s.phaseIndex++
	s.available = map[int]bool{}
	s.visited = map[int]bool{}
	s.stepsDone = 0
	s.stepsRequired = 0
	s.armTimer()
	return s.phase(), nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		ParticipantID: s.participantID,
		Phase:         s.phase(),
		Available:     sortedKeys(s.available),
		Visited:       sortedKeys(s.visited),
		StepsDone:     s.stepsDone,
		StepsRequired: s.stepsRequired,
		Completed:     s.completed(),
		Finished:      s.phase() == PhaseFinished,
	}
	if !s.deadline.IsZero() {
		deadline := s.deadline
		state.Deadline = &deadline
	}
	return state
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// Registry hands out one session per participant
type Registry struct {
	now      func() time.Time
	sessions map[int64]*Session
	mu       sync.Mutex
}

// NewRegistry creates a registry. clock may be nil, defaulting to time.Now.
func NewRegistry(clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		now:      clock,
		sessions: map[int64]*Session{},
	}
}

// Get returns the session of a participant, creating it on first contact
func (r *Registry) Get(participantID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[participantID]
	if !ok {
		s = newSession(participantID, r.now)
		r.sessions[participantID] = s
	}
	return s
}
