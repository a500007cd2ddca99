package datamodel

import (
	"fmt"
	"strings"
)

// Phase selects which stimulus and response tables apply.
type Phase string

const (
	PhasePractice Phase = "practice"
	PhaseFormal   Phase = "formal"
)

// ParsePhase converts a query parameter into a Phase
func ParsePhase(s string) (Phase, error) {
	switch Phase(strings.ToLower(strings.TrimSpace(s))) {
	case PhasePractice:
		return PhasePractice, nil
	case PhaseFormal:
		return PhaseFormal, nil
	}
	return "", fmt.Errorf("unknown phase: %s", s)
}

// Condition value domains. part2_condition is drawn from {0,1},
// part3_condition from {1,2,3}, independently and uniformly.
const (
	Part2ConditionMin = 0
	Part2ConditionMax = 1
	Part3ConditionMin = 1
	Part3ConditionMax = 3
)

// Conditions is the stable experimental group assignment of one participant.
// Once stored, the pair never changes for the remainder of the session.
type Conditions struct {
	ParticipantID  int64 `json:"participantId"`
	Part2Condition int   `json:"part2Condition"`
	Part3Condition int   `json:"part3Condition"`
}

// Valid reports whether both conditions are inside their domains
func (c Conditions) Valid() bool {
	return c.Part2Condition >= Part2ConditionMin && c.Part2Condition <= Part2ConditionMax &&
		c.Part3Condition >= Part3ConditionMin && c.Part3Condition <= Part3ConditionMax
}

// ActionKind is one participant decision in a foraging phase
type ActionKind string

const (
	ActionSelect   ActionKind = "select"
	ActionContinue ActionKind = "continue"
	ActionSwitch   ActionKind = "switch"
	ActionReveal   ActionKind = "reveal"
)

// ParseActionKind converts a request field into an ActionKind
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(strings.ToLower(strings.TrimSpace(s))) {
	case ActionSelect:
		return ActionSelect, nil
	case ActionContinue:
		return ActionContinue, nil
	case ActionSwitch:
		return ActionSwitch, nil
	case ActionReveal:
		return ActionReveal, nil
	}
	return "", fmt.Errorf("unknown action: %s", s)
}
