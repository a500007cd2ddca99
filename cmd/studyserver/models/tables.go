package models

import (
	"fmt"

	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// Phase-scoped response tables. Every phase-dependent table name goes
// through one typed lookup, so an unknown phase fails before any SQL is
// built and table names never derive from request data.

var partAResponseTables = map[datamodel.Phase]string{
	datamodel.PhasePractice: "part_a_responses_practice",
	datamodel.PhaseFormal:   "part_a_responses_formal",
}

var partBResponseTables = map[datamodel.Phase]string{
	datamodel.PhasePractice: "part_b_responses_practice",
	datamodel.PhaseFormal:   "part_b_responses_formal",
}

var partCResponseTables = map[datamodel.Phase]string{
	datamodel.PhasePractice: "part_c_responses_practice",
	datamodel.PhaseFormal:   "part_c_responses_formal",
}

func lookupTable(tables map[datamodel.Phase]string, phase datamodel.Phase) (string, error) {
	table, ok := tables[phase]
	if !ok {
		return "", fmt.Errorf("no table for phase %s", phase)
	}
	return table, nil
}

// PartAResponseTable returns the Part A response table for a phase
func PartAResponseTable(phase datamodel.Phase) (string, error) {
	return lookupTable(partAResponseTables, phase)
}

// PartBResponseTable returns the Part B response table for a phase
func PartBResponseTable(phase datamodel.Phase) (string, error) {
	return lookupTable(partBResponseTables, phase)
}

// PartCResponseTable returns the Part C response table for a phase
func PartCResponseTable(phase datamodel.Phase) (string, error) {
	return lookupTable(partCResponseTables, phase)
}
