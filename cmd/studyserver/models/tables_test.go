package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

func TestResponseTableLookups(t *testing.T) {
	table, err := PartAResponseTable(datamodel.PhasePractice)
	assert.NoError(t, err)
	assert.Equal(t, "part_a_responses_practice", table)

	table, err = PartAResponseTable(datamodel.PhaseFormal)
	assert.NoError(t, err)
	assert.Equal(t, "part_a_responses_formal", table)

	table, err = PartBResponseTable(datamodel.PhaseFormal)
	assert.NoError(t, err)
	assert.Equal(t, "part_b_responses_formal", table)

	table, err = PartCResponseTable(datamodel.PhasePractice)
	assert.NoError(t, err)
	assert.Equal(t, "part_c_responses_practice", table)
}

func TestResponseTableUnknownPhase(t *testing.T) {
	_, err := PartAResponseTable(datamodel.Phase("warmup"))
	assert.Error(t, err)

	_, err = PartBResponseTable(datamodel.Phase(""))
	assert.Error(t, err)

	_, err = PartCResponseTable(datamodel.Phase("Formal"))
	assert.Error(t, err)
}
