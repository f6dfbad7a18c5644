package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaito2/panopticon/types"
)

func charsWith(criticality, reversibility float64) types.Characteristics {
	c := types.DefaultCharacteristics()
	c.Criticality = criticality
	c.Reversibility = reversibility
	return c
}

func TestLowCriticalityHighReversibilityIsStanding(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.2, 0.8))
	assert.Equal(t, StandingPermission, req.Level)
	assert.EqualValues(t, 0, req.RequiredApprovers)
	assert.False(t, req.HumanRequired)
}

func TestHighCriticalityIsJIT(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.9, 0.8))
	assert.Equal(t, JustInTimePermission, req.Level)
	assert.GreaterOrEqual(t, req.RequiredApprovers, uint32(2))
	assert.True(t, req.HumanRequired)
}

func TestLowReversibilityIsJIT(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.3, 0.2))
	assert.Equal(t, JustInTimePermission, req.Level)
	assert.GreaterOrEqual(t, req.RequiredApprovers, uint32(2))
	assert.True(t, req.HumanRequired)
}

func TestMediumIsContextual(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.5, 0.5))
	assert.Equal(t, ContextualPermission, req.Level)
	assert.EqualValues(t, 1, req.RequiredApprovers)
	assert.False(t, req.HumanRequired)
}

func TestBoundaryHighCriticality(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.7, 0.9))
	assert.Equal(t, JustInTimePermission, req.Level)
}

func TestBoundaryLowReversibility(t *testing.T) {
	req := RequirementFromCharacteristics(charsWith(0.1, 0.39))
	assert.Equal(t, JustInTimePermission, req.Level)
}
