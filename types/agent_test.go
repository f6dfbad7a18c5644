package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReputationComposite(t *testing.T) {
	score := ReputationScore{Completion: 1, Quality: 1, Reliability: 1, Safety: 1, Behavioral: 1}
	assert.InDelta(t, 1.0, score.Composite(), 1e-9)
}

func TestReputationWeighted(t *testing.T) {
	score := ReputationScore{Completion: 0.8, Quality: 0.7, Reliability: 0.6, Safety: 0.9, Behavioral: 0.5}
	expected := 0.8*0.4 + 0.7*0.3 + 0.6*0.15 + 0.9*0.1 + 0.5*0.05
	assert.InDelta(t, expected, score.Composite(), 1e-9)
}

func TestTrustLevelBoundaries(t *testing.T) {
	assert.Equal(t, TrustLow, ComputeTrustLevel(0.2))
	assert.Equal(t, TrustMedium, ComputeTrustLevel(0.4))
	assert.Equal(t, TrustHigh, ComputeTrustLevel(0.6))
	assert.Equal(t, TrustFull, ComputeTrustLevel(0.8))
	assert.Equal(t, TrustUntrusted, ComputeTrustLevel(0.199))
}

func TestTrustLevelMonotonic(t *testing.T) {
	prev := ComputeTrustLevel(0.0)
	for x := 0.01; x <= 1.0; x += 0.01 {
		cur := ComputeTrustLevel(x)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestPermissionSubset(t *testing.T) {
	parent := PermissionSet{
		AllowedActions:             []string{"read", "write", "execute"},
		MaxDelegationDepth:          3,
		MaxCostBudget:               1000.0,
		AllowedDataClassifications: []string{"public", "internal"},
	}
	child := PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:          1,
		MaxCostBudget:               100.0,
		AllowedDataClassifications: []string{"public"},
	}
	assert.True(t, child.IsSubsetOf(parent))
	assert.False(t, parent.IsSubsetOf(child))
}

func TestAgentCapabilities(t *testing.T) {
	agent := NewAgent("test-agent")
	agent.Capabilities.Capabilities = append(agent.Capabilities.Capabilities, Capability{
		Name:        "nlp",
		Proficiency: 0.9,
		Certified:   true,
	})
	assert.True(t, agent.HasCapability("nlp"))
	assert.False(t, agent.HasCapability("vision"))
	assert.InDelta(t, 0.9, agent.CapabilityProficiency("nlp"), 1e-9)
}
