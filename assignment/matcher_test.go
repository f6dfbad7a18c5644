package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaito2/panopticon/types"
)

type capSpec struct {
	name        string
	proficiency float64
}

func makeMatchAgent(name string, caps []capSpec, reputation float64, available bool) *types.Agent {
	agent := types.NewAgent(name)
	for _, c := range caps {
		agent.Capabilities.Capabilities = append(agent.Capabilities.Capabilities, types.Capability{
			Name: c.name, Proficiency: c.proficiency, Certified: true,
		})
	}
	agent.Reputation = types.ReputationScore{
		Completion: reputation, Quality: reputation, Reliability: reputation,
		Safety: reputation, Behavioral: reputation,
	}
	agent.Available = available
	return agent
}

func TestFilterAgentsByCapability(t *testing.T) {
	matcher := NewCapabilityMatcher(0.3)
	task := types.NewTask("test", "desc").WithCapabilities([]string{"nlp"})
	agents := []*types.Agent{
		makeMatchAgent("a1", []capSpec{{"nlp", 0.9}}, 0.8, true),
		makeMatchAgent("a2", []capSpec{{"vision", 0.9}}, 0.8, true),
	}

	result := matcher.FilterAgents(task, agents)
	assert.Len(t, result, 1)
	assert.Equal(t, "a1", result[0].Name)
}

func TestFilterAgentsByReputation(t *testing.T) {
	matcher := NewCapabilityMatcher(0.7)
	task := types.NewTask("test", "desc").WithCapabilities([]string{"nlp"})
	agents := []*types.Agent{
		makeMatchAgent("a1", []capSpec{{"nlp", 0.9}}, 0.8, true),
		makeMatchAgent("a2", []capSpec{{"nlp", 0.9}}, 0.3, true),
	}

	result := matcher.FilterAgents(task, agents)
	assert.Len(t, result, 1)
	assert.Equal(t, "a1", result[0].Name)
}

func TestFilterAgentsByAvailability(t *testing.T) {
	matcher := NewCapabilityMatcher(0.3)
	task := types.NewTask("test", "desc").WithCapabilities([]string{"nlp"})
	agents := []*types.Agent{
		makeMatchAgent("a1", []capSpec{{"nlp", 0.9}}, 0.8, true),
		makeMatchAgent("a2", []capSpec{{"nlp", 0.9}}, 0.8, false),
	}

	result := matcher.FilterAgents(task, agents)
	assert.Len(t, result, 1)
	assert.Equal(t, "a1", result[0].Name)
}

func TestRankingByProficiencyAndReputation(t *testing.T) {
	matcher := NewCapabilityMatcher(0.3)
	task := types.NewTask("test", "desc").WithCapabilities([]string{"nlp"})
	agents := []*types.Agent{
		makeMatchAgent("low", []capSpec{{"nlp", 0.5}}, 0.5, true),
		makeMatchAgent("high", []capSpec{{"nlp", 0.9}}, 0.9, true),
		makeMatchAgent("mid", []capSpec{{"nlp", 0.7}}, 0.7, true),
	}

	result := matcher.FilterAgents(task, agents)
	assert.Len(t, result, 3)
	assert.Equal(t, "high", result[0].Name)
	assert.Equal(t, "mid", result[1].Name)
	assert.Equal(t, "low", result[2].Name)
}

func TestEmptyCapabilitiesMatchesAll(t *testing.T) {
	matcher := NewCapabilityMatcher(0.0)
	task := types.NewTask("test", "desc")
	agents := []*types.Agent{
		makeMatchAgent("a1", nil, 0.5, true),
		makeMatchAgent("a2", []capSpec{{"nlp", 0.9}}, 0.5, true),
	}

	result := matcher.FilterAgents(task, agents)
	assert.Len(t, result, 2)
}
