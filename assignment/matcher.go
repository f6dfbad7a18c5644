// Package assignment implements the bid/match/contract pipeline: filtering
// and ranking candidate agents for a task, scoring their bids, and building
// the resulting delegation contract.
package assignment

import (
	"sort"

	"github.com/kaito2/panopticon/types"
)

// CapabilityMatcher filters and ranks candidate agents for a task.
type CapabilityMatcher struct {
	ReputationThreshold float64
}

func NewCapabilityMatcher(reputationThreshold float64) *CapabilityMatcher {
	return &CapabilityMatcher{ReputationThreshold: reputationThreshold}
}

func (m *CapabilityMatcher) meetsCapabilities(task *types.Task, agent *types.Agent) bool {
	for _, cap := range task.RequiredCapabilities {
		if !agent.HasCapability(cap) {
			return false
		}
	}
	return true
}

func (m *CapabilityMatcher) meetsReputation(agent *types.Agent) bool {
	return agent.Reputation.Composite() >= m.ReputationThreshold
}

func (m *CapabilityMatcher) isAvailable(agent *types.Agent) bool {
	return agent.Available && uint32(len(agent.ActiveTaskIDs)) < agent.MaxConcurrentTasks
}

func (m *CapabilityMatcher) candidateScore(task *types.Task, agent *types.Agent) float64 {
	proficiencySum := 0.0
	for _, cap := range task.RequiredCapabilities {
		proficiencySum += agent.CapabilityProficiency(cap)
	}
	return proficiencySum * agent.Reputation.Composite()
}

// FilterAgents returns the agents that meet capability, reputation, and
// availability requirements, ranked descending by candidate score.
func (m *CapabilityMatcher) FilterAgents(task *types.Task, agents []*types.Agent) []*types.Agent {
	candidates := make([]*types.Agent, 0, len(agents))
	for _, a := range agents {
		if m.meetsCapabilities(task, a) && m.meetsReputation(a) && m.isAvailable(a) {
			candidates = append(candidates, a)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return m.candidateScore(task, candidates[i]) > m.candidateScore(task, candidates[j])
	})
	return candidates
}

// FilterByCapabilities returns agents that have every capability the task requires.
func (m *CapabilityMatcher) FilterByCapabilities(task *types.Task, agents []*types.Agent) []*types.Agent {
	out := make([]*types.Agent, 0, len(agents))
	for _, a := range agents {
		if m.meetsCapabilities(task, a) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByReputation returns agents whose composite reputation meets threshold.
func (m *CapabilityMatcher) FilterByReputation(agents []*types.Agent, threshold float64) []*types.Agent {
	out := make([]*types.Agent, 0, len(agents))
	for _, a := range agents {
		if a.Reputation.Composite() >= threshold {
			out = append(out, a)
		}
	}
	return out
}

// FilterByAvailability returns agents that are available and under capacity.
func (m *CapabilityMatcher) FilterByAvailability(agents []*types.Agent) []*types.Agent {
	out := make([]*types.Agent, 0, len(agents))
	for _, a := range agents {
		if m.isAvailable(a) {
			out = append(out, a)
		}
	}
	return out
}
