package reputation

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/kaito2/panopticon/ledger"
	"github.com/kaito2/panopticon/types"
)

// Engine is the EMA-based multi-dimensional reputation engine. Every update
// is recorded on the ledger as a ReputationUpdated entry.
type Engine struct {
	mu     sync.Mutex
	scores map[uuid.UUID]*AgentReputation
	ledger ledger.Ledger
}

func NewEngine(l ledger.Ledger) *Engine {
	return &Engine{
		scores: make(map[uuid.UUID]*AgentReputation),
		ledger: l,
	}
}

// adaptiveAlpha is the learning rate: agents with fewer completed tasks move
// further on each observation. alpha = 1 / (1 + sqrt(completedTasks)).
func adaptiveAlpha(completedTasks uint64) float64 {
	return 1.0 / (1.0 + math.Sqrt(float64(completedTasks)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// UpdateReputation applies a single observation via EMA and appends a
// ReputationUpdated ledger entry recording the new composite.
func (e *Engine) UpdateReputation(obs Observation) (types.ReputationScore, error) {
	value := clamp01(obs.Value)

	e.mu.Lock()
	rep, ok := e.scores[obs.AgentID]
	if !ok {
		rep = newAgentReputation(obs.AgentID)
		e.scores[obs.AgentID] = rep
	}

	alpha := adaptiveAlpha(rep.TotalTasks)
	dim := rep.dimension(obs.Dimension)
	dim.Score = clamp01(alpha*value + (1-alpha)*dim.Score)
	dim.Observations++
	dim.LastUpdated = obs.Timestamp
	rep.TotalTasks++
	newScore := rep.toReputationScore()
	e.mu.Unlock()

	previousHash := e.ledger.LatestHash()
	payload := map[string]interface{}{
		"dimension":      obs.Dimension.String(),
		"observed_value": obs.Value,
		"new_score":      newScore.Composite(),
	}
	entry := ledger.NewEntry(ledger.ReputationUpdated, obs.AgentID, obs.TaskID, payload, previousHash)
	if err := e.ledger.Append(entry); err != nil {
		return newScore, types.NewLedgerError("ledger append: "+err.Error(), err)
	}

	return newScore, nil
}

// GetReputation returns the current per-dimension score for an agent.
func (e *Engine) GetReputation(agentID uuid.UUID) (types.ReputationScore, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rep, ok := e.scores[agentID]
	if !ok {
		return types.ReputationScore{}, false
	}
	return rep.toReputationScore(), true
}

// GetCompositeScore returns the weighted composite score for an agent.
func (e *Engine) GetCompositeScore(agentID uuid.UUID) (float64, bool) {
	score, ok := e.GetReputation(agentID)
	if !ok {
		return 0, false
	}
	return score.Composite(), true
}

// ComputeTrustLevel maps a composite score to a trust band.
func ComputeTrustLevel(composite float64) types.TrustLevel {
	return types.ComputeTrustLevel(composite)
}
