// Package reputation implements the five-dimensional adaptive reputation
// engine: an exponential moving average per dimension with a learning rate
// that cools as an agent accumulates a track record.
package reputation

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// Dimension is one of the five axes an agent is evaluated along.
type Dimension int

const (
	Completion Dimension = iota
	Quality
	Reliability
	Safety
	Behavioral
)

func (d Dimension) String() string {
	switch d {
	case Completion:
		return "completion"
	case Quality:
		return "quality"
	case Reliability:
		return "reliability"
	case Safety:
		return "safety"
	case Behavioral:
		return "behavioral"
	default:
		return "unknown"
	}
}

// DimensionScore is one dimension's running EMA plus the number of
// observations that have fed into it.
type DimensionScore struct {
	Dimension    Dimension `json:"dimension"`
	Score        float64   `json:"score"`
	Observations uint64    `json:"observations"`
	LastUpdated  time.Time `json:"last_updated"`
}

func newDimensionScore(dim Dimension) DimensionScore {
	return DimensionScore{Dimension: dim, Score: 0.5, Observations: 0, LastUpdated: time.Now().UTC()}
}

// Observation is a single data point recorded after a task completes or a
// checkpoint is evaluated.
type Observation struct {
	AgentID   uuid.UUID
	TaskID    uuid.UUID
	Dimension Dimension
	Value     float64
	Timestamp time.Time
}

// AgentReputation is the per-agent state the engine tracks.
type AgentReputation struct {
	AgentID     uuid.UUID
	Completion  DimensionScore
	Quality     DimensionScore
	Reliability DimensionScore
	Safety      DimensionScore
	Behavioral  DimensionScore
	TotalTasks  uint64
}

func newAgentReputation(agentID uuid.UUID) *AgentReputation {
	return &AgentReputation{
		AgentID:     agentID,
		Completion:  newDimensionScore(Completion),
		Quality:     newDimensionScore(Quality),
		Reliability: newDimensionScore(Reliability),
		Safety:      newDimensionScore(Safety),
		Behavioral:  newDimensionScore(Behavioral),
		TotalTasks:  0,
	}
}

// dimension returns a pointer to the DimensionScore matching dim, so callers
// can mutate it in place.
func (r *AgentReputation) dimension(dim Dimension) *DimensionScore {
	switch dim {
	case Completion:
		return &r.Completion
	case Quality:
		return &r.Quality
	case Reliability:
		return &r.Reliability
	case Safety:
		return &r.Safety
	case Behavioral:
		return &r.Behavioral
	default:
		return &r.Completion
	}
}

func (r *AgentReputation) toReputationScore() types.ReputationScore {
	return types.ReputationScore{
		Completion:  r.Completion.Score,
		Quality:     r.Quality.Score,
		Reliability: r.Reliability.Score,
		Safety:      r.Safety.Score,
		Behavioral:  r.Behavioral.Score,
	}
}
