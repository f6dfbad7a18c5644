// Package monitoring implements the checkpoint/SLO/heartbeat loop that
// watches in-progress tasks and raises monitoring events when an agent
// falls behind or goes silent.
package monitoring

import (
	"time"

	"github.com/google/uuid"
)

// Checkpoint is a progress report an agent files while executing a task.
type Checkpoint struct {
	TaskID           uuid.UUID
	AgentID          uuid.UUID
	Timestamp        time.Time
	ProgressPct      float64
	ResourceConsumed float64
	StatusMessage    string
	Metadata         map[string]interface{}
}

func NewCheckpoint(taskID, agentID uuid.UUID) Checkpoint {
	return Checkpoint{
		TaskID:    taskID,
		AgentID:   agentID,
		Timestamp: time.Now().UTC(),
	}
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

func (c Checkpoint) WithProgress(pct float64) Checkpoint {
	c.ProgressPct = clamp01(pct)
	return c
}

func (c Checkpoint) WithResourceConsumed(amount float64) Checkpoint {
	c.ResourceConsumed = amount
	return c
}

func (c Checkpoint) WithStatus(msg string) Checkpoint {
	c.StatusMessage = msg
	return c
}

func (c Checkpoint) WithMetadata(meta map[string]interface{}) Checkpoint {
	c.Metadata = meta
	return c
}
