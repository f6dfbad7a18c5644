// Package coordinator maps external and internal triggers to response plans
// and runs the loop that executes them.
package coordinator

import "github.com/google/uuid"

// ExternalTriggerKind discriminates ExternalTrigger variants.
type ExternalTriggerKind int

const (
	TaskSpecChanged ExternalTriggerKind = iota
	ResourceFluctuation
	PriorityChanged
	SecurityThreat
)

// ExternalTrigger originates from outside the system.
type ExternalTrigger struct {
	Kind         ExternalTriggerKind
	TaskID       uuid.UUID
	ResourceName string
	Delta        float64
	NewPriority  float64
	AgentID      uuid.UUID
	Description  string
}

// InternalTriggerKind discriminates InternalTrigger variants.
type InternalTriggerKind int

const (
	PerformanceDegraded InternalTriggerKind = iota
	BudgetExceeded
	VerificationFailed
	AgentUnresponsive
)

// InternalTrigger originates from monitoring or other subsystems.
type InternalTrigger struct {
	Kind     InternalTriggerKind
	TaskID   uuid.UUID
	AgentID  uuid.UUID
	Metric   string
	Value    float64
	Consumed float64
	Limit    float64
	Reason   string
}

// TriggerOrigin discriminates whether a CoordinationTrigger wraps an
// External or Internal trigger.
type TriggerOrigin int

const (
	OriginExternal TriggerOrigin = iota
	OriginInternal
)

// CoordinationTrigger is either an ExternalTrigger or an InternalTrigger.
type CoordinationTrigger struct {
	Origin   TriggerOrigin
	External ExternalTrigger
	Internal InternalTrigger
}

func FromExternal(t ExternalTrigger) CoordinationTrigger {
	return CoordinationTrigger{Origin: OriginExternal, External: t}
}

func FromInternal(t InternalTrigger) CoordinationTrigger {
	return CoordinationTrigger{Origin: OriginInternal, Internal: t}
}
