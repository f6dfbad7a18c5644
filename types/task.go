package types

import (
	"time"

	"github.com/google/uuid"
)

// Characteristics is the 11-dimensional description of a task's profile,
// each dimension scaled to [0, 1]. It drives decomposition sizing,
// approval-level computation, and child-task distribution.
type Characteristics struct {
	Complexity         float64 `json:"complexity"`
	Criticality        float64 `json:"criticality"`
	Uncertainty        float64 `json:"uncertainty"`
	Verifiability      float64 `json:"verifiability"`
	Reversibility      float64 `json:"reversibility"`
	TimeSensitivity    float64 `json:"time_sensitivity"`
	ResourceIntensity  float64 `json:"resource_intensity"`
	PrivacySensitivity float64 `json:"privacy_sensitivity"`
	HumanInteraction   float64 `json:"human_interaction"`
	Novelty            float64 `json:"novelty"`
	Interdependency    float64 `json:"interdependency"`
}

// DefaultCharacteristics returns the neutral midpoint profile used when a
// task is created without an explicit characteristics set.
func DefaultCharacteristics() Characteristics {
	return Characteristics{
		Complexity:         0.5,
		Criticality:        0.5,
		Uncertainty:        0.5,
		Verifiability:      0.5,
		Reversibility:      0.5,
		TimeSensitivity:    0.5,
		ResourceIntensity:  0.5,
		PrivacySensitivity: 0.5,
		HumanInteraction:   0.5,
		Novelty:            0.5,
		Interdependency:    0.5,
	}
}

// TaskState enumerates the task lifecycle's states.
type TaskState int

const (
	TaskPending TaskState = iota
	TaskDecomposing
	TaskAwaitingAssignment
	TaskNegotiating
	TaskContracted
	TaskInProgress
	TaskAwaitingVerification
	TaskCompleted
	TaskFailed
	TaskDisputed
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskDecomposing:
		return "Decomposing"
	case TaskAwaitingAssignment:
		return "AwaitingAssignment"
	case TaskNegotiating:
		return "Negotiating"
	case TaskContracted:
		return "Contracted"
	case TaskInProgress:
		return "InProgress"
	case TaskAwaitingVerification:
		return "AwaitingVerification"
	case TaskCompleted:
		return "Completed"
	case TaskFailed:
		return "Failed"
	case TaskDisputed:
		return "Disputed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state is Completed or Failed. Completed
// admits no further transitions; Failed can still return to Pending via
// EventRetry.
func (s TaskState) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// TaskEvent enumerates the events that drive task state transitions.
type TaskEvent int

const (
	EventStartDecomposition TaskEvent = iota
	EventDecompositionComplete
	EventSkipDecomposition
	EventStartNegotiation
	EventNegotiationComplete
	EventContractSigned
	EventStartExecution
	EventExecutionComplete
	EventVerificationPassed
	EventVerificationFailed
	EventDisputeRaised
	EventDisputeResolved
	EventTaskFailed
	EventRetry
)

func (e TaskEvent) String() string {
	switch e {
	case EventStartDecomposition:
		return "StartDecomposition"
	case EventDecompositionComplete:
		return "DecompositionComplete"
	case EventSkipDecomposition:
		return "SkipDecomposition"
	case EventStartNegotiation:
		return "StartNegotiation"
	case EventNegotiationComplete:
		return "NegotiationComplete"
	case EventContractSigned:
		return "ContractSigned"
	case EventStartExecution:
		return "StartExecution"
	case EventExecutionComplete:
		return "ExecutionComplete"
	case EventVerificationPassed:
		return "VerificationPassed"
	case EventVerificationFailed:
		return "VerificationFailed"
	case EventDisputeRaised:
		return "DisputeRaised"
	case EventDisputeResolved:
		return "DisputeResolved"
	case EventTaskFailed:
		return "TaskFailed"
	case EventRetry:
		return "Retry"
	default:
		return "Unknown"
	}
}

// TransitionTask computes the next state for (state, event), or an
// InvalidStateTransition error when the pair is not in the transition table.
func TransitionTask(state TaskState, event TaskEvent) (TaskState, error) {
	switch {
	case state == TaskPending && event == EventStartDecomposition:
		return TaskDecomposing, nil
	case state == TaskPending && event == EventSkipDecomposition:
		return TaskAwaitingAssignment, nil
	case state == TaskDecomposing && event == EventDecompositionComplete:
		return TaskAwaitingAssignment, nil
	case state == TaskAwaitingAssignment && event == EventStartNegotiation:
		return TaskNegotiating, nil
	case state == TaskNegotiating && event == EventNegotiationComplete:
		return TaskContracted, nil
	case state == TaskContracted && event == EventStartExecution:
		return TaskInProgress, nil
	case state == TaskInProgress && event == EventExecutionComplete:
		return TaskAwaitingVerification, nil
	case state == TaskInProgress && event == EventTaskFailed:
		return TaskFailed, nil
	case state == TaskAwaitingVerification && event == EventVerificationPassed:
		return TaskCompleted, nil
	case state == TaskAwaitingVerification && event == EventVerificationFailed:
		return TaskFailed, nil
	case state == TaskAwaitingVerification && event == EventDisputeRaised:
		return TaskDisputed, nil
	case state == TaskDisputed && event == EventDisputeResolved:
		return TaskCompleted, nil
	case state == TaskDisputed && event == EventTaskFailed:
		return TaskFailed, nil
	case state == TaskFailed && event == EventRetry:
		return TaskPending, nil
	default:
		return state, NewInvalidStateTransition(state, event)
	}
}

// Task is a unit of delegable work moving through the lifecycle state machine.
type Task struct {
	ID                   uuid.UUID              `json:"id"`
	ParentID             *uuid.UUID             `json:"parent_id,omitempty"`
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	State                TaskState              `json:"state"`
	Characteristics      Characteristics        `json:"characteristics"`
	RequiredCapabilities []string               `json:"required_capabilities"`
	AssignedAgentID      *uuid.UUID             `json:"assigned_agent_id,omitempty"`
	ContractID           *uuid.UUID             `json:"contract_id,omitempty"`
	SubtaskIDs           []uuid.UUID            `json:"subtask_ids"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Deadline             *time.Time             `json:"deadline,omitempty"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
}

// NewTask creates a fresh task in the Pending state with default
// characteristics.
func NewTask(name, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:              uuid.New(),
		Name:            name,
		Description:     description,
		State:           TaskPending,
		Characteristics: DefaultCharacteristics(),
		SubtaskIDs:      []uuid.UUID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (t *Task) WithCharacteristics(c Characteristics) *Task {
	t.Characteristics = c
	return t
}

func (t *Task) WithCapabilities(caps []string) *Task {
	t.RequiredCapabilities = caps
	return t
}

// ApplyEvent is the sole mutator of Task.State: it transitions the state
// machine and bumps UpdatedAt, or leaves the task untouched on error.
func (t *Task) ApplyEvent(event TaskEvent) error {
	next, err := TransitionTask(t.State, event)
	if err != nil {
		return err
	}
	t.State = next
	t.UpdatedAt = time.Now().UTC()
	return nil
}
