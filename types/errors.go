// Package types defines the core data model of the delegation control plane:
// tasks and their state machine, agents, reputation, permission sets, and
// delegation contracts/chains.
package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind identifies the class of an Error, mirroring the error
// taxonomy every subsystem raises against.
type ErrorKind int

const (
	ErrInvalidStateTransition ErrorKind = iota
	ErrTaskNotFound
	ErrAgentNotFound
	ErrContractNotFound
	ErrCapabilityMismatch
	ErrReputationBelowThreshold
	ErrPermissionDenied
	ErrVerificationFailed
	ErrLedgerError
	ErrDecompositionError
	ErrAssignmentError
	ErrMonitoringError
	ErrSecurityThreat
	ErrCircuitBreakerOpen
	ErrDisputeError
	ErrSerialization
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidStateTransition:
		return "InvalidStateTransition"
	case ErrTaskNotFound:
		return "TaskNotFound"
	case ErrAgentNotFound:
		return "AgentNotFound"
	case ErrContractNotFound:
		return "ContractNotFound"
	case ErrCapabilityMismatch:
		return "CapabilityMismatch"
	case ErrReputationBelowThreshold:
		return "ReputationBelowThreshold"
	case ErrPermissionDenied:
		return "PermissionDenied"
	case ErrVerificationFailed:
		return "VerificationFailed"
	case ErrLedgerError:
		return "LedgerError"
	case ErrDecompositionError:
		return "DecompositionError"
	case ErrAssignmentError:
		return "AssignmentError"
	case ErrMonitoringError:
		return "MonitoringError"
	case ErrSecurityThreat:
		return "SecurityThreat"
	case ErrCircuitBreakerOpen:
		return "CircuitBreakerOpen"
	case ErrDisputeError:
		return "DisputeError"
	case ErrSerialization:
		return "Serialization"
	default:
		return "Internal"
	}
}

// Error is the single error type surfaced by every component in the core.
// It carries a Kind for programmatic matching plus whatever identifiers and
// human-readable context the raising site wants to attach.
type Error struct {
	Kind    ErrorKind
	Message string
	TaskID  uuid.UUID
	AgentID uuid.UUID
	From    TaskState
	Event   TaskEvent
	Score   float64
	Thresh  float64
	Wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidStateTransition:
		return fmt.Sprintf("state transition error: cannot transition from %s via %s", e.From, e.Event)
	case ErrTaskNotFound:
		return fmt.Sprintf("task not found: %s", e.TaskID)
	case ErrAgentNotFound:
		return fmt.Sprintf("agent not found: %s", e.AgentID)
	case ErrContractNotFound:
		return fmt.Sprintf("contract not found: %s", e.TaskID)
	case ErrCapabilityMismatch:
		return fmt.Sprintf("capability mismatch: agent lacks required capability %q", e.Message)
	case ErrReputationBelowThreshold:
		return fmt.Sprintf("reputation below threshold: %v < %v", e.Score, e.Thresh)
	case ErrPermissionDenied:
		return fmt.Sprintf("permission denied: %s", e.Message)
	case ErrVerificationFailed:
		return fmt.Sprintf("verification failed: %s", e.Message)
	case ErrLedgerError:
		return fmt.Sprintf("ledger error: %s", e.Message)
	case ErrDecompositionError:
		return fmt.Sprintf("decomposition error: %s", e.Message)
	case ErrAssignmentError:
		return fmt.Sprintf("assignment error: %s", e.Message)
	case ErrMonitoringError:
		return fmt.Sprintf("monitoring error: %s", e.Message)
	case ErrSecurityThreat:
		return fmt.Sprintf("security threat detected: %s", e.Message)
	case ErrCircuitBreakerOpen:
		return fmt.Sprintf("circuit breaker open for agent %s", e.AgentID)
	case ErrDisputeError:
		return fmt.Sprintf("dispute error: %s", e.Message)
	case ErrSerialization:
		return fmt.Sprintf("serialization error: %s", e.Message)
	default:
		return fmt.Sprintf("internal error: %s", e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Wrapped }

func NewInvalidStateTransition(from TaskState, event TaskEvent) error {
	return &Error{Kind: ErrInvalidStateTransition, From: from, Event: event}
}

func NewTaskNotFound(id uuid.UUID) error {
	return &Error{Kind: ErrTaskNotFound, TaskID: id}
}

func NewAgentNotFound(id uuid.UUID) error {
	return &Error{Kind: ErrAgentNotFound, AgentID: id}
}

func NewContractNotFound(id uuid.UUID) error {
	return &Error{Kind: ErrContractNotFound, TaskID: id}
}

func NewCapabilityMismatch(capability string) error {
	return &Error{Kind: ErrCapabilityMismatch, Message: capability}
}

func NewReputationBelowThreshold(score, threshold float64) error {
	return &Error{Kind: ErrReputationBelowThreshold, Score: score, Thresh: threshold}
}

func NewPermissionDenied(msg string) error {
	return &Error{Kind: ErrPermissionDenied, Message: msg}
}

func NewVerificationFailed(msg string) error {
	return &Error{Kind: ErrVerificationFailed, Message: msg}
}

func NewLedgerError(msg string, wrapped error) error {
	return &Error{Kind: ErrLedgerError, Message: msg, Wrapped: wrapped}
}

func NewDecompositionError(msg string) error {
	return &Error{Kind: ErrDecompositionError, Message: msg}
}

func NewAssignmentError(msg string) error {
	return &Error{Kind: ErrAssignmentError, Message: msg}
}

func NewMonitoringError(msg string) error {
	return &Error{Kind: ErrMonitoringError, Message: msg}
}

func NewSecurityThreat(msg string) error {
	return &Error{Kind: ErrSecurityThreat, Message: msg}
}

func NewCircuitBreakerOpen(agentID uuid.UUID) error {
	return &Error{Kind: ErrCircuitBreakerOpen, AgentID: agentID}
}

func NewDisputeError(msg string) error {
	return &Error{Kind: ErrDisputeError, Message: msg}
}

func NewSerialization(msg string) error {
	return &Error{Kind: ErrSerialization, Message: msg}
}

func NewInternal(msg string) error {
	return &Error{Kind: ErrInternal, Message: msg}
}

// KindOf extracts the ErrorKind of err if it is (or wraps) a *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if asError(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
