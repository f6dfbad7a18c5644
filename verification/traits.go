// Package verification implements the verification strategies that decide
// whether a completed task's result should be trusted: direct inspection,
// third-party audit, game-theoretic consensus, credential-chain proofs, and
// a cryptographic stub pending a full zero-knowledge implementation.
package verification

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// TaskResult is the output an agent submits upon completing a task.
type TaskResult struct {
	TaskID           uuid.UUID
	AgentID          uuid.UUID
	Output           map[string]interface{}
	CompletedAt      time.Time
	ResourceConsumed float64
}

// OutcomeKind discriminates the VerificationOutcome variants.
type OutcomeKind int

const (
	OutcomePassed OutcomeKind = iota
	OutcomeFailed
	OutcomeInconclusive
)

// VerificationOutcome mirrors the Rust tagged union
// Passed{confidence} / Failed{reason} / Inconclusive as a Go struct with a
// discriminant, since only one of Confidence/Reason is meaningful per Kind.
type VerificationOutcome struct {
	Kind       OutcomeKind
	Confidence float64
	Reason     string
}

func Passed(confidence float64) VerificationOutcome {
	return VerificationOutcome{Kind: OutcomePassed, Confidence: confidence}
}

func Failed(reason string) VerificationOutcome {
	return VerificationOutcome{Kind: OutcomeFailed, Reason: reason}
}

func Inconclusive() VerificationOutcome {
	return VerificationOutcome{Kind: OutcomeInconclusive}
}

func (o VerificationOutcome) IsPassed() bool       { return o.Kind == OutcomePassed }
func (o VerificationOutcome) IsFailed() bool       { return o.Kind == OutcomeFailed }
func (o VerificationOutcome) IsInconclusive() bool { return o.Kind == OutcomeInconclusive }

// Verifier evaluates a task result and renders a verification outcome.
type Verifier interface {
	Verify(task *types.Task, result *TaskResult) (VerificationOutcome, error)
	Name() string
}
