package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// ContractBuildError reports a missing required field or invalid value
// while building a DelegationContract.
type ContractBuildError struct {
	field   string
	reason  string
}

func (e *ContractBuildError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("missing required field: %s", e.field)
	}
	return fmt.Sprintf("invalid value: %s", e.reason)
}

func missingField(field string) error {
	return &ContractBuildError{field: field}
}

func invalidValue(reason string) error {
	return &ContractBuildError{reason: reason}
}

// ContractBuilder is the fluent builder for DelegationContract.
type ContractBuilder struct {
	taskID             *uuid.UUID
	delegatorID        *uuid.UUID
	delegateeID        *uuid.UUID
	payment            *types.PaymentTerms
	monitoring         *types.MonitoringTerms
	disputeResolution  *types.DisputeResolutionTerms
	permittedActions   []string
	maxDelegationDepth uint32
	expiresAt          *time.Time
}

func NewContractBuilder() *ContractBuilder {
	return &ContractBuilder{maxDelegationDepth: 1, permittedActions: []string{}}
}

func (b *ContractBuilder) TaskID(id uuid.UUID) *ContractBuilder {
	b.taskID = &id
	return b
}

func (b *ContractBuilder) DelegatorID(id uuid.UUID) *ContractBuilder {
	b.delegatorID = &id
	return b
}

func (b *ContractBuilder) DelegateeID(id uuid.UUID) *ContractBuilder {
	b.delegateeID = &id
	return b
}

func (b *ContractBuilder) PaymentTerms(terms types.PaymentTerms) *ContractBuilder {
	b.payment = &terms
	return b
}

func (b *ContractBuilder) MonitoringTerms(terms types.MonitoringTerms) *ContractBuilder {
	b.monitoring = &terms
	return b
}

func (b *ContractBuilder) DisputeResolutionTerms(terms types.DisputeResolutionTerms) *ContractBuilder {
	b.disputeResolution = &terms
	return b
}

func (b *ContractBuilder) PermittedActions(actions []string) *ContractBuilder {
	b.permittedActions = actions
	return b
}

func (b *ContractBuilder) MaxDelegationDepth(depth uint32) *ContractBuilder {
	b.maxDelegationDepth = depth
	return b
}

func (b *ContractBuilder) ExpiresAt(t time.Time) *ContractBuilder {
	b.expiresAt = &t
	return b
}

// Build validates completeness and constructs the contract.
func (b *ContractBuilder) Build() (*types.DelegationContract, error) {
	if b.taskID == nil {
		return nil, missingField("task_id")
	}
	if b.delegatorID == nil {
		return nil, missingField("delegator_id")
	}
	if b.delegateeID == nil {
		return nil, missingField("delegatee_id")
	}
	if b.payment == nil {
		return nil, missingField("payment_terms")
	}
	if b.monitoring == nil {
		return nil, missingField("monitoring_terms")
	}
	if b.disputeResolution == nil {
		return nil, missingField("dispute_resolution_terms")
	}

	if b.payment.TotalAmount < 0.0 {
		return nil, invalidValue("total_amount must be non-negative")
	}
	if *b.delegatorID == *b.delegateeID {
		return nil, invalidValue("delegator and delegatee must be different agents")
	}

	return &types.DelegationContract{
		ID:                 uuid.New(),
		TaskID:             *b.taskID,
		DelegatorID:        *b.delegatorID,
		DelegateeID:        *b.delegateeID,
		Payment:            *b.payment,
		Monitoring:         *b.monitoring,
		DisputeResolution:  *b.disputeResolution,
		PermittedActions:   b.permittedActions,
		MaxDelegationDepth: b.maxDelegationDepth,
		CreatedAt:          time.Now().UTC(),
		ExpiresAt:          b.expiresAt,
		SignedByDelegator:  false,
		SignedByDelegatee:  false,
	}, nil
}
