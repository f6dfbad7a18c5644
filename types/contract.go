package types

import (
	"time"

	"github.com/google/uuid"
)

// MilestonePayment is one installment within a contract's payment schedule.
type MilestonePayment struct {
	MilestoneID string  `json:"milestone_id"`
	Amount      float64 `json:"amount"`
	Paid        bool    `json:"paid"`
}

// PaymentTerms describes the monetary conditions of a delegation contract.
type PaymentTerms struct {
	TotalAmount       float64            `json:"total_amount"`
	EscrowAmount      float64            `json:"escrow_amount"`
	MilestonePayments []MilestonePayment `json:"milestone_payments"`
	PenaltyRate       float64            `json:"penalty_rate"`
}

// MonitoringTerms describes the checkpointing and quality thresholds a
// contract holds its delegatee to.
type MonitoringTerms struct {
	CheckpointIntervalSecs uint64  `json:"checkpoint_interval_secs"`
	MaxLatencyMs           uint64  `json:"max_latency_ms"`
	MinQualityScore        float64 `json:"min_quality_score"`
	MaxResourceBudget      float64 `json:"max_resource_budget"`
}

// DisputeResolutionTerms configures how disagreements over this contract
// are arbitrated.
type DisputeResolutionTerms struct {
	DisputeBond           float64 `json:"dispute_bond"`
	ResolutionTimeoutSecs uint64  `json:"resolution_timeout_secs"`
	PanelSize             uint32  `json:"panel_size"`
	EscalationEnabled     bool    `json:"escalation_enabled"`
}

// DelegationContract binds a delegator and delegatee to a task under
// payment, monitoring, and dispute-resolution terms.
type DelegationContract struct {
	ID                 uuid.UUID               `json:"id"`
	TaskID             uuid.UUID               `json:"task_id"`
	DelegatorID        uuid.UUID               `json:"delegator_id"`
	DelegateeID        uuid.UUID               `json:"delegatee_id"`
	Payment            PaymentTerms            `json:"payment"`
	Monitoring         MonitoringTerms         `json:"monitoring"`
	DisputeResolution  DisputeResolutionTerms  `json:"dispute_resolution"`
	PermittedActions   []string                `json:"permitted_actions"`
	MaxDelegationDepth uint32                  `json:"max_delegation_depth"`
	CreatedAt          time.Time               `json:"created_at"`
	ExpiresAt          *time.Time              `json:"expires_at,omitempty"`
	SignedByDelegator  bool                    `json:"signed_by_delegator"`
	SignedByDelegatee  bool                    `json:"signed_by_delegatee"`
}

func (c *DelegationContract) IsFullySigned() bool {
	return c.SignedByDelegator && c.SignedByDelegatee
}

// DelegationLink is a single from→to hop in a delegation chain.
type DelegationLink struct {
	FromAgentID uuid.UUID  `json:"from_agent_id"`
	ToAgentID   uuid.UUID  `json:"to_agent_id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	TaskID      uuid.UUID  `json:"task_id"`
	Depth       uint32     `json:"depth"`
	Attestation []byte     `json:"attestation,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DelegationChain is the full path from the original delegator down to the
// final executor.
type DelegationChain struct {
	Links []DelegationLink `json:"links"`
}

func NewDelegationChain() *DelegationChain {
	return &DelegationChain{Links: []DelegationLink{}}
}

func (c *DelegationChain) Depth() uint32 {
	return uint32(len(c.Links))
}

func (c *DelegationChain) AddLink(link DelegationLink) {
	c.Links = append(c.Links, link)
}

// Origin is the original delegator, or the zero UUID if the chain is empty.
func (c *DelegationChain) Origin() (uuid.UUID, bool) {
	if len(c.Links) == 0 {
		return uuid.UUID{}, false
	}
	return c.Links[0].FromAgentID, true
}

// Terminal is the final delegatee, or the zero UUID if the chain is empty.
func (c *DelegationChain) Terminal() (uuid.UUID, bool) {
	if len(c.Links) == 0 {
		return uuid.UUID{}, false
	}
	return c.Links[len(c.Links)-1].ToAgentID, true
}
