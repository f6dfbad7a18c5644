package types

import (
	"time"

	"github.com/google/uuid"
)

// TrustLevel is a discretized band of composite reputation that gates
// approval requirements. The order matters: Untrusted < Low < Medium < High < Full.
type TrustLevel int

const (
	TrustUntrusted TrustLevel = iota
	TrustLow
	TrustMedium
	TrustHigh
	TrustFull
)

func (t TrustLevel) String() string {
	switch t {
	case TrustUntrusted:
		return "Untrusted"
	case TrustLow:
		return "Low"
	case TrustMedium:
		return "Medium"
	case TrustHigh:
		return "High"
	case TrustFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// ComputeTrustLevel maps a composite reputation score onto its trust band.
// Boundary values round up to the higher band: exactly 0.2/0.4/0.6/0.8 land
// in Low/Medium/High/Full respectively.
func ComputeTrustLevel(composite float64) TrustLevel {
	switch {
	case composite < 0.2:
		return TrustUntrusted
	case composite < 0.4:
		return TrustLow
	case composite < 0.6:
		return TrustMedium
	case composite < 0.8:
		return TrustHigh
	default:
		return TrustFull
	}
}

// ReputationScore is the five-dimensional reputation vector the reputation
// engine maintains per agent.
type ReputationScore struct {
	Completion float64 `json:"completion"`
	Quality    float64 `json:"quality"`
	Reliability float64 `json:"reliability"`
	Safety     float64 `json:"safety"`
	Behavioral float64 `json:"behavioral"`
}

// DefaultReputationScore is the neutral starting point for a freshly
// registered agent.
func DefaultReputationScore() ReputationScore {
	return ReputationScore{0.5, 0.5, 0.5, 0.5, 0.5}
}

// Composite is the weighted sum of the five dimensions:
// completion(0.4) + quality(0.3) + reliability(0.15) + safety(0.1) + behavioral(0.05).
func (r ReputationScore) Composite() float64 {
	return r.Completion*0.4 + r.Quality*0.3 + r.Reliability*0.15 + r.Safety*0.1 + r.Behavioral*0.05
}

// PermissionSet is the attenuatable authority an agent or delegation chain
// link carries.
type PermissionSet struct {
	AllowedActions             []string `json:"allowed_actions"`
	MaxDelegationDepth          uint32   `json:"max_delegation_depth"`
	MaxCostBudget               float64  `json:"max_cost_budget"`
	AllowedDataClassifications []string `json:"allowed_data_classifications"`
}

// DefaultPermissionSet mirrors the conservative defaults new agents start with.
func DefaultPermissionSet() PermissionSet {
	return PermissionSet{
		AllowedActions:             []string{},
		MaxDelegationDepth:          1,
		MaxCostBudget:               100.0,
		AllowedDataClassifications: []string{},
	}
}

// IsSubsetOf reports whether every dimension of p is bounded by parent:
// actions and data classifications are contained, depth and budget are
// no larger.
func (p PermissionSet) IsSubsetOf(parent PermissionSet) bool {
	if p.MaxDelegationDepth > parent.MaxDelegationDepth {
		return false
	}
	if p.MaxCostBudget > parent.MaxCostBudget {
		return false
	}
	for _, a := range p.AllowedActions {
		if !contains(parent.AllowedActions, a) {
			return false
		}
	}
	for _, d := range p.AllowedDataClassifications {
		if !contains(parent.AllowedDataClassifications, d) {
			return false
		}
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Capability is a single named skill an agent claims, with a proficiency
// score and optional certification.
type Capability struct {
	Name         string     `json:"name"`
	Proficiency  float64    `json:"proficiency"`
	Certified    bool       `json:"certified"`
	LastVerified *time.Time `json:"last_verified,omitempty"`
}

// CapabilityRegistry is the set of capabilities an agent claims.
type CapabilityRegistry struct {
	Capabilities []Capability `json:"capabilities"`
}

// Agent is a (possibly untrusted) participant that can bid on and execute
// delegated tasks.
type Agent struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Capabilities       CapabilityRegistry `json:"capabilities"`
	Reputation         ReputationScore    `json:"reputation"`
	TrustLevel         TrustLevel         `json:"trust_level"`
	Permissions        PermissionSet      `json:"permissions"`
	Available          bool               `json:"available"`
	CurrentLoad        float64            `json:"current_load"`
	MaxConcurrentTasks uint32             `json:"max_concurrent_tasks"`
	ActiveTaskIDs      []uuid.UUID        `json:"active_task_ids"`
	RegisteredAt       time.Time          `json:"registered_at"`
	LastActiveAt       time.Time          `json:"last_active_at"`
}

// NewAgent registers a fresh agent with neutral reputation and Low trust.
func NewAgent(name string) *Agent {
	now := time.Now().UTC()
	return &Agent{
		ID:                 uuid.New(),
		Name:               name,
		Capabilities:       CapabilityRegistry{Capabilities: []Capability{}},
		Reputation:         DefaultReputationScore(),
		TrustLevel:         TrustLow,
		Permissions:        DefaultPermissionSet(),
		Available:          true,
		MaxConcurrentTasks: 3,
		ActiveTaskIDs:      []uuid.UUID{},
		RegisteredAt:       now,
		LastActiveAt:       now,
	}
}

func (a *Agent) HasCapability(name string) bool {
	for _, c := range a.Capabilities.Capabilities {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (a *Agent) CapabilityProficiency(name string) float64 {
	for _, c := range a.Capabilities.Capabilities {
		if c.Name == name {
			return c.Proficiency
		}
	}
	return 0.0
}
