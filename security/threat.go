// Package security implements circuit breakers and the Sybil, collusion,
// and behavioral threat detectors that guard the control plane against
// misbehaving agents.
package security

import (
	"time"

	"github.com/google/uuid"
)

// ThreatCategory classifies a detected threat.
type ThreatCategory int

const (
	DataExfiltration ThreatCategory = iota
	DataPoisoning
	PromptInjection
	HarmfulTask
	VulnerabilityProbe
	SybilAttack
	Collusion
)

func (c ThreatCategory) String() string {
	switch c {
	case DataExfiltration:
		return "DataExfiltration"
	case DataPoisoning:
		return "DataPoisoning"
	case PromptInjection:
		return "PromptInjection"
	case HarmfulTask:
		return "HarmfulTask"
	case VulnerabilityProbe:
		return "VulnerabilityProbe"
	case SybilAttack:
		return "SybilAttack"
	case Collusion:
		return "Collusion"
	default:
		return "Unknown"
	}
}

// ThreatSeverity ranks a threat alert's urgency. Ordering matters: Low <
// Medium < High < Critical.
type ThreatSeverity int

const (
	SeverityLow ThreatSeverity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s ThreatSeverity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ThreatAlert is raised when a detector flags suspicious agent behavior.
type ThreatAlert struct {
	ID            uuid.UUID
	Category      ThreatCategory
	Severity      ThreatSeverity
	SourceAgentID uuid.UUID
	Description   string
	DetectedAt    time.Time
	Metadata      map[string]interface{}
}

func NewThreatAlert(category ThreatCategory, severity ThreatSeverity, sourceAgentID uuid.UUID, description string) ThreatAlert {
	return ThreatAlert{
		ID:            uuid.New(),
		Category:      category,
		Severity:      severity,
		SourceAgentID: sourceAgentID,
		Description:   description,
		DetectedAt:    time.Now().UTC(),
	}
}

func (a ThreatAlert) WithMetadata(metadata map[string]interface{}) ThreatAlert {
	a.Metadata = metadata
	return a
}
