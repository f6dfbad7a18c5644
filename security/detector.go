package security

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ResourceAccess records a single resource access by an agent.
type ResourceAccess struct {
	ResourceName string
	AccessType   string
	Timestamp    time.Time
}

// BidRecord records a single bid placed by an agent.
type BidRecord struct {
	TaskID    uuid.UUID
	AgentID   uuid.UUID
	BidAmount float64
	Timestamp time.Time
}

// ThreatContext is the evidence bundle handed to every detector.
type ThreatContext struct {
	AgentID                uuid.UUID
	ActionDescription      string
	ResourceAccessPatterns []ResourceAccess
	BidPatterns            []BidRecord
	RegisteredAt           *time.Time
	Capabilities           []string
}

// ThreatDetector evaluates a context and reports whatever threats it finds.
type ThreatDetector interface {
	Detect(ctx ThreatContext) ([]ThreatAlert, error)
}

// AgentRecord is a summary of a known agent used for comparison by
// SybilDetector.
type AgentRecord struct {
	ID           uuid.UUID
	Capabilities []string
	RegisteredAt time.Time
}

// SybilDetector flags clusters of agents that register within a short
// window of each other while claiming overlapping capabilities.
type SybilDetector struct {
	RegistrationWindowSecs     int64
	CapabilityOverlapThreshold float64
	KnownAgents                []AgentRecord
}

func NewSybilDetector(registrationWindowSecs int64, capabilityOverlapThreshold float64) *SybilDetector {
	return &SybilDetector{
		RegistrationWindowSecs:     registrationWindowSecs,
		CapabilityOverlapThreshold: capabilityOverlapThreshold,
	}
}

func capabilityOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for _, cap := range a {
		if contains(b, cap) {
			intersection++
		}
	}
	union := map[string]struct{}{}
	for _, cap := range a {
		union[cap] = struct{}{}
	}
	for _, cap := range b {
		union[cap] = struct{}{}
	}
	if len(union) == 0 {
		return 0.0
	}
	return float64(intersection) / float64(len(union))
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func (d *SybilDetector) Detect(ctx ThreatContext) ([]ThreatAlert, error) {
	var alerts []ThreatAlert
	if ctx.RegisteredAt == nil {
		return alerts, nil
	}
	registeredAt := *ctx.RegisteredAt

	for _, agent := range d.KnownAgents {
		if agent.ID == ctx.AgentID {
			continue
		}
		timeDiff := registeredAt.Sub(agent.RegisteredAt)
		if timeDiff < 0 {
			timeDiff = -timeDiff
		}
		if int64(timeDiff/time.Second) > d.RegistrationWindowSecs {
			continue
		}
		overlap := capabilityOverlap(ctx.Capabilities, agent.Capabilities)
		if overlap >= d.CapabilityOverlapThreshold {
			alerts = append(alerts, NewThreatAlert(
				SybilAttack,
				SeverityHigh,
				ctx.AgentID,
				fmt.Sprintf("Agent registered within %ds of agent %s with %.0f%% capability overlap",
					int64(timeDiff/time.Second), agent.ID, overlap*100.0),
			))
		}
	}

	return alerts, nil
}

// CollusionDetector flags agents that repeatedly co-bid on the same tasks
// within a short window of each other.
type CollusionDetector struct {
	MinCoBidCount int
	BidWindowSecs int64
}

func NewCollusionDetector(minCoBidCount int, bidWindowSecs int64) *CollusionDetector {
	return &CollusionDetector{MinCoBidCount: minCoBidCount, BidWindowSecs: bidWindowSecs}
}

func (d *CollusionDetector) Detect(ctx ThreatContext) ([]ThreatAlert, error) {
	var myBids, otherBids []BidRecord
	for _, b := range ctx.BidPatterns {
		if b.AgentID == ctx.AgentID {
			myBids = append(myBids, b)
		} else {
			otherBids = append(otherBids, b)
		}
	}

	coBidCounts := make(map[uuid.UUID]int)
	for _, mine := range myBids {
		for _, other := range otherBids {
			if mine.TaskID != other.TaskID {
				continue
			}
			diff := mine.Timestamp.Sub(other.Timestamp)
			if diff < 0 {
				diff = -diff
			}
			if int64(diff/time.Second) <= d.BidWindowSecs {
				coBidCounts[other.AgentID]++
			}
		}
	}

	agentIDs := make([]uuid.UUID, 0, len(coBidCounts))
	for id := range coBidCounts {
		agentIDs = append(agentIDs, id)
	}
	sort.Slice(agentIDs, func(i, j int) bool { return agentIDs[i].String() < agentIDs[j].String() })

	var alerts []ThreatAlert
	for _, otherAgentID := range agentIDs {
		count := coBidCounts[otherAgentID]
		if count >= d.MinCoBidCount {
			alerts = append(alerts, NewThreatAlert(
				Collusion,
				SeverityMedium,
				ctx.AgentID,
				fmt.Sprintf("Agent co-bid with agent %s on %d tasks within %ds windows", otherAgentID, count, d.BidWindowSecs),
			))
		}
	}

	return alerts, nil
}

// BehavioralDetector flags sudden capability claims or unusually broad
// resource access within a short window.
type BehavioralDetector struct {
	MaxNewCapabilities  int
	MaxResourceAccesses int
	ResourceWindowSecs  int64
}

func NewBehavioralDetector(maxNewCapabilities, maxResourceAccesses int, resourceWindowSecs int64) *BehavioralDetector {
	return &BehavioralDetector{
		MaxNewCapabilities:  maxNewCapabilities,
		MaxResourceAccesses: maxResourceAccesses,
		ResourceWindowSecs:  resourceWindowSecs,
	}
}

func (d *BehavioralDetector) Detect(ctx ThreatContext) ([]ThreatAlert, error) {
	var alerts []ThreatAlert

	if len(ctx.Capabilities) > d.MaxNewCapabilities {
		alerts = append(alerts, NewThreatAlert(
			VulnerabilityProbe,
			SeverityMedium,
			ctx.AgentID,
			fmt.Sprintf("Agent claims %d capabilities, exceeding threshold of %d", len(ctx.Capabilities), d.MaxNewCapabilities),
		))
	}

	now := time.Now().UTC()
	distinctResources := map[string]struct{}{}
	for _, access := range ctx.ResourceAccessPatterns {
		diff := now.Sub(access.Timestamp)
		if diff < 0 {
			diff = -diff
		}
		if int64(diff/time.Second) <= d.ResourceWindowSecs {
			distinctResources[access.ResourceName] = struct{}{}
		}
	}

	if len(distinctResources) > d.MaxResourceAccesses {
		alerts = append(alerts, NewThreatAlert(
			DataExfiltration,
			SeverityHigh,
			ctx.AgentID,
			fmt.Sprintf("Agent accessed %d distinct resources in %ds, exceeding threshold of %d",
				len(distinctResources), d.ResourceWindowSecs, d.MaxResourceAccesses),
		))
	}

	return alerts, nil
}
