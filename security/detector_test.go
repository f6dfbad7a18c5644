package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSybilDetectorFlagsSimilarAgents(t *testing.T) {
	now := time.Now().UTC()
	targetID := uuid.New()
	similarID := uuid.New()

	detector := NewSybilDetector(60, 0.5)
	detector.KnownAgents = append(detector.KnownAgents, AgentRecord{
		ID:           similarID,
		Capabilities: []string{"nlp", "vision", "reasoning"},
		RegisteredAt: now.Add(-30 * time.Second),
	})

	ctx := ThreatContext{
		AgentID:      targetID,
		RegisteredAt: &now,
		Capabilities: []string{"nlp", "vision"},
	}

	alerts, err := detector.Detect(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, SybilAttack, alerts[0].Category)
}

func TestSybilDetectorIgnoresDistantRegistration(t *testing.T) {
	now := time.Now().UTC()
	targetID := uuid.New()
	otherID := uuid.New()

	detector := NewSybilDetector(60, 0.5)
	detector.KnownAgents = append(detector.KnownAgents, AgentRecord{
		ID:           otherID,
		Capabilities: []string{"nlp", "vision"},
		RegisteredAt: now.Add(-3600 * time.Second),
	})

	ctx := ThreatContext{
		AgentID:      targetID,
		RegisteredAt: &now,
		Capabilities: []string{"nlp", "vision"},
	}

	alerts, err := detector.Detect(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCollusionDetectorFlagsCoordinatedBids(t *testing.T) {
	now := time.Now().UTC()
	agentA := uuid.New()
	agentB := uuid.New()
	task1, task2, task3 := uuid.New(), uuid.New(), uuid.New()

	bids := []BidRecord{
		{TaskID: task1, AgentID: agentA, BidAmount: 10.0, Timestamp: now},
		{TaskID: task1, AgentID: agentB, BidAmount: 12.0, Timestamp: now.Add(5 * time.Second)},
		{TaskID: task2, AgentID: agentA, BidAmount: 20.0, Timestamp: now},
		{TaskID: task2, AgentID: agentB, BidAmount: 22.0, Timestamp: now.Add(3 * time.Second)},
		{TaskID: task3, AgentID: agentA, BidAmount: 15.0, Timestamp: now},
		{TaskID: task3, AgentID: agentB, BidAmount: 17.0, Timestamp: now.Add(2 * time.Second)},
	}

	detector := NewCollusionDetector(3, 10)
	ctx := ThreatContext{AgentID: agentA, BidPatterns: bids}

	alerts, err := detector.Detect(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, Collusion, alerts[0].Category)
}

func TestBehavioralDetectorFlagsExcessiveCapabilities(t *testing.T) {
	detector := NewBehavioralDetector(3, 10, 300)
	ctx := ThreatContext{
		AgentID:      uuid.New(),
		Capabilities: []string{"nlp", "vision", "reasoning", "coding", "planning"},
	}

	alerts, err := detector.Detect(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	found := false
	for _, a := range alerts {
		if a.Category == VulnerabilityProbe {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBehavioralDetectorFlagsResourceAccess(t *testing.T) {
	now := time.Now().UTC()
	detector := NewBehavioralDetector(100, 2, 300)

	var accesses []ResourceAccess
	for i := 0; i < 5; i++ {
		accesses = append(accesses, ResourceAccess{
			ResourceName: "resource",
			AccessType:   "read",
			Timestamp:    now.Add(-10 * time.Second),
		})
		accesses[i].ResourceName = accesses[i].ResourceName + string(rune('0'+i))
	}

	ctx := ThreatContext{AgentID: uuid.New(), ResourceAccessPatterns: accesses}

	alerts, err := detector.Detect(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	found := false
	for _, a := range alerts {
		if a.Category == DataExfiltration {
			found = true
		}
	}
	assert.True(t, found)
}
