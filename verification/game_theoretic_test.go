package verification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaito2/panopticon/types"
)

func TestConsensusPasses(t *testing.T) {
	v := NewGameTheoreticVerifier([]Assessment{
		{AgentID: uuid.New(), Approved: true},
		{AgentID: uuid.New(), Approved: true},
		{AgentID: uuid.New(), Approved: false},
	}, 0.6)

	outcome, err := v.Verify(types.NewTask("t", ""), &TaskResult{})
	require.NoError(t, err)
	assert.True(t, outcome.IsPassed())
}

func TestConsensusRejects(t *testing.T) {
	v := NewGameTheoreticVerifier([]Assessment{
		{AgentID: uuid.New(), Approved: false},
		{AgentID: uuid.New(), Approved: false},
		{AgentID: uuid.New(), Approved: true},
	}, 0.6)

	outcome, err := v.Verify(types.NewTask("t", ""), &TaskResult{})
	require.NoError(t, err)
	assert.True(t, outcome.IsFailed())
}

func TestInconclusiveNoAssessments(t *testing.T) {
	v := NewGameTheoreticVerifier(nil, 0.6)
	outcome, err := v.Verify(types.NewTask("t", ""), &TaskResult{})
	require.NoError(t, err)
	assert.True(t, outcome.IsInconclusive())
}

func TestInconclusiveSplitVote(t *testing.T) {
	v := NewGameTheoreticVerifier([]Assessment{
		{AgentID: uuid.New(), Approved: true},
		{AgentID: uuid.New(), Approved: false},
	}, 0.6)

	outcome, err := v.Verify(types.NewTask("t", ""), &TaskResult{})
	require.NoError(t, err)
	assert.True(t, outcome.IsInconclusive())
}

func TestRewardedAgents(t *testing.T) {
	agreeA := uuid.New()
	agreeB := uuid.New()
	dissenter := uuid.New()

	v := NewGameTheoreticVerifier([]Assessment{
		{AgentID: agreeA, Approved: true},
		{AgentID: agreeB, Approved: true},
		{AgentID: dissenter, Approved: false},
	}, 0.6)

	rewarded := v.RewardedAgents()
	assert.ElementsMatch(t, []uuid.UUID{agreeA, agreeB}, rewarded)
}
