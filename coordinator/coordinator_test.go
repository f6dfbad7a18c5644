package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerTaskSpecChanged(t *testing.T) {
	taskID := uuid.New()
	plan := HandleTrigger(FromExternal(ExternalTrigger{Kind: TaskSpecChanged, TaskID: taskID}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionRedecompose, plan.Actions[0].Kind)
}

func TestTriggerBudgetExceeded(t *testing.T) {
	taskID := uuid.New()
	plan := HandleTrigger(FromInternal(InternalTrigger{Kind: BudgetExceeded, TaskID: taskID, Consumed: 150.0, Limit: 100.0}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionTerminate, plan.Actions[0].Kind)
}

func TestTriggerVerificationFailed(t *testing.T) {
	taskID := uuid.New()
	plan := HandleTrigger(FromInternal(InternalTrigger{Kind: VerificationFailed, TaskID: taskID, Reason: "output mismatch"}))
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, ActionRedecompose, plan.Actions[0].Kind)
	assert.Equal(t, ActionEscalate, plan.Actions[1].Kind)
}

func TestTriggerAgentUnresponsive(t *testing.T) {
	agentID := uuid.New()
	plan := HandleTrigger(FromInternal(InternalTrigger{Kind: AgentUnresponsive, AgentID: agentID}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionEscalate, plan.Actions[0].Kind)
}

func TestTriggerPerformanceDegraded(t *testing.T) {
	taskID := uuid.New()
	agentID := uuid.New()
	plan := HandleTrigger(FromInternal(InternalTrigger{
		Kind: PerformanceDegraded, TaskID: taskID, AgentID: agentID, Metric: "latency", Value: 5000.0,
	}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionRedelegate, plan.Actions[0].Kind)
}

func TestTriggerSecurityThreat(t *testing.T) {
	agentID := uuid.New()
	plan := HandleTrigger(FromExternal(ExternalTrigger{Kind: SecurityThreat, AgentID: agentID, Description: "data exfiltration attempt"}))
	require.NotEmpty(t, plan.Actions)
	assert.Equal(t, ActionEscalate, plan.Actions[0].Kind)
}

func TestTriggerPriorityChanged(t *testing.T) {
	taskID := uuid.New()
	plan := HandleTrigger(FromExternal(ExternalTrigger{Kind: PriorityChanged, TaskID: taskID, NewPriority: 0.9}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionAdjustParameters, plan.Actions[0].Kind)
}

func TestTriggerResourceFluctuation(t *testing.T) {
	plan := HandleTrigger(FromExternal(ExternalTrigger{Kind: ResourceFluctuation, ResourceName: "gpu_memory", Delta: -0.3}))
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionEscalate, plan.Actions[0].Kind)
}

func TestCoordinatorLifecycle(t *testing.T) {
	triggerCh := make(chan CoordinationTrigger, 16)
	responseCh := make(chan *ResponsePlan, 16)

	c := NewCoordinator(triggerCh, responseCh)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	taskID := uuid.New()
	triggerCh <- FromExternal(ExternalTrigger{Kind: TaskSpecChanged, TaskID: taskID})

	select {
	case plan := <-responseCh:
		require.Len(t, plan.Actions, 1)
		assert.Equal(t, ActionRedecompose, plan.Actions[0].Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response plan")
	}
}

func TestCoordinatorShutdown(t *testing.T) {
	triggerCh := make(chan CoordinationTrigger, 16)
	responseCh := make(chan *ResponsePlan, 16)

	c := NewCoordinator(triggerCh, responseCh)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("coordinator did not shut down in time")
	}
}
