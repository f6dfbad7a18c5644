package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaito2/panopticon/ledger"
)

func TestMonitoringLoopReceivesCheckpoint(t *testing.T) {
	cpCh := make(chan Checkpoint, 16)
	evtCh := make(chan MonitoringEvent, 16)

	loop := NewMonitoringLoop(cpCh, evtCh, NewSloChecker(nil), ledger.NewInMemoryLedger(), MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 10 * time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	taskID := uuid.New()
	agentID := uuid.New()
	cpCh <- NewCheckpoint(taskID, agentID).WithProgress(0.5)

	select {
	case evt := <-evtCh:
		require.Equal(t, EventCheckpointReceived, evt.Kind)
		assert.Equal(t, taskID, evt.TaskID)
		assert.Equal(t, agentID, evt.AgentID)
		assert.InDelta(t, 0.5, evt.ProgressPct, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for checkpoint event")
	}
}

func TestMonitoringLoopDetectsSloViolation(t *testing.T) {
	cpCh := make(chan Checkpoint, 16)
	evtCh := make(chan MonitoringEvent, 16)

	sloChecker := NewSloChecker([]SloDefinition{
		{MetricName: "resource_consumed", Threshold: 50.0, Comparison: LessThan, WindowSecs: 300},
	})
	loop := NewMonitoringLoop(cpCh, evtCh, sloChecker, ledger.NewInMemoryLedger(), MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 10 * time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	cpCh <- NewCheckpoint(uuid.New(), uuid.New()).WithResourceConsumed(100.0)

	event1 := recvEvent(t, evtCh)
	assert.Equal(t, EventCheckpointReceived, event1.Kind)

	event2 := recvEvent(t, evtCh)
	assert.Equal(t, EventSloViolation, event2.Kind)
}

func TestMonitoringLoopShutdown(t *testing.T) {
	cpCh := make(chan Checkpoint, 16)
	evtCh := make(chan MonitoringEvent, 16)

	loop := NewMonitoringLoop(cpCh, evtCh, NewSloChecker(nil), ledger.NewInMemoryLedger(), MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 10 * time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitoring loop did not shut down in time")
	}
}

func TestMonitoringLoopEmitsTaskTimeout(t *testing.T) {
	cpCh := make(chan Checkpoint, 16)
	evtCh := make(chan MonitoringEvent, 16)

	loop := NewMonitoringLoop(cpCh, evtCh, NewSloChecker(nil), ledger.NewInMemoryLedger(), MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 50 * time.Millisecond,
	})

	taskID := uuid.New()
	loop.TrackDeadline(taskID, time.Now().UTC().Add(-1*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	event := recvEvent(t, evtCh)
	require.Equal(t, EventTaskTimeout, event.Kind)
	assert.Equal(t, taskID, event.TaskID)
}

func TestMonitoringLoopIncrementsMetrics(t *testing.T) {
	cpCh := make(chan Checkpoint, 16)
	evtCh := make(chan MonitoringEvent, 16)

	sloChecker := NewSloChecker([]SloDefinition{
		{MetricName: "resource_consumed", Threshold: 50.0, Comparison: LessThan, WindowSecs: 300},
	})
	loop := NewMonitoringLoop(cpCh, evtCh, sloChecker, ledger.NewInMemoryLedger(), MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 10 * time.Minute,
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	loop.WithMetrics(metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	cpCh <- NewCheckpoint(uuid.New(), uuid.New()).WithResourceConsumed(100.0)
	recvEvent(t, evtCh)
	recvEvent(t, evtCh)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.CheckpointsReceived) == 1
	}, time.Second, 10*time.Millisecond)
}

func recvEvent(t *testing.T, ch <-chan MonitoringEvent) MonitoringEvent {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return MonitoringEvent{}
	}
}
