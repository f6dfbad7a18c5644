package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kaito2/panopticon/ledger"
)

// EventKind discriminates MonitoringEvent variants.
type EventKind int

const (
	EventCheckpointReceived EventKind = iota
	EventSloViolation
	EventAgentUnresponsive
	EventTaskTimeout
)

// MonitoringEvent is emitted by the monitoring loop for every checkpoint,
// SLO breach, or heartbeat lapse it observes.
type MonitoringEvent struct {
	Kind        EventKind
	TaskID      uuid.UUID
	AgentID     uuid.UUID
	ProgressPct float64
	Violation   SloViolation
	LastSeen    time.Time
}

// MonitoringConfig tunes the heartbeat watchdog.
type MonitoringConfig struct {
	// HeartbeatTimeout is how long an agent can go without a checkpoint
	// before being considered unresponsive.
	HeartbeatTimeout time.Duration
	// HeartbeatCheckInterval is how often the watchdog sweeps for
	// unresponsive agents.
	HeartbeatCheckInterval time.Duration
}

func DefaultMonitoringConfig() MonitoringConfig {
	return MonitoringConfig{
		HeartbeatTimeout:       60 * time.Second,
		HeartbeatCheckInterval: 10 * time.Second,
	}
}

// MonitoringLoop receives checkpoints, checks them against SLOs, records
// them to the ledger, and emits monitoring events while watching for
// agents that have gone silent.
type MonitoringLoop struct {
	checkpointCh chan Checkpoint
	eventCh      chan MonitoringEvent
	sloChecker   SloChecker
	ledger       ledger.Ledger
	config       MonitoringConfig
	metrics      *Metrics

	mu              sync.Mutex
	agentHeartbeats map[uuid.UUID]time.Time
	taskDeadlines   map[uuid.UUID]time.Time
	timedOutTasks   map[uuid.UUID]bool
}

func NewMonitoringLoop(checkpointCh chan Checkpoint, eventCh chan MonitoringEvent, sloChecker SloChecker, l ledger.Ledger, config MonitoringConfig) *MonitoringLoop {
	return &MonitoringLoop{
		checkpointCh:    checkpointCh,
		eventCh:         eventCh,
		sloChecker:      sloChecker,
		ledger:          l,
		config:          config,
		agentHeartbeats: make(map[uuid.UUID]time.Time),
		taskDeadlines:   make(map[uuid.UUID]time.Time),
		timedOutTasks:   make(map[uuid.UUID]bool),
	}
}

// WithMetrics attaches Prometheus counters the loop increments as it
// processes checkpoints and heartbeat ticks.
func (m *MonitoringLoop) WithMetrics(metrics *Metrics) *MonitoringLoop {
	m.metrics = metrics
	return m
}

// TrackDeadline registers a task's deadline so the heartbeat tick can emit
// TaskTimeout once it elapses. Tasks without a deadline need not be
// registered.
func (m *MonitoringLoop) TrackDeadline(taskID uuid.UUID, deadline time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskDeadlines[taskID] = deadline
}

// UntrackDeadline stops watching a task's deadline, e.g. once it reaches a
// terminal state.
func (m *MonitoringLoop) UntrackDeadline(taskID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.taskDeadlines, taskID)
	delete(m.timedOutTasks, taskID)
}

// Run drives the loop until ctx is cancelled.
func (m *MonitoringLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(m.config.HeartbeatCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case checkpoint, ok := <-m.checkpointCh:
			if !ok {
				return
			}
			m.handleCheckpoint(checkpoint)
		case <-ticker.C:
			m.checkHeartbeats()
		case <-ctx.Done():
			log.Info().Msg("monitoring loop shutting down")
			return
		}
	}
}

func (m *MonitoringLoop) emit(event MonitoringEvent) {
	select {
	case m.eventCh <- event:
	default:
		log.Warn().Msg("monitoring event channel full, dropping event")
	}
}

func (m *MonitoringLoop) handleCheckpoint(checkpoint Checkpoint) {
	m.mu.Lock()
	m.agentHeartbeats[checkpoint.AgentID] = checkpoint.Timestamp
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.CheckpointsReceived.Inc()
	}

	m.emit(MonitoringEvent{
		Kind:        EventCheckpointReceived,
		TaskID:      checkpoint.TaskID,
		AgentID:     checkpoint.AgentID,
		ProgressPct: checkpoint.ProgressPct,
	})

	for _, violation := range m.sloChecker.Check(checkpoint) {
		if m.metrics != nil {
			m.metrics.SloViolations.WithLabelValues(violation.Definition.MetricName).Inc()
		}
		m.emit(MonitoringEvent{
			Kind:      EventSloViolation,
			TaskID:    checkpoint.TaskID,
			AgentID:   checkpoint.AgentID,
			Violation: violation,
		})
	}

	prevHash := m.ledger.LatestHash()
	entry := ledger.NewEntry(ledger.CheckpointRecorded, checkpoint.AgentID, checkpoint.TaskID, checkpoint, prevHash)
	if err := m.ledger.Append(entry); err != nil {
		log.Error().Err(err).Msg("failed to record checkpoint to ledger")
	}
}

func (m *MonitoringLoop) checkHeartbeats() {
	now := time.Now().UTC()

	m.mu.Lock()
	var unresponsive []struct {
		agentID  uuid.UUID
		lastSeen time.Time
	}
	for agentID, lastSeen := range m.agentHeartbeats {
		if now.Sub(lastSeen) > m.config.HeartbeatTimeout {
			unresponsive = append(unresponsive, struct {
				agentID  uuid.UUID
				lastSeen time.Time
			}{agentID, lastSeen})
		}
	}
	m.mu.Unlock()

	for _, u := range unresponsive {
		if m.metrics != nil {
			m.metrics.AgentsUnresponsive.Inc()
		}
		m.emit(MonitoringEvent{
			Kind:     EventAgentUnresponsive,
			AgentID:  u.agentID,
			LastSeen: u.lastSeen,
		})
	}

	m.checkDeadlines(now)
}

// checkDeadlines emits TaskTimeout once per task whose deadline has passed,
// for every task currently tracked via TrackDeadline.
func (m *MonitoringLoop) checkDeadlines(now time.Time) {
	m.mu.Lock()
	var expired []uuid.UUID
	for taskID, deadline := range m.taskDeadlines {
		if now.After(deadline) && !m.timedOutTasks[taskID] {
			m.timedOutTasks[taskID] = true
			expired = append(expired, taskID)
		}
	}
	m.mu.Unlock()

	for _, taskID := range expired {
		m.emit(MonitoringEvent{
			Kind:     EventTaskTimeout,
			TaskID:   taskID,
			LastSeen: now,
		})
	}
}
