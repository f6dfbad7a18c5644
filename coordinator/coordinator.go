package coordinator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Coordinator receives coordination triggers and maps each one to a
// response plan.
type Coordinator struct {
	triggerCh  chan CoordinationTrigger
	responseCh chan *ResponsePlan
}

func NewCoordinator(triggerCh chan CoordinationTrigger, responseCh chan *ResponsePlan) *Coordinator {
	return &Coordinator{triggerCh: triggerCh, responseCh: responseCh}
}

// Run drives the coordination loop until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case trigger, ok := <-c.triggerCh:
			if !ok {
				return
			}
			plan := HandleTrigger(trigger)
			log.Info().Str("justification", plan.Justification).Msg("coordination response")
			select {
			case c.responseCh <- plan:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			log.Info().Msg("coordinator shutting down")
			return
		}
	}
}

// HandleTrigger maps a trigger to a response plan.
func HandleTrigger(trigger CoordinationTrigger) *ResponsePlan {
	switch trigger.Origin {
	case OriginExternal:
		return handleExternal(trigger.External)
	default:
		return handleInternal(trigger.Internal)
	}
}

func handleExternal(trigger ExternalTrigger) *ResponsePlan {
	switch trigger.Kind {
	case TaskSpecChanged:
		return NewResponsePlan("Task specification changed; redecompose to reflect new requirements").
			WithAction(Redecompose(trigger.TaskID))

	case ResourceFluctuation:
		justification := fmt.Sprintf("Resource '%s' fluctuated by %.2f; escalating for review", trigger.ResourceName, trigger.Delta)
		return NewResponsePlan(justification).WithAction(Escalate(nil, fmt.Sprintf("Resource fluctuation: %s delta=%.2f", trigger.ResourceName, trigger.Delta)))

	case PriorityChanged:
		justification := fmt.Sprintf("Priority changed to %.2f; adjusting task parameters", trigger.NewPriority)
		return NewResponsePlan(justification).WithAction(AdjustParameters(trigger.TaskID, map[string]interface{}{"priority": trigger.NewPriority}))

	case SecurityThreat:
		justification := fmt.Sprintf("Security threat from agent %s: %s; escalating", trigger.AgentID, trigger.Description)
		plan := NewResponsePlan(justification)
		plan.AddAction(Escalate(nil, fmt.Sprintf("Security threat: %s", trigger.Description)))
		return plan

	default:
		return NewResponsePlan("unknown external trigger")
	}
}

func handleInternal(trigger InternalTrigger) *ResponsePlan {
	switch trigger.Kind {
	case PerformanceDegraded:
		justification := fmt.Sprintf("Performance degraded for task %s on agent %s: %s = %.2f; redelegating",
			trigger.TaskID, trigger.AgentID, trigger.Metric, trigger.Value)
		return NewResponsePlan(justification).WithAction(Redelegate(trigger.TaskID, trigger.AgentID))

	case BudgetExceeded:
		justification := fmt.Sprintf("Budget exceeded for task %s: consumed %.2f / limit %.2f; terminating",
			trigger.TaskID, trigger.Consumed, trigger.Limit)
		return NewResponsePlan(justification).WithAction(Terminate(trigger.TaskID, fmt.Sprintf("Budget exceeded: %.2f / %.2f", trigger.Consumed, trigger.Limit)))

	case VerificationFailed:
		justification := fmt.Sprintf("Verification failed for task %s: %s; redecomposing and escalating", trigger.TaskID, trigger.Reason)
		plan := NewResponsePlan(justification)
		plan.AddAction(Redecompose(trigger.TaskID))
		taskID := trigger.TaskID
		plan.AddAction(Escalate(&taskID, fmt.Sprintf("Verification failed: %s", trigger.Reason)))
		return plan

	case AgentUnresponsive:
		justification := fmt.Sprintf("Agent %s is unresponsive; escalating", trigger.AgentID)
		return NewResponsePlan(justification).WithAction(Escalate(nil, fmt.Sprintf("Agent %s unresponsive", trigger.AgentID)))

	default:
		return NewResponsePlan("unknown internal trigger")
	}
}

// ExecuteResponse executes a response plan by logging each action. In a
// full deployment this would dispatch to the actual subsystems.
func ExecuteResponse(plan *ResponsePlan) {
	log.Info().Str("justification", plan.Justification).Msg("executing response plan")
	for i, action := range plan.Actions {
		switch action.Kind {
		case ActionAdjustParameters:
			log.Info().Int("i", i).Str("task_id", action.TaskID.String()).Interface("adjustments", action.Adjustments).Msg("AdjustParameters")
		case ActionRedelegate:
			log.Info().Int("i", i).Str("task_id", action.TaskID.String()).Str("from", action.FromAgentID.String()).Msg("Redelegate")
		case ActionRedecompose:
			log.Info().Int("i", i).Str("task_id", action.TaskID.String()).Msg("Redecompose")
		case ActionEscalate:
			log.Info().Int("i", i).Bool("has_task_id", action.HasTaskID).Str("reason", action.Reason).Msg("Escalate")
		case ActionTerminate:
			log.Info().Int("i", i).Str("task_id", action.TaskID.String()).Str("reason", action.Reason).Msg("Terminate")
		}
	}
}
