package coordinator

import "github.com/google/uuid"

// ResponseActionKind discriminates ResponseAction variants.
type ResponseActionKind int

const (
	ActionAdjustParameters ResponseActionKind = iota
	ActionRedelegate
	ActionRedecompose
	ActionEscalate
	ActionTerminate
)

// ResponseAction is a single step of a ResponsePlan.
type ResponseAction struct {
	Kind         ResponseActionKind
	TaskID       uuid.UUID
	HasTaskID    bool
	Adjustments  map[string]interface{}
	FromAgentID  uuid.UUID
	Reason       string
}

func AdjustParameters(taskID uuid.UUID, adjustments map[string]interface{}) ResponseAction {
	return ResponseAction{Kind: ActionAdjustParameters, TaskID: taskID, HasTaskID: true, Adjustments: adjustments}
}

func Redelegate(taskID, fromAgentID uuid.UUID) ResponseAction {
	return ResponseAction{Kind: ActionRedelegate, TaskID: taskID, HasTaskID: true, FromAgentID: fromAgentID}
}

func Redecompose(taskID uuid.UUID) ResponseAction {
	return ResponseAction{Kind: ActionRedecompose, TaskID: taskID, HasTaskID: true}
}

func Escalate(taskID *uuid.UUID, reason string) ResponseAction {
	action := ResponseAction{Kind: ActionEscalate, Reason: reason}
	if taskID != nil {
		action.TaskID = *taskID
		action.HasTaskID = true
	}
	return action
}

func Terminate(taskID uuid.UUID, reason string) ResponseAction {
	return ResponseAction{Kind: ActionTerminate, TaskID: taskID, HasTaskID: true, Reason: reason}
}

// ResponsePlan is an ordered set of response actions with a human-readable
// justification for why it was issued.
type ResponsePlan struct {
	Actions       []ResponseAction
	Justification string
}

func NewResponsePlan(justification string) *ResponsePlan {
	return &ResponsePlan{Justification: justification}
}

func (p *ResponsePlan) WithAction(action ResponseAction) *ResponsePlan {
	p.Actions = append(p.Actions, action)
	return p
}

func (p *ResponsePlan) AddAction(action ResponseAction) {
	p.Actions = append(p.Actions, action)
}
