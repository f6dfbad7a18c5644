// Package permissions implements the approval-level matrix, trust-based
// reduction, capability/action checking, and privilege attenuation that
// govern what a delegated agent may actually do.
package permissions

import "github.com/kaito2/panopticon/types"

// ApprovalLevel is the tier of human/peer sign-off a task requires.
type ApprovalLevel int

const (
	StandingPermission ApprovalLevel = iota
	ContextualPermission
	JustInTimePermission
)

func (l ApprovalLevel) String() string {
	switch l {
	case StandingPermission:
		return "standing"
	case ContextualPermission:
		return "contextual"
	case JustInTimePermission:
		return "just_in_time"
	default:
		return "unknown"
	}
}

// ApprovalRequirement is the computed sign-off requirement for a task.
type ApprovalRequirement struct {
	Level              ApprovalLevel
	RequiredApprovers  uint32
	HumanRequired      bool
}

// RequirementFromCharacteristics computes the base approval requirement
// from the criticality x reversibility matrix:
//   - criticality >= 0.7 OR reversibility < 0.4 -> JIT (2+ approvers, human)
//   - criticality < 0.4 AND reversibility >= 0.6 -> Standing (auto-approve)
//   - otherwise -> Contextual (1 approver)
func RequirementFromCharacteristics(c types.Characteristics) ApprovalRequirement {
	criticality := c.Criticality
	reversibility := c.Reversibility

	if criticality >= 0.7 || reversibility < 0.4 {
		return ApprovalRequirement{Level: JustInTimePermission, RequiredApprovers: 2, HumanRequired: true}
	}
	if criticality < 0.4 && reversibility >= 0.6 {
		return ApprovalRequirement{Level: StandingPermission, RequiredApprovers: 0, HumanRequired: false}
	}
	return ApprovalRequirement{Level: ContextualPermission, RequiredApprovers: 1, HumanRequired: false}
}
