package permissions

import "github.com/kaito2/panopticon/types"

// CheckPermission verifies an agent has the capabilities and permitted
// actions a task requires, then returns the approval requirement
// (potentially reduced by the agent's trust level).
func CheckPermission(agent *types.Agent, task *types.Task) (ApprovalRequirement, error) {
	for _, cap := range task.RequiredCapabilities {
		if !agent.HasCapability(cap) {
			return ApprovalRequirement{}, types.NewCapabilityMismatch(cap)
		}
	}

	for _, cap := range task.RequiredCapabilities {
		if !containsString(agent.Permissions.AllowedActions, cap) {
			return ApprovalRequirement{}, types.NewPermissionDenied("agent lacks permission for action: " + cap)
		}
	}

	base := RequirementFromCharacteristics(task.Characteristics)
	adjusted := adjustForTrust(base, agent.TrustLevel, task.Characteristics)

	return adjusted, nil
}

// adjustForTrust reduces approval requirements for more trusted agents, but
// never reduces JIT below JIT for a critical task (criticality >= 0.7).
func adjustForTrust(base ApprovalRequirement, trustLevel types.TrustLevel, c types.Characteristics) ApprovalRequirement {
	isCritical := c.Criticality >= 0.7

	if isCritical && base.Level == JustInTimePermission {
		return base
	}

	switch trustLevel {
	case types.TrustFull:
		switch base.Level {
		case JustInTimePermission:
			return ApprovalRequirement{Level: ContextualPermission, RequiredApprovers: 1, HumanRequired: false}
		case ContextualPermission:
			return ApprovalRequirement{Level: StandingPermission, RequiredApprovers: 0, HumanRequired: false}
		default:
			return base
		}
	case types.TrustHigh:
		if base.Level == JustInTimePermission {
			return ApprovalRequirement{Level: ContextualPermission, RequiredApprovers: 1, HumanRequired: false}
		}
		return base
	default:
		return base
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
