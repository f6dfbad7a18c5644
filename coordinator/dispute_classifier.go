package coordinator

import "strings"

// disputableReasonMarkers are verification-failure reasons that indicate a
// contested result (the agent delivered something, but its correctness is
// in question) rather than outright non-delivery or a hard fault.
var disputableReasonMarkers = []string{
	"contested",
	"disagreement",
	"mismatch",
	"disputed",
}

// IsDisputable reports whether a verification-failure reason describes a
// contested result that should route through the dispute lifecycle rather
// than the default Redecompose+Escalate response HandleTrigger returns for
// every VerificationFailed trigger. It does not change HandleTrigger's
// behavior; callers that want the distinction apply EventDisputeRaised to
// the task themselves before handing the trigger to the coordinator.
func IsDisputable(reason string) bool {
	lower := strings.ToLower(reason)
	for _, marker := range disputableReasonMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
