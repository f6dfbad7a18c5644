package verification

import (
	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// Assessment is one agent's approve/reject vote in a Schelling-point
// consensus round.
type Assessment struct {
	AgentID  uuid.UUID
	Approved bool
}

// GameTheoreticVerifier renders a consensus outcome from a set of
// independent agent assessments.
type GameTheoreticVerifier struct {
	Assessments        []Assessment
	ConsensusThreshold float64
}

func NewGameTheoreticVerifier(assessments []Assessment, consensusThreshold float64) GameTheoreticVerifier {
	return GameTheoreticVerifier{Assessments: assessments, ConsensusThreshold: consensusThreshold}
}

func (v GameTheoreticVerifier) Name() string { return "GameTheoreticVerifier" }

func (v GameTheoreticVerifier) approvalRate() float64 {
	if len(v.Assessments) == 0 {
		return 0
	}
	approvals := 0
	for _, a := range v.Assessments {
		if a.Approved {
			approvals++
		}
	}
	return float64(approvals) / float64(len(v.Assessments))
}

func (v GameTheoreticVerifier) Verify(task *types.Task, result *TaskResult) (VerificationOutcome, error) {
	if len(v.Assessments) == 0 {
		return Inconclusive(), nil
	}

	rate := v.approvalRate()
	if rate >= v.ConsensusThreshold {
		return Passed(rate), nil
	}
	if (1.0 - rate) >= v.ConsensusThreshold {
		return Failed("consensus rejected result"), nil
	}
	return Inconclusive(), nil
}

// RewardedAgents returns the IDs of assessments that agree with the
// majority consensus (approve if approvalRate >= 0.5, else reject).
func (v GameTheoreticVerifier) RewardedAgents() []uuid.UUID {
	if len(v.Assessments) == 0 {
		return []uuid.UUID{}
	}

	consensusIsApprove := v.approvalRate() >= 0.5

	rewarded := make([]uuid.UUID, 0, len(v.Assessments))
	for _, a := range v.Assessments {
		if a.Approved == consensusIsApprove {
			rewarded = append(rewarded, a.AgentID)
		}
	}
	return rewarded
}
