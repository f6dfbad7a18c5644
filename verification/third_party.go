package verification

import "github.com/kaito2/panopticon/types"

// ThirdPartyAuditVerifier passes a result when the fraction of approving
// votes meets or exceeds Quorum.
type ThirdPartyAuditVerifier struct {
	Votes  []bool
	Quorum float64
}

func NewThirdPartyAuditVerifier(votes []bool, quorum float64) ThirdPartyAuditVerifier {
	return ThirdPartyAuditVerifier{Votes: votes, Quorum: quorum}
}

func (v ThirdPartyAuditVerifier) Name() string { return "ThirdPartyAuditVerifier" }

func (v ThirdPartyAuditVerifier) Verify(task *types.Task, result *TaskResult) (VerificationOutcome, error) {
	if len(v.Votes) == 0 {
		return Inconclusive(), nil
	}

	approvals := 0
	for _, vote := range v.Votes {
		if vote {
			approvals++
		}
	}
	approvalRate := float64(approvals) / float64(len(v.Votes))

	if approvalRate >= v.Quorum {
		return Passed(approvalRate), nil
	}
	return Failed("quorum not met"), nil
}
