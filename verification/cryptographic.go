package verification

import "github.com/kaito2/panopticon/types"

// CryptographicVerifier is a stub for zero-knowledge proof based
// verification. It always passes with moderate confidence pending a full
// ZK implementation.
type CryptographicVerifier struct{}

func NewCryptographicVerifier() CryptographicVerifier { return CryptographicVerifier{} }

func (v CryptographicVerifier) Name() string { return "CryptographicVerifier" }

func (v CryptographicVerifier) Verify(task *types.Task, result *TaskResult) (VerificationOutcome, error) {
	// TODO: implement full ZK proof verification.
	return Passed(0.5), nil
}
