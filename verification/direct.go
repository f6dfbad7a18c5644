package verification

import (
	"fmt"

	"github.com/kaito2/panopticon/types"
)

// DirectInspectionVerifier checks that a task result's output is a JSON
// object carrying every expected key.
type DirectInspectionVerifier struct {
	ExpectedKeys []string
}

func NewDirectInspectionVerifier(expectedKeys []string) DirectInspectionVerifier {
	return DirectInspectionVerifier{ExpectedKeys: expectedKeys}
}

func (v DirectInspectionVerifier) Name() string { return "DirectInspectionVerifier" }

func (v DirectInspectionVerifier) Verify(task *types.Task, result *TaskResult) (VerificationOutcome, error) {
	if result.Output == nil {
		return Failed("output is not a JSON object"), nil
	}

	var missing []string
	for _, key := range v.ExpectedKeys {
		if _, ok := result.Output[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Failed(fmt.Sprintf("missing expected keys: %v", missing)), nil
	}

	return Passed(1.0), nil
}
