package monitoring

import "time"

// Comparison is the operator an SLO definition checks its metric with.
type Comparison int

const (
	LessThan Comparison = iota
	GreaterThan
)

// SloDefinition is a service-level objective: a named metric checked
// against a threshold over a rolling window.
type SloDefinition struct {
	MetricName string
	Threshold  float64
	Comparison Comparison
	WindowSecs uint64
}

// SloViolation is a detected breach of an SloDefinition.
type SloViolation struct {
	Definition  SloDefinition
	ActualValue float64
	DetectedAt  time.Time
}

// SloChecker evaluates checkpoints against a fixed set of SLO definitions.
type SloChecker struct {
	Definitions []SloDefinition
}

func NewSloChecker(definitions []SloDefinition) SloChecker {
	return SloChecker{Definitions: definitions}
}

// Check returns every SLO violation a checkpoint triggers. Definitions
// naming a metric the checkpoint doesn't expose are silently skipped.
func (c SloChecker) Check(checkpoint Checkpoint) []SloViolation {
	var violations []SloViolation
	for _, def := range c.Definitions {
		var actual float64
		switch def.MetricName {
		case "progress_pct":
			actual = checkpoint.ProgressPct
		case "resource_consumed":
			actual = checkpoint.ResourceConsumed
		default:
			continue
		}

		var violated bool
		switch def.Comparison {
		case LessThan:
			violated = actual >= def.Threshold
		case GreaterThan:
			violated = actual <= def.Threshold
		}

		if violated {
			violations = append(violations, SloViolation{
				Definition:  def,
				ActualValue: actual,
				DetectedAt:  time.Now().UTC(),
			})
		}
	}
	return violations
}
