// Package dispute implements the dispute-resolution state machine raised
// against a disputed task verification.
package dispute

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// State is a step in the dispute-resolution lifecycle.
type State int

const (
	Filed State = iota
	BondDeposited
	AlgorithmicResolution
	PanelReview
	Adjudicated
	Settled
)

func (s State) String() string {
	switch s {
	case Filed:
		return "Filed"
	case BondDeposited:
		return "BondDeposited"
	case AlgorithmicResolution:
		return "AlgorithmicResolution"
	case PanelReview:
		return "PanelReview"
	case Adjudicated:
		return "Adjudicated"
	case Settled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// Event drives a dispute state transition.
type Event int

const (
	DepositBond Event = iota
	RunAlgorithm
	RequestPanel
	Adjudicate
	Settle
)

func (e Event) String() string {
	switch e {
	case DepositBond:
		return "DepositBond"
	case RunAlgorithm:
		return "RunAlgorithm"
	case RequestPanel:
		return "RequestPanel"
	case Adjudicate:
		return "Adjudicate"
	case Settle:
		return "Settle"
	default:
		return "Unknown"
	}
}

// Transition computes the next state for (state, event), or a
// DisputeError if the pair is not in the transition table. Note that an
// AlgorithmicResolution can settle directly, skipping panel review.
func Transition(state State, event Event) (State, error) {
	switch {
	case state == Filed && event == DepositBond:
		return BondDeposited, nil
	case state == BondDeposited && event == RunAlgorithm:
		return AlgorithmicResolution, nil
	case state == AlgorithmicResolution && event == RequestPanel:
		return PanelReview, nil
	case state == AlgorithmicResolution && event == Settle:
		return Settled, nil
	case state == PanelReview && event == Adjudicate:
		return Adjudicated, nil
	case state == Adjudicated && event == Settle:
		return Settled, nil
	default:
		return state, types.NewDisputeError("invalid dispute transition from " + state.String() + " via " + event.String())
	}
}

// ResolutionKind discriminates Resolution variants.
type ResolutionKind int

const (
	InFavorOfComplainant ResolutionKind = iota
	InFavorOfRespondent
	Split
)

// Resolution describes how a dispute was decided. For Split, Fraction is
// the share (0.0-1.0) awarded to the complainant.
type Resolution struct {
	Kind     ResolutionKind
	Fraction float64
}

// Dispute is a complaint filed against a task result, moving through the
// resolution state machine until settled.
type Dispute struct {
	ID            uuid.UUID
	TaskID        uuid.UUID
	ComplainantID uuid.UUID
	RespondentID  uuid.UUID
	State         State
	BondAmount    float64
	Resolution    *Resolution
	CreatedAt     time.Time
}

func NewDispute(taskID, complainantID, respondentID uuid.UUID, bondAmount float64) *Dispute {
	return &Dispute{
		ID:            uuid.New(),
		TaskID:        taskID,
		ComplainantID: complainantID,
		RespondentID:  respondentID,
		State:         Filed,
		BondAmount:    bondAmount,
		CreatedAt:     time.Now().UTC(),
	}
}

// ApplyEvent transitions the dispute's state machine.
func (d *Dispute) ApplyEvent(event Event) error {
	next, err := Transition(d.State, event)
	if err != nil {
		return err
	}
	d.State = next
	return nil
}

// Resolve records a resolution and settles the dispute. It requires the
// dispute to already be in the Adjudicated state.
func (d *Dispute) Resolve(resolution Resolution) error {
	if d.State != Adjudicated {
		return types.NewDisputeError("cannot resolve dispute: not in Adjudicated state")
	}
	d.Resolution = &resolution
	return d.ApplyEvent(Settle)
}
