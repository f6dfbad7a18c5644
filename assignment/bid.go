package assignment

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// RFP (Request for Proposal) is issued when a task needs an agent.
type RFP struct {
	TaskID               uuid.UUID
	RequiredCapabilities []string
	MaxCost              float64
	Deadline             *time.Time
	CreatedAt            time.Time
}

func NewRFP(taskID uuid.UUID, requiredCapabilities []string, maxCost float64) RFP {
	return RFP{
		TaskID:               taskID,
		RequiredCapabilities: requiredCapabilities,
		MaxCost:              maxCost,
		CreatedAt:            time.Now().UTC(),
	}
}

func (r RFP) WithDeadline(deadline time.Time) RFP {
	r.Deadline = &deadline
	return r
}

// Bid is submitted by an agent in response to an RFP.
type Bid struct {
	AgentID              uuid.UUID
	TaskID               uuid.UUID
	ProposedCost         float64
	ProposedDurationSecs uint64
	ConfidenceScore      float64
	CreatedAt            time.Time
}

func NewBid(agentID, taskID uuid.UUID, proposedCost float64, proposedDurationSecs uint64, confidenceScore float64) Bid {
	return Bid{
		AgentID:              agentID,
		TaskID:               taskID,
		ProposedCost:         proposedCost,
		ProposedDurationSecs: proposedDurationSecs,
		ConfidenceScore:      confidenceScore,
		CreatedAt:            time.Now().UTC(),
	}
}

// ScoredBid is a bid together with the components that produced its score.
type ScoredBid struct {
	Bid                Bid
	TotalScore         float64
	CostScore          float64
	QualityScore       float64
	ConfidenceComponent float64
}

// BidEvaluator evaluates and ranks bids based on cost, predicted quality,
// and confidence.
type BidEvaluator struct {
	CostWeight       float64
	QualityWeight    float64
	ConfidenceWeight float64
}

// DefaultBidEvaluator returns an evaluator with the default weights:
// cost 0.4, quality 0.4, confidence 0.2.
func DefaultBidEvaluator() BidEvaluator {
	return BidEvaluator{CostWeight: 0.4, QualityWeight: 0.4, ConfidenceWeight: 0.2}
}

func NewBidEvaluator(costWeight, qualityWeight, confidenceWeight float64) BidEvaluator {
	return BidEvaluator{CostWeight: costWeight, QualityWeight: qualityWeight, ConfidenceWeight: confidenceWeight}
}

// Evaluate scores every bid within max cost, using qualityPredictor to map
// an agent ID to a predicted quality in [0, 1]. Returns bids sorted
// descending by total score.
func (e BidEvaluator) Evaluate(bids []Bid, maxCost float64, qualityPredictor func(uuid.UUID) float64) []ScoredBid {
	scored := make([]ScoredBid, 0, len(bids))
	for _, b := range bids {
		if b.ProposedCost > maxCost {
			continue
		}
		costScore := 0.0
		if maxCost > 0.0 {
			costScore = 1.0 - (b.ProposedCost / maxCost)
		}
		qualityScore := qualityPredictor(b.AgentID)
		confidenceComponent := b.ConfidenceScore
		totalScore := e.CostWeight*costScore + e.QualityWeight*qualityScore + e.ConfidenceWeight*confidenceComponent

		scored = append(scored, ScoredBid{
			Bid:                 b,
			TotalScore:          totalScore,
			CostScore:           costScore,
			QualityScore:        qualityScore,
			ConfidenceComponent: confidenceComponent,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	return scored
}
