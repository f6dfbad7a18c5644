package decomposition

import (
	"fmt"
	"math"

	"github.com/kaito2/panopticon/types"
)

// verifiabilityThreshold is the level below which a hybrid decomposition
// appends an extra verification subtask.
const verifiabilityThreshold = 0.3

// Strategy turns a task into a decomposition proposal.
type Strategy interface {
	Decompose(task *types.Task) (*Proposal, error)
	Name() string
}

// computeSubtaskCount scores a task's characteristics into a subtask count
// in [2, max].
func computeSubtaskCount(c types.Characteristics, max int) int {
	score := c.Complexity*0.4 + c.Uncertainty*0.3 + c.Interdependency*0.3
	n := int(math.Ceil(score * float64(max)))
	if n < 2 {
		n = 2
	}
	if n > max {
		n = max
	}
	return n
}

// distributeCharacteristics derives a subtask's characteristics from its
// parent's, scaling complexity/resource/interaction by its share of the
// total and nudging uncertainty, verifiability, and novelty.
func distributeCharacteristics(parent types.Characteristics, index, total int) types.Characteristics {
	fraction := 1.0 / float64(total)
	progress := float64(index) / float64(total)

	return types.Characteristics{
		Complexity:         parent.Complexity * fraction,
		Criticality:        parent.Criticality,
		Uncertainty:        parent.Uncertainty * (1.0 - progress*0.2),
		Verifiability:      math.Min(parent.Verifiability+0.1, 1.0),
		Reversibility:      parent.Reversibility,
		TimeSensitivity:    parent.TimeSensitivity,
		ResourceIntensity:  parent.ResourceIntensity * fraction,
		PrivacySensitivity: parent.PrivacySensitivity,
		HumanInteraction:   parent.HumanInteraction * fraction,
		Novelty:            parent.Novelty * (1.0 - progress*0.1),
		Interdependency:    parent.Interdependency * 0.5,
	}
}

// SequentialStrategy chains subtasks into a strict execution order.
type SequentialStrategy struct {
	MinSubtasks int
	MaxSubtasks int
}

func DefaultSequentialStrategy() SequentialStrategy {
	return SequentialStrategy{MinSubtasks: 2, MaxSubtasks: 5}
}

func (s SequentialStrategy) Name() string { return "sequential" }

func (s SequentialStrategy) Decompose(task *types.Task) (*Proposal, error) {
	numSubtasks := computeSubtaskCount(task.Characteristics, s.MaxSubtasks)
	if numSubtasks < s.MinSubtasks {
		numSubtasks = s.MinSubtasks
	}
	if numSubtasks > s.MaxSubtasks {
		numSubtasks = s.MaxSubtasks
	}

	proposal := NewProposal(task.ID)
	proposal.ExecutionOrder = Sequential

	var prevID *types.Task
	for i := 0; i < numSubtasks; i++ {
		subtask := types.NewTask(fmt.Sprintf("%s - step %d", task.Name, i+1), task.Description)
		subtask.ParentID = &task.ID
		subtask.Characteristics = distributeCharacteristics(task.Characteristics, i, numSubtasks)
		subtask.RequiredCapabilities = task.RequiredCapabilities

		if prevID != nil {
			proposal.AddDependency(prevID.ID, subtask.ID)
		}
		prevID = subtask
		proposal.AddSubtask(subtask)
	}

	proposal.ParallelismFactor = 1.0
	return proposal, nil
}

// ParallelStrategy fans out independent subtasks with no dependencies.
type ParallelStrategy struct {
	MaxSubtasks int
}

func DefaultParallelStrategy() ParallelStrategy {
	return ParallelStrategy{MaxSubtasks: 8}
}

func (s ParallelStrategy) Name() string { return "parallel" }

func (s ParallelStrategy) Decompose(task *types.Task) (*Proposal, error) {
	numSubtasks := computeSubtaskCount(task.Characteristics, s.MaxSubtasks)
	if numSubtasks < 2 {
		numSubtasks = 2
	}

	proposal := NewProposal(task.ID)
	proposal.ExecutionOrder = Parallel

	for i := 0; i < numSubtasks; i++ {
		subtask := types.NewTask(fmt.Sprintf("%s - partition %d", task.Name, i+1), task.Description)
		subtask.ParentID = &task.ID
		subtask.Characteristics = distributeCharacteristics(task.Characteristics, i, numSubtasks)
		subtask.RequiredCapabilities = task.RequiredCapabilities
		proposal.AddSubtask(subtask)
	}

	proposal.ParallelismFactor = float64(numSubtasks)
	return proposal, nil
}

// HybridStrategy runs a sequential preparation phase, a parallel worker
// phase, and a sequential aggregation phase, appending an extra
// verification subtask when the parent's verifiability is low.
type HybridStrategy struct {
	VerifiabilityThreshold float64
}

func DefaultHybridStrategy() HybridStrategy {
	return HybridStrategy{VerifiabilityThreshold: verifiabilityThreshold}
}

func (s HybridStrategy) Name() string { return "hybrid" }

func (s HybridStrategy) Decompose(task *types.Task) (*Proposal, error) {
	proposal := NewProposal(task.ID)
	proposal.ExecutionOrder = Hybrid

	prep := types.NewTask(fmt.Sprintf("%s - prepare", task.Name), "Preparation phase")
	prep.ParentID = &task.ID
	prep.Characteristics = task.Characteristics
	prep.Characteristics.Complexity *= 0.3

	numWorkers := int(math.Ceil(task.Characteristics.Complexity * 4.0))
	if numWorkers < 2 {
		numWorkers = 2
	}
	if numWorkers > 6 {
		numWorkers = 6
	}

	workerIDs := make([]types.Task, 0, numWorkers)
	for i := 0; i < numWorkers; i++ {
		worker := types.NewTask(fmt.Sprintf("%s - worker %d", task.Name, i+1), "Parallel execution")
		worker.ParentID = &task.ID
		worker.Characteristics = distributeCharacteristics(task.Characteristics, i, numWorkers)
		worker.RequiredCapabilities = task.RequiredCapabilities

		proposal.AddDependency(prep.ID, worker.ID)
		workerIDs = append(workerIDs, *worker)
		proposal.AddSubtask(worker)
	}

	agg := types.NewTask(fmt.Sprintf("%s - aggregate", task.Name), "Aggregation phase")
	agg.ParentID = &task.ID
	for _, w := range workerIDs {
		proposal.AddDependency(w.ID, agg.ID)
	}

	if task.Characteristics.Verifiability < s.VerifiabilityThreshold {
		verify := types.NewTask(fmt.Sprintf("%s - extra verification", task.Name), "Additional verification step for low-verifiability task")
		verify.ParentID = &task.ID
		verify.Characteristics.Verifiability = 0.8
		proposal.AddDependency(agg.ID, verify.ID)
		proposal.AddSubtask(verify)
	}

	proposal.AddSubtask(prep)
	proposal.AddSubtask(agg)
	proposal.ParallelismFactor = float64(numWorkers)

	return proposal, nil
}
