// Package decomposition implements the sequential, parallel, and hybrid
// task-decomposition strategies that turn a task into an acyclic subtask DAG.
package decomposition

import (
	"github.com/google/uuid"

	"github.com/kaito2/panopticon/types"
)

// ExecutionOrder describes how a proposal's subtasks relate to each other.
type ExecutionOrder int

const (
	Sequential ExecutionOrder = iota
	Parallel
	Hybrid
)

func (o ExecutionOrder) String() string {
	switch o {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// SubtaskDependency is a single edge in the subtask DAG: from must complete
// before to may begin.
type SubtaskDependency struct {
	From uuid.UUID
	To   uuid.UUID
}

// Proposal is a candidate decomposition of a parent task into subtasks.
type Proposal struct {
	ParentTaskID                uuid.UUID
	Subtasks                    []*types.Task
	Dependencies                []SubtaskDependency
	ExecutionOrder              ExecutionOrder
	EstimatedTotalCost          float64
	EstimatedTotalDurationSecs  uint64
	ParallelismFactor           float64
}

func NewProposal(parentTaskID uuid.UUID) *Proposal {
	return &Proposal{
		ParentTaskID:      parentTaskID,
		Subtasks:          []*types.Task{},
		Dependencies:      []SubtaskDependency{},
		ExecutionOrder:    Sequential,
		ParallelismFactor: 1.0,
	}
}

func (p *Proposal) AddSubtask(task *types.Task) {
	p.Subtasks = append(p.Subtasks, task)
}

func (p *Proposal) AddDependency(from, to uuid.UUID) {
	p.Dependencies = append(p.Dependencies, SubtaskDependency{From: from, To: to})
}

// IsAcyclic reports whether the dependency graph has no cycles, via DFS
// with a visited set and a recursion-path (gray node) set.
func (p *Proposal) IsAcyclic() bool {
	adj := make(map[uuid.UUID][]uuid.UUID)
	for _, dep := range p.Dependencies {
		adj[dep.From] = append(adj[dep.From], dep.To)
	}

	visited := make(map[uuid.UUID]bool)
	stack := make(map[uuid.UUID]bool)

	var dfs func(node uuid.UUID) bool
	dfs = func(node uuid.UUID) bool {
		visited[node] = true
		stack[node] = true
		for _, next := range adj[node] {
			if !visited[next] {
				if !dfs(next) {
					return false
				}
			} else if stack[next] {
				return false
			}
		}
		stack[node] = false
		return true
	}

	for _, task := range p.Subtasks {
		if !visited[task.ID] {
			if !dfs(task.ID) {
				return false
			}
		}
	}
	return true
}
