package goap

import "container/heap"

// Goal is a named target state with a priority used to order multi-goal
// results (spec §4.6.4). Higher Priority runs first.
type Goal struct {
	Name       string
	Priority   int
	Conditions WorldState
}

// Planner holds the registered action library and optional history used
// for cost adjustment.
type Planner struct {
	Actions []Action
	History *ActionHistory
	MaxNodes int
}

// NewPlanner returns a Planner over actions with a fresh, empty history
// and the engine's default node budget.
func NewPlanner(actions []Action) *Planner {
	return &Planner{Actions: actions, History: NewActionHistory(), MaxNodes: 10000}
}

type searchNode struct {
	state      WorldState
	g          float64
	f          float64
	lastAction string
	actions    []string // action-name sequence from start to this node
	index      int      // heap bookkeeping
}

// openQueue is a min-heap ordered by (f, lastAction) — spec §4.6.2's
// "lexicographic on (f_score, action_name)" tie-break, applied via the
// action that produced each node so ties are resolved deterministically
// regardless of map/slice iteration order.
type openQueue []*searchNode

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].lastAction < q[j].lastAction
}
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Plan runs A* from start toward goal, returning the winning
// action-name sequence. ok is false if the goal is unreachable within
// MaxNodes expansions (spec §4.6.2 termination clause).
func (p *Planner) Plan(start WorldState, goal Goal) (actions []string, ok bool) {
	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, &searchNode{
		state: start,
		g:     0,
		f:     float64(start.DistanceTo(goal.Conditions)),
	})

	bestG := map[string]float64{start.Hash(): 0}
	closed := map[string]bool{}
	expansions := 0

	for open.Len() > 0 {
		if p.MaxNodes > 0 && expansions >= p.MaxNodes {
			return nil, false
		}
		cur := heap.Pop(open).(*searchNode)
		h := cur.state.Hash()
		if closed[h] {
			continue
		}
		closed[h] = true
		expansions++

		if cur.state.Satisfies(goal.Conditions) {
			return cur.actions, true
		}

		for _, action := range p.Actions {
			if !cur.state.Satisfies(action.Preconditions()) || !action.ApplicableIn(cur.state) {
				continue
			}
			next := cur.state.Apply(action.Effects())
			nextHash := next.Hash()
			if closed[nextHash] {
				continue
			}
			cost := action.Cost()
			if p.History != nil {
				cost = p.History.EffectiveCost(action.Name(), cost)
			}
			g := cur.g + cost
			if prev, seen := bestG[nextHash]; seen && prev <= g {
				continue
			}
			bestG[nextHash] = g
			seq := make([]string, len(cur.actions)+1)
			copy(seq, cur.actions)
			seq[len(cur.actions)] = action.Name()
			heap.Push(open, &searchNode{
				state:      next,
				g:          g,
				f:          g + float64(next.DistanceTo(goal.Conditions)),
				lastAction: action.Name(),
				actions:    seq,
			})
		}
	}
	return nil, false
}

// PlannedGoal is one entry of a multi-goal planning result.
type PlannedGoal struct {
	Goal    Goal
	Actions []string
	OK      bool
}

// PlanAll computes an independent plan for each goal and returns the
// results ordered by descending priority, per spec §4.6.4 — the caller
// decides which (if any) to act on. Empty results (OK == false) are
// valid entries, not errors.
func (p *Planner) PlanAll(start WorldState, goals []Goal) []PlannedGoal {
	out := make([]PlannedGoal, len(goals))
	for i, g := range goals {
		actions, ok := p.Plan(start, g)
		out[i] = PlannedGoal{Goal: g, Actions: actions, OK: ok}
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Goal.Priority < out[j].Goal.Priority {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
