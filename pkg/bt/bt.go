// Package bt implements the behavior tree runtime: a tagged-union node
// sum type over leaves, composites, and decorators, each evaluated by
// Tick(ctx, rs, dt) Status exactly per spec §4.7. The tree is a pure function of
// its shape and the context's resolver return values — it owns no game
// state itself, only the tick contract.
package bt

// Status is a node's outcome for one tick.
type Status int

const (
	Success Status = iota
	Failure
	Running
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Running"
	}
}

// Context resolves leaf names to pure functions. Everything the tree can
// read or change lives behind this interface (components/resources in
// the caller's world) — the tree itself never touches game state
// directly (spec §4.7 "State" clause).
type Context interface {
	// RunAction resolves and runs an Action(name) leaf.
	RunAction(name string) Status
	// CheckCondition resolves and runs a Condition(name) leaf.
	CheckCondition(name string) Status
}

// Node is the tagged union every tree is built from. Exactly one
// constructor below should be used per node; Tick dispatches on the
// node kind that constructor sets.
type Node struct {
	kind nodeKind

	// Leaf
	leafName string

	// Composite
	children  []*Node
	threshold int // Parallel only

	// Decorator
	child  *Node
	repeat int // Repeater only
}

type nodeKind int

const (
	kindAction nodeKind = iota
	kindCondition
	kindSequence
	kindSelector
	kindParallel
	kindInverter
	kindSucceeder
	kindFailer
	kindRepeater
	kindUntilSuccess
	kindUntilFailure
	kindCooldown
)

func Action(name string) *Node    { return &Node{kind: kindAction, leafName: name} }
func Condition(name string) *Node { return &Node{kind: kindCondition, leafName: name} }

func Sequence(children ...*Node) *Node { return &Node{kind: kindSequence, children: children} }
func Selector(children ...*Node) *Node { return &Node{kind: kindSelector, children: children} }
func Parallel(threshold int, children ...*Node) *Node {
	return &Node{kind: kindParallel, children: children, threshold: threshold}
}

func Inverter(child *Node) *Node  { return &Node{kind: kindInverter, child: child} }
func Succeeder(child *Node) *Node { return &Node{kind: kindSucceeder, child: child} }
func Failer(child *Node) *Node    { return &Node{kind: kindFailer, child: child} }
func Repeater(n int, child *Node) *Node {
	return &Node{kind: kindRepeater, child: child, repeat: n}
}
func UntilSuccess(child *Node) *Node { return &Node{kind: kindUntilSuccess, child: child} }
func UntilFailure(child *Node) *Node { return &Node{kind: kindUntilFailure, child: child} }

// Cooldown gates child: once child returns Success, the decorator returns
// Failure on every subsequent tick until seconds have elapsed, counted
// down from the dt passed to each Tick call and kept per agent in the
// RunState (see tick.go). This is
// the engine's own addition beyond spec §4.7's named decorator list,
// grounded in original_source's cooldown-gated attack leaves.
func Cooldown(seconds float64, child *Node) *Node {
	return &Node{kind: kindCooldown, child: child, repeat: int(seconds * 1000)}
}
