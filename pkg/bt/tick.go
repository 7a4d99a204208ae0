package bt

// RunState is the only state a behavior tree needs between ticks: a
// Repeater's in-progress count, a Cooldown's remaining time, and the name
// of whichever leaf last ran, for tooling (spec §4.7's "pointer to the
// running branch (current_node_name)"). Keyed by node identity so the
// same tree shape can run independently for multiple agents, each with
// its own RunState.
type RunState struct {
	scratch map[*Node]*nodeScratch

	// CurrentNodeName mirrors world.BehaviorGraph.CurrentNodeName after
	// each Tick call.
	CurrentNodeName string
}

type nodeScratch struct {
	repeatCount        int
	cooldownRemainingMs float64
}

// NewRunState returns empty per-agent scratch state.
func NewRunState() *RunState {
	return &RunState{scratch: make(map[*Node]*nodeScratch)}
}

func (rs *RunState) scratchFor(n *Node) *nodeScratch {
	s, ok := rs.scratch[n]
	if !ok {
		s = &nodeScratch{}
		rs.scratch[n] = s
	}
	return s
}

// Tick evaluates the tree rooted at n against ctx, advancing any
// Cooldown decorators by dt seconds. It is a pure function of (n, ctx's
// return values, rs, dt): identical inputs always produce an identical
// Status (spec §4.7 determinism clause).
func (n *Node) Tick(ctx Context, rs *RunState, dt float64) Status {
	switch n.kind {
	case kindAction:
		rs.CurrentNodeName = n.leafName
		return ctx.RunAction(n.leafName)

	case kindCondition:
		rs.CurrentNodeName = n.leafName
		return ctx.CheckCondition(n.leafName)

	case kindSequence:
		for _, c := range n.children {
			if st := c.Tick(ctx, rs, dt); st != Success {
				return st
			}
		}
		return Success

	case kindSelector:
		for _, c := range n.children {
			if st := c.Tick(ctx, rs, dt); st != Failure {
				return st
			}
		}
		return Failure

	case kindParallel:
		succeeded, failed := 0, 0
		for _, c := range n.children {
			switch c.Tick(ctx, rs, dt) {
			case Success:
				succeeded++
			case Failure:
				failed++
			}
		}
		if succeeded >= n.threshold {
			return Success
		}
		if len(n.children)-failed < n.threshold {
			return Failure
		}
		return Running

	case kindInverter:
		switch n.child.Tick(ctx, rs, dt) {
		case Success:
			return Failure
		case Failure:
			return Success
		default:
			return Running
		}

	case kindSucceeder:
		n.child.Tick(ctx, rs, dt)
		return Success

	case kindFailer:
		n.child.Tick(ctx, rs, dt)
		return Failure

	case kindRepeater:
		sc := rs.scratchFor(n)
		switch n.child.Tick(ctx, rs, dt) {
		case Success:
			sc.repeatCount++
			if sc.repeatCount >= n.repeat {
				sc.repeatCount = 0
				return Success
			}
			return Running
		case Failure:
			sc.repeatCount = 0
			return Failure
		default:
			return Running
		}

	case kindUntilSuccess:
		if n.child.Tick(ctx, rs, dt) == Success {
			return Success
		}
		return Running

	case kindUntilFailure:
		if n.child.Tick(ctx, rs, dt) == Failure {
			return Failure
		}
		return Running

	case kindCooldown:
		sc := rs.scratchFor(n)
		if sc.cooldownRemainingMs > 0 {
			sc.cooldownRemainingMs -= dt * 1000
			if sc.cooldownRemainingMs > 0 {
				return Failure
			}
		}
		st := n.child.Tick(ctx, rs, dt)
		if st == Success {
			sc.cooldownRemainingMs = float64(n.repeat)
		}
		return st

	default:
		return Failure
	}
}
