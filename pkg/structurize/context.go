package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/ir"
)

// passContext carries the shared state every structurization pass needs:
// the arena to allocate helpers from, the diagnostics sink for soft
// warnings, the IR builder facade for ladder conditions, and running
// counters used for Stats.
type passContext struct {
	pool        *cfg.Pool
	diagnostics Diagnostics
	builder     ir.Builder
	stats       *Stats
	pass        int
}

func (c *passContext) warnf(format string, args ...any) {
	if c.diagnostics != nil {
		c.diagnostics.Warnf(format, args...)
	}
}

func (c *passContext) newLadder(target *cfg.Node, owner *cfg.Node) *cfg.Node {
	l := c.pool.NewNode(ir.NewHelperDebugName("ladder"))
	l.IsLadder = true
	l.ImmediateDominator = owner
	l.Terminator = cfg.Branch(target)
	l.AddSucc(target)
	c.stats.LaddersCreated++
	return l
}

// newUnreachableMerge allocates a standalone node dominated by owner but not
// wired into any edge: a placeholder merge block for a branch where both
// successors genuinely escape, so the branch still has a legal Selection
// shape to validate against even though no real control flow ever reaches
// the placeholder itself.
func (c *passContext) newUnreachableMerge(owner *cfg.Node, kind string) *cfg.Node {
	n := c.pool.NewNode(ir.NewHelperDebugName(kind))
	n.ImmediateDominator = owner
	n.Terminator = cfg.Terminator{Kind: cfg.TermUnreachable}
	c.stats.HelperBlocksCreated++
	return n
}

// newConditionLadder splices a boolean-discriminated ladder in front of
// fallthroughTarget: every current predecessor of fallthroughTarget is
// rewired to the new ladder instead, and the ladder's own two-way branch
// picks escapeTarget for predecessors that were themselves already a ladder
// (an escape funneled in from a deeper nesting layer) and fallthroughTarget
// for ordinary predecessors, via a freshly allocated boolean value built
// through c.builder.
func (c *passContext) newConditionLadder(fallthroughTarget, escapeTarget *cfg.Node) *cfg.Node {
	l := c.pool.NewNode(ir.NewHelperDebugName("ladder"))
	l.IsLadder = true
	l.ImmediateDominator = fallthroughTarget.ImmediateDominator
	fallthroughTarget.ImmediateDominator = l

	oldPreds := append([]*cfg.Node{}, fallthroughTarget.Pred()...)
	escaping := make(map[*cfg.Node]bool, len(oldPreds))
	for _, p := range oldPreds {
		escaping[p] = p.IsLadder
		p.RetargetEdge(fallthroughTarget, l)
	}

	cond := c.builder.AllocValue()
	c.builder.AddName(cond, ir.NewHelperDebugName("ladder_cond"))
	l.Terminator = cfg.Condition(cond, escapeTarget, fallthroughTarget)
	l.AddSucc(escapeTarget)
	l.AddSucc(fallthroughTarget)

	phi := cfg.Phi{Result: cond, Type: c.builder.BoolType()}
	for _, p := range l.Pred() {
		phi.AddIncoming(p, c.builder.BoolConstant(escaping[p]))
	}
	l.Phis = append(l.Phis, phi)

	c.stats.LaddersCreated++
	return l
}

func (c *passContext) newHelperPred(n *cfg.Node, kind string) *cfg.Node {
	c.stats.HelperBlocksCreated++
	return createHelperPredBlock(c.pool, n, kind)
}

func (c *passContext) newHelperSucc(n *cfg.Node, kind string) *cfg.Node {
	c.stats.HelperBlocksCreated++
	return createHelperSuccBlock(c.pool, n, kind)
}
