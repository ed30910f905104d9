package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/ir"
)

// createHelperPredBlock allocates a new node H and splices it in front of n:
// every current predecessor of n is rewired to target H instead, H's sole
// successor is n, H inherits n's old immediate dominator, and n's immediate
// dominator becomes H. If n was the pool's entry block, H becomes the new
// entry block. Terminators are kept consistent throughout.
//
// Follows the synthetic-node splicing pattern in
// pkg/dag/transform/subdivide.go (allocate, rewire predecessors, reattach),
// generalized from a single-edge subdivider to a full predecessor swap.
func createHelperPredBlock(pool *cfg.Pool, n *cfg.Node, debugKind string) *cfg.Node {
	h := pool.NewNode(ir.NewHelperDebugName(debugKind))
	h.ImmediateDominator = n.ImmediateDominator
	n.ImmediateDominator = h

	oldPreds := append([]*cfg.Node{}, n.Pred()...)
	for _, p := range oldPreds {
		p.RetargetEdge(n, h)
	}
	h.Terminator = cfg.Branch(n)
	h.AddSucc(n)

	if pool.EntryBlock() == n {
		pool.SetEntryBlock(h)
	}
	return h
}

// createHelperSuccBlock allocates a new node H and splices it behind n:
// n's terminator and successors become H's (every successor's predecessor
// list is updated to point at H instead of n), n's new terminator is an
// unconditional branch to H, and H's immediate dominator is n.
//
// Symmetric counterpart to createHelperPredBlock, same grounding.
func createHelperSuccBlock(pool *cfg.Pool, n *cfg.Node, debugKind string) *cfg.Node {
	h := pool.NewNode(ir.NewHelperDebugName(debugKind))
	h.ImmediateDominator = n

	oldSuccs := append([]*cfg.Node{}, n.Succ()...)
	h.Terminator = n.Terminator
	for _, s := range oldSuccs {
		n.RemoveSucc(s)
		h.AddSucc(s)
	}
	n.Terminator = cfg.Branch(h)
	n.AddSucc(h)
	return h
}
