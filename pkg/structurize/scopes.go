package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// splitMergeScopes is the first structurization step run in pass 0.
//
// First responsibility: every join point (a block with >= 2 forward
// predecessors) gets its immediate dominator declared a preliminary
// Selection header with the join as its merge block, and the join records
// that header as a claimant.
//
// Second responsibility: for every such join whose header is not itself a
// loop continue block, rewriteSelectionBreaks serializes every multi-exit
// shortcut inside the header's dominated region into a strictly nested chain
// of ladder blocks, so that find_selection_merges (run afterward) sees a
// clean one-header-per-merge pattern instead of several blocks all claiming
// the same outer join.
func splitMergeScopes(ctx *passContext) {
	type joinHeader struct {
		header *cfg.Node
		join   *cfg.Node
	}
	var pairs []joinHeader

	for _, n := range ctx.pool.Postorder() {
		if len(n.Pred()) < 2 {
			continue
		}
		header := n.ImmediateDominator
		if header == nil || header == n {
			continue
		}
		if header.Merge == cfg.MergeNone {
			header.Merge = cfg.MergeSelection
			header.SelectionMergeBlock = n
		}
		n.AddHeader(header)
		pairs = append(pairs, joinHeader{header: header, join: n})
	}

	children := domTreeChildren(ctx.pool)
	for _, ph := range pairs {
		if ph.join.SuccBackEdge != nil {
			continue // continue blocks are handled by loop discovery, not laddered
		}
		rewriteSelectionBreaks(ctx, ph.header, ph.join, children)
	}
}

// domTreeChildren builds, for every node, the list of nodes it immediately
// dominates (the dominator tree's adjacency), from the ImmediateDominator
// field computed by Pool.ComputeDominators.
func domTreeChildren(pool *cfg.Pool) map[*cfg.Node][]*cfg.Node {
	children := make(map[*cfg.Node][]*cfg.Node)
	for _, n := range pool.Postorder() {
		if n.ImmediateDominator == nil || n.ImmediateDominator == n {
			continue
		}
		children[n.ImmediateDominator] = append(children[n.ImmediateDominator], n)
	}
	return children
}

// rewriteSelectionBreaks walks the dominator subtree rooted at header,
// outer-first, starting at header's own dominator-tree children rather than
// header itself: header's branch into its body and its own edge to join is
// the selection's legitimate entry branch, not a break-shortcut, so it never
// needs a ladder of its own. Every descendant node with >= 2 forward
// successors gets a ladder block whose sole successor is the join currently
// in scope (initially header's own merge block); every edge in that node's
// dominated subtree still targeting the in-scope join is redirected to the
// new ladder, and the ladder becomes the in-scope join for the node's
// dominator-tree descendants. This serializes "A->M, B->M, C->M, D->M"
// chains (where A is header) into "D->L_D->L_C->L_B->M", one ladder per
// nesting layer beneath header, each dominated by the block that created it.
func rewriteSelectionBreaks(ctx *passContext, header, join *cfg.Node, children map[*cfg.Node][]*cfg.Node) {
	var walk func(node, scopeJoin *cfg.Node)
	walk = func(node, scopeJoin *cfg.Node) {
		nextJoin := scopeJoin
		if len(node.Succ()) >= 2 {
			ladder := ctx.newLadder(scopeJoin, node)
			node.RewriteBranchesTo(scopeJoin, ladder, nil)
			nextJoin = ladder
		}
		for _, child := range children[node] {
			walk(child, nextJoin)
		}
	}
	for _, child := range children[header] {
		walk(child, join)
	}
}
