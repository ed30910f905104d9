package structurize

import (
	"slices"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

// splitMergeBlocks resolves merge-block conflicts, the most delicate of the transform
// passes and the reason a second DFS + pass is needed afterward: it only
// runs in pass 0, since every split it performs introduces new blocks whose
// own merges pass 1's discovery must re-derive from scratch.
//
// Two unrelated conflicts are resolved here:
//
//  1. A merge block claimed by more than one header (len(headers) > 1)
//     violates the unique-merge invariant. Claimants are processed innermost
//     to outermost; each inner claimant is rerouted to whatever already
//     resolves its escape (an enclosing loop's own ladder/merge, or a
//     previously synthesized fallback), or — lacking either — gets a fresh
//     placeholder merge of its own. Only the outermost claimant keeps the
//     shared block.
//
//  2. A loop header with a LoopLadderBlock candidate (the "multiple mixed
//     exits" case in findLoops) needs that candidate turned into a real,
//     privately-dominated block rather than an arbitrary existing node, so
//     later continue/break edges have somewhere legal to land.
func splitMergeBlocks(ctx *passContext) {
	if ctx.pass != 0 {
		return
	}

	for _, n := range append([]*cfg.Node{}, ctx.pool.Postorder()...) {
		if len(n.Headers) <= 1 {
			continue
		}
		splitSharedMerge(ctx, n)
	}

	for _, n := range ctx.pool.Postorder() {
		if n.Merge != cfg.MergeLoop || n.LoopLadderBlock == nil {
			continue
		}
		ladder := ctx.newLadder(n.LoopLadderBlock, n)
		n.RewriteBranchesTo(n.LoopLadderBlock, ladder, nil)
		n.LoopLadderBlock = ladder
	}
}

// splitSharedMerge resolves one over-claimed merge block n. Claimants are
// sorted outermost first and walked innermost to outermost: each inner
// claimant either routes its escape through the nearest enclosing loop
// among the remaining outer claimants (a real boolean-discriminated ladder
// when the claimant is itself a loop with its own ladder candidate, a plain
// rewrite otherwise), reuses a fallback merge a previous iteration already
// synthesized, or — lacking both — gets a fresh placeholder merge spliced in
// to carry its claim. The outermost claimant is left holding n itself.
func splitSharedMerge(ctx *passContext, n *cfg.Node) {
	headers := sortHeadersByDominance(append([]*cfg.Node{}, n.Headers...))
	if len(headers) <= 1 {
		return
	}

	var fullBreakTarget *cfg.Node
	for i := len(headers) - 1; i >= 1; i-- {
		header := headers[i]
		outerLoop := nearestOuterLoop(headers[:i])

		switch {
		case header.Merge == cfg.MergeLoop && header.LoopLadderBlock != nil && outerLoop != nil:
			escapeTo := outerLoopEscapeTarget(outerLoop)
			if escapeTo == nil {
				ctx.warnf("%s: outer loop %s has no merge target for ladder escape", header.Name, outerLoop.Name)
				n.RemoveHeader(header)
				continue
			}
			ladder := ctx.newConditionLadder(header.LoopLadderBlock, escapeTo)
			header.RewriteBranchesTo(header.LoopLadderBlock, ladder, nil)
			header.LoopLadderBlock = ladder
			n.RemoveHeader(header)

		case outerLoop != nil:
			escapeTo := outerLoopEscapeTarget(outerLoop)
			if escapeTo == nil {
				ctx.warnf("%s: outer loop %s has no merge target", header.Name, outerLoop.Name)
				n.RemoveHeader(header)
				continue
			}
			header.RewriteBranchesTo(n, escapeTo, nil)
			n.RemoveHeader(header)

		case fullBreakTarget != nil:
			header.RewriteBranchesTo(n, fullBreakTarget, nil)
			n.RemoveHeader(header)

		default:
			dummy := ctx.newUnreachableMerge(header, "break_target")
			header.RewriteBranchesTo(n, dummy, nil)
			n.RemoveHeader(header)
			dummy.AddHeader(header)
			retargetHeaderMergeField(header, n, dummy)
			fullBreakTarget = dummy
		}
	}
}

// retargetHeaderMergeField updates whichever of header's own merge fields
// pointed at old to point at new instead, keeping the header's own
// Merge/SelectionMergeBlock/LoopMergeBlock/LoopLadderBlock consistent with
// the rewrite splitSharedMerge just performed.
func retargetHeaderMergeField(header, old, new *cfg.Node) {
	switch {
	case header.SelectionMergeBlock == old:
		header.SelectionMergeBlock = new
	case header.LoopMergeBlock == old:
		header.LoopMergeBlock = new
	case header.LoopLadderBlock == old:
		header.LoopLadderBlock = new
	}
}

// outerLoopEscapeTarget is where a break out through outerLoop should land:
// its own ladder candidate if it has one queued, otherwise its resolved
// merge block directly.
func outerLoopEscapeTarget(outerLoop *cfg.Node) *cfg.Node {
	if outerLoop.LoopLadderBlock != nil {
		return outerLoop.LoopLadderBlock
	}
	return outerLoop.LoopMergeBlock
}

// nearestOuterLoop returns the innermost Loop-type header among outerHeaders
// (which callers pass already sorted outermost first), or nil if none of
// them is a loop.
func nearestOuterLoop(outerHeaders []*cfg.Node) *cfg.Node {
	for j := len(outerHeaders) - 1; j >= 0; j-- {
		if outerHeaders[j].Merge == cfg.MergeLoop {
			return outerHeaders[j]
		}
	}
	return nil
}

// sortHeadersByDominance orders a nested claimant chain outermost first.
// Claimants of a shared merge are expected to be strictly nested (each
// dominates the next); a malformed input just keeps ties in place.
func sortHeadersByDominance(headers []*cfg.Node) []*cfg.Node {
	slices.SortStableFunc(headers, func(a, b *cfg.Node) int {
		switch {
		case a == b:
			return 0
		case a.Dominates(b):
			return -1
		case b.Dominates(a):
			return 1
		default:
			return 0
		}
	})
	return headers
}
