package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// fixupBrokenSelectionMerges resolves two-successor blocks findLoops,
// findSwitchBlocks and findSelectionMerges left with Merge == None: plain
// break/continue shortcuts rather than joins any pass above recognized, a
// node whose branch is n itself picking between "do more work" and "bail
// out" rather than a real if/else diamond. Continue blocks (those with a
// recorded back edge) are left for loop discovery, which already owns them.
func fixupBrokenSelectionMerges(ctx *passContext) {
	for _, n := range ctx.pool.Postorder() {
		if n.Merge != cfg.MergeNone || len(n.Succ()) != 2 || n.SuccBackEdge != nil {
			continue
		}

		a, b := n.Succ()[0], n.Succ()[1]
		dominatesA, dominatesB := n.Dominates(a), n.Dominates(b)
		aClaimed, bClaimed := len(a.Headers) > 0, len(b.Headers) > 0

		switch {
		case dominatesA && !dominatesB:
			mergeToSucc(n, 0)
		case dominatesB && !dominatesA:
			mergeToSucc(n, 1)
		case dominatesA && dominatesB && aClaimed && !bClaimed:
			mergeToSucc(n, 1)
		case dominatesA && dominatesB && bClaimed && !aClaimed:
			mergeToSucc(n, 0)
		case dominatesA && dominatesB:
			resolveAmbiguousBranch(ctx, n, a, b)
		default:
			if ctx.pass == 0 {
				resolveUnconditionalFallback(ctx, n)
			} else {
				ctx.warnf("%s: two-successor block dominates neither successor, no merge", n.Name)
			}
		}
	}
}

// mergeToSucc claims n's successor at index as n's own private selection
// merge. Legal without introducing any new block because n already
// dominates that successor — the other successor is simply the "do more
// work first" side of the branch.
func mergeToSucc(n *cfg.Node, index int) {
	succ := n.Succ()[index]
	succ.AddHeader(n)
	n.Merge = cfg.MergeSelection
	n.SelectionMergeBlock = succ
}

// resolveAmbiguousBranch handles a node dominating both successors where
// both or neither are already claimed. If their common post-dominator is itself
// dominated and unclaimed, it is simply n's merge (this also covers the
// degenerate case where the post-dominator is one of the two successors
// itself — a plain "extra work, or bail straight to the shared tail" shape).
// Otherwise the post-dominator lies past a prior ladder or outside n's
// region; which successor control actually escapes through decides which
// side gets claimed as the private merge, and if both sides escape, n gets
// a synthetic unreachable placeholder merge instead so it still carries a
// well formed Selection shape (split_merge_blocks resolves the real ladder).
func resolveAmbiguousBranch(ctx *passContext, n, a, b *cfg.Node) {
	merge := cfg.CommonPostDominator(n.Succ(), nil)
	if merge == nil {
		if ctx.pass == 0 {
			resolveUnconditionalFallback(ctx, n)
		} else {
			ctx.warnf("%s: branch successors share no common post-dominator", n.Name)
		}
		return
	}

	if n.Dominates(merge) && len(merge.Headers) == 0 {
		n.Merge = cfg.MergeSelection
		n.SelectionMergeBlock = merge
		merge.AddHeader(n)
		return
	}

	aEscapes := controlFlowIsEscaping(n, a, merge)
	bEscapes := controlFlowIsEscaping(n, b, merge)
	switch {
	case aEscapes && !bEscapes:
		mergeToSucc(n, 1)
	case bEscapes && !aEscapes:
		mergeToSucc(n, 0)
	case aEscapes && bEscapes:
		dummy := ctx.newUnreachableMerge(n, "unreachable")
		n.Merge = cfg.MergeSelection
		n.SelectionMergeBlock = dummy
		dummy.AddHeader(n)
	default:
		ctx.warnf("%s: neither successor escapes past shared merge %s, leaving unresolved", n.Name, merge.Name)
	}
}

// resolveUnconditionalFallback is the pass-0-only last resort: when
// dominance is symmetric or absent and no header claim disambiguates the
// branch, the successors' common post-dominator becomes n's merge outright.
// Skipped when that post-dominator is the merge an enclosing switch already
// owns, since claiming it here would steal the switch's own structure.
func resolveUnconditionalFallback(ctx *passContext, n *cfg.Node) {
	merge := cfg.CommonPostDominator(n.Succ(), nil)
	if merge == nil {
		ctx.warnf("%s: no common post-dominator among successors, leaving unmerged", n.Name)
		return
	}
	if outer := outerSwitchMerge(n); outer != nil && outer == merge {
		return
	}
	n.Merge = cfg.MergeSelection
	n.SelectionMergeBlock = merge
	merge.AddHeader(n)
}

// outerSwitchMerge finds the nearest dominating switch header's own merge
// block, so resolveUnconditionalFallback never claims it out from under it.
func outerSwitchMerge(n *cfg.Node) *cfg.Node {
	for cur := n.ImmediateDominator; cur != nil && cur != cur.ImmediateDominator; cur = cur.ImmediateDominator {
		if cur.IsSwitch && cur.SelectionMergeBlock != nil {
			return cur.SelectionMergeBlock
		}
	}
	return nil
}

// controlFlowIsEscaping reports whether control starting at node (a
// successor of header, or reached from one) reaches merge without node
// itself being a continue edge back into header's loop — i.e. whether this
// is a genuine break out of header's construct. Recurses through any
// successor header still dominates, so an escape several blocks downstream
// of the immediate branch is still recognized.
func controlFlowIsEscaping(header, node, merge *cfg.Node) bool {
	if node == merge {
		return false
	}
	if node.SuccBackEdge != nil {
		return false
	}
	for _, s := range node.Succ() {
		if s == merge {
			return true
		}
		if header.Dominates(s) && controlFlowIsEscaping(header, s, merge) {
			return true
		}
	}
	return false
}
