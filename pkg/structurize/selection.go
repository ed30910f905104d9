package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// findSelectionMerges resolves plain if/else and leftover switch merges. It
// runs after findLoops and findSwitchBlocks so that the loop/switch exit it
// discovers for a block already takes priority, and walks every join point
// (a block with >= 2 forward predecessors) rather than every multi-successor
// header: split_merge_scopes already seeded a preliminary claimant on every
// join's immediate dominator, so the work here is climbing from the join up
// through that claimant chain to the outermost header still in scope and
// reconciling whatever merge kind that header already carries.
func findSelectionMerges(ctx *passContext) {
	for _, n := range ctx.pool.Postorder() {
		if len(n.Pred()) < 2 {
			continue
		}
		if isSwitchFallthroughJoin(n) {
			continue // a switch header or its merge already owns this join
		}

		idom := outermostClaimingHeader(n)
		if idom == nil || idom == n {
			continue
		}

		switch idom.Merge {
		case cfg.MergeNone:
			if idom.IsSwitch {
				continue
			}
			idom.Merge = cfg.MergeSelection
			n.AddHeader(idom)
			idom.SelectionMergeBlock = n

		case cfg.MergeSelection:
			if idom.IsSwitch {
				continue
			}
			if idom.SelectionMergeBlock == n {
				continue // already settled
			}
			if idom.SelectionMergeBlock != nil && n.CanReachWithout(idom.SelectionMergeBlock, nil) {
				continue // n is an intermediate ladder on the way to idom's real merge
			}
			if ctx.pass != 0 {
				ctx.warnf("%s: header %s already claims a different selection merge, leaving unresolved", n.Name, idom.Name)
				continue
			}
			// A nested break fooled the earlier scope split into recording a
			// plain selection merge for idom that conflicts with this join.
			// Freeze idom as a loop over its old region and give it a fresh
			// successor shell to carry the selection construct that actually
			// owns n.
			idom.LoopMergeBlock = idom.SelectionMergeBlock
			idom.Merge = cfg.MergeLoop
			idom.SelectionMergeBlock = nil
			idom.FreezeStructuredAnalysis = true
			selectionIdom := ctx.newHelperSucc(idom, "selection")
			selectionIdom.Merge = cfg.MergeSelection
			n.AddHeader(selectionIdom)
			selectionIdom.SelectionMergeBlock = n

		case cfg.MergeLoop:
			switch {
			case idom.LoopMergeBlock == n && idom.LoopLadderBlock != nil:
				// idom already merges to n directly but also recorded a
				// ladder candidate for a mixed exit set; n needs its own
				// private loop shell spliced in front so the ladder split
				// later has somewhere legal to land.
				loop := ctx.newHelperPred(idom, "loop")
				loop.Merge = cfg.MergeLoop
				loop.LoopMergeBlock = n
				loop.FreezeStructuredAnalysis = true
				n.AddHeader(loop)

			case idom.LoopMergeBlock != n:
				// n is a genuinely different merge than idom's own loop
				// exit: carve out a successor shell to hold the selection
				// construct. (The reference implementation leaves this
				// claim on the stale idom instead of the new shell, which
				// orphans the shell's own SelectionMergeBlock — see
				// DESIGN.md for why this port assigns it self-consistently.)
				selectionIdom := ctx.newHelperSucc(idom, "selection")
				selectionIdom.Merge = cfg.MergeSelection
				n.AddHeader(selectionIdom)
				selectionIdom.SelectionMergeBlock = n

			default:
				// idom.LoopMergeBlock == n with no ladder candidate: the
				// loop's own merge already is n, nothing to split.
			}

		default:
			ctx.warnf("%s: claiming header %s has an unrecognized merge kind", n.Name, idom.Name)
		}
	}
}

// outermostClaimingHeader climbs from n up through whichever headers already
// claim it (split_merge_scopes and earlier structurization seed this list)
// to the one farthest from n — highest VisitOrder, i.e. closest to entry. A
// join nothing has claimed yet falls back to its plain immediate dominator.
func outermostClaimingHeader(n *cfg.Node) *cfg.Node {
	if len(n.Headers) == 0 {
		return n.ImmediateDominator
	}
	best := n.Headers[0]
	for _, h := range n.Headers[1:] {
		if h.VisitOrder > best.VisitOrder {
			best = h
		}
	}
	return best
}
