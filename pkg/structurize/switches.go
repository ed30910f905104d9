package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// findSwitchBlocks resolves switch headers left unclaimed after loop
// discovery. It walks reverse post-order (outer switches first, so an outer
// switch's own escaping cases are accounted for before a nested switch picks
// its merge) and computes each switch's merge as the common post-dominator
// of its case targets.
//
// A switch that dominates its common post-dominator claims it directly. One
// that does not is escaping one or more cases past its own structural
// boundary (typically into an enclosing loop's ladder); the merge is
// recomputed ignoring that undominated block, and if the switch dominates
// *that* target instead, both blocks end up claiming the switch as a header
// — the escaping target via the switch's recorded SelectionMergeBlock, the
// dominated fallback as its real structural merge — so split_merge_blocks
// can later decide which one actually needs a ladder.
func findSwitchBlocks(ctx *passContext) {
	order := ctx.pool.Postorder()
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if !n.IsSwitch {
			continue
		}
		dedupeSwitchTargets(n)
		if n.Merge != cfg.MergeNone {
			continue
		}

		merge := cfg.CommonPostDominator(n.Succ(), nil)
		if merge == nil {
			ctx.warnf("switch %s: no common post-dominator among cases", n.Name)
			continue
		}

		if n.Dominates(merge) {
			n.Merge = cfg.MergeSelection
			n.SelectionMergeBlock = merge
			merge.AddHeader(n)
			continue
		}

		dominatedTarget := cfg.CommonPostDominator(n.Succ(), map[*cfg.Node]bool{merge: true})
		if dominatedTarget != nil && n.Dominates(dominatedTarget) {
			n.Merge = cfg.MergeSelection
			n.SelectionMergeBlock = merge
			dominatedTarget.AddHeader(n)
			merge.AddHeader(n)
			ctx.warnf("switch %s: cases escape past %s, routing dominated fallback through %s", n.Name, merge.Name, dominatedTarget.Name)
			continue
		}

		ctx.warnf("switch %s: cases diverge permanently, no dominated merge", n.Name)
	}
}

// dedupeSwitchTargets ensures that when two or more switch cases (or the
// default) name the same target block, that block appears once in the
// node's successor list rather than once per case. This just re-derives the
// intended successor set from the terminator's case list so a rewritten
// Default/Cases stays consistent; AddSucc itself does not dedupe.
func dedupeSwitchTargets(n *cfg.Node) {
	for _, s := range append([]*cfg.Node{}, n.Succ()...) {
		n.RemoveSucc(s)
	}
	seen := map[*cfg.Node]bool{}
	for _, t := range n.Terminator.Targets() {
		if seen[t] {
			continue
		}
		seen[t] = true
		n.AddSucc(t)
	}
}
