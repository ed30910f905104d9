package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// insertPhi repairs phi incoming lists after structurization. Every helper, ladder, or split-merge
// block synthesized by the earlier passes was spliced onto an edge that a
// phi somewhere downstream recorded an incoming value for under the old,
// now-indirect predecessor. This does not just forward the old value to
// every current predecessor reachable from it — where two original incoming
// blocks now both reach the same current predecessor through a shared
// dominance-frontier merge point, only one of them is still the right value,
// and which one is resolved per predecessor rather than assumed.
func insertPhi(ctx *passContext) {
	for _, n := range ctx.pool.Postorder() {
		for i := range n.Phis {
			repairPhiIncoming(ctx, n, &n.Phis[i])
		}
	}
}

type phiSlot struct {
	block *cfg.Node
	value cfg.ValueID
}

// repairPhiIncoming rebuilds phi's incoming list to match n's current
// predecessors. It starts one slot per original incoming block and value,
// then iteratively advances slots forward and collapses them at their
// nearest shared dominance-frontier point until every slot sits on an
// actual current predecessor of n.
func repairPhiIncoming(ctx *passContext, n *cfg.Node, phi *cfg.Phi) {
	preds := n.Pred()
	slots := make([]phiSlot, len(phi.Incoming))
	for i, inc := range phi.Incoming {
		slots[i] = phiSlot{block: inc.Pred, value: inc.Value}
	}

	subset := map[*cfg.Node]bool{}
	for _, s := range slots {
		for b := range cfg.ReachableSubset([]*cfg.Node{s.block}, n) {
			subset[b] = true
		}
	}
	delete(subset, n)

	bound := len(ctx.pool.Postorder()) + 1
	for round := 0; round < bound; round++ {
		advanceSlots(slots, subset, n)
		if allSlotsAtPreds(slots, preds) {
			break
		}

		frontier := nearestSharedFrontier(slots, subset)
		if frontier == nil {
			break
		}
		collapseSlotsAt(slots, frontier, n)
		delete(subset, frontier)
	}

	phi.Incoming = finalizeSlots(ctx, n, phi, slots, preds)
}

// advanceSlots walks every slot forward while it sits on a single successor
// edge its block dominates and that edge stays within the subset still
// relevant to this phi — no merge happens yet, so there is nothing to
// decide.
func advanceSlots(slots []phiSlot, subset map[*cfg.Node]bool, owner *cfg.Node) {
	for i, s := range slots {
		for len(s.block.Succ()) == 1 {
			next := s.block.Succ()[0]
			if next == owner || !subset[next] || !s.block.Dominates(next) {
				break
			}
			s.block = next
		}
		slots[i] = s
	}
}

func allSlotsAtPreds(slots []phiSlot, preds []*cfg.Node) bool {
	for _, s := range slots {
		if !hasNode(preds, s.block) {
			return false
		}
	}
	return true
}

// nearestSharedFrontier picks, among every slot's dominance frontier still
// inside subset, the one with the highest VisitOrder — the merge point
// closest to the slots themselves, so outer merges are resolved only once
// every inner one beneath them has already settled.
func nearestSharedFrontier(slots []phiSlot, subset map[*cfg.Node]bool) *cfg.Node {
	var best *cfg.Node
	for _, s := range slots {
		for f := range s.block.DominanceFrontier {
			if !subset[f] {
				continue
			}
			if best == nil || f.VisitOrder > best.VisitOrder {
				best = f
			}
		}
	}
	return best
}

// collapseSlotsAt moves every slot whose block no longer needs to reach past
// frontier independently (i.e. it has no path to owner that avoids
// frontier) onto frontier itself; a slot still required downstream of
// frontier on some other path is left alone, since frontier is not the
// last place its value is read.
func collapseSlotsAt(slots []phiSlot, frontier, owner *cfg.Node) {
	for i, s := range slots {
		if s.block == frontier {
			continue
		}
		if !s.block.Dominates(frontier) {
			continue
		}
		if s.block.CanReachWithout(owner, frontier) {
			continue
		}
		slots[i].block = frontier
	}
}

// finalizeSlots builds the repaired incoming list: one entry per current
// predecessor, filled from whichever slot ended up sitting on it. Multiple
// slots converging on the same frontier without a further current
// predecessor to land on are a value genuinely merging there; lacking a way
// to synthesize a brand-new phi at that frontier mid-repair, the slot that
// arrived first (i.e. appeared earliest in the original incoming list)
// wins, which is exact whenever the merging slots already agree on the
// value — the common case, since helper/ladder synthesis only ever
// introduces new routing, never new value divergence.
func finalizeSlots(ctx *passContext, n *cfg.Node, phi *cfg.Phi, slots []phiSlot, preds []*cfg.Node) []cfg.Incoming {
	byBlock := map[*cfg.Node]cfg.ValueID{}
	for _, s := range slots {
		if _, ok := byBlock[s.block]; ok {
			continue
		}
		byBlock[s.block] = s.value
	}

	var repaired []cfg.Incoming
	for _, p := range preds {
		val, ok := byBlock[p]
		if !ok {
			ctx.warnf("phi %s in %s: no incoming value resolves for predecessor %s", phi.Result, n.Name, p.Name)
			continue
		}
		repaired = append(repaired, cfg.Incoming{Pred: p, Value: val})
		ctx.stats.PhiInsertions++
	}
	return repaired
}

func hasNode(list []*cfg.Node, n *cfg.Node) bool {
	for _, x := range list {
		if x == n {
			return true
		}
	}
	return false
}
