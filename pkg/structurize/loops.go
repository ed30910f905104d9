package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// loopExitType classifies a candidate exit edge leaving a loop's natural
// body. InnerLoopExit/InnerLoopMerge exits are owned
// by a nested loop and are skipped when choosing the current header's own
// merge — the nested loop's own discovery pass is responsible for them.
type loopExitType int

const (
	exitKindExit loopExitType = iota
	exitKindMerge
	exitKindEscape
	exitKindInnerLoopExit
	exitKindInnerLoopMerge
)

// findLoops discovers loop headers and their merges. It walks the post-order vector in reverse
// (closest-to-entry headers first, i.e. outer loops before the loops nested
// inside them) and, for every loop header, chooses the header's merge block
// (and, when necessary, its ladder block).
func findLoops(ctx *passContext) {
	order := ctx.pool.Postorder()
	for i := len(order) - 1; i >= 0; i-- {
		header := order[i]

		if header.FreezeStructuredAnalysis && header.Merge == cfg.MergeLoop {
			if header.LoopMergeBlock != nil {
				header.LoopMergeBlock.AddHeader(header)
			}
			continue
		}
		if header.PredBackEdge == nil {
			continue
		}

		body := collectNaturalLoopBody(header)
		exits := findLoopExits(header, body)
		chooseLoopMerge(ctx, header, exits)
	}
}

// collectNaturalLoopBody back-traces from the header's back-edge source to
// the header, collecting every block on some forward path from the header
// back to the tail — the natural loop body.
func collectNaturalLoopBody(header *cfg.Node) map[*cfg.Node]bool {
	body := map[*cfg.Node]bool{header: true}
	tail := header.PredBackEdge
	if tail == nil {
		return body
	}
	body[tail] = true
	stack := []*cfg.Node{tail}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == header {
			continue
		}
		for _, p := range cur.Pred() {
			if body[p] {
				continue
			}
			body[p] = true
			stack = append(stack, p)
		}
	}
	return body
}

// findLoopExits forward-traces from the header, stopping at the loop body's
// boundary; every node reached from inside the body that itself lies
// outside the body is a candidate exit.
func findLoopExits(header *cfg.Node, body map[*cfg.Node]bool) []*cfg.Node {
	seenExit := map[*cfg.Node]bool{}
	var exits []*cfg.Node
	visited := map[*cfg.Node]bool{header: true}
	stack := []*cfg.Node{header}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range cur.Succ() {
			if !body[s] {
				if !seenExit[s] {
					seenExit[s] = true
					exits = append(exits, s)
				}
				continue
			}
			if visited[s] {
				continue
			}
			visited[s] = true
			stack = append(stack, s)
		}
	}
	return exits
}

// getLoopExitType classifies a single exit. The dominance check is the load-
// bearing one for merge selection; the inner-loop checks additionally flag
// exits a nested loop already owns so the outer header's own merge choice
// skips them.
func getLoopExitType(ctx *passContext, header, exit *cfg.Node) loopExitType {
	if owner := nearestLoopHeaderOwning(ctx, exit); owner != nil && owner != header && header.Dominates(owner) {
		if canLoopMergeTo(header, exit) {
			return exitKindInnerLoopMerge
		}
		return exitKindInnerLoopExit
	}
	if !header.Dominates(exit) {
		return exitKindEscape
	}
	if canLoopMergeTo(header, exit) {
		return exitKindMerge
	}
	return exitKindExit
}

// nearestLoopHeaderOwning reports the loop header (if any, other than n
// itself) whose natural body contains n. Used to recognize exits a nested
// loop already claims.
func nearestLoopHeaderOwning(ctx *passContext, n *cfg.Node) *cfg.Node {
	for _, h := range ctx.pool.Postorder() {
		if h.PredBackEdge == nil || h == n {
			continue
		}
		if collectNaturalLoopBody(h)[n] {
			return h
		}
	}
	return nil
}

// canLoopMergeTo is the legality check for routing a loop's merge edge
// directly to candidate: the header must dominate it. (The original
// implementation additionally rejects candidates that would require
// crossing a sibling construct's own merge boundary; this implementation
// folds that refinement into split_merge_blocks's later header-claim
// resolution instead of duplicating the check here — see DESIGN.md.)
func canLoopMergeTo(header, candidate *cfg.Node) bool {
	return header.Dominates(candidate)
}

// chooseLoopMerge picks a loop header's merge and, when needed, its ladder.
func chooseLoopMerge(ctx *passContext, header *cfg.Node, exits []*cfg.Node) {
	header.Merge = cfg.MergeLoop

	var dominated, escaping []*cfg.Node
	for _, e := range exits {
		switch getLoopExitType(ctx, header, e) {
		case exitKindInnerLoopExit, exitKindInnerLoopMerge:
			continue // owned by a nested loop
		case exitKindEscape:
			escaping = append(escaping, e)
		default:
			dominated = append(dominated, e)
		}
	}

	switch {
	case len(dominated) == 0 && len(escaping) == 0:
		header.LoopMergeBlock = nil // infinite loop; validate synthesizes an unreachable merge

	case len(dominated) == 1 && len(escaping) == 0:
		header.LoopMergeBlock = dominated[0]

	case len(dominated) == 0 && len(escaping) == 1:
		header.LoopMergeBlock = escaping[0]
		header.LoopLadderBlock = escaping[0]
		ctx.warnf("loop %s: merging to undominated escape %s via ladder", header.Name, escaping[0].Name)

	case len(escaping) == 0: // multiple dominated exits
		merge := cfg.CommonPostDominator(dominated, nil)
		if merge == nil {
			ctx.warnf("loop %s: no common post-dominator among %d dominated exits", header.Name, len(dominated))
		}
		header.LoopMergeBlock = merge
		if merge != nil && !header.Dominates(merge) {
			header.LoopLadderBlock = merge
		}

	default: // mixed: both dominated and escaping candidates present
		all := append(append([]*cfg.Node{}, dominated...), escaping...)
		merge := cfg.CommonPostDominator(all, nil)
		header.LoopMergeBlock = merge
		if len(dominated) > 0 {
			ladder := cfg.CommonPostDominator(dominated, nil)
			if ladder != nil && canLoopMergeTo(header, ladder) && ladder == merge {
				// the dominated post-dominator already is the chosen merge;
				// no separate ladder target needed.
			} else {
				header.LoopLadderBlock = ladder
			}
		}
	}

	if header.LoopMergeBlock != nil {
		header.LoopMergeBlock.AddHeader(header)
	}
}
