package structurize

import "github.com/ardenhollis/structurize/pkg/cfg"

// isSwitchFallthroughJoin reports whether n is a join a switch already owns:
// either a direct case target of a switch header, or that switch's own
// merge block. The check walks backward from n through predecessors that
// have a single successor, so a join reached only after stepping through one
// or more plain fall-through edges out of a switch case is still caught.
func isSwitchFallthroughJoin(n *cfg.Node) bool {
	seen := map[*cfg.Node]bool{n: true}
	stack := []*cfg.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if directlySwitchRelated(cur) {
			return true
		}
		for _, p := range cur.Pred() {
			if len(p.Succ()) == 1 && !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return false
}

func directlySwitchRelated(n *cfg.Node) bool {
	for _, p := range n.Pred() {
		if p.IsSwitch {
			return true
		}
	}
	for _, h := range n.Headers {
		if h.IsSwitch {
			return true
		}
	}
	return false
}
