package cfg

import serrors "github.com/ardenhollis/structurize/pkg/errors"

type dfsFrame struct {
	node   *Node
	nextIx int
}

// DFS resets every non-frozen node's transient state, then performs a
// pre-order walk from the entry block using an explicit stack (not
// recursion, per the resource-model's bound on dominated-subtree depth). Any
// edge to a node currently on the stack is classified as a back edge: it is
// asserted unique for both endpoints, recorded in PredBackEdge/SuccBackEdge,
// and stripped from the forward adjacency lists so later analyses never see
// a cycle. Previously stripped back edges are re-attached to the forward
// lists first, so that a second DFS re-derives the same classification from
// scratch rather than accumulating state across runs.
//
// After the walk, every visited node with more than two forward successors
// is marked IsSwitch.
func (p *Pool) DFS() error {
	p.reattachBackEdges()
	for _, n := range p.nodes {
		n.Reset()
	}

	p.postord = p.postord[:0]
	if p.entry == nil {
		return nil
	}

	counter := 0
	stack := []*dfsFrame{{node: p.entry}}
	p.entry.traversing = true
	p.entry.visited = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		b := top.node
		if top.nextIx < len(b.succ) {
			s := b.succ[top.nextIx]
			top.nextIx++
			if s.traversing {
				if err := recordBackEdge(b, s); err != nil {
					return err
				}
				continue
			}
			if s.visited {
				continue
			}
			s.visited = true
			s.traversing = true
			stack = append(stack, &dfsFrame{node: s})
			continue
		}
		stack = stack[:len(stack)-1]
		b.traversing = false
		b.VisitOrder = counter
		counter++
		p.postord = append(p.postord, b)
	}

	for _, n := range p.postord {
		if len(n.succ) > 2 {
			n.IsSwitch = true
		}
	}
	return nil
}

func recordBackEdge(from, to *Node) error {
	if from.SuccBackEdge != nil && from.SuccBackEdge != to {
		return serrors.New(serrors.ErrCodeMultipleBackEdges,
			"node %q already has a back edge to %q, cannot also close %q",
			from.Name, from.SuccBackEdge.Name, to.Name)
	}
	if to.PredBackEdge != nil && to.PredBackEdge != from {
		return serrors.New(serrors.ErrCodeMultipleBackEdges,
			"header %q already has a back edge from %q, cannot also accept %q",
			to.Name, to.PredBackEdge.Name, from.Name)
	}
	from.SuccBackEdge = to
	to.PredBackEdge = from
	from.succ = removeFirst(from.succ, to)
	to.pred = removeFirst(to.pred, from)
	return nil
}

// reattachBackEdges re-inserts every back edge into the forward adjacency
// lists so the next DFS can re-derive (and re-strip) the classification from
// a clean slate.
func (p *Pool) reattachBackEdges() {
	for _, n := range p.nodes {
		if n.SuccBackEdge != nil {
			to := n.SuccBackEdge
			if !containsNode(n.succ, to) {
				n.succ = append(n.succ, to)
			}
			if !containsNode(to.pred, n) {
				to.pred = append(to.pred, n)
			}
			n.SuccBackEdge = nil
			to.PredBackEdge = nil
		}
	}
}

func containsNode(list []*Node, target *Node) bool {
	for _, n := range list {
		if n == target {
			return true
		}
	}
	return false
}

// ComputeDominators assigns ImmediateDominator to every reachable node using
// the standard reverse-postorder fixed-point intersection (Cooper-Harvey-
// Kennedy style): each node's idom is the intersection, along the idom
// chain, of the idoms of its already-processed forward predecessors. Must
// run after DFS. The entry node's ImmediateDominator is set to itself as a
// sentinel (no parent).
func (p *Pool) ComputeDominators() {
	order := p.postord
	if len(order) == 0 {
		return
	}
	entry := order[len(order)-1]
	entry.ImmediateDominator = entry

	changed := true
	for changed {
		changed = false
		for i := len(order) - 2; i >= 0; i-- {
			n := order[i]
			var newIdom *Node
			for _, pr := range n.pred {
				if pr.ImmediateDominator == nil {
					continue
				}
				if newIdom == nil {
					newIdom = pr
					continue
				}
				newIdom = intersect(newIdom, pr)
			}
			if newIdom == nil {
				continue
			}
			if n.ImmediateDominator != newIdom {
				n.ImmediateDominator = newIdom
				changed = true
			}
		}
	}
}

func intersect(a, b *Node) *Node {
	for a != b {
		for a.VisitOrder < b.VisitOrder {
			a = a.ImmediateDominator
		}
		for b.VisitOrder < a.VisitOrder {
			b = b.ImmediateDominator
		}
	}
	return a
}

// ComputeDominanceFrontiers fills in DominanceFrontier for every reachable
// node: for each node H, every successor S of any node H dominates, where H
// does not dominate S, is added to H's frontier. Used only by φ repair.
func (p *Pool) ComputeDominanceFrontiers() {
	for _, n := range p.postord {
		n.DominanceFrontier = nil
	}
	for _, n := range p.postord {
		if len(n.pred) < 2 {
			continue
		}
		for _, pr := range n.pred {
			runner := pr
			for runner != nil && runner != n.ImmediateDominator {
				if runner.DominanceFrontier == nil {
					runner.DominanceFrontier = make(map[*Node]struct{})
				}
				runner.DominanceFrontier[n] = struct{}{}
				if runner.ImmediateDominator == runner {
					break
				}
				runner = runner.ImmediateDominator
			}
		}
	}
}

// CommonPostDominator walks forward from each of candidates along each
// node's unique successor chain... in general forward CFGs have no such
// single chain, so instead this computes the common post-dominator via
// iterated intersection of each candidate's set of post-dominating
// ancestors in the *reverse* graph, restricted to nodes not in ignore.
// Returns nil if no common post-dominator exists (e.g. one candidate can
// reach an exit without passing through any node the others also reach).
func CommonPostDominator(candidates []*Node, ignore map[*Node]bool) *Node {
	if len(candidates) == 0 {
		return nil
	}
	sets := make([]map[*Node]bool, len(candidates))
	for i, c := range candidates {
		sets[i] = postDominatorsOf(c, ignore)
	}
	common := sets[0]
	for _, s := range sets[1:] {
		next := map[*Node]bool{}
		for n := range common {
			if s[n] {
				next[n] = true
			}
		}
		common = next
	}
	if len(common) == 0 {
		return nil
	}
	// Postorder numbering in this package runs higher near the candidates
	// and lower toward the exit (ComputeDominators, ComputeDominanceFrontiers
	// and nearestSharedFrontier in pkg/structurize/phi.go all rely on this),
	// so the nearest common post-dominator — the innermost one, immediately
	// past the candidates rather than an arbitrary block further down a
	// shared tail — is the one with the largest VisitOrder in common.
	var best *Node
	for n := range common {
		if best == nil || n.VisitOrder > best.VisitOrder {
			best = n
		}
	}
	return best
}

// postDominatorsOf returns every node reachable forward from n (including n)
// that every forward path from n eventually passes through, restricted to
// nodes not in ignore. This is computed as: a node S is a post-dominator of n
// iff every path from n reaches S. We approximate this with a conservative
// forward BFS/worklist fixed point over "must reach" sets, which is correct
// for the acyclic forward graph structurization operates on (back edges are
// stripped before this runs).
func postDominatorsOf(n *Node, ignore map[*Node]bool) map[*Node]bool {
	// Collect the forward-reachable subgraph from n.
	reachable := map[*Node]bool{n: true}
	order := []*Node{n}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range cur.succ {
			if ignore[s] || reachable[s] {
				continue
			}
			reachable[s] = true
			order = append(order, s)
			stack = append(stack, s)
		}
	}

	// order is discovery order from n; the dataflow below iterates to a
	// fixed point, so it stays correct for any forward DAG shape.
	must := map[*Node]map[*Node]bool{}
	for _, node := range order {
		must[node] = nil
	}

	changed := true
	for changed {
		changed = false
		for _, node := range order {
			succs := make([]*Node, 0, len(node.succ))
			for _, s := range node.succ {
				if reachable[s] && !ignore[s] {
					succs = append(succs, s)
				}
			}
			var set map[*Node]bool
			if len(succs) == 0 {
				set = map[*Node]bool{node: true}
			} else {
				set = intersectSets(must, succs)
				set[node] = true
			}
			if !sameSet(must[node], set) {
				must[node] = set
				changed = true
			}
		}
	}
	if must[n] == nil {
		return map[*Node]bool{n: true}
	}
	return must[n]
}

func intersectSets(must map[*Node]map[*Node]bool, nodes []*Node) map[*Node]bool {
	if len(nodes) == 0 {
		return map[*Node]bool{}
	}
	first := must[nodes[0]]
	if first == nil {
		first = map[*Node]bool{nodes[0]: true}
	}
	result := map[*Node]bool{}
	for k := range first {
		result[k] = true
	}
	for _, n := range nodes[1:] {
		s := must[n]
		if s == nil {
			s = map[*Node]bool{n: true}
		}
		for k := range result {
			if !s[k] {
				delete(result, k)
			}
		}
	}
	return result
}

func sameSet(a, b map[*Node]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// ReachableSubset returns the set of nodes reachable forward from any of
// roots, stopping at (but including) stop. Used by φ repair to bound the
// search for dominance frontiers shared by an incoming set.
func ReachableSubset(roots []*Node, stop *Node) map[*Node]bool {
	set := map[*Node]bool{}
	stack := append([]*Node{}, roots...)
	for _, r := range roots {
		set[r] = true
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == stop {
			continue
		}
		for _, s := range cur.succ {
			if set[s] {
				continue
			}
			set[s] = true
			stack = append(stack, s)
		}
	}
	return set
}
