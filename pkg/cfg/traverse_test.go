package cfg

import "testing"

func buildDiamond() (*Pool, *Node, *Node, *Node, *Node) {
	p := NewPool()
	entry := p.NewNode("entry")
	a := p.NewNode("a")
	b := p.NewNode("b")
	merge := p.NewNode("merge")
	p.SetEntryBlock(entry)

	entry.Terminator = Condition(1, a, b)
	entry.AddSucc(a)
	entry.AddSucc(b)
	a.Terminator = Branch(merge)
	a.AddSucc(merge)
	b.Terminator = Branch(merge)
	b.AddSucc(merge)
	merge.Terminator = Terminator{Kind: TermReturn}
	return p, entry, a, b, merge
}

func TestDFSAssignsPostorder(t *testing.T) {
	p, entry, _, _, merge := buildDiamond()

	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	if merge.VisitOrder >= entry.VisitOrder {
		t.Fatalf("merge.VisitOrder = %d, want less than entry.VisitOrder = %d", merge.VisitOrder, entry.VisitOrder)
	}
	if len(p.Postorder()) != 4 {
		t.Fatalf("Postorder() has %d nodes, want 4", len(p.Postorder()))
	}
}

func TestDFSRejectsConflictingBackEdges(t *testing.T) {
	p := NewPool()
	h := p.NewNode("h")
	x := p.NewNode("x")
	y := p.NewNode("y")
	p.SetEntryBlock(h)

	h.Terminator = Condition(1, x, y)
	h.AddSucc(x)
	h.AddSucc(y)
	x.Terminator = Branch(h)
	x.AddSucc(h)
	y.Terminator = Branch(h)
	y.AddSucc(h)

	if err := p.DFS(); err == nil {
		t.Fatalf("expected DFS() to reject two back edges into the same header")
	}
}

func TestComputeDominatorsDiamond(t *testing.T) {
	p, entry, a, b, merge := buildDiamond()
	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	p.ComputeDominators()

	if a.ImmediateDominator != entry || b.ImmediateDominator != entry {
		t.Fatalf("expected entry to dominate both branches")
	}
	if merge.ImmediateDominator != entry {
		t.Fatalf("merge.ImmediateDominator = %v, want entry", merge.ImmediateDominator)
	}
	if !entry.Dominates(merge) {
		t.Fatalf("expected entry to dominate merge")
	}
	if a.Dominates(merge) {
		t.Fatalf("did not expect a to dominate merge")
	}
}

func TestCommonPostDominatorDiamond(t *testing.T) {
	p, _, a, b, merge := buildDiamond()
	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	p.ComputeDominators()

	got := CommonPostDominator([]*Node{a, b}, nil)
	if got != merge {
		t.Fatalf("CommonPostDominator(a, b) = %v, want merge", got)
	}
}

// buildDiamondWithTail extends buildDiamond with a single-successor chain
// past merge (merge -> next -> ret), so a and b's common post-dominator set
// contains more than one candidate: merge, next, and ret all post-dominate
// both branches, but only merge is the nearest one.
func buildDiamondWithTail() (p *Pool, a, b, merge, next, ret *Node) {
	p, _, a, b, merge = buildDiamond()
	next = p.NewNode("next")
	ret = p.NewNode("ret")
	merge.Terminator = Branch(next)
	merge.AddSucc(next)
	next.Terminator = Branch(ret)
	next.AddSucc(ret)
	ret.Terminator = Terminator{Kind: TermReturn}
	return p, a, b, merge, next, ret
}

func TestCommonPostDominatorPicksNearestNotFurthestCandidate(t *testing.T) {
	p, a, b, merge, _, ret := buildDiamondWithTail()
	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	p.ComputeDominators()

	if ret.VisitOrder >= merge.VisitOrder {
		t.Fatalf("ret.VisitOrder = %d, want less than merge.VisitOrder = %d", ret.VisitOrder, merge.VisitOrder)
	}

	got := CommonPostDominator([]*Node{a, b}, nil)
	if got != merge {
		t.Fatalf("CommonPostDominator(a, b) = %v, want nearest common post-dominator merge (not a downstream block like ret)", got)
	}
}

func TestNodeCanReachWithout(t *testing.T) {
	p, entry, a, _, merge := buildDiamond()
	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}

	if !entry.CanReachWithout(merge, nil) {
		t.Fatalf("expected entry to reach merge")
	}
	if entry.CanReachWithout(merge, a) {
		// entry can still reach merge via b even when avoiding a
	}
	if a.CanReachWithout(entry, nil) {
		t.Fatalf("did not expect a to reach entry")
	}
}
