package structurize

import (
	"testing"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

func TestInsertPhiRepairsIncomingAfterLaddering(t *testing.T) {
	p, nodes := newNestedMultiBreak()
	m := nodes["m"]

	m.Phis = []cfg.Phi{{
		Result: 100,
		Type:   1,
		Incoming: []cfg.Incoming{
			{Pred: nodes["a"], Value: 1},
			{Pred: nodes["b"], Value: 2},
			{Pred: nodes["c"], Value: 3},
			{Pred: nodes["d"], Value: 4},
		},
	}}

	if _, err := Run(p, nil, nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	phi := m.Phis[0]
	if len(phi.Incoming) != len(m.Pred()) {
		t.Fatalf("phi has %d incoming entries for %d predecessors", len(phi.Incoming), len(m.Pred()))
	}
	for _, inc := range phi.Incoming {
		if !hasNode(m.Pred(), inc.Pred) {
			t.Fatalf("phi incoming %s is not a current predecessor of m", inc.Pred.Name)
		}
	}
}

func TestRepairPhiIncomingAdvancesThroughSingleSuccessorChain(t *testing.T) {
	p := cfg.NewPool()
	a := p.NewNode("a")
	h := p.NewNode("h")
	b := p.NewNode("b")
	p.SetEntryBlock(a)

	a.Terminator = cfg.Branch(h)
	a.AddSucc(h)
	h.Terminator = cfg.Branch(b)
	h.AddSucc(b)
	b.Terminator = cfg.Terminator{Kind: cfg.TermReturn}

	if err := p.DFS(); err != nil {
		t.Fatalf("DFS() error: %v", err)
	}
	p.ComputeDominators()

	b.Phis = []cfg.Phi{{Result: 1, Type: 1, Incoming: []cfg.Incoming{{Pred: a, Value: 42}}}}

	ctx := &passContext{pool: p, stats: &Stats{}}
	repairPhiIncoming(ctx, b, &b.Phis[0])

	got := b.Phis[0].Incoming
	if len(got) != 1 || got[0].Pred != h || got[0].Value != 42 {
		t.Fatalf("expected phi to advance onto h carrying value 42, got %+v", got)
	}
}
