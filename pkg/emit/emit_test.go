package emit

import (
	"strings"
	"testing"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

func buildDiamondPool() (*cfg.Pool, map[string]*cfg.Node) {
	p := cfg.NewPool()
	nodes := map[string]*cfg.Node{}
	for _, name := range []string{"entry", "a", "b", "merge"} {
		nodes[name] = p.NewNode(name)
	}
	p.SetEntryBlock(nodes["entry"])
	nodes["entry"].Terminator = cfg.Condition(1, nodes["a"], nodes["b"])
	nodes["entry"].AddSucc(nodes["a"])
	nodes["entry"].AddSucc(nodes["b"])
	nodes["a"].Terminator = cfg.Branch(nodes["merge"])
	nodes["a"].AddSucc(nodes["merge"])
	nodes["b"].Terminator = cfg.Branch(nodes["merge"])
	nodes["b"].AddSucc(nodes["merge"])
	nodes["merge"].Terminator = cfg.Terminator{Kind: cfg.TermReturn}
	return p, nodes
}

func TestTextEmitBlockListsEveryBlock(t *testing.T) {
	pool, nodes := buildDiamondPool()
	var text Text
	for _, name := range []string{"entry", "a", "b", "merge"} {
		text.RegisterBlock(nodes[name])
	}
	for _, name := range []string{"entry", "a", "b", "merge"} {
		text.EmitBasicBlock(nodes[name])
	}
	out := text.String()
	for _, name := range []string{"entry", "a", "b", "merge"} {
		if !strings.Contains(out, ":"+name+" ") {
			t.Fatalf("expected output to mention block %s, got:\n%s", name, out)
		}
	}
	_ = pool
}

func TestTextEmitSelectionMerge(t *testing.T) {
	pool, nodes := buildDiamondPool()
	nodes["entry"].Merge = cfg.MergeSelection
	nodes["entry"].SelectionMergeBlock = nodes["merge"]

	var text Text
	text.EmitBasicBlock(nodes["entry"])
	out := text.String()
	if !strings.Contains(out, "entry: selection merge -> merge") {
		t.Fatalf("unexpected output: %s", out)
	}
	_ = pool
}

func TestToDOTIncludesEveryNodeAndEdge(t *testing.T) {
	pool, _ := buildDiamondPool()
	dot := ToDOT(pool)

	for _, name := range []string{"entry", "a", "b", "merge"} {
		if !strings.Contains(dot, "\""+name+"\"") {
			t.Fatalf("expected DOT output to mention node %s, got:\n%s", name, dot)
		}
	}
	if !strings.Contains(dot, "\"entry\" -> \"a\"") {
		t.Fatalf("expected an entry -> a edge, got:\n%s", dot)
	}
}

func TestToDOTMarksLadderBlocksDashed(t *testing.T) {
	pool, nodes := buildDiamondPool()
	ladder := pool.NewNode("ladder_1")
	ladder.IsLadder = true
	nodes["merge"].AddSucc(ladder)

	dot := ToDOT(pool)
	if !strings.Contains(dot, "dashed") {
		t.Fatalf("expected a dashed style for the ladder block, got:\n%s", dot)
	}
}
