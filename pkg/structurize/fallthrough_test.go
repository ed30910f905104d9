package structurize

import (
	"testing"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

func TestIsSwitchFallthroughJoinDirectCaseTarget(t *testing.T) {
	p := cfg.NewPool()
	sw := p.NewNode("switch")
	sw.IsSwitch = true
	caseA := p.NewNode("caseA")
	sw.AddSucc(caseA)

	if !isSwitchFallthroughJoin(caseA) {
		t.Fatal("expected a direct switch case target to be recognized as a fall-through join")
	}
}

func TestIsSwitchFallthroughJoinChainsThroughFallthroughEdge(t *testing.T) {
	p := cfg.NewPool()
	sw := p.NewNode("switch")
	sw.IsSwitch = true
	caseA := p.NewNode("caseA")
	sw.AddSucc(caseA)

	fallsInto := p.NewNode("fallsInto")
	caseA.Terminator = cfg.Branch(fallsInto)
	caseA.AddSucc(fallsInto)

	if !isSwitchFallthroughJoin(fallsInto) {
		t.Fatal("expected a block reached by falling through a case target to be recognized")
	}
}

func TestIsSwitchFallthroughJoinRejectsUnrelatedBlock(t *testing.T) {
	p := cfg.NewPool()
	n := p.NewNode("plain")
	if isSwitchFallthroughJoin(n) {
		t.Fatal("expected a block with no switch ancestry to not be a fall-through join")
	}
}

func TestIsSwitchFallthroughJoinStopsAtBranchingBlock(t *testing.T) {
	p := cfg.NewPool()
	sw := p.NewNode("switch")
	sw.IsSwitch = true
	caseA := p.NewNode("caseA")
	sw.AddSucc(caseA)

	branch := p.NewNode("branch")
	other := p.NewNode("other")
	caseA.Terminator = cfg.Condition(1, branch, other)
	caseA.AddSucc(branch)
	caseA.AddSucc(other)

	if isSwitchFallthroughJoin(branch) {
		t.Fatal("expected the chain to stop once caseA itself branches instead of falling through")
	}
}
