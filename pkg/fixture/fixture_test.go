package fixture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildDiamond(t *testing.T) {
	f := &Fixture{
		Entry: "entry",
		Blocks: []Block{
			{Name: "entry", Terminator: Terminator{Kind: "condition", TrueTarget: "a", FalseTarget: "b"}},
			{Name: "a", Terminator: Terminator{Kind: "branch", Target: "merge"}},
			{Name: "b", Terminator: Terminator{Kind: "branch", Target: "merge"}},
			{Name: "merge", Terminator: Terminator{Kind: "return"}},
		},
	}

	pool, err := Build(f)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if pool.EntryBlock().Name != "entry" {
		t.Fatalf("EntryBlock() = %q, want entry", pool.EntryBlock().Name)
	}
	if len(pool.Nodes()) != 4 {
		t.Fatalf("Nodes() has %d, want 4", len(pool.Nodes()))
	}
}

func TestBuildRejectsUndeclaredTarget(t *testing.T) {
	f := &Fixture{
		Entry: "entry",
		Blocks: []Block{
			{Name: "entry", Terminator: Terminator{Kind: "branch", Target: "ghost"}},
		},
	}
	if _, err := Build(f); err == nil {
		t.Fatalf("expected Build() to reject a branch to an undeclared block")
	}
}

func TestLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diamond.json")
	contents := `{
		"entry": "entry",
		"blocks": [
			{"name": "entry", "terminator": {"kind": "condition", "true_target": "a", "false_target": "b"}},
			{"name": "a", "terminator": {"kind": "branch", "target": "merge"}},
			{"name": "b", "terminator": {"kind": "branch", "target": "merge"}},
			{"name": "merge", "terminator": {"kind": "return"}}
		]
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	f, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	pool, err := Build(f)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(pool.Nodes()) != 4 {
		t.Fatalf("Nodes() has %d, want 4", len(pool.Nodes()))
	}
}
