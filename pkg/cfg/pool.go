// Package cfg is the core data model: an arena of control-flow-graph nodes
// plus the dominator and traversal services the structurizer builds on. It
// has no knowledge of structurization passes — those live in
// pkg/structurize — and no side effects beyond what callers explicitly do
// through its API.
package cfg

// Pool is the arena that owns every node of one compilation unit's CFG. It
// grants stable *Node references and whole-graph iteration. Helper nodes
// synthesized mid-pass (ladders, selection-merge helpers) are allocated from
// the same pool as the original nodes, and are never freed individually —
// the whole pool is released at the end of compilation by the owner.
//
// Pool is not safe for concurrent use; structurization is single-threaded.
type Pool struct {
	nodes   []*Node
	entry   *Node
	postord []*Node // valid only after DFS; reset on every DFS
}

// NewPool creates an empty arena.
func NewPool() *Pool {
	return &Pool{}
}

// NewNode allocates a new node in the arena. The node has no edges and no
// terminator until the caller sets them.
func (p *Pool) NewNode(name string) *Node {
	n := &Node{Name: name}
	p.nodes = append(p.nodes, n)
	return n
}

// Nodes returns every node ever allocated from this arena, in allocation
// order. Unreachable nodes (never visited by DFS) are included; callers that
// want only reachable blocks should use Postorder after a DFS run.
func (p *Pool) Nodes() []*Node {
	return p.nodes
}

// EntryBlock returns the pool's entry node, or nil if none has been set.
func (p *Pool) EntryBlock() *Node { return p.entry }

// SetEntryBlock sets the pool's entry node. Structurization may reassign
// this when a helper predecessor is spliced in front of the original entry.
func (p *Pool) SetEntryBlock(n *Node) { p.entry = n }

// Postorder returns the most recently computed post-order sequence of
// reachable nodes (valid only after DFS has run; see Pool.DFS).
func (p *Pool) Postorder() []*Node { return p.postord }
