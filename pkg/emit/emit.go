// Package emit turns a structurized pool into an output format. The only
// contract an Emitter needs to satisfy is Emitter itself; this package
// provides a plain-text emitter used by tests, and a Graphviz DOT/SVG
// renderer for the `structurize dot` subcommand and the per-step DOT files
// of `structurize run --dump-passes`.
package emit

import (
	"fmt"
	"strings"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

// Emitter receives a structurized pool block by block, driven by
// structurize.Traverse in reverse post-order. RegisterBlock runs first over
// every block, in the exact order EmitBasicBlock will later visit them, so
// an implementation can pre-assign anything it needs block IDs for before
// emission begins. EmitBasicBlock runs second and performs the actual
// lowering; a header's merge/continue targets are read straight off the
// node (Merge, SelectionMergeBlock, LoopMergeBlock, PredBackEdge), since by
// the time Traverse runs, construct discovery has already resolved them.
type Emitter interface {
	RegisterBlock(n *cfg.Node)
	EmitBasicBlock(n *cfg.Node)
}

// Text accumulates a human-readable structured listing of a pool, one line
// per block, in the order Traverse visits them.
type Text struct {
	b strings.Builder
}

// RegisterBlock is a no-op for Text: it has no forward-reference lowering
// to prepare, it just renders each block when EmitBasicBlock reaches it.
func (t *Text) RegisterBlock(n *cfg.Node) {}

func (t *Text) EmitBasicBlock(n *cfg.Node) {
	switch n.Merge {
	case cfg.MergeSelection:
		fmt.Fprintf(&t.b, "%s: selection merge -> %s\n", n.Name, n.SelectionMergeBlock.Name)
	case cfg.MergeLoop:
		mergeName := "<none>"
		if n.LoopMergeBlock != nil {
			mergeName = n.LoopMergeBlock.Name
		}
		continueName := "<none>"
		if n.PredBackEdge != nil {
			continueName = n.PredBackEdge.Name
		}
		fmt.Fprintf(&t.b, "%s: loop merge -> %s, continue -> %s\n", n.Name, mergeName, continueName)
	}
	fmt.Fprintf(&t.b, "block %d:%s (preds=%d, succs=%d)\n", n.ID, n.Name, len(n.Pred()), len(n.Succ()))
}

// String returns the accumulated listing.
func (t *Text) String() string {
	return t.b.String()
}
