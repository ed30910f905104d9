package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/errors"
)

// validate checks the structural invariants a structurized pool must hold over a finished
// run. It returns the first hard (invariant-tier) violation it finds;
// anything softer is reported through ctx.diagnostics and does not stop the
// check from examining the rest of the graph. A loop header left without a
// merge (an infinite loop) gets an unreachable placeholder merge first.
func validate(ctx *passContext) error {
	for _, n := range ctx.pool.Postorder() {
		if n.Merge == cfg.MergeLoop && n.LoopMergeBlock == nil {
			n.LoopMergeBlock = ctx.newUnreachableMerge(n, "unreachable")
			n.LoopMergeBlock.AddHeader(n)
		}
		if err := validateHeaderClaims(n); err != nil {
			return err
		}
		if err := validateMergeShape(n); err != nil {
			return err
		}
		if err := validatePhis(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// validateHeaderClaims enforces the unique-merge invariant: after
// splitMergeBlocks every block is claimed by at most one header.
func validateHeaderClaims(n *cfg.Node) error {
	if len(n.Headers) > 1 {
		return errors.New(errors.ErrCodeHeaderMismatch, "block %s is claimed as a merge by more than one header", n.Name)
	}
	return nil
}

// validateMergeShape checks that a header's declared merge construct is
// internally consistent: a Selection header has a merge block it dominates,
// and a Loop header has the back edge that justifies the classification.
func validateMergeShape(n *cfg.Node) error {
	switch n.Merge {
	case cfg.MergeSelection:
		if n.SelectionMergeBlock == nil {
			return errors.New(errors.ErrCodeMissingMergeBlock, "selection header %s has no merge block", n.Name)
		}
		if !n.Dominates(n.SelectionMergeBlock) {
			return errors.New(errors.ErrCodeUnmergedHeaders, "selection header %s does not dominate its merge block %s", n.Name, n.SelectionMergeBlock.Name)
		}
	case cfg.MergeLoop:
		if n.PredBackEdge == nil && !n.FreezeStructuredAnalysis {
			return errors.New(errors.ErrCodeHeaderChainBroken, "loop header %s has no back edge", n.Name)
		}
		if n.LoopMergeBlock != nil && !n.Dominates(n.LoopMergeBlock) {
			// a loop merging to an undominated escape is allowed (findLoops
			// records it and warns); only flag it here if no ladder exists
			// to route the escape legally.
			if n.LoopLadderBlock == nil {
				return errors.New(errors.ErrCodeNoMergeTarget, "loop header %s merges to undominated block %s with no ladder", n.Name, n.LoopMergeBlock.Name)
			}
		}
	}
	return nil
}

// validatePhis checks that every phi's incoming list names only blocks that
// are still actual predecessors, one entry per predecessor, no more and no
// fewer — the invariant insertPhi exists to restore.
func validatePhis(ctx *passContext, n *cfg.Node) error {
	for _, phi := range n.Phis {
		for _, inc := range phi.Incoming {
			if !hasNode(n.Pred(), inc.Pred) {
				return errors.New(errors.ErrCodePhiOutOfPreds, "phi %s names non-predecessor %s", n.Name, inc.Pred.Name)
			}
		}
		if len(phi.Incoming) != len(n.Pred()) {
			ctx.warnf("phi in %s: %d incoming entries for %d predecessors", n.Name, len(phi.Incoming), len(n.Pred()))
		}
	}
	return nil
}
