package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/errors"
	"github.com/ardenhollis/structurize/pkg/ir"
)

// Run structurizes pool in place: every header ends up with a unique,
// dominated merge (loops additionally with a unique continue and, where
// needed, a ladder), every phi's incoming list matches its block's current
// predecessors, and every ladder condition value is allocated and named
// through builder.
//
// Runs an initial DFS and
// dominance computation, split_merge_scopes (serializing nested
// multi-break selections into ladder chains before discovery ever sees
// them), two structurization passes — pass 0 additionally runs
// split_merge_blocks, since it is the only pass allowed to introduce new
// merge-claiming blocks — and a closing phi repair and validation.
func Run(pool *cfg.Pool, builder ir.Builder, diagnostics Diagnostics) (result *Result, err error) {
	defer errors.Recover(&err)

	if diagnostics == nil {
		diagnostics = NopDiagnostics{}
	}
	if builder == nil {
		builder = ir.NewSequentialBuilder()
	}

	stats := &Stats{}
	ctx := &passContext{pool: pool, diagnostics: diagnostics, builder: builder, stats: stats}

	if err := recomputeDomInfo(pool); err != nil {
		return nil, err
	}
	splitMergeScopes(ctx)

	for pass := 0; pass <= 1; pass++ {
		ctx.pass = pass
		if err := recomputeDomInfo(pool); err != nil {
			return nil, err
		}
		findLoops(ctx)
		findSwitchBlocks(ctx)
		findSelectionMerges(ctx)
		fixupBrokenSelectionMerges(ctx)
		if pass == 0 {
			splitMergeBlocks(ctx)
		}
	}

	insertPhi(ctx)

	if err := validate(ctx); err != nil {
		return nil, err
	}

	var messages []string
	if collecting, ok := diagnostics.(*CollectingDiagnostics); ok {
		messages = collecting.Messages
	}
	return &Result{Stats: *stats, Diagnostics: messages}, nil
}

func recomputeDomInfo(pool *cfg.Pool) error {
	if err := pool.DFS(); err != nil {
		return err
	}
	pool.ComputeDominators()
	pool.ComputeDominanceFrontiers()
	return nil
}
