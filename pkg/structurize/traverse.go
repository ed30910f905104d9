package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/emit"
)

// Traverse drives emitter over pool in structured reverse post-order, in two
// passes. RegisterBlock runs first, over every block in final emission
// order, assigning each its stable ID as it goes; EmitBasicBlock runs
// second, also in emission order. Splitting registration from emission
// means a backend can look ahead to the ID of a merge or continue target it
// hasn't been handed yet, since every block already has one assigned by the
// time emission starts.
//
// Neither pass performs any analysis of its own — Traverse is called on a
// pool Run has already finished, where every header carries its resolved
// Merge/SelectionMergeBlock/LoopMergeBlock, which EmitBasicBlock reads
// directly off the node rather than through a separate callback.
func Traverse(pool *cfg.Pool, emitter emit.Emitter) {
	order := pool.Postorder()

	var next uint32
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		n.ID = next
		next++
		emitter.RegisterBlock(n)
	}

	for i := len(order) - 1; i >= 0; i-- {
		emitter.EmitBasicBlock(order[i])
	}
}
