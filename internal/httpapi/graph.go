package httpapi

import "github.com/ardenhollis/structurize/pkg/cfg"

// GraphView is the wire representation of a structurized CFG: enough to
// reconstruct merge/continue annotations client-side without exposing the
// pool's internal pointers.
type GraphView struct {
	Entry  string      `json:"entry"`
	Blocks []BlockView `json:"blocks"`
}

// BlockView is one block's structural annotations plus its adjacency.
type BlockView struct {
	Name           string   `json:"name"`
	Merge          string   `json:"merge"`
	SelectionMerge string   `json:"selection_merge,omitempty"`
	LoopMerge      string   `json:"loop_merge,omitempty"`
	LoopContinue   string   `json:"loop_continue,omitempty"`
	LoopLadder     string   `json:"loop_ladder,omitempty"`
	IsLadder       bool     `json:"is_ladder,omitempty"`
	Succ           []string `json:"succ,omitempty"`
	Pred           []string `json:"pred,omitempty"`
}

func buildGraphView(pool *cfg.Pool) GraphView {
	view := GraphView{}
	if entry := pool.EntryBlock(); entry != nil {
		view.Entry = entry.Name
	}
	for _, n := range pool.Nodes() {
		bv := BlockView{
			Name:     n.Name,
			Merge:    n.Merge.String(),
			IsLadder: n.IsLadder,
			Succ:     names(n.Succ()),
			Pred:     names(n.Pred()),
		}
		if n.SelectionMergeBlock != nil {
			bv.SelectionMerge = n.SelectionMergeBlock.Name
		}
		if n.LoopMergeBlock != nil {
			bv.LoopMerge = n.LoopMergeBlock.Name
		}
		if n.LoopLadderBlock != nil {
			bv.LoopLadder = n.LoopLadderBlock.Name
		}
		if n.PredBackEdge != nil {
			bv.LoopContinue = n.PredBackEdge.Name
		}
		view.Blocks = append(view.Blocks, bv)
	}
	return view
}

func names(nodes []*cfg.Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}
