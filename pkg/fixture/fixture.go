// Package fixture loads a CFG description from JSON or TOML — the format
// CLI input files and test fixtures use — and builds it into a *cfg.Pool
// ready for structurize.Run.
package fixture

import (
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/errors"
)

// Fixture is the canonical serialization format for a CFG: human-writable,
// round-trips through Build without loss of the fields it names (phis and
// terminators are the only instruction-level detail the structurizer
// touches, so nothing else is modeled).
type Fixture struct {
	Entry  string  `json:"entry" toml:"entry"`
	Blocks []Block `json:"blocks" toml:"blocks"`
}

// Block is one basic block.
type Block struct {
	Name       string     `json:"name" toml:"name"`
	Terminator Terminator `json:"terminator" toml:"terminator"`
	Phis       []Phi      `json:"phis,omitempty" toml:"phis,omitempty"`
}

// Terminator mirrors cfg.Terminator in a serializable, name-addressed form.
type Terminator struct {
	Kind        string `json:"kind" toml:"kind"` // return, branch, condition, switch, unreachable
	Target      string `json:"target,omitempty" toml:"target,omitempty"`
	Cond        uint64 `json:"cond,omitempty" toml:"cond,omitempty"`
	TrueTarget  string `json:"true_target,omitempty" toml:"true_target,omitempty"`
	FalseTarget string `json:"false_target,omitempty" toml:"false_target,omitempty"`
	SwitchValue uint64     `json:"switch_value,omitempty" toml:"switch_value,omitempty"`
	Cases       []Case     `json:"cases,omitempty" toml:"cases,omitempty"`
	Default     string     `json:"default,omitempty" toml:"default,omitempty"`
}

// Case is one switch arm.
type Case struct {
	Value  int64  `json:"value" toml:"value"`
	Target string `json:"target" toml:"target"`
}

// Phi mirrors cfg.Phi in name-addressed form.
type Phi struct {
	Result   uint64     `json:"result" toml:"result"`
	Type     uint64     `json:"type" toml:"type"`
	Incoming []Incoming `json:"incoming" toml:"incoming"`
}

// Incoming is one (predecessor name, value) pair.
type Incoming struct {
	Pred  string `json:"pred" toml:"pred"`
	Value uint64 `json:"value" toml:"value"`
}

// LoadJSON reads and parses a JSON fixture file.
func LoadJSON(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadTOML reads and parses a TOML fixture file.
func LoadTOML(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Build allocates a cfg.Pool from f, wiring every terminator and phi by
// block name.
func Build(f *Fixture) (*cfg.Pool, error) {
	pool := cfg.NewPool()
	nodes := make(map[string]*cfg.Node, len(f.Blocks))
	for _, b := range f.Blocks {
		nodes[b.Name] = pool.NewNode(b.Name)
	}

	entry, ok := nodes[f.Entry]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedCFG, "fixture: entry block %q not declared", f.Entry)
	}
	pool.SetEntryBlock(entry)

	lookup := func(name string) (*cfg.Node, error) {
		if name == "" {
			return nil, nil
		}
		n, ok := nodes[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupportedCFG, "fixture: undeclared block %q", name)
		}
		return n, nil
	}

	for _, b := range f.Blocks {
		n := nodes[b.Name]
		term, succs, err := buildTerminator(b.Terminator, lookup)
		if err != nil {
			return nil, err
		}
		n.Terminator = term
		for _, s := range succs {
			n.AddSucc(s)
		}

		for _, p := range b.Phis {
			phi := cfg.Phi{Result: cfg.ValueID(p.Result), Type: cfg.TypeID(p.Type)}
			for _, inc := range p.Incoming {
				pred, err := lookup(inc.Pred)
				if err != nil {
					return nil, err
				}
				phi.Incoming = append(phi.Incoming, cfg.Incoming{Pred: pred, Value: cfg.ValueID(inc.Value)})
			}
			n.Phis = append(n.Phis, phi)
		}
	}
	return pool, nil
}

func buildTerminator(t Terminator, lookup func(string) (*cfg.Node, error)) (cfg.Terminator, []*cfg.Node, error) {
	switch t.Kind {
	case "return", "":
		return cfg.Terminator{Kind: cfg.TermReturn}, nil, nil
	case "unreachable":
		return cfg.Terminator{Kind: cfg.TermUnreachable}, nil, nil
	case "branch":
		target, err := lookup(t.Target)
		if err != nil {
			return cfg.Terminator{}, nil, err
		}
		return cfg.Branch(target), []*cfg.Node{target}, nil
	case "condition":
		trueTarget, err := lookup(t.TrueTarget)
		if err != nil {
			return cfg.Terminator{}, nil, err
		}
		falseTarget, err := lookup(t.FalseTarget)
		if err != nil {
			return cfg.Terminator{}, nil, err
		}
		return cfg.Condition(cfg.ValueID(t.Cond), trueTarget, falseTarget), []*cfg.Node{trueTarget, falseTarget}, nil
	case "switch":
		term := cfg.Terminator{Kind: cfg.TermSwitch, SwitchValue: cfg.ValueID(t.SwitchValue)}
		var succs []*cfg.Node
		for _, c := range t.Cases {
			target, err := lookup(c.Target)
			if err != nil {
				return cfg.Terminator{}, nil, err
			}
			term.Cases = append(term.Cases, cfg.SwitchCase{Value: c.Value, Target: target})
			succs = append(succs, target)
		}
		if t.Default != "" {
			def, err := lookup(t.Default)
			if err != nil {
				return cfg.Terminator{}, nil, err
			}
			term.Default = def
			succs = append(succs, def)
		}
		return term, succs, nil
	default:
		return cfg.Terminator{}, nil, errors.New(errors.ErrCodeUnsupportedCFG, "fixture: unknown terminator kind %q", t.Kind)
	}
}
