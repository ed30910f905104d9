package cfg

// Incoming is one (predecessor, value) pair feeding a Phi.
type Incoming struct {
	Pred  *Node
	Value ValueID
}

// Phi is a value-selection node at a join, carrying one incoming value per
// predecessor of its owning block. After structurization the incoming set
// is not guaranteed to match Node.pred until insertPhi repairs it (see
// pkg/structurize's phi repair pass).
type Phi struct {
	Result   ValueID
	Type     TypeID
	Incoming []Incoming
}

// IncomingFrom returns the incoming pair from pred and true if present.
func (p *Phi) IncomingFrom(pred *Node) (Incoming, bool) {
	for _, in := range p.Incoming {
		if in.Pred == pred {
			return in, true
		}
	}
	return Incoming{}, false
}

// RemoveIncoming deletes the incoming pair from pred, if any.
func (p *Phi) RemoveIncoming(pred *Node) {
	out := p.Incoming[:0]
	for _, in := range p.Incoming {
		if in.Pred != pred {
			out = append(out, in)
		}
	}
	p.Incoming = out
}

// AddIncoming appends an incoming pair, replacing any existing pair from the
// same predecessor.
func (p *Phi) AddIncoming(pred *Node, value ValueID) {
	for i := range p.Incoming {
		if p.Incoming[i].Pred == pred {
			p.Incoming[i].Value = value
			return
		}
	}
	p.Incoming = append(p.Incoming, Incoming{Pred: pred, Value: value})
}
