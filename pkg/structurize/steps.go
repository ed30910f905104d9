package structurize

import (
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/ir"
)

// Stepper drives the same pipeline Run does, one named step at a time, so a
// caller (the TUI pass viewer) can render the pool's structural annotations
// between steps: reset, dfs, idom, pass0, dfs, pass1, phi, validate.
type Stepper struct {
	pool  *cfg.Pool
	ctx   *passContext
	names []string
	fns   []func() error
	next  int
	err   error
}

// NewStepper prepares a Stepper over pool. diagnostics may be nil.
func NewStepper(pool *cfg.Pool, diagnostics Diagnostics) *Stepper {
	if diagnostics == nil {
		diagnostics = NopDiagnostics{}
	}
	stats := &Stats{}
	ctx := &passContext{pool: pool, diagnostics: diagnostics, builder: ir.NewSequentialBuilder(), stats: stats}

	s := &Stepper{pool: pool, ctx: ctx}
	s.names = []string{"reset", "dfs", "idom", "pass0", "dfs", "pass1", "phi", "validate"}
	s.fns = []func() error{
		s.stepReset,
		s.stepDFS,
		s.stepIdom,
		s.stepPass0,
		s.stepDFS,
		s.stepPass1,
		s.stepPhi,
		s.stepValidate,
	}
	return s
}

// StepNames returns every step's name, in order.
func (s *Stepper) StepNames() []string { return s.names }

// Pos returns how many steps have run so far.
func (s *Stepper) Pos() int { return s.next }

// Done reports whether every step has run.
func (s *Stepper) Done() bool { return s.next >= len(s.fns) }

// Next runs the next step and returns its name, any error it produced, and
// whether that was the last step. Once a step errors, further calls to Next
// are no-ops that keep returning the same error.
func (s *Stepper) Next() (name string, err error, done bool) {
	if s.err != nil || s.Done() {
		return "", s.err, true
	}
	name = s.names[s.next]
	err = s.fns[s.next]()
	s.next++
	if err != nil {
		s.err = err
	}
	return name, err, s.Done()
}

// Result assembles the final Result; only meaningful once Done reports true
// with no error.
func (s *Stepper) Result() *Result {
	var messages []string
	if collecting, ok := s.ctx.diagnostics.(*CollectingDiagnostics); ok {
		messages = collecting.Messages
	}
	return &Result{Stats: *s.ctx.stats, Diagnostics: messages}
}

func (s *Stepper) stepReset() error {
	for _, n := range s.pool.Nodes() {
		n.Reset()
	}
	return nil
}

func (s *Stepper) stepDFS() error {
	return s.pool.DFS()
}

func (s *Stepper) stepIdom() error {
	s.pool.ComputeDominators()
	s.pool.ComputeDominanceFrontiers()
	splitMergeScopes(s.ctx)
	return nil
}

func (s *Stepper) stepPass0() error {
	s.ctx.pass = 0
	if err := recomputeDomInfo(s.pool); err != nil {
		return err
	}
	findLoops(s.ctx)
	findSwitchBlocks(s.ctx)
	findSelectionMerges(s.ctx)
	fixupBrokenSelectionMerges(s.ctx)
	splitMergeBlocks(s.ctx)
	return nil
}

func (s *Stepper) stepPass1() error {
	s.ctx.pass = 1
	if err := recomputeDomInfo(s.pool); err != nil {
		return err
	}
	findLoops(s.ctx)
	findSwitchBlocks(s.ctx)
	findSelectionMerges(s.ctx)
	fixupBrokenSelectionMerges(s.ctx)
	return nil
}

func (s *Stepper) stepPhi() error {
	insertPhi(s.ctx)
	return nil
}

func (s *Stepper) stepValidate() error {
	return validate(s.ctx)
}
