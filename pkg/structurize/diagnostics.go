package structurize

// Diagnostics receives soft, non-fatal warnings emitted while structurizing
// ("no merge target found", "cannot find common merge", "mismatch headers in
// pass 1"). Structurization continues regardless of what Diagnostics does
// with them; the wording is advisory, not part of the contract (spec open
// question: exact text need not be reproduced).
type Diagnostics interface {
	Warnf(format string, args ...any)
}

// NopDiagnostics discards every warning. Useful for tests that only assert
// on structural outcomes.
type NopDiagnostics struct{}

func (NopDiagnostics) Warnf(string, ...any) {}

// FuncDiagnostics adapts a plain function (e.g. a *charmbracelet/log.Logger
// method value) into a Diagnostics.
type FuncDiagnostics func(format string, args ...any)

func (f FuncDiagnostics) Warnf(format string, args ...any) { f(format, args...) }

// CollectingDiagnostics records every warning for later inspection, used by
// tests; Run and Stepper copy its Messages into Result.Diagnostics.
type CollectingDiagnostics struct {
	Messages []string
}

func (c *CollectingDiagnostics) Warnf(format string, args ...any) {
	c.Messages = append(c.Messages, sprintf(format, args...))
}
