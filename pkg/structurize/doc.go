// Package structurize discovers loop and selection constructs in a reducible
// control-flow graph and rewrites it so that it satisfies the structural
// constraints a target IR demands of it: every multi-successor block
// designates a unique merge block (and, for loops, a continue block), merge
// blocks are dominated by their headers, and only forward edges cross
// construct boundaries.
//
// The entry point is Run, which takes ownership of mutating a *cfg.Pool
// through the full pipeline: reset, DFS, dominators, two structurization
// passes, φ repair, and validation. Traverse then hands the result to a
// caller-supplied Emitter in reverse post-order.
//
// Nothing in this package performs I/O beyond the supplied Diagnostics
// sink; there is no CLI, no environment access, and no persisted state —
// those live in the surrounding repository (internal/cli, internal/httpapi,
// pkg/cache, pkg/audit).
package structurize

import "fmt"

func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }
