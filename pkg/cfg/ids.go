package cfg

// ValueID identifies an IR value (an SSA definition, a phi result, a
// constant). Zero is reserved for "not yet allocated" — φ incoming pairs
// created by structurization carry ValueID 0 until the frontier block that
// hosts them is actually emitted and the IR builder facade allocates a real
// id for it.
type ValueID uint64

// TypeID identifies an IR type.
type TypeID uint64
