// Package ir is the minimal IR-builder facade the structurizer uses to
// synthesize helper blocks: it allocates value ids, bool/uint types, and
// bool constants, and can attach a debug name to a value. It assumes no
// other capability of the real IR — the structurizer never inspects,
// reorders, or emits instructions itself.
package ir

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ardenhollis/structurize/pkg/cfg"
)

// Builder is the facade consumed by helper-block synthesis.
type Builder interface {
	// AllocValue reserves a fresh value id.
	AllocValue() cfg.ValueID
	// BoolType returns the type id for the builtin boolean type.
	BoolType() cfg.TypeID
	// BoolConstant returns the value id of a bool constant with the given
	// literal value. Repeated calls with the same value may return the same
	// id (constant pooling is an implementation choice).
	BoolConstant(value bool) cfg.ValueID
	// UintType returns the type id for an unsigned integer type of the
	// given bit width.
	UintType(bits int) cfg.TypeID
	// AddName attaches a debug name to a previously allocated value.
	AddName(id cfg.ValueID, name string)
}

// SequentialBuilder is a reference Builder that allocates sequential value
// and type ids. Suitable for the CLI, the HTTP API, and tests — anywhere a
// full downstream IR builder isn't available. Debug names are whatever
// AddName attaches; helper block names come from NewHelperDebugName, which
// appends a short uuid-derived id so they stay distinguishable across runs.
type SequentialBuilder struct {
	nextValue uint64
	nextType  uint64

	boolType    cfg.TypeID
	boolTypeSet bool
	trueConst   cfg.ValueID
	falseConst  cfg.ValueID
	boolConstSet bool

	uintTypes map[int]cfg.TypeID

	names map[cfg.ValueID]string
}

// NewSequentialBuilder creates a Builder with fresh counters.
func NewSequentialBuilder() *SequentialBuilder {
	return &SequentialBuilder{
		uintTypes: make(map[int]cfg.TypeID),
		names:     make(map[cfg.ValueID]string),
	}
}

func (b *SequentialBuilder) AllocValue() cfg.ValueID {
	b.nextValue++
	return cfg.ValueID(b.nextValue)
}

func (b *SequentialBuilder) allocType() cfg.TypeID {
	b.nextType++
	return cfg.TypeID(b.nextType)
}

func (b *SequentialBuilder) BoolType() cfg.TypeID {
	if !b.boolTypeSet {
		b.boolType = b.allocType()
		b.boolTypeSet = true
	}
	return b.boolType
}

func (b *SequentialBuilder) BoolConstant(value bool) cfg.ValueID {
	if !b.boolConstSet {
		b.trueConst = b.AllocValue()
		b.AddName(b.trueConst, "true")
		b.falseConst = b.AllocValue()
		b.AddName(b.falseConst, "false")
		b.boolConstSet = true
	}
	if value {
		return b.trueConst
	}
	return b.falseConst
}

func (b *SequentialBuilder) UintType(bits int) cfg.TypeID {
	if t, ok := b.uintTypes[bits]; ok {
		return t
	}
	t := b.allocType()
	b.uintTypes[bits] = t
	b.AddName(cfg.ValueID(t), fmt.Sprintf("uint%d", bits))
	return t
}

func (b *SequentialBuilder) AddName(id cfg.ValueID, name string) {
	b.names[id] = name
}

// Name returns the debug name previously attached to id, if any.
func (b *SequentialBuilder) Name(id cfg.ValueID) (string, bool) {
	n, ok := b.names[id]
	return n, ok
}

var helperSeq atomic.Uint64

// NewHelperDebugName returns a short, collision-resistant debug name for a
// synthesized helper block, e.g. "ladder_3_3f9a1c2d". The uuid suffix keeps
// repeated runs of the structurizer over the same input distinguishable in
// dumped CFGs even though the sequence counter alone would already be
// unique within one run.
func NewHelperDebugName(kind string) string {
	n := helperSeq.Add(1)
	id := uuid.New()
	return fmt.Sprintf("%s_%d_%s", kind, n, id.String()[:8])
}
