package signal

import (
	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

// SignalData is the payload of a Signal: either a free input, a unary
// operator applied to one operand, or a binary operator applied to two.
// Using a closed interface of concrete structs (rather than a single
// struct with unused fields, or an `any`) keeps each variant's shape
// explicit and lets internal/circuit type-switch over it directly.
type SignalData interface {
	isSignalData()
}

// InputData marks a signal as a free variable with no dependencies.
type InputData struct{}

func (InputData) isSignalData() {}

// UnaryData is a unary operator applied to one operand.
type UnaryData struct {
	Op ops.UnaryOp
	X  Val
}

func (UnaryData) isSignalData() {}

// BinaryData is a binary operator applied to two operands.
type BinaryData struct {
	Op ops.BinaryOp
	L  Val
	R  Val
}

func (BinaryData) isSignalData() {}

// Signal is one node of the growing DAG that symbolic execution builds in
// place of concrete arithmetic. Each signal has a stable id assigned at
// construction time and never recomputed or canonicalized against
// existing signals.
type Signal struct {
	ID   uint64
	Type ops.ValueType
	Data SignalData
}

func newSignal(gen *idgen.Generator, t ops.ValueType, data SignalData) *Signal {
	return &Signal{ID: gen.Gen(), Type: t, Data: data}
}

// NewInput allocates a fresh free-variable signal for a declared input.
func NewInput(gen *idgen.Generator, t ops.ValueType) *Signal {
	return newSignal(gen, t, InputData{})
}

// Dependencies returns the direct operand values of a signal's data, or
// nil for an input. Constant (non-signal) operands are included; callers
// that only care about DAG edges should filter with Val.AsSignal.
func Dependencies(s *Signal) []Val {
	switch d := s.Data.(type) {
	case UnaryData:
		return []Val{d.X}
	case BinaryData:
		return []Val{d.L, d.R}
	default:
		return nil
	}
}
