package circuit

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

// constKey canonicalizes a constant value for deduplication: Bool and
// Number constants live in separate spaces, and Number constants wrap to
// 256-bit two's complement before being compared, so e.g. -1 and the
// field's top element collide deliberately.
type constKey struct {
	isBool bool
	bytes  [32]byte
}

func canonicalizeNumber(n float64) uint256.Int {
	var u uint256.Int
	if n < 0 {
		u.SetUint64(uint64(-n))
		u.Neg(&u)
		return u
	}
	u.SetUint64(uint64(n))
	return u
}

// Builder flattens a signal DAG into a dense, topologically ordered gate
// list. Its core algorithm is iterative rather than recursive so that
// deeply chained expressions (thousands of nested binary operations) don't
// overflow the goroutine's stack during either discovery or emission,
// grounded on the upstream CircuitBuilder's non-recursive worklist
// (original_source/vm/src/circuit_builder.rs).
type Builder struct {
	wireCounter   uint64
	wiresIncluded map[uint64]uint64 // signal id -> wire id
	constants     map[constKey]uint64
	gates         []Gate
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		wiresIncluded: make(map[uint64]uint64),
		constants:     make(map[constKey]uint64),
	}
}

func (b *Builder) allocateWire() uint64 {
	w := b.wireCounter
	b.wireCounter++
	return w
}

// IncludeInputs assigns wire ids [0, len(sigs)) to the given input signals,
// in order, with no gates emitted for them. Must run before any other
// Include call.
func (b *Builder) IncludeInputs(sigs []*signal.Signal) {
	for _, s := range sigs {
		w := b.allocateWire()
		b.wiresIncluded[s.ID] = w
	}
}

// IncludeVal ensures v's full dependency subgraph (and v itself, if it's a
// signal) has been flattened into gates, returning its wire id.
func (b *Builder) IncludeVal(v signal.Val) uint64 {
	w, _ := b.includeValTracked(v)
	return w
}

// includeValTracked is like IncludeVal but also reports whether this call
// is what caused w to be allocated (as opposed to an already-known wire:
// an input, a previously seen constant, or a previously included signal).
func (b *Builder) includeValTracked(v signal.Val) (w uint64, fresh bool) {
	if sig, ok := v.AsSignal(); ok {
		if w, ok := b.wiresIncluded[sig.ID]; ok {
			return w, false
		}
		return b.includeSignal(sig), true
	}
	return b.includeConstTracked(v)
}

func (b *Builder) includeConstTracked(v signal.Val) (uint64, bool) {
	var key constKey
	var value uint256.Int
	switch v.Kind() {
	case signal.KindNumber:
		value = canonicalizeNumber(v.Number())
		key = constKey{bytes: value.Bytes32()}
	case signal.KindBool:
		if v.Bool() {
			value.SetUint64(1)
		}
		key = constKey{isBool: true, bytes: value.Bytes32()}
	default:
		panic("circuit: non-constant, non-signal value reached the builder")
	}
	if w, ok := b.constants[key]; ok {
		return w, false
	}
	w := b.allocateWire()
	b.constants[key] = w
	b.gates = append(b.gates, Gate{Kind: GateConst, Const: value, Out: w})
	return w, true
}

func (b *Builder) resolveOperand(v signal.Val) uint64 {
	if sig, ok := v.AsSignal(); ok {
		w, ok := b.wiresIncluded[sig.ID]
		if !ok {
			panic("circuit: operand signal not yet included")
		}
		return w
	}
	w, _ := b.includeConstTracked(v)
	return w
}

// includeSignal flattens the entire not-yet-included dependency subgraph
// rooted at s and returns s's own wire id.
//
// Phase one walks the subgraph with an explicit stack (no recursion),
// computing each signal's remaining-dependency count and the reverse
// (dependency -> waiting parents) edges. Phase two repeatedly drains the
// current round's "leaves" (signals with zero remaining dependencies),
// processed in sorted-by-id order for determinism, emitting one gate per
// leaf and promoting any parent whose count reaches zero into the next
// round.
func (b *Builder) includeSignal(root *signal.Signal) uint64 {
	if w, ok := b.wiresIncluded[root.ID]; ok {
		return w
	}

	depCount := make(map[uint64]int)
	parents := make(map[uint64][]*signal.Signal)
	leaves := make(map[uint64]*signal.Signal)

	visited := make(map[uint64]bool)
	stack := []*signal.Signal{root}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[s.ID] {
			continue
		}
		if _, ok := b.wiresIncluded[s.ID]; ok {
			continue
		}
		visited[s.ID] = true

		pending := 0
		for _, dv := range signal.Dependencies(s) {
			depSig, ok := dv.AsSignal()
			if !ok {
				continue
			}
			if _, ok := b.wiresIncluded[depSig.ID]; ok {
				continue
			}
			pending++
			parents[depSig.ID] = append(parents[depSig.ID], s)
			if !visited[depSig.ID] {
				stack = append(stack, depSig)
			}
		}
		depCount[s.ID] = pending
		if pending == 0 {
			leaves[s.ID] = s
		}
	}

	for len(leaves) > 0 {
		ids := make([]uint64, 0, len(leaves))
		for id := range leaves {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		next := make(map[uint64]*signal.Signal)
		for _, id := range ids {
			s := leaves[id]
			wire := b.emitGate(s)
			b.wiresIncluded[s.ID] = wire
			for _, parent := range parents[s.ID] {
				depCount[parent.ID]--
				if depCount[parent.ID] == 0 {
					next[parent.ID] = parent
				}
			}
		}
		leaves = next
	}

	return b.wiresIncluded[root.ID]
}

func (b *Builder) emitGate(s *signal.Signal) uint64 {
	switch d := s.Data.(type) {
	case signal.InputData:
		// An input reached here was never registered via IncludeInputs:
		// treat it as a late-bound input rather than failing outright.
		return b.allocateWire()
	case signal.UnaryData:
		x := b.resolveOperand(d.X)
		out := b.allocateWire()
		b.gates = append(b.gates, Gate{Kind: GateUnary, UOp: d.Op, Ins: []uint64{x}, Out: out})
		return out
	case signal.BinaryData:
		l := b.resolveOperand(d.L)
		r := b.resolveOperand(d.R)
		out := b.allocateWire()
		b.gates = append(b.gates, Gate{Kind: GateBinary, BOp: d.Op, Ins: []uint64{l, r}, Out: out})
		return out
	default:
		panic("circuit: unknown signal data variant")
	}
}

// directDependencies returns v's immediate operand values (one layer),
// or nil if v is not a signal.
func directDependencies(v signal.Val) []signal.Val {
	sig, ok := v.AsSignal()
	if !ok {
		return nil
	}
	return signal.Dependencies(sig)
}

// IncludeOutputs flattens every declared output's value, guaranteeing each
// output lands on a freshly allocated wire: when an output's value
// resolves to an already-existing wire (an input, a previously seen
// constant, or a subexpression shared with an earlier output), a no-op
// copy gate is inserted so the set of output wires remains the contiguous
// trailing block of the wire space. Dependencies of every output are
// flattened first so that each output's own processing emits at most one
// new gate.
func (b *Builder) IncludeOutputs(outs []ioobj.Output) map[string]uint64 {
	for _, o := range outs {
		for _, dep := range directDependencies(o.Value) {
			b.IncludeVal(dep)
		}
	}

	result := make(map[string]uint64, len(outs))
	for _, o := range outs {
		wire, fresh := b.includeValTracked(o.Value)
		if !fresh {
			out := b.allocateWire()
			b.gates = append(b.gates, Gate{Kind: GateUnary, UOp: ops.Plus, Ins: []uint64{wire}, Out: out})
			wire = out
		}
		result[o.Name] = wire
	}
	return result
}

// Build assembles the final Circuit from the gates and wire count
// accumulated so far, laying out outputWires in outputNames order.
func (b *Builder) Build(inputNames []string, outputNames []string, outputWires map[string]uint64) *Circuit {
	wires := make([]uint64, len(outputNames))
	for i, n := range outputNames {
		wires[i] = outputWires[n]
	}
	return &Circuit{
		Gates:       b.gates,
		NumWires:    b.wireCounter,
		InputNames:  inputNames,
		OutputNames: outputNames,
		OutputWires: wires,
	}
}
