package circuit

import (
	"testing"

	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

// declareInput is a small test helper standing in for what a program
// driver would do: declare an input and keep its signal for IncludeInputs.
func declareInput(t *testing.T, io *ioobj.IO, name string, ty ops.ValueType) (signal.Val, *signal.Signal) {
	t.Helper()
	v, err := io.Input("alice", name, ty)
	if err != nil {
		t.Fatalf("input %s: %v", name, err)
	}
	sig, ok := v.AsSignal()
	if !ok {
		t.Fatalf("input %s did not produce a signal", name)
	}
	return v, sig
}

func TestBuilderSingleAddGate(t *testing.T) {
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	x, xs := declareInput(t, io, "x", ops.Number)
	y, ys := declareInput(t, io, "y", ops.Number)

	sum, overridden, err := signal.ApplyBinary(gen, ops.Add, x, y)
	if err != nil || !overridden {
		t.Fatalf("apply add: overridden=%v err=%v", overridden, err)
	}
	io.OutputPublic("sum", sum)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{xs, ys})
	outWires := b.IncludeOutputs(io.Outputs())
	circ := b.Build([]string{"x", "y"}, []string{"sum"}, outWires)

	if circ.NumWires != 3 {
		t.Fatalf("expected 3 wires, got %d", circ.NumWires)
	}
	if len(circ.Gates) != 1 {
		t.Fatalf("expected 1 gate, got %d", len(circ.Gates))
	}
	g := circ.Gates[0]
	if g.Kind != GateBinary || g.BOp != ops.Add || g.Ins[0] != 0 || g.Ins[1] != 1 || g.Out != 2 {
		t.Fatalf("unexpected gate: %#v", g)
	}
	if len(circ.OutputWires) != 1 || circ.OutputWires[0] != 2 {
		t.Fatalf("expected output wire 2, got %v", circ.OutputWires)
	}
}

func TestBuilderOutputPreservationForRawInput(t *testing.T) {
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	x, xs := declareInput(t, io, "x", ops.Number)
	io.OutputPublic("identity", x)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{xs})
	outWires := b.IncludeOutputs(io.Outputs())
	circ := b.Build([]string{"x"}, []string{"identity"}, outWires)

	// Output must not alias the input wire: a copy gate is required so the
	// output block stays disjoint from input wire ids.
	if circ.OutputWires[0] == 0 {
		t.Fatalf("output must not alias input wire 0, got %v", circ.OutputWires)
	}
	if len(circ.Gates) != 1 || circ.Gates[0].Kind != GateUnary || circ.Gates[0].UOp != ops.Plus {
		t.Fatalf("expected a single COPY gate, got %#v", circ.Gates)
	}
}

func TestBuilderConstantDeduplication(t *testing.T) {
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	x, xs := declareInput(t, io, "x", ops.Number)

	// x*0 folds to the literal 0 in the simplifier, so this never reaches
	// the builder as a signal at all; build a case that does reach it
	// instead: a subtraction and a multiplication by the same non-folding
	// constant.
	one := signal.NumberVal(5)
	sum1, _, err := signal.ApplyBinary(gen, ops.Sub, x, one)
	if err != nil {
		t.Fatalf("apply sub: %v", err)
	}
	sum2, _, err := signal.ApplyBinary(gen, ops.Mul, x, one)
	if err != nil {
		t.Fatalf("apply mul: %v", err)
	}
	io.OutputPublic("a", sum1)
	io.OutputPublic("b", sum2)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{xs})
	outWires := b.IncludeOutputs(io.Outputs())
	circ := b.Build([]string{"x"}, []string{"a", "b"}, outWires)

	constGates := 0
	for _, g := range circ.Gates {
		if g.Kind == GateConst {
			constGates++
		}
	}
	if constGates != 1 {
		t.Fatalf("expected the constant 5 to be deduplicated to 1 CONST gate, got %d", constGates)
	}
}
