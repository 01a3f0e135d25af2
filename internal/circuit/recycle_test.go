package circuit

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

func buildDiamond(t *testing.T) *Circuit {
	t.Helper()
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	a, as := declareInput(t, io, "a", ops.Number)
	bv, bs := declareInput(t, io, "b", ops.Number)
	c, cs := declareInput(t, io, "c", ops.Number)
	d, ds := declareInput(t, io, "d", ops.Number)

	g0, _, err := signal.ApplyBinary(gen, ops.Add, a, bv)
	if err != nil {
		t.Fatalf("g0: %v", err)
	}
	g1, _, err := signal.ApplyBinary(gen, ops.Add, c, d)
	if err != nil {
		t.Fatalf("g1: %v", err)
	}
	out, _, err := signal.ApplyBinary(gen, ops.Add, g0, g1)
	if err != nil {
		t.Fatalf("out: %v", err)
	}
	io.OutputPublic("out", out)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{as, bs, cs, ds})
	outWires := b.IncludeOutputs(io.Outputs())
	return b.Build([]string{"a", "b", "c", "d"}, []string{"out"}, outWires)
}

func TestRecyclePreservesInputIdsAndShrinksWireCount(t *testing.T) {
	circ := buildDiamond(t)
	if circ.NumWires != 7 {
		t.Fatalf("expected the unrecycled diamond to use 7 wires, got %d", circ.NumWires)
	}

	result := Recycle(circ)
	rc := result.Circuit

	if len(result.UnusedInputWires) != 0 {
		t.Fatalf("expected no unused inputs, got %v", result.UnusedInputWires)
	}
	if rc.NumWires >= circ.NumWires {
		t.Fatalf("expected recycling to shrink the wire count below %d, got %d", circ.NumWires, rc.NumWires)
	}
	if len(rc.OutputWires) != 1 || rc.OutputWires[0] != rc.NumWires-1 {
		t.Fatalf("expected the sole output to be the final wire, got %v (NumWires=%d)", rc.OutputWires, rc.NumWires)
	}

	// The inputs a,b,c,d must keep wire ids 0..3 in declaration order, so
	// the first add must still consume wires 0 and 1. (Later gates may reuse
	// an input's slot once its last reader has run.)
	if len(rc.Gates) != 3 {
		t.Fatalf("expected 3 gates, got %d", len(rc.Gates))
	}
	first := rc.Gates[0]
	if first.Ins[0] != 0 || first.Ins[1] != 1 {
		t.Fatalf("expected the first gate to consume inputs 0 and 1, got %v", first.Ins)
	}
}

// buildDuplicateOutput declares two public outputs of the very same
// interior signal: the first claims the signal's own wire, the second
// forces IncludeOutputs to synthesize a COPY gate reading it.
func buildDuplicateOutput(t *testing.T) *Circuit {
	t.Helper()
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	a, as := declareInput(t, io, "a", ops.Number)
	bv, bs := declareInput(t, io, "b", ops.Number)

	sum, _, err := signal.ApplyBinary(gen, ops.Add, a, bv)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	io.OutputPublic("x", sum)
	io.OutputPublic("y", sum)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{as, bs})
	outWires := b.IncludeOutputs(io.Outputs())
	return b.Build([]string{"a", "b"}, []string{"x", "y"}, outWires)
}

func TestRecyclePreservesDuplicateOutputOfSameSignal(t *testing.T) {
	circ := buildDuplicateOutput(t)
	result := Recycle(circ)
	rc := result.Circuit

	if len(rc.OutputWires) != 2 {
		t.Fatalf("expected 2 output wires, got %v", rc.OutputWires)
	}

	outs, err := rc.Eval([]uint256.Int{numWord(3), numWord(4)})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(outs) != 2 || outs[0].Uint64() != 7 || outs[1].Uint64() != 7 {
		t.Fatalf("expected both duplicate outputs to report 7, got %v", outs)
	}
}

func TestRecycleReportsUnusedInput(t *testing.T) {
	gen := idgen.New()
	io := ioobj.New(gen, nil)

	x, xs := declareInput(t, io, "x", ops.Number)
	_, ys := declareInput(t, io, "unused", ops.Number)
	io.OutputPublic("identity", x)

	b := NewBuilder()
	b.IncludeInputs([]*signal.Signal{xs, ys})
	outWires := b.IncludeOutputs(io.Outputs())
	circ := b.Build([]string{"x", "unused"}, []string{"identity"}, outWires)

	result := Recycle(circ)
	if len(result.UnusedInputWires) != 1 || result.UnusedInputWires[0] != 1 {
		t.Fatalf("expected wire 1 (the unused input) to be reported, got %v", result.UnusedInputWires)
	}
}
