// Package circuit flattens a signal DAG into an Extended-Bristol gate
// circuit, recycles its wire-id space down to the minimum simultaneously
// live set, and provides a depth analyzer and a concrete evaluator over
// the resulting circuit.
package circuit

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

// GateKind discriminates the three shapes a circuit line can take: a
// literal constant (0 inputs), a unary operator (1 input), or a binary
// operator (2 inputs). Modeling constants as zero-input gates, rather than
// as a side table, lets the builder, recycler, and Bristol codec all treat
// "every wire is either an input or the output of exactly one gate" as a
// single uniform rule.
type GateKind uint8

const (
	GateConst GateKind = iota
	GateUnary
	GateBinary
)

// Gate is one line of the flattened circuit.
type Gate struct {
	Kind  GateKind
	UOp   ops.UnaryOp
	BOp   ops.BinaryOp
	Const uint256.Int // valid iff Kind == GateConst
	Ins   []uint64
	Out   uint64
}

// Mnemonic returns the Extended-Bristol operator name for this gate.
func (g Gate) Mnemonic() string {
	switch g.Kind {
	case GateConst:
		return "CONST"
	case GateUnary:
		return g.UOp.Bristol()
	default:
		return g.BOp.Bristol()
	}
}

// Circuit is a flattened, topologically ordered gate list together with
// the wire-layout metadata needed to render it as Extended-Bristol text:
// dense wire ids [0, NumWires), input wires occupying [0, len(InputNames))
// in declaration order, and output wires occupying the trailing
// [NumWires-len(OutputNames), NumWires) block in declaration order.
type Circuit struct {
	Gates       []Gate
	NumWires    uint64
	InputNames  []string
	OutputNames []string
	OutputWires []uint64 // parallel to OutputNames
}

// NumInputs returns the number of declared input wires.
func (c *Circuit) NumInputs() int { return len(c.InputNames) }

// NumOutputs returns the number of declared output wires.
func (c *Circuit) NumOutputs() int { return len(c.OutputNames) }

// String renders a short human-readable summary, e.g. for a CLI banner.
func (c *Circuit) String() string {
	_, depth := c.Depth()
	return fmt.Sprintf("wires=%d gates=%d inputs=%d outputs=%d depth=%d",
		c.NumWires, len(c.Gates), c.NumInputs(), c.NumOutputs(), depth)
}
