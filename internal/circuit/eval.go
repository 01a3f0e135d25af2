package circuit

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

// Eval concretely evaluates c over wrapping 256-bit arithmetic (the same
// representation the builder canonicalizes constants into), given one
// value per declared input in InputNames order. It returns one value per
// declared output in OutputNames order. Grounded on the upstream
// CircuitNumber trait's usize implementation
// (original_source/vm/src/circuit.rs), generalized from wrapping 64-bit
// arithmetic to wrapping 256-bit arithmetic.
func (c *Circuit) Eval(inputs []uint256.Int) ([]uint256.Int, error) {
	if len(inputs) != len(c.InputNames) {
		return nil, fmt.Errorf("circuit: expected %d inputs, got %d", len(c.InputNames), len(inputs))
	}

	wires := make([]uint256.Int, c.NumWires)
	copy(wires, inputs)

	for _, g := range c.Gates {
		switch g.Kind {
		case GateConst:
			wires[g.Out] = g.Const
		case GateUnary:
			wires[g.Out] = evalUnary(g.UOp, wires[g.Ins[0]])
		case GateBinary:
			v, err := evalBinary(g.BOp, wires[g.Ins[0]], wires[g.Ins[1]])
			if err != nil {
				return nil, fmt.Errorf("circuit: evaluating wire %d: %w", g.Out, err)
			}
			wires[g.Out] = v
		}
	}

	outs := make([]uint256.Int, len(c.OutputWires))
	for i, w := range c.OutputWires {
		outs[i] = wires[w]
	}
	return outs, nil
}

func boolWord(b bool) uint256.Int {
	var z uint256.Int
	if b {
		z.SetUint64(1)
	}
	return z
}

func evalUnary(op ops.UnaryOp, x uint256.Int) uint256.Int {
	var z uint256.Int
	switch op {
	case ops.Plus:
		return x
	case ops.Minus:
		z.Neg(&x)
		return z
	case ops.Not:
		return boolWord(x.IsZero())
	case ops.BitNot:
		z.Not(&x)
		return z
	default:
		panic(fmt.Sprintf("circuit: unknown unary op %d", op))
	}
}

func evalBinary(op ops.BinaryOp, l, r uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	switch op {
	case ops.Add:
		z.Add(&l, &r)
		return z, nil
	case ops.Sub:
		z.Sub(&l, &r)
		return z, nil
	case ops.Mul:
		z.Mul(&l, &r)
		return z, nil
	case ops.Div:
		if r.IsZero() {
			return z, fmt.Errorf("division by zero")
		}
		z.Div(&l, &r)
		return z, nil
	case ops.Mod:
		if r.IsZero() {
			return z, fmt.Errorf("modulo by zero")
		}
		z.Mod(&l, &r)
		return z, nil
	case ops.Exp:
		z.Exp(&l, &r)
		return z, nil
	case ops.LooseEq, ops.Eq:
		return boolWord(l.Eq(&r)), nil
	case ops.LooseNe, ops.Ne:
		return boolWord(!l.Eq(&r)), nil
	case ops.And:
		return boolWord(!l.IsZero() && !r.IsZero()), nil
	case ops.Or:
		return boolWord(!l.IsZero() || !r.IsZero()), nil
	case ops.Less:
		return boolWord(l.Lt(&r)), nil
	case ops.LessEq:
		return boolWord(!r.Lt(&l)), nil
	case ops.Greater:
		return boolWord(r.Lt(&l)), nil
	case ops.GreaterEq:
		return boolWord(!l.Lt(&r)), nil
	case ops.BitAnd:
		z.And(&l, &r)
		return z, nil
	case ops.BitOr:
		z.Or(&l, &r)
		return z, nil
	case ops.BitXor:
		z.Xor(&l, &r)
		return z, nil
	case ops.LShift:
		z.Lsh(&l, uint(r.Uint64()))
		return z, nil
	case ops.RShift:
		return arithmeticRsh(l, uint(r.Uint64())), nil
	case ops.RShiftUnsigned:
		z.Rsh(&l, uint(r.Uint64()))
		return z, nil
	default:
		return z, fmt.Errorf("unknown binary op %d", op)
	}
}

// arithmeticRsh performs a sign-extending right shift over the 256-bit
// two's complement representation, matching JavaScript's >> as opposed to
// >>> (RShiftUnsigned, a plain logical shift).
func arithmeticRsh(x uint256.Int, n uint) uint256.Int {
	var z uint256.Int
	z.Rsh(&x, n)
	if n == 0 || x.Bit(255) == 0 {
		return z
	}
	var ones uint256.Int
	ones.Not(&ones)
	var mask uint256.Int
	if n >= 256 {
		mask = ones
	} else {
		mask.Lsh(&ones, 256-n)
	}
	z.Or(&z, &mask)
	return z
}
