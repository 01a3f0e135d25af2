package signal

import (
	"fmt"

	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

// ApplyUnary is the unary operator-override entry point. It reports
// overridden=false when neither operand condition for symbolic execution
// is met (x is not numeric-or-bool, or x is a plain concrete value), in
// which case the caller should fall back to its own concrete evaluation.
func ApplyUnary(gen *idgen.Generator, op ops.UnaryOp, x Val) (result Val, overridden bool, err error) {
	if _, ok := x.NumericOrBoolType(); !ok {
		return Val{}, false, nil
	}
	if !x.IsSignal() {
		return Val{}, false, nil
	}
	sig := newSignal(gen, op.ResultType(), UnaryData{Op: op, X: x})
	return SignalVal(sig), true, nil
}

// ApplyBinary is the binary operator-override entry point. See ApplyUnary
// for the overridden=false contract.
func ApplyBinary(gen *idgen.Generator, op ops.BinaryOp, left, right Val) (result Val, overridden bool, err error) {
	lt, lok := left.NumericOrBoolType()
	rt, rok := right.NumericOrBoolType()
	if !lok || !rok {
		return Val{}, false, nil
	}
	if !left.IsSignal() && !right.IsSignal() {
		return Val{}, false, nil
	}
	v, err := simplifyBinary(gen, op, left, right, lt, rt)
	if err != nil {
		return Val{}, true, err
	}
	return v, true, nil
}

// simplifyBinaryAuto re-applies the simplifier to a pair of values that are
// already known to be numeric-or-bool, regardless of whether either is a
// signal (used to recursively fold the a∨b factored out of a common-and
// simplification, which may itself reduce to a concrete constant).
func simplifyBinaryAuto(gen *idgen.Generator, op ops.BinaryOp, left, right Val) (Val, error) {
	lt, lok := left.NumericOrBoolType()
	rt, rok := right.NumericOrBoolType()
	if !lok || !rok {
		return Val{}, fmt.Errorf("signal: non-numeric/bool operand in %s", op)
	}
	return simplifyBinary(gen, op, left, right, lt, rt)
}

func isZeroNumber(v Val) bool { return v.kind == KindNumber && v.n == 0 }
func isOneNumber(v Val) bool  { return v.kind == KindNumber && v.n == 1 }

// simplifyBinary implements the local identity-folding rules: additive and
// multiplicative identities/annihilators, negation-cancellation and
// common-and factoring for ||, and boolean short-circuits for && and ||.
// Anything that doesn't fold becomes a freshly constructed binary signal.
// Grounded directly on circuit_signal.rs's override_binary_op.
func simplifyBinary(gen *idgen.Generator, op ops.BinaryOp, left, right Val, lt, rt ops.ValueType) (Val, error) {
	switch op {
	case ops.Add:
		if isZeroNumber(left) {
			return right, nil
		}
		if isZeroNumber(right) {
			return left, nil
		}

	case ops.Mul:
		if isOneNumber(left) {
			return right, nil
		}
		if isZeroNumber(left) {
			return NumberVal(0), nil
		}
		if isOneNumber(right) {
			return left, nil
		}
		if isZeroNumber(right) {
			return NumberVal(0), nil
		}

	case ops.Or:
		if relatedByNegation(left, right) {
			return BoolVal(true), nil
		}
		if y, a, b, ok := commonAnd(left, right); ok {
			aOrB, err := simplifyBinaryAuto(gen, ops.Or, a, b)
			if err != nil {
				return Val{}, err
			}
			aOrBType, _ := aOrB.NumericOrBoolType()
			andType, err := ops.And.ResultType(y.Type, aOrBType)
			if err != nil {
				return Val{}, err
			}
			return SignalVal(newSignal(gen, andType, BinaryData{Op: ops.And, L: SignalVal(y), R: aOrB})), nil
		}
		if left.kind == KindBool {
			if left.b {
				return BoolVal(true), nil
			}
			return right, nil
		}
		if right.kind == KindBool {
			if right.b {
				return BoolVal(true), nil
			}
			return left, nil
		}

	case ops.And:
		if left.kind == KindBool {
			if left.b {
				return right, nil
			}
			return BoolVal(false), nil
		}
		if right.kind == KindBool {
			if right.b {
				return left, nil
			}
			return BoolVal(false), nil
		}
	}

	resultType, err := op.ResultType(lt, rt)
	if err != nil {
		return Val{}, err
	}
	return SignalVal(newSignal(gen, resultType, BinaryData{Op: op, L: left, R: right})), nil
}

// relatedByNegation reports whether one side is !(the other side), i.e.
// a ∨ ¬a, in either operand order.
func relatedByNegation(left, right Val) bool {
	return checkNegation(left, right) || checkNegation(right, left)
}

func checkNegation(a, b Val) bool {
	sigA, ok := a.AsSignal()
	if !ok {
		return false
	}
	ud, ok := sigA.Data.(UnaryData)
	if !ok || ud.Op != ops.Not {
		return false
	}
	innerSig, ok := ud.X.AsSignal()
	if !ok {
		return false
	}
	sigB, ok := b.AsSignal()
	if !ok {
		return false
	}
	return innerSig.ID == sigB.ID
}

// commonAnd detects (y∧a)∨(y∧b), returning (y, a, b, true) when both sides
// are `And` signals sharing the same left-hand signal y.
func commonAnd(left, right Val) (*Signal, Val, Val, bool) {
	sigL, ok := left.AsSignal()
	if !ok {
		return nil, Val{}, Val{}, false
	}
	sigR, ok := right.AsSignal()
	if !ok {
		return nil, Val{}, Val{}, false
	}
	bdL, ok := sigL.Data.(BinaryData)
	if !ok || bdL.Op != ops.And {
		return nil, Val{}, Val{}, false
	}
	bdR, ok := sigR.Data.(BinaryData)
	if !ok || bdR.Op != ops.And {
		return nil, Val{}, Val{}, false
	}
	lhsL, ok := bdL.L.AsSignal()
	if !ok {
		return nil, Val{}, Val{}, false
	}
	lhsR, ok := bdR.L.AsSignal()
	if !ok {
		return nil, Val{}, Val{}, false
	}
	if lhsL.ID != lhsR.ID {
		return nil, Val{}, Val{}, false
	}
	return lhsL, bdL.R, bdR.R, true
}
