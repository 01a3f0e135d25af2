package ops

import (
	"errors"
	"testing"
)

func TestUnaryResultType(t *testing.T) {
	cases := []struct {
		op   UnaryOp
		want ValueType
	}{
		{Plus, Number}, {Minus, Number}, {BitNot, Number}, {Not, Bool},
	}
	for _, c := range cases {
		if got := c.op.ResultType(); got != c.want {
			t.Errorf("%s.ResultType() = %s, want %s", c.op, got, c.want)
		}
	}
}

func TestBinaryResultTypeComparisonsAreAlwaysBool(t *testing.T) {
	for _, op := range []BinaryOp{LooseEq, LooseNe, Eq, Ne, Less, LessEq, Greater, GreaterEq} {
		got, err := op.ResultType(Number, Bool)
		if err != nil {
			t.Fatalf("%s.ResultType: %v", op, err)
		}
		if got != Bool {
			t.Errorf("%s.ResultType(Number, Bool) = %s, want Bool", op, got)
		}
	}
}

func TestBinaryResultTypeAndOrTrackMatchingOperandType(t *testing.T) {
	got, err := And.ResultType(Bool, Bool)
	if err != nil || got != Bool {
		t.Fatalf("And.ResultType(Bool, Bool) = %s, %v", got, err)
	}
	got, err = Or.ResultType(Number, Number)
	if err != nil || got != Number {
		t.Fatalf("Or.ResultType(Number, Number) = %s, %v", got, err)
	}
}

func TestBinaryResultTypeAndOrRejectMixedOperands(t *testing.T) {
	_, err := And.ResultType(Number, Bool)
	if !errors.Is(err, ErrIncompatibleTypes) {
		t.Fatalf("expected ErrIncompatibleTypes, got %v", err)
	}
}

func TestBinaryResultTypeArithmeticIsAlwaysNumber(t *testing.T) {
	for _, op := range []BinaryOp{Add, Sub, Mul, Div, Mod, Exp, BitAnd, BitOr, BitXor, LShift, RShift, RShiftUnsigned} {
		got, err := op.ResultType(Number, Number)
		if err != nil || got != Number {
			t.Errorf("%s.ResultType(Number, Number) = %s, %v", op, got, err)
		}
	}
}

func TestBristolMnemonicsAreDistinctExceptEqualityPairs(t *testing.T) {
	seen := make(map[string]bool)
	ops := []BinaryOp{
		Add, Sub, Mul, Div, Mod, Exp, LooseEq, Eq, LooseNe, Ne, And, Or,
		Less, LessEq, Greater, GreaterEq, BitAnd, BitOr, BitXor, LShift, RShift, RShiftUnsigned,
	}
	for _, op := range ops {
		m := op.Bristol()
		if m == "" {
			t.Errorf("%s has an empty mnemonic", op)
		}
		seen[m] = true
	}
	// LooseEq/Eq share EQ and LooseNe/Ne share NEQ by design (the circuit
	// layer doesn't distinguish loose and strict equality), so the mnemonic
	// set is smaller than the operator set.
	if len(seen) != 20 {
		t.Fatalf("expected 20 distinct mnemonics, got %d: %v", len(seen), seen)
	}
}
