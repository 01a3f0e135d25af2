// Package signal implements the symbolic runtime value model: the tagged
// Val union, the Signal DAG node it can carry, and the operator-override
// simplifier that runs whenever a signal reaches an arithmetic, logical,
// or comparison operator.
//
// Val is deliberately a concrete struct with a Kind tag rather than the
// "Dynamic" catch-all the upstream Rust implementation uses for every
// host object: a signal has its own KindSignal tag, and the IO object is
// not a Val variant at all but a separate type (ioobj.IO) handed to the
// driver directly, so neither hides behind a general dynamic-dispatch
// interface. The
// tagged-struct shape mirrors how a closed set of expression-node types is
// typically modeled in Go rather than reached for via an interface.
package signal

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

// Kind discriminates the variants of Val.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindSignal
	// KindOther stands in for BigInt/String/Array/Object: host-side data
	// that never participates in circuit construction.
	KindOther
)

// Val is the polymorphic runtime value that flows through symbolic
// execution. Only Bool, Number, and Signal participate in circuit
// construction.
type Val struct {
	kind Kind
	b    bool
	n    float64
	sig  *Signal
}

func Undefined() Val { return Val{kind: KindUndefined} }
func Null() Val      { return Val{kind: KindNull} }
func Other() Val     { return Val{kind: KindOther} }

func NumberVal(n float64) Val { return Val{kind: KindNumber, n: n} }
func BoolVal(b bool) Val      { return Val{kind: KindBool, b: b} }
func SignalVal(s *Signal) Val { return Val{kind: KindSignal, sig: s} }

func (v Val) Kind() Kind      { return v.kind }
func (v Val) IsSignal() bool  { return v.kind == KindSignal }
func (v Val) IsNumber() bool  { return v.kind == KindNumber }
func (v Val) IsBool() bool    { return v.kind == KindBool }
func (v Val) Bool() bool      { return v.b }
func (v Val) Number() float64 { return v.n }

// AsSignal returns the underlying Signal if v holds one.
func (v Val) AsSignal() (*Signal, bool) {
	if v.kind == KindSignal {
		return v.sig, true
	}
	return nil, false
}

// NumericOrBoolType returns the operand's circuit-relevant type and whether
// the value participates in arithmetic/logic at all (both operands must be
// numeric-or-boolean).
func (v Val) NumericOrBoolType() (ops.ValueType, bool) {
	switch v.kind {
	case KindBool:
		return ops.Bool, true
	case KindNumber:
		return ops.Number, true
	case KindSignal:
		return v.sig.Type, true
	default:
		return 0, false
	}
}

// Forbidden operations on signals: used as an array index, coerced to a
// branch condition, or serialized as a string. These are reported as
// errors at the point of use rather than panics.
var (
	ErrSignalAsIndex         = errors.New("signal: cannot use a signal as an array index")
	ErrSignalTruthiness      = errors.New("signal: cannot branch on the truthiness of a signal")
	ErrSignalToString        = errors.New("signal: cannot serialize a signal as a string")
	ErrSignalSubscriptAssign = errors.New("signal: cannot assign to a subscript of a signal")
)

// ToIndex converts v to an array index, failing for signals and for values
// that aren't numbers.
func (v Val) ToIndex() (int, error) {
	switch v.kind {
	case KindSignal:
		return 0, ErrSignalAsIndex
	case KindNumber:
		return int(v.n), nil
	default:
		return 0, fmt.Errorf("value of kind %d is not indexable", v.kind)
	}
}

// IsTruthy reports whether v is truthy, failing for signals: coercing one
// to a truth value at a control-flow point is forbidden.
func (v Val) IsTruthy() (bool, error) {
	switch v.kind {
	case KindSignal:
		return false, ErrSignalTruthiness
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n), nil
	case KindUndefined, KindNull:
		return false, nil
	default:
		return true, nil
	}
}

// ToDisplayString renders v as a string, failing for signals.
func (v Val) ToDisplayString() (string, error) {
	switch v.kind {
	case KindSignal:
		return "", ErrSignalToString
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64), nil
	case KindUndefined:
		return "undefined", nil
	case KindNull:
		return "null", nil
	default:
		return "[object]", nil
	}
}

// SetSubscript always fails for signals: subscript assignment on a signal
// is a type error.
func (v Val) SetSubscript() error {
	if v.kind == KindSignal {
		return ErrSignalSubscriptAssign
	}
	return fmt.Errorf("value of kind %d does not support subscript assignment", v.kind)
}
