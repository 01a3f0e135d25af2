// Package ioobj implements the IO object a compiled program's driver uses
// to declare inputs, supply public-input values, and record outputs.
//
// Declaring an input allocates a free-variable signal; declaring a public
// input additionally requires (and records) a concrete value supplied from
// outside the program, mirroring how a real multi-party run would let
// every party see a public input's value while only the owning party sees
// a private one.
package ioobj

import (
	"errors"
	"fmt"
	"sort"

	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

// InputDescriptor records one declared input in declaration order, which
// is also circuit input-wire order.
type InputDescriptor struct {
	Name   string
	Type   ops.ValueType
	Public bool
	Party  string
}

// Output records one declared output value, in declaration order.
type Output struct {
	Name  string
	Value signal.Val
	Party string // "" for a public output visible to every party
}

var (
	// ErrDuplicateInput is returned when the same input name is declared twice.
	ErrDuplicateInput = errors.New("ioobj: input already declared")
	// ErrMissingPublicInput is returned when a public input is declared but
	// no concrete value was supplied for it.
	ErrMissingPublicInput = errors.New("ioobj: missing public input")
	// ErrUnknownParty is returned when an output names a party that was
	// never registered with AddParty.
	ErrUnknownParty = errors.New("ioobj: unknown party")
	// ErrPerPartyOutputUnsupported is returned by Output: a private,
	// single-party output requires secret-sharing/wire-labeling machinery
	// this compiler does not implement (its end product is a single
	// Extended-Bristol circuit, not a keyed MPC transcript). Use
	// OutputPublic for a result every party can see.
	ErrPerPartyOutputUnsupported = errors.New("ioobj: per-party private output is not supported, use outputPublic")
)

// IO is the object a program's driver uses to exchange values with the
// circuit being built.
type IO struct {
	gen *idgen.Generator

	inputs       []InputDescriptor
	inputSignals []*signal.Signal
	publicVals   map[string]signal.Val
	consumed     map[string]bool

	outputs  []Output
	parties  []string
	partySet map[string]bool
}

// New returns an IO object backed by gen, with public input values sourced
// from publicInputs (as loaded from a --public-inputs literal or file).
func New(gen *idgen.Generator, publicInputs map[string]signal.Val) *IO {
	return &IO{
		gen:        gen,
		publicVals: publicInputs,
		consumed:   make(map[string]bool),
		partySet:   make(map[string]bool),
	}
}

// Input declares a private input owned by party from, registering from as
// a known party if it isn't one already, and returns its free-variable
// signal.
func (io *IO) Input(from, name string, t ops.ValueType) (signal.Val, error) {
	if io.hasInput(name) {
		return signal.Val{}, fmt.Errorf("%w: %q", ErrDuplicateInput, name)
	}
	io.AddParty(from)
	io.inputs = append(io.inputs, InputDescriptor{Name: name, Type: t, Party: from})
	sig := signal.NewInput(io.gen, t)
	io.inputSignals = append(io.inputSignals, sig)
	return signal.SignalVal(sig), nil
}

// InputPublic declares a public input: it is still a wire-level input
// signal (every gate downstream still sees an opaque signal), but its
// concrete value must have been supplied out of band so the circuit can be
// evaluated locally.
func (io *IO) InputPublic(name string, t ops.ValueType) (signal.Val, error) {
	if io.hasInput(name) {
		return signal.Val{}, fmt.Errorf("%w: %q", ErrDuplicateInput, name)
	}
	if _, ok := io.publicVals[name]; !ok {
		return signal.Val{}, fmt.Errorf("%w: %q", ErrMissingPublicInput, name)
	}
	io.consumed[name] = true
	io.inputs = append(io.inputs, InputDescriptor{Name: name, Type: t, Public: true})
	sig := signal.NewInput(io.gen, t)
	io.inputSignals = append(io.inputSignals, sig)
	return signal.SignalVal(sig), nil
}

// UnconsumedPublicInputs returns the names present in the supplied public-
// inputs map that were never read via InputPublic, sorted for determinism.
// A program that receives a public-inputs payload wider than what it
// actually consults leaves these names stranded; the compiler surfaces
// them as lint diagnostics rather than silently ignoring the mismatch.
func (io *IO) UnconsumedPublicInputs() []string {
	var out []string
	for name := range io.publicVals {
		if !io.consumed[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Gen returns the id generator backing this IO object's signals. A driver
// needs it to run the operator-override simplifier (signal.ApplyUnary /
// signal.ApplyBinary) against the values Input/InputPublic hand it.
func (io *IO) Gen() *idgen.Generator { return io.gen }

// PublicValue returns the concrete value supplied under name in the
// public-inputs map, if any.
func (io *IO) PublicValue(name string) (signal.Val, bool) {
	v, ok := io.publicVals[name]
	return v, ok
}

// AddParty registers an MPC party by name, returning its index.
func (io *IO) AddParty(name string) int {
	if !io.partySet[name] {
		io.partySet[name] = true
		io.parties = append(io.parties, name)
	}
	for i, p := range io.parties {
		if p == name {
			return i
		}
	}
	return -1
}

// Parties returns the registered party names in registration order.
func (io *IO) Parties() []string {
	out := make([]string, len(io.parties))
	copy(out, io.parties)
	return out
}

// Output declares a private output visible only to party. Not supported:
// see ErrPerPartyOutputUnsupported.
func (io *IO) Output(name string, value signal.Val, party string) error {
	if !io.partySet[party] {
		return fmt.Errorf("%w: %q", ErrUnknownParty, party)
	}
	return ErrPerPartyOutputUnsupported
}

// OutputPublic declares a public output value, visible to every party.
func (io *IO) OutputPublic(name string, value signal.Val) {
	io.outputs = append(io.outputs, Output{Name: name, Value: value})
}

// InputSignals returns the free-variable signals backing the declared
// inputs, in the same declaration order as Inputs and as the circuit
// builder's expected input wire order.
func (io *IO) InputSignals() []*signal.Signal {
	out := make([]*signal.Signal, len(io.inputSignals))
	copy(out, io.inputSignals)
	return out
}

// Inputs returns the declared inputs in declaration order.
func (io *IO) Inputs() []InputDescriptor {
	out := make([]InputDescriptor, len(io.inputs))
	copy(out, io.inputs)
	return out
}

// Outputs returns the declared outputs in declaration order.
func (io *IO) Outputs() []Output {
	out := make([]Output, len(io.outputs))
	copy(out, io.outputs)
	return out
}

func (io *IO) hasInput(name string) bool {
	for _, d := range io.inputs {
		if d.Name == name {
			return true
		}
	}
	return false
}
