// Package compiler wires the pipeline stages together: an id generator
// seeds an IO object, a driver (standing in for the excluded TypeScript
// parser and bytecode VM) runs against it, and the collected outputs flow
// through the circuit builder and the recycling pass. Compile does not
// render Bristol text itself; callers do that with Circuit.ToBristol. It
// also owns the diagnostics and compile-time metrics that accompany a
// compilation.
package compiler

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/privacy-scaling-explorations/summon/internal/circuit"
	"github.com/privacy-scaling-explorations/summon/internal/diagnostics"
	"github.com/privacy-scaling-explorations/summon/internal/idgen"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/metrics"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

// Driver executes a compiled program's entry point against io, declaring
// inputs/outputs as the program runs. A real front end would parse and
// interpret a TypeScript module into calls against io; that front end is
// out of this core's scope, so callers supply it directly. The stable
// entry-point contract is that the compiled module exports a function of
// exactly one parameter bound to the IO object — a Driver models exactly
// that function.
type Driver func(io *ioobj.IO) error

// Options configures a single compilation.
type Options struct {
	// EntryName identifies the entry module diagnostics are bound to (the
	// path the CLI was invoked with, or a synthetic name for embedded
	// callers that don't have a source file).
	EntryName string
}

// DefaultOptions returns an Options with a synthetic entry name.
func DefaultOptions() Options {
	return Options{EntryName: "<entry>"}
}

// Validate checks Options for correctness.
func (o Options) Validate() error {
	if o.EntryName == "" {
		return fmt.Errorf("compiler: entry name must not be empty")
	}
	return nil
}

// Result is everything a caller needs after a successful compilation: the
// pre-recycle and post-recycle circuits, the declared input/output/party
// records needed to build the CLI's JSON artifacts, and the
// metrics/diagnostics gathered along the way.
type Result struct {
	Circuit          *circuit.Circuit
	Recycled         *circuit.Circuit
	UnusedInputWires []int
	Parties          []string
	Inputs           []ioobj.InputDescriptor
	Outputs          []ioobj.Output
	Diagnostics      *diagnostics.ByPath
	Metrics          *metrics.Pipeline
}

// Compile runs driver against a fresh IO object seeded with publicInputs,
// then flattens, recycles, and measures the resulting circuit. Diagnostics
// are always returned (even alongside a nil error) so a caller can surface
// lints; a non-nil error means compilation could not produce a circuit at
// all.
func Compile(driver Driver, publicInputs map[string]signal.Val, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	diags := diagnostics.New()
	met := metrics.NewPipeline()
	timer := metrics.NewTimer(met.CompileDuration)
	defer timer.Stop()

	gen := idgen.New()
	io := ioobj.New(gen, publicInputs)

	log.Info("summon: running driver", "entry", opts.EntryName)
	if err := driver(io); err != nil {
		diags.Add(opts.EntryName, diagnostics.Diagnostic{
			Level:   diagnostics.Error,
			Message: err.Error(),
		})
		return &Result{Diagnostics: diags, Metrics: met}, nil
	}

	for _, name := range io.UnconsumedPublicInputs() {
		diags.Add(opts.EntryName, diagnostics.Diagnostic{
			Level:   diagnostics.Lint,
			Message: fmt.Sprintf("public input %q was supplied but never read with inputPublic", name),
		})
	}

	b := circuit.NewBuilder()
	b.IncludeInputs(io.InputSignals())
	outWires := b.IncludeOutputs(io.Outputs())

	inputNames := make([]string, len(io.Inputs()))
	for i, d := range io.Inputs() {
		inputNames[i] = d.Name
	}
	outputNames := make([]string, len(io.Outputs()))
	for i, o := range io.Outputs() {
		outputNames[i] = o.Name
	}

	circ := b.Build(inputNames, outputNames, outWires)
	met.GatesBuilt.Add(int64(len(circ.Gates)))
	met.WiresBeforeRecyc.Set(int64(circ.NumWires))
	log.Info("summon: circuit built", "gates", len(circ.Gates), "wires", circ.NumWires)

	recResult := circuit.Recycle(circ)
	rec := recResult.Circuit
	met.WiresAfterRecyc.Set(int64(rec.NumWires))
	met.WiresRecycled.Set(int64(circ.NumWires) - int64(rec.NumWires))
	log.Info("summon: wires recycled", "before", circ.NumWires, "after", rec.NumWires,
		"unused_inputs", len(recResult.UnusedInputWires))

	return &Result{
		Circuit:          circ,
		Recycled:         rec,
		UnusedInputWires: recResult.UnusedInputWires,
		Parties:          io.Parties(),
		Inputs:           io.Inputs(),
		Outputs:          io.Outputs(),
		Diagnostics:      diags,
		Metrics:          met,
	}, nil
}
