package compiler

import (
	"testing"

	"github.com/privacy-scaling-explorations/summon/internal/diagnostics"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

func TestCompileSinglePartySum(t *testing.T) {
	driver := func(io *ioobj.IO) error {
		x, err := io.Input("alice", "x", ops.Number)
		if err != nil {
			return err
		}
		y, err := io.Input("alice", "y", ops.Number)
		if err != nil {
			return err
		}
		sum, _, err := signal.ApplyBinary(io.Gen(), ops.Add, x, y)
		if err != nil {
			return err
		}
		io.OutputPublic("z", sum)
		return nil
	}

	result, err := Compile(driver, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", result.Diagnostics)
	}
	if result.Circuit.NumInputs() != 2 || result.Circuit.NumOutputs() != 1 {
		t.Fatalf("unexpected circuit shape: %s", result.Circuit)
	}
	if len(result.Parties) != 1 || result.Parties[0] != "alice" {
		t.Fatalf("expected party [alice], got %v", result.Parties)
	}

	settings := BuildMPCSettings(result.Parties, result.Inputs, result.Outputs)
	if len(settings) != 1 || settings[0].Name != "alice" {
		t.Fatalf("unexpected mpc settings: %#v", settings)
	}
	if len(settings[0].Inputs) != 2 || len(settings[0].Outputs) != 1 {
		t.Fatalf("unexpected per-party io: %#v", settings[0])
	}

	info := BuildCircuitInfo(result.Recycled, result.Inputs, result.Outputs)
	if len(info.Inputs) != 2 || len(info.Outputs) != 1 {
		t.Fatalf("unexpected circuit info: %#v", info)
	}
	if info.Digest == "" {
		t.Fatalf("expected a non-empty digest")
	}
}

func TestCompileMissingPublicInputIsError(t *testing.T) {
	driver := func(io *ioobj.IO) error {
		_, err := io.InputPublic("missing", ops.Number)
		return err
	}

	result, err := Compile(driver, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !result.Diagnostics.HasErrors() {
		t.Fatalf("expected an error diagnostic naming the missing public input")
	}
	found := false
	for _, d := range result.Diagnostics.For(DefaultOptions().EntryName) {
		if d.Level == diagnostics.Error {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Error-level diagnostic")
	}
}

func TestCompileUnconsumedPublicInputIsLint(t *testing.T) {
	driver := func(io *ioobj.IO) error {
		return nil
	}
	publicInputs := map[string]signal.Val{"unused": signal.NumberVal(7)}

	result, err := Compile(driver, publicInputs, DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	diags := result.Diagnostics.For(DefaultOptions().EntryName)
	if len(diags) != 1 || diags[0].Level != diagnostics.Lint {
		t.Fatalf("expected a single lint diagnostic, got %v", diags)
	}
}

func TestOptionsValidateRejectsEmptyEntryName(t *testing.T) {
	if err := (Options{}).Validate(); err == nil {
		t.Fatalf("expected an error for an empty entry name")
	}
}
