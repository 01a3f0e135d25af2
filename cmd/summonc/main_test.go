package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/privacy-scaling-explorations/summon/internal/compiler"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

func init() {
	compiler.RegisterDriver("testdata/sum.ts", func(io *ioobj.IO) error {
		x, err := io.Input("alice", "x", ops.Number)
		if err != nil {
			return err
		}
		y, err := io.Input("bob", "y", ops.Number)
		if err != nil {
			return err
		}
		sum, _, err := signal.ApplyBinary(io.Gen(), ops.Add, x, y)
		if err != nil {
			return err
		}
		io.OutputPublic("z", sum)
		return nil
	})
}

func TestRunWritesArtifacts(t *testing.T) {
	outDir := t.TempDir()
	code := run([]string{"testdata/sum.ts", "--out", outDir})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	for _, name := range []string{"circuit.txt", "circuit_info.json", "mpc_settings.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
	}
}

func TestRunUnknownEntryIsError(t *testing.T) {
	code := run([]string{"testdata/does-not-exist.ts", "--out", t.TempDir()})
	if code != 1 {
		t.Fatalf("expected exit code 1 for an unregistered entry, got %d", code)
	}
}

func TestRunMissingArgsIsUsageError(t *testing.T) {
	code := run(nil)
	if code != 1 {
		t.Fatalf("expected exit code 1 for missing args, got %d", code)
	}
}
