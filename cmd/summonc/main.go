// Command summonc compiles a program's entry point into an Extended-
// Bristol circuit plus its companion metadata files.
//
// Usage:
//
//	summonc <entry> [--public-inputs <json-or-path>] [--boolify-width <N>] [--out <dir>]
//
// The TypeScript parser and bytecode VM that would normally turn <entry>
// into a compiler.Driver are not part of this build; a caller embeds this
// command by registering a Driver under the entry name with
// compiler.RegisterDriver from a blank-imported package's init().
package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/privacy-scaling-explorations/summon/internal/compiler"
)

var errUsage = errors.New("summonc: missing entry argument")

const usageLine = "Usage: summonc <entry> [--public-inputs json|FILE.json] [--boolify-width WIDTH] [--out DIR]"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It takes CLI
// arguments without the program name so it can be tested in isolation.
func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usageLine)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	entry := resolveEntryPath(opts.entry)

	publicInputs, err := loadPublicInputs(opts.publicInputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	driver, ok := compiler.ResolveDriver(entry)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no driver registered for entry %q\n", entry)
		fmt.Fprintln(os.Stderr, "(the TypeScript front end is not part of this build; register one with compiler.RegisterDriver)")
		return 1
	}

	result, err := compiler.Compile(driver, publicInputs, compiler.Options{EntryName: entry})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Print(result.Diagnostics.String())
	if result.Diagnostics.HasInternalErrors() {
		printInternalErrorBanner(result.Diagnostics.String())
	}
	if result.Diagnostics.HasErrors() {
		return 1
	}

	if opts.haveBoolifyWidth {
		log.Printf("summonc: --boolify-width %d was given, but boolean-gate-set lowering is not part of this build; writing the circuit as-is", opts.boolifyWidth)
	}

	circ := result.Recycled
	_, depth := circ.Depth()
	fmt.Printf("Wires: %d, Gates: %d, Depth: %d\n", circ.NumWires, len(circ.Gates), depth)

	if err := os.RemoveAll(opts.outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeArtifacts(opts.outDir, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func writeArtifacts(outDir string, result *compiler.Result) error {
	circuitPath := filepath.Join(outDir, "circuit.txt")
	if err := os.WriteFile(circuitPath, []byte(result.Recycled.ToBristol()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", circuitPath, err)
	}
	fmt.Println(circuitPath)

	info := compiler.BuildCircuitInfo(result.Recycled, result.Inputs, result.Outputs)
	infoJSON, err := compiler.MarshalIndent(info)
	if err != nil {
		return fmt.Errorf("marshaling circuit info: %w", err)
	}
	infoPath := filepath.Join(outDir, "circuit_info.json")
	if err := os.WriteFile(infoPath, infoJSON, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", infoPath, err)
	}
	fmt.Println(infoPath)

	settings := compiler.BuildMPCSettings(result.Parties, result.Inputs, result.Outputs)
	settingsJSON, err := compiler.MarshalIndent(settings)
	if err != nil {
		return fmt.Errorf("marshaling mpc settings: %w", err)
	}
	settingsPath := filepath.Join(outDir, "mpc_settings.json")
	if err := os.WriteFile(settingsPath, settingsJSON, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", settingsPath, err)
	}
	fmt.Println(settingsPath)

	return nil
}

// resolveEntryPath normalizes the entry argument into the name used both
// as the diagnostics path and the driver registry key. A real front end
// would additionally resolve relative imports against this path; that
// resolution has no counterpart here since there is nothing to import.
func resolveEntryPath(arg string) string {
	return filepath.ToSlash(filepath.Clean(arg))
}

func printInternalErrorBanner(report string) {
	fmt.Println()
	fmt.Println("===============================")
	fmt.Println("=== INTERNAL ERROR(S) FOUND ===")
	fmt.Println("===============================")
	fmt.Println()

	u, err := url.Parse("https://github.com/privacy-scaling-explorations/summon/issues/new")
	if err == nil {
		q := u.Query()
		q.Set("title", "Internal error(s) found")
		q.Set("body", fmt.Sprintf("Input:\n```\n(Please provide if you can)\n```\n\nOutput:\n```\n%s\n```", report))
		u.RawQuery = q.Encode()

		fmt.Println("This is a bug in summonc, please consider reporting it:")
		fmt.Println()
		fmt.Println(u.String())
		fmt.Println()
	}
}
