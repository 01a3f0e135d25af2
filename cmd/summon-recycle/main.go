// Command summon-recycle reads an Extended-Bristol circuit, recycles its
// wire-id space, and writes the result back out. It is the standalone
// counterpart to the recycling pass summonc runs automatically, for
// circuits produced or hand-edited outside this pipeline.
//
// Usage:
//
//	summon-recycle -i <file|-> -o <file|->
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/privacy-scaling-explorations/summon/internal/circuit"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run is the actual entry point, returning an exit code. stdin/stdout are
// passed in explicitly so "-" arguments can be tested without touching the
// process's real standard streams.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	infile, outfile, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: summon-recycle -i <file|-> -o <file|->")
		return 1
	}

	raw, err := readInput(infile, stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	circ, err := circuit.ParseBristol(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result := circuit.Recycle(circ)
	for _, w := range result.UnusedInputWires {
		fmt.Fprintf(os.Stderr, "input wire %d was not used\n", w)
	}

	if err := writeOutput(outfile, stdout, result.Circuit.ToBristol()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// parseArgs is a minimal -i/-o parser, matching the standalone recycler's
// upstream argument shape rather than pulling in flag.FlagSet for two
// required string flags.
func parseArgs(args []string) (infile, outfile string, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-i":
			i++
			if i >= len(args) {
				return "", "", fmt.Errorf("missing value for -i")
			}
			infile = args[i]
		case "-o":
			i++
			if i >= len(args) {
				return "", "", fmt.Errorf("missing value for -o")
			}
			outfile = args[i]
		default:
			return "", "", fmt.Errorf("unknown arg %s", args[i])
		}
	}
	if infile == "" {
		return "", "", fmt.Errorf("missing -i")
	}
	if outfile == "" {
		return "", "", fmt.Errorf("missing -o")
	}
	return infile, outfile, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, text string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
