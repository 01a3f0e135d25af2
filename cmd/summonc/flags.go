package main

import (
	"flag"
)

// options holds the parsed command-line flags for a single summonc run.
type options struct {
	entry            string
	publicInputs     string
	boolifyWidth     int
	haveBoolifyWidth bool
	outDir           string
}

// newFlagSet builds the flag.FlagSet summonc parses its arguments with. It
// uses flag.ContinueOnError so run can report parse errors itself instead
// of the flag package calling os.Exit directly.
func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("summonc", flag.ContinueOnError)
	fs.StringVar(&o.publicInputs, "public-inputs", "", "inline JSON object or path to a JSON file of public input values")
	fs.IntVar(&o.boolifyWidth, "boolify-width", 0, "accepted for CLI compatibility; boolean-gate-set lowering is not implemented by this build")
	fs.StringVar(&o.outDir, "out", "output", "directory artifacts are written to")
	return fs
}

// parseFlags parses args into an options value. The first argument, whatever
// it is, is taken as the entry path, so it must come before any flag;
// flag.FlagSet.Parse stops at the first non-flag argument, so the entry is
// pulled out before the rest are handed to the FlagSet, matching the
// upstream CLI's `summonc main.ts [--flag value]...` usage line.
func parseFlags(args []string) (options, error) {
	var o options
	if len(args) < 1 {
		return o, errUsage
	}
	o.entry = args[0]

	fs := newFlagSet(&o)
	if err := fs.Parse(args[1:]); err != nil {
		return o, err
	}
	o.haveBoolifyWidth = isFlagSet(fs, "boolify-width")
	return o, nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
