package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/privacy-scaling-explorations/summon/internal/signal"
)

// loadPublicInputs accepts either an inline JSON object (detected by a
// leading '{') or a path to a JSON file, in both cases a flat object of
// name to number — matching the upstream CLI, public inputs are numbers
// only. An empty spec returns an empty, non-nil map.
func loadPublicInputs(spec string) (map[string]signal.Val, error) {
	if spec == "" {
		return map[string]signal.Val{}, nil
	}

	var raw []byte
	if strings.HasPrefix(strings.TrimSpace(spec), "{") {
		raw = []byte(spec)
	} else {
		if _, err := os.Stat(spec); err != nil {
			return nil, fmt.Errorf("public inputs file does not exist: %s", spec)
		}
		var err error
		raw, err = os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("reading public inputs file: %w", err)
		}
	}

	var numbers map[string]float64
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, fmt.Errorf("parsing public inputs: %w", err)
	}

	out := make(map[string]signal.Val, len(numbers))
	for k, v := range numbers {
		out[k] = signal.NumberVal(v)
	}
	return out, nil
}
