package compiler

import (
	"encoding/hex"
	"encoding/json"

	"github.com/privacy-scaling-explorations/summon/internal/circuit"
	"github.com/privacy-scaling-explorations/summon/internal/ioobj"
)

// CircuitInfo is the shape written to circuit_info.json: one entry per
// constant, input, and output wire, plus a content digest so a cached
// circuit can be verified without re-running the pipeline.
type CircuitInfo struct {
	Digest    string          `json:"digest"`
	Constants []ConstantEntry `json:"constants"`
	Inputs    []InOutEntry    `json:"inputs"`
	Outputs   []InOutEntry    `json:"outputs"`
}

// ConstantEntry describes one deduplicated constant wire.
type ConstantEntry struct {
	Address uint64 `json:"address"`
	Value   string `json:"value"`
}

// InOutEntry describes one declared input or output wire.
type InOutEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address uint64 `json:"address"`
	Width   int    `json:"width"`
}

// PartySettings is one entry of mpc_settings.json: a party's name and the
// input/output names it's responsible for.
type PartySettings struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// BuildCircuitInfo derives a CircuitInfo from the recycled circuit and the
// IO object's declared inputs/outputs (needed to recover per-entry types,
// which the flattened Circuit no longer carries — it only keeps names).
func BuildCircuitInfo(c *circuit.Circuit, inputs []ioobj.InputDescriptor, outputs []ioobj.Output) CircuitInfo {
	info := CircuitInfo{Digest: digestHex(c)}
	for _, g := range c.Gates {
		if g.Kind == circuit.GateConst {
			info.Constants = append(info.Constants, ConstantEntry{Address: g.Out, Value: g.Const.Dec()})
		}
	}
	for i, name := range c.InputNames {
		ty := ""
		if i < len(inputs) {
			ty = inputs[i].Type.String()
		}
		info.Inputs = append(info.Inputs, InOutEntry{Name: name, Type: ty, Address: uint64(i), Width: 1})
	}
	for i, name := range c.OutputNames {
		ty := ""
		if i < len(outputs) {
			if t, ok := outputs[i].Value.NumericOrBoolType(); ok {
				ty = t.String()
			}
		}
		info.Outputs = append(info.Outputs, InOutEntry{Name: name, Type: ty, Address: c.OutputWires[i], Width: 1})
	}
	return info
}

// BuildMPCSettings derives mpc_settings.json's per-party view: every input
// belongs to the party it was declared `from`; outputs declared with
// OutputPublic are visible to every party and so are listed under each of
// them.
func BuildMPCSettings(parties []string, inputs []ioobj.InputDescriptor, outputs []ioobj.Output) []PartySettings {
	inputsByParty := make(map[string][]string, len(parties))
	for _, d := range inputs {
		inputsByParty[d.Party] = append(inputsByParty[d.Party], d.Name)
	}
	outputNames := make([]string, len(outputs))
	for i, o := range outputs {
		outputNames[i] = o.Name
	}

	out := make([]PartySettings, 0, len(parties))
	for _, p := range parties {
		out = append(out, PartySettings{
			Name:    p,
			Inputs:  inputsByParty[p],
			Outputs: append([]string(nil), outputNames...),
		})
	}
	return out
}

func digestHex(c *circuit.Circuit) string {
	d := c.Digest()
	return hex.EncodeToString(d[:])
}

// MarshalIndent renders v as two-space-indented JSON, the layout of the
// circuit_info.json and mpc_settings.json files cmd/summonc writes.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
