package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/privacy-scaling-explorations/summon/internal/ops"
)

var unaryByMnemonic = map[string]ops.UnaryOp{
	"COPY":   ops.Plus,
	"NEG":    ops.Minus,
	"INV":    ops.Not,
	"BITNOT": ops.BitNot,
}

var binaryByMnemonic = map[string]ops.BinaryOp{
	"ADD": ops.Add, "SUB": ops.Sub, "MUL": ops.Mul, "DIV": ops.Div, "MOD": ops.Mod, "EXP": ops.Exp,
	"EQ": ops.Eq, "NEQ": ops.Ne, "AND": ops.And, "OR": ops.Or,
	"LT": ops.Less, "LE": ops.LessEq, "GT": ops.Greater, "GE": ops.GreaterEq,
	"BAND": ops.BitAnd, "BOR": ops.BitOr, "XOR": ops.BitXor,
	"SHL": ops.LShift, "SHR": ops.RShift, "USHR": ops.RShiftUnsigned,
}

// ToBristol renders c as Extended-Bristol text: a "<gates> <wires>" header,
// an input-length vector, an output-length vector, a blank line, then one
// "k l ins... out OP" line per gate (every declared input and output in
// this language is a scalar, so every length is 1). A zero-input CONST
// gate carries its literal value as a trailing decimal field — the one
// extension beyond plain Bristol Fashion this format needs, since unlike
// a bit-level boolean circuit, constants here aren't decomposable into
// fixed 0/1 input wires.
func (c *Circuit) ToBristol() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d %d\n", len(c.Gates), c.NumWires)

	fmt.Fprintf(&b, "%d", len(c.InputNames))
	for range c.InputNames {
		b.WriteString(" 1")
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%d", len(c.OutputNames))
	for range c.OutputNames {
		b.WriteString(" 1")
	}
	b.WriteString("\n\n")

	for _, g := range c.Gates {
		fmt.Fprintf(&b, "%d 1", len(g.Ins))
		for _, in := range g.Ins {
			fmt.Fprintf(&b, " %d", in)
		}
		fmt.Fprintf(&b, " %d %s", g.Out, g.Mnemonic())
		if g.Kind == GateConst {
			fmt.Fprintf(&b, " %s", g.Const.Dec())
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// ParseBristol parses Extended-Bristol text produced by ToBristol back
// into a Circuit. Input and output wire identity is recovered by
// position, the same convention the standalone recycler uses: inputs are
// wires [0, n_inputs) and outputs are the trailing
// [n_wires-n_outputs, n_wires) block. Declared names aren't part of the
// wire format, so parsed circuits get synthetic placeholder names.
func ParseBristol(text string) (*Circuit, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	idx := 0
	nextLine := func() (string, error) {
		for idx < len(lines) {
			l := strings.TrimSpace(lines[idx])
			idx++
			if l != "" {
				return l, nil
			}
		}
		return "", fmt.Errorf("bristol: unexpected end of input")
	}

	header, err := nextLine()
	if err != nil {
		return nil, err
	}
	hf := strings.Fields(header)
	if len(hf) != 2 {
		return nil, fmt.Errorf("bristol: malformed header line %q", header)
	}
	nGates, err := strconv.Atoi(hf[0])
	if err != nil {
		return nil, fmt.Errorf("bristol: malformed gate count %q", hf[0])
	}
	nWires, err := strconv.ParseUint(hf[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bristol: malformed wire count %q", hf[1])
	}

	inLine, err := nextLine()
	if err != nil {
		return nil, err
	}
	nInputs, inLens, err := parseLengthVector(inLine)
	if err != nil {
		return nil, err
	}
	for _, l := range inLens {
		if l != 1 {
			return nil, fmt.Errorf("bristol: non-scalar input lengths are not supported")
		}
	}

	outLine, err := nextLine()
	if err != nil {
		return nil, err
	}
	nOutputs, outLens, err := parseLengthVector(outLine)
	if err != nil {
		return nil, err
	}
	for _, l := range outLens {
		if l != 1 {
			return nil, fmt.Errorf("bristol: non-scalar output lengths are not supported")
		}
	}

	gates := make([]Gate, 0, nGates)
	for i := 0; i < nGates; i++ {
		line, err := nextLine()
		if err != nil {
			return nil, fmt.Errorf("bristol: expected %d gates, found %d", nGates, i)
		}
		g, err := parseGateLine(line)
		if err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}

	inputNames := make([]string, nInputs)
	for i := range inputNames {
		inputNames[i] = fmt.Sprintf("in%d", i)
	}
	outputNames := make([]string, nOutputs)
	outputWires := make([]uint64, nOutputs)
	for i := range outputNames {
		outputNames[i] = fmt.Sprintf("out%d", i)
		outputWires[i] = nWires - uint64(nOutputs) + uint64(i)
	}

	return &Circuit{
		Gates:       gates,
		NumWires:    nWires,
		InputNames:  inputNames,
		OutputNames: outputNames,
		OutputWires: outputWires,
	}, nil
}

func parseLengthVector(line string) (count int, lengths []int, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, nil, fmt.Errorf("bristol: malformed length vector %q", line)
	}
	count, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, nil, fmt.Errorf("bristol: malformed length vector count %q", fields[0])
	}
	if len(fields) != count+1 {
		return 0, nil, fmt.Errorf("bristol: length vector %q declares %d entries but has %d", line, count, len(fields)-1)
	}
	lengths = make([]int, count)
	for i, f := range fields[1:] {
		l, err := strconv.Atoi(f)
		if err != nil {
			return 0, nil, fmt.Errorf("bristol: malformed length %q", f)
		}
		lengths[i] = l
	}
	return count, lengths, nil
}

func parseGateLine(line string) (Gate, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Gate{}, fmt.Errorf("bristol: malformed gate line %q", line)
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return Gate{}, fmt.Errorf("bristol: malformed gate arity %q", fields[0])
	}
	l, err := strconv.Atoi(fields[1])
	if err != nil || l != 1 {
		return Gate{}, fmt.Errorf("bristol: multi-output gates are not supported: %q", line)
	}
	pos := 2
	if len(fields) < pos+k+1+1 {
		return Gate{}, fmt.Errorf("bristol: malformed gate line %q", line)
	}
	ins := make([]uint64, k)
	for i := 0; i < k; i++ {
		w, err := strconv.ParseUint(fields[pos+i], 10, 64)
		if err != nil {
			return Gate{}, fmt.Errorf("bristol: malformed input wire %q", fields[pos+i])
		}
		ins[i] = w
	}
	pos += k
	out, err := strconv.ParseUint(fields[pos], 10, 64)
	if err != nil {
		return Gate{}, fmt.Errorf("bristol: malformed output wire %q", fields[pos])
	}
	pos++
	mnemonic := fields[pos]
	pos++
	rest := fields[pos:]

	if mnemonic == "CONST" {
		if k != 0 || len(rest) != 1 {
			return Gate{}, fmt.Errorf("bristol: malformed CONST gate %q", line)
		}
		val, err := uint256.FromDecimal(rest[0])
		if err != nil {
			return Gate{}, fmt.Errorf("bristol: malformed CONST value %q: %w", rest[0], err)
		}
		return Gate{Kind: GateConst, Const: *val, Out: out}, nil
	}
	if op, ok := unaryByMnemonic[mnemonic]; ok {
		if k != 1 {
			return Gate{}, fmt.Errorf("bristol: %s expects 1 input, got %d", mnemonic, k)
		}
		return Gate{Kind: GateUnary, UOp: op, Ins: ins, Out: out}, nil
	}
	if op, ok := binaryByMnemonic[mnemonic]; ok {
		if k != 2 {
			return Gate{}, fmt.Errorf("bristol: %s expects 2 inputs, got %d", mnemonic, k)
		}
		return Gate{Kind: GateBinary, BOp: op, Ins: ins, Out: out}, nil
	}
	return Gate{}, fmt.Errorf("bristol: unknown gate mnemonic %q", mnemonic)
}
