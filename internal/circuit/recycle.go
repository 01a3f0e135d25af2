package circuit

// RecycleResult is the outcome of a recycling pass: the rewritten circuit
// plus the indices (into the original InputNames) of any declared input
// that was never consumed by a gate.
type RecycleResult struct {
	Circuit          *Circuit
	UnusedInputWires []int
}

// Recycle rewrites a circuit's wire-id space down to the minimum
// simultaneously live set using a FIFO free-list, preserving input wire
// ids 0..NumInputs (in order) and leaving the declared outputs as a
// contiguous trailing block. Unused inputs are silently recycled (their
// slot is returned to the pool immediately) rather than rejected; their
// indices are reported so a caller can decide whether an unused *public*
// input deserves a lint.
//
// Grounded on the upstream standalone recycler
// (original_source/cli/src/bin/recycle_wires.rs): a FIFO recycling_pool,
// last-use computed from gate operands, and output wires protected from
// recycling by pretending their last use happens after every gate.
// Constants need no special case here since the builder represents them
// as zero-input gates.
//
// The pass runs in two phases so that a wire can be read by a gate that
// comes after the gate producing it even when that wire is also a
// declared output (e.g. two outputs of the same interior signal, one
// direct and one copied): phase one assigns every wire's new id —
// deferring output wires to the trailing block, same as the reference —
// without yet rewriting any gate; phase two rewrites every gate's
// operands and result from the now-complete map. Interleaving the two, as
// an earlier version of this pass did, reads an output wire's mapped id
// before it exists whenever some later gate also consumes it.
func Recycle(c *Circuit) *RecycleResult {
	isOutput := make(map[uint64]bool, len(c.OutputWires))
	for _, w := range c.OutputWires {
		isOutput[w] = true
	}
	outputOfWire := make(map[uint64]int, len(c.Gates))
	for gi, g := range c.Gates {
		outputOfWire[g.Out] = gi
	}
	lastUse := make(map[uint64]int)
	for gi, g := range c.Gates {
		for _, in := range g.Ins {
			lastUse[in] = gi
		}
	}
	// An output wire must never enter the recycling pool, even if some
	// later gate also reads it as an operand: pretend it's used again
	// after the end of the circuit, a gate index recycleOperandsIfDone
	// never reaches.
	for _, w := range c.OutputWires {
		lastUse[w] = len(c.Gates)
	}

	wireMap := make(map[uint64]uint64, c.NumWires)
	var pool []uint64
	var nextWire uint64
	var unusedInputs []int

	allocate := func() uint64 {
		if len(pool) > 0 {
			w := pool[0]
			pool = pool[1:]
			return w
		}
		w := nextWire
		nextWire++
		return w
	}

	recycleOperandsIfDone := func(ins []uint64, atGate int) {
		for _, old := range ins {
			if lu, ok := lastUse[old]; ok && lu == atGate {
				pool = append(pool, wireMap[old])
			}
		}
	}

	numInputs := uint64(len(c.InputNames))

	for w := uint64(0); w < c.NumWires; w++ {
		if w < numInputs {
			nw := allocate()
			wireMap[w] = nw
			if _, used := lastUse[w]; !used {
				unusedInputs = append(unusedInputs, int(w))
				pool = append(pool, nw)
			}
			continue
		}

		gi := outputOfWire[w] // every non-input wire is some gate's output
		if !isOutput[w] {
			wireMap[w] = allocate()
		}
		recycleOperandsIfDone(c.Gates[gi].Ins, gi)
	}

	outputWires := make([]uint64, len(c.OutputWires))
	for i, w := range c.OutputWires {
		nw := nextWire
		nextWire++
		wireMap[w] = nw
		outputWires[i] = nw
	}

	newGates := make([]Gate, len(c.Gates))
	for gi, g := range c.Gates {
		newIns := make([]uint64, len(g.Ins))
		for k, in := range g.Ins {
			newIns[k] = wireMap[in]
		}
		newGates[gi] = Gate{Kind: g.Kind, UOp: g.UOp, BOp: g.BOp, Const: g.Const, Ins: newIns, Out: wireMap[g.Out]}
	}

	return &RecycleResult{
		Circuit: &Circuit{
			Gates:       newGates,
			NumWires:    nextWire,
			InputNames:  c.InputNames,
			OutputNames: c.OutputNames,
			OutputWires: outputWires,
		},
		UnusedInputWires: unusedInputs,
	}
}
