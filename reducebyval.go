// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// isLiteral reports whether e denotes a single variable in its stored form
// (v, one, zero), regardless of e's own complement bit -- the three-valued
// analogue of Cudd_bddIsVar, used by ReduceByValuation to decide whether its
// valuation argument still singles out one variable at the current level.
func (b *BDD) isLiteral(e edge) bool {
	if isConstant(e) {
		return false
	}
	n := &b.nodes[idx(e)]
	return n.then == oneEdge && n.els == zeroEdge
}

// ReduceByValuation restricts bdd to the valuations admitted by val, a cube
// (conjunction of literals) built with Makeset or Apply(..., OPand): every
// position where val forces a variable to a value that bdd does not depend
// on is left alone, every position where val itself settles to false turns
// the result to Unknown there unless bdd has already reached a constant on
// that branch (the constant is kept), and one-sided valuations (val mentions a
// variable bdd branches on deeper in the order) are fused into the result
// "on the run" rather than requiring a separate pass.
func (b *BDD) ReduceByValuation(bdd, val Node) Node {
	if b.checkptr(bdd) != nil {
		return b.seterror("wrong operand in call to ReduceByValuation (bdd: %v)", bdd)
	}
	if b.checkptr(val) != nil {
		return b.seterror("wrong operand in call to ReduceByValuation (val: %v)", val)
	}
	b.initref()
	b.pushref(*bdd)
	b.pushref(*val)
	res := b.reduceByValuation(*bdd, *val)
	b.popref(2)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) reduceByValuation(bdd, val edge) edge {
	if isConstant(bdd) {
		return bdd
	}
	if val == oneEdge {
		return bdd
	}
	if val == zeroEdge {
		return unknownEdge
	}

	topb := b.levelOf(bdd)
	topv := b.levelOf(val)
	index := topb
	if topv < index {
		index = topv
	}

	if topb > topv && b.isLiteral(val) {
		return bdd
	}

	var bt, be edge
	if topb <= topv {
		bt, be = b.highEdge(bdd), b.lowEdge(bdd)
	} else {
		bt, be = bdd, bdd
	}
	var vt, ve edge
	if topb >= topv {
		vt, ve = b.highEdge(val), b.lowEdge(val)
	} else {
		vt, ve = val, val
	}

	t := b.pushref(b.reduceByValuation(bt, vt))
	e := b.pushref(b.reduceByValuation(be, ve))

	if t == e {
		b.popref(2)
		return t
	}

	// Forgetting on the run: val singles out exactly one variable, sitting
	// strictly below bdd's top variable, so the restriction it imposes can
	// be fused directly into the node we are about to rebuild instead of
	// waiting for a separate recursive pass over that variable.
	if topb < topv && b.isLiteral(val) {
		tRegular, eRegular := !isComplement(t), !isComplement(e)
		tReg, eReg := regular(t), regular(e)
		if !isComplement(val) {
			switch topv {
			case b.levelOf(t):
				high := b.highEdge(tReg)
				if (tRegular && high == e) || (!tRegular && high == notSafe(e)) {
					t, e = e, unknownEdge
					index = topv
				}
			case b.levelOf(e):
				high := b.highEdge(eReg)
				if (eRegular && high == t) || (!eRegular && high == notSafe(t)) {
					e = unknownEdge
					index = topv
				}
			}
		} else {
			switch topv {
			case b.levelOf(t):
				low := b.lowEdge(tReg)
				if (tRegular && low == e) || (!tRegular && low == notSafe(e)) {
					t = unknownEdge
					index = topv
				}
			case b.levelOf(e):
				low := b.lowEdge(eReg)
				if (eRegular && low == t) || (!eRegular && low == notSafe(t)) {
					e, t = t, unknownEdge
					index = topv
				}
			}
		}
	}

	res, err := b.canonicalize(index, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in reduceByValuation; %s", err)
		return -1
	}
	return res
}
