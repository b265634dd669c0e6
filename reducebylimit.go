// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// ReduceByNodeLimit rebuilds f node by node, substituting Unknown for any
// subtree that would push the number of newly produced nodes past limit.
// The manager's traversal heuristic (set with the Heu option) picks, at each
// step, which branch to explore first; the returned bool
// reports whether the budget was actually exhausted at some point (the
// second return value mirrors *resultReduced in reduced.go/driver.go: a
// caller that gets true back knows the result is a sound but possibly
// coarser three-valued approximation of f, not f itself).
func (b *BDD) ReduceByNodeLimit(f Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to ReduceByNodeLimit (%v)", f)
		return nil, false
	}
	b.initref()
	b.pushref(*f)
	consumed := 0
	reduced := false
	res := b.reduceByNodeLimitRecur(*f, limit, &consumed, &reduced)
	b.popref(1)
	if res < 0 {
		return nil, false
	}
	b.clearMaxrefRecur(res)
	return b.retnode(res), reduced
}

// reduceByNodeLimitRecur is also called directly, at the edge level, by the
// terminal cases of reduced.go's AndR/XorR/IteR: those cases reduce to "copy
// one operand through, charged against whatever budget is left" rather than
// to a fresh And/Xor/Ite recursion, and this is the shared machinery for
// that copy.
func (b *BDD) reduceByNodeLimitRecur(f edge, limit int, consumed *int, reduced *bool) edge {
	if isConstant(f) {
		return f
	}
	if b.maxrefIsSet(idx(f)) {
		return f
	}
	if limit <= 0 {
		*reduced = true
		return unknownEdge
	}

	bt := b.highEdge(f)
	be := b.lowEdge(f)

	decision := b.heuristic(b, f, 0, 0, false, false)
	var t, e edge
	c := 0
	r := false
	if decision < 0 {
		t = b.pushref(b.reduceByNodeLimitRecur(bt, limit-1, &c, &r))
		if t < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		e = b.pushref(b.reduceByNodeLimitRecur(be, limit-1-*consumed, &c, &r))
		if e < 0 {
			b.popref(2)
			return -1
		}
		*consumed += c
		*reduced = *reduced || r
	} else {
		e = b.pushref(b.reduceByNodeLimitRecur(be, limit-1, &c, &r))
		if e < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		t = b.pushref(b.reduceByNodeLimitRecur(bt, limit-1-*consumed, &c, &r))
		if t < 0 {
			b.popref(2)
			return -1
		}
		*consumed += c
		*reduced = *reduced || r
	}

	if t == e {
		b.popref(2)
		return t
	}

	res, err := b.canonicalize(b.levelOf(f), t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in reduceByNodeLimit; %s", err)
		return -1
	}
	if n := idx(res); !b.maxrefIsSet(n) {
		b.maxrefSet(n)
		*consumed++
	}
	return res
}
