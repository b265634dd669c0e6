// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// minNodeLimit floors a node budget at zero: once a parent call has only
// one node's worth of budget left for itself, its children start at zero,
// never negative, mirroring the DD_MIN_NODE_LIMIT macro of the algorithm
// this is grounded on.
func minNodeLimit(limit int) int {
	if limit < 1 {
		return 0
	}
	return limit - 1
}

// chargeMerge folds a freshly canonicalized node into the running budget of
// a Reduced recursion: charged and returned unchanged if there is room,
// collapsed to Unknown (and *reduced latched) if not. It is the common tail
// of every merge step in this file, replacing the repeated "build, then
// check the limit, then flag" sequence of the algorithm this is grounded on
// with the single already-written chargeNode helper (see maxref.go).
func (b *BDD) chargeMerge(res edge, limit int, consumed *int, reduced *bool) edge {
	out, after, collapsed := b.chargeNode(res, limit)
	if collapsed {
		*reduced = true
		return unknownEdge
	}
	if after < limit {
		*consumed++
	}
	return out
}

// AndR computes f & g, reconstructing at most limit new nodes: once the
// budget runs out, the still-unexplored parts of the result collapse to
// Unknown rather than failing, and the second return value reports whether
// that happened anywhere in the computation.
func (b *BDD) AndR(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to AndR (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to AndR (g: %v)", g)
		return nil, false
	}
	res, reduced := b.reducedDriver(func() (edge, bool) {
		b.initref()
		b.pushref(*f)
		b.pushref(*g)
		consumed := 0
		reduced := false
		r := b.andReducedRecur(*f, *g, limit, &consumed, &reduced)
		b.popref(2)
		return r, reduced
	})
	if res < 0 {
		return nil, false
	}
	return b.retnode(res), reduced
}

func (b *BDD) andReducedRecur(f, g edge, limit int, consumed *int, reduced *bool) edge {
	if b.checkWhetherToGiveUp() {
		return -1
	}
	F, G := regular(f), regular(g)
	if F == G {
		if f == g {
			return b.reduceByNodeLimitRecur(f, limit, consumed, reduced)
		}
		if F == unknownEdge {
			return unknownEdge
		}
	}
	if F == oneEdge {
		if f == oneEdge {
			return b.reduceByNodeLimitRecur(g, limit, consumed, reduced)
		}
		return f
	}
	if G == oneEdge {
		if g == oneEdge {
			return b.reduceByNodeLimitRecur(f, limit, consumed, reduced)
		}
		return g
	}

	if f > g { // arbitrary total order on edges, purely to improve cache hits
		f, g = g, f
	}

	if res := b.andrcache.matchreduced(int(f), int(g)); res >= 0 {
		return b.reduceByNodeLimitRecur(edge(res), limit, consumed, reduced)
	}

	topf := b.nodeIndex(f)
	topg := b.nodeIndex(g)

	var index int32
	var fv, fnv edge
	if topf <= topg {
		index = b.levelOf(f)
		fv, fnv = b.highEdge(f), b.lowEdge(f)
	} else {
		index = b.levelOf(g)
		fv, fnv = f, f
	}
	var gv, gnv edge
	if topg <= topf {
		gv, gnv = b.highEdge(g), b.lowEdge(g)
	} else {
		gv, gnv = g, g
	}

	decision := b.heuristic(b, f, g, 0, true, false)
	var t, e edge
	c, r := 0, false
	if decision < 0 {
		t = b.pushref(b.andReducedRecur(fv, gv, minNodeLimit(limit), &c, &r))
		if t < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		e = b.pushref(b.andReducedRecur(fnv, gnv, minNodeLimit(limit-*consumed), &c, &r))
		if e < 0 {
			b.popref(2)
			return -1
		}
		*consumed += c
		*reduced = *reduced || r
	} else {
		e = b.pushref(b.andReducedRecur(fnv, gnv, minNodeLimit(limit), &c, &r))
		if e < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		t = b.pushref(b.andReducedRecur(fv, gv, minNodeLimit(limit-*consumed), &c, &r))
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
	res, err := b.canonicalize(index, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in andReducedRecur; %s", err)
		return -1
	}
	res = b.chargeMerge(res, limit, consumed, reduced)
	if !*reduced {
		b.andrcache.setreduced(int(f), int(g), int(res))
	}
	return res
}

// XorR computes f xor g under the same node-budget discipline as AndR.
func (b *BDD) XorR(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to XorR (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to XorR (g: %v)", g)
		return nil, false
	}
	res, reduced := b.reducedDriver(func() (edge, bool) {
		b.initref()
		b.pushref(*f)
		b.pushref(*g)
		consumed := 0
		reduced := false
		r := b.xorReducedRecur(*f, *g, limit, &consumed, &reduced)
		b.popref(2)
		return r, reduced
	})
	if res < 0 {
		return nil, false
	}
	return b.retnode(res), reduced
}

func (b *BDD) xorReducedRecur(f, g edge, limit int, consumed *int, reduced *bool) edge {
	if b.checkWhetherToGiveUp() {
		return -1
	}
	if regular(f) == unknownEdge || regular(g) == unknownEdge {
		return unknownEdge
	}
	if f > g {
		f, g = g, f
	}
	if g == zeroEdge {
		return b.reduceByNodeLimitRecur(f, limit, consumed, reduced)
	}
	if g == oneEdge {
		return b.reduceByNodeLimitRecur(notSafe(f), limit, consumed, reduced)
	}
	if isComplement(f) {
		f, g = notSafe(f), notSafe(g)
	}
	if f == oneEdge {
		return b.reduceByNodeLimitRecur(notSafe(g), limit, consumed, reduced)
	}

	if res := b.xorrcache.matchreduced(int(f), int(g)); res >= 0 {
		return b.reduceByNodeLimitRecur(edge(res), limit, consumed, reduced)
	}

	topf := b.levelOf(f)
	topg := b.levelOf(g)

	var index int32
	var fv, fnv edge
	if topf <= topg {
		index = topf
		fv, fnv = b.highEdge(f), b.lowEdge(f)
	} else {
		index = topg
		fv, fnv = f, f
	}
	var gv, gnv edge
	if topg <= topf {
		gv, gnv = b.highEdge(g), b.lowEdge(g)
	} else {
		gv, gnv = g, g
	}

	decision := b.heuristic(b, f, g, 0, true, false)
	var t, e edge
	c, r := 0, false
	if decision < 0 {
		t = b.pushref(b.xorReducedRecur(fv, gv, minNodeLimit(limit), &c, &r))
		if t < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		e = b.pushref(b.xorReducedRecur(fnv, gnv, minNodeLimit(limit-*consumed), &c, &r))
		if e < 0 {
			b.popref(2)
			return -1
		}
		*consumed += c
		*reduced = *reduced || r
	} else {
		e = b.pushref(b.xorReducedRecur(fnv, gnv, minNodeLimit(limit), &c, &r))
		if e < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		t = b.pushref(b.xorReducedRecur(fv, gv, minNodeLimit(limit-*consumed), &c, &r))
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
	res, err := b.canonicalize(index, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in xorReducedRecur; %s", err)
		return -1
	}
	res = b.chargeMerge(res, limit, consumed, reduced)
	if !*reduced {
		b.xorrcache.setreduced(int(f), int(g), int(res))
	}
	return res
}

// IteR computes the reduced if-then-else of f, g and h under the same
// node-budget discipline as AndR and XorR.
func (b *BDD) IteR(f, g, h Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to IteR (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to IteR (g: %v)", g)
		return nil, false
	}
	if b.checkptr(h) != nil {
		b.seterror("wrong operand in call to IteR (h: %v)", h)
		return nil, false
	}
	res, reduced := b.reducedDriver(func() (edge, bool) {
		b.initref()
		b.pushref(*f)
		b.pushref(*g)
		b.pushref(*h)
		consumed := 0
		reduced := false
		r := b.iteReducedRecur(*f, *g, *h, limit, &consumed, &reduced)
		b.popref(3)
		return r, reduced
	})
	if res < 0 {
		return nil, false
	}
	return b.retnode(res), reduced
}

func (b *BDD) iteReducedRecur(f, g, h edge, limit int, consumed *int, reduced *bool) edge {
	if b.checkWhetherToGiveUp() {
		return -1
	}

	if f == oneEdge || g == h {
		return b.reduceByNodeLimitRecur(g, limit, consumed, reduced)
	}
	if f == zeroEdge {
		return b.reduceByNodeLimitRecur(h, limit, consumed, reduced)
	}
	unknowns := 0
	if f == unknownEdge {
		unknowns++
	}
	if g == unknownEdge {
		unknowns++
	}
	if h == unknownEdge {
		unknowns++
	}
	if unknowns >= 2 || (f == unknownEdge && g == notSafe(h)) {
		return unknownEdge
	}
	if f == unknownEdge {
		return unknownEdge
	}

	if g == oneEdge || f == g {
		if h == zeroEdge {
			return f
		}
		res := b.andReducedRecur(notSafe(f), notSafe(h), limit, consumed, reduced)
		if res < 0 {
			return -1
		}
		return notSafe(res)
	} else if g == zeroEdge {
		if h == oneEdge {
			return notSafe(f)
		}
		return b.andReducedRecur(notSafe(f), h, limit, consumed, reduced)
	}
	if h == zeroEdge {
		return b.andReducedRecur(f, g, limit, consumed, reduced)
	} else if h == oneEdge {
		res := b.andReducedRecur(f, notSafe(g), limit, consumed, reduced)
		if res < 0 {
			return -1
		}
		return notSafe(res)
	}
	if g == notSafe(h) {
		return b.xorReducedRecur(f, h, limit, consumed, reduced)
	} else if g == unknownEdge || h == unknownEdge {
		return unknownEdge
	}

	// From here f, g and h are all non-constant.
	topf, topg, toph := b.levelOf(f), b.levelOf(g), b.levelOf(h)
	vgh := topg
	if toph < vgh {
		vgh = toph
	}

	// Shortcut: ITE(F,G,H) = (v,G,H) when F is the positive literal v and v
	// sits strictly above both G and H.
	if topf < vgh && b.isLiteral(f) && !isComplement(f) {
		res, err := b.canonicalize(topf, g, h)
		if err != nil {
			b.seterror("cannot allocate new node in iteReducedRecur; %s", err)
			return -1
		}
		res = b.chargeMerge(res, limit, consumed, reduced)
		return res
	}

	if res := b.itercache.matchreduced(int(f), int(g), int(h)); res >= 0 {
		return b.reduceByNodeLimitRecur(edge(res), limit, consumed, reduced)
	}

	v := topf
	if vgh < v {
		v = vgh
	}

	var fv, fnv, gv, gnv, hv, hnv edge
	if topf <= v {
		fv, fnv = b.highEdge(f), b.lowEdge(f)
	} else {
		fv, fnv = f, f
	}
	if topg == v {
		gv, gnv = b.highEdge(g), b.lowEdge(g)
	} else {
		gv, gnv = g, g
	}
	if toph == v {
		hv, hnv = b.highEdge(h), b.lowEdge(h)
	} else {
		hv, hnv = h, h
	}

	decision := b.heuristic(b, f, g, h, true, true)
	var t, e edge
	c, r := 0, false
	if decision < 0 {
		t = b.pushref(b.iteReducedRecur(fv, gv, hv, minNodeLimit(limit), &c, &r))
		if t < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		e = b.pushref(b.iteReducedRecur(fnv, gnv, hnv, minNodeLimit(limit-*consumed), &c, &r))
		if e < 0 {
			b.popref(2)
			return -1
		}
		*consumed += c
		*reduced = *reduced || r
	} else {
		e = b.pushref(b.iteReducedRecur(fnv, gnv, hnv, minNodeLimit(limit), &c, &r))
		if e < 0 {
			b.popref(1)
			return -1
		}
		*consumed += c
		c = 0
		t = b.pushref(b.iteReducedRecur(fv, gv, hv, minNodeLimit(limit-*consumed), &c, &r))
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
	res, err := b.canonicalize(v, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in iteReducedRecur; %s", err)
		return -1
	}
	res = b.chargeMerge(res, limit, consumed, reduced)
	if !*reduced {
		b.itercache.setreduced(int(f), int(g), int(h), int(res))
	}
	return res
}
