// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We
// return nil and set the error flag in b if there is an error.
func (b *BDD) Exist(n, varset Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong node in call to Exist (n: %v)", n)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to Exist (%v)", varset)
	}
	if isConstant(*varset) { // empty set
		return n
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.quantcache.id = cacheidEXIST
	b.applycache.op = int(OPor)
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n, *varset)
	b.popref(2)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) quant(n, varset edge) edge {
	if isConstant(n) || b.levelOf(n) > b.quantcache.quantlast {
		return n
	}
	if res := b.quantcache.matchquant(int(n), int(varset)); res >= 0 {
		return edge(res)
	}
	t := b.pushref(b.quant(b.highEdge(n), varset))
	e := b.pushref(b.quant(b.lowEdge(n), varset))
	level := b.levelOf(n)
	var res edge
	var err error
	if b.quantcache.quantset[level] == b.quantcache.quantsetID {
		b.applycache.op = int(OPor)
		res = b.apply(t, e)
		if res < 0 {
			b.popref(2)
			return -1
		}
	} else {
		res, err = b.canonicalize(level, t, e)
		if err != nil {
			b.seterror("cannot allocate new node in quant; %s", err)
			b.popref(2)
			return -1
		}
	}
	b.popref(2)
	return edge(b.quantcache.setquant(int(n), int(varset), int(res)))
}

// AppEx applies the binary operator op on the two operands, n1 and n2, then
// performs an existential quantification over the variables in varset:
// it computes (exists varset . n1 op n2). This is done bottom-up, so that
// both the apply and the quantification are performed on the lower nodes
// before stepping up to the higher ones, making AppEx more efficient than an
// Apply followed by an Exist. Only the first four operators (OPand, OPxor,
// OPor, OPnand) may be used here.
func (b *BDD) AppEx(n1, n2 Node, op Operator, varset Node) Node {
	if int(op) > int(OPnand) {
		return b.seterror("operator %s not supported in call to AppEx", op)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to AppEx (%v)", varset)
	}
	if isConstant(*varset) { // empty set
		return b.Apply(n1, n2, op)
	}
	if b.checkptr(n1) != nil {
		return b.seterror("wrong operand in call to AppEx %s(left: %v)", op, n1)
	}
	if b.checkptr(n2) != nil {
		return b.seterror("wrong operand in call to AppEx %s(right: %v)", op, n2)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.applycache.op = int(OPor)
	b.appexcache.op = int(op)
	b.appexcache.id = (int(*varset) << 2) | b.appexcache.op
	b.quantcache.id = (b.appexcache.id << 3) | cacheidAPPEX
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	b.pushref(*varset)
	res := b.appquant(*n1, *n2, *varset)
	b.popref(3)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) appquant(left, right, varset edge) edge {
	op := Operator(b.appexcache.op)
	switch op {
	case OPand:
		if left == zeroEdge || right == zeroEdge {
			return zeroEdge
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == oneEdge {
			return b.quant(right, varset)
		}
		if right == oneEdge {
			return b.quant(left, varset)
		}
	case OPor:
		if left == oneEdge || right == oneEdge {
			return oneEdge
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == zeroEdge {
			return b.quant(right, varset)
		}
		if right == zeroEdge {
			return b.quant(left, varset)
		}
	case OPxor:
		if left == right {
			return zeroEdge
		}
		if left == zeroEdge {
			return b.quant(right, varset)
		}
		if right == zeroEdge {
			return b.quant(left, varset)
		}
	case OPnand:
		if left == right {
			return notSafe(b.quant(left, varset))
		}
		if left == zeroEdge || right == zeroEdge {
			return oneEdge
		}
	default:
		b.seterror("unauthorized operation (%s) in AppEx", op)
		return -1
	}

	if isConstant(left) && isConstant(right) {
		return kleeneEdge(kleeneApply(op, valconst(left), valconst(right)))
	}

	// no more variables to quantify: fall back to plain apply
	if b.levelOf(left) > b.quantcache.quantlast && b.levelOf(right) > b.quantcache.quantlast {
		oldop := b.applycache.op
		b.applycache.op = b.appexcache.op
		res := b.apply(left, right)
		b.applycache.op = oldop
		return res
	}

	if res := b.appexcache.matchappex(int(left), int(right)); res >= 0 {
		return edge(res)
	}
	leftlvl := b.levelOf(left)
	rightlvl := b.levelOf(right)
	var level int32
	var t, e edge
	switch {
	case leftlvl == rightlvl:
		level = leftlvl
		t = b.pushref(b.appquant(b.highEdge(left), b.highEdge(right), varset))
		e = b.pushref(b.appquant(b.lowEdge(left), b.lowEdge(right), varset))
	case leftlvl < rightlvl:
		level = leftlvl
		t = b.pushref(b.appquant(b.highEdge(left), right, varset))
		e = b.pushref(b.appquant(b.lowEdge(left), right, varset))
	default:
		level = rightlvl
		t = b.pushref(b.appquant(left, b.highEdge(right), varset))
		e = b.pushref(b.appquant(left, b.lowEdge(right), varset))
	}
	var res edge
	var err error
	if b.quantcache.quantset[level] == b.quantcache.quantsetID {
		b.applycache.op = int(OPor)
		res = b.apply(t, e)
	} else {
		res, err = b.canonicalize(level, t, e)
	}
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in appquant; %s", err)
		return -1
	}
	return edge(b.appexcache.setappex(int(left), int(right), int(res)))
}
