// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// OrReduced, NandReduced, NorReduced and XnorReduced round out the
// budget-bounded operator set of reduced.go, each expressed through AndR or
// XorR and the constant-time Not, exactly as the original library routes
// its own OrReduced/NandReduced/NorReduced/XnorReduced through
// cuddBddAndReducedRecur/cuddBddXorReducedRecur with complemented inputs or
// outputs rather than duplicating the recursion.

// OrReduced computes f | g under the same node-budget discipline as AndR.
func (b *BDD) OrReduced(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to OrReduced (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to OrReduced (g: %v)", g)
		return nil, false
	}
	res, reduced := b.AndR(b.Not(f), b.Not(g), limit)
	if res == nil {
		return nil, false
	}
	return b.Not(res), reduced
}

// NandReduced computes not(f & g) under the same node-budget discipline as
// AndR.
func (b *BDD) NandReduced(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to NandReduced (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to NandReduced (g: %v)", g)
		return nil, false
	}
	res, reduced := b.AndR(f, g, limit)
	if res == nil {
		return nil, false
	}
	return b.Not(res), reduced
}

// NorReduced computes not(f | g) under the same node-budget discipline as
// AndR.
func (b *BDD) NorReduced(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to NorReduced (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to NorReduced (g: %v)", g)
		return nil, false
	}
	return b.AndR(b.Not(f), b.Not(g), limit)
}

// XnorReduced computes not(f xor g) under the same node-budget discipline
// as XorR.
func (b *BDD) XnorReduced(f, g Node, limit int) (Node, bool) {
	if b.checkptr(f) != nil {
		b.seterror("wrong operand in call to XnorReduced (f: %v)", f)
		return nil, false
	}
	if b.checkptr(g) != nil {
		b.seterror("wrong operand in call to XnorReduced (g: %v)", g)
		return nil, false
	}
	res, reduced := b.XorR(f, g, limit)
	if res == nil {
		return nil, false
	}
	return b.Not(res), reduced
}
