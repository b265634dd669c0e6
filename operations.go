// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"fmt"
	"math/big"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be
// nil if there is an error, and it is sorted in the natural order between
// levels.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) != nil {
		return nil
	}
	if isConstant(*n) {
		return nil
	}
	res := []int{}
	for e := *n; !isConstant(e); e = b.highEdge(e) {
		res = append(res, int(b.levelOf(e)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all
// the variables in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a. It returns False and sets the error condition in
// b if one of the variables is outside the scope of the BDD.
func (b *BDD) Makeset(varset []int) Node {
	res := b.True()
	for _, level := range varset {
		res = b.Apply(res, b.Ithvar(level), OPand)
		if b.Errored() {
			return b.False()
		}
	}
	return res
}

// Not returns the negation of n. Because edges carry a complement bit, this
// is a constant-time operation: it never visits n's children and never
// allocates a node, unlike the recursive negation needed by a representation
// without complemented edges.
func (b *BDD) Not(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Not (%v)", n)
	}
	return b.retnode(notSafe(*n))
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Operator op must be one of the following:
//
//	Identifier    Description             Truth table
//
//	OPand         logical and              [0,0,0,1]
//	OPxor         logical xor              [0,1,1,0]
//	OPor          logical or               [0,1,1,1]
//	OPnand        logical not-and          [1,1,1,0]
//	OPnor         logical not-or           [1,0,0,0]
//	OPimp         implication              [1,1,0,1]
//	OPbiimp       equivalence              [1,0,0,1]
//	OPdiff        set difference           [0,0,1,0]
//	OPless        less than                [0,1,0,0]
//	OPinvimp      reverse implication      [1,0,1,1]
//
// When one of the operands is Unknown, the result follows the standard
// three-valued (Kleene) reading of the operator: the result is Unknown
// unless it is forced to a fixed value regardless of what Unknown would
// resolve to.
func (b *BDD) Apply(n1, n2 Node, op Operator) Node {
	if b.checkptr(n1) != nil {
		return b.seterror("wrong operand in call to Apply %s(n1: %v, n2: ...)", op, n1)
	}
	if b.checkptr(n2) != nil {
		return b.seterror("wrong operand in call to Apply %s(n1: ..., n2: %v)", op, n2)
	}
	b.applycache.op = int(op)
	b.initref()
	b.pushref(*n1)
	b.pushref(*n2)
	res := b.apply(*n1, *n2)
	b.popref(2)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

// valconst maps a constant edge to its Kleene truth value: 0 for False, 1 for
// True, 2 for Unknown.
func valconst(e edge) int {
	switch e {
	case oneEdge:
		return 1
	case zeroEdge:
		return 0
	default:
		return 2
	}
}

func kleeneEdge(v int) edge {
	switch v {
	case 1:
		return oneEdge
	case 0:
		return zeroEdge
	default:
		return unknownEdge
	}
}

func (b *BDD) apply(left, right edge) edge {
	op := Operator(b.applycache.op)
	switch op {
	case OPand:
		if left == right {
			return left
		}
		if left == zeroEdge || right == zeroEdge {
			return zeroEdge
		}
		if left == oneEdge {
			return right
		}
		if right == oneEdge {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if left == oneEdge || right == oneEdge {
			return oneEdge
		}
		if left == zeroEdge {
			return right
		}
		if right == zeroEdge {
			return left
		}
	case OPxor:
		if left == right {
			return zeroEdge
		}
		if left == zeroEdge {
			return right
		}
		if right == zeroEdge {
			return left
		}
	case OPnand:
		if left == right {
			return notSafe(left)
		}
		if left == zeroEdge || right == zeroEdge {
			return oneEdge
		}
	case OPnor:
		if left == right {
			return notSafe(left)
		}
		if left == oneEdge || right == oneEdge {
			return zeroEdge
		}
	case OPimp:
		if left == zeroEdge {
			return oneEdge
		}
		if left == oneEdge {
			return right
		}
		if right == oneEdge {
			return oneEdge
		}
		if left == right {
			return oneEdge
		}
	case OPbiimp:
		if left == right {
			return oneEdge
		}
		if left == oneEdge {
			return right
		}
		if right == oneEdge {
			return left
		}
	case OPdiff:
		if left == right {
			return zeroEdge
		}
		if right == oneEdge {
			return zeroEdge
		}
		if left == zeroEdge {
			return zeroEdge
		}
	case OPless:
		if left == right {
			return zeroEdge
		}
		if left == oneEdge {
			return zeroEdge
		}
		if right == zeroEdge {
			return zeroEdge
		}
	case OPinvimp:
		if right == zeroEdge {
			return oneEdge
		}
		if right == oneEdge {
			return left
		}
		if left == oneEdge {
			return oneEdge
		}
		if left == right {
			return oneEdge
		}
	default:
		b.seterror("unauthorized operation (%s) in apply", op)
		return -1
	}

	if isConstant(left) && isConstant(right) {
		return kleeneEdge(kleeneApply(op, valconst(left), valconst(right)))
	}

	if res := b.applycache.matchapply(int(left), int(right)); res >= 0 {
		return edge(res)
	}
	leftlvl := b.levelOf(left)
	rightlvl := b.levelOf(right)
	var level int32
	var t, e edge
	switch {
	case leftlvl == rightlvl:
		level = leftlvl
		t = b.pushref(b.apply(b.highEdge(left), b.highEdge(right)))
		e = b.pushref(b.apply(b.lowEdge(left), b.lowEdge(right)))
	case leftlvl < rightlvl:
		level = leftlvl
		t = b.pushref(b.apply(b.highEdge(left), right))
		e = b.pushref(b.apply(b.lowEdge(left), right))
	default:
		level = rightlvl
		t = b.pushref(b.apply(left, b.highEdge(right)))
		e = b.pushref(b.apply(left, b.lowEdge(right)))
	}
	res, err := b.canonicalize(level, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in apply; %s", err)
		return -1
	}
	return edge(b.applycache.setapply(int(left), int(right), int(res)))
}

// Ite, short for if-then-else, computes the BDD for the expression
// (f & g) | (!f & h) more efficiently than doing the three operations
// separately. Because g==h is checked before any of f's constant values,
// the result still equals g whenever f is Unknown and g and h agree.
func (b *BDD) Ite(f, g, h Node) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Ite (f: %v)", f)
	}
	if b.checkptr(g) != nil {
		return b.seterror("wrong operand in call to Ite (g: %v)", g)
	}
	if b.checkptr(h) != nil {
		return b.seterror("wrong operand in call to Ite (h: %v)", h)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

// iteLow returns n if its level p is not the topmost among p, q and r;
// otherwise it returns n's low branch. Used to know which of f, g, h to
// descend into at each step: we always follow the topmost node(s).
func (b *BDD) iteLow(p, q, r int32, n edge) edge {
	if p > q || p > r {
		return n
	}
	return b.lowEdge(n)
}

func (b *BDD) iteHigh(p, q, r int32, n edge) edge {
	if p > q || p > r {
		return n
	}
	return b.highEdge(n)
}

// min3 returns the smallest of p, q and r.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

func (b *BDD) ite(f, g, h edge) edge {
	switch {
	case g == h:
		return g
	case f == oneEdge:
		return g
	case f == zeroEdge:
		return h
	case f == unknownEdge:
		return unknownEdge
	case g == oneEdge && h == zeroEdge:
		return f
	case g == zeroEdge && h == oneEdge:
		return notSafe(f)
	}

	if res := b.itecache.matchite(int(f), int(g), int(h)); res >= 0 {
		return edge(res)
	}
	p := b.levelOf(f)
	q := b.levelOf(g)
	r := b.levelOf(h)
	t := b.pushref(b.ite(b.iteHigh(p, q, r, f), b.iteHigh(q, p, r, g), b.iteHigh(r, p, q, h)))
	e := b.pushref(b.ite(b.iteLow(p, q, r, f), b.iteLow(q, p, r, g), b.iteLow(r, p, q, h)))
	res, err := b.canonicalize(min3(p, q, r), t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in ite; %s", err)
		return -1
	}
	return edge(b.itecache.setite(int(f), int(g), int(h), int(res)))
}

// Satcount computes the number of satisfying (true) variable assignments for
// the function denoted by n, counting Unknown leaves as neither satisfying
// nor falsifying. We return a result using arbitrary-precision arithmetic to
// avoid possible overflows. The result is zero (and we set the error flag of
// b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	res := big.NewInt(0)
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Satcount (%v)", n)
		return res
	}
	res.SetBit(res, int(b.levelOf(*n)), 1)
	satc := make(map[edge]*big.Int)
	return res.Mul(res, b.satcount(*n, satc))
}

func (b *BDD) satcount(n edge, satc map[edge]*big.Int) *big.Int {
	if n == zeroEdge || n == unknownEdge {
		return big.NewInt(0)
	}
	if n == oneEdge {
		return big.NewInt(1)
	}
	if res, ok := satc[n]; ok {
		return res
	}
	level := b.levelOf(n)
	low := b.lowEdge(n)
	high := b.highEdge(n)

	res := big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.levelOf(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.levelOf(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Allsat iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length Varnum to f
// where each entry is 0 if the variable is false, 1 if true, and -1 if it is
// a don't care. Only assignments leading to True are reported: those leading
// to Unknown, like those leading to False, are skipped. We stop and return an
// error if f returns an error at some point.
func (b *BDD) Allsat(f func([]int) error, n Node) error {
	if b.checkptr(n) != nil {
		return fmt.Errorf("wrong node in call to Allsat (%v)", n)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(n edge, prof []int, f func([]int) error) error {
	if n == oneEdge {
		return f(prof)
	}
	if n == zeroEdge || n == unknownEdge {
		return nil
	}

	if low := b.lowEdge(n); low != zeroEdge && low != unknownEdge {
		prof[b.levelOf(n)] = 0
		for v := b.levelOf(low) - 1; v > b.levelOf(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := b.highEdge(n); high != zeroEdge && high != unknownEdge {
		prof[b.levelOf(n)] = 1
		for v := b.levelOf(high) - 1; v > b.levelOf(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes
// in n..., or all the active nodes if n is absent. The parameters to f are
// the id, level, and ids of the low and high successors of each node. The
// constant True always has id 1; its complemented form False is reported
// under the reserved id -1 so a caller can tell the two apart without
// decoding complement bits; the Unknown terminal always has id 0. The order
// nodes are visited in is unspecified. We stop the computation and return an
// error if f returns an error at some point.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if b.checkptr(v) != nil {
			return fmt.Errorf("wrong node in call to Allnodes")
		}
	}
	if len(n) == 0 {
		return b.allnodes(f)
	}
	b.unmarkall()
	for _, v := range n {
		if err := b.allnodesrec(*v, f); err != nil {
			b.unmarkall()
			return err
		}
	}
	b.unmarkall()
	return nil
}

func (b *BDD) allnodes(f func(id, level, low, high int) error) error {
	for i := 2; i < len(b.nodes); i++ {
		if b.nodes[i].els == -1 {
			continue
		}
		if err := f(i, int(b.nodes[i].varlevel()), signedChild(b.nodes[i].els), signedChild(b.nodes[i].then)); err != nil {
			return err
		}
	}
	return nil
}

func (b *BDD) allnodesrec(n edge, f func(id, level, low, high int) error) error {
	i := idx(n)
	if i < 2 || b.nodes[i].ismarked() {
		return nil
	}
	b.nodes[i].mark()
	if err := f(i, int(b.nodes[i].varlevel()), signedChild(b.nodes[i].els), signedChild(b.nodes[i].then)); err != nil {
		return err
	}
	if err := b.allnodesrec(b.nodes[i].els, f); err != nil {
		return err
	}
	return b.allnodesrec(b.nodes[i].then, f)
}

// signedChild reports a child edge as an id suitable for Allnodes: regular
// node indices pass through unchanged, while the complemented form of node 1
// (i.e. False) is reported as -1 so a caller can tell it apart from True
// without decoding complement bits itself.
func signedChild(e edge) int {
	if e == zeroEdge {
		return -1
	}
	return idx(e)
}
