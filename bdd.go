// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"log"
	"math/rand"
	"time"
)

// Node is a reference to an element of a BDD: an external, reference-counted
// handle on an edge value. It is the atomic unit of interaction with a BDD.
type Node *edge

// New returns a new BDD manager with varnum three-valued variables. Nodes 0
// and 1 of the unique table are reserved for the two constants that do not
// depend on any complement bit, Unknown and One; False is simply the
// complemented edge of One and needs no node of its own.
//
// It is possible to set optional (configuration) parameters, such as the size
// of the initial node table (Nodesize), the size of caches (Cachesize), or
// the traversal heuristic used by the budget-bounded operators (Heu), using
// the configuration functions of config.go. We return a nil value if there
// is an error while creating the BDD.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	b := &BDD{}
	if varnum < 1 || varnum > int(_MAXVAR) {
		b.seterror("bad number of variable (%d)", varnum)
		return nil, b.error
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b.minfreenodes = config.minfreenodes
	b.maxnodeincrease = config.maxnodeincrease
	b.maxnodesize = config.maxnodesize
	b.heuristic = config.heuristic
	if config.seeded {
		b.rng = rand.New(rand.NewSource(config.seed))
	} else {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if config.timeout > 0 {
		b.deadline = time.Now().Add(config.timeout)
	}

	nodesize := config.nodesize
	b.nodes = make([]node, nodesize)
	for k := range b.nodes {
		b.nodes[k] = node{level: 0, then: edge(k + 1), els: -1}
	}
	b.nodes[nodesize-1].then = 0
	b.unique = make(map[[huddsize]byte]int, nodesize)

	// Unknown (index 0) and One (index 1) are terminals; they sit outside
	// the unique table and are never reclaimed.
	b.nodes[0] = node{level: 0, then: unknownEdge, els: unknownEdge, refcou: _MAXREFCOUNT}
	b.nodes[1] = node{level: 0, then: oneEdge, els: oneEdge, refcou: _MAXREFCOUNT}
	b.freepos = 2
	b.freenum = len(b.nodes) - 2

	b.varset = make([][2]edge, 0)
	b.perm = make([]int32, 0)
	b.refstack = make([]edge, 0, varnum+4)
	b.initref()

	b.gcstat.history = []gcpoint{}
	b.nodefinalizer = func(n *edge) {
		i := idx(*n)
		if _DEBUG {
			b.gcstat.calledfinalizers++
			if _LOGLEVEL > 2 {
				log.Printf("dec refcou %d\n", i)
			}
		}
		if b.nodes[i].refcou > 0 {
			b.nodes[i].refcou--
		}
	}

	b.cacheinit(config)
	if err := b.SetVarnum(varnum); err != nil {
		return nil, err
	}
	return b, nil
}

// Varnum returns the number of declared variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// Unknown returns the Node for the "don't know" constant.
func (b *BDD) Unknown() Node {
	return b.retnode(unknownEdge)
}

// True returns the Node for the constant true.
func (b *BDD) True() Node {
	return b.retnode(oneEdge)
}

// False returns the Node for the constant false.
func (b *BDD) False() Node {
	return b.retnode(zeroEdge)
}

// From returns a constant Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return b.True()
	}
	return b.False()
}

// Ithvar returns the Node representing the i'th variable, in its positive
// form. The requested variable must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if i < 0 || i >= int(b.varnum) {
		return b.seterror("unknown variable number (%d) in Ithvar", i)
	}
	return b.retnode(b.varset[i][0])
}

// NIthvar returns the Node representing the negation of the i'th variable.
// Since edges carry a complement bit, this is simply the complemented edge of
// Ithvar(i) and allocates no new node.
func (b *BDD) NIthvar(i int) Node {
	if i < 0 || i >= int(b.varnum) {
		return b.seterror("unknown variable number (%d) in NIthvar", i)
	}
	return b.retnode(b.varset[i][1])
}

// checkptr validates that n is a Node produced by this BDD and currently
// in range. It is the first thing every exported operation does with each of
// its Node arguments.
func (b *BDD) checkptr(n Node) error {
	if n == nil {
		return errMemory
	}
	i := idx(*n)
	if i < 0 || i >= len(b.nodes) {
		return errMemory
	}
	return nil
}

// Low returns the false branch of n, or nil if there is an error.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Low (%v)", n)
	}
	if isConstant(*n) {
		return b.seterror("cannot take Low of a constant")
	}
	i := idx(*n)
	return b.retnode(notCond(b.nodes[i].els, isComplement(*n)))
}

// High returns the true branch of n, or nil if there is an error.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to High (%v)", n)
	}
	if isConstant(*n) {
		return b.seterror("cannot take High of a constant")
	}
	i := idx(*n)
	return b.retnode(notCond(b.nodes[i].then, isComplement(*n)))
}

// GC explicitly starts garbage collection of unused nodes.
func (b *BDD) GC() {
	b.initref()
	b.gbc()
}

// Stats returns implementation-level information about the BDD: size of the
// node table, cache hit rates, and GC history.
func (b *BDD) Stats() string {
	res := b.stats()
	res += b.applycache.String()
	res += b.itecache.String()
	res += b.quantcache.String()
	res += b.appexcache.String()
	res += b.replacecache.String()
	res += b.andrcache.String("AndR cache")
	res += b.xorrcache.String("XorR cache")
	res += b.itercache.String("IteR cache")
	return res
}

// *************************************************************************
// Convenience combinators, built on top of Apply/AppEx.

// And returns the logical conjunction of a sequence of nodes.
func (b *BDD) And(n ...Node) Node {
	if len(n) == 0 {
		return b.True()
	}
	if len(n) == 1 {
		return n[0]
	}
	return b.Apply(n[0], b.And(n[1:]...), OPand)
}

// Or returns the logical disjunction of a sequence of nodes.
func (b *BDD) Or(n ...Node) Node {
	if len(n) == 0 {
		return b.False()
	}
	if len(n) == 1 {
		return n[0]
	}
	return b.Apply(n[0], b.Or(n[1:]...), OPor)
}

// Imp returns the logical implication between two nodes.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical bi-implication between two nodes.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal tests structural equivalence between two nodes.
func (b *BDD) Equal(low, high Node) bool {
	if low == high {
		return true
	}
	if low == nil || high == nil {
		return false
	}
	return *low == *high
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset: the result of (exists varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}
