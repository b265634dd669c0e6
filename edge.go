// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// An edge is the internal, unreferenced representation of a Node: an integer
// encoding the index of a node in the unique table together with a single
// complement bit in the least significant position. This mirrors the
// "complemented edge" convention of classical ROBDD packages such as CUDD,
// with one addition: index 0 is reserved for the Unknown terminal and an edge
// pointing at it may never carry the complement bit (there is nothing to
// complement Unknown against). Every helper below that flips the complement
// bit goes through notSafe or notCond, the two places where this invariant
// is enforced, rather than being scattered across call sites.
//
// Index 1 is the One terminal; Zero is simply its complemented edge. Interior
// (non-constant) nodes occupy indices 2 and above in the unique table.
type edge = int

const unknownEdge edge = 0
const oneEdge edge = 1 << 1
const zeroEdge edge = oneEdge | 1

// idx returns the unique-table index a given edge points to, stripped of its
// complement bit.
func idx(e edge) int {
	return e >> 1
}

// mkedge builds the edge for unique-table index i with complement bit c.
func mkedge(i int, c bool) edge {
	if c {
		return edge(i<<1) | 1
	}
	return edge(i << 1)
}

// isComplement reports whether e carries the complement bit.
func isComplement(e edge) bool {
	return e&1 == 1
}

// regular strips the complement bit from e, returning the "positive" form of
// the same node.
func regular(e edge) edge {
	return e &^ 1
}

// isConstant reports whether e denotes one of the three terminals (Unknown,
// True or False).
func isConstant(e edge) bool {
	return idx(e) <= 1
}

// notSafe returns the logical complement of e, except that Unknown is
// returned unchanged: Unknown can never be complemented. Every place in this
// package that would otherwise call a raw "flip the bit" operation on an edge
// must go through notSafe (or notCond below) instead.
func notSafe(e edge) edge {
	if e == unknownEdge {
		return unknownEdge
	}
	return e ^ 1
}

// notCond returns the complement of e when cond holds, and e unchanged
// otherwise -- except that Unknown is always returned unchanged, regardless
// of cond. This is the three-valued analogue of Cudd_NotCond, and is, by
// design, the only primitive in the package allowed to flip a complement bit
// conditionally.
func notCond(e edge, cond bool) edge {
	if e == unknownEdge || !cond {
		return e
	}
	return e ^ 1
}

// canonicalize builds the node (level, t, e) through the manager's unique
// table, then restores the two canonical-form invariants that makenode
// itself does not enforce: a stored node's then child is never complemented,
// and Unknown is never pointed at by a complemented edge. Every recursive
// constructor in this package (reducebyval.go, reducebylimit.go, reduced.go)
// funnels its merge step through this helper rather than calling makenode
// directly.
func (b *BDD) canonicalize(level int32, t, e edge) (edge, error) {
	switch {
	case isComplement(t):
		n, err := b.makenode(level, notSafe(t), notCond(e, true))
		if err != nil {
			return n, err
		}
		return notSafe(n), nil
	case t == unknownEdge && isComplement(e):
		n, err := b.makenode(level, unknownEdge, notSafe(e))
		if err != nil {
			return n, err
		}
		return notSafe(n), nil
	default:
		return b.makenode(level, t, e)
	}
}
