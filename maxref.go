// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

// This file implements the "maxref flag", a single bit of bookkeeping used
// by the budget-bounded Reduced operators (reduced.go, reducedops.go,
// reducebylimit.go) to charge each newly produced node against the
// operation's node-production budget exactly once, even though the same
// node may be revisited many times during a single recursive call. The flag
// is packed into the refcou field of a node (see tables.go), distinct from
// the GC-reachability mark packed into the level field.

// maxrefIsSet reports whether node n has already been counted against the
// current operation's budget.
func (b *BDD) maxrefIsSet(n int) bool {
	return b.nodes[n].refcou&_MAXREFFLAG != 0
}

// maxrefSet marks node n as counted against the current operation's budget.
func (b *BDD) maxrefSet(n int) {
	b.nodes[n].refcou |= _MAXREFFLAG
}

// maxrefClear removes the budget-accounting mark from node n, independently
// of its external reference count or GC mark.
func (b *BDD) maxrefClear(n int) {
	b.nodes[n].refcou &^= _MAXREFFLAG
}

// clearMaxrefRecur clears the maxref flag from e and, recursively, from
// every node reachable from it, stopping at constants and at nodes whose
// flag is already clear (so that a DAG is only ever visited once). It must
// be called once after every top-level Reduced operation, on its result, so
// that the flag is available again for the next call.
func (b *BDD) clearMaxrefRecur(e edge) {
	n := idx(e)
	if isConstant(e) || !b.maxrefIsSet(n) {
		return
	}
	b.maxrefClear(n)
	b.clearMaxrefRecur(b.nodes[n].then)
	b.clearMaxrefRecur(b.nodes[n].els)
}

// chargeNode decides whether the node freshly produced as r may be charged
// against limit, the node-production budget still available to the caller.
// Constants are free. A node already flagged was charged by an earlier,
// overlapping call within the same top-level operation and is free to
// revisit. Otherwise, if limit has been exhausted, r cannot be afforded: the
// caller must discard it and use Unknown instead (the node itself is left
// for the unique table's own reference-counting and garbage collector to
// reclaim, since nothing outside this call ever saw it). Otherwise r is
// flagged and limit is decremented by one. The returned bool reports whether
// the call was forced to collapse to Unknown, mirroring *resultReduced at
// the call site.
func (b *BDD) chargeNode(r edge, limit int) (edge, int, bool) {
	if isConstant(r) {
		return r, limit, false
	}
	n := idx(r)
	if b.maxrefIsSet(n) {
		return r, limit, false
	}
	if limit <= 0 {
		return unknownEdge, limit, true
	}
	b.maxrefSet(n)
	return r, limit - 1, false
}
