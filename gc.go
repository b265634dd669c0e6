// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"log"
)

// gcstat stores status information about garbage collections.
type gcstat struct {
	setfinalizers    uint64    // total number of external references handed out
	calledfinalizers uint64    // number of external references that were freed
	history          []gcpoint // snapshot of GC stats at each occurrence
}

type gcpoint struct {
	nodes            int
	freenodes        int
	setfinalizers    int
	calledfinalizers int
}

// *************************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be chained. It never raises an error, even on an out-of-range or
// already-collected node.
func (b *BDD) AddRef(n Node) Node {
	if n == nil {
		return n
	}
	i := idx(*n)
	if i < 2 || i >= len(b.nodes) {
		return n
	}
	if b.nodes[i].els == -1 {
		return n
	}
	if b.nodes[i].refcou&_MAXREFCOUNT < _MAXREFCOUNT {
		b.nodes[i].refcou++
	}
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be chained. It never raises an error.
func (b *BDD) DelRef(n Node) Node {
	if n == nil {
		return n
	}
	i := idx(*n)
	if i < 2 || i >= len(b.nodes) {
		return n
	}
	if b.nodes[i].els == -1 {
		return n
	}
	if b.nodes[i].refcou <= 0 {
		return n
	}
	if b.nodes[i].refcou&_MAXREFCOUNT < _MAXREFCOUNT {
		b.nodes[i].refcou--
	}
	return n
}

// *************************************************************************

// gbc reclaims the nodes that are neither externally referenced nor held in
// the refstack, called from makenode when the free list is exhausted.
func (b *BDD) gbc() {
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	if b.error != nil {
		return
	}

	if _DEBUG {
		b.gcstat.history = append(b.gcstat.history, gcpoint{
			nodes:            len(b.nodes),
			freenodes:        b.freenum,
			setfinalizers:    int(b.gcstat.setfinalizers),
			calledfinalizers: int(b.gcstat.calledfinalizers),
		})
		b.gcstat.setfinalizers = 0
		b.gcstat.calledfinalizers = 0
	} else {
		b.gcstat.history = append(b.gcstat.history, gcpoint{
			nodes:     len(b.nodes),
			freenodes: b.freenum,
		})
	}

	for _, r := range b.refstack {
		b.markrec(idx(r))
	}
	for k := range b.nodes {
		if k < 2 {
			continue
		}
		if b.nodes[k].refcou&_MAXREFCOUNT > 0 {
			b.markrec(k)
		}
	}

	b.freepos = 0
	b.freenum = 0
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.nodes[n].els == -1 {
			// already free
			b.nodes[n].then = edge(b.freepos)
			b.freepos = n
			b.freenum++
			continue
		}
		if b.nodes[n].ismarked() {
			b.nodes[n].unmark()
			continue
		}
		b.delnode(b.nodes[n])
		b.nodes[n] = node{level: 0, then: edge(b.freepos), els: -1}
		b.freepos = n
		b.freenum++
	}

	b.cachereset()
	if _LOGLEVEL > 0 {
		log.Printf("end GC; freenum: %d\n", b.freenum)
	}
}

// *************************************************************************
// recursive mark / unmark, used by gbc and by introspection (stdio.go).

func (b *BDD) markrec(n int) {
	if n < 2 || b.nodes[n].ismarked() || b.nodes[n].els == -1 {
		return
	}
	b.nodes[n].mark()
	b.markrec(idx(b.nodes[n].then))
	b.markrec(idx(b.nodes[n].els))
}

func (b *BDD) unmarkall() {
	for k := range b.nodes {
		if k < 2 || !b.nodes[k].ismarked() || b.nodes[k].els == -1 {
			continue
		}
		b.nodes[k].unmark()
	}
}

// *************************************************************************
// refstack: holds edges that are transiently alive during a single top-level
// computation, protecting them from gbc even though they carry no external
// reference yet. This plays the role cuddRef/cuddDeref play in the original
// CUDD recursion, simplified to the teacher's push/pop discipline: a node
// reachable from the refstack survives a collection; once popped it is only
// as alive as the structure that references it.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(e edge) edge {
	b.refstack = append(b.refstack, e)
	return e
}

func (b *BDD) popref(n int) {
	b.refstack = b.refstack[:len(b.refstack)-n]
}
