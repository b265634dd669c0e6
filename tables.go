// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"
)

// node is an interior vertex of a three-valued ROBDD: a variable level and two
// outgoing edges. Constants (Unknown, at index 0, and One, at index 1) are
// also stored as entries of this same table so that accessor functions never
// need a special case. The level field packs a single GC-reachability mark in
// its top bit (see gc.go); the refcou field packs the maxref flag of C3 (see
// maxref.go) in a separate bit, following the same bit-packing idiom the
// teacher library uses for its own mark bits.
type node struct {
	level  int32 // variable level, with the GC mark in bit _GCMARK
	then   edge  // "high"/then branch; never complemented (see canonicalize in edge.go)
	els    edge  // "low"/else branch; may be complemented, except when then is Unknown
	refcou int32 // external reference count, with the maxref flag in bit _MAXREFFLAG
}

func (n node) ismarked() bool    { return n.level&_GCMARK != 0 }
func (n *node) mark()            { n.level |= _GCMARK }
func (n *node) unmark()          { n.level &^= _GCMARK }
func (n node) varlevel() int32   { return n.level &^ _GCMARK }

// BDD is the manager for a family of three-valued Reduced Ordered Binary
// Decision Diagrams sharing a single unique table, a single variable order,
// and a single set of computed-table caches.
type BDD struct {
	varnum   int32
	perm     []int32    // perm[i]: position of variable i in the current order (identity; no reordering)
	varset   [][2]edge  // varset[i] = {positive literal edge, negative literal edge}
	nodes    []node     // unique table storage; node 0 is Unknown, node 1 is One
	unique   map[[huddsize]byte]int
	hbuff    [huddsize]byte
	freenum  int
	freepos  int
	produced int

	refstack []edge // transiently-held edges, protected from GC during a computation

	nodefinalizer interface{}
	rng           *rand.Rand

	error error

	// Cross-cutting status fields, named to match the capabilities listed in
	// the external interface of the core (see SPEC_FULL.md §2, "Reordering
	// hook and timeout handler"). We do not implement dynamic variable reordering (a
	// Non-goal), so reordered is never set by MakeNode in this
	// implementation, but the field and the retry loop in driver.go that
	// reads it are both real: a future reordering pass would only need to
	// set this field and return errReorder from makenode.
	reordered      int
	errorCode      error
	timeoutHandler func(*BDD, interface{})
	tohArg         interface{}
	deadline       time.Time // zero value means "no deadline"

	gcstat
	configs

	applycache   *applycache
	itecache     *itecache
	quantcache   *quantcache
	appexcache   *appexcache
	replacecache *replacecache

	// Computed-table caches for the reduced (budget-bounded) operators, kept
	// distinct from the classical caches above because a reduced result may
	// not be cached when its call was itself reduced (see reduced.go).
	andrcache *data3ecache
	xorrcache *data3ecache
	itercache *data4ecache
}

// *************************************************************************
// Unique table: hashing, lookup, allocation, following the hashmap-based
// "hudd" design of the teacher library (tables.nodehash / tables.unique).

func (b *BDD) huddhash(level int32, then, els edge) {
	b.hbuff[0] = byte(level)
	b.hbuff[1] = byte(level >> 8)
	b.hbuff[2] = byte(level >> 16)
	b.hbuff[3] = byte(level >> 24)
	b.hbuff[4] = byte(then)
	b.hbuff[5] = byte(then >> 8)
	b.hbuff[6] = byte(then >> 16)
	b.hbuff[7] = byte(then >> 24)
	if huddsize == 20 {
		b.hbuff[8] = byte(then >> 32)
		b.hbuff[9] = byte(then >> 40)
		b.hbuff[10] = byte(then >> 48)
		b.hbuff[11] = byte(then >> 56)
		b.hbuff[12] = byte(els)
		b.hbuff[13] = byte(els >> 8)
		b.hbuff[14] = byte(els >> 16)
		b.hbuff[15] = byte(els >> 24)
		b.hbuff[16] = byte(els >> 32)
		b.hbuff[17] = byte(els >> 40)
		b.hbuff[18] = byte(els >> 48)
		b.hbuff[19] = byte(els >> 56)
		return
	}
	b.hbuff[8] = byte(els)
	b.hbuff[9] = byte(els >> 8)
	b.hbuff[10] = byte(els >> 16)
	b.hbuff[11] = byte(els >> 24)
}

func (b *BDD) nodehash(level int32, then, els edge) (int, bool) {
	b.huddhash(level, then, els)
	hn, ok := b.unique[b.hbuff]
	return hn, ok
}

func (b *BDD) setnode(level int32, then, els edge) int {
	b.huddhash(level, then, els)
	b.freenum--
	b.unique[b.hbuff] = b.freepos
	res := b.freepos
	b.freepos = int(b.nodes[b.freepos].then)
	b.nodes[res] = node{level: level, then: then, els: els}
	return res
}

func (b *BDD) delnode(n node) {
	b.huddhash(n.varlevel(), n.then, n.els)
	delete(b.unique, b.hbuff)
}

// makenode inserts-or-finds the interior node (level, then, els) in the
// unique table and returns the corresponding (uncomplemented) edge, or then
// itself when then == els. It does NOT enforce the canonical-form invariants
// of §3 of SPEC_FULL.md -- callers are expected to have already normalized
// (then, els) using canonicalize (see edge.go / reduce*.go / reduced.go).
// makenode may trigger garbage collection and table resizing (resizing the
// caches along with the table); it returns errMemory if neither frees a slot,
// and a nil error otherwise.
func (b *BDD) makenode(level int32, then, els edge) (edge, error) {
	if then == els {
		return then, nil
	}
	if hn, ok := b.nodehash(level, then, els); ok {
		return mkedge(hn, false), nil
	}
	if b.freepos == 0 {
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != errResize {
				return unknownEdge, errMemory
			}
			b.cacheresize(len(b.nodes))
		}
		if b.freepos == 0 {
			return unknownEdge, errMemory
		}
	}
	b.produced++
	return mkedge(b.setnode(level, then, els), false), nil
}

func (b *BDD) noderesize() error {
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", len(b.nodes))
	}
	oldsize := len(b.nodes)
	nodesize := len(b.nodes)
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]node, nodesize)
	copy(b.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = node{level: 0, then: edge(n + 1), els: -1}
	}
	b.nodes[nodesize-1].then = edge(b.freepos)
	b.freepos = oldsize
	b.freenum += nodesize - oldsize

	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", len(b.nodes))
	}
	return errResize
}

// *************************************************************************
// External references: Node is an opaque pointer to an edge value; retnode
// wraps a freshly produced edge into a Node and arranges for a finalizer to
// decrement the node's external reference count when the Go garbage
// collector reclaims it, exactly as in the teacher's retnode.

func (b *BDD) retnode(e edge) Node {
	n := idx(e)
	if n < 0 || n >= len(b.nodes) {
		if _DEBUG {
			log.Panicf("b.retnode(%d) not valid\n", e)
		}
		return nil
	}
	x := e
	if n > 1 && b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
		runtime.SetFinalizer(&x, b.nodefinalizer)
		if _DEBUG {
			atomic.AddUint64(&(b.gcstat.setfinalizers), 1)
		}
	}
	return &x
}

func (b *BDD) size() int { return len(b.nodes) }

func (b *BDD) level(n int) int32 { return b.nodes[n].varlevel() }
func (b *BDD) then_(n int) edge  { return b.nodes[n].then }
func (b *BDD) els_(n int) edge   { return b.nodes[n].els }

// levelOf, lowEdge and highEdge are the edge-level counterparts of level,
// Low and High: they operate directly on internal edges rather than on
// externally reference-counted Node values, and perform none of the
// exported functions' validation -- every recursive constructor in this
// package (operations.go, quant.go, replace.go, reducebyval.go,
// reducebylimit.go, reduced.go) is built on these three.
func (b *BDD) levelOf(e edge) int32 {
	return b.nodes[idx(e)].varlevel()
}

func (b *BDD) lowEdge(e edge) edge {
	i := idx(e)
	return notCond(b.nodes[i].els, isComplement(e))
}

func (b *BDD) highEdge(e edge) edge {
	i := idx(e)
	return notCond(b.nodes[i].then, isComplement(e))
}

// stats returns implementation-level information about the unique table.
func (b *BDD) stats() string {
	res := fmt.Sprintf("Allocated:  %d (%s)\n", len(b.nodes), humanSize(len(b.nodes), unsafe.Sizeof(node{})))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d (%.3g %%)\n", len(b.nodes)-b.freenum, 100.0-r)
	return res
}

func humanSize(n int, sz uintptr) string {
	bytes := float64(n) * float64(sz)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for bytes >= 1024 && i < len(units)-1 {
		bytes /= 1024
		i++
	}
	return fmt.Sprintf("%.3g%s", bytes, units[i])
}
