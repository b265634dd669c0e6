// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"errors"
)

// number of bytes in a int (adapted from uintSize in the math/bits package)
const huddsize = (2*(32<<(^uint(0)>>32&1)) + 32) / 8 // 12 (32 bits) or 20 (64 bits)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD, also the maximal number
// of variables. We reserve the top bit of the level field of a node for GC
// marking, so we keep one bit free compared to a plain int32.
const _MAXVAR int32 = 0x3FFFFFFF

// _GCMARK is the bit of the level field used to mark a node as reachable
// during garbage collection.
const _GCMARK int32 = 0x40000000

// _MAXREFCOUNT is the maximal value of the external reference counter, also
// used to stick nodes (like constants and variables) in the node list so that
// they are never reclaimed.
const _MAXREFCOUNT int32 = 0x3FFFFF

// _MAXREFFLAG is the bit of the refcou field reserved for the maxref flag (see
// maxref.go): it marks a node as already accounted against the budget of the
// currently executing reduced operation.
const _MAXREFFLAG int32 = 0x400000

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("unable to free memory or resize BDD")
var errResize = errors.New("should cache resize") // when gbc and then noderesize
var errReset = errors.New("should cache reset")    // when gbc only, without resizing
var errReorder = errors.New("variable reordering requested")
var errTimeout = errors.New("operation timed out")
