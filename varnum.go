// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "log"

// SetVarnum sets the number of BDD variables. It may be called more than once,
// but only to increase the number of variables. Because the package uses
// complemented edges, a single unique-table node per variable suffices: the
// negative literal is simply the complemented edge of the positive one, so
// unlike a representation without complement bits we never allocate two nodes
// per variable.
func (b *BDD) SetVarnum(num int) error {
	oldvarnum := b.varnum
	inum := int32(num)
	if inum < 1 || inum > _MAXVAR {
		b.seterror("Bad number of variable (%d) in setvarnum", inum)
		return b.error
	}
	if inum < b.varnum {
		b.seterror("Trying to decrease the number of variables in SetVarnum (from %d to %d)", b.varnum, inum)
		return b.error
	}
	if inum == b.varnum {
		return b.error
	}

	tmpvarset := b.varset
	b.varset = make([][2]edge, inum)
	copy(b.varset, tmpvarset)

	tmpperm := b.perm
	b.perm = make([]int32, inum)
	copy(b.perm, tmpperm)

	// constants always sit above every variable.
	b.nodes[0].level = inum
	b.nodes[1].level = inum

	b.refstack = make([]edge, 0, inum+4)
	b.initref()
	for ; b.varnum < inum; b.varnum++ {
		b.perm[b.varnum] = b.varnum
		pos, err := b.makenode(b.varnum, oneEdge, zeroEdge)
		if err != nil {
			b.varnum = oldvarnum
			b.seterror("Cannot allocate new variable %d in SetVarnum; %s", b.varnum, b.error)
			return b.error
		}
		b.varset[b.varnum] = [2]edge{pos, notSafe(pos)}
		b.nodes[idx(pos)].refcou = _MAXREFCOUNT
	}

	b.quantcache.quantset = make([]int32, b.varnum)
	b.quantcache.quantsetID = 0

	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", b.varnum)
	}
	return nil
}

// ExtVarnum extends the current number of allocated BDD variables with num
// extra variables.
func (b *BDD) ExtVarnum(num int) error {
	if num < 0 || num > int(_MAXVAR) {
		b.seterror("Bad choice of value (%d) when extending varnum in ExtVarnum", num)
		return b.error
	}
	return b.SetVarnum(int(b.varnum) + num)
}
