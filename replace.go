// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"fmt"
	"math"
)

var _REPLACEID = 1

// Replacer is the type of association lists used to replace variables in a
// BDD node.
type Replacer interface {
	Replace(int32) (int32, bool)
	Id() int
}

type replacer struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the level of old variables to the level of new variables
	last  int32   // last index in the Replacer, to speed up computations
}

func (r *replacer) String() string {
	res := fmt.Sprintf("replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k != int(v) {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

func (r *replacer) Replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *replacer) Id() int {
	return r.id
}

// NewReplacer returns a Replacer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same
// length or if we find the same index twice in either of them. All values
// must be in [0..Varnum).
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (Replacer, error) {
	res := &replacer{}
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	if _REPLACEID == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("too many replacers created")
	}
	res.id = (_REPLACEID << 2) | cacheidREPLACE
	_REPLACEID++
	varnum := b.Varnum()
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("invalid variable in oldvars (%d)", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
		if int32(v) > res.last {
			res.last = int32(v)
		}
	}
	seen := make([]bool, varnum)
	for _, v := range newvars {
		if seen[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in newvars", v)
		}
		seen[v] = true
		if int(res.image[v]) != v {
			return nil, fmt.Errorf("variable in newvars (%d) also occur in oldvars", v)
		}
	}
	return res, nil
}

// Replace takes a Replacer and computes the result of n after replacing old
// variables with new ones. See type Replacer. Unknown and the two Boolean
// constants have no variable to replace and pass through unchanged.
func (b *BDD) Replace(n Node, r Replacer) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Replace (%v)", n)
	}
	b.initref()
	b.pushref(*n)
	b.replacecache.id = r.Id()
	res := b.replace(*n, r)
	b.popref(1)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) replace(n edge, r Replacer) edge {
	if isConstant(n) {
		return n
	}
	image, ok := r.Replace(b.levelOf(n))
	if !ok {
		return n
	}
	if res := b.replacecache.matchreplace(int(n)); res >= 0 {
		return edge(res)
	}
	t := b.pushref(b.replace(b.highEdge(n), r))
	e := b.pushref(b.replace(b.lowEdge(n), r))
	res, err := b.correctify(image, t, e)
	b.popref(2)
	if err != nil {
		b.seterror("cannot allocate new node in replace; %s", err)
		return -1
	}
	return edge(b.replacecache.setreplace(int(n), int(res)))
}

// correctify rebuilds a node at the given target level out of children low
// and high that may themselves have been produced out of order by replace
// (when a Replacer maps variables across each other's original positions),
// descending through whichever child sits at a lower level until both
// children are properly below level.
func (b *BDD) correctify(level int32, t, e edge) (edge, error) {
	tlvl, elvl := b.levelOf(t), b.levelOf(e)
	if level < tlvl && level < elvl {
		return b.canonicalize(level, t, e)
	}
	if level == tlvl || level == elvl {
		b.seterror("error in replace level (%d) == low (%v:%d) or high (%v:%d)", level, e, elvl, t, tlvl)
		return -1, b.error
	}
	switch {
	case tlvl == elvl:
		l, err := b.correctify(level, b.lowEdge(t), b.lowEdge(e))
		if err != nil {
			return l, err
		}
		l = b.pushref(l)
		h, err := b.correctify(level, b.highEdge(t), b.highEdge(e))
		if err != nil {
			b.popref(1)
			return h, err
		}
		h = b.pushref(h)
		res, err := b.canonicalize(tlvl, h, l)
		b.popref(2)
		return res, err
	case tlvl < elvl:
		l, err := b.correctify(level, b.lowEdge(t), e)
		if err != nil {
			return l, err
		}
		l = b.pushref(l)
		h, err := b.correctify(level, b.highEdge(t), e)
		if err != nil {
			b.popref(1)
			return h, err
		}
		h = b.pushref(h)
		res, err := b.canonicalize(tlvl, h, l)
		b.popref(2)
		return res, err
	default:
		l, err := b.correctify(level, t, b.lowEdge(e))
		if err != nil {
			return l, err
		}
		l = b.pushref(l)
		h, err := b.correctify(level, t, b.highEdge(e))
		if err != nil {
			b.popref(1)
			return h, err
		}
		h = b.pushref(h)
		res, err := b.canonicalize(elvl, h, l)
		b.popref(2)
		return res, err
	}
}
