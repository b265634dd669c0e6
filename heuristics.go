// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "math"

// A Heuristic picks, at a single step of a budget-bounded Reduced operation
// (see reduced.go), whether the recursion should explore the then-branch or
// the else-branch of the top node(s) first. It is given the one, two or
// three operands of the call (g and h may be absent, signalled by hasG and
// hasH); at least one of the present operands is guaranteed non-constant. A
// negative return means "then first", a non-negative return means "else
// first" -- mirroring the convention of the CUDD extension this is grounded
// on, where the sign of the decision selects the branch.
type Heuristic func(b *BDD, f, g, h edge, hasG, hasH bool) int

// nodeIndex returns the position, in the current variable order, of the
// top variable of e. Constants (One, Zero and Unknown alike) are given the
// maximal possible index so that they never win a "topmost variable" race:
// per the data model, perm[unknown] is +Inf, and the same convention is
// extended here to every constant, since none of them can be split further.
func (b *BDD) nodeIndex(e edge) int32 {
	i := idx(e)
	if i <= 1 {
		return math.MaxInt32
	}
	return b.perm[b.nodes[i].varlevel()]
}

// RandomHeuristic picks a branch uniformly at random, ignoring its operands
// entirely.
func RandomHeuristic(b *BDD, f, g, h edge, hasG, hasH bool) int {
	if b.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// GreedyOneStep scores the then- and else-children of whichever operand(s)
// sit at the topmost variable: a constant child counts 1 toward its side's
// "const" tally, a non-constant child contributes its variable's position to
// its side's "score" tally. The branch with more constant children wins,
// ties broken by score, remaining ties broken at random.
func GreedyOneStep(b *BDD, f, g, h edge, hasG, hasH bool) int {
	var tconst, econst, tscore, escore int32
	top := b.nodeIndex(f)
	if hasG {
		if gi := b.nodeIndex(g); gi < top {
			top = gi
		}
	}
	if hasH {
		if hi := b.nodeIndex(h); hi < top {
			top = hi
		}
	}
	score := func(e edge) {
		if b.nodeIndex(e) != top {
			return
		}
		t, el := b.regularThenElse(e)
		if isConstant(t) {
			tconst++
		} else {
			tscore += b.nodeIndex(t)
		}
		if isConstant(el) {
			econst++
		} else {
			escore += b.nodeIndex(el)
		}
	}
	score(f)
	if hasG {
		score(g)
	}
	if hasH {
		score(h)
	}
	switch {
	case tconst > econst || (tconst == econst && tscore > escore):
		return -1
	case tconst < econst || (tconst == econst && tscore < escore):
		return 1
	default:
		return RandomHeuristic(b, f, g, h, hasG, hasH)
	}
}

// GreedyTwoStep is GreedyOneStep extended to look one level deeper: a
// then/else child that is itself constant counts 8 toward its side, and
// otherwise each of ITS children contributes to the const/score tally,
// following countNodeScore of the original heuristic.
func GreedyTwoStep(b *BDD, f, g, h edge, hasG, hasH bool) int {
	var tconst, econst, tscore, escore int32
	top := b.nodeIndex(f)
	if hasG {
		if gi := b.nodeIndex(g); gi < top {
			top = gi
		}
	}
	if hasH {
		if hi := b.nodeIndex(h); hi < top {
			top = hi
		}
	}
	count := func(e edge, con, sc *int32) {
		if isConstant(e) {
			*con += 1
			return
		}
		*sc += b.nodeIndex(e)
	}
	score := func(e edge) {
		if b.nodeIndex(e) != top {
			return
		}
		t, el := b.regularThenElse(e)
		if isConstant(t) {
			tconst += 8
		} else {
			tt, te := b.regularThenElse(t)
			count(tt, &tconst, &tscore)
			count(te, &tconst, &tscore)
		}
		if isConstant(el) {
			econst += 8
		} else {
			et, ee := b.regularThenElse(el)
			count(et, &econst, &escore)
			count(ee, &econst, &escore)
		}
	}
	score(f)
	if hasG {
		score(g)
	}
	if hasH {
		score(h)
	}
	switch {
	case tconst > econst || (tconst == econst && tscore > escore):
		return -1
	case tconst < econst || (tconst == econst && tscore < escore):
		return 1
	default:
		return RandomHeuristic(b, f, g, h, hasG, hasH)
	}
}

// regularThenElse returns the then- and (regularized) else-children of the
// node that e, regardless of its own complement bit, points to: the then
// child as stored (never complemented, see canonicalize), and
// the else child stripped of its complement bit, since the heuristics only
// ever need to know whether a child is constant and, if not, its top
// variable -- both insensitive to complementation.
func (b *BDD) regularThenElse(e edge) (edge, edge) {
	n := &b.nodes[idx(e)]
	return n.then, regular(n.els)
}
