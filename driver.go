// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "time"

// SetTimeoutHandler installs h as the callback invoked whenever a Reduced
// operation (AndR, XorR, IteR and their wrappers) unwinds because the
// deadline set by the Timeout configuration option has passed. arg is
// handed back to h unchanged as its second parameter.
func (b *BDD) SetTimeoutHandler(h func(*BDD, interface{}), arg interface{}) {
	b.timeoutHandler = h
	b.tohArg = arg
}

// checkWhetherToGiveUp is the cooperative cancellation probe read at the top
// of every Reduced recursion (reduced.go): once deadline has passed it
// latches errorCode so every pending frame on the call stack unwinds without
// doing further work, mirroring the original library's checkWhetherToGiveUp.
func (b *BDD) checkWhetherToGiveUp() bool {
	if b.errorCode != nil {
		return true
	}
	if !b.deadline.IsZero() && time.Now().After(b.deadline) {
		b.errorCode = errTimeout
		return true
	}
	return false
}

// reducedDriver wraps one top-level Reduced operation in the mandatory
// retry loop: node creation may in principle trigger reordering (not
// implemented here, a Non-goal -- see tables.go's reordered field), so the
// loop is a single iteration in practice, but the shape matches every other
// driver in the original library and costs nothing when reordering never
// fires. inner must return a raw internal edge (possibly -1 on error) and
// the accumulated *resultReduced flag for that attempt.
func (b *BDD) reducedDriver(inner func() (edge, bool)) (edge, bool) {
	var res edge
	var reduced bool
	for {
		b.reordered = 0
		res, reduced = inner()
		if res >= 0 {
			b.clearMaxrefRecur(res)
		}
		if b.reordered != 1 {
			break
		}
	}
	if b.errorCode == errTimeout && b.timeoutHandler != nil {
		b.timeoutHandler(b, b.tohArg)
	}
	return res, reduced
}

// ForgetZeros turns every false-position of f into Unknown, leaving its
// true-positions and existing Unknown-positions alone.
func (b *BDD) ForgetZeros(f Node) Node {
	return b.Or(f, b.Unknown())
}

// ForgetOnes turns every true-position of f into Unknown, leaving its
// false-positions and existing Unknown-positions alone.
func (b *BDD) ForgetOnes(f Node) Node {
	return b.And(f, b.Unknown())
}

// MergeInterval combines an underapproximation and an overapproximation
// into a single three-valued diagram: true wherever under is true, false
// wherever over is false, and Unknown everywhere in between. under must
// imply over for the result to be a sound interval, but MergeInterval does
// not itself check this.
func (b *BDD) MergeInterval(under, over Node) Node {
	return b.And(b.Or(under, b.Unknown()), over)
}
