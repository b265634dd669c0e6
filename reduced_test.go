// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "testing"

// Under a generous budget, every Reduced operator must agree exactly with
// its classical counterpart and report reduced=false.
func TestAndXorIteReducedMatchClassical(t *testing.T) {
	bdd, err := New(5)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)

	want := bdd.And(a, b)
	got, reduced := bdd.AndR(a, b, 1000)
	if reduced {
		t.Errorf("AndR with a generous budget should not report reduced")
	}
	if !bdd.Equal(got, want) {
		t.Errorf("AndR(a,b) does not match And(a,b)")
	}

	wantXor := bdd.Apply(a, b, OPxor)
	gotXor, reduced := bdd.XorR(a, b, 1000)
	if reduced {
		t.Errorf("XorR with a generous budget should not report reduced")
	}
	if !bdd.Equal(gotXor, wantXor) {
		t.Errorf("XorR(a,b) does not match Xor(a,b)")
	}

	wantIte := bdd.Ite(a, b, c)
	gotIte, reduced := bdd.IteR(a, b, c, 1000)
	if reduced {
		t.Errorf("IteR with a generous budget should not report reduced")
	}
	if !bdd.Equal(gotIte, wantIte) {
		t.Errorf("IteR(a,b,c) does not match Ite(a,b,c)")
	}
}

// Under a budget too small to build the full result, AndR must still return
// a sound approximation: wherever it disagrees with the classical result, it
// must fall back to Unknown rather than a wrong constant, and it must flag
// reduced=true. With a budget of one node, only the top node is built: the
// x0 branch collapses to Unknown and the !x0 branch is the exact False.
func TestAndRSoundUnderTightBudget(t *testing.T) {
	bdd, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	vars := make([]Node, 8)
	for i := range vars {
		vars[i] = bdd.Ithvar(i)
	}
	f := bdd.And(vars...)
	g := bdd.And(vars[0], vars[1])

	want := bdd.Ite(vars[0], bdd.Unknown(), bdd.False())
	got, reduced := bdd.AndR(f, g, 1)
	if !reduced {
		t.Errorf("AndR under a tight budget on a large conjunction: expected reduced=true")
	}
	if !bdd.Equal(got, want) {
		t.Errorf("AndR under a tight budget: expected x0 ? Unknown : False, the classical And with its x0 branch collapsed")
	}
}

// The computed-table cache for AndR must not leak results across differing
// budgets: a cached Unknown produced under a tiny budget must not be served
// back verbatim to a later, more generous call for the same operands.
func TestAndRCacheRespectsLaterBudget(t *testing.T) {
	bdd, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	vars := make([]Node, 8)
	for i := range vars {
		vars[i] = bdd.Ithvar(i)
	}
	f := bdd.And(vars...)
	g := bdd.And(vars[0], vars[1])

	if _, reduced := bdd.AndR(f, g, 1); !reduced {
		t.Fatal("setup: expected the tight-budget call to report reduced")
	}

	want := bdd.And(f, g)
	got, reduced := bdd.AndR(f, g, 1000)
	if reduced {
		t.Errorf("AndR with a generous budget, called after a tight-budget call on the same operands, should not report reduced")
	}
	if !bdd.Equal(got, want) {
		t.Errorf("AndR with a generous budget, called after a tight-budget call on the same operands, should reproduce the exact conjunction")
	}
}

func TestDeMorganReducedWrappers(t *testing.T) {
	bdd, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)

	if got, reduced := bdd.OrReduced(a, b, 1000); reduced || !bdd.Equal(got, bdd.Or(a, b)) {
		t.Errorf("OrReduced(a,b) does not match Or(a,b)")
	}
	if got, reduced := bdd.NandReduced(a, b, 1000); reduced || !bdd.Equal(got, bdd.Apply(a, b, OPnand)) {
		t.Errorf("NandReduced(a,b) does not match Nand(a,b)")
	}
	if got, reduced := bdd.NorReduced(a, b, 1000); reduced || !bdd.Equal(got, bdd.Apply(a, b, OPnor)) {
		t.Errorf("NorReduced(a,b) does not match Nor(a,b)")
	}
	if got, reduced := bdd.XnorReduced(a, b, 1000); reduced || !bdd.Equal(got, bdd.Equiv(a, b)) {
		t.Errorf("XnorReduced(a,b) does not match Equiv(a,b)")
	}
}
