// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "testing"

func TestReduceByValuationConstants(t *testing.T) {
	bdd, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	f := bdd.And(a, b)

	if res := bdd.ReduceByValuation(f, bdd.True()); !bdd.Equal(res, f) {
		t.Errorf("ReduceByValuation(f, true): expected f unchanged, got a different node")
	}
	if res := bdd.ReduceByValuation(f, bdd.False()); !bdd.Equal(res, bdd.Unknown()) {
		t.Errorf("ReduceByValuation(f, false): expected Unknown")
	}
}

// ReduceByValuation under a full assignment keeps f's value on the branch
// the assignment selects and turns every branch it rules out into Unknown,
// except where f has already reached a constant before the assignment is
// exhausted: that constant is kept.
func TestReduceByValuationFullAssignment(t *testing.T) {
	bdd, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c, d := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)
	f := bdd.Or(bdd.And(a, b), bdd.And(c, d))

	val := bdd.Makeset([]int{0, 1, 2, 3})
	res := bdd.ReduceByValuation(f, val)
	want := bdd.Ite(a, bdd.Ite(b, bdd.True(), bdd.Unknown()), bdd.Unknown())
	if !bdd.Equal(res, want) {
		t.Errorf("ReduceByValuation(a&b|c&d, a&b&c&d): expected a ? (b ? True : Unknown) : Unknown")
	}

	val2 := bdd.And(bdd.NIthvar(0), bdd.NIthvar(1), bdd.NIthvar(2), bdd.NIthvar(3))
	res2 := bdd.ReduceByValuation(f, val2)
	want2 := bdd.Ite(a, bdd.Unknown(), bdd.Ite(b, bdd.Unknown(), bdd.Ite(c, bdd.Unknown(), bdd.False())))
	if !bdd.Equal(res2, want2) {
		t.Errorf("ReduceByValuation(a&b|c&d, !a&!b&!c&!d): expected a ? Unknown : (b ? Unknown : (c ? Unknown : False))")
	}
}

// A valuation that leaves a variable f depends on unassigned must keep f's
// dependence on that variable rather than silently picking a value.
func TestReduceByValuationPartialAssignment(t *testing.T) {
	bdd, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)

	val := bdd.Makeset([]int{0})
	res := bdd.ReduceByValuation(f, val)
	if bdd.Equal(res, bdd.True()) || bdd.Equal(res, bdd.False()) {
		t.Errorf("ReduceByValuation(a&b, a): expected a non-constant result that still depends on b")
	}
}

// isLiteral must recognize both polarities of a variable edge and reject
// every constant and every non-literal interior node.
func TestIsLiteral(t *testing.T) {
	bdd, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	a := bdd.Ithvar(0)
	na := bdd.NIthvar(0)
	b := bdd.Ithvar(1)
	f := bdd.And(a, b)

	if !bdd.isLiteral(*a) {
		t.Errorf("isLiteral(a): expected true")
	}
	if !bdd.isLiteral(*na) {
		t.Errorf("isLiteral(!a): expected true")
	}
	if bdd.isLiteral(*f) {
		t.Errorf("isLiteral(a&b): expected false")
	}
	if bdd.isLiteral(oneEdge) || bdd.isLiteral(zeroEdge) || bdd.isLiteral(unknownEdge) {
		t.Errorf("isLiteral(constant): expected false")
	}
}
