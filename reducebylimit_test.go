// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import "testing"

func TestReduceByNodeLimitExact(t *testing.T) {
	bdd, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := bdd.Or(bdd.And(a, b), c)

	res, reduced := bdd.ReduceByNodeLimit(f, 1000)
	if reduced {
		t.Errorf("ReduceByNodeLimit with a generous budget should not report reduced")
	}
	if !bdd.Equal(res, f) {
		t.Errorf("ReduceByNodeLimit with a generous budget should return f unchanged")
	}
}

func TestReduceByNodeLimitExhausted(t *testing.T) {
	bdd, err := New(6)
	if err != nil {
		t.Fatal(err)
	}
	vars := make([]Node, 6)
	for i := range vars {
		vars[i] = bdd.Ithvar(i)
	}
	f := vars[0]
	for i := 1; i < len(vars); i++ {
		f = bdd.Or(bdd.And(f, vars[i]), bdd.And(bdd.Not(f), bdd.Not(vars[i])))
	}

	res, reduced := bdd.ReduceByNodeLimit(f, 0)
	if !reduced {
		t.Errorf("ReduceByNodeLimit(f, 0) on a non-constant f: expected reduced=true")
	}
	if !bdd.Equal(res, bdd.Unknown()) {
		t.Errorf("ReduceByNodeLimit(f, 0) on a non-constant f: expected Unknown")
	}
}

// Every maxref flag raised while reconstructing the result must be cleared
// again once ReduceByNodeLimit returns, or a later budget-bounded call
// would undercount its own node production.
func TestReduceByNodeLimitClearsMaxref(t *testing.T) {
	bdd, err := New(5)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c, d := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2), bdd.Ithvar(3)
	f := bdd.Or(bdd.And(a, b), bdd.And(c, d))

	res, _ := bdd.ReduceByNodeLimit(f, 2)
	if res == nil {
		t.Fatal("ReduceByNodeLimit returned nil")
	}
	var walk func(e edge)
	walk = func(e edge) {
		if isConstant(e) {
			return
		}
		if bdd.maxrefIsSet(idx(e)) {
			t.Errorf("node %d still carries the maxref flag after ReduceByNodeLimit returned", idx(e))
		}
		walk(bdd.highEdge(e))
		walk(bdd.lowEdge(e))
	}
	walk(*res)
}

func TestMinNodeLimit(t *testing.T) {
	if minNodeLimit(0) != 0 {
		t.Errorf("minNodeLimit(0): expected 0")
	}
	if minNodeLimit(-5) != 0 {
		t.Errorf("minNodeLimit(-5): expected 0")
	}
	if minNodeLimit(3) != 2 {
		t.Errorf("minNodeLimit(3): expected 2")
	}
}
