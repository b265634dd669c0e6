// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd3

import (
	"testing"
	"time"
)

// A deadline already in the past must make the very first Reduced call
// unwind immediately, invoke the configured handler exactly once, and
// report no result.
func TestTimeoutUnwindsAndInvokesHandler(t *testing.T) {
	bdd, err := New(4, Timeout(time.Nanosecond))
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	called := 0
	bdd.SetTimeoutHandler(func(b *BDD, arg interface{}) {
		called++
	}, nil)

	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	res, reduced := bdd.AndR(a, b, 1000)
	if res != nil {
		t.Errorf("AndR past the deadline: expected a nil result")
	}
	if reduced {
		t.Errorf("AndR past the deadline: expected reduced=false")
	}
	if called != 1 {
		t.Errorf("expected the timeout handler to fire exactly once, got %d", called)
	}
	if !bdd.checkWhetherToGiveUp() {
		t.Errorf("checkWhetherToGiveUp should keep reporting true once errorCode is latched")
	}
}

func TestForgetZerosAndOnes(t *testing.T) {
	bdd, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	f := bdd.And(a, b)

	fz := bdd.ForgetZeros(f)
	if !bdd.Equal(bdd.ReduceByValuation(fz, bdd.And(bdd.NIthvar(0), bdd.NIthvar(1))), bdd.Unknown()) {
		t.Errorf("ForgetZeros(a&b) restricted to !a&!b: expected Unknown")
	}
	// ForgetZeros(a&b) is a ? (b ? True : Unknown) : Unknown, already Unknown
	// wherever a&b does not hold, so restricting it to a&b changes nothing.
	if !bdd.Equal(bdd.ReduceByValuation(fz, bdd.Makeset([]int{0, 1})), fz) {
		t.Errorf("ForgetZeros(a&b) restricted to a&b: expected ForgetZeros(a&b) unchanged")
	}

	// ForgetOnes(a&b) is a ? (b ? Unknown : False) : False; its only Unknown
	// is at a&b and every other branch is already constant, so restricting
	// it to a&b changes nothing.
	fo := bdd.ForgetOnes(f)
	if !bdd.Equal(bdd.ReduceByValuation(fo, bdd.Makeset([]int{0, 1})), fo) {
		t.Errorf("ForgetOnes(a&b) restricted to a&b: expected ForgetOnes(a&b) unchanged")
	}
}

// MergeInterval must reproduce under exactly where the two bounds agree, and
// must turn into Unknown wherever under is false but over is true. Each check
// restricts the merged diagram to one point: ReduceByValuation keeps the
// merged value on the branch the point selects, keeps any constant the
// merged diagram has already reached, and is Unknown everywhere else.
func TestMergeInterval(t *testing.T) {
	bdd, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	a, b := bdd.Ithvar(0), bdd.Ithvar(1)
	under := bdd.And(a, b)
	over := bdd.Or(a, b)

	merged := bdd.MergeInterval(under, over)

	allTrue := bdd.Makeset([]int{0, 1})
	if !bdd.Equal(bdd.ReduceByValuation(merged, allTrue), bdd.Ite(a, bdd.Ite(b, bdd.True(), bdd.Unknown()), bdd.Unknown())) {
		t.Errorf("MergeInterval at a point where under is true: expected True there (a ? (b ? True : Unknown) : Unknown)")
	}

	allFalse := bdd.And(bdd.NIthvar(0), bdd.NIthvar(1))
	if !bdd.Equal(bdd.ReduceByValuation(merged, allFalse), bdd.Ite(a, bdd.Unknown(), bdd.Ite(b, bdd.Unknown(), bdd.False()))) {
		t.Errorf("MergeInterval at a point where over is false: expected False there (a ? Unknown : (b ? Unknown : False))")
	}

	// At a&!b the merged value is Unknown; the True reached at a&b is a
	// constant of the merged diagram and is kept.
	onlyA := bdd.And(bdd.Ithvar(0), bdd.NIthvar(1))
	if !bdd.Equal(bdd.ReduceByValuation(merged, onlyA), bdd.Ite(a, bdd.Ite(b, bdd.True(), bdd.Unknown()), bdd.Unknown())) {
		t.Errorf("MergeInterval strictly between under and over: expected Unknown there (a ? (b ? True : Unknown) : Unknown)")
	}
}
