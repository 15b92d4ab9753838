package serime

import (
	"math"
	"strings"
	"testing"
)

func TestCompareScalars(t *testing.T) {
	if !Equal(Num(math.NaN()), Num(math.NaN())) {
		t.Fatal("NaN should equal NaN")
	}
	if Equal(Num(0), Num(negativeZero())) {
		t.Fatal("+0 should not equal -0")
	}
	if !Equal(Str("a"), Str("a")) || Equal(Str("a"), Str("b")) {
		t.Fatal("string comparison broken")
	}
	if Equal(Null(), Undefined()) {
		t.Fatal("null should not equal undefined")
	}
	if !Equal(Null(), Null()) {
		t.Fatal("null should equal null")
	}
}

func TestCompareMismatchIsReported(t *testing.T) {
	a := NewObject()
	a.Set("x", Num(1))
	b := NewObject()
	b.Set("x", Num(2))
	m := Compare(a, b)
	if m == nil {
		t.Fatal("mismatch not reported")
	}
	if len(m.Path) == 0 || m.Path[0] != "root" {
		t.Fatalf("path = %v", m.Path)
	}
	if !strings.Contains(m.Error(), "number") {
		t.Fatalf("error = %v", m)
	}
}

func TestCompareCycles(t *testing.T) {
	a := NewObject()
	a.Set("self", a)
	b := NewObject()
	b.Set("self", b)
	if m := Compare(a, b); m != nil {
		t.Fatalf("equal cycles reported unequal: %v", m)
	}

	c := NewObject()
	c.Set("self", c)
	c.Set("extra", Num(1))
	if Compare(a, c) == nil {
		t.Fatal("different cycles reported equal")
	}
}

func TestCompareDescriptors(t *testing.T) {
	a := NewObject()
	a.Set("x", Num(1))
	b := NewObject()
	b.Set("x", Num(1))
	if m := Compare(a, b); m != nil {
		t.Fatalf("equal objects: %v", m)
	}
	fs, err := NewDescriptorFlags(uint32(DescriptorWritable))
	if err != nil {
		t.Fatalf("flags: %v", err)
	}
	if err := b.SetDescriptor("x", fs); err != nil {
		t.Fatalf("set descriptor: %v", err)
	}
	m := Compare(a, b)
	if m == nil {
		t.Fatal("descriptor difference not reported")
	}
	if !strings.Contains(m.Error(), "descriptor") {
		t.Fatalf("error = %v", m)
	}
}

func TestCompareAccessibility(t *testing.T) {
	a := NewObject()
	b := NewObject()
	b.Freeze()
	if Compare(a, b) == nil {
		t.Fatal("accessibility difference not reported")
	}
}

func TestCompareClasses(t *testing.T) {
	p1 := NewInstance(&Class{Name: "Point"})
	p2 := NewInstance(&Class{Name: "Point"})
	if m := Compare(p1, p2); m != nil {
		t.Fatalf("same-name classes: %v", m)
	}
	p3 := NewInstance(&Class{Name: "Vector"})
	if Compare(p1, p3) == nil {
		t.Fatal("class difference not reported")
	}
}
