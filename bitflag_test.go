package serime

import (
	"errors"
	"testing"
)

func TestFlagSetOperations(t *testing.T) {
	fs, err := NewDescriptorFlags(DefaultDescriptor)
	if err != nil {
		t.Fatalf("new flag set: %v", err)
	}
	if !fs.Has(DescriptorConfigurable, DescriptorEnumerable, DescriptorWritable) {
		t.Fatal("default descriptor should have all three data flags")
	}
	fs.Disable(DescriptorWritable)
	if fs.Has(DescriptorWritable) {
		t.Fatal("writable should be disabled")
	}
	if fs.Int() != uint32(DescriptorConfigurable|DescriptorEnumerable) {
		t.Fatalf("int view = %d", fs.Int())
	}
	fs.Enable(DescriptorWritable)
	fs.Toggle(DescriptorEnumerable)
	if fs.Has(DescriptorEnumerable) {
		t.Fatal("enumerable should be toggled off")
	}
	dict := fs.Dict()
	if !dict["writable"] || dict["enumerable"] {
		t.Fatalf("dict view = %v", dict)
	}
}

func TestFlagSetValidation(t *testing.T) {
	cases := []struct {
		name  string
		names map[Flag]string
		init  uint32
	}{
		{"zero flag", map[Flag]string{0: "zero"}, 0},
		{"non power of two", map[Flag]string{3: "three"}, 0},
		{"out of signed range", map[Flag]string{1 << 31: "huge"}, 0},
		{"unnamed initial bits", map[Flag]string{1: "one"}, 2},
	}
	for _, tc := range cases {
		if _, err := NewFlagSet("test", tc.names, tc.init); !errors.Is(err, ErrBitflagInvalid) {
			t.Fatalf("%s: err = %v, want ErrBitflagInvalid", tc.name, err)
		}
	}
}

func TestNilFlagSetInt(t *testing.T) {
	var fs *FlagSet
	if fs.Int() != 0 {
		t.Fatal("nil flag set should read as zero")
	}
}
