package serime

import (
	"errors"
	"testing"
)

func TestDeserializeGrammarErrors(t *testing.T) {
	cases := []string{
		"",
		"3",            // entried tag without payload
		"1",            // string tag without payload
		"0|x",          // singleton with payload
		"3|[]",         // entried payload without braces
		"3|{[1|a]:2|1}", // object entry missing descriptor
		"4|{[1|0]%7:2|1,}",
		"8|maybe",
		"2|abc",
		"11|12x",
		"12|not-a-date",
		"7|x",
		"![a,b",        // unterminated dependency list
		"3|{}}",
	}
	for _, in := range cases {
		if _, err := Deserialize(in); !errors.Is(err, ErrDecodeGrammar) {
			t.Fatalf("Deserialize(%q): err = %v, want ErrDecodeGrammar", in, err)
		}
	}
}

func TestDeserializeReferenceErrors(t *testing.T) {
	if _, err := Deserialize("#0"); !errors.Is(err, ErrDecodeReference) {
		t.Fatalf("unbound pointer: err = %v", err)
	}
	// A pointer may only follow its declaration in depth-first order.
	if _, err := Deserialize("3|{[1|a]%7:#0,[1|b]%7:@0=2|1}"); !errors.Is(err, ErrDecodeReference) {
		t.Fatalf("forward pointer: err = %v", err)
	}
}

func TestDeserializeDependencyErrors(t *testing.T) {
	point := &Class{Name: "Point"}
	if _, err := Deserialize("![Point,Point]!$0|{}", point); !errors.Is(err, ErrDecodeReference) {
		t.Fatalf("duplicate dependency: err = %v", err)
	}
	if _, err := Deserialize("![Missing]!$0|{}", point); !errors.Is(err, ErrDecodeReference) {
		t.Fatalf("unsupplied dependency: err = %v", err)
	}
	if _, err := Deserialize("$0|{}"); !errors.Is(err, ErrDecodeTypeUnknown) {
		t.Fatalf("unregistered custom tag: err = %v", err)
	}
	if _, err := Deserialize("![Point]!$1|{}", point); !errors.Is(err, ErrDecodeTypeUnknown) {
		t.Fatalf("out-of-range custom tag: err = %v", err)
	}
}

func TestDeserializeUnknownTag(t *testing.T) {
	for _, in := range []string{"13|x", "99"} {
		if _, err := Deserialize(in); !errors.Is(err, ErrDecodeTypeUnknown) {
			t.Fatalf("Deserialize(%q): err = %v, want ErrDecodeTypeUnknown", in, err)
		}
	}
	if _, err := Deserialize("7|99"); !errors.Is(err, ErrDecodeTypeUnknown) {
		t.Fatalf("out-of-table symbol: err = %v", err)
	}
}

func TestDeserializeFunctionPolicy(t *testing.T) {
	if _, err := Deserialize("9|f~x"); !errors.Is(err, ErrDecodePolicy) {
		t.Fatalf("err = %v, want ErrDecodePolicy", err)
	}
	v, err := NewDeserializer(Options{Functions: true}).Deserialize("9|f~return 1")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if v.FuncName != "f" || v.FuncSource != "return 1" {
		t.Fatalf("function = %q %q", v.FuncName, v.FuncSource)
	}
}

func TestDeserializeReservedBitsRejected(t *testing.T) {
	// Accessor bit (8) set on a property descriptor.
	if _, err := Deserialize("3|{[1|a]%15:2|1}"); !errors.Is(err, ErrDecodeGrammar) {
		t.Fatalf("accessor bit: err = %v", err)
	}
	// Metadata bit (8) set on object accessibility.
	if _, err := Deserialize("%8:3|{}"); !errors.Is(err, ErrDecodeGrammar) {
		t.Fatalf("accessibility metadata bit: err = %v", err)
	}
}

func TestDeserializeBoolean(t *testing.T) {
	v, err := Deserialize("8|T")
	if err != nil || !v.Flag {
		t.Fatalf("8|T = %v, %v", v, err)
	}
	v, err = Deserialize("8|F")
	if err != nil || v.Flag {
		t.Fatalf("8|F = %v, %v", v, err)
	}
}

func TestDeserializeNeverPanics(t *testing.T) {
	inputs := []string{
		"@0=@1=0", "##", "3|{{}}", "[0]", "%999999999999:0",
		"![]!0", "$-1|{}", "2|", "9|", "&59;",
	}
	for _, in := range inputs {
		if _, err := Deserialize(in); err == nil {
			t.Logf("Deserialize(%q) unexpectedly succeeded", in)
		}
	}
}
