package serime

import (
	"encoding/json"
	"testing"
)

func TestFromJSONScalars(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"1.5", KindNumber},
		{`"hi"`, KindString},
	}
	for _, tc := range cases {
		v, err := FromJSON([]byte(tc.in))
		if err != nil {
			t.Fatalf("FromJSON(%q): %v", tc.in, err)
		}
		if v.Kind != tc.kind {
			t.Fatalf("FromJSON(%q) kind = %s", tc.in, v.Kind)
		}
	}
}

func TestFromJSONTree(t *testing.T) {
	v, err := FromJSON([]byte(`{"a":1,"b":[true,null],"c":{"d":"x"}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if v.Kind != KindObject || v.Len() != 3 {
		t.Fatalf("root = %s with %d entries", v.Kind, v.Len())
	}
	b, ok := v.Get("b")
	if !ok || b.Kind != KindArray || b.Len() != 2 {
		t.Fatalf("b = %v", b)
	}
	elem, _ := b.Index(1)
	if elem.Kind != KindNull {
		t.Fatalf("b[1] = %s", elem.Kind)
	}
}

func TestJSONRoundTripThroughSerime(t *testing.T) {
	in := `{"name":"serime","count":3,"tags":["a","b"],"nested":{"ok":true}}`
	v, err := FromJSON([]byte(in))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	encoded, err := Serialize(v)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	decoded, err := Deserialize(encoded)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	out, err := ToJSON(decoded)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var a, b any
	if err := json.Unmarshal([]byte(in), &a); err != nil {
		t.Fatalf("unmarshal in: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("unmarshal out: %v", err)
	}
	if !jsonDeepEqual(a, b) {
		t.Fatalf("json round trip changed document: %s vs %s", in, out)
	}
}

func TestToJSONEscapes(t *testing.T) {
	v := NewObject()
	v.Set("s", Str("line\n\"quote\""))
	out, err := ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if decoded["s"] != "line\n\"quote\"" {
		t.Fatalf("decoded = %q", decoded["s"])
	}
}

func TestToJSONRejectsCycles(t *testing.T) {
	x := NewObject()
	x.Set("self", x)
	if _, err := ToJSON(x); err == nil {
		t.Fatal("cyclic value should not render as json")
	}
}

func jsonDeepEqual(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
