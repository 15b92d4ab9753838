package serime

import (
	"errors"
	"testing"
)

func TestParseTag(t *testing.T) {
	tag, err := parseTag("4")
	if err != nil {
		t.Fatalf("parse 4: %v", err)
	}
	if tag.IsCustom() || tag.IsSingleton() || !tag.IsEntried() {
		t.Fatalf("tag 4 predicates wrong: %+v", tag)
	}

	tag, err = parseTag("$2")
	if err != nil {
		t.Fatalf("parse $2: %v", err)
	}
	if !tag.IsCustom() || tag.CustomID() != 2 || !tag.IsEntried() {
		t.Fatalf("tag $2 predicates wrong: %+v", tag)
	}
	if tag.String() != "$2" {
		t.Fatalf("tag $2 renders as %q", tag.String())
	}

	for _, s := range []string{"0", "10"} {
		tag, err := parseTag(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		if !tag.IsSingleton() || tag.IsEntried() {
			t.Fatalf("tag %s should be a singleton", s)
		}
	}
}

func TestParseTagErrors(t *testing.T) {
	for _, s := range []string{"", "$", "$x", "x", "-1", "1.5"} {
		if _, err := parseTag(s); !errors.Is(err, ErrDecodeGrammar) {
			t.Fatalf("parse %q: err = %v, want ErrDecodeGrammar", s, err)
		}
	}
	if _, err := parseTag("13"); !errors.Is(err, ErrDecodeTypeUnknown) {
		t.Fatalf("parse 13: err = %v, want ErrDecodeTypeUnknown", err)
	}
}

func TestSingletonValue(t *testing.T) {
	tag, _ := parseTag("10")
	if v := tag.SingletonValue(); v.Kind != KindUndefined {
		t.Fatalf("singleton of 10 = %s", v.Kind)
	}
	tag, _ = parseTag("0")
	if v := tag.SingletonValue(); v.Kind != KindNull {
		t.Fatalf("singleton of 0 = %s", v.Kind)
	}
}
