package serime

import (
	"fmt"
	"math"
	"strings"
)

// Mismatch reports the first structural divergence found by Compare, with a
// navigation log from the root to the divergent node.
type Mismatch struct {
	Path   []string
	Reason string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("serime: compare: %s at %s", m.Reason, strings.Join(m.Path, " → "))
}

// Equal reports whether two value graphs are structurally equal.
func Equal(a, b *Value) bool {
	return Compare(a, b) == nil
}

// Compare walks two value graphs and returns a Mismatch describing the first
// divergence, or nil when the graphs are structurally equal. NaN compares
// equal to NaN, +0 and -0 are distinct, and revisited node pairs short-
// circuit so cyclic graphs terminate. The seen set is scoped to the call.
func Compare(a, b *Value) *Mismatch {
	c := &comparer{seen: make(map[valuePair]bool)}
	return c.compare(a, b, []string{"root"})
}

type valuePair struct {
	a, b *Value
}

type comparer struct {
	seen map[valuePair]bool
}

func (c *comparer) fail(path []string, format string, args ...any) *Mismatch {
	return &Mismatch{Path: append([]string(nil), path...), Reason: fmt.Sprintf(format, args...)}
}

func (c *comparer) compare(a, b *Value, path []string) *Mismatch {
	if a == nil || b == nil {
		if a == b {
			return nil
		}
		return c.fail(path, "nil vs non-nil value")
	}
	pair := valuePair{a, b}
	if c.seen[pair] {
		return nil
	}
	c.seen[pair] = true

	if a.Kind != b.Kind {
		return c.fail(path, "kind %s vs %s", a.Kind, b.Kind)
	}
	switch a.Kind {
	case KindNull, KindUndefined:
		return nil
	case KindBool:
		if a.Flag != b.Flag {
			return c.fail(path, "bool %v vs %v", a.Flag, b.Flag)
		}
		return nil
	case KindNumber:
		return c.compareNumbers(a.Num, b.Num, path)
	case KindString:
		if a.Str != b.Str {
			return c.fail(path, "string %q vs %q", a.Str, b.Str)
		}
		return nil
	case KindBigInt:
		if a.Big == nil || b.Big == nil || a.Big.Cmp(b.Big) != 0 {
			return c.fail(path, "bigint %v vs %v", a.Big, b.Big)
		}
		return nil
	case KindTime:
		if !a.Stamp.Equal(b.Stamp) {
			return c.fail(path, "time %v vs %v", a.Stamp, b.Stamp)
		}
		return nil
	case KindSymbol:
		if a.Symbol != b.Symbol {
			return c.fail(path, "symbol %d vs %d", a.Symbol, b.Symbol)
		}
		return nil
	case KindFunction:
		if a.FuncName != b.FuncName || a.FuncSource != b.FuncSource {
			return c.fail(path, "function %q vs %q", a.FuncName, b.FuncName)
		}
		return nil
	}

	if a.Kind == KindCustom {
		an, bn := className(a.Class), className(b.Class)
		if an != bn {
			return c.fail(path, "class %q vs %q", an, bn)
		}
	}
	if a.Access.Int() != b.Access.Int() {
		return c.fail(path, "accessibility %d vs %d", a.Access.Int(), b.Access.Int())
	}
	if len(a.Entries) != len(b.Entries) {
		return c.fail(path, "entry count %d vs %d", len(a.Entries), len(b.Entries))
	}
	for i := range a.Entries {
		ae, be := &a.Entries[i], &b.Entries[i]
		keyPath := append(path, fmt.Sprintf("entry[%d] (as key)", i))
		if m := c.compare(ae.Key, be.Key, keyPath); m != nil {
			return m
		}
		if a.Kind != KindSet {
			valPath := append(path, fmt.Sprintf("entry[%d] (key→value)", i))
			if m := c.compare(ae.Value, be.Value, valPath); m != nil {
				return m
			}
		}
		if a.Kind == KindObject || a.Kind == KindArray || a.Kind == KindCustom {
			ad, bd := descriptorInt(ae.Descriptor), descriptorInt(be.Descriptor)
			if ad != bd {
				return c.fail(append(path, fmt.Sprintf("entry[%d] (descriptor)", i)), "descriptor %d vs %d", ad, bd)
			}
		}
	}
	return nil
}

func (c *comparer) compareNumbers(a, b float64, path []string) *Mismatch {
	if math.IsNaN(a) && math.IsNaN(b) {
		return nil
	}
	if a != b {
		return c.fail(path, "number %v vs %v", a, b)
	}
	if a == 0 && math.Signbit(a) != math.Signbit(b) {
		return c.fail(path, "zero sign %v vs %v", formatNumber(a), formatNumber(b))
	}
	return nil
}

func className(c *Class) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func descriptorInt(fs *FlagSet) uint32 {
	if fs == nil {
		return DefaultDescriptor
	}
	return fs.Int()
}
