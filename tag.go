package serime

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the category of a Value. Native kinds share their numeric
// value with the shorthand type tag they serialize under.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindObject
	KindArray
	KindMap
	KindSet
	KindSymbol
	KindBool
	KindFunction
	KindUndefined
	KindBigInt
	KindTime

	// KindCustom serializes under a $N dependency-table tag, never a
	// shorthand digit.
	KindCustom
)

const maxNativeTag = uint(KindTime)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindSymbol:
		return "symbol"
	case KindBool:
		return "bool"
	case KindFunction:
		return "function"
	case KindUndefined:
		return "undefined"
	case KindBigInt:
		return "bigint"
	case KindTime:
		return "time"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Tag is a serialized type tag: a native shorthand 0..12 or a custom $N
// index into the dependency table.
type Tag struct {
	kind   Kind
	custom int // $N index; -1 for native tags
}

func nativeTag(k Kind) Tag {
	return Tag{kind: k, custom: -1}
}

func customTag(n int) Tag {
	return Tag{kind: KindCustom, custom: n}
}

// parseTag parses the tag portion of a block: decimal digits or '$' digits.
func parseTag(s string) (Tag, error) {
	if s == "" {
		return Tag{}, fmt.Errorf("%w: empty type tag", ErrDecodeGrammar)
	}
	if s[0] == tokCustom {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 || strings.ContainsAny(s[1:], "+- ") {
			return Tag{}, fmt.Errorf("%w: bad custom tag %q", ErrDecodeGrammar, s)
		}
		return customTag(n), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || strings.ContainsAny(s, "+- ") {
		return Tag{}, fmt.Errorf("%w: bad type tag %q", ErrDecodeGrammar, s)
	}
	if uint(n) > maxNativeTag {
		return Tag{}, fmt.Errorf("%w: tag %d", ErrDecodeTypeUnknown, n)
	}
	return nativeTag(Kind(n)), nil
}

// IsCustom reports whether the tag indexes the dependency table.
func (t Tag) IsCustom() bool {
	return t.custom >= 0
}

// IsSingleton reports whether the tag carries no payload at all.
func (t Tag) IsSingleton() bool {
	return !t.IsCustom() && (t.kind == KindNull || t.kind == KindUndefined)
}

// IsEntried reports whether the tag's payload is a {…} entry block.
func (t Tag) IsEntried() bool {
	if t.IsCustom() {
		return true
	}
	switch t.kind {
	case KindObject, KindArray, KindMap, KindSet:
		return true
	default:
		return false
	}
}

// CustomID returns the dependency-table index of a custom tag, or -1.
func (t Tag) CustomID() int {
	return t.custom
}

// SingletonValue returns a fresh canonical value for a singleton tag.
func (t Tag) SingletonValue() *Value {
	if t.kind == KindUndefined {
		return Undefined()
	}
	return Null()
}

func (t Tag) String() string {
	if t.IsCustom() {
		return string(tokCustom) + strconv.Itoa(t.custom)
	}
	return strconv.Itoa(int(t.kind))
}
