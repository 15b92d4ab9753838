package serime

import (
	"math/big"
	"strconv"
	"time"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Null returns a fresh null value.
func Null() *Value {
	return &Value{Kind: KindNull}
}

// Undefined returns a fresh undefined value.
func Undefined() *Value {
	return &Value{Kind: KindUndefined}
}

// Str returns a string value.
func Str(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// Num returns a number value.
func Num(f float64) *Value {
	return &Value{Kind: KindNumber, Num: f}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{Kind: KindBool, Flag: b}
}

// BigInt returns an arbitrary-precision integer value holding a copy of n.
func BigInt(n *big.Int) *Value {
	return &Value{Kind: KindBigInt, Big: new(big.Int).Set(n)}
}

// Time returns a timestamp value.
func Time(t time.Time) *Value {
	return &Value{Kind: KindTime, Stamp: t}
}

// Sym returns a well-known symbol value, or false for an unknown name.
func Sym(name string) (*Value, bool) {
	idx, ok := SymbolIndex(name)
	if !ok {
		return nil, false
	}
	return &Value{Kind: KindSymbol, Symbol: idx}, true
}

// Func returns a function value carrying source text.
func Func(name, source string) *Value {
	return &Value{Kind: KindFunction, FuncName: name, FuncSource: source}
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{Kind: KindObject}
}

// NewArray returns an array value holding elems.
func NewArray(elems ...*Value) *Value {
	v := &Value{Kind: KindArray}
	v.Append(elems...)
	return v
}

// NewMap returns an empty map value.
func NewMap() *Value {
	return &Value{Kind: KindMap}
}

// NewSet returns a set value holding members.
func NewSet(members ...*Value) *Value {
	v := &Value{Kind: KindSet}
	for _, m := range members {
		v.Add(m)
	}
	return v
}

// NewInstance returns an uninitialized instance of class.
func NewInstance(class *Class) *Value {
	return &Value{Kind: KindCustom, Class: class}
}

// AsString returns the string payload.
func (v *Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsFloat64 returns the number payload.
func (v *Value) AsFloat64() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Flag, true
}

// AsBigInt returns the big-integer payload.
func (v *Value) AsBigInt() (*big.Int, bool) {
	if v.Kind != KindBigInt {
		return nil, false
	}
	return v.Big, true
}

// AsTime returns the timestamp payload.
func (v *Value) AsTime() (time.Time, bool) {
	if v.Kind != KindTime {
		return time.Time{}, false
	}
	return v.Stamp, true
}

// SymbolString returns the well-known name of a symbol value.
func (v *Value) SymbolString() (string, bool) {
	if v.Kind != KindSymbol {
		return "", false
	}
	return SymbolName(v.Symbol)
}
