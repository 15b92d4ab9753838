package serime

import (
	"fmt"
	"math/big"
	"time"
)

// Class identifies a custom constructor. The wire format carries only the
// name; decode matches injected classes by name and never runs user code.
type Class struct {
	Name string
}

// Entry is one key/value pair of an entried value. Descriptor is nil for a
// plain data property (serialized as the default %7) and for map/set entries,
// which carry no descriptor at all.
type Entry struct {
	Key        *Value
	Value      *Value
	Descriptor *FlagSet
}

// Value is one node of a dynamic value graph. Sharing and cycles are
// expressed by aliasing the same *Value from several places; the encoder
// interns nodes by pointer identity.
type Value struct {
	Kind Kind

	Str    string
	Num    float64
	Flag   bool
	Big    *big.Int
	Stamp  time.Time
	Symbol int

	// Function payload, carried as source text.
	FuncName   string
	FuncSource string

	Class *Class

	// Entries holds the ordered contents of object/array/map/set/custom
	// values. Set members live in Key with a nil Value.
	Entries []Entry

	// Access holds object accessibility flags; nil means fully open.
	Access *FlagSet
}

// IsEntried reports whether the value carries a {…} entry payload.
func (v *Value) IsEntried() bool {
	switch v.Kind {
	case KindObject, KindArray, KindMap, KindSet, KindCustom:
		return true
	default:
		return false
	}
}

// Keys returns the key of every entry, in insertion order.
func (v *Value) Keys() []*Value {
	keys := make([]*Value, len(v.Entries))
	for i := range v.Entries {
		keys[i] = v.Entries[i].Key
	}
	return keys
}

// Get returns the value stored under a string key of an object, array, or
// custom instance.
func (v *Value) Get(key string) (*Value, bool) {
	for i := range v.Entries {
		if k := v.Entries[i].Key; k != nil && k.Kind == KindString && k.Str == key {
			return v.Entries[i].Value, true
		}
	}
	return nil, false
}

// Set stores val under a string key, replacing an existing entry in place or
// appending a new one with a nil (default) descriptor.
func (v *Value) Set(key string, val *Value) {
	for i := range v.Entries {
		if k := v.Entries[i].Key; k != nil && k.Kind == KindString && k.Str == key {
			v.Entries[i].Value = val
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: Str(key), Value: val})
}

// SetEntry appends an entry with an explicit key node and descriptor.
func (v *Value) SetEntry(key, val *Value, descriptor *FlagSet) {
	v.Entries = append(v.Entries, Entry{Key: key, Value: val, Descriptor: descriptor})
}

// Descriptor returns the descriptor flags of a named property.
func (v *Value) Descriptor(key string) (*FlagSet, error) {
	for i := range v.Entries {
		if k := v.Entries[i].Key; k != nil && k.Kind == KindString && k.Str == key {
			if v.Entries[i].Descriptor == nil {
				fs, err := NewDescriptorFlags(DefaultDescriptor)
				if err != nil {
					return nil, err
				}
				v.Entries[i].Descriptor = fs
			}
			return v.Entries[i].Descriptor, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrEncodePropertyMissing, key)
}

// SetDescriptor installs descriptor flags on a named property.
func (v *Value) SetDescriptor(key string, fs *FlagSet) error {
	for i := range v.Entries {
		if k := v.Entries[i].Key; k != nil && k.Kind == KindString && k.Str == key {
			v.Entries[i].Descriptor = fs
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrEncodePropertyMissing, key)
}

// Append adds an element to an array, keyed by its stringified index.
func (v *Value) Append(elems ...*Value) {
	for _, elem := range elems {
		idx := len(v.Entries)
		v.Entries = append(v.Entries, Entry{Key: Str(itoa(idx)), Value: elem})
	}
}

// Index returns the array element at i.
func (v *Value) Index(i int) (*Value, bool) {
	if i < 0 || i >= len(v.Entries) {
		return nil, false
	}
	return v.Entries[i].Value, true
}

// Len returns the entry count.
func (v *Value) Len() int {
	return len(v.Entries)
}

// MapSet appends a key→value pair to a map value.
func (v *Value) MapSet(key, val *Value) {
	v.Entries = append(v.Entries, Entry{Key: key, Value: val})
}

// Add appends a member to a set value. Members already present (by pointer
// identity) are ignored.
func (v *Value) Add(member *Value) {
	for i := range v.Entries {
		if v.Entries[i].Key == member {
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: member})
}

func (v *Value) ensureAccess() *FlagSet {
	if v.Access == nil {
		fs, err := NewAccessibilityFlags(0)
		if err != nil {
			panic(err)
		}
		v.Access = fs
	}
	return v.Access
}

// Freeze marks the value frozen. Frozen implies sealed and non-extensible.
func (v *Value) Freeze() {
	v.ensureAccess().Enable(AccessFrozen, AccessSealed, AccessNonExtensible)
}

// Seal marks the value sealed. Sealed implies non-extensible.
func (v *Value) Seal() {
	v.ensureAccess().Enable(AccessSealed, AccessNonExtensible)
}

// PreventExtensions marks the value non-extensible.
func (v *Value) PreventExtensions() {
	v.ensureAccess().Enable(AccessNonExtensible)
}

// Frozen reports whether the value is frozen.
func (v *Value) Frozen() bool {
	return v.Access != nil && v.Access.Has(AccessFrozen)
}

// Sealed reports whether the value is sealed.
func (v *Value) Sealed() bool {
	return v.Access != nil && v.Access.Has(AccessSealed)
}

// Extensible reports whether new entries may be added.
func (v *Value) Extensible() bool {
	return v.Access == nil || !v.Access.Has(AccessNonExtensible)
}
