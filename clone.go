package serime

import "math/big"

// Clone returns a deep copy of the value graph rooted at v. Shared nodes
// stay shared in the copy and cycles are preserved.
func Clone(v *Value) *Value {
	return cloneValue(v, make(map[*Value]*Value))
}

func cloneValue(v *Value, seen map[*Value]*Value) *Value {
	if v == nil {
		return nil
	}
	if dup, ok := seen[v]; ok {
		return dup
	}
	dup := &Value{
		Kind:       v.Kind,
		Str:        v.Str,
		Num:        v.Num,
		Flag:       v.Flag,
		Stamp:      v.Stamp,
		Symbol:     v.Symbol,
		FuncName:   v.FuncName,
		FuncSource: v.FuncSource,
		Class:      v.Class,
	}
	seen[v] = dup
	if v.Big != nil {
		dup.Big = new(big.Int).Set(v.Big)
	}
	if v.Access != nil {
		fs, err := NewAccessibilityFlags(v.Access.Int())
		if err == nil {
			dup.Access = fs
		}
	}
	if len(v.Entries) > 0 {
		dup.Entries = make([]Entry, len(v.Entries))
		for i := range v.Entries {
			entry := &v.Entries[i]
			dup.Entries[i] = Entry{
				Key:   cloneValue(entry.Key, seen),
				Value: cloneValue(entry.Value, seen),
			}
			if entry.Descriptor != nil {
				fs, err := NewDescriptorFlags(entry.Descriptor.Int())
				if err == nil {
					dup.Entries[i].Descriptor = fs
				}
			}
		}
	}
	return dup
}
