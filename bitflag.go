package serime

import (
	"fmt"

	"go.uber.org/zap"
)

// Flag is a single bit inside a 32-bit flag container.
type Flag uint32

// Property descriptor flags. The three low bits mirror the default data
// property, so a plain property serializes as %7.
const (
	DescriptorConfigurable Flag = 1 << iota
	DescriptorEnumerable
	DescriptorWritable
	DescriptorAccessor
	DescriptorMetadata
)

// DefaultDescriptor is the flag value of a plain data property.
const DefaultDescriptor = uint32(DescriptorConfigurable | DescriptorEnumerable | DescriptorWritable)

// Object accessibility flags.
const (
	AccessFrozen Flag = 1 << iota
	AccessSealed
	AccessNonExtensible
	AccessMetadata
)

var descriptorFlagNames = map[Flag]string{
	DescriptorConfigurable: "configurable",
	DescriptorEnumerable:   "enumerable",
	DescriptorWritable:     "writable",
	DescriptorAccessor:     "accessor",
	DescriptorMetadata:     "metadata",
}

var accessFlagNames = map[Flag]string{
	AccessFrozen:        "frozen",
	AccessSealed:        "sealed",
	AccessNonExtensible: "non-extensible",
	AccessMetadata:      "metadata",
}

// FlagSet packs an enumerated set of power-of-two flags into a 32-bit value.
type FlagSet struct {
	label string
	names map[Flag]string
	bits  uint32
}

// NewFlagSet validates the enum descriptor and returns a container holding
// initial. Every named flag must be a positive power of two inside the
// 32-bit signed range, and initial may only carry named bits.
func NewFlagSet(label string, names map[Flag]string, initial uint32) (*FlagSet, error) {
	var known uint32
	for f := range names {
		switch {
		case f == 0:
			return nil, fmt.Errorf("%w: %s: zero-valued flag", ErrBitflagInvalid, label)
		case f&(f-1) != 0:
			return nil, fmt.Errorf("%w: %s: flag %d is not a power of two", ErrBitflagInvalid, label, f)
		case f >= 1<<31:
			return nil, fmt.Errorf("%w: %s: flag %d exceeds the 32-bit signed range", ErrBitflagInvalid, label, f)
		}
		known |= uint32(f)
	}
	if initial&^known != 0 {
		return nil, fmt.Errorf("%w: %s: value %d carries unnamed bits", ErrBitflagInvalid, label, initial)
	}
	if n := len(names); n >= 8 {
		zap.L().Warn("flag enum is at capacity", zap.String("label", label), zap.Int("flags", n))
	} else if n >= 7 {
		zap.L().Warn("flag enum is nearly full", zap.String("label", label), zap.Int("flags", n))
	}
	return &FlagSet{label: label, names: names, bits: initial}, nil
}

// NewDescriptorFlags returns a property descriptor container holding bits.
func NewDescriptorFlags(bits uint32) (*FlagSet, error) {
	return NewFlagSet("descriptor", descriptorFlagNames, bits)
}

// NewAccessibilityFlags returns an object accessibility container holding bits.
func NewAccessibilityFlags(bits uint32) (*FlagSet, error) {
	return NewFlagSet("accessibility", accessFlagNames, bits)
}

// Has reports whether all the given flags are enabled.
func (fs *FlagSet) Has(flags ...Flag) bool {
	for _, f := range flags {
		if fs.bits&uint32(f) == 0 {
			return false
		}
	}
	return true
}

// Enable turns the given flags on.
func (fs *FlagSet) Enable(flags ...Flag) {
	for _, f := range flags {
		fs.bits |= uint32(f)
	}
}

// Disable turns the given flags off.
func (fs *FlagSet) Disable(flags ...Flag) {
	for _, f := range flags {
		fs.bits &^= uint32(f)
	}
}

// Toggle flips the given flags.
func (fs *FlagSet) Toggle(flags ...Flag) {
	for _, f := range flags {
		fs.bits ^= uint32(f)
	}
}

// Int returns the packed integer view.
func (fs *FlagSet) Int() uint32 {
	if fs == nil {
		return 0
	}
	return fs.bits
}

// Dict returns a name→enabled view for debugging.
func (fs *FlagSet) Dict() map[string]bool {
	out := make(map[string]bool, len(fs.names))
	for f, name := range fs.names {
		out[name] = fs.bits&uint32(f) != 0
	}
	return out
}

func (fs *FlagSet) String() string {
	return fmt.Sprintf("%s(%d)", fs.label, fs.bits)
}
