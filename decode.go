package serime

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

type decoder struct {
	opts    Options
	refs    referenceDecoder
	classes map[int]*Class
	stats   debugStats
}

func (d *decoder) wipe() {
	d.refs.wipe()
	d.classes = nil
	d.stats.wipe()
}

// decodeValue parses one value fragment. Holders for entried blocks are
// allocated and bound to their reference id before children decode, so
// pointers inside the block resolve and cycles close; accessibility flags
// are applied after the children are filled.
func (d *decoder) decodeValue(s string) (*Value, error) {
	info, err := parseBlockInfo(s)
	if err != nil {
		return nil, err
	}
	if info.isKeyIndex {
		return nil, fmt.Errorf("%w: key index in value position", ErrDecodeGrammar)
	}
	if info.ref == refGet {
		return d.refs.get(info.refID)
	}

	if info.tag.IsSingleton() {
		if info.hasPayload {
			return nil, fmt.Errorf("%w: singleton tag %s with payload", ErrDecodeGrammar, info.tag)
		}
		v := info.tag.SingletonValue()
		if info.ref == refSet {
			d.refs.set(info.refID, v)
		}
		return v, nil
	}
	if !info.hasPayload {
		return nil, fmt.Errorf("%w: missing type separator for tag %s", ErrDecodeGrammar, info.tag)
	}

	if info.tag.IsEntried() {
		return d.decodeEntried(info)
	}

	v, err := d.decodeScalar(info.tag.kind, info.payload)
	if err != nil {
		return nil, err
	}
	if info.ref == refSet {
		d.refs.set(info.refID, v)
	}
	return v, nil
}

func (d *decoder) decodeScalar(kind Kind, payload string) (*Value, error) {
	switch kind {
	case KindBool:
		switch payload {
		case "T":
			return Bool(true), nil
		case "F":
			return Bool(false), nil
		}
		return nil, fmt.Errorf("%w: bad boolean %q", ErrDecodeGrammar, payload)
	case KindNumber:
		f, err := parseNumber(payload)
		if err != nil {
			return nil, err
		}
		return Num(f), nil
	case KindBigInt:
		n, ok := new(big.Int).SetString(payload, 10)
		if !ok {
			return nil, fmt.Errorf("%w: bad big integer %q", ErrDecodeGrammar, payload)
		}
		return &Value{Kind: KindBigInt, Big: n}, nil
	case KindString:
		return Str(Unescape(payload)), nil
	case KindSymbol:
		idx, err := strconv.Atoi(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: bad symbol index %q", ErrDecodeGrammar, payload)
		}
		if _, ok := SymbolName(idx); !ok {
			return nil, fmt.Errorf("%w: symbol index %d", ErrDecodeTypeUnknown, idx)
		}
		return &Value{Kind: KindSymbol, Symbol: idx}, nil
	case KindTime:
		t, err := parseTimestamp(Unescape(payload))
		if err != nil {
			return nil, err
		}
		return Time(t), nil
	case KindFunction:
		if !d.opts.Functions {
			return nil, fmt.Errorf("%w: function support is disabled", ErrDecodePolicy)
		}
		sep := strings.IndexByte(payload, tokFuncSep)
		if sep < 0 {
			return nil, fmt.Errorf("%w: function payload without separator", ErrDecodeGrammar)
		}
		return Func(payload[:sep], Unescape(payload[sep+1:])), nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrDecodeTypeUnknown, kind)
	}
}

func (d *decoder) decodeEntried(info blockInfo) (*Value, error) {
	body := info.payload
	if len(body) < 2 || body[0] != tokEntriesOpen || body[len(body)-1] != tokEntriesEnd {
		return nil, fmt.Errorf("%w: entried payload without braces", ErrDecodeGrammar)
	}

	holder, err := d.allocateHolder(info.tag)
	if err != nil {
		return nil, err
	}
	if info.ref == refSet {
		d.refs.set(info.refID, holder)
	}

	pairs, err := splitEntries(body[1 : len(body)-1])
	if err != nil {
		return nil, err
	}
	defer putEntryPairs(pairs)

	descriptorRequired := holder.Kind == KindObject || holder.Kind == KindArray || holder.Kind == KindCustom
	for _, pair := range pairs {
		keyInfo, err := parseBlockInfo(pair.key)
		if err != nil {
			return nil, err
		}
		if !keyInfo.isKeyIndex {
			return nil, fmt.Errorf("%w: entry key %q is not bracketed", ErrDecodeGrammar, pair.key)
		}
		var descriptor *FlagSet
		if descriptorRequired {
			if !keyInfo.hasDescriptor {
				return nil, fmt.Errorf("%w: entry %q is missing descriptor flags", ErrDecodeGrammar, pair.key)
			}
			if keyInfo.descriptor&uint32(DescriptorAccessor|DescriptorMetadata) != 0 {
				return nil, fmt.Errorf("%w: accessor/metadata descriptor bits", ErrDecodeGrammar)
			}
			descriptor, err = NewDescriptorFlags(keyInfo.descriptor)
			if err != nil {
				return nil, err
			}
		}
		key, err := d.decodeValue(keyInfo.keyBody)
		if err != nil {
			return nil, err
		}
		if holder.Kind == KindSet {
			holder.Add(key)
			continue
		}
		val, err := d.decodeValue(pair.value)
		if err != nil {
			return nil, err
		}
		if holder.Kind == KindMap {
			holder.MapSet(key, val)
			continue
		}
		holder.SetEntry(key, val, descriptor)
	}

	if info.hasAccess {
		if err := applyAccessibility(holder, info.access); err != nil {
			return nil, err
		}
	}
	return holder, nil
}

func (d *decoder) allocateHolder(tag Tag) (*Value, error) {
	if tag.IsCustom() {
		class, ok := d.classes[tag.CustomID()]
		if !ok {
			return nil, fmt.Errorf("%w: no dependency for tag %s", ErrDecodeTypeUnknown, tag)
		}
		return NewInstance(class), nil
	}
	switch tag.kind {
	case KindObject:
		return NewObject(), nil
	case KindArray:
		return &Value{Kind: KindArray}, nil
	case KindMap:
		return NewMap(), nil
	case KindSet:
		return &Value{Kind: KindSet}, nil
	default:
		return nil, fmt.Errorf("%w: tag %s is not entried", ErrDecodeGrammar, tag)
	}
}

// applyAccessibility installs decoded accessibility flags, sealed before
// frozen before non-extensible. Frozen implies sealed, sealed implies
// non-extensible.
func applyAccessibility(v *Value, bits uint32) error {
	fs, err := NewAccessibilityFlags(bits)
	if err != nil {
		return fmt.Errorf("%w: accessibility flags %d", ErrDecodeGrammar, bits)
	}
	if fs.Has(AccessMetadata) {
		return fmt.Errorf("%w: accessibility metadata bit", ErrDecodeGrammar)
	}
	if fs.Has(AccessSealed) {
		v.Seal()
	}
	if fs.Has(AccessFrozen) {
		v.Freeze()
	}
	if fs.Has(AccessNonExtensible) {
		v.PreventExtensions()
	}
	return nil
}
