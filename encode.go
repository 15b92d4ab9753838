package serime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/delaneyj/toolbelt/bytebufferpool"
)

// timeLayout is the canonical timestamp spelling: UTC ISO-8601 with
// millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// nativeSourceMarker flags function source the host cannot reproduce.
const nativeSourceMarker = "[native code]"

type encoder struct {
	opts  Options
	refs  referenceEncoder
	deps  dependencyTable
	stats debugStats
}

func (e *encoder) wipe() {
	e.refs.wipe()
	e.deps.wipe()
	e.stats.wipe()
}

// encodeValue emits one value: a #id pointer for an already-interned node,
// otherwise its serialization wrapped in an @id= declaration (and prefixed
// with accessibility flags when the node carries any). Ids are assigned
// before children recurse so cyclic graphs terminate.
func (e *encoder) encodeValue(v *Value) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: nil value", ErrEncodeUnsupported)
	}
	if id, ok := e.refs.lookup(v); ok {
		e.stats.duplicateReferences++
		return string(tokRefGet) + strconv.Itoa(id), nil
	}
	id, declared := e.refs.declare(v)
	body, err := e.serializeValue(v)
	if err != nil {
		return "", err
	}
	prefix := ""
	if v.IsEntried() && v.Access.Int() != 0 {
		if v.Access.Has(AccessMetadata) {
			return "", fmt.Errorf("%w: accessibility metadata on %s", ErrEncodeUnsupported, v.Kind)
		}
		prefix = string(tokFlag) + strconv.FormatUint(uint64(v.Access.Int()), 10) + string(tokKeyValue)
	}
	if declared {
		return prefix + string(tokRefSet) + strconv.Itoa(id) + string(tokRefAssign) + body, nil
	}
	return prefix + body, nil
}

func (e *encoder) serializeValue(v *Value) (string, error) {
	e.stats.subSerializations++
	switch v.Kind {
	case KindNull, KindUndefined:
		return nativeTag(v.Kind).String(), nil
	case KindBool:
		if v.Flag {
			return "8|T", nil
		}
		return "8|F", nil
	case KindNumber:
		return "2|" + formatNumber(v.Num), nil
	case KindBigInt:
		if v.Big == nil {
			return "11|0", nil
		}
		return "11|" + v.Big.String(), nil
	case KindString:
		return "1|" + Escape(v.Str), nil
	case KindSymbol:
		if _, ok := SymbolName(v.Symbol); !ok {
			return "", fmt.Errorf("%w: symbol %d is not well-known", ErrEncodeUnsupported, v.Symbol)
		}
		return "7|" + strconv.Itoa(v.Symbol), nil
	case KindTime:
		return "12|" + Escape(v.Stamp.UTC().Format(timeLayout)), nil
	case KindFunction:
		return e.serializeFunction(v)
	case KindObject, KindArray, KindMap, KindSet:
		return e.serializeEntried(v, nativeTag(v.Kind))
	case KindCustom:
		if v.Class == nil {
			return "", fmt.Errorf("%w: custom value without class", ErrEncodeUnsupported)
		}
		return e.serializeEntried(v, customTag(e.deps.add(v.Class)))
	default:
		return "", fmt.Errorf("%w: kind %d", ErrEncodeUnsupported, v.Kind)
	}
}

func (e *encoder) serializeFunction(v *Value) (string, error) {
	if !e.opts.Functions {
		return "", fmt.Errorf("%w: function support is disabled", ErrEncodeUnsupported)
	}
	if strings.Contains(v.FuncSource, nativeSourceMarker) {
		return "", fmt.Errorf("%w: native function %q", ErrEncodeUnsupported, v.FuncName)
	}
	return "9|" + v.FuncName + string(tokFuncSep) + Escape(v.FuncSource), nil
}

// serializeEntried renders tag|{[key]%flags:value,…}. Map and set entries
// carry no descriptor; set members sit in key position with a null
// placeholder value.
func (e *encoder) serializeEntried(v *Value, tag Tag) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteString(tag.String())
	buf.WriteByte(tokPayload)
	buf.WriteByte(tokEntriesOpen)
	keyed := v.Kind == KindObject || v.Kind == KindArray || v.Kind == KindCustom
	for i := range v.Entries {
		if i > 0 {
			buf.WriteByte(tokEntrySep)
		}
		entry := &v.Entries[i]
		if keyed {
			if err := checkPropertyKey(entry.Key); err != nil {
				return "", err
			}
		}
		key, err := e.encodeValue(entry.Key)
		if err != nil {
			return "", err
		}
		buf.WriteByte(tokKeyOpen)
		buf.WriteString(key)
		buf.WriteByte(tokKeyClose)
		if keyed {
			flags := DefaultDescriptor
			if entry.Descriptor != nil {
				flags = entry.Descriptor.Int()
			}
			if flags&uint32(DescriptorAccessor|DescriptorMetadata) != 0 {
				return "", fmt.Errorf("%w: accessor/metadata descriptor bits", ErrEncodeUnsupported)
			}
			buf.WriteByte(tokFlag)
			buf.WriteString(strconv.FormatUint(uint64(flags), 10))
		}
		buf.WriteByte(tokKeyValue)
		if v.Kind == KindSet {
			buf.WriteString("0")
			continue
		}
		val, err := e.encodeValue(entry.Value)
		if err != nil {
			return "", err
		}
		buf.WriteString(val)
	}
	buf.WriteByte(tokEntriesEnd)
	return string(buf.Bytes()), nil
}

// checkPropertyKey restricts object/array/custom property keys to strings
// and well-known symbols.
func checkPropertyKey(key *Value) error {
	if key == nil {
		return fmt.Errorf("%w: nil property key", ErrEncodeUnsupported)
	}
	switch key.Kind {
	case KindString:
		return nil
	case KindSymbol:
		if _, ok := SymbolName(key.Symbol); !ok {
			return fmt.Errorf("%w: symbol key %d is not well-known", ErrEncodeUnsupported, key.Symbol)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s property key", ErrEncodeUnsupported, key.Kind)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0 && math.Signbit(f):
		return "-0"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func parseNumber(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrDecodeGrammar, s)
	}
	return f, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrDecodeGrammar, s)
	}
	return t, nil
}
