package serime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minio/simdjson-go"
)

// FromJSON parses JSON using simdjson-go and returns the equivalent Serime
// value graph: objects become object values with string keys, arrays become
// array values, and scalars map onto their native kinds.
func FromJSON(data []byte) (*Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: json input is empty", ErrDecodeGrammar)
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return scalarValueFromJSON(trimmed)
	}
	parsed, err := simdjson.Parse(data, nil)
	if err != nil {
		return nil, err
	}
	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return nil, fmt.Errorf("%w: json root not found", ErrDecodeGrammar)
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return nil, err
	}
	return valueFromJSONIter(typ, root)
}

func scalarValueFromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil || err != io.EOF {
		return nil, fmt.Errorf("%w: invalid character after top-level value", ErrDecodeGrammar)
	}
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid json number %s", ErrDecodeGrammar, val)
		}
		return Num(f), nil
	case string:
		return Str(val), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scalar json type %T", ErrDecodeGrammar, v)
	}
}

func valueFromJSONIter(typ simdjson.Type, it *simdjson.Iter) (*Value, error) {
	switch typ {
	case simdjson.TypeNull:
		return Null(), nil
	case simdjson.TypeBool:
		v, err := it.Bool()
		if err != nil {
			return nil, err
		}
		return Bool(v), nil
	case simdjson.TypeInt:
		v, err := it.Int()
		if err != nil {
			return nil, err
		}
		return Num(float64(v)), nil
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return nil, err
		}
		return Num(float64(v)), nil
	case simdjson.TypeFloat:
		v, err := it.Float()
		if err != nil {
			return nil, err
		}
		return Num(v), nil
	case simdjson.TypeString:
		b, err := it.StringBytes()
		if err != nil {
			return nil, err
		}
		return Str(string(b)), nil
	case simdjson.TypeObject:
		obj, err := it.Object(nil)
		if err != nil {
			return nil, err
		}
		out := NewObject()
		var walkErr error
		err = obj.ForEach(func(key []byte, elem simdjson.Iter) {
			if walkErr != nil {
				return
			}
			val, err := valueFromJSONIter(elem.Type(), &elem)
			if err != nil {
				walkErr = err
				return
			}
			out.Set(string(key), val)
		}, nil)
		if err != nil {
			return nil, err
		}
		if walkErr != nil {
			return nil, walkErr
		}
		return out, nil
	case simdjson.TypeArray:
		arr, err := it.Array(nil)
		if err != nil {
			return nil, err
		}
		out := &Value{Kind: KindArray}
		iter := arr.Iter()
		for {
			t := iter.Advance()
			if t == simdjson.TypeNone {
				break
			}
			elem := iter
			val, err := valueFromJSONIter(t, &elem)
			if err != nil {
				return nil, err
			}
			out.Append(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported json type %v", ErrDecodeGrammar, typ)
	}
}

// ToJSON renders the JSON-expressible subset of a value graph. Undefined
// renders as null, big integers as bare digits, and timestamps as quoted
// ISO-8601 strings; symbols, functions, maps, sets, and custom instances
// are not expressible. Shared subtrees are duplicated; cycles are an error.
func ToJSON(v *Value) (string, error) {
	var sb strings.Builder
	if err := writeJSONValue(&sb, v, make(map[*Value]bool)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeJSONValue(sb *strings.Builder, v *Value, active map[*Value]bool) error {
	if v == nil {
		sb.WriteString("null")
		return nil
	}
	if active[v] {
		return fmt.Errorf("%w: cyclic value is not expressible in json", ErrEncodeUnsupported)
	}
	switch v.Kind {
	case KindNull, KindUndefined:
		sb.WriteString("null")
	case KindBool:
		if v.Flag {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case KindBigInt:
		if v.Big == nil {
			sb.WriteString("0")
		} else {
			sb.WriteString(v.Big.String())
		}
	case KindString:
		writeJSONString(sb, v.Str)
	case KindTime:
		writeJSONString(sb, v.Stamp.UTC().Format(timeLayout))
	case KindArray:
		active[v] = true
		defer delete(active, v)
		sb.WriteByte('[')
		for i := range v.Entries {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONValue(sb, v.Entries[i].Value, active); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case KindObject:
		active[v] = true
		defer delete(active, v)
		sb.WriteByte('{')
		first := true
		for i := range v.Entries {
			key := v.Entries[i].Key
			if key == nil || key.Kind != KindString {
				return fmt.Errorf("%w: non-string key is not expressible in json", ErrEncodeUnsupported)
			}
			if !first {
				sb.WriteByte(',')
			}
			first = false
			writeJSONString(sb, key.Str)
			sb.WriteByte(':')
			if err := writeJSONValue(sb, v.Entries[i].Value, active); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s is not expressible in json", ErrEncodeUnsupported, v.Kind)
	}
	return nil
}

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigit(byte(r) >> 4))
				sb.WriteByte(hexDigit(byte(r) & 0xF))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}
