package serime

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	benchValue   *Value
	benchAny     map[string]any
	benchEncoded string

	sinkString string
	sinkValue  *Value
	sinkBytes  []byte
)

func init() {
	benchAny = map[string]any{
		"name":    "serime-bench",
		"enabled": true,
		"count":   12345,
		"ratio":   0.577215,
		"tags":    []any{"alpha", "beta", "gamma", "delta"},
		"nested": map[string]any{
			"matrix": []any{
				[]any{1.0, 2.0, 3.0},
				[]any{4.0, 5.0, 6.0},
			},
			"empty": map[string]any{},
		},
	}

	benchValue = NewObject()
	benchValue.Set("name", Str("serime-bench"))
	benchValue.Set("enabled", Bool(true))
	benchValue.Set("count", Num(12345))
	benchValue.Set("ratio", Num(0.577215))
	benchValue.Set("tags", NewArray(Str("alpha"), Str("beta"), Str("gamma"), Str("delta")))
	nested := NewObject()
	nested.Set("matrix", NewArray(
		NewArray(Num(1), Num(2), Num(3)),
		NewArray(Num(4), Num(5), Num(6)),
	))
	nested.Set("empty", NewObject())
	benchValue.Set("nested", nested)

	encoded, err := Serialize(benchValue)
	if err != nil {
		panic(err)
	}
	benchEncoded = encoded
}

func BenchmarkSerimeSerialize(b *testing.B) {
	b.ReportAllocs()
	s := NewSerializer(DefaultOptions())
	for i := 0; i < b.N; i++ {
		out, err := s.Serialize(benchValue)
		if err != nil {
			b.Fatal(err)
		}
		sinkString = out
	}
}

func BenchmarkSerimeDeserialize(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchEncoded)))
	d := NewDeserializer(DefaultOptions())
	for i := 0; i < b.N; i++ {
		v, err := d.Deserialize(benchEncoded)
		if err != nil {
			b.Fatal(err)
		}
		sinkValue = v
	}
}

func BenchmarkSerimeRoundTrip(b *testing.B) {
	b.ReportAllocs()
	s := NewSerializer(DefaultOptions())
	d := NewDeserializer(DefaultOptions())
	for i := 0; i < b.N; i++ {
		out, err := s.Serialize(benchValue)
		if err != nil {
			b.Fatal(err)
		}
		v, err := d.Deserialize(out)
		if err != nil {
			b.Fatal(err)
		}
		sinkValue = v
	}
}

func BenchmarkCBORRoundTrip(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		data, err := cbor.Marshal(benchAny)
		if err != nil {
			b.Fatal(err)
		}
		var out map[string]any
		if err := cbor.Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
		sinkBytes = data
	}
}

func BenchmarkMsgpackRoundTrip(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		data, err := msgpack.Marshal(benchAny)
		if err != nil {
			b.Fatal(err)
		}
		var out map[string]any
		if err := msgpack.Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
		sinkBytes = data
	}
}
