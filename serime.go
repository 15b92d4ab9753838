// Package serime implements the Serime textual serialization format: a
// mostly-human-readable encoding of dynamic value graphs that preserves
// sharing and cycles through explicit reference declarations, property
// descriptor flags, object accessibility flags, and instances of
// caller-registered custom classes.
package serime

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Serializer encodes value graphs into Serime text. It owns mutable
// reference and dependency tables for the duration of one Serialize call and
// is not reentrant; independent instances share no state.
type Serializer struct {
	opts Options
	enc  encoder
	log  *zap.Logger
}

// NewSerializer returns a serializer with a private copy of opts.
func NewSerializer(opts Options) *Serializer {
	s := &Serializer{opts: opts, log: debugLogger(opts.DebugMode)}
	s.enc.opts = opts
	s.enc.wipe()
	return s
}

// Wipe resets all internal tables to their initial state. It is idempotent
// and runs automatically at the start of each Serialize call.
func (s *Serializer) Wipe() {
	s.enc.wipe()
}

// Serialize encodes root and returns the Serime text: an optional ![…]!
// dependency prelude followed by the value body with its reference
// declarations compacted.
func (s *Serializer) Serialize(root *Value) (string, error) {
	s.enc.wipe()
	if s.opts.Metadata {
		return "", fmt.Errorf("%w: metadata support is reserved", ErrEncodeUnsupported)
	}
	start := time.Now()
	body, err := s.enc.encodeValue(root)
	if err != nil {
		return "", err
	}
	out := s.enc.deps.prelude() + cleanReferences(body)
	logEncodeStats(s.log, s.enc.stats, time.Since(start))
	return out, nil
}

// Deserializer decodes Serime text back into value graphs. Classes supplied
// at construction satisfy $N custom tags, matched by name; decoding never
// invokes user constructors.
type Deserializer struct {
	opts    Options
	classes []*Class
	dec     decoder
	log     *zap.Logger
}

// NewDeserializer returns a deserializer with a private copy of opts and the
// given injectable classes.
func NewDeserializer(opts Options, classes ...*Class) *Deserializer {
	d := &Deserializer{opts: opts, classes: classes, log: debugLogger(opts.DebugMode)}
	d.dec.opts = opts
	d.dec.wipe()
	return d
}

// Deserialize parses input and returns the decoded root value.
func (d *Deserializer) Deserialize(input string) (*Value, error) {
	d.dec.wipe()
	start := time.Now()
	resolved, rest, err := parseDependencyPrelude(input, d.classes)
	if err != nil {
		return nil, err
	}
	d.dec.classes = resolved
	d.dec.stats.injectedClasses = len(resolved)
	v, err := d.dec.decodeValue(rest)
	if err != nil {
		return nil, err
	}
	logDecodeStats(d.log, d.dec.stats, time.Since(start))
	return v, nil
}

// Serialize encodes root with the default options.
func Serialize(root *Value) (string, error) {
	return NewSerializer(DefaultOptions()).Serialize(root)
}

// Deserialize decodes input with the default options and the given classes.
func Deserialize(input string, classes ...*Class) (*Value, error) {
	return NewDeserializer(DefaultOptions(), classes...).Deserialize(input)
}
