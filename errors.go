package serime

import "errors"

// Error taxonomy. Every failure surfaced by the encoder, the decoder, and
// flag validation wraps exactly one of these sentinels, so callers can
// classify with errors.Is. FromJSON returns the JSON parser's own errors
// unwrapped.
var (
	// ErrEncodeUnsupported marks values the encoder cannot represent: symbols
	// outside the well-known table, native-source functions, or values gated
	// behind a disabled feature.
	ErrEncodeUnsupported = errors.New("serime: encode: unsupported value")

	// ErrEncodePropertyMissing marks a descriptor request for a property that
	// does not exist on the value.
	ErrEncodePropertyMissing = errors.New("serime: encode: property missing")

	// ErrDecodeGrammar marks malformed input: unbalanced brackets, bad
	// reference digits, a missing type separator, or a missing descriptor.
	ErrDecodeGrammar = errors.New("serime: decode: malformed grammar")

	// ErrDecodeReference marks reference failures: lookup of an unbound id,
	// a duplicate dependency name, or a dependency that was not supplied.
	ErrDecodeReference = errors.New("serime: decode: bad reference")

	// ErrDecodeTypeUnknown marks an unknown type tag or a $N custom tag with
	// no registered dependency.
	ErrDecodeTypeUnknown = errors.New("serime: decode: unknown type")

	// ErrDecodePolicy marks a function decode attempted while the Functions
	// option is disabled.
	ErrDecodePolicy = errors.New("serime: decode: disabled by policy")

	// ErrBitflagInvalid marks flag-enum validation failures.
	ErrBitflagInvalid = errors.New("serime: invalid bitflag")
)
