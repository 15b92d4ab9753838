package serime

// Options configures a Serializer or Deserializer. The struct is copied at
// construction; later mutation of the caller's copy has no effect.
type Options struct {
	// DebugMode logs timing and reference statistics after each call.
	DebugMode bool

	// Functions permits encoding and decoding of function source text.
	// Decoded functions are carried as inert source; nothing is evaluated.
	// Off by default.
	Functions bool

	// Metadata reserves property/object metadata support. Encoding refuses
	// to run while it is set.
	Metadata bool
}

// DefaultOptions returns the zero configuration: no debug logging, no
// function support, no metadata.
func DefaultOptions() Options {
	return Options{}
}
