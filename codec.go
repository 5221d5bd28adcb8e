package veil

import "context"

// Codec is a stateless encode/decode pair over source text.
// Implementations are safe for concurrent use; no state crosses calls.
type Codec interface {
	// Method returns the method identifier for this codec.
	Method() Method

	// Encode obfuscates source. The secret is required by fragment and
	// strings and ignored by rename.
	Encode(ctx context.Context, source, secret string) (*Result, error)

	// Decode reverses an encode. For fragment and strings, key is the
	// encode-time secret; for rename it is the serialized rename table.
	// The strings codec decodes to an enumeration of recovered literals,
	// not the original program.
	Decode(ctx context.Context, artifact, key string) (*Result, error)
}

// Result is the outcome of an encode or decode call.
type Result struct {
	// Text is the artifact on encode and the recovered text on decode.
	Text string

	// Log is a human-readable summary of the operation.
	Log string

	// Table is the rename table produced by a rename encode, nil for
	// every other operation.
	Table RenameTable
}
