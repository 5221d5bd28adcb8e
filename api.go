// Package veil provides reversible source-text obfuscation codecs.
//
// The package offers three independent codecs, each a pure function pair
// over text plus an optional secret key:
//
//   - fragment: splits source into key-sized chunks, shuffles them with a
//     key-seeded generator, XOR-encrypts each against the key, and emits a
//     self-executing wrapper that embeds everything needed to reassemble
//     the original. Decode reverses the wrapper without executing it.
//   - rename: discovers identifier-like tokens, assigns short generated
//     names, rewrites and minifies. The rename table is the decode key and
//     travels out-of-band.
//   - strings: extracts quoted string literals into an encrypted side
//     table, replacing each with an indexed decoder call. Decode recovers
//     the literals, not the surrounding program.
//
// # Basic Usage
//
//	res, err := veil.Encode(ctx, veil.MethodFragment, source, "my-key")
//	// res.Text is the artifact, res.Log a summary
//
//	back, err := veil.Decode(ctx, veil.MethodFragment, res.Text, "my-key")
//	// back.Text == source
//
// The rename codec returns its table alongside the artifact:
//
//	res, _ := veil.Encode(ctx, veil.MethodRename, source, "")
//	key, _ := json.Marshal(res.Table)
//	back, _ := veil.Decode(ctx, veil.MethodRename, res.Text, string(key))
//
// # Security
//
// None of the ciphers here are cryptographically secure. Encryption is
// position-keyed XOR, fully deterministic and trivially breakable; the
// point is obscurity of shipped source, not secrecy. Do not use veil to
// protect sensitive data.
//
// # Struct Fields
//
// Processor applies codecs to tagged struct fields:
//
//	type Bundle struct {
//	    Loader string `conceal:"fragment"`
//	    Banner string `conceal:"strings"`
//	}
//
//	proc, _ := veil.NewProcessor[Bundle]()
//	proc.SetSecret(veil.MethodFragment, fragKey)
//	proc.SetSecret(veil.MethodStrings, strKey)
//	hidden, _ := proc.Conceal(ctx, &bundle)
//
// # Table Transport
//
// The rename table can be serialized for transport with the codecs in the
// json, yaml, and msgpack subpackages, all implementing TableCodec.
package veil

import "context"

// Encode obfuscates source with the codec registered for method.
// The secret is required for fragment and strings, ignored for rename.
func Encode(ctx context.Context, method Method, source, secret string) (*Result, error) {
	c, err := Use(method)
	if err != nil {
		return nil, err
	}
	return c.Encode(ctx, source, secret)
}

// Decode reverses an encode for the codec registered for method.
// For fragment and strings, key is the secret used at encode time; for
// rename it is the JSON-serialized rename table.
func Decode(ctx context.Context, method Method, artifact, key string) (*Result, error) {
	c, err := Use(method)
	if err != nil {
		return nil, err
	}
	return c.Decode(ctx, artifact, key)
}
