package veil

// Method identifies an obfuscation codec.
// Use these constants in struct tags: `conceal:"fragment"`
type Method string

const (
	// MethodFragment shuffles and XOR-encrypts key-sized chunks of the
	// source into a self-executing wrapper.
	MethodFragment Method = "fragment"

	// MethodRename rewrites identifiers to short generated names. The
	// rename table is the decode key.
	MethodRename Method = "rename"

	// MethodStrings extracts string literals into an encrypted lookup
	// table. Decode recovers the literals only.
	MethodStrings Method = "strings"
)

// methodTraits captures per-method contract properties.
type methodTraits struct {
	needsSecret  bool // encode rejects an empty secret
	selfDecoding bool // artifact embeds everything decode needs besides the key
	lossy        bool // decode cannot rebuild the encode input
}

var validMethods = map[Method]methodTraits{
	MethodFragment: {needsSecret: true, selfDecoding: true},
	MethodRename:   {},
	MethodStrings:  {needsSecret: true, selfDecoding: true, lossy: true},
}

// IsValidMethod returns true if the method names a known codec.
func IsValidMethod(m Method) bool {
	_, ok := validMethods[m]
	return ok
}

// NeedsSecret returns true if encode for the method requires a non-empty
// secret key.
func NeedsSecret(m Method) bool {
	return validMethods[m].needsSecret
}

// IsLossy returns true if decode for the method cannot reconstruct the
// original encode input.
func IsLossy(m Method) bool {
	return validMethods[m].lossy
}

// IsSelfDecoding returns true if the method's artifact embeds everything
// decode needs besides the secret. Rename is not self-decoding: its table
// travels out-of-band.
func IsSelfDecoding(m Method) bool {
	return validMethods[m].selfDecoding
}
