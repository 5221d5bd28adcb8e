package veil

import (
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// xorCipher applies the position-keyed XOR cipher: each byte is XORed
// against the key byte at its own index modulo the key length. Applying
// the cipher twice with the same key restores the input.
func xorCipher(data []byte, key string) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

// encryptChunk XOR-encrypts text against key and base64-encodes the result
// so it survives embedding in an artifact.
func encryptChunk(text, key string) string {
	return base64.StdEncoding.EncodeToString(xorCipher([]byte(text), key))
}

// decryptChunk reverses encryptChunk. The error is the base64 decoder's.
func decryptChunk(encoded, key string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(xorCipher(raw, key)), nil
}

// encodeKey returns the base64 form of a secret, the representation
// embedded in self-decoding artifacts. Encoded, not encrypted.
func encodeKey(secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(secret))
}

// keyFingerprint returns a short deterministic fingerprint of a secret for
// logs and events. The secret itself never appears in either.
func keyFingerprint(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}
