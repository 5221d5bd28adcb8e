package veil

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// fragmentCodec implements the fragment cipher: key-sized chunks, a
// key-seeded shuffle, positional XOR per chunk, and a self-executing
// wrapper embedding the payload, the permutation map, and the encoded key.
type fragmentCodec struct{}

// NewFragmentCodec returns the fragment cipher codec.
func NewFragmentCodec() Codec {
	return &fragmentCodec{}
}

func (c *fragmentCodec) Method() Method {
	return MethodFragment
}

// Markers inside the wrapper. Decode locates the embedded sections by
// these names, so they are part of the artifact format.
var (
	fragPayloadRe = regexp.MustCompile(`var _p=\[([^\]]*)\];`)
	fragMapRe     = regexp.MustCompile(`var _m=\[([^\]]*)\];`)
)

// fragmentWrapper is the executable reconstruction shell. At run time it
// decodes the key, decrypts each shuffled chunk, places it at its original
// position via the permutation map, and evaluates the joined result.
const fragmentWrapper = `(function(){var _p=[%s];var _m=[%s];var _k="%s";` +
	`var k=atob(_k);` +
	`var d=function(s){s=atob(s);var o="";for(var i=0;i<s.length;i++){o+=String.fromCharCode(s.charCodeAt(i)^k.charCodeAt(i%%k.length));}return o;};` +
	`var a=new Array(_p.length);for(var i=0;i<_m.length;i++){a[i]=d(_p[_m[i]]);}` +
	`return eval(a.join(""));})();`

func (c *fragmentCodec) Encode(ctx context.Context, source, secret string) (*Result, error) {
	start := time.Now()
	emitEncodeStart(ctx, MethodFragment, len(source))

	var retErr error
	var chunks int
	var artifact string
	defer func() {
		emitEncodeComplete(ctx, MethodFragment, len(artifact), chunks,
			keyFingerprint(secret), time.Since(start), retErr)
	}()

	if source == "" {
		retErr = newTransformError(ErrInvalidInput, MethodFragment, "empty source text")
		return nil, retErr
	}
	if secret == "" {
		retErr = newTransformError(ErrInvalidInput, MethodFragment, "empty secret key")
		return nil, retErr
	}

	frags := fragmentSplit(source, chunkSize(secret))
	chunks = len(frags)

	g := newLCG(seedHash(secret))
	perm := permute(g, chunks)

	// Encrypt into shuffled order: perm[oi] is the shuffled slot of the
	// fragment originally at oi.
	payload := make([]string, chunks)
	for oi, frag := range frags {
		payload[perm[oi]] = `"` + encryptChunk(frag, secret) + `"`
	}

	mapped := make([]string, chunks)
	for oi, si := range perm {
		mapped[oi] = strconv.Itoa(si)
	}

	artifact = fmt.Sprintf(fragmentWrapper,
		strings.Join(payload, ","),
		strings.Join(mapped, ","),
		encodeKey(secret),
	)

	return &Result{
		Text: artifact,
		Log: fmt.Sprintf("fragment: split %d bytes into %d chunks of %d, shuffled and encrypted (key %s)",
			len(source), chunks, chunkSize(secret), keyFingerprint(secret)),
	}, nil
}

func (c *fragmentCodec) Decode(ctx context.Context, artifact, key string) (*Result, error) {
	start := time.Now()
	emitDecodeStart(ctx, MethodFragment, len(artifact))

	var retErr error
	var chunks int
	var text string
	defer func() {
		emitDecodeComplete(ctx, MethodFragment, len(text), chunks, time.Since(start), retErr)
	}()

	if artifact == "" {
		retErr = newTransformError(ErrInvalidInput, MethodFragment, "empty artifact")
		return nil, retErr
	}
	if key == "" {
		retErr = newTransformError(ErrInvalidInput, MethodFragment, "empty secret key")
		return nil, retErr
	}

	pm := fragPayloadRe.FindStringSubmatch(artifact)
	if pm == nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodFragment, "payload array")
		return nil, retErr
	}
	mm := fragMapRe.FindStringSubmatch(artifact)
	if mm == nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodFragment, "permutation map")
		return nil, retErr
	}

	payload := splitQuoted(pm[1])
	perm, err := splitInts(mm[1])
	if err != nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodFragment, "permutation map")
		return nil, retErr
	}
	if len(perm) != len(payload) {
		retErr = newArtifactError(ErrInconsistentMapping, MethodFragment, "permutation map")
		return nil, retErr
	}
	chunks = len(payload)

	// Invert the map: shuffled slot si must be claimed by exactly one
	// original index.
	ordered := make([]string, chunks)
	claimed := make([]bool, chunks)
	for oi, si := range perm {
		if si < 0 || si >= chunks || claimed[si] {
			retErr = newArtifactError(ErrInconsistentMapping, MethodFragment, "permutation map")
			return nil, retErr
		}
		claimed[si] = true
		frag, err := decryptChunk(payload[si], key)
		if err != nil {
			retErr = newArtifactError(ErrMalformedArtifact, MethodFragment, "payload array")
			return nil, retErr
		}
		ordered[oi] = frag
	}

	text = strings.Join(ordered, "")
	return &Result{
		Text: text,
		Log:  fmt.Sprintf("fragment: reassembled %d chunks into %d bytes", chunks, len(text)),
	}, nil
}

// chunkSize derives the fragment length from the key: half the key length,
// never below 2.
func chunkSize(secret string) int {
	n := len(secret) / 2
	if n < 2 {
		n = 2
	}
	return n
}

// fragmentSplit cuts text into consecutive size-byte chunks; the final
// chunk may be shorter.
func fragmentSplit(text string, size int) []string {
	frags := make([]string, 0, (len(text)+size-1)/size)
	for i := 0; i < len(text); i += size {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		frags = append(frags, text[i:end])
	}
	return frags
}

// splitQuoted parses a comma-separated list of double-quoted base64
// entries. Base64 text contains neither quotes nor commas, so a plain
// split suffices.
func splitQuoted(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Trim(p, `"`)
	}
	return out
}

// splitInts parses a comma-separated list of integers.
func splitInts(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
