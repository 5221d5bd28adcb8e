package veil

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// stringCodec implements string concealment: quoted literals are pulled
// into an XOR-encrypted lookup table and replaced with indexed decoder
// calls. Decode recovers the literal values only; the placeholder-bearing
// program is not reconstructed.
type stringCodec struct{}

// NewStringCodec returns the string concealment codec.
func NewStringCodec() Codec {
	return &stringCodec{}
}

func (c *stringCodec) Method() Method {
	return MethodStrings
}

var (
	concealTableRe = regexp.MustCompile(`var (_0x[0-9a-f]+)=\[([^\]]*)\];`)
	concealKeyRe   = regexp.MustCompile(`atob\("([A-Za-z0-9+/=]*)"\)`)
)

// concealDecoder is the emitted lookup function: it re-derives the
// plaintext key from its encoded form, then base64-decodes and XOR-decrypts
// the table entry for a given index.
const concealDecoder = `var %s=function(i){var k=atob("%s");var s=atob(%s[i]);` +
	`var o="";for(var j=0;j<s.length;j++){o+=String.fromCharCode(s.charCodeAt(j)^k.charCodeAt(j%%k.length));}return o;};`

func (c *stringCodec) Encode(ctx context.Context, source, secret string) (*Result, error) {
	start := time.Now()
	emitEncodeStart(ctx, MethodStrings, len(source))

	var retErr error
	var extracted int
	var artifact string
	defer func() {
		emitEncodeComplete(ctx, MethodStrings, len(artifact), extracted,
			keyFingerprint(secret), time.Since(start), retErr)
	}()

	if source == "" {
		retErr = newTransformError(ErrInvalidInput, MethodStrings, "empty source text")
		return nil, retErr
	}
	if secret == "" {
		retErr = newTransformError(ErrInvalidInput, MethodStrings, "empty secret key")
		return nil, retErr
	}

	matches := stringLitRe.FindAllString(source, -1)
	if len(matches) == 0 {
		artifact = source
		return &Result{
			Text: artifact,
			Log:  "strings: no string literals found, source returned unchanged",
		}, nil
	}

	// Randomized identifiers reduce collision with names already in the
	// source.
	arrName := randIdent()
	fnName := randIdent()
	for fnName == arrName {
		fnName = randIdent()
	}

	entries := make([]string, 0, len(matches))
	idx := 0
	body := stringLitRe.ReplaceAllStringFunc(source, func(lit string) string {
		unquoted := lit[1 : len(lit)-1]
		entries = append(entries, `"`+encryptChunk(unquoted, secret)+`"`)
		call := fmt.Sprintf("%s(%d)", fnName, idx)
		idx++
		return call
	})
	extracted = len(entries)

	prelude := fmt.Sprintf("var %s=[%s];", arrName, strings.Join(entries, ",")) +
		fmt.Sprintf(concealDecoder, fnName, encodeKey(secret), arrName)
	artifact = prelude + "\n" + body

	return &Result{
		Text: artifact,
		Log: fmt.Sprintf("strings: concealed %d string literals (key %s)",
			extracted, keyFingerprint(secret)),
	}, nil
}

func (c *stringCodec) Decode(ctx context.Context, artifact, key string) (*Result, error) {
	start := time.Now()
	emitDecodeStart(ctx, MethodStrings, len(artifact))

	var retErr error
	var recovered int
	var text string
	defer func() {
		emitDecodeComplete(ctx, MethodStrings, len(text), recovered, time.Since(start), retErr)
	}()

	if artifact == "" {
		retErr = newTransformError(ErrInvalidInput, MethodStrings, "empty artifact")
		return nil, retErr
	}
	if key == "" {
		retErr = newTransformError(ErrInvalidInput, MethodStrings, "empty secret key")
		return nil, retErr
	}

	tm := concealTableRe.FindStringSubmatch(artifact)
	if tm == nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodStrings, "string table")
		return nil, retErr
	}
	km := concealKeyRe.FindStringSubmatch(artifact)
	if km == nil {
		retErr = newArtifactError(ErrMalformedArtifact, MethodStrings, "embedded key")
		return nil, retErr
	}

	if encodeKey(key) != km[1] {
		retErr = newArtifactError(ErrAuthMismatch, MethodStrings, "embedded key")
		return nil, retErr
	}

	entries := splitQuoted(tm[2])
	recovered = len(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "recovered %d string(s):\n", recovered)
	for i, entry := range entries {
		plain, err := decryptChunk(entry, key)
		if err != nil {
			retErr = newArtifactError(ErrMalformedArtifact, MethodStrings, "string table")
			return nil, retErr
		}
		fmt.Fprintf(&b, "[%d] \"%s\"\n", i, plain)
	}
	b.WriteString("\nnote: the surrounding program cannot be rebuilt automatically")

	text = b.String()
	return &Result{
		Text: text,
		Log:  fmt.Sprintf("strings: revealed %d string literals", recovered),
	}, nil
}

// randIdent returns a hex-suffixed identifier in the _0xNNNN style.
func randIdent() string {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "_0xdead"
	}
	return fmt.Sprintf("_0x%02x%02x", buf[0], buf[1])
}
