package veil

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestStrings_Scenario(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	enc, err := c.Encode(ctx, `let x = "hi";`, "k")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if strings.Contains(enc.Text, `"hi"`) {
		t.Errorf("artifact should not contain the literal: %s", enc.Text)
	}
	// The literal is replaced with an indexed decoder call.
	if !regexp.MustCompile(`let x = _0x[0-9a-f]+\(0\);`).MatchString(enc.Text) {
		t.Errorf("expected a decoder call in place of the literal: %s", enc.Text)
	}

	dec, err := c.Decode(ctx, enc.Text, "k")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !strings.Contains(dec.Text, "recovered 1 string(s)") {
		t.Errorf("expected one recovered string: %s", dec.Text)
	}
	if !strings.Contains(dec.Text, `[0] "hi"`) {
		t.Errorf("expected hi to be revealed: %s", dec.Text)
	}
	if !strings.Contains(dec.Text, "cannot be rebuilt") {
		t.Errorf("expected a note that the program is not reconstructed: %s", dec.Text)
	}
}

func TestStrings_OrderPreserved(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	source := `a("first"); b('second'); c("third");`
	enc, err := c.Encode(ctx, source, "key")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	dec, err := c.Decode(ctx, enc.Text, "key")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	// Entries must come back in left-to-right extraction order.
	for i, want := range []string{`[0] "first"`, `[1] "second"`, `[2] "third"`} {
		if !strings.Contains(dec.Text, want) {
			t.Errorf("missing entry %d (%q): %s", i, want, dec.Text)
		}
	}
}

func TestStrings_LossyByDesign(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	source := `let x = "hi";`
	enc, _ := c.Encode(ctx, source, "k")
	dec, err := c.Decode(ctx, enc.Text, "k")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if dec.Text == source {
		t.Error("decode must not return the original program text")
	}
}

func TestStrings_WrongKey(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	enc, err := c.Encode(ctx, `let x = "hi";`, "k")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if _, err := c.Decode(ctx, enc.Text, "wrong"); !errors.Is(err, ErrAuthMismatch) {
		t.Errorf("got %v, want ErrAuthMismatch", err)
	}
}

func TestStrings_NoLiterals(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	source := "let x = 1 + 2;"
	enc, err := c.Encode(ctx, source, "k")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if enc.Text != source {
		t.Errorf("source without literals should pass through unchanged: %q", enc.Text)
	}
	if !strings.Contains(enc.Log, "no string literals") {
		t.Errorf("log should note the absent table: %q", enc.Log)
	}
	if strings.Contains(enc.Text, "atob") {
		t.Error("no decoder prelude should be injected")
	}
}

func TestStrings_EscapedQuotes(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	source := `say("she said \"hey\""); also('it\'s');`
	enc, err := c.Encode(ctx, source, "k")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	dec, err := c.Decode(ctx, enc.Text, "k")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !strings.Contains(dec.Text, "recovered 2 string(s)") {
		t.Errorf("escaped quotes should not split literals: %s", dec.Text)
	}
	if !strings.Contains(dec.Text, `she said \"hey\"`) {
		t.Errorf("escapes inside the literal should be preserved verbatim: %s", dec.Text)
	}
}

func TestStrings_EmptyLiteral(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	enc, err := c.Encode(ctx, `let x = "";`, "k")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	dec, err := c.Decode(ctx, enc.Text, "k")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !strings.Contains(dec.Text, `[0] ""`) {
		t.Errorf("empty literal should round-trip: %s", dec.Text)
	}
}

func TestStrings_EmptyInputs(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	if _, err := c.Encode(ctx, "", "k"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty source: got %v, want ErrInvalidInput", err)
	}
	if _, err := c.Encode(ctx, "code", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty secret: got %v, want ErrInvalidInput", err)
	}
	if _, err := c.Decode(ctx, "", "k"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty artifact: got %v, want ErrInvalidInput", err)
	}
	if _, err := c.Decode(ctx, "artifact", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty key: got %v, want ErrInvalidInput", err)
	}
}

func TestStrings_MalformedArtifact(t *testing.T) {
	ctx := context.Background()
	c := NewStringCodec()

	if _, err := c.Decode(ctx, "no table here", "k"); !errors.Is(err, ErrMalformedArtifact) {
		t.Errorf("got %v, want ErrMalformedArtifact", err)
	}

	// Table present but embedded key missing.
	if _, err := c.Decode(ctx, `var _0xaaaa=["QQ=="];`, "k"); !errors.Is(err, ErrMalformedArtifact) {
		t.Errorf("got %v, want ErrMalformedArtifact", err)
	}
}

func TestRandIdent_Format(t *testing.T) {
	re := regexp.MustCompile(`^_0x[0-9a-f]{4}$`)
	for i := 0; i < 50; i++ {
		id := randIdent()
		if !re.MatchString(id) {
			t.Fatalf("randIdent() = %q, not in _0xNNNN form", id)
		}
	}
}
