package veil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeDecode_Fragment(t *testing.T) {
	ctx := context.Background()

	enc, err := Encode(ctx, MethodFragment, "console.log(1)", "ab")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	dec, err := Decode(ctx, MethodFragment, enc.Text, "ab")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if dec.Text != "console.log(1)" {
		t.Errorf("round-trip = %q, want %q", dec.Text, "console.log(1)")
	}
}

func TestEncodeDecode_Rename(t *testing.T) {
	ctx := context.Background()

	enc, err := Encode(ctx, MethodRename, "function foo(bar){return bar+1;}", "")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	key, err := json.Marshal(enc.Table)
	if err != nil {
		t.Fatalf("marshal table: %v", err)
	}

	dec, err := Decode(ctx, MethodRename, enc.Text, string(key))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if dec.Text != "function foo(bar){return bar+1;}" {
		t.Errorf("round-trip = %q", dec.Text)
	}
}

func TestEncode_UnknownMethod(t *testing.T) {
	ctx := context.Background()

	if _, err := Encode(ctx, Method("rot13"), "code", "key"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
	if _, err := Decode(ctx, Method("rot13"), "artifact", "key"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}
