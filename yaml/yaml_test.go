package yaml

import (
	"testing"

	"github.com/zoobzio/veil"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	original := veil.RenameTable{"foo": "a", "bar": "b"}
	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	decoded, err := c.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded["foo"] != "a" || decoded["bar"] != "b" {
		t.Errorf("round-trip = %v, want %v", decoded, original)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	if _, err := New().Unmarshal([]byte("[: not yaml")); err == nil {
		t.Error("expected error for invalid input")
	}
}
