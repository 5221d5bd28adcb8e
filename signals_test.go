package veil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitEncodeStart(_ *testing.T) {
	// Should not panic
	emitEncodeStart(context.Background(), MethodFragment, 128)
}

func TestEmitEncodeComplete_Success(_ *testing.T) {
	emitEncodeComplete(context.Background(), MethodFragment, 512, 7, "ab12cd34", 100*time.Millisecond, nil)
}

func TestEmitEncodeComplete_Error(_ *testing.T) {
	emitEncodeComplete(context.Background(), MethodStrings, 0, 0, "", 100*time.Millisecond, errors.New("test error"))
}

func TestEmitDecodeStart(_ *testing.T) {
	emitDecodeStart(context.Background(), MethodRename, 256)
}

func TestEmitDecodeComplete_Success(_ *testing.T) {
	emitDecodeComplete(context.Background(), MethodFragment, 128, 7, 100*time.Millisecond, nil)
}

func TestEmitDecodeComplete_Error(_ *testing.T) {
	emitDecodeComplete(context.Background(), MethodFragment, 0, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalEncodeStart", SignalEncodeStart},
		{"SignalEncodeComplete", SignalEncodeComplete},
		{"SignalDecodeStart", SignalDecodeStart},
		{"SignalDecodeComplete", SignalDecodeComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyMethod", KeyMethod},
		{"KeyInputSize", KeyInputSize},
		{"KeyOutputSize", KeyOutputSize},
		{"KeyItemCount", KeyItemCount},
		{"KeyKeyFingerprint", KeyKeyFingerprint},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
