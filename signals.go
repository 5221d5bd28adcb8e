package veil

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalEncodeStart    = capitan.NewSignal("veil.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("veil.encode.complete", "Encode operation finished")
	SignalDecodeStart    = capitan.NewSignal("veil.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("veil.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyMethod         = capitan.NewStringKey("method")
	KeyInputSize      = capitan.NewIntKey("input_size")
	KeyOutputSize     = capitan.NewIntKey("output_size")
	KeyItemCount      = capitan.NewIntKey("item_count")
	KeyKeyFingerprint = capitan.NewStringKey("key_fingerprint")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
)

// emitEncodeStart emits an event when an encode begins.
func emitEncodeStart(ctx context.Context, method Method, inputSize int) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyMethod.Field(string(method)),
		KeyInputSize.Field(inputSize),
	)
}

// emitEncodeComplete emits an event when an encode finishes. The item
// count is method-specific: fragments, renamed identifiers, or extracted
// strings.
func emitEncodeComplete(ctx context.Context, method Method, outputSize, items int, fingerprint string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMethod.Field(string(method)),
		KeyOutputSize.Field(outputSize),
		KeyItemCount.Field(items),
		KeyDuration.Field(duration),
	}
	if fingerprint != "" {
		fields = append(fields, KeyKeyFingerprint.Field(fingerprint))
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when a decode begins.
func emitDecodeStart(ctx context.Context, method Method, inputSize int) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyMethod.Field(string(method)),
		KeyInputSize.Field(inputSize),
	)
}

// emitDecodeComplete emits an event when a decode finishes.
func emitDecodeComplete(ctx context.Context, method Method, outputSize, items int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMethod.Field(string(method)),
		KeyOutputSize.Field(outputSize),
		KeyItemCount.Field(items),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
