package veil

import "context"

// Override interfaces allow types to bypass reflection-based processing.
// When a type implements one of these interfaces, the Processor calls the
// interface method instead of using reflection to transform fields.
//
// These interfaces are designed for codegen: a code generator can implement
// these methods based on struct tags, providing compile-time safety and
// optimal performance.

// Concealable bypasses reflection for Conceal operations.
// Implement this to handle all field concealment for a type.
type Concealable interface {
	// ConcealFields obfuscates the receiver's fields. The secrets map
	// contains all registered secrets keyed by method. The receiver is a
	// clone, so mutations are safe.
	ConcealFields(ctx context.Context, secrets map[Method]string) error
}

// Revealable bypasses reflection for Reveal operations.
// Implement this to handle all field recovery for a type.
type Revealable interface {
	// RevealFields recovers the receiver's fields. The secrets map
	// contains all registered secrets keyed by method. The receiver is a
	// clone, so mutations are safe.
	RevealFields(ctx context.Context, secrets map[Method]string) error
}
