package veil

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices,
// or maps, ensure these are also copied to achieve true isolation.
//
// For simple value types with no reference fields, Clone can return the
// receiver value:
//
//	func (b Bundle) Clone() Bundle { return b }
type Cloner[T any] interface {
	Clone() T
}
