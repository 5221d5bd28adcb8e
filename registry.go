package veil

import "sync"

var (
	registry   = make(map[Method]Codec)
	registryMu sync.RWMutex
)

// Use returns the cached codec for a method, building it on first use.
// Codecs are stateless, so a single instance serves all callers.
func Use(method Method) (Codec, error) {
	registryMu.RLock()
	if cached, ok := registry[method]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[method]; ok {
		return cached, nil
	}

	var c Codec
	switch method {
	case MethodFragment:
		c = NewFragmentCodec()
	case MethodRename:
		c = NewRenameCodec()
	case MethodStrings:
		c = NewStringCodec()
	default:
		return nil, newTransformError(ErrUnknownMethod, method, "")
	}

	registry[method] = c
	return c, nil
}

// Reset clears the codec registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Method]Codec)
}
