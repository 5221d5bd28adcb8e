package veil

// RenameTable maps original identifiers to their generated replacements.
// It is produced by a rename encode and is the required decode key for
// that artifact; it cannot be regenerated from the artifact alone.
type RenameTable map[string]string

// TableCodec provides content-type aware rename table serialization for
// out-of-band transport. Implementations live in the json, yaml, and
// msgpack subpackages.
type TableCodec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes a rename table into bytes.
	Marshal(t RenameTable) ([]byte, error)

	// Unmarshal decodes data into a rename table.
	Unmarshal(data []byte) (RenameTable, error)
}
