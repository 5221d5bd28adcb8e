// Package json provides a JSON rename table codec.
package json

import (
	"encoding/json"

	"github.com/zoobzio/veil"
)

// jsonCodec implements veil.TableCodec for JSON.
type jsonCodec struct{}

// New returns a JSON table codec. JSON is also the canonical decode-key
// form accepted by the rename codec itself.
func New() veil.TableCodec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes a rename table as JSON.
func (c *jsonCodec) Marshal(t veil.RenameTable) ([]byte, error) {
	return json.Marshal(t)
}

// Unmarshal decodes JSON data into a rename table.
func (c *jsonCodec) Unmarshal(data []byte) (veil.RenameTable, error) {
	var t veil.RenameTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}
