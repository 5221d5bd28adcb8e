// Package msgpack provides a MessagePack rename table codec.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/veil"
)

// msgpackCodec implements veil.TableCodec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack table codec.
func New() veil.TableCodec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes a rename table as MessagePack.
func (c *msgpackCodec) Marshal(t veil.RenameTable) ([]byte, error) {
	return msgpack.Marshal(t)
}

// Unmarshal decodes MessagePack data into a rename table.
func (c *msgpackCodec) Unmarshal(data []byte) (veil.RenameTable, error) {
	var t veil.RenameTable
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}
