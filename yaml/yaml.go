// Package yaml provides a YAML rename table codec.
package yaml

import (
	"github.com/zoobzio/veil"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements veil.TableCodec for YAML.
type yamlCodec struct{}

// New returns a YAML table codec.
func New() veil.TableCodec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes a rename table as YAML.
func (c *yamlCodec) Marshal(t veil.RenameTable) ([]byte, error) {
	return yaml.Marshal(t)
}

// Unmarshal decodes YAML data into a rename table.
func (c *yamlCodec) Unmarshal(data []byte) (veil.RenameTable, error) {
	var t veil.RenameTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}
