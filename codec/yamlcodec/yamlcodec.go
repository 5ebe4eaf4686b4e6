// Package yamlcodec stores records as YAML. Importing it registers it for the
// yaml and yml extensions.
package yamlcodec

import (
	"github.com/icza/dyno"
	"gopkg.in/yaml.v2"

	"github.com/kvpfs/kvpfs/codec"
)

type yamlCodec struct{}

func init() {
	codec.Register(New())
}

// New returns the YAML codec.
func New() codec.Codec {
	return &yamlCodec{}
}

var _ codec.Unmarshaler = &yamlCodec{}

func (c *yamlCodec) Extensions() []string {
	return []string{"yaml", "yml"}
}

func (c *yamlCodec) Encode(v interface{}) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return yaml.Marshal(v)
}

// Decode returns maps keyed by string, so decoded values look the same as
// those from the JSON codec.
func (c *yamlCodec) Decode(data []byte) interface{} {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return dyno.ConvertMapI2MapS(v)
}

func (c *yamlCodec) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}
