// Package jsoncodec is the default codec. Importing it registers it for the
// json extension.
package jsoncodec

import (
	"encoding/json"

	"github.com/kvpfs/kvpfs/codec"
)

type jsonCodec struct{}

func init() {
	codec.Register(New())
}

// New returns the JSON codec.
func New() codec.Codec {
	return &jsonCodec{}
}

var _ codec.Unmarshaler = &jsonCodec{}

func (c *jsonCodec) Extensions() []string {
	return []string{"json"}
}

// Encode stores strings as-is and JSON-encodes everything else.
func (c *jsonCodec) Encode(v interface{}) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(v)
}

// Decode parses data as JSON, or returns it as a string if that fails.
func (c *jsonCodec) Decode(data []byte) interface{} {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

func (c *jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
