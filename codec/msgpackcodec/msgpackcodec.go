// Package msgpackcodec stores records as MessagePack. Importing it registers
// it for the msgpack and mpk extensions.
package msgpackcodec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kvpfs/kvpfs/codec"
)

type msgpackCodec struct{}

func init() {
	codec.Register(New())
}

// New returns the MessagePack codec.
func New() codec.Codec {
	return &msgpackCodec{}
}

var _ codec.Unmarshaler = &msgpackCodec{}

func (c *msgpackCodec) Extensions() []string {
	return []string{"msgpack", "mpk"}
}

// Encode encodes every value, strings included; the format is binary so
// there is no passthrough.
func (c *msgpackCodec) Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *msgpackCodec) Decode(data []byte) interface{} {
	var v interface{}
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

func (c *msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
