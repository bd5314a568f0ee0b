// Package stormcodec provides extra storm codecs backed by ugorji's codec package.
package stormcodec

import (
	"bytes"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	ugorji "github.com/ugorji/go/codec"
)

var (
	// CBOR encodes to and decodes from CBOR (Concise Binary Object Representation).
	// http://cbor.io/
	// https://tools.ietf.org/html/rfc7049
	CBOR codec.MarshalUnmarshaler = &handleCodec{name: "cbor", handle: &ugorji.CborHandle{}}

	// Binc encodes to and decodes from Binc.
	// See https://github.com/ugorji/binc
	Binc codec.MarshalUnmarshaler = &handleCodec{name: "binc", handle: &ugorji.BincHandle{}}
)

// ByName returns the storm codec for the given name.
// An empty name returns the default msgpack codec.
func ByName(name string) (codec.MarshalUnmarshaler, error) {
	switch name {
	case "", "msgpack":
		return msgpack.Codec, nil
	case "cbor":
		return CBOR, nil
	case "binc":
		return Binc, nil
	default:
		return nil, errors.Errorf("unsupported storm codec: %s", name)
	}
}

type handleCodec struct {
	name   string
	handle ugorji.Handle
}

func (c *handleCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := ugorji.NewEncoder(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *handleCodec) Unmarshal(b []byte, v any) error {
	return ugorji.NewDecoder(bytes.NewReader(b), c.handle).Decode(v)
}

func (c *handleCodec) Name() string {
	return c.name
}
