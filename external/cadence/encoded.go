package cadence

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// MsgPackDataConverter encodes workflow and activity payloads with msgpack.
// Struct fields are keyed by their json tags, the same names the REST API
// and the mongo documents use.
type MsgPackDataConverter struct{}

func NewMsgPackDataConverter() *MsgPackDataConverter {
	return &MsgPackDataConverter{}
}

// ToData encodes values one after another into a single payload
func (c *MsgPackDataConverter) ToData(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseJSONTag(true)
	for i, v := range values {
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode payload %d (%T): %w", i, v, err)
		}
	}
	return buf.Bytes(), nil
}

// FromData decodes a payload into valuePtrs in order
func (c *MsgPackDataConverter) FromData(input []byte, valuePtrs ...interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(input)).UseJSONTag(true)
	for i, ptr := range valuePtrs {
		if err := dec.Decode(ptr); err != nil {
			return fmt.Errorf("decode payload %d (%T): %w", i, ptr, err)
		}
	}
	return nil
}
