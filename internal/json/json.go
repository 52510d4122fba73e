package json

import (
	"bytes"
	"encoding/json"
)

type RawMessage = json.RawMessage
type Number = json.Number
type Marshaler = json.Marshaler

func Compact(dst *bytes.Buffer, src []byte) error {
	return json.Compact(dst, src)
}

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func MarshalIndent(v any, prefix string, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

func Valid(data []byte) bool {
	return json.Valid(data)
}

func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Decode unmarshals data into v, keeping numbers as [Number] so their
// textual representation survives a round-trip.
func Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Plain converts v into plain JSON values: map[string]any, []any, string,
// [Number], bool and nil. It uses v's JSON encoding, so any MarshalJSON
// methods and struct tags are honoured.
func Plain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := Decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
