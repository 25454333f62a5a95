//go:build nojsonsimd

package jsonx

import stdjson "encoding/json"

// Marshal encodes v as JSON.
func Marshal(v any) ([]byte, error) {
	return stdjson.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return stdjson.Unmarshal(data, v)
}
