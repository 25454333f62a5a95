//go:build !nojsonsimd

package jsonx

import "github.com/bytedance/sonic"

var fastJSON = sonic.ConfigStd

// Marshal encodes v as JSON.
func Marshal(v any) ([]byte, error) {
	return fastJSON.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return fastJSON.Unmarshal(data, v)
}
