// Package jsonx is the JSON codec used for worker messages, cached records and
// status payloads. Builds use Sonic unless the nojsonsimd tag is set.
package jsonx

import stdjson "encoding/json"

// RawMessage is kept as an alias so callers don't need to import encoding/json
// for deferred decoding.
type RawMessage = stdjson.RawMessage

// Valid reports whether data is valid JSON.
func Valid(data []byte) bool {
	return stdjson.Valid(data)
}
