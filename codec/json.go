package codec

import "encoding/json"

// JSON serializes snapshots with encoding/json. The zero value is ready to
// use. Note that JSON round-trips all numbers as float64, which is usually
// fine for attribute maps but matters if you compare integer attributes
// by type.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
