// Package codec (de)serializes record attribute snapshots for cache storage.
// The engine caches snapshots as map[string]any; Msgpack is the default.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
