package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Structpb serializes attribute maps through google.protobuf.Struct. Use it
// when cached snapshots must be readable by non-Go consumers that already
// speak protobuf. Attribute values are limited to what structpb can carry
// (null, bool, float64, string, list, map); integers round-trip as float64.
type Structpb struct{}

var _ Codec[map[string]any] = Structpb{}

func (Structpb) Encode(v map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (Structpb) Decode(b []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
