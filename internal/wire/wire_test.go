package wire

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{nil, {}, []byte("x"), bytes.Repeat([]byte{0xAB}, 4096)}
	for _, p := range payloads {
		got, err := Decode(Encode(p))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round trip mismatch: got %d bytes want %d", len(got), len(p))
		}
	}
}

// Strict framing: trailing bytes make the whole entry corrupt.
func TestDecodeRejectsTrailing(t *testing.T) {
	b := Encode([]byte("x"))
	b = append(b, 0xDE, 0xAD)
	if _, err := Decode(b); err == nil {
		t.Fatalf("Decode should reject trailing bytes")
	}
}

func TestDecodeRejectsCorrupt(t *testing.T) {
	cases := map[string][]byte{
		"empty":       {},
		"short":       {'P', 'N', 'T'},
		"bad magic":   append([]byte("XXXX"), Encode([]byte("x"))[4:]...),
		"bad version": {'P', 'N', 'T', 'R', 99, 1, 0, 0, 0, 0},
		"bad kind":    {'P', 'N', 'T', 'R', 1, 99, 0, 0, 0, 0},
		"truncated":   Encode([]byte("payload"))[:12],
		"foreign":     []byte("not-wire-format"),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(b); err == nil {
				t.Fatalf("Decode should fail")
			}
		})
	}
}
