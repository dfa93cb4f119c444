// Package codec provides the encoders modelcache uses to take snapshot copies
// of model values. A Codec must round-trip: Decode(Encode(v)) yields a value
// equal to v that shares no mutable memory with it.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
