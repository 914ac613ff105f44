package controls

import "errors"

// OIDCascade is the Cascade control OID used by directory servers that
// support recursive replication of administrative operations (e.g. a
// delete that must cascade to subordinate entries). Like ManageDsaIT it
// carries no value: its presence, usually marked critical, is the entire
// signal.
const OIDCascade = "1.3.6.1.4.1.18060.0.0.1"

// Cascade is the (empty) typed payload of the Cascade control.
type Cascade struct{}

// ErrUnexpectedCascadeValue is returned when a Cascade control carries a
// non-empty value.
var ErrUnexpectedCascadeValue = errors.New("controls: Cascade control must not carry a value")

// CascadeCodec implements Codec for OIDCascade.
type CascadeCodec struct{}

// Decode implements Codec.
func (CascadeCodec) Decode(value []byte) (interface{}, error) {
	if len(value) != 0 {
		return nil, ErrUnexpectedCascadeValue
	}
	return Cascade{}, nil
}

// Encode implements Codec.
func (CascadeCodec) Encode(payload interface{}) ([]byte, error) {
	if _, ok := payload.(Cascade); !ok {
		return nil, ErrUnexpectedCascadeValue
	}
	return nil, nil
}

// DefaultInstance implements Codec.
func (CascadeCodec) DefaultInstance() interface{} {
	return Cascade{}
}
