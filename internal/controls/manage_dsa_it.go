package controls

import "errors"

// OIDManageDsaIT is the ManageDsaIT control OID (RFC 3296). It has no
// value: presence of the control (typically marked critical) is the
// entire signal, telling the server to treat referral/alias objects as
// ordinary entries rather than following or dereferencing them.
const OIDManageDsaIT = "2.16.840.1.113730.3.4.2"

// ManageDsaIT is the (empty) typed payload of the ManageDsaIT control.
type ManageDsaIT struct{}

// ErrUnexpectedManageDsaITValue is returned when a ManageDsaIT control
// carries a non-empty value.
var ErrUnexpectedManageDsaITValue = errors.New("controls: ManageDsaIT control must not carry a value")

// ManageDsaITCodec implements Codec for OIDManageDsaIT.
type ManageDsaITCodec struct{}

// Decode implements Codec.
func (ManageDsaITCodec) Decode(value []byte) (interface{}, error) {
	if len(value) != 0 {
		return nil, ErrUnexpectedManageDsaITValue
	}
	return ManageDsaIT{}, nil
}

// Encode implements Codec.
func (ManageDsaITCodec) Encode(payload interface{}) ([]byte, error) {
	if _, ok := payload.(ManageDsaIT); !ok {
		return nil, ErrUnexpectedManageDsaITValue
	}
	return nil, nil
}

// DefaultInstance implements Codec.
func (ManageDsaITCodec) DefaultInstance() interface{} {
	return ManageDsaIT{}
}
