package controls

import (
	"errors"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// OIDSubentries is the Subentries control OID (RFC 3672).
const OIDSubentries = "1.3.6.1.4.1.4203.1.10.1"

// Subentries is the typed payload of the Subentries control: a single
// BOOLEAN selecting whether the search should return subentries
// (visibility=true) or ordinary entries (visibility=false).
type Subentries struct {
	Visibility bool
}

// ErrInvalidSubentries is returned when a Subentries control value is
// malformed.
var ErrInvalidSubentries = errors.New("controls: invalid subentries value")

// SubentriesCodec implements Codec for OIDSubentries.
type SubentriesCodec struct{}

// Decode implements Codec.
func (SubentriesCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)
	visibility, err := dec.ReadBoolean()
	if err != nil || dec.Remaining() != 0 {
		return nil, ErrInvalidSubentries
	}
	return Subentries{Visibility: visibility}, nil
}

// Encode implements Codec.
func (SubentriesCodec) Encode(payload interface{}) ([]byte, error) {
	se, ok := payload.(Subentries)
	if !ok {
		return nil, ErrInvalidSubentries
	}

	enc := ber.NewBEREncoder(3)
	if err := enc.WriteBoolean(se.Visibility); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// DefaultInstance implements Codec.
func (SubentriesCodec) DefaultInstance() interface{} {
	return Subentries{}
}
