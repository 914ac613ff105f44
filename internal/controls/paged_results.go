package controls

import (
	"errors"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// OIDPagedResults is the Simple Paged Results control OID (RFC 2696).
const OIDPagedResults = "1.2.840.113556.1.4.319"

// PagedResults is the typed payload of the Simple Paged Results control.
//
//	realSearchControlValue ::= SEQUENCE {
//	    size    INTEGER,
//	    cookie  OCTET STRING
//	}
type PagedResults struct {
	Size   int
	Cookie []byte
}

// ErrInvalidPagedResults is returned when a Paged Results control value is
// malformed.
var ErrInvalidPagedResults = errors.New("controls: invalid paged results value")

// PagedResultsCodec implements Codec for OIDPagedResults.
type PagedResultsCodec struct{}

// Decode implements Codec.
func (PagedResultsCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)

	seqLen, err := dec.ExpectSequence()
	if err != nil {
		return nil, ErrInvalidPagedResults
	}
	seqEnd := dec.Offset() + seqLen

	size, err := dec.ReadInteger()
	if err != nil {
		return nil, ErrInvalidPagedResults
	}
	cookie, err := dec.ReadOctetString()
	if err != nil {
		return nil, ErrInvalidPagedResults
	}
	if dec.Offset() != seqEnd {
		return nil, ErrInvalidPagedResults
	}

	return PagedResults{Size: int(size), Cookie: cookie}, nil
}

// Encode implements Codec.
func (PagedResultsCodec) Encode(payload interface{}) ([]byte, error) {
	pr, ok := payload.(PagedResults)
	if !ok {
		return nil, ErrInvalidPagedResults
	}

	enc := ber.NewBEREncoder(32)
	err := enc.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteInteger(int64(pr.Size)); err != nil {
			return err
		}
		return seq.WriteOctetString(pr.Cookie)
	})
	if err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// DefaultInstance implements Codec.
func (PagedResultsCodec) DefaultInstance() interface{} {
	return PagedResults{}
}
