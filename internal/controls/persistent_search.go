package controls

import (
	"errors"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// OIDPersistentSearch is the Persistent Search control OID
// (draft-ietf-ldapext-psearch).
const OIDPersistentSearch = "2.16.840.1.113730.3.4.3"

// ChangeType enumerates the individual change bits a Persistent Search
// registers interest in; ChangeTypes below is their bitwise OR.
type ChangeType int

const (
	ChangeTypeAdd    ChangeType = 1
	ChangeTypeDelete ChangeType = 2
	ChangeTypeModify ChangeType = 4
	ChangeTypeModDN  ChangeType = 8
)

// PersistentSearch is the typed payload of the Persistent Search control.
//
//	PersistentSearch ::= SEQUENCE {
//	    changeTypes  INTEGER,
//	    changesOnly  BOOLEAN,
//	    returnECs    BOOLEAN
//	}
type PersistentSearch struct {
	ChangeTypes int
	ChangesOnly bool
	ReturnECs   bool
}

// Watches reports whether ct is one of the bits set in ChangeTypes.
func (p PersistentSearch) Watches(ct ChangeType) bool {
	return p.ChangeTypes&int(ct) != 0
}

// ErrInvalidPersistentSearch is returned when a Persistent Search control
// value is malformed.
var ErrInvalidPersistentSearch = errors.New("controls: invalid persistent search value")

// PersistentSearchCodec implements Codec for OIDPersistentSearch.
type PersistentSearchCodec struct{}

// Decode implements Codec.
func (PersistentSearchCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)

	seqLen, err := dec.ExpectSequence()
	if err != nil {
		return nil, ErrInvalidPersistentSearch
	}
	seqEnd := dec.Offset() + seqLen

	changeTypes, err := dec.ReadInteger()
	if err != nil {
		return nil, ErrInvalidPersistentSearch
	}
	changesOnly, err := dec.ReadBoolean()
	if err != nil {
		return nil, ErrInvalidPersistentSearch
	}
	returnECs, err := dec.ReadBoolean()
	if err != nil {
		return nil, ErrInvalidPersistentSearch
	}
	if dec.Offset() != seqEnd {
		return nil, ErrInvalidPersistentSearch
	}

	return PersistentSearch{
		ChangeTypes: int(changeTypes),
		ChangesOnly: changesOnly,
		ReturnECs:   returnECs,
	}, nil
}

// Encode implements Codec.
func (PersistentSearchCodec) Encode(payload interface{}) ([]byte, error) {
	ps, ok := payload.(PersistentSearch)
	if !ok {
		return nil, ErrInvalidPersistentSearch
	}

	enc := ber.NewBEREncoder(16)
	err := enc.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteInteger(int64(ps.ChangeTypes)); err != nil {
			return err
		}
		if err := seq.WriteBoolean(ps.ChangesOnly); err != nil {
			return err
		}
		return seq.WriteBoolean(ps.ReturnECs)
	})
	if err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// DefaultInstance implements Codec.
func (PersistentSearchCodec) DefaultInstance() interface{} {
	return PersistentSearch{}
}
