package controls

import (
	"errors"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// OIDEntryChange is the Entry Change Notification control OID
// (draft-ietf-ldapext-psearch), attached to SearchResultEntry responses
// streamed back from a Persistent Search.
const OIDEntryChange = "2.16.840.1.113730.3.4.7"

// EntryChange is the typed payload of the Entry Change Notification
// control.
//
//	EntryChangeNotification ::= SEQUENCE {
//	    changeType    ENUMERATED {
//	        add             (1),
//	        delete          (2),
//	        modify          (4),
//	        modDN           (8)
//	    },
//	    previousDN    LDAPDN OPTIONAL,
//	    changeNumber  INTEGER OPTIONAL
//	}
type EntryChange struct {
	ChangeType      ChangeType
	PreviousDN      string
	HasPreviousDN   bool
	ChangeNumber    int64
	HasChangeNumber bool
}

// ErrInvalidEntryChange is returned when an Entry Change Notification
// control value is malformed.
var ErrInvalidEntryChange = errors.New("controls: invalid entry change value")

// EntryChangeCodec implements Codec for OIDEntryChange.
type EntryChangeCodec struct{}

// Decode implements Codec.
func (EntryChangeCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)

	seqLen, err := dec.ExpectSequence()
	if err != nil {
		return nil, ErrInvalidEntryChange
	}
	seqEnd := dec.Offset() + seqLen

	changeType, err := dec.ReadEnumerated()
	if err != nil {
		return nil, ErrInvalidEntryChange
	}

	ec := EntryChange{ChangeType: ChangeType(changeType)}

	if dec.Offset() < seqEnd {
		if class, _, num, perr := dec.PeekTag(); perr == nil && class == 0 && num == 4 {
			dn, derr := dec.ReadOctetString()
			if derr != nil {
				return nil, ErrInvalidEntryChange
			}
			ec.PreviousDN = string(dn)
			ec.HasPreviousDN = true
		}
	}
	if dec.Offset() < seqEnd {
		changeNumber, cerr := dec.ReadInteger()
		if cerr != nil {
			return nil, ErrInvalidEntryChange
		}
		ec.ChangeNumber = changeNumber
		ec.HasChangeNumber = true
	}
	if dec.Offset() != seqEnd {
		return nil, ErrInvalidEntryChange
	}

	return ec, nil
}

// Encode implements Codec.
func (EntryChangeCodec) Encode(payload interface{}) ([]byte, error) {
	ec, ok := payload.(EntryChange)
	if !ok {
		return nil, ErrInvalidEntryChange
	}

	enc := ber.NewBEREncoder(32)
	err := enc.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteEnumerated(int64(ec.ChangeType)); err != nil {
			return err
		}
		if ec.HasPreviousDN {
			if err := seq.WriteOctetString([]byte(ec.PreviousDN)); err != nil {
				return err
			}
		}
		if ec.HasChangeNumber {
			if err := seq.WriteInteger(ec.ChangeNumber); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// DefaultInstance implements Codec.
func (EntryChangeCodec) DefaultInstance() interface{} {
	return EntryChange{}
}
