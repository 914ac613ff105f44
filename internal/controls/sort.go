package controls

import (
	"errors"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// OIDSortRequest is the Server Side Sort request control OID (RFC 2891).
const OIDSortRequest = "1.2.840.113556.1.4.473"

// OIDSortResponse is the Server Side Sort response control OID (RFC 2891).
const OIDSortResponse = "1.2.840.113556.1.4.474"

// SortKey is one entry of a SortRequest's key list.
//
//	SortKeyList ::= SEQUENCE OF SEQUENCE {
//	    attributeType   AttributeDescription,
//	    orderingRule    [0] MatchingRuleId OPTIONAL,
//	    reverseOrder    [1] BOOLEAN DEFAULT FALSE
//	}
type SortKey struct {
	AttributeType string
	OrderingRule  string
	ReverseOrder  bool
}

// SortRequest is the typed payload of the Server Side Sort request control.
type SortRequest struct {
	Keys []SortKey
}

// SortResult enumerates the outcome codes a SortResponse control carries.
// These mirror a subset of LDAPResult's ResultCode domain, reused here
// per RFC 2891 §2.
type SortResult int

const (
	SortResultSuccess            SortResult = 0
	SortResultOperationsError    SortResult = 1
	SortResultTimeLimitExceeded  SortResult = 3
	SortResultStrongAuthRequired SortResult = 8
	SortResultAdminLimitExceeded SortResult = 11
	SortResultNoSuchAttribute    SortResult = 16
	SortResultInappropriateMatch SortResult = 18
	SortResultInsufficientAccess SortResult = 50
	SortResultBusy               SortResult = 51
	SortResultUnwillingToPerform SortResult = 53
	SortResultOther              SortResult = 80
)

// SortResponse is the typed payload of the Server Side Sort response
// control.
//
//	SortResult ::= SEQUENCE {
//	    sortResult  ENUMERATED,
//	    attributeType [0] AttributeDescription OPTIONAL
//	}
type SortResponse struct {
	Result        SortResult
	AttributeType string
	HasAttribute  bool
}

var (
	// ErrInvalidSortRequest is returned when a SortRequest control value is
	// malformed.
	ErrInvalidSortRequest = errors.New("controls: invalid sort request value")
	// ErrInvalidSortResponse is returned when a SortResponse control value
	// is malformed.
	ErrInvalidSortResponse = errors.New("controls: invalid sort response value")
)

const (
	sortKeyTagOrderingRule = 0
	sortKeyTagReverseOrder = 1
	sortResponseTagAttr    = 0
)

// SortRequestCodec implements Codec for OIDSortRequest.
type SortRequestCodec struct{}

// Decode implements Codec.
func (SortRequestCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)

	seqLen, err := dec.ExpectSequence()
	if err != nil {
		return nil, ErrInvalidSortRequest
	}
	seqEnd := dec.Offset() + seqLen

	var keys []SortKey
	for dec.Offset() < seqEnd {
		keyDec, err := dec.ReadSequenceContents()
		if err != nil {
			return nil, ErrInvalidSortRequest
		}

		attrBytes, err := keyDec.ReadOctetString()
		if err != nil {
			return nil, ErrInvalidSortRequest
		}
		key := SortKey{AttributeType: string(attrBytes)}

		for keyDec.Remaining() > 0 {
			tagNum, _, val, err := keyDec.ReadTaggedValue()
			if err != nil {
				return nil, ErrInvalidSortRequest
			}
			switch tagNum {
			case sortKeyTagOrderingRule:
				key.OrderingRule = string(val)
			case sortKeyTagReverseOrder:
				key.ReverseOrder = len(val) == 1 && val[0] != 0x00
			default:
				return nil, ErrInvalidSortRequest
			}
		}

		keys = append(keys, key)
	}

	return SortRequest{Keys: keys}, nil
}

// Encode implements Codec.
func (SortRequestCodec) Encode(payload interface{}) ([]byte, error) {
	sr, ok := payload.(SortRequest)
	if !ok {
		return nil, ErrInvalidSortRequest
	}

	enc := ber.NewBEREncoder(64)
	err := enc.WriteSequence(func(seq *ber.BEREncoder) error {
		for _, key := range sr.Keys {
			err := seq.WriteSequence(func(k *ber.BEREncoder) error {
				if err := k.WriteOctetString([]byte(key.AttributeType)); err != nil {
					return err
				}
				if key.OrderingRule != "" {
					if err := k.WriteTaggedValue(sortKeyTagOrderingRule, false, []byte(key.OrderingRule)); err != nil {
						return err
					}
				}
				if key.ReverseOrder {
					if err := k.WriteTaggedValue(sortKeyTagReverseOrder, false, []byte{0xff}); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
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
func (SortRequestCodec) DefaultInstance() interface{} {
	return SortRequest{}
}

// SortResponseCodec implements Codec for OIDSortResponse.
type SortResponseCodec struct{}

// Decode implements Codec.
func (SortResponseCodec) Decode(value []byte) (interface{}, error) {
	dec := ber.NewBERDecoder(value)

	seqLen, err := dec.ExpectSequence()
	if err != nil {
		return nil, ErrInvalidSortResponse
	}
	seqEnd := dec.Offset() + seqLen

	result, err := dec.ReadEnumerated()
	if err != nil {
		return nil, ErrInvalidSortResponse
	}

	resp := SortResponse{Result: SortResult(result)}
	if dec.Offset() < seqEnd {
		tagNum, _, val, err := dec.ReadTaggedValue()
		if err != nil || tagNum != sortResponseTagAttr {
			return nil, ErrInvalidSortResponse
		}
		resp.AttributeType = string(val)
		resp.HasAttribute = true
	}
	if dec.Offset() != seqEnd {
		return nil, ErrInvalidSortResponse
	}

	return resp, nil
}

// Encode implements Codec.
func (SortResponseCodec) Encode(payload interface{}) ([]byte, error) {
	sr, ok := payload.(SortResponse)
	if !ok {
		return nil, ErrInvalidSortResponse
	}

	enc := ber.NewBEREncoder(16)
	err := enc.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteEnumerated(int64(sr.Result)); err != nil {
			return err
		}
		if sr.HasAttribute {
			return seq.WriteTaggedValue(sortResponseTagAttr, false, []byte(sr.AttributeType))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// DefaultInstance implements Codec.
func (SortResponseCodec) DefaultInstance() interface{} {
	return SortResponse{}
}
