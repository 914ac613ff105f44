package ldap

import (
	"github.com/dirwire/ldapcodec/internal/ber"
)

// Context-specific tags for Extended and Intermediate operations.
const (
	ContextTagExtendedRequestName   = 0  // [0] requestName     LDAPOID
	ContextTagExtendedRequestValue  = 1  // [1] requestValue    OCTET STRING OPTIONAL
	ContextTagExtendedResponseName  = 10 // [10] responseName   LDAPOID OPTIONAL
	ContextTagExtendedResponseValue = 11 // [11] responseValue  OCTET STRING OPTIONAL
	ContextTagIntermediateOID       = 0  // [0] responseName    LDAPOID OPTIONAL
	ContextTagIntermediateValue     = 1  // [1] responseValue   OCTET STRING OPTIONAL
)

// SearchResultReference represents a continuation reference returned
// instead of (or alongside) search result entries.
// Per RFC 4511 Section 4.5.2:
// SearchResultReference ::= [APPLICATION 19] SEQUENCE SIZE (1..MAX) OF uri URI
type SearchResultReference struct {
	// URIs contains one or more referral URIs
	URIs []string
}

// Encode encodes the SearchResultReference to BER format.
func (r *SearchResultReference) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	err := encoder.WriteApplicationConstructed(ApplicationSearchResultReference, func(app *ber.BEREncoder) error {
		for _, uri := range r.URIs {
			if err := app.WriteOctetString([]byte(uri)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// ParseSearchResultReference parses a SearchResultReference from raw
// operation data (the contents of the APPLICATION 19 tag).
func ParseSearchResultReference(data []byte) (*SearchResultReference, error) {
	decoder := ber.NewBERDecoder(data)

	ref := &SearchResultReference{}
	for decoder.Remaining() > 0 {
		uri, err := decoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read referral URI", err)
		}
		ref.URIs = append(ref.URIs, string(uri))
	}

	if len(ref.URIs) == 0 {
		return nil, NewParseError(0, "search result reference must contain at least one URI", nil)
	}

	return ref, nil
}

// ExtendedRequest represents an LDAP Extended operation request.
// Per RFC 4511 Section 4.12:
// ExtendedRequest ::= [APPLICATION 23] SEQUENCE {
//
//	requestName      [0] LDAPOID,
//	requestValue     [1] OCTET STRING OPTIONAL
//
// }
type ExtendedRequest struct {
	// Name is the request OID identifying the extended operation
	Name string
	// Value is the operation-specific request value (optional)
	Value []byte
}

// Encode encodes the ExtendedRequest to BER format.
func (r *ExtendedRequest) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	err := encoder.WriteApplicationConstructed(ApplicationExtendedRequest, func(app *ber.BEREncoder) error {
		if err := app.WriteTaggedValue(ContextTagExtendedRequestName, false, []byte(r.Name)); err != nil {
			return err
		}
		if r.Value != nil {
			if err := app.WriteTaggedValue(ContextTagExtendedRequestValue, false, r.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// ParseExtendedRequest parses an ExtendedRequest from raw operation data
// (the contents of the APPLICATION 23 tag).
func ParseExtendedRequest(data []byte) (*ExtendedRequest, error) {
	decoder := ber.NewBERDecoder(data)

	tagNum, _, nameBytes, err := decoder.ReadTaggedValue()
	if err != nil || tagNum != ContextTagExtendedRequestName {
		return nil, NewParseError(decoder.Offset(), "failed to read requestName", err)
	}

	req := &ExtendedRequest{Name: string(nameBytes)}

	if decoder.Remaining() > 0 {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagExtendedRequestValue {
			return nil, NewParseError(decoder.Offset(), "failed to read requestValue", err)
		}
		req.Value = value
	}

	return req, nil
}

// ExtendedResponse represents an LDAP Extended operation response.
// Per RFC 4511 Section 4.12:
// ExtendedResponse ::= [APPLICATION 24] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	responseName     [10] LDAPOID OPTIONAL,
//	responseValue    [11] OCTET STRING OPTIONAL
//
// }
type ExtendedResponse struct {
	// LDAPResult contains the common result fields
	LDAPResult
	// Name is the response OID (optional)
	Name string
	// Value is the operation-specific response value (optional)
	Value []byte
}

// Encode encodes the ExtendedResponse to BER format.
func (r *ExtendedResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationExtendedResponse, &r.LDAPResult, func(app *ber.BEREncoder) error {
		if r.Name != "" {
			if err := app.WriteTaggedValue(ContextTagExtendedResponseName, false, []byte(r.Name)); err != nil {
				return err
			}
		}
		if r.Value != nil {
			if err := app.WriteTaggedValue(ContextTagExtendedResponseValue, false, r.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// ParseExtendedResponse parses an ExtendedResponse from raw operation data
// (the contents of the APPLICATION 24 tag).
func ParseExtendedResponse(data []byte) (*ExtendedResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := decodeLDAPResult(decoder)
	if err != nil {
		return nil, err
	}

	resp := &ExtendedResponse{LDAPResult: *result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagExtendedResponseName) {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagExtendedResponseName {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		resp.Name = string(value)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagExtendedResponseValue) {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagExtendedResponseValue {
			return nil, NewParseError(decoder.Offset(), "failed to read responseValue", err)
		}
		resp.Value = value
	}

	return resp, nil
}

// IntermediateResponse represents an LDAP Intermediate response, used by
// extended operations that need to stream partial results before the
// final ExtendedResponse (RFC 4511 Section 4.13).
// IntermediateResponse ::= [APPLICATION 25] SEQUENCE {
//
//	responseName     [0] LDAPOID OPTIONAL,
//	responseValue    [1] OCTET STRING OPTIONAL
//
// }
type IntermediateResponse struct {
	// Name is the response OID (optional)
	Name string
	// Value is the operation-specific response value (optional)
	Value []byte
}

// Encode encodes the IntermediateResponse to BER format.
func (r *IntermediateResponse) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	err := encoder.WriteApplicationConstructed(ApplicationIntermediateResponse, func(app *ber.BEREncoder) error {
		if r.Name != "" {
			if err := app.WriteTaggedValue(ContextTagIntermediateOID, false, []byte(r.Name)); err != nil {
				return err
			}
		}
		if r.Value != nil {
			if err := app.WriteTaggedValue(ContextTagIntermediateValue, false, r.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// ParseIntermediateResponse parses an IntermediateResponse from raw
// operation data (the contents of the APPLICATION 25 tag).
func ParseIntermediateResponse(data []byte) (*IntermediateResponse, error) {
	decoder := ber.NewBERDecoder(data)

	resp := &IntermediateResponse{}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermediateOID) {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagIntermediateOID {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		resp.Name = string(value)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermediateValue) {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagIntermediateValue {
			return nil, NewParseError(decoder.Offset(), "failed to read responseValue", err)
		}
		resp.Value = value
	}

	return resp, nil
}
