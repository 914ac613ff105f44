package ldap

import (
	"github.com/dirwire/ldapcodec/internal/ber"
)

// Context-specific tags for response fields
const (
	// ContextTagReferral is the tag for referral URIs in LDAPResult [3]
	ContextTagReferral = 3
	// ContextTagServerSASLCreds is the tag for server SASL credentials in BindResponse [7]
	ContextTagServerSASLCreds = 7
)

// LDAPResult represents the common result structure used in most LDAP responses.
// Per RFC 4511 Section 4.1.9:
// LDAPResult ::= SEQUENCE {
//
//	resultCode         ENUMERATED { ... },
//	matchedDN          LDAPDN,
//	diagnosticMessage  LDAPString,
//	referral           [3] Referral OPTIONAL
//
// }
type LDAPResult struct {
	// ResultCode indicates the outcome of the operation
	ResultCode ResultCode
	// MatchedDN contains the DN of the last entry matched during processing
	MatchedDN string
	// DiagnosticMessage contains additional diagnostic information
	DiagnosticMessage string
	// Referral contains URIs to other servers (optional)
	Referral []string
}

// Encode encodes the LDAPResult to BER format (without outer tag).
// This is used as part of response encoding.
func (r *LDAPResult) Encode(encoder *ber.BEREncoder) error {
	if err := encoder.WriteEnumerated(int64(r.ResultCode)); err != nil {
		return err
	}
	if err := encoder.WriteOctetString([]byte(r.MatchedDN)); err != nil {
		return err
	}
	if err := encoder.WriteOctetString([]byte(r.DiagnosticMessage)); err != nil {
		return err
	}

	if len(r.Referral) > 0 {
		if err := encoder.WriteContextConstructed(ContextTagReferral, func(ref *ber.BEREncoder) error {
			for _, uri := range r.Referral {
				if err := ref.WriteOctetString([]byte(uri)); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

// decodeLDAPResult reads the COMPONENTS OF LDAPResult fields directly from
// decoder (no envelope of its own): resultCode, matchedDN,
// diagnosticMessage, and an optional referral.
func decodeLDAPResult(decoder *ber.BERDecoder) (*LDAPResult, error) {
	code, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read resultCode", err)
	}

	matchedDN, err := decoder.ReadUTF8String()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read matchedDN", err)
	}

	diagnostic, err := decoder.ReadUTF8String()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read diagnosticMessage", err)
	}

	result := &LDAPResult{
		ResultCode:        ResultCode(code),
		MatchedDN:         string(matchedDN),
		DiagnosticMessage: string(diagnostic),
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagReferral) {
		refDecoder, err := decoder.ReadContextTagContents(ContextTagReferral)
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read referral", err)
		}
		for refDecoder.Remaining() > 0 {
			uri, err := refDecoder.ReadOctetString()
			if err != nil {
				return nil, NewParseError(refDecoder.Offset(), "failed to read referral URI", err)
			}
			result.Referral = append(result.Referral, string(uri))
		}
	}

	return result, nil
}

// encodeResultResponse writes an APPLICATION-tagged response whose body is
// COMPONENTS OF LDAPResult, optionally followed by extra fields.
func encodeResultResponse(appTag int, result *LDAPResult, extra func(*ber.BEREncoder) error) ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	err := encoder.WriteApplicationConstructed(appTag, func(app *ber.BEREncoder) error {
		if err := result.Encode(app); err != nil {
			return err
		}
		if extra != nil {
			return extra(app)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// BindResponse represents an LDAP Bind response.
// Per RFC 4511 Section 4.2.2:
// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL
//
// }
type BindResponse struct {
	// LDAPResult contains the common result fields
	LDAPResult
	// ServerSASLCreds contains server SASL credentials (optional)
	ServerSASLCreds []byte
}

// Encode encodes the BindResponse to BER format.
func (r *BindResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationBindResponse, &r.LDAPResult, func(app *ber.BEREncoder) error {
		if len(r.ServerSASLCreds) == 0 {
			return nil
		}
		return app.WriteTaggedValue(ContextTagServerSASLCreds, false, r.ServerSASLCreds)
	})
}

// ParseBindResponse parses a BindResponse from raw operation data (the
// contents of the APPLICATION 1 tag, without tag and length).
func ParseBindResponse(data []byte) (*BindResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := decodeLDAPResult(decoder)
	if err != nil {
		return nil, err
	}

	resp := &BindResponse{LDAPResult: *result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagServerSASLCreds) {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil || tagNum != ContextTagServerSASLCreds {
			return nil, NewParseError(decoder.Offset(), "failed to read serverSaslCreds", err)
		}
		resp.ServerSASLCreds = value
	}

	return resp, nil
}

// PartialAttribute represents an attribute with its values.
// Per RFC 4511 Section 4.1.7:
// PartialAttribute ::= SEQUENCE {
//
//	type       AttributeDescription,
//	vals       SET OF value AttributeValue
//
// }
type PartialAttribute struct {
	// Type is the attribute description (name or OID)
	Type string
	// Values contains the attribute values
	Values [][]byte
}

// SearchResultEntry represents a search result entry.
// Per RFC 4511 Section 4.5.2:
// SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//
//	objectName      LDAPDN,
//	attributes      PartialAttributeList
//
// }
// PartialAttributeList ::= SEQUENCE OF partialAttribute PartialAttribute
type SearchResultEntry struct {
	// ObjectName is the DN of the entry
	ObjectName string
	// Attributes contains the entry's attributes
	Attributes []PartialAttribute
}

// Encode encodes the SearchResultEntry to BER format.
func (r *SearchResultEntry) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(256)

	err := encoder.WriteApplicationConstructed(ApplicationSearchResultEntry, func(app *ber.BEREncoder) error {
		if err := app.WriteOctetString([]byte(r.ObjectName)); err != nil {
			return err
		}

		return app.WriteSequence(func(attrs *ber.BEREncoder) error {
			for _, attr := range r.Attributes {
				if err := attrs.WriteSequence(func(pa *ber.BEREncoder) error {
					if err := pa.WriteOctetString([]byte(attr.Type)); err != nil {
						return err
					}
					return pa.WriteSet(func(vals *ber.BEREncoder) error {
						for _, val := range attr.Values {
							if err := vals.WriteOctetString(val); err != nil {
								return err
							}
						}
						return nil
					})
				}); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return encoder.Bytes(), nil
}

// ParseSearchResultEntry parses a SearchResultEntry from raw operation data
// (the contents of the APPLICATION 4 tag, without tag and length).
func ParseSearchResultEntry(data []byte) (*SearchResultEntry, error) {
	decoder := ber.NewBERDecoder(data)

	objectName, err := decoder.ReadUTF8String()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read objectName", err)
	}

	attrsDecoder, err := decoder.ReadSequenceContents()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes", err)
	}

	entry := &SearchResultEntry{ObjectName: string(objectName)}
	seen := make(map[string]bool)

	for attrsDecoder.Remaining() > 0 {
		paDecoder, err := attrsDecoder.ReadSequenceContents()
		if err != nil {
			return nil, NewParseError(attrsDecoder.Offset(), "failed to read partial attribute", err)
		}

		typeBytes, err := paDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(paDecoder.Offset(), "failed to read attribute type", err)
		}
		attrType := string(typeBytes)
		if seen[attrType] {
			return nil, NewParseError(paDecoder.Offset(), "duplicate attribute description in entry", nil)
		}
		seen[attrType] = true

		valsDecoder, err := paDecoder.ReadSetContents()
		if err != nil {
			return nil, NewParseError(paDecoder.Offset(), "failed to read attribute values", err)
		}

		var values [][]byte
		for valsDecoder.Remaining() > 0 {
			val, err := valsDecoder.ReadOctetString()
			if err != nil {
				return nil, NewParseError(valsDecoder.Offset(), "failed to read attribute value", err)
			}
			values = append(values, val)
		}

		entry.Attributes = append(entry.Attributes, PartialAttribute{Type: attrType, Values: values})
	}

	return entry, nil
}

// SearchResultDone represents the final response to a search operation.
// Per RFC 4511 Section 4.5.2:
// SearchResultDone ::= [APPLICATION 5] LDAPResult
type SearchResultDone struct {
	LDAPResult
}

// Encode encodes the SearchResultDone to BER format.
func (r *SearchResultDone) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationSearchResultDone, &r.LDAPResult, nil)
}

// ParseSearchResultDone parses a SearchResultDone from raw operation data.
func ParseSearchResultDone(data []byte) (*SearchResultDone, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &SearchResultDone{LDAPResult: *result}, nil
}

// ModifyResponse represents the response to a modify operation.
// Per RFC 4511 Section 4.6:
// ModifyResponse ::= [APPLICATION 7] LDAPResult
type ModifyResponse struct {
	LDAPResult
}

// Encode encodes the ModifyResponse to BER format.
func (r *ModifyResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationModifyResponse, &r.LDAPResult, nil)
}

// ParseModifyResponse parses a ModifyResponse from raw operation data.
func ParseModifyResponse(data []byte) (*ModifyResponse, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &ModifyResponse{LDAPResult: *result}, nil
}

// AddResponse represents the response to an add operation.
// Per RFC 4511 Section 4.7:
// AddResponse ::= [APPLICATION 9] LDAPResult
type AddResponse struct {
	LDAPResult
}

// Encode encodes the AddResponse to BER format.
func (r *AddResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationAddResponse, &r.LDAPResult, nil)
}

// ParseAddResponse parses an AddResponse from raw operation data.
func ParseAddResponse(data []byte) (*AddResponse, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &AddResponse{LDAPResult: *result}, nil
}

// DeleteResponse represents the response to a delete operation.
// Per RFC 4511 Section 4.8:
// DelResponse ::= [APPLICATION 11] LDAPResult
type DeleteResponse struct {
	LDAPResult
}

// Encode encodes the DeleteResponse to BER format.
func (r *DeleteResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationDelResponse, &r.LDAPResult, nil)
}

// ParseDeleteResponse parses a DeleteResponse from raw operation data.
func ParseDeleteResponse(data []byte) (*DeleteResponse, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &DeleteResponse{LDAPResult: *result}, nil
}

// ModifyDNResponse represents the response to a modify DN operation.
// Per RFC 4511 Section 4.9:
// ModifyDNResponse ::= [APPLICATION 13] LDAPResult
type ModifyDNResponse struct {
	LDAPResult
}

// Encode encodes the ModifyDNResponse to BER format.
func (r *ModifyDNResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationModifyDNResponse, &r.LDAPResult, nil)
}

// ParseModifyDNResponse parses a ModifyDNResponse from raw operation data.
func ParseModifyDNResponse(data []byte) (*ModifyDNResponse, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &ModifyDNResponse{LDAPResult: *result}, nil
}

// CompareResponse represents the response to a compare operation.
// Per RFC 4511 Section 4.10:
// CompareResponse ::= [APPLICATION 15] LDAPResult
type CompareResponse struct {
	LDAPResult
}

// Encode encodes the CompareResponse to BER format.
func (r *CompareResponse) Encode() ([]byte, error) {
	return encodeResultResponse(ApplicationCompareResponse, &r.LDAPResult, nil)
}

// ParseCompareResponse parses a CompareResponse from raw operation data.
func ParseCompareResponse(data []byte) (*CompareResponse, error) {
	result, err := parseBareLDAPResult(data)
	if err != nil {
		return nil, err
	}
	return &CompareResponse{LDAPResult: *result}, nil
}

// parseBareLDAPResult decodes operation data whose entire body is
// COMPONENTS OF LDAPResult (SearchResultDone, ModifyResponse, AddResponse,
// DeleteResponse, ModifyDNResponse, CompareResponse).
func parseBareLDAPResult(data []byte) (*LDAPResult, error) {
	return decodeLDAPResult(ber.NewBERDecoder(data))
}

// NewSuccessResult creates a new LDAPResult with success status.
func NewSuccessResult() LDAPResult {
	return LDAPResult{
		ResultCode:        ResultSuccess,
		MatchedDN:         "",
		DiagnosticMessage: "",
	}
}

// NewErrorResult creates a new LDAPResult with the specified error.
func NewErrorResult(code ResultCode, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         "",
		DiagnosticMessage: message,
	}
}

// NewErrorResultWithDN creates a new LDAPResult with error and matched DN.
func NewErrorResultWithDN(code ResultCode, matchedDN, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         matchedDN,
		DiagnosticMessage: message,
	}
}
