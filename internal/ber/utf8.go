package ber

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8Validator decodes UTF-8 strictly: it is used only to reject
// malformed byte sequences, never to transcode, since the input is
// already UTF-8 by the LDAPString/LDAPDN/AttributeDescription ASN.1
// productions (RFC 4511 Section 4.1.2).
var utf8Validator = unicode.UTF8Validator

// validateUTF8 reports an error if value is not well-formed UTF-8.
func validateUTF8(value []byte) error {
	_, _, err := transform.Bytes(utf8Validator, value)
	return err
}

// ReadUTF8String reads a BER-encoded OCTET STRING and validates that its
// content is well-formed UTF-8, for fields specified as LDAPString,
// LDAPDN, or AttributeDescription rather than arbitrary octets.
func (d *BERDecoder) ReadUTF8String() ([]byte, error) {
	startOffset := d.offset

	value, err := d.ReadOctetString()
	if err != nil {
		return nil, err
	}

	if err := validateUTF8(value); err != nil {
		return nil, NewDecodeError(startOffset, "invalid UTF-8 in LDAPString", ErrStringNotUTF8)
	}

	return value, nil
}
