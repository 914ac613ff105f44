package controls

// OIDProxiedAuthorization is the Proxied Authorization control OID
// (RFC 4370).
const OIDProxiedAuthorization = "2.16.840.1.113730.3.4.18"

// ProxiedAuthorization is the typed payload of the Proxied Authorization
// control: its value is the raw authzId string ("dn:..." or "u:..."),
// carried directly as the control's OCTET STRING value with no further
// ASN.1 structure (RFC 4370 §3).
type ProxiedAuthorization struct {
	AuthzID string
}

// ProxiedAuthorizationCodec implements Codec for OIDProxiedAuthorization.
type ProxiedAuthorizationCodec struct{}

// Decode implements Codec.
func (ProxiedAuthorizationCodec) Decode(value []byte) (interface{}, error) {
	return ProxiedAuthorization{AuthzID: string(value)}, nil
}

// Encode implements Codec.
func (ProxiedAuthorizationCodec) Encode(payload interface{}) ([]byte, error) {
	pa, ok := payload.(ProxiedAuthorization)
	if !ok {
		return nil, ErrUnknownOID
	}
	return []byte(pa.AuthzID), nil
}

// DefaultInstance implements Codec.
func (ProxiedAuthorizationCodec) DefaultInstance() interface{} {
	return ProxiedAuthorization{}
}
