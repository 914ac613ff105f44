package ldap

import (
	"github.com/dirwire/ldapcodec/internal/controls"
)

// ResolveControls decodes each control's Value through registry, storing
// the typed result in Parsed. Controls whose OID is unknown to registry
// are left as controls.OpaqueControl. Decoding stops at the first error.
func ResolveControls(msgControls []Control, registry *controls.Registry) error {
	for i := range msgControls {
		parsed, err := registry.Decode(msgControls[i].OID, msgControls[i].Value)
		if err != nil {
			return NewParseError(0, "failed to decode control "+msgControls[i].OID, err)
		}
		msgControls[i].Parsed = parsed
	}
	return nil
}

// EncodeControlValue encodes a typed control payload through registry,
// producing the raw Value bytes to store on a Control before the
// message is serialized.
func EncodeControlValue(oid string, payload interface{}, registry *controls.Registry) ([]byte, error) {
	return registry.Encode(oid, payload)
}
