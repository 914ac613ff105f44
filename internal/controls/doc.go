// Package controls implements a registry of typed LDAP control codecs,
// keyed by control OID, plus concrete codecs for the controls widely
// deployed across directory servers.
//
// # Overview
//
// A Registry maps a control's OID to a Codec capable of decoding its wire
// value into a typed Go struct and re-encoding it. Controls whose OID is
// not registered decode as OpaqueControl, preserving the raw bytes; a
// codec's criticality is never consulted by this package (per RFC 4511
// §4.1.11, enforcing criticality is a directory server's job, not the
// codec's).
//
//	reg := controls.NewRegistry()
//	reg.Register(controls.OIDPagedResults, controls.PagedResultsCodec{})
//	payload, err := reg.Decode(controls.OIDPagedResults, wireBytes)
//
// Registration is only valid before the registry's first Decode/Encode
// call; afterward Register returns ErrAlreadyInitialized, matching the
// read-mostly, set-up-once lifecycle controls have in a running server.
//
// Shipped codecs: PagedResults (RFC 2696), SortRequest/SortResponse
// (RFC 2891), ManageDsaIT (RFC 3296), Subentries (RFC 3672),
// ProxiedAuthorization (RFC 4370), Cascade, PersistentSearch, and
// EntryChange.
package controls
