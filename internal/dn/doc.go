// Package dn parses and normalizes LDAP distinguished names per RFC 4514,
// with the pre-4514 compatibilities real directory traffic still relies on.
//
// # Overview
//
// A DN is an ordered sequence of relative distinguished names (RDNs), each
// itself an ordered, possibly multivalued, set of attribute/value pairs
// (AVAs). Parse builds a DN that keeps both the user-provided input
// (byte-preserving, never altered) and a normalized form used for equality:
//
//	d, err := dn.Parse("CN = Sales + CN =   J. Smith , O = Widget Inc. , C = US")
//	d.String()     // "CN = Sales + CN =   J. Smith , O = Widget Inc. , C = US"
//	d.Normalized()  // "cn=J. Smith+cn=Sales,o=Widget Inc.,c=US"
//
// Normalization lowercases attribute types, unescapes then minimally
// re-escapes values, and sorts AVAs within a single RDN by normalized
// attribute type and then normalized value. Two DNs compare equal when
// their normalized forms match; an optional schemaresolver.SchemaResolver
// swaps in attribute-type-aware equality for the attribute types it knows.
package dn
