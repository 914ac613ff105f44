// Package filter parses and re-serializes LDAP search filter strings per
// RFC 4515, independent of both the BER wire encoding and any directory
// evaluation engine.
//
// # Overview
//
// Parse builds a Filter tree from a filter string:
//
//	f, err := filter.Parse("(&(objectClass=person)(|(cn=a*)(cn=b*)))")
//	f.ToRFC4515() // "(&(objectClass=person)(|(cn=a*)(cn=b*)))"
//
// Supported node types mirror RFC 4515's filtercomp grammar: And, Or, Not,
// Equality, Substring, GreaterOrEqual, LessOrEqual, ApproxMatch, Present,
// and ExtensibleMatch. Assertion values are unescaped from "\HH" pairs on
// parse and re-escaped minimally on re-serialization.
//
// Evaluating a Filter against a directory entry is out of scope for this
// package; it only covers the string <-> tree transformation. AttachSchema
// rewrites Equality/Substring/etc. nodes whose attribute is unknown to a
// schemaresolver.SchemaResolver into the Undefined sentinel, matching the
// "unknown attribute in a filter never aborts the whole filter" rule RFC
// 4511 §4.5.1.7 describes for search evaluation.
package filter
