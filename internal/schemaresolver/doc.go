// Package schemaresolver adapts attribute-type-aware string comparison into
// the DN and filter packages without either owning a full schema repository.
//
// # Overview
//
// DN equality and filter attribute normalization both need to know, for a
// given attribute type, how two values compare under its matching rule and
// what its canonical (OID) name is. A full schema repository (attribute type
// definitions, object classes, syntax validators) is out of scope here; this
// package only defines the narrow SchemaResolver interface that callers
// needing that behavior can implement, plus a CaseIgnoreResolver that
// approximates the caseIgnoreMatch family used by the great majority of
// directory attribute types.
//
//	resolver := schemaresolver.NewCaseIgnoreResolver()
//	resolver.Equal("cn", "Jane Smith", "jane smith") // true
package schemaresolver
