package filter

import (
	"testing"

	"github.com/dirwire/ldapcodec/internal/schemaresolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ComplexAndOr(t *testing.T) {
	f, err := Parse("(&(objectClass=person)(|(cn=a*)(cn=b*)))")
	require.NoError(t, err)

	require.Equal(t, FilterAnd, f.Type)
	require.Len(t, f.Children, 2)

	eq := f.Children[0]
	assert.Equal(t, FilterEquality, eq.Type)
	assert.Equal(t, "objectClass", eq.Attribute)
	assert.Equal(t, []byte("person"), eq.Value)

	or := f.Children[1]
	require.Equal(t, FilterOr, or.Type)
	require.Len(t, or.Children, 2)

	sub1 := or.Children[0]
	require.Equal(t, FilterSubstring, sub1.Type)
	assert.Equal(t, "cn", sub1.Attribute)
	assert.Equal(t, []byte("a"), sub1.Substring.Initial)
	assert.Empty(t, sub1.Substring.Any)
	assert.Nil(t, sub1.Substring.Final)

	sub2 := or.Children[1]
	assert.Equal(t, []byte("b"), sub2.Substring.Initial)

	assert.Equal(t, "(&(objectClass=person)(|(cn=a*)(cn=b*)))", f.ToRFC4515())
}

func TestParse_Presence(t *testing.T) {
	f, err := Parse("(objectClass=*)")
	require.NoError(t, err)
	assert.Equal(t, FilterPresent, f.Type)
	assert.Equal(t, "objectClass", f.Attribute)
}

func TestParse_SubstringAllComponents(t *testing.T) {
	f, err := Parse("(cn=Jo*n*Smith)")
	require.NoError(t, err)
	require.Equal(t, FilterSubstring, f.Type)
	assert.Equal(t, []byte("Jo"), f.Substring.Initial)
	assert.Equal(t, [][]byte{[]byte("n")}, f.Substring.Any)
	assert.Equal(t, []byte("Smith"), f.Substring.Final)
	assert.Equal(t, "(cn=Jo*n*Smith)", f.ToRFC4515())
}

func TestParse_HexEscape(t *testing.T) {
	f, err := Parse(`(cn=Lu\c4\89i\c4\87)`)
	require.NoError(t, err)
	assert.Equal(t, []byte("Lu\xc4\x89i\xc4\x87"), f.Value)
}

func TestParse_ExtensibleMatch(t *testing.T) {
	f, err := Parse("(cn:caseExactMatch:=Fred)")
	require.NoError(t, err)
	require.Equal(t, FilterExtensibleMatch, f.Type)
	assert.Equal(t, "cn", f.Extensible.Attribute)
	assert.Equal(t, "caseExactMatch", f.Extensible.MatchingRule)
	assert.Equal(t, []byte("Fred"), f.Extensible.Value)

	f2, err := Parse("(:dn:2.4.8.10:=test)")
	require.NoError(t, err)
	assert.Equal(t, "", f2.Extensible.Attribute)
	assert.True(t, f2.Extensible.DNAttributes)
	assert.Equal(t, "2.4.8.10", f2.Extensible.MatchingRule)

	f3, err := Parse("(o:dn:=Acme)")
	require.NoError(t, err)
	assert.Equal(t, "o", f3.Extensible.Attribute)
	assert.True(t, f3.Extensible.DNAttributes)
	assert.Equal(t, "", f3.Extensible.MatchingRule)
}

func TestParse_AndOrRequireChild(t *testing.T) {
	_, err := Parse("(&)")
	assert.Error(t, err)
	_, err = Parse("(|)")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"",
		"(cn=value",
		"(=value)",
		"(cn=val\\zz)",
		"(cn=val(ue)",
	}
	for _, in := range tests {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestFilter_AttachSchema(t *testing.T) {
	resolver := schemaresolver.NewCaseIgnoreResolver()
	resolver.OIDs["cn"] = "2.5.4.3"

	f, err := Parse("(&(cn=Alice)(unknownAttr=x))")
	require.NoError(t, err)

	attached := f.AttachSchema(resolver)
	require.Equal(t, FilterAnd, attached.Type)
	assert.Equal(t, FilterEquality, attached.Children[0].Type)
	assert.Equal(t, FilterUndefined, attached.Children[1].Type)
}

func TestFilter_ToRFC4515_RoundTrip(t *testing.T) {
	inputs := []string{
		"(&(objectClass=person)(|(cn=a*)(cn=b*)))",
		"(cn=*)",
		"(cn~=Smith)",
		"(uid>=100)",
		"(uid<=200)",
		"(cn:caseExactMatch:=Fred)",
	}
	for _, in := range inputs {
		f, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, f.ToRFC4515())
	}
}
