package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFromText_ToText_RoundTrip(t *testing.T) {
	const text = "(&(objectClass=person)(|(cn=a*)(cn=b*)))"

	wire, err := FilterFromText(text)
	require.NoError(t, err)

	back, err := FilterToText(wire)
	require.NoError(t, err)
	assert.Equal(t, text, back)
}

func TestFilterFromText_EncodesAsSearchRequest(t *testing.T) {
	wire, err := FilterFromText("(objectClass=*)")
	require.NoError(t, err)

	req := &SearchRequest{
		BaseObject:   "dc=example,dc=com",
		Scope:        ScopeWholeSubtree,
		DerefAliases: DerefNever,
		SizeLimit:    0,
		TimeLimit:    0,
		TypesOnly:    false,
		Filter:       wire,
		Attributes:   []string{"cn"},
	}

	encoded, err := req.Encode()
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
}
