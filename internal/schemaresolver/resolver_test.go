package schemaresolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseIgnoreResolver_Equal(t *testing.T) {
	r := NewCaseIgnoreResolver()

	assert.True(t, r.Equal("cn", "Jane Smith", "jane smith"))
	assert.True(t, r.Equal("cn", "  Jane   Smith  ", "jane smith"))
	assert.False(t, r.Equal("cn", "Jane Smith", "Jane Smyth"))
}

func TestCaseIgnoreResolver_Normalize(t *testing.T) {
	r := NewCaseIgnoreResolver()

	require.Equal(t, "jane smith", r.Normalize("cn", "  Jane   Smith  "))
	require.Equal(t, "", r.Normalize("cn", "   "))
}

func TestCaseIgnoreResolver_CanonicalOID(t *testing.T) {
	r := NewCaseIgnoreResolver()
	r.OIDs["cn"] = "2.5.4.3"

	oid, ok := r.CanonicalOID("CN")
	require.True(t, ok)
	assert.Equal(t, "2.5.4.3", oid)

	_, ok = r.CanonicalOID("unknownAttr")
	assert.False(t, ok)
}
