package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapability(t *testing.T) {
	c, err := ParseCapability("client:abc-123:view_documents")
	require.NoError(t, err)
	assert.Equal(t, Capability{Resource: "client", ResourceID: "abc-123", Action: "view_documents"}, c)

	c, err = ParseCapability("clients:manage")
	require.NoError(t, err)
	assert.Equal(t, Capability{Resource: "clients", Action: "manage"}, c)

	c, err = ParseCapability("admin:all")
	require.NoError(t, err)
	assert.Equal(t, WildcardAll, c)

	for _, bad := range []string{"", "client", "client::view", ":x:y", "a:b:c:d"} {
		_, err := ParseCapability(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestHasCapability(t *testing.T) {
	granted := []Capability{
		{Resource: "client", ResourceID: "id-1", Action: "view_documents"},
		{Resource: "reports", Action: "generate"},
	}

	assert.True(t, HasCapability(granted, Capability{Resource: "client", ResourceID: "id-1", Action: "view_documents"}))
	assert.True(t, HasCapability(granted, Capability{Resource: "reports", Action: "generate"}))

	// Structural equality, not prefix matching: a different id or action fails.
	assert.False(t, HasCapability(granted, Capability{Resource: "client", ResourceID: "id-2", Action: "view_documents"}))
	assert.False(t, HasCapability(granted, Capability{Resource: "client", ResourceID: "id-1", Action: "edit"}))

	assert.True(t, HasCapability([]Capability{WildcardAll}, Capability{Resource: "client", ResourceID: "id-9", Action: "edit"}))
	assert.False(t, HasCapability(nil, Capability{Resource: "reports", Action: "generate"}))
}

func TestCapabilityClaimsRoundTrip(t *testing.T) {
	caps := []Capability{
		WildcardAll,
		{Resource: "client", ResourceID: "id-1", Action: "view"},
		{Resource: "clients", Action: "manage"},
	}
	encoded := EncodeCapabilities(caps)
	assert.Equal(t, []string{"admin:all", "client:id-1:view", "clients:manage"}, encoded)

	raw := make([]interface{}, len(encoded))
	for i, s := range encoded {
		raw[i] = s
	}
	decoded := DecodeCapabilityClaims(raw)
	assert.Equal(t, caps, decoded)
}

func TestDecodeCapabilityClaimsDropsMalformed(t *testing.T) {
	raw := []interface{}{"clients:manage", "notacap", 42, "a:b:c:d"}
	decoded := DecodeCapabilityClaims(raw)
	assert.Equal(t, []Capability{{Resource: "clients", Action: "manage"}}, decoded)
}
