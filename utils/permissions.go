package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Capability is a (resource, id, action) grant checked by structural equality.
// The string form "client:<id>:view_documents" exists only at the token edge;
// nothing inside the service parses permission strings.
type Capability struct {
	Resource   string
	ResourceID string
	Action     string
}

// WildcardAll grants every capability. Issued to admin accounts at login.
var WildcardAll = Capability{Resource: "admin", ResourceID: "", Action: "all"}

func (c Capability) String() string {
	if c == WildcardAll {
		return "admin:all"
	}
	if c.ResourceID == "" {
		return c.Resource + ":" + c.Action
	}
	return c.Resource + ":" + c.ResourceID + ":" + c.Action
}

// ParseCapability decodes the serialized form. Two segments mean an
// account-wide grant, three mean a resource-scoped one.
func ParseCapability(s string) (Capability, error) {
	if s == "admin:all" {
		return WildcardAll, nil
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Capability{}, fmt.Errorf("malformed capability %q", s)
		}
		return Capability{Resource: parts[0], Action: parts[1]}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Capability{}, fmt.Errorf("malformed capability %q", s)
		}
		return Capability{Resource: parts[0], ResourceID: parts[1], Action: parts[2]}, nil
	}
	return Capability{}, fmt.Errorf("malformed capability %q", s)
}

// HasCapability reports whether the grant list covers the wanted capability.
func HasCapability(granted []Capability, want Capability) bool {
	for _, g := range granted {
		if g == WildcardAll || g == want {
			return true
		}
	}
	return false
}

func EncodeCapabilities(caps []Capability) []string {
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, c.String())
	}
	return out
}

// DecodeCapabilityClaims parses the perms claim, dropping malformed entries.
func DecodeCapabilityClaims(raw []interface{}) []Capability {
	var caps []Capability
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		parsed, err := ParseCapability(s)
		if err != nil {
			continue
		}
		caps = append(caps, parsed)
	}
	return caps
}

// CapabilitiesFromContext returns the grants the auth middleware stored.
func CapabilitiesFromContext(c *gin.Context) []Capability {
	v, exists := c.Get("capabilities")
	if !exists {
		return nil
	}
	caps, ok := v.([]Capability)
	if !ok {
		return nil
	}
	return caps
}

// RequireCapability guards a route group behind a capability. Resource-scoped
// checks substitute the :id route param into the wanted capability.
func RequireCapability(want Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		check := want
		if check.ResourceID == ":id" {
			check.ResourceID = c.Param("id")
		}
		if !HasCapability(CapabilitiesFromContext(c), check) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
