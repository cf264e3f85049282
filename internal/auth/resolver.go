package auth

import (
	"github.com/horao-cloud/horao/internal/rbac"
)

// GroupResolver maps external group memberships to permission bundles. Group
// semantics are configuration; the trust core only consumes the result.
type GroupResolver interface {
	// Resolve returns the bundles granted for the given groups. Unknown
	// groups resolve to nothing, never to a default grant.
	Resolve(groups []string) []*rbac.Bundle
}

// StaticResolver resolves groups from a fixed mapping built at startup.
type StaticResolver struct {
	byGroup map[string][]*rbac.Bundle
}

// NewStaticResolver creates a resolver from a group-to-bundle mapping.
func NewStaticResolver(mapping map[string][]*rbac.Bundle) *StaticResolver {
	byGroup := make(map[string][]*rbac.Bundle, len(mapping))
	for group, bundles := range mapping {
		byGroup[group] = append([]*rbac.Bundle(nil), bundles...)
	}
	return &StaticResolver{byGroup: byGroup}
}

// DefaultResolver maps the built-in administrative groups to the predefined
// role bundles.
func DefaultResolver() *StaticResolver {
	return NewStaticResolver(map[string][]*rbac.Bundle{
		"system.admin": {rbac.AdministratorBundle()},
		"tenant.owner": {rbac.TenantOwnerBundle()},
	})
}

// Resolve returns the bundles for the given groups, deduplicated, in group
// order.
func (r *StaticResolver) Resolve(groups []string) []*rbac.Bundle {
	var out []*rbac.Bundle
	seen := make(map[*rbac.Bundle]bool)
	for _, group := range groups {
		for _, bundle := range r.byGroup[group] {
			if seen[bundle] {
				continue
			}
			seen[bundle] = true
			out = append(out, bundle)
		}
	}
	return out
}

// Ensure StaticResolver implements GroupResolver.
var _ GroupResolver = (*StaticResolver)(nil)
