// Package types holds the wire-independent shapes shared by the filter,
// request, capability and processor packages: group/version/kind
// identifiers, admission requests and responses, and module configuration.
// The binding and capability descriptors live in pkg/capability.
package types

import "fmt"

// GroupVersionKind identifies a Kubernetes resource type. Group may be the
// empty string for the core API group.
type GroupVersionKind struct {
	Group   string `json:"group,omitempty"`
	Version string `json:"version,omitempty"`
	Kind    string `json:"kind"`
}

// String renders the GVK the way Kubernetes tooling conventionally does,
// e.g. "apps/v1, Kind=Deployment", "v1, Kind=Pod" for the core group, or
// "Kind=Pod" when neither group nor version is set.
func (g GroupVersionKind) String() string {
	switch {
	case g.Group == "" && g.Version == "":
		return fmt.Sprintf("Kind=%s", g.Kind)
	case g.Group == "":
		return fmt.Sprintf("%s, Kind=%s", g.Version, g.Kind)
	default:
		return fmt.Sprintf("%s/%s, Kind=%s", g.Group, g.Version, g.Kind)
	}
}

// Matches reports whether g matches a filter GVK, where an empty
// Group/Version on the filter wildcards that dimension. Kind is always
// required to match exactly.
func (g GroupVersionKind) Matches(filter GroupVersionKind) bool {
	if g.Kind != filter.Kind {
		return false
	}
	if filter.Group != "" && g.Group != filter.Group {
		return false
	}
	if filter.Version != "" && g.Version != filter.Version {
		return false
	}
	return true
}
