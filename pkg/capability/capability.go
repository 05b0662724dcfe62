package capability

import "github.com/kubewarden/capability-runtime/pkg/types"

// Capability is a named, ordered group of bindings sharing an optional
// namespace restriction. Bindings retain registration order; the
// processor walks capabilities, then bindings, in the order they were
// registered.
type Capability struct {
	Name       string
	Namespaces []string
	Bindings   []Binding
}

// New creates an empty capability. Use When to start registering bindings
// on it.
func New(name string) *Capability {
	return &Capability{Name: name}
}

// InNamespace restricts every binding of this capability to the given
// namespace, in addition to InOneOfNamespaces.
func (c *Capability) InNamespace(namespace string) *Capability {
	c.Namespaces = append(c.Namespaces, namespace)
	return c
}

// InOneOfNamespaces restricts every binding of this capability to one of
// the given namespaces.
func (c *Capability) InOneOfNamespaces(namespaces ...string) *Capability {
	c.Namespaces = append(c.Namespaces, namespaces...)
	return c
}

// When starts a new binding chain targeting the given resource kind. Group
// and Version may be left empty on kind to match any group/version of that
// Kind.
func (c *Capability) When(kind types.GroupVersionKind) *BindingAll {
	return &BindingAll{capability: c, kind: kind}
}

// Kind builds a GroupVersionKind that matches any group/version, for the
// common case of a When call that only cares about the resource kind, e.g.
// capability.When(capability.Kind("Pod")).
func Kind(kind string) types.GroupVersionKind {
	return types.GroupVersionKind{Kind: kind}
}
