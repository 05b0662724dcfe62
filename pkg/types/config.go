package types

// LabelMatcher is a conjunctive set of key/value pairs that must all be
// present (with matching values, where given) on an object's labels for
// the matcher to apply. An empty value means "any value, key must be
// present" — the same semantics as a binding's WithLabel.
type LabelMatcher map[string]string

// AlwaysIgnore is the module-wide, binding-independent opt-out: any
// request matching one of these dimensions skips every capability and
// binding, regardless of what they declare. This precedence is
// intentional — it gives cluster operators a hard override capabilities
// cannot defeat.
type AlwaysIgnore struct {
	Kinds      []GroupVersionKind `json:"kinds,omitempty"`
	Namespaces []string           `json:"namespaces,omitempty"`
	Labels     []LabelMatcher     `json:"labels,omitempty"`
}

// ModuleConfig is process-wide configuration, read once at startup and
// passed by value into the processor on every request. It is never
// mutated during processing.
type ModuleConfig struct {
	ID            string
	Description   string
	AlwaysIgnore  AlwaysIgnore
	RejectOnError bool
	// BundleDigest is the SHA-256 hex content hash of the module bundle
	// this process was started with, verified at startup by
	// internal/bundle.
	BundleDigest string
}
