package filter

import (
	"github.com/kubewarden/capability-runtime/pkg/types"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Compiled is a derived representation of a ModuleConfig's AlwaysIgnore.
// Namespace lookups are O(1) set lookups; ignored kinds and label matchers
// are scanned linearly.
type Compiled struct {
	kinds      []types.GroupVersionKind // kept as a slice: GVK matching is wildcard-aware, not a plain set lookup
	namespaces sets.Set[string]
	labels     []types.LabelMatcher
}

// Compile derives a Compiled ignore list from raw configuration.
// Processor.Process calls it once per request, so the result always
// reflects the ModuleConfig that request is processed with.
func Compile(ignore types.AlwaysIgnore) *Compiled {
	return &Compiled{
		kinds:      ignore.Kinds,
		namespaces: sets.New(ignore.Namespaces...),
		labels:     ignore.Labels,
	}
}

func (c *Compiled) matchesKind(kind types.GroupVersionKind) bool {
	for _, ignored := range c.kinds {
		if kind.Matches(ignored) {
			return true
		}
	}
	return false
}

func (c *Compiled) matchesNamespace(namespace string) bool {
	if namespace == "" {
		return false
	}
	return c.namespaces.Has(namespace)
}

func (c *Compiled) matchesLabels(objectLabels map[string]string) bool {
	for _, matcher := range c.labels {
		if labelsSatisfy(objectLabels, matcher) {
			return true
		}
	}
	return false
}
