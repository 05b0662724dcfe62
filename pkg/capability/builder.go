package capability

import (
	"maps"
	"slices"

	"github.com/kubewarden/capability-runtime/pkg/types"
)

// BindingAll is the state right after When(kind): the caller must pick an
// event before any filter can be attached.
type BindingAll struct {
	capability *Capability
	kind       types.GroupVersionKind
}

// IsCreated matches CREATE requests only.
func (b *BindingAll) IsCreated() *BindingFilter {
	return b.withEvent(EventCreate)
}

// IsUpdated matches UPDATE requests only.
func (b *BindingAll) IsUpdated() *BindingFilter {
	return b.withEvent(EventUpdate)
}

// IsDeleted matches DELETE requests only.
func (b *BindingAll) IsDeleted() *BindingFilter {
	return b.withEvent(EventDelete)
}

// IsCreatedOrUpdated matches both CREATE and UPDATE requests.
func (b *BindingAll) IsCreatedOrUpdated() *BindingFilter {
	return b.withEvent(EventCreateOrUpdate)
}

func (b *BindingAll) withEvent(event Event) *BindingFilter {
	return &BindingFilter{
		capability: b.capability,
		kind:       b.kind,
		event:      event,
	}
}

// BindingFilter is the state after an event has been picked: namespace,
// label, annotation and match-condition filters may be attached in any
// order and any number of times before Then finalizes the binding. Label,
// annotation and match-condition filters combine conjunctively; repeated
// namespace calls widen the set of namespaces the binding accepts.
type BindingFilter struct {
	capability *Capability
	kind       types.GroupVersionKind
	event      Event
	filters    Filters
}

// InNamespace restricts this binding to a single namespace, in addition to
// any namespace already added via InNamespace/InOneOfNamespaces.
func (b *BindingFilter) InNamespace(namespace string) *BindingFilter {
	b.filters.Namespaces = append(b.filters.Namespaces, namespace)
	return b
}

// InOneOfNamespaces restricts this binding to one of the given namespaces.
func (b *BindingFilter) InOneOfNamespaces(namespaces ...string) *BindingFilter {
	b.filters.Namespaces = append(b.filters.Namespaces, namespaces...)
	return b
}

// WithLabel requires the object to carry label key. If value is omitted,
// any value (including empty) matches as long as the key is present; if
// given, exactly one value is accepted. Multiple calls are conjunctive.
func (b *BindingFilter) WithLabel(key string, value ...string) *BindingFilter {
	if b.filters.Labels == nil {
		b.filters.Labels = map[string]string{}
	}
	b.filters.Labels[key] = firstOrEmpty(value)
	return b
}

// WithAnnotation requires the object to carry annotation key, with the
// same value semantics as WithLabel.
func (b *BindingFilter) WithAnnotation(key string, value ...string) *BindingFilter {
	if b.filters.Annotations == nil {
		b.filters.Annotations = map[string]string{}
	}
	b.filters.Annotations[key] = firstOrEmpty(value)
	return b
}

// WithMatchCondition attaches a CEL boolean expression that must evaluate
// to true, in addition to every other filter, for this binding to run.
// name is used only to identify the condition in compilation errors.
func (b *BindingFilter) WithMatchCondition(name, expression string) *BindingFilter {
	b.filters.MatchConditions = append(b.filters.MatchConditions, MatchCondition{
		Name:       name,
		Expression: expression,
	})
	return b
}

// Then finalizes the binding with callback and appends it to the owning
// capability, in registration order. The returned BindToAction allows a
// further Then call to register an additional callback sharing the exact
// same filter as a separate, sibling binding.
func (b *BindingFilter) Then(callback Callback) *BindToAction {
	binding := Binding{
		Event: b.event,
		Kind:  b.kind,
		Filters: Filters{
			Namespaces:      slices.Clone(b.filters.Namespaces),
			Labels:          maps.Clone(b.filters.Labels),
			Annotations:     maps.Clone(b.filters.Annotations),
			MatchConditions: slices.Clone(b.filters.MatchConditions),
		},
		Callback: callback,
	}
	b.capability.Bindings = append(b.capability.Bindings, binding)
	return &BindToAction{filter: b}
}

// BindToAction is the state after Then: the binding is already frozen and
// appended to the capability. Calling Then again registers a sibling
// binding with the identical event/kind/filters.
type BindToAction struct {
	filter *BindingFilter
}

// Then registers another callback sharing this chain's event, kind and
// filters as a new, independent binding.
func (b *BindToAction) Then(callback Callback) *BindToAction {
	return b.filter.Then(callback)
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
