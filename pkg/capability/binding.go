// Package capability implements the fluent registration API a module uses
// to declare capabilities: named, ordered groups of bindings that match
// incoming admission requests and mutate them.
package capability

import (
	"github.com/kubewarden/capability-runtime/pkg/request"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

// Event is the admission operation(s) a binding reacts to.
type Event string

const (
	EventCreate         Event = "Create"
	EventUpdate         Event = "Update"
	EventDelete         Event = "Delete"
	EventCreateOrUpdate Event = "CreateOrUpdate"
)

// MatchCondition is an optional CEL boolean expression attached to a
// binding. All match conditions on a binding must evaluate to true for the
// binding to run; an empty list is always a match, so every scenario that
// predates match conditions keeps its original behavior.
type MatchCondition struct {
	Name       string
	Expression string
}

// Filters groups the conjunctive, optional match criteria of a binding. An
// empty Namespaces list matches any namespace, including cluster-scoped
// requests. WithLabel/WithAnnotation store an empty value to mean "key must
// be present, any value".
type Filters struct {
	Namespaces      []string
	Labels          map[string]string
	Annotations     map[string]string
	MatchConditions []MatchCondition
}

// Callback is user code run against a matched request's wrapper. It may
// fail; the processor is the sole place that catches the error.
type Callback func(wrapper *request.Wrapper) error

// Binding is a single rule: an event, a target kind, a set of filters and
// the callback to invoke once every filter step passes. Bindings are
// immutable after a capability's builder finalizes them with Then.
type Binding struct {
	Event    Event
	Kind     types.GroupVersionKind
	Filters  Filters
	Callback Callback
}
