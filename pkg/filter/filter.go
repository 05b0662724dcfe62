// Package filter decides whether a single binding must run for a single
// admission request. ShouldSkip is the sole entry point; every step
// returns true the moment it finds a reason to skip, in the order laid
// out below, so the decision is cheap to reason about and to short
// circuit.
package filter

import (
	"github.com/kubewarden/capability-runtime/pkg/capability"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

// ShouldSkip reports whether binding must NOT run for request, given the
// module's compiled always-ignore configuration.
func ShouldSkip(ignore *Compiled, binding capability.Binding, req *types.AdmissionRequest) bool {
	if eventMismatch(binding.Event, req.Operation) {
		return true
	}
	if ignore.matchesKind(req.Kind) {
		return true
	}
	if ignore.matchesNamespace(req.Namespace) {
		return true
	}
	if ignore.matchesLabels(req.Labels()) {
		return true
	}
	if !req.Kind.Matches(binding.Kind) {
		return true
	}
	if NamespaceMismatch(binding.Filters.Namespaces, req.Namespace) {
		return true
	}
	if labelsMismatch(req.Labels(), binding.Filters.Labels) {
		return true
	}
	if labelsMismatch(req.Annotations(), binding.Filters.Annotations) {
		return true
	}
	if matchConditionsMismatch(binding.Filters.MatchConditions, req) {
		return true
	}
	return false
}

// eventMismatch implements step 1: CreateOrUpdate matches everything
// except DELETE and CONNECT; the other three events match their one
// named operation.
func eventMismatch(event capability.Event, operation types.Operation) bool {
	switch event {
	case capability.EventCreate:
		return operation != types.Create
	case capability.EventUpdate:
		return operation != types.Update
	case capability.EventDelete:
		return operation != types.Delete
	case capability.EventCreateOrUpdate:
		return operation == types.Delete || operation == types.Connect
	default:
		return true
	}
}

// NamespaceMismatch implements step 6, and is reused by the processor for
// a capability's own namespace restriction (spec §4.4 step 3a shares the
// same "empty means any namespace" semantics). An empty filter list
// matches any namespace, including cluster-scoped (empty-string) requests.
func NamespaceMismatch(namespaces []string, requestNamespace string) bool {
	if len(namespaces) == 0 {
		return false
	}
	for _, ns := range namespaces {
		if ns == requestNamespace {
			return false
		}
	}
	return true
}

// labelsMismatch implements steps 7/8, shared between labels and
// annotations: every key in the matcher must be present in the object's
// map, and — when the matcher's value is non-empty — must equal it.
func labelsMismatch(objectValues map[string]string, matcher map[string]string) bool {
	for key, want := range matcher {
		got, ok := objectValues[key]
		if !ok {
			return true
		}
		if want != "" && got != want {
			return true
		}
	}
	return false
}

// labelsSatisfy is the non-negated form used by the global ignore list,
// where ALL of a single matcher's pairs must be present for that one
// matcher to apply (the ignore list itself is a disjunction of matchers).
func labelsSatisfy(objectLabels map[string]string, matcher types.LabelMatcher) bool {
	if len(matcher) == 0 {
		return false
	}
	return !labelsMismatch(objectLabels, matcher)
}

// matchConditionsMismatch implements the supplemental step 9: every CEL
// expression must evaluate to true for the binding to run. A compile or
// evaluation error counts as a non-match — it can never fail the request
// the way a callback error can.
func matchConditionsMismatch(conditions []capability.MatchCondition, req *types.AdmissionRequest) bool {
	if len(conditions) == 0 {
		return false
	}
	for _, condition := range conditions {
		ok, err := evaluate(condition.Expression, req)
		if err != nil || !ok {
			return true
		}
	}
	return false
}
