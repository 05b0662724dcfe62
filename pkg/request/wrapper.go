// Package request provides the per-admission-request wrapper that binding
// callbacks mutate. A Wrapper is owned exclusively by one processing
// invocation and is discarded after the response is emitted.
package request

import (
	"github.com/kubewarden/capability-runtime/pkg/types"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Wrapper exposes the immutable original inbound object alongside a
// mutable working copy that callbacks edit. The processor diffs Raw
// against the original object to produce the JSON Patch.
type Wrapper struct {
	request  *types.AdmissionRequest
	original *unstructured.Unstructured
	raw      *unstructured.Unstructured
}

// New builds a Wrapper from an admission request. For DELETE requests,
// where Object is absent, Raw starts out empty: there is nothing for a
// mutating callback to sensibly edit, but the field is never nil so
// metadata accessors stay safe to call.
func New(req *types.AdmissionRequest) *Wrapper {
	original := req.Object
	if original == nil {
		original = &unstructured.Unstructured{Object: map[string]interface{}{}}
	}
	return &Wrapper{
		request:  req,
		original: original,
		raw:      original.DeepCopy(),
	}
}

// Request returns the admission request this wrapper was built from, for
// callbacks to read (kind, operation, user info, oldObject). It is the
// processor's own request, not a copy.
func (w *Wrapper) Request() *types.AdmissionRequest {
	return w.request
}

// Original returns the untouched inbound object, prior to any callback
// mutation. Used by the processor as the diff source.
func (w *Wrapper) Original() *unstructured.Unstructured {
	return w.original
}

// Raw is the mutable working copy. Callbacks read and write through it
// freely; the processor never inspects it until every matched binding has
// run.
func (w *Wrapper) Raw() *unstructured.Unstructured {
	return w.raw
}

// Labels returns a copy of the working copy's metadata labels, or an empty
// map when there are none, so it is never nil. Changes to the returned map
// do not reach the working copy; use SetLabel for that.
func (w *Wrapper) Labels() map[string]string {
	labels := w.raw.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}
	return labels
}

// SetLabel writes a single label on the working copy, creating the
// metadata.labels map on first use.
func (w *Wrapper) SetLabel(key, value string) {
	labels := w.Labels()
	labels[key] = value
	w.raw.SetLabels(labels)
}

// Annotations returns a copy of the working copy's metadata annotations, or
// an empty map when there are none, so it is never nil. Changes to the
// returned map do not reach the working copy; use SetAnnotation for that.
func (w *Wrapper) Annotations() map[string]string {
	annotations := w.raw.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	return annotations
}

// SetAnnotation writes a single annotation on the working copy, creating
// the metadata.annotations map on first use.
func (w *Wrapper) SetAnnotation(key, value string) {
	annotations := w.Annotations()
	annotations[key] = value
	w.raw.SetAnnotations(annotations)
}
