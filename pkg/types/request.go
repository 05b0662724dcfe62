package types

import "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

// Operation is the admission operation carried by an AdmissionRequest.
type Operation string

const (
	Create  Operation = "CREATE"
	Update  Operation = "UPDATE"
	Delete  Operation = "DELETE"
	Connect Operation = "CONNECT"
)

// UserInfo is the subset of authentication info a binding callback may
// want to inspect. It is never mutated by the pipeline.
type UserInfo struct {
	Username string
	UID      string
	Groups   []string
}

// AdmissionRequest is the decoded inbound admission payload. It is
// immutable once received; the processor never writes through it, only
// through the RequestWrapper it builds from it.
type AdmissionRequest struct {
	UID       string
	Kind      GroupVersionKind
	Name      string
	Namespace string
	Operation Operation
	// Object is absent for DELETE.
	Object *unstructured.Unstructured
	// OldObject is present on UPDATE and DELETE.
	OldObject *unstructured.Unstructured
	UserInfo  UserInfo
}

// inspected returns the object a filter or CEL match condition should read
// labels/annotations/content from: the incoming object, or — for DELETE,
// where Object is absent — the prior state.
func (r *AdmissionRequest) inspected() *unstructured.Unstructured {
	if r.Object != nil {
		return r.Object
	}
	return r.OldObject
}

// Labels returns the metadata labels of the object a filter should
// evaluate, or nil if neither Object nor OldObject is set.
func (r *AdmissionRequest) Labels() map[string]string {
	obj := r.inspected()
	if obj == nil {
		return nil
	}
	return obj.GetLabels()
}

// Annotations returns the metadata annotations of the object a filter
// should evaluate, or nil if neither Object nor OldObject is set.
func (r *AdmissionRequest) Annotations() map[string]string {
	obj := r.inspected()
	if obj == nil {
		return nil
	}
	return obj.GetAnnotations()
}
