// Package labeler is a small demo capability: it stamps a fixed label onto
// every Pod created in the cluster. It exists to exercise the full
// registration-to-mutation path end to end, the way a module author's own
// capability file would.
package labeler

import (
	"github.com/kubewarden/capability-runtime/pkg/capability"
	"github.com/kubewarden/capability-runtime/pkg/request"
)

const (
	labelKey   = "app.kubernetes.io/managed-by"
	labelValue = "capability-runtime"
)

// New builds the "labeler" capability: on every Pod create, it stamps
// labelKey=labelValue if the label isn't already present.
func New() *capability.Capability {
	c := capability.New("labeler")

	c.When(capability.Kind("Pod")).IsCreated().Then(addManagedByLabel)

	return c
}

func addManagedByLabel(w *request.Wrapper) error {
	labels := w.Labels()
	if _, ok := labels[labelKey]; ok {
		return nil
	}
	w.SetLabel(labelKey, labelValue)
	return nil
}
