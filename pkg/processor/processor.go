// Package processor implements the admission processing pipeline:
// dispatching matched bindings in order, computing the resulting JSON
// Patch, and applying the module's failure policy.
package processor

import (
	"fmt"
	"time"

	"github.com/kubewarden/capability-runtime/pkg/capability"
	"github.com/kubewarden/capability-runtime/pkg/filter"
	"github.com/kubewarden/capability-runtime/pkg/request"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

const (
	outcomeSkipped   = "skipped"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
	outcomeWarning   = "warning"
)

// Processor is a pure function of its arguments: it touches no mutable
// state beyond the single request wrapper it builds for each call, so a
// *Processor may be shared across concurrently-processed requests.
type Processor struct {
	logger   Logger
	recorder Recorder
}

// New builds a Processor, applying any options in order.
func New(opts ...Option) *Processor {
	p := &Processor{logger: noopLogger{}, recorder: noopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs every matched binding of every capability, in registration
// order, against req, and returns the resulting admission response. It
// never mutates config or capabilities.
func (p *Processor) Process(config types.ModuleConfig, capabilities []*capability.Capability, req *types.AdmissionRequest) (*types.AdmissionResponse, error) {
	wrapper := request.New(req)
	ignore := filter.Compile(config.AlwaysIgnore)

	response := &types.AdmissionResponse{
		UID:       req.UID,
		PatchType: types.JSONPatchType,
	}

	for _, c := range capabilities {
		if filter.NamespaceMismatch(c.Namespaces, req.Namespace) {
			continue
		}

		for _, binding := range c.Bindings {
			if filter.ShouldSkip(ignore, binding, req) {
				p.recorder.RecordBinding(c.Name, outcomeSkipped, 0)
				continue
			}

			if rejected := p.run(config, c, binding, wrapper, response); rejected {
				p.logger.Info("admission rejected",
					"uid", req.UID, "capability", c.Name, "reason", response.Result)
				return response, nil
			}
		}
	}

	response.Allowed = true
	patch, err := diff(wrapper.Original(), wrapper.Raw())
	if err != nil {
		return &types.AdmissionResponse{
			UID:     req.UID,
			Allowed: false,
			Result:  "patch computation failed",
		}, nil
	}
	response.Patch = patch

	p.logger.Info("admission allowed",
		"uid", req.UID, "operation", req.Operation, "kind", req.Kind.String(),
		"warnings", len(response.Warnings))
	return response, nil
}

// run invokes a single matched binding's callback and updates response in
// place. It returns true if the module's rejectOnError policy fired and
// Process must return immediately.
func (p *Processor) run(config types.ModuleConfig, c *capability.Capability, binding capability.Binding, wrapper *request.Wrapper, response *types.AdmissionResponse) bool {
	annotationKey := stampKey(config.ID, c.Name)
	wrapper.SetAnnotation(annotationKey, "started")

	start := time.Now()
	err := binding.Callback(wrapper)
	duration := time.Since(start)

	if err == nil {
		wrapper.SetAnnotation(annotationKey, "succeeded")
		p.recorder.RecordBinding(c.Name, outcomeSucceeded, duration)
		p.logger.Debug("binding succeeded", "capability", c.Name)
		return false
	}

	response.Warnings = append(response.Warnings, fmt.Sprintf("Action failed: %s", err))
	p.recorder.RecordBinding(c.Name, outcomeFailed, duration)

	if config.RejectOnError {
		response.Allowed = false
		response.Result = "module configured to reject on error"
		return true
	}

	wrapper.SetAnnotation(annotationKey, outcomeWarning)
	p.logger.Debug("binding warned", "capability", c.Name, "error", err)
	return false
}

// stampKey builds the per-capability progress annotation key. Writing
// through even on a no-op callback is intentional: it is the only
// observable record that a binding ran at all.
func stampKey(moduleID, capabilityName string) string {
	return fmt.Sprintf("pepr.dev/%s/%s", moduleID, capabilityName)
}
