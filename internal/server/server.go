// Package server is the HTTP transport: it decodes AdmissionReview
// requests, hands them to the processor, and re-encodes the response. It
// knows nothing about binding matching or mutation semantics.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	admissionv1 "k8s.io/api/admission/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	k8stypes "k8s.io/apimachinery/pkg/types"

	"github.com/kubewarden/capability-runtime/pkg/capability"
	"github.com/kubewarden/capability-runtime/pkg/processor"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

// Logger is the same minimal surface pkg/processor uses, so internal/log.Logger
// satisfies both without an adapter.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
}

// Server serves the /mutate webhook endpoint and a /healthz liveness probe.
type Server struct {
	httpServer   *http.Server
	proc         *processor.Processor
	config       types.ModuleConfig
	capabilities []*capability.Capability
	logger       Logger
}

// New builds a Server bound to addr. tlsConfig may be nil only for local
// development; the kube-apiserver requires TLS for webhook callbacks.
func New(addr string, tlsConfig *tls.Config, proc *processor.Processor, config types.ModuleConfig, capabilities []*capability.Capability, logger Logger) *Server {
	s := &Server{proc: proc, config: config, capabilities: capabilities, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/mutate", s.handleMutate)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run starts serving and blocks until ctx is canceled, at which point it
// gracefully shuts down within shutdownTimeout. The serve and shutdown
// goroutines are coordinated with an errgroup so a listen error on startup
// and a shutdown error are reported through the same path.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		if s.httpServer.TLSConfig != nil {
			err = s.httpServer.ListenAndServeTLS("", "")
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serving webhook: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down webhook server: %w", err)
		}
		return nil
	})

	return group.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMutate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("reading request body: %s", err), http.StatusBadRequest)
		return
	}

	var review admissionv1.AdmissionReview
	if err := json.Unmarshal(body, &review); err != nil {
		http.Error(w, fmt.Sprintf("decoding admission review: %s", err), http.StatusBadRequest)
		return
	}
	if review.Request == nil {
		http.Error(w, "admission review carries no request", http.StatusBadRequest)
		return
	}

	req, err := toAdmissionRequest(review.Request)
	if err != nil {
		http.Error(w, fmt.Sprintf("decoding admission request: %s", err), http.StatusBadRequest)
		return
	}
	if err := validateAdmissionRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.proc.Process(s.config, s.capabilities, req)
	if err != nil {
		s.logger.Info("processing failed", "uid", req.UID, "error", err.Error())
		http.Error(w, fmt.Sprintf("processing admission request: %s", err), http.StatusInternalServerError)
		return
	}

	out := admissionv1.AdmissionReview{
		TypeMeta: review.TypeMeta,
		Response: toAdmissionResponse(resp),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Info("encoding response failed", "uid", req.UID, "error", err.Error())
	}
}

func toAdmissionRequest(r *admissionv1.AdmissionRequest) (*types.AdmissionRequest, error) {
	object, err := decodeRawExtension(r.Object)
	if err != nil {
		return nil, fmt.Errorf("decoding object: %w", err)
	}
	oldObject, err := decodeRawExtension(r.OldObject)
	if err != nil {
		return nil, fmt.Errorf("decoding oldObject: %w", err)
	}

	return &types.AdmissionRequest{
		UID: string(r.UID),
		Kind: types.GroupVersionKind{
			Group:   r.Kind.Group,
			Version: r.Kind.Version,
			Kind:    r.Kind.Kind,
		},
		Name:      r.Name,
		Namespace: r.Namespace,
		Operation: types.Operation(r.Operation),
		Object:    object,
		OldObject: oldObject,
		UserInfo: types.UserInfo{
			Username: r.UserInfo.Username,
			UID:      r.UserInfo.UID,
			Groups:   r.UserInfo.Groups,
		},
	}, nil
}

// validateAdmissionRequest enforces the transport-level shape every
// admission request must have: a uid, a kind, and — except on DELETE,
// where the object is already gone — an object to inspect.
func validateAdmissionRequest(req *types.AdmissionRequest) error {
	switch {
	case req.UID == "":
		return fmt.Errorf("malformed admission request: missing uid")
	case req.Kind.Kind == "":
		return fmt.Errorf("malformed admission request: missing kind")
	case req.Object == nil && req.Operation != types.Delete:
		return fmt.Errorf("malformed admission request: missing object")
	}
	return nil
}

func decodeRawExtension(raw runtime.RawExtension) (*unstructured.Unstructured, error) {
	if len(raw.Raw) == 0 {
		return nil, nil
	}
	obj := &unstructured.Unstructured{}
	if err := obj.UnmarshalJSON(raw.Raw); err != nil {
		return nil, err
	}
	return obj, nil
}

func toAdmissionResponse(resp *types.AdmissionResponse) *admissionv1.AdmissionResponse {
	out := &admissionv1.AdmissionResponse{
		UID:      k8stypes.UID(resp.UID),
		Allowed:  resp.Allowed,
		Warnings: resp.Warnings,
	}
	if resp.Result != "" {
		out.Result = &metav1.Status{Message: resp.Result}
	}
	if len(resp.Patch) > 0 {
		out.Patch = resp.Patch
		patchType := admissionv1.PatchType(resp.PatchType)
		out.PatchType = &patchType
	}
	return out
}
