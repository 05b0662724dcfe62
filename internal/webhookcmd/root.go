// Package webhookcmd builds the cobra CLI that wires configuration, bundle
// verification, logging, telemetry and the HTTP transport together into a
// running admission webhook process.
package webhookcmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kubewarden/capability-runtime/internal/log"
	"github.com/kubewarden/capability-runtime/internal/server"
	"github.com/kubewarden/capability-runtime/internal/telemetry"
	"github.com/kubewarden/capability-runtime/pkg/capability"
	"github.com/kubewarden/capability-runtime/pkg/config"
	"github.com/kubewarden/capability-runtime/pkg/processor"
)

const defaultShutdownTimeout = 10 * time.Second

// CapabilitiesFunc returns the module's registered capabilities. It is
// supplied by the module author's own main package, the way a Pepr-style
// module assembles its own binding tree before handing it to the runtime.
type CapabilitiesFunc func() []*capability.Capability

// NewRootCommand builds the "webhook" root command. capabilities is called
// once, after flags are parsed, so a module can read its own configuration
// (e.g. which namespace to watch) before constructing its binding tree.
//
//nolint:gocognit,funlen // CLI entrypoint; expected to be a single long RunE.
func NewRootCommand(capabilities CapabilitiesFunc) *cobra.Command {
	var level log.Level
	var addr string
	var otlpEndpoint string

	rootCmd := &cobra.Command{
		Use:   "webhook",
		Short: "Runs a Kubernetes mutating admission webhook for a capability module",
		Long: `Serves a mutating admission webhook that evaluates a module's registered
capabilities and bindings against incoming AdmissionReview requests,
computing and returning the resulting JSON Patch.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			runID := uuid.New().String()
			logger := log.New(level.ZeroLogLevel(), runID)

			moduleConfig, err := config.Load(cmd)
			if err != nil {
				return fmt.Errorf("loading module config: %w", err)
			}
			if err := config.VerifyBundle(cmd, &moduleConfig); err != nil {
				return fmt.Errorf("verifying bundle: %w", err)
			}

			ctx := cmd.Context()

			var recorder processor.Recorder
			if otlpEndpoint != "" {
				rec, err := telemetry.New(ctx, otlpEndpoint)
				if err != nil {
					return fmt.Errorf("starting telemetry: %w", err)
				}
				defer rec.Shutdown(context.Background()) //nolint:errcheck
				recorder = rec
			}

			proc := processor.New(
				processor.WithLogger(logger),
				processorRecorderOption(recorder),
			)

			logger.Info("starting webhook", "run_id", runID, "module_id", moduleConfig.ID, "addr", addr)

			srv := server.New(addr, nil, proc, moduleConfig, capabilities(), logger)
			return srv.Run(ctx, defaultShutdownTimeout)
		},
	}

	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8443", "address the webhook server listens on")
	rootCmd.Flags().VarP(&level, "loglevel", "l", fmt.Sprintf("level of the logs. Supported values are: %v", log.SupportedValues))
	rootCmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/gRPC collector endpoint for binding metrics. Metrics are disabled when empty")
	config.BindFlags(rootCmd)

	return rootCmd
}

// processorRecorderOption is a small indirection so a nil Recorder (no
// --otlp-endpoint given) falls back to the processor's own no-op default
// instead of wrapping a nil interface value.
func processorRecorderOption(recorder processor.Recorder) processor.Option {
	if recorder == nil {
		return func(*processor.Processor) {}
	}
	return processor.WithRecorder(recorder)
}

// Execute runs rootCmd with cobra's own error and usage printing silenced
// and returns any failure to the caller, which reports it the way
// audit-scanner's main fails loudly on cmd.Execute() errors. The
// command's context is canceled on SIGINT/SIGTERM so srv.Run's shutdown
// goroutine actually fires and drains in-flight requests instead of the
// process being hard-killed.
func Execute(rootCmd *cobra.Command) error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
