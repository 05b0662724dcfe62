package webhookcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewarden/capability-runtime/pkg/capability"
)

func TestNewRootCommandRegistersExpectedFlags(t *testing.T) {
	cmd := NewRootCommand(func() []*capability.Capability { return nil })

	for _, name := range []string{"addr", "loglevel", "otlp-endpoint", "id", "description", "reject-on-error", "ignore-file", "ignore-namespace", "bundle-path", "bundle-digest"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %q to be registered", name)
	}
}

func TestNewRootCommandRequiresModuleID(t *testing.T) {
	cmd := NewRootCommand(func() []*capability.Capability { return nil })
	cmd.SetArgs([]string{"--addr", ":0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}
