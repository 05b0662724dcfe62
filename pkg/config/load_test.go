package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd)
	return cmd
}

func TestLoadRequiresID(t *testing.T) {
	cmd := testCmd(t)
	_, err := Load(cmd)
	assert.Error(t, err)
}

func TestLoadAssemblesModuleConfig(t *testing.T) {
	cmd := testCmd(t)
	require.NoError(t, cmd.Flags().Set("id", "my-module"))
	require.NoError(t, cmd.Flags().Set("description", "does things"))
	require.NoError(t, cmd.Flags().Set("reject-on-error", "true"))
	require.NoError(t, cmd.Flags().Set("ignore-namespace", "kube-system"))

	config, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "my-module", config.ID)
	assert.Equal(t, "does things", config.Description)
	assert.True(t, config.RejectOnError)
	assert.Contains(t, config.AlwaysIgnore.Namespaces, "kube-system")
}

func TestLoadMergesIgnoreFileAndFlagNamespaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
namespaces:
  - kube-system
kinds:
  - kind: Event
`), 0o600))

	cmd := testCmd(t)
	require.NoError(t, cmd.Flags().Set("id", "my-module"))
	require.NoError(t, cmd.Flags().Set("ignore-file", path))
	require.NoError(t, cmd.Flags().Set("ignore-namespace", "cert-manager"))

	config, err := Load(cmd)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kube-system", "cert-manager"}, config.AlwaysIgnore.Namespaces)
	require.Len(t, config.AlwaysIgnore.Kinds, 1)
	assert.Equal(t, "Event", config.AlwaysIgnore.Kinds[0].Kind)
}

func TestVerifyBundleSkippedWhenPathEmpty(t *testing.T) {
	cmd := testCmd(t)
	require.NoError(t, cmd.Flags().Set("id", "my-module"))
	config, err := Load(cmd)
	require.NoError(t, err)

	require.NoError(t, VerifyBundle(cmd, &config))
	assert.Empty(t, config.BundleDigest)
}
