package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubewarden/capability-runtime/internal/bundle"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

// Load assembles a ModuleConfig from cmd's bound flags and, if given, an
// --ignore-file YAML document. Every flag read is error-checked
// individually rather than relying on zero-value defaults, mirroring how
// audit-scanner's root command reads its own flags.
func Load(cmd *cobra.Command) (types.ModuleConfig, error) {
	var config types.ModuleConfig

	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return config, err
	}
	if id == "" {
		return config, fmt.Errorf("--id is required")
	}
	config.ID = id

	description, err := cmd.Flags().GetString("description")
	if err != nil {
		return config, err
	}
	config.Description = description

	rejectOnError, err := cmd.Flags().GetBool("reject-on-error")
	if err != nil {
		return config, err
	}
	config.RejectOnError = rejectOnError

	ignoreFile, err := cmd.Flags().GetString("ignore-file")
	if err != nil {
		return config, err
	}
	ignore, err := loadIgnoreFile(ignoreFile)
	if err != nil {
		return config, err
	}

	ignoreNamespaces, err := cmd.Flags().GetStringSlice("ignore-namespace")
	if err != nil {
		return config, err
	}
	ignore.Namespaces = append(ignore.Namespaces, ignoreNamespaces...)
	config.AlwaysIgnore = ignore

	return config, nil
}

// VerifyBundle validates the bundle named by cmd's --bundle-path /
// --bundle-digest flags, if a path was given, and records the digest it
// computed onto config. A module started without --bundle-path skips
// verification entirely: not every deployment ships a separate bundle.
func VerifyBundle(cmd *cobra.Command, config *types.ModuleConfig) error {
	path, err := cmd.Flags().GetString("bundle-path")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	expectedDigest, err := cmd.Flags().GetString("bundle-digest")
	if err != nil {
		return err
	}

	digest, err := bundle.Verify(path, expectedDigest)
	if err != nil {
		return fmt.Errorf("verifying bundle: %w", err)
	}
	config.BundleDigest = digest
	return nil
}
