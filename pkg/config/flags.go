// Package config assembles a types.ModuleConfig from CLI flags and an
// optional YAML always-ignore file.
package config

import (
	"github.com/spf13/cobra"
)

// BindFlags registers the module configuration flags on cmd, the way
// audit-scanner's root command registers its own scan flags in init().
func BindFlags(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "module identifier, stamped into per-binding progress annotations (required)")
	cmd.Flags().String("description", "", "human-readable module description")
	cmd.Flags().Bool("reject-on-error", false, "reject the admission request when a binding callback fails, instead of recording a warning")
	cmd.Flags().String("ignore-file", "", "path to a YAML file describing the module-wide always-ignore rules")
	cmd.Flags().StringSlice("ignore-namespace", nil, "namespace to always skip, regardless of binding filters. This flag can be repeated")
	cmd.Flags().String("bundle-path", "", "path to the gzip-compressed capability bundle to verify at startup")
	cmd.Flags().String("bundle-digest", "", "expected SHA-256 hex digest of the decompressed bundle contents")
}
