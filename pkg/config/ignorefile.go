package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/kubewarden/capability-runtime/pkg/types"
)

// loadIgnoreFile reads and decodes a YAML always-ignore document. An empty
// path is not an error: it means the module declares no file-based
// always-ignore rules, only (possibly) the --ignore-namespace flags.
func loadIgnoreFile(path string) (types.AlwaysIgnore, error) {
	var ignore types.AlwaysIgnore
	if path == "" {
		return ignore, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ignore, fmt.Errorf("reading ignore file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &ignore); err != nil {
		return ignore, fmt.Errorf("parsing ignore file %s: %w", path, err)
	}
	return ignore, nil
}
