package main

import (
	"fmt"
	"os"

	"github.com/kubewarden/capability-runtime/internal/examples/labeler"
	"github.com/kubewarden/capability-runtime/internal/webhookcmd"
	"github.com/kubewarden/capability-runtime/pkg/capability"
)

func capabilities() []*capability.Capability {
	return []*capability.Capability{
		labeler.New(),
	}
}

func main() {
	rootCmd := webhookcmd.NewRootCommand(capabilities)
	if err := webhookcmd.Execute(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error on cmd.Execute(): %s\n", err.Error())
		os.Exit(1)
	}
}
