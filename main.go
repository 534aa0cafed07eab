// containr is an OCI-compliant container runtime focused on the sandbox
// lifecycle: create, start, state, kill, and delete a single Linux
// container from an on-disk bundle.
package main

import (
	"fmt"
	"os"

	"containr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "containr:", err)
		os.Exit(1)
	}
}
