// Package main provides the CLI entrypoint for record-copier.
//
// record-copier loads records from a YAML fixture and clones one of them,
// together with its relationship graph:
//   - copy: clone a record and print the clone as YAML, or a diff against the source
package main

import (
	"fmt"
	"os"

	"record-copier/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
