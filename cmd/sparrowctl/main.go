// Command sparrowctl is a small operator CLI around the in-memory
// database: it loads a field schema and a corpus of NDJSON documents,
// runs one query against the result, and prints ranked hits. It is
// the supplemented, in-module stand-in for the original project's
// bare "load a file, search, print" demo binary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sparrowctl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sparrowctl",
		Short: "Operate an in-memory sparrowdb index from the command line",
	}

	root.AddCommand(newLoadCmd())
	return root
}
