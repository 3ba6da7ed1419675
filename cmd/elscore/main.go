// Command elscore scores entity-linking predictions in a JSONL file and
// prints f1, precision and recall.
//
//	elscore predictions.jsonl
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/chatseg/cmd/internal/cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
