// Command chatfmt renders a conversation file in a model family's chat
// format and prints the flat text with its segmentation as JSON.
//
//	chatfmt --family llama3 conversation.yaml
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
