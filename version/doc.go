// Package version exposes build version information for the command-line
// tools. Values are injected at build time:
//
//	go build -ldflags "-X github.com/kbukum/chatseg/version.Version=1.2.0 \
//	    -X github.com/kbukum/chatseg/version.GitCommit=$(git rev-parse --short HEAD)"
package version
