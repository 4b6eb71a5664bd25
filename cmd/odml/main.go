// Package main provides the entry point for the odml CLI tool.
package main

import (
	"github.com/g-node/odml-go/cmd/odml/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
