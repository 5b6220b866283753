// Package main is the entry point for the prismops CLI.
//
// prismops automates operator tasks against a Nutanix Prism Central v4 API:
// deploying AHV virtual machines from listed inventory and bulk-updating
// category associations on existing VMs from an Excel workbook.
//
// Commands: deploy, update-categories, version.
//
// For detailed usage information, run:
//
//	prismops --help
package main

import (
	"fmt"
	"os"

	"github.com/hardev/prismops/cmd/prismops/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
