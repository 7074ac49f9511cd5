package main

import (
	"context"
	"os"

	"github.com/reconquest/pkg/log"
	"github.com/urfave/cli/v3"

	"github.com/ueaner/d2md/util"
)

const (
	usage       = "A tool for rendering d2 diagrams embedded in markdown files."
	description = `d2md scans markdown documents for fenced d2 code blocks, renders every ` +
		`block with the d2 executable or the embedded engine, and replaces it with inline ` +
		`SVG markup or a link to the rendered image. Rendered diagrams are stored next to ` +
		`the document and reused as long as the block does not change.`
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:                  "d2md",
		Usage:                 usage,
		Description:           description,
		Version:               version,
		Flags:                 util.Flags,
		Before:                util.CheckMutuallyExclusiveOutputFlags,
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Action:                util.RunD2MD,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
