package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	hcloudopenapi "github.com/MaximilianKoestler/hcloud-openapi"
	"github.com/MaximilianKoestler/hcloud-openapi/cmd/hcloud-openapi/commands"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "hcloud-openapi",
		Usage:                  "Canonicalize and deduplicate API schema components",
		Version:                hcloudopenapi.Version(),
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags:                  commands.GlobalFlags(),
		Commands: []*cli.Command{
			commands.Dedupe(),
			commands.Normalize(),
			commands.Serve(),
			commands.Version(),
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
