package commands

import (
	"github.com/urfave/cli/v2"

	hcloudopenapi "github.com/MaximilianKoestler/hcloud-openapi"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/cliutil"
)

// Version returns the version command.
func Version() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			cliutil.Writef(c.App.Writer, "hcloud-openapi %s\n%s\n", hcloudopenapi.Version(), hcloudopenapi.BuildInfo())
			return nil
		},
	}
}
