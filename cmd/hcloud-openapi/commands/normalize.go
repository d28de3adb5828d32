package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/cliutil"
)

// Normalize returns the normalize command.
func Normalize() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Apply the normalization rewrites without extracting components",
		ArgsUsage: " ",
		Description: `Rewrites the input schemas the same way the first pass of dedupe does and
writes the result. Use --fix to restrict the rewrites.

Supported Fixes:
  nullable-deprecated  make the deprecated marker nullable
  empty-array-items    give empty array items an explicit object shape
  sorted-enum          sort enum values
  narrowed-number      narrow numbers outside the float allow-list to integers
  wide-counter         give traffic counters format int64
  labels-map           rewrite labels objects into string maps

Examples:
  hcloud-openapi normalize -i 'schemas/**/*.json'
  hcloud-openapi normalize -i servers.json --fix sorted-enum -o sorted.json`,
		Flags: []cli.Flag{
			inputFlag,
			outputFlag,
			formatFlag,
			quietFlag,
			&cli.StringSliceFlag{
				Name:  "fix",
				Usage: "enable only this fix type (repeatable)",
			},
		},
		Action: runNormalize,
	}
}

func runNormalize(c *cli.Context) error {
	format := c.String("format")
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	enabled, err := fixer.ParseFixTypes(c.StringSlice("fix"))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c)

	parsed, err := parseInputs(c, cfg, logger)
	if err != nil {
		return err
	}

	opts := []fixer.Option{
		fixer.WithParsed(*parsed),
		fixer.WithPolicy(cfg.Policy()),
		fixer.WithLogger(logger),
	}
	if len(enabled) > 0 {
		opts = append(opts, fixer.WithEnabledFixes(enabled...))
	}
	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return err
	}

	if err := writeDocument(c.App.Writer, result.Registry, outputPath(c, cfg), format, parsed.SourcePaths); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !c.Bool("quiet") {
		cliutil.Writef(c.App.ErrWriter, "Applied %s\n", cliutil.Count(result.FixCount, "fix"))
		for _, f := range result.Fixes {
			cliutil.Writef(c.App.ErrWriter, "  %s: %s (%s)\n", f.Type, f.Description, f.Path)
		}
	}
	return nil
}
