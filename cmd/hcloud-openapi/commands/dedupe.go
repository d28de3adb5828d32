package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/urfave/cli/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/deduplicator"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/cliutil"
	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
)

// Dedupe returns the dedupe command.
func Dedupe() *cli.Command {
	return &cli.Command{
		Name:      "dedupe",
		Usage:     "Extract shared object shapes into named components",
		ArgsUsage: " ",
		Description: `Loads the input schemas, normalizes them, and replaces every object shape
that occurs more than once with a reference to a shared component.

In pinned mode (the default) component names come from the naming file.
With --fresh every name is derived from the locations a shape occurs at.
The naming file is rewritten only after the whole run succeeded.

Examples:
  hcloud-openapi dedupe -i 'schemas/**/*.json' -o openapi_components.json
  hcloud-openapi dedupe --fresh -i 'schemas/**/*.json' -t resources/schema_types.json
  hcloud-openapi -c policy.toml dedupe -q -f yaml`,
		Flags: []cli.Flag{
			inputFlag,
			outputFlag,
			formatFlag,
			quietFlag,
			&cli.StringFlag{
				Name:    "types",
				Aliases: []string{"t"},
				Usage:   "naming file (default: files.naming_file from the config)",
			},
			&cli.BoolFlag{
				Name:  "fresh",
				Usage: "derive every component name from scratch instead of the naming file",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "do not rewrite the naming file",
			},
		},
		Action: runDedupe,
	}
}

func runDedupe(c *cli.Context) error {
	format := c.String("format")
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(c)

	typesPath := c.String("types")
	if typesPath == "" {
		typesPath = cfg.Files.NamingFile
	}
	fresh := c.Bool("fresh")

	opts, err := cfg.DeduplicatorOptions()
	if err != nil {
		return err
	}
	opts = append(opts, deduplicator.WithLogger(logger))
	if fresh {
		opts = append(opts, deduplicator.WithFresh())
	} else {
		entries, err := schematypes.Load(typesPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("naming file %s not found; run with --fresh to create it", typesPath)
			}
			return err
		}
		opts = append(opts, deduplicator.WithPinned(entries))
	}

	parsed, err := parseInputs(c, cfg, logger)
	if err != nil {
		return err
	}
	opts = append(opts, deduplicator.WithParsed(*parsed))

	result, err := deduplicator.DeduplicateWithOptions(opts...)
	if err != nil {
		return err
	}

	if err := writeDocument(c.App.Writer, result.Registry, outputPath(c, cfg), format, parsed.SourcePaths); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !c.Bool("no-save") {
		if err := schematypes.Save(typesPath, result.Components); err != nil {
			return fmt.Errorf("writing naming file: %w", err)
		}
	}

	if !c.Bool("quiet") {
		cliutil.Writef(c.App.ErrWriter, "Mode: %s\n", result.Mode)
		cliutil.Writef(c.App.ErrWriter, "Inputs: %s, %s\n", cliutil.Count(len(parsed.SourcePaths), "file"), cliutil.Count(len(result.Registry.IDs())-result.ExtractedCount(), "component"))
		cliutil.Writef(c.App.ErrWriter, "Extracted %s\n", cliutil.Count(result.ExtractedCount(), "shared component"))
		if len(result.Fixes) > 0 {
			cliutil.Writef(c.App.ErrWriter, "Applied %s\n", cliutil.Count(len(result.Fixes), "normalization fix"))
		}
		if n := result.WarningCount(); n > 0 {
			cliutil.Writef(c.App.ErrWriter, "Warnings: %d\n", n)
		}
		if len(result.StalePins) > 0 {
			cliutil.Writef(c.App.ErrWriter, "Dropped %s\n", cliutil.Count(len(result.StalePins), "stale naming file entry"))
		}
	}
	return nil
}
