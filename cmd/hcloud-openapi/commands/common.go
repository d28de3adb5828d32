// Package commands provides CLI command handlers for hcloud-openapi.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/config"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/fileutil"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// Flags shared by the commands that read schema documents.
var (
	inputFlag = &cli.StringSliceFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "schema files or doublestar globs to load (default: files.inputs from the config)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: files.output from the config, else stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: json or yaml",
		Value:   FormatJSON,
	}
	quietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "quiet mode: only output the document, no diagnostic messages",
	}
)

// GlobalFlags returns the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "TOML config file overriding the built-in policy",
			EnvVars: []string{"HCLOUD_OPENAPI_CONFIG"},
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug messages to stderr",
		},
	}
}

// loadConfig reads the --config file, or returns the defaults when none is set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the structured logger every pass reports through.
// Warnings and above are always shown; --verbose adds debug output.
func newLogger(c *cli.Context) parser.Logger {
	if c.Bool("quiet") {
		return parser.NopLogger{}
	}
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})
	return parser.NewSlogAdapter(slog.New(handler))
}

// inputPatterns returns the --input values, falling back to the config.
func inputPatterns(c *cli.Context, cfg *config.Config) ([]string, error) {
	patterns := c.StringSlice("input")
	if len(patterns) == 0 {
		patterns = cfg.Files.Inputs
	}
	if len(patterns) == 0 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "no input files: pass --input or set files.inputs"}
	}
	return patterns, nil
}

// parseInputs expands the input globs and loads every matched document.
func parseInputs(c *cli.Context, cfg *config.Config, logger parser.Logger) (*parser.ParseResult, error) {
	patterns, err := inputPatterns(c, cfg)
	if err != nil {
		return nil, err
	}
	return parser.ParseWithOptions(parser.WithGlob(patterns...), parser.WithLogger(logger))
}

// outputPath returns the --output value, falling back to the config.
func outputPath(c *cli.Context, cfg *config.Config) string {
	if out := c.String("output"); out != "" {
		return out
	}
	return cfg.Files.Output
}

// ValidateOutputPath checks that the output path does not overwrite an input.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// writeDocument renders the registry and writes it to path, or to w when
// path is empty.
func writeDocument(w io.Writer, reg *schema.Registry, path, format string, inputs []string) error {
	data, err := reg.Encode(format)
	if err != nil {
		return err
	}
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	cleaned := filepath.Clean(path)
	if err := ValidateOutputPath(cleaned, inputs); err != nil {
		return err
	}
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	return fileutil.WriteAtomic(cleaned, data, fileutil.ReadableByAll)
}
