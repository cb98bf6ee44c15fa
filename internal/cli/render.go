package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/fonts"
	"github.com/slidesmith/slidesmith/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "json", "svg", "png"
	strategy string   // alignment strategy
	scale    float64  // PNG raster scale
	font     string   // font family name or TTF path for PNG text
	noCache  bool     // disable caching entirely
	refresh  bool     // recompute every stage even when cached
}

// renderCommand creates the render command for producing deck artifacts.
// It runs the full validate, normalize, align, render pipeline and writes
// one file per artifact. SVG and PNG produce one file per slide.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a deck to JSON, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "alignment strategy: preserve_order (default), compact, balanced")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG raster scale (default 2.0)")
	cmd.Flags().StringVar(&opts.font, "font", "", "font family or TTF path for PNG text")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute every stage even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileNotFound, "reading %s", input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts, err := c.pipelineOptions(opts, logger)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering deck...")
	spinner.Start()
	result, err := runner.Execute(ctx, raw, pipeOpts)
	spinner.Stop()
	if err != nil {
		printError("Render failed")
		printDetail("%s", errors.UserMessage(err))
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w.String())
	}
	if result.Stats.Skipped > 0 {
		printWarning("%d components skipped during rendering", result.Stats.Skipped)
	}

	printSuccess("Rendered %d slides in %s",
		result.Stats.Slides,
		(result.Stats.NormalizeTime + result.Stats.AlignTime + result.Stats.RenderTime).Round(time.Millisecond))
	printStats(result.Stats.Slides, result.Stats.Components, result.CacheInfo.RenderHit)

	return writeArtifacts(opts.output, input, result.Artifacts)
}

// pipelineOptions builds pipeline options from flags and config fallbacks.
func (c *CLI) pipelineOptions(opts *renderOpts, logger *log.Logger) (pipeline.Options, error) {
	formats := opts.formats
	if len(formats) == 0 {
		formats = c.Config.Formats
	}
	scale := opts.scale
	if scale == 0 {
		scale = c.Config.Scale
	}
	font := opts.font
	if font == "" {
		font = c.Config.Font
	}

	pipeOpts := pipeline.Options{
		Strategy: c.strategyFor(opts.strategy),
		Formats:  formats,
		Scale:    scale,
		FontPath: resolveFont(font),
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	return pipeOpts, pipeOpts.ValidateAndSetDefaults()
}

// resolveFont turns a font flag value into a TTF path. Values that already
// point at a font file pass through; family names go through the system
// font lookup. An unresolvable family means bitmap-font fallback, not an
// error.
func resolveFont(font string) string {
	if font == "" {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(font))
	if ext == ".ttf" || ext == ".otf" {
		return font
	}
	return fonts.Resolve(font)
}

// writeArtifacts writes rendered artifacts to disk. Single-slide formats
// get base.format; multi-slide formats get base_NN.format, numbered from 1.
func writeArtifacts(output, input string, artifacts map[string][][]byte) error {
	base := basePath(output, input)
	dir := filepath.Dir(base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for format, slides := range artifacts {
		for i, data := range slides {
			path := base + "." + format
			if len(slides) > 1 {
				path = fmt.Sprintf("%s_%02d.%s", base, i+1, format)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printFile(path)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries
// a format extension (.json, .svg, .png), that extension is stripped so the
// per-format suffixes attach cleanly.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
