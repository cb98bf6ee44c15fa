package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith/pkg/align"
	"github.com/slidesmith/slidesmith/pkg/cache"
	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/io"
	"github.com/slidesmith/slidesmith/pkg/pipeline"
)

// alignOpts holds the command-line flags for the align command.
type alignOpts struct {
	output   string // output file for the aligned deck (default <input>_aligned.json)
	strategy string // alignment strategy: preserve_order, compact, balanced
	noCache  bool   // disable the layout cache
	refresh  bool   // recompute even when cached
}

// alignCommand creates the align command. It normalizes a deck, resolves
// grid overlaps with the chosen strategy, and writes the aligned deck back
// out as JSON alongside a per-slide overlap report.
func (c *CLI) alignCommand() *cobra.Command {
	var opts alignOpts

	cmd := &cobra.Command{
		Use:   "align [file]",
		Short: "Resolve grid overlaps in a deck document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAlign(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for the aligned deck")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "alignment strategy: preserve_order (default), compact, balanced")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute layout even when cached")

	return cmd
}

func (c *CLI) runAlign(ctx context.Context, input string, opts *alignOpts) error {
	logger := loggerFromContext(ctx)

	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileNotFound, "reading %s", input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Strategy: c.strategyFor(opts.strategy),
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	normalized, warnings, _, err := runner.NormalizeWithCacheInfo(ctx, raw, cache.Hash(raw), pipeOpts)
	if err != nil {
		return err
	}
	aligned, alignHit, err := runner.AlignWithCacheInfo(ctx, normalized, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Aligned %d slides with %s", len(aligned.Slides), pipeOpts.Strategy))

	for _, w := range warnings {
		printWarning("%s", w.String())
	}
	printReports(aligned, alignHit)

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "_aligned.json"
	}
	if err := io.ExportDeck(aligned, outputPath); err != nil {
		return err
	}
	printFile(outputPath)
	printNextStep("Render it", appName+" render "+outputPath)
	return nil
}

// strategyFor picks the strategy from the flag, falling back to config.
func (c *CLI) strategyFor(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Config.Strategy
}

// printReports prints one overlap report line per slide.
func printReports(doc *deck.Document, cached bool) {
	aligner := align.New(doc.Tokens)
	for i, slide := range doc.Slides {
		report := aligner.Validate(slide.Components)
		if report.IsValid {
			printSuccess("slide %d: %d components, no overlaps", i+1, report.ComponentCount)
		} else {
			printError("slide %d: %d overlapping pairs remain", i+1, report.OverlapsDetected)
		}
	}
	printStats(len(doc.Slides), componentCount(doc), cached)
}
