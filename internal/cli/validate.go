package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith/pkg/deck"
	"github.com/slidesmith/slidesmith/pkg/errors"
	"github.com/slidesmith/slidesmith/pkg/io"
	"github.com/slidesmith/slidesmith/pkg/normalize"
	"github.com/slidesmith/slidesmith/pkg/schema"
)

// validateCommand creates the validate command. It checks a deck against the
// schema, runs the normalizer, and reports every repair that would be applied,
// without writing any output.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a deck document and report repairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func (c *CLI) runValidate(input string, strict bool) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileNotFound, "reading %s", input)
	}

	validator, err := schema.New()
	if err != nil {
		return err
	}
	advisories, err := validator.Validate(raw)
	if err != nil {
		printError("Schema validation failed")
		printDetail("%s", errors.UserMessage(err))
		return err
	}

	doc, err := io.DecodeDeck(raw)
	if err != nil {
		return err
	}
	normalized, warnings, err := normalize.Document(doc)
	if err != nil {
		return err
	}
	warnings = append(normalize.DeckScaffolding(raw), warnings...)

	for _, a := range advisories {
		printWarning("schema: %s", a)
	}
	for _, w := range warnings {
		printWarning("%s", w.String())
	}

	total := len(advisories) + len(warnings)
	if total == 0 {
		printSuccess("%s is valid", input)
	} else {
		printInfo("%s normalized with %d warnings", input, total)
	}
	if normalized.Meta.Title != "" {
		printKeyValue("title", normalized.Meta.Title)
	}
	printStats(len(normalized.Slides), componentCount(normalized), false)

	if strict && total > 0 {
		return errors.New(errors.ErrCodeInvalidDeck, "%d validation warnings", total)
	}
	printNextStep("Render it", appName+" render "+input)
	return nil
}

// componentCount tallies top-level components across all slides.
func componentCount(doc *deck.Document) int {
	n := 0
	for _, slide := range doc.Slides {
		n += len(slide.Components)
	}
	return n
}
