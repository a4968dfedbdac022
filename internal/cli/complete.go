package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/complete"
	"github.com/roach88/lels/internal/ir"
)

// CompleteOptions holds flags for the complete command.
type CompleteOptions struct {
	*RootOptions
	Line   int // 0-based
	Column int // 0-based byte column
	Limit  int // 0 uses the configured limit
}

// CompleteResult holds the completions offered at a cursor.
type CompleteResult struct {
	Position    ir.Position     `json:"position"`
	Completions []ir.Completion `json:"completions"`
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Rank template completions at a cursor",
		Long: `Rank the document's templates against the literal being typed at
--line and --column (both 0-based) and print the best completions.

Examples:
  lels complete likes.le --line 8 --column 28
  lels complete likes.le --line 8 --column 28 --limit 5 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Line, "line", -1, "cursor line (0-based)")
	cmd.Flags().IntVar(&opts.Column, "column", -1, "cursor column (0-based)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of completions (default from config)")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func runComplete(opts *CompleteOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	p, err := loadPass(opts.RootOptions, path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	if opts.Line < 0 || opts.Line >= len(p.Lines) || opts.Column < 0 {
		return fail(formatter, ErrCodeBadPosition,
			fmt.Sprintf("position %d:%d is outside the document", opts.Line, opts.Column), nil)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = opts.settings().CompletionLimit
	}
	completions := complete.Complete(p, opts.Line, opts.Column, limit)
	if completions == nil {
		completions = []ir.Completion{}
	}

	if formatter.JSON() {
		return formatter.Success(CompleteResult{
			Position:    ir.Position{Line: opts.Line, Column: opts.Column},
			Completions: completions,
		})
	}

	w := formatter.Writer
	if len(completions) == 0 {
		fmt.Fprintln(w, "No completions.")
		return nil
	}
	for _, c := range completions {
		fmt.Fprintf(w, "%d. %s (%.2f)\n", c.Rank+1, c.Label, c.Score)
		fmt.Fprintf(w, "   %s\n", c.InsertText)
	}
	return nil
}

// loadPass reads and analyses a single document.
func loadPass(opts *RootOptions, path string) (*analysis.Pass, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("analysing document", zap.String("path", path))
	return doc.Analyze(opts.analysisOptions()), nil
}
