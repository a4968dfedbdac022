package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lels/internal/highlight"
	"github.com/roach88/lels/internal/ir"
)

// Token is a highlighted term.
type Token struct {
	ir.SemanticRange
	Text string `json:"text"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokens <file>",
		Short:         "List the semantic ranges of a document's terms",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTokens(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	p, err := loadPass(opts, path)
	if err != nil {
		return loadFailure(formatter, err)
	}

	tokens := []Token{}
	for _, r := range highlight.Ranges(p) {
		line := p.Line(r.Line)
		tokens = append(tokens, Token{SemanticRange: r, Text: line[r.Column : r.Column+r.Length]})
	}

	if formatter.JSON() {
		return formatter.Success(tokens)
	}

	w := formatter.Writer
	for _, t := range tokens {
		fmt.Fprintf(w, "%d:%d\t%d\t%s\t%s\n", t.Line+1, t.Column+1, t.Length, t.Category, t.Text)
	}
	return nil
}
