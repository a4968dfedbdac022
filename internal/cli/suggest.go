package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lels/internal/quickfix"
)

// SuggestedTemplate is a synthesised template and the literals it covers.
type SuggestedTemplate struct {
	Template string           `json:"template"`
	Literals []LiteralSummary `json:"literals"`
}

// LiteralSummary locates a literal.
type LiteralSummary struct {
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "Synthesise templates for literals without one",
		Long: `Group the literals no template matches and derive the most
general template for each group, as the "Generate a template" quick fix
would.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSuggest(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	p, err := loadPass(opts, path)
	if err != nil {
		return loadFailure(formatter, err)
	}

	suggestions := []SuggestedTemplate{}
	for _, s := range quickfix.Suggest(p) {
		st := SuggestedTemplate{Template: s.Template.String()}
		for _, i := range s.Literals {
			lit := p.Literals[i]
			st.Literals = append(st.Literals, LiteralSummary{Text: lit.Text, Line: lit.Line, Column: lit.Start})
		}
		suggestions = append(suggestions, st)
	}

	if formatter.JSON() {
		return formatter.Success(suggestions)
	}

	w := formatter.Writer
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "Every literal has a template.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintln(w, s.Template)
		for _, l := range s.Literals {
			fmt.Fprintf(w, "  %d:%d %s\n", l.Line+1, l.Column+1, l.Text)
		}
	}
	return nil
}
