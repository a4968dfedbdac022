package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lels/internal/lsp"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var stdio bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin and stdout",
		Long: `Run the Logical English language server. Requests are read from
stdin and responses written to stdout; logs go to stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, cmd)
		},
	}

	// Editors pass --stdio; it is the only transport.
	cmd.Flags().BoolVar(&stdio, "stdio", true, "communicate over stdin/stdout")

	return cmd
}

func runServe(opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.settings()
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), opts.logger(), lsp.Options{
		Analysis:        cfg.AnalysisOptions(),
		MaxProblems:     cfg.MaxProblems,
		CompletionLimit: cfg.CompletionLimit,
		CacheTTL:        cfg.CacheTTL,
	})
	opts.logger().Info("serving", zap.String("session", server.Session()), zap.String("config", cfg.Source))

	if err := server.Serve(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "language server stopped", err)
	}
	return nil
}
