package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/ir"
	"github.com/roach88/lels/internal/validate"
)

// FileReport holds the diagnostics of one document.
type FileReport struct {
	Path        string          `json:"path"`
	Diagnostics []ir.Diagnostic `json:"diagnostics"`
}

// CheckResult holds the reports of every checked document.
type CheckResult struct {
	Files    []FileReport `json:"files"`
	Problems int          `json:"problems"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report diagnostics for Logical English documents",
		Long: `Analyse documents and report literals without a template,
misaligned and/or connectives, type mismatches and ignored type
hierarchies. Directories are searched for ` + DocumentExtension + ` files.

Exit codes:
  0 - No problems found
  1 - One or more problems reported
  2 - Command error (invalid paths, etc.)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := FindDocuments(paths)
	if err != nil {
		return loadFailure(formatter, err)
	}
	formatter.VerboseLog("Checking %d document(s)", len(files))

	reports, err := checkFiles(cmd.Context(), files, opts.analysisOptions(), opts.settings().MaxProblems, opts.logger())
	if err != nil {
		return loadFailure(formatter, err)
	}

	result := CheckResult{Files: reports}
	for _, r := range reports {
		result.Problems += len(r.Diagnostics)
	}

	return outputCheck(formatter, result)
}

// checkFiles analyses files in parallel. Reports keep the order of files.
func checkFiles(ctx context.Context, files []string, opts analysis.Options, maxProblems int, logger *zap.Logger) ([]FileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]FileReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := checkFile(path, opts, maxProblems)
			if err != nil {
				return err
			}
			logger.Debug("checked document", zap.String("path", path), zap.Int("problems", len(report.Diagnostics)))
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkFile(path string, opts analysis.Options, maxProblems int) (FileReport, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return FileReport{}, err
	}
	diags := validate.Document(doc.Analyze(opts), maxProblems)
	if diags == nil {
		diags = []ir.Diagnostic{}
	}
	return FileReport{Path: path, Diagnostics: diags}, nil
}

func outputCheck(formatter *OutputFormatter, result CheckResult) error {
	if formatter.JSON() {
		if result.Problems == 0 {
			return formatter.Success(result)
		}
		if err := formatter.Findings(ErrCodeFindings, problemSummary(result), result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, problemSummary(result))
	}

	w := formatter.Writer
	for _, r := range result.Files {
		writeReport(w, r)
	}

	if result.Problems == 0 {
		fmt.Fprintln(w, "✓ No problems found")
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "✗ %s\n", problemSummary(result))
	return NewExitError(ExitFailure, problemSummary(result))
}

func writeReport(w io.Writer, r FileReport) {
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "%s:%s: %s %s: %s\n", r.Path, d.Range.Start, d.Severity, d.Code, d.Message)
	}
}

func problemSummary(result CheckResult) string {
	files := 0
	for _, r := range result.Files {
		if len(r.Diagnostics) > 0 {
			files++
		}
	}
	return fmt.Sprintf("%d problem(s) in %d file(s)", result.Problems, files)
}
