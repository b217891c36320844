// Package cmd provides the root command and CLI setup for testpolicy.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graybeam/testpolicy/internal/adapter"
	"github.com/graybeam/testpolicy/internal/controller"
	"github.com/graybeam/testpolicy/internal/domain"
	m "github.com/graybeam/testpolicy/internal/model"
)

var matcher adapter.StructuralMatcher
var reportStore adapter.ReportStore
var workflow domain.Workflow

func init() {
	matcher = adapter.NewAstGrepMatcher()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(
		adapter.NewLocalSourceWalker(),
		matcher,
		adapter.NewLocalGitClient(),
		adapter.NewFileConfigLoader(),
	)
}

var rootParallelFlag int
var rootExcludeFlags []string
var rootReportFileFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testpolicy [path]",
		Short: "Testing anti-pattern policy checker",
		Long: `Testpolicy inspects TypeScript and Python source trees for testing
anti-patterns: mocking, interaction assertions, and test names that
reference implementation symbols. Findings can be scoped to only the
lines changed in a revision range (see "testpolicy changed").

Running without a subcommand scans the given directory in full,
defaulting to the current one. Exit code 0 means no violations; 1 means
violations were found or an input was malformed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			report, err := workflow.Scan(c.Context(), domain.ScanArgs{
				Root:    parseRoot(args),
				Exclude: rootExcludeFlags,
				Workers: rootParallelFlag,
			})
			if err != nil {
				return err
			}

			return renderAndVerdict(c, report, rootReportFileFlag)
		},
	}
	cmd.Flags().IntVarP(&rootParallelFlag, "parallel", "p", 0, "number of parallel workers for per-file collection")
	cmd.Flags().StringArrayVarP(&rootExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringVarP(&rootReportFileFlag, "report-file", "o", "", "write the report as JSON to this file")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, m.ErrViolationsFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}

// parseRoot returns the scan root from the positional args, defaulting to
// the current directory.
func parseRoot(args []string) m.Path {
	if len(args) == 0 {
		return "."
	}

	return m.Path(args[0])
}

// renderAndVerdict displays the report, optionally persists it, and
// translates a nonempty result into the exit-1 contract via
// ErrViolationsFound.
func renderAndVerdict(cmd *cobra.Command, report m.Report, reportFile string) error {
	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))
	if err := ui.DisplayReport(report); err != nil {
		return err
	}

	if reportFile != "" {
		if err := reportStore.Save(m.Path(reportFile), report); err != nil {
			return err
		}
	}

	if report.Total() > 0 {
		return m.ErrViolationsFound
	}

	return nil
}
