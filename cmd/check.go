package cmd

import (
	"github.com/spf13/cobra"

	"github.com/graybeam/testpolicy/internal/domain"
)

var checkParallelFlag int
var checkExcludeFlags []string
var checkReportFileFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Scan a directory in full",
		Long: `Scan every test file under the given directory (default ".") for
mocking, interaction assertions and symbol-referencing test names,
regardless of what changed recently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			report, err := workflow.Scan(c.Context(), domain.ScanArgs{
				Root:    parseRoot(args),
				Exclude: checkExcludeFlags,
				Workers: checkParallelFlag,
			})
			if err != nil {
				return err
			}

			return renderAndVerdict(c, report, checkReportFileFlag)
		},
	}
	cmd.Flags().IntVarP(&checkParallelFlag, "parallel", "p", 0, "number of parallel workers for per-file collection")
	cmd.Flags().StringArrayVarP(&checkExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringVarP(&checkReportFileFlag, "report-file", "o", "", "write the report as JSON to this file")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
