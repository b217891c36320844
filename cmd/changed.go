package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graybeam/testpolicy/internal/domain"
)

var changedStagedFlag bool
var changedBaseFlag string
var changedParallelFlag int
var changedExcludeFlags []string
var changedReportFileFlag string

// changedCmd represents the changed command.
var changedCmd = newChangedCmd()

func newChangedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changed [path]",
		Short: "Scan only the lines changed in a revision range",
		Long: `Scan the repository at the given path (default ".") but keep only the
violations whose lines were added in the selected range:

  testpolicy changed                 unstaged changes (working tree vs index)
  testpolicy changed --staged        staged changes (index vs HEAD)
  testpolicy changed --base main     working tree vs a base revision

The path must be the repository root so diff paths line up with scan
paths.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			scope, err := parseScope(changedStagedFlag, changedBaseFlag)
			if err != nil {
				return err
			}

			report, err := workflow.ScanChanged(c.Context(), domain.ChangedArgs{
				ScanArgs: domain.ScanArgs{
					Root:    parseRoot(args),
					Exclude: changedExcludeFlags,
					Workers: changedParallelFlag,
				},
				Scope: scope,
				Base:  changedBaseFlag,
			})
			if err != nil {
				return err
			}

			return renderAndVerdict(c, report, changedReportFileFlag)
		},
	}
	cmd.Flags().BoolVar(&changedStagedFlag, "staged", false, "scan staged changes instead of unstaged ones")
	cmd.Flags().StringVar(&changedBaseFlag, "base", "", "scan changes versus this base revision")
	cmd.Flags().IntVarP(&changedParallelFlag, "parallel", "p", 0, "number of parallel workers for per-file collection")
	cmd.Flags().StringArrayVarP(&changedExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringVarP(&changedReportFileFlag, "report-file", "o", "", "write the report as JSON to this file")

	return cmd
}

func parseScope(staged bool, base string) (domain.ChangeScope, error) {
	if staged && base != "" {
		return 0, fmt.Errorf("--staged and --base are mutually exclusive")
	}

	if staged {
		return domain.ScopeStaged, nil
	}

	if base != "" {
		return domain.ScopeBase, nil
	}

	return domain.ScopeUnstaged, nil
}

func init() {
	rootCmd.AddCommand(changedCmd)
}
