package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graybeam/testpolicy/internal/adapter"
	"github.com/graybeam/testpolicy/internal/controller"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the embedded anti-pattern rules",
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			rules, err := adapter.LoadRuleInfo()
			if err != nil {
				return err
			}

			ui := controller.NewUI(c, controller.IsTTY(os.Stdout))

			return ui.DisplayRules(rules)
		},
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
