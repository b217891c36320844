package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/graybeam/testpolicy/internal/model"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints violations in file:line:column order of arrival,
// followed by warnings, notes, a per-category summary table and the verdict.
// Lines are shown 1-based even though violations store engine (0-based)
// positions.
func (s *SimpleUI) DisplayReport(report m.Report) error {
	for _, v := range report.Violations {
		s.printf("%s:%d:%d  [%s] %s\n", v.File, v.Line+1, v.Column+1, v.RuleID, v.Message)
	}

	for _, warning := range report.Warnings {
		s.printf("%s\n", warnStyle.Render("warning: "+warning))
	}

	for _, note := range report.Notes {
		s.printf("%s\n", noteStyle.Render(note))
	}

	if report.Total() == 0 {
		s.printf("%s\n", passStyle.Render("PASS: no policy violations"))
		return nil
	}

	s.printf("\n%s", renderSummaryTable(report))
	s.printf("%s\n", failStyle.Render(fmt.Sprintf("FAIL: %d policy violation(s)", report.Total())))

	return nil
}

// DisplayRules prints the loaded rules sorted by id.
func (s *SimpleUI) DisplayRules(rules map[string]m.RuleInfo) error {
	s.printf("%s", renderRulesTable(rules))
	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// renderSummaryTable builds the per-category count table shared by the
// simple and TUI renderers.
func renderSummaryTable(report m.Report) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Category", "Violations"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, category := range []m.Category{m.CategoryPattern, m.CategoryReference, m.CategoryColocation} {
		table.Append([]string{string(category), fmt.Sprintf("%d", report.Count(category))})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", report.Total())})
	table.Render()

	return buffer.String()
}

func renderRulesTable(rules map[string]m.RuleInfo) string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Rule", "Language", "Severity", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, id := range ids {
		info := rules[id]
		table.Append([]string{info.ID, info.Language, info.Severity, info.Message})
	}

	table.Render()

	return buffer.String()
}
