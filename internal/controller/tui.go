package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/graybeam/testpolicy/internal/model"
)

// TUI implements UI using Bubble Tea for interactive browsing of violations.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReport opens the violation browser. A clean report skips the
// browser and prints the verdict directly.
func (t *TUI) DisplayReport(report m.Report) error {
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(t.output, "%s\n", warnStyle.Render("warning: "+warning))
	}

	for _, note := range report.Notes {
		_, _ = fmt.Fprintf(t.output, "%s\n", noteStyle.Render(note))
	}

	if report.Total() == 0 {
		_, _ = fmt.Fprintf(t.output, "%s\n", passStyle.Render("PASS: no policy violations"))
		return nil
	}

	program := tea.NewProgram(newReportModel(report), tea.WithOutput(t.output))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("violation browser: %w", err)
	}

	_, _ = fmt.Fprintf(t.output, "\n%s", renderSummaryTable(report))
	_, _ = fmt.Fprintf(t.output, "%s\n", failStyle.Render(fmt.Sprintf("FAIL: %d policy violation(s)", report.Total())))

	return nil
}

// DisplayRules prints the loaded rules; rule listing is non-interactive even
// on a TTY.
func (t *TUI) DisplayRules(rules map[string]m.RuleInfo) error {
	_, _ = fmt.Fprintf(t.output, "%s", renderRulesTable(rules))
	return nil
}
