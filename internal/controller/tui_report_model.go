package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/graybeam/testpolicy/internal/model"
)

var browserTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("6")).
	Bold(true).
	Padding(0, 1)

// violationItem adapts one violation to the bubbles list.
type violationItem struct {
	violation m.Violation
}

func (i violationItem) Title() string {
	return fmt.Sprintf("%s:%d:%d", i.violation.File, i.violation.Line+1, i.violation.Column+1)
}

func (i violationItem) Description() string {
	return fmt.Sprintf("[%s] %s", i.violation.RuleID, i.violation.Message)
}

func (i violationItem) FilterValue() string {
	return string(i.violation.File) + " " + i.violation.RuleID
}

// reportModel is the Bubble Tea model behind the violation browser.
type reportModel struct {
	list list.Model
}

func newReportModel(report m.Report) reportModel {
	items := make([]list.Item, 0, len(report.Violations))
	for _, violation := range report.Violations {
		items = append(items, violationItem{violation: violation})
	}

	delegate := list.NewDefaultDelegate()

	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("testpolicy: %d violation(s)", len(items))
	l.Styles.Title = browserTitleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return reportModel{list: l}
}

func (r reportModel) Init() tea.Cmd {
	return nil
}

func (r reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Do not swallow keys while the filter prompt is active.
			if r.list.FilterState() != list.Filtering {
				return r, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		r.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)

	return r, cmd
}

func (r reportModel) View() string {
	return r.list.View()
}
