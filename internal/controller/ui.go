// Package controller renders scan results to the user.
package controller

import (
	m "github.com/graybeam/testpolicy/internal/model"
)

// UI defines the interface for presenting scan reports.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// DisplayReport shows violations, warnings and notes for one scan.
	DisplayReport(report m.Report) error
	// DisplayRules lists the loaded anti-pattern rules.
	DisplayRules(rules map[string]m.RuleInfo) error
}
