package model

import "errors"

// ErrViolationsFound signals the CLI layer to exit nonzero after the report
// has been rendered. The scanning core never terminates the process itself.
var ErrViolationsFound = errors.New("violations found")

// Report aggregates the outcome of one scan. Warnings carry recoverable
// input problems (e.g. skipped diff hunks); Notes explain checks that were
// skipped entirely (e.g. no symbols above the length threshold).
type Report struct {
	Violations []Violation `json:"violations"`
	Warnings   []string    `json:"warnings,omitempty"`
	Notes      []string    `json:"notes,omitempty"`
}

// Count returns the number of violations in the given category.
func (r Report) Count(category Category) int {
	n := 0

	for _, v := range r.Violations {
		if v.Category == category {
			n++
		}
	}

	return n
}

// Total returns the number of violations across all categories.
func (r Report) Total() int {
	return len(r.Violations)
}

// RuleInfo is the metadata kept from a structural rule definition, used for
// rule listings and report messages.
type RuleInfo struct {
	ID       string `yaml:"id" json:"id"`
	Language string `yaml:"language" json:"language"`
	Severity string `yaml:"severity" json:"severity"`
	Message  string `yaml:"message" json:"message"`
}

// ColocationRule requires test files under the Within directory to carry one
// of the Suffixes. Paths are repository-root relative.
type ColocationRule struct {
	Within   string   `yaml:"within" json:"within"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}
