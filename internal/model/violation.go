package model

// Category classifies a violation by the check that produced it.
type Category string

const (
	// CategoryPattern marks violations found by structural anti-pattern rules
	// (mocking, interaction assertions).
	CategoryPattern Category = "pattern"
	// CategoryReference marks test names that reference an implementation
	// symbol.
	CategoryReference Category = "reference"
	// CategoryColocation marks test files that live outside their expected
	// location.
	CategoryColocation Category = "colocation"
)

// Violation is a single finding. Line and Column are 0-based, matching the
// structural engine's output; the change filter converts to 1-based when
// intersecting with diff intervals. Violations are never mutated after
// creation.
type Violation struct {
	File        Path     `json:"file"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	RuleID      string   `json:"rule_id"`
	Message     string   `json:"message"`
	Category    Category `json:"category"`
	MatchedText string   `json:"matched_text,omitempty"`
}
