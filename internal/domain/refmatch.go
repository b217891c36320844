package domain

import (
	"fmt"

	m "github.com/graybeam/testpolicy/internal/model"
)

// referenceRuleID identifies violations produced by the reference check.
const referenceRuleID = "test-name-references-symbol"

// FindReference decides whether a test name is about one of the table's
// symbols. Consecutive segments are concatenated without separator and each
// concatenation is compared for exact equality against the normalized set:
// test_calculate_total_returns_sum hits calculate_total through the
// calculate+total run, while test_username_is_valid never hits user because
// username is a single segment and exactness rejects both sub- and
// super-strings. The scan iterates start index ascending, extension
// ascending, and stops at the first hit, so at most one symbol is reported
// per test name.
func FindReference(testName string, symbols SymbolTable) (m.Symbol, bool) {
	segments := Segments(testName)

	for i := range segments {
		var combo string

		for j := i; j < len(segments); j++ {
			combo += segments[j]

			if sym, ok := symbols.Lookup(combo); ok {
				return sym, true
			}
		}
	}

	return m.Symbol{}, false
}

// CheckTestNames runs the reference check over every discovered test case,
// producing at most one violation per test name. Input order is preserved.
func CheckTestNames(tests []m.TestCase, symbols SymbolTable) []m.Violation {
	var violations []m.Violation

	for _, tc := range tests {
		sym, ok := FindReference(tc.RawName, symbols)
		if !ok {
			continue
		}

		violations = append(violations, m.Violation{
			File:     tc.SourceFile,
			Line:     tc.Line,
			Column:   tc.Column,
			RuleID:   referenceRuleID,
			Category: m.CategoryReference,
			Message: fmt.Sprintf("test name references implementation symbol %q declared in %s",
				sym.RawName, sym.SourceFile),
			MatchedText: tc.RawName,
		})
	}

	return violations
}
