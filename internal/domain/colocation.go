package domain

import (
	"fmt"
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

// colocationRuleID identifies violations produced by the colocation check.
const colocationRuleID = "test-file-location"

// CheckColocation flags test files that live inside a rule's directory but
// carry none of the rule's required path suffixes. Files outside every
// rule's directory pass. The first matching rule decides per file.
func CheckColocation(testFiles []m.Path, rules []m.ColocationRule) []m.Violation {
	var violations []m.Violation

	for _, file := range testFiles {
		for _, rule := range rules {
			if !strings.HasPrefix(string(file), rule.Within) {
				continue
			}

			if !hasAnySuffix(string(file), rule.Suffixes) {
				violations = append(violations, m.Violation{
					File:     file,
					RuleID:   colocationRuleID,
					Category: m.CategoryColocation,
					Message: fmt.Sprintf("test files under %s must end with one of: %s",
						rule.Within, strings.Join(rule.Suffixes, ", ")),
				})
			}

			break
		}
	}

	return violations
}

func hasAnySuffix(path string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	return false
}
