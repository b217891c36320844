package domain

import (
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

// ignoreMarker suppresses violations when it appears in a comment on the
// violating line or on the line directly above it. A comma-separated rule
// list after the marker restricts the suppression to those rules; a bare
// marker suppresses everything on that line.
const ignoreMarker = "testpolicy:ignore"

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(ruleID string) bool {
	if r.all {
		return true
	}

	_, ok := r.names[strings.ToLower(ruleID)]

	return ok
}

// parseIgnoreDirective extracts an ignore rule from a source line, if any.
func parseIgnoreDirective(line string) (ignoreRule, bool) {
	i := strings.Index(line, ignoreMarker)
	if i < 0 {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(line[i+len(ignoreMarker):])
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	rule := ignoreRule{names: make(map[string]struct{})}

	for _, part := range strings.Split(rest, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		return ignoreRule{all: true}, true
	}

	return rule, true
}

// FilterIgnored drops violations suppressed by an inline ignore marker.
// readFile supplies file contents; a file that cannot be read keeps all of
// its violations. Violations without a line context (colocation findings)
// are never suppressed this way.
func FilterIgnored(violations []m.Violation, readFile func(m.Path) ([]byte, error)) []m.Violation {
	lineCache := make(map[m.Path][]string)
	kept := make([]m.Violation, 0, len(violations))

	for _, violation := range violations {
		if violation.Category == m.CategoryColocation {
			kept = append(kept, violation)
			continue
		}

		lines, ok := lineCache[violation.File]
		if !ok {
			content, err := readFile(violation.File)
			if err != nil {
				content = nil
			}

			lines = strings.Split(string(content), "\n")
			lineCache[violation.File] = lines
		}

		if suppressed(lines, violation.Line, violation.RuleID) {
			continue
		}

		kept = append(kept, violation)
	}

	return kept
}

// suppressed checks the violating line (0-based) and the line above it for a
// matching ignore directive.
func suppressed(lines []string, line int, ruleID string) bool {
	for _, idx := range []int{line, line - 1} {
		if idx < 0 || idx >= len(lines) {
			continue
		}

		if rule, ok := parseIgnoreDirective(lines[idx]); ok && rule.ignores(ruleID) {
			return true
		}
	}

	return false
}
