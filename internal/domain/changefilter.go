package domain

import m "github.com/graybeam/testpolicy/internal/model"

// FilterChanged keeps only the violations whose line falls inside one of the
// changed intervals for exactly their file. Engine lines are 0-based while
// intervals are 1-based, hence the +1. File comparison is exact string
// equality on root-relative paths. Input order is preserved, and violations
// for files absent from the change set are dropped silently; that is the
// expected case for findings outside any changed region, not an error.
// Colocation violations have no line context, so they survive whenever their
// file was touched at all.
func FilterChanged(violations []m.Violation, changes m.ChangeSet) []m.Violation {
	kept := make([]m.Violation, 0, len(violations))

	for _, violation := range violations {
		intervals, ok := changes.Files[violation.File]
		if !ok {
			continue
		}

		if violation.Category == m.CategoryColocation {
			kept = append(kept, violation)
			continue
		}

		for _, interval := range intervals {
			if interval.Contains(violation.Line + 1) {
				kept = append(kept, violation)

				break
			}
		}
	}

	return kept
}
