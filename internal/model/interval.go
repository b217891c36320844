package model

// ChangedInterval is a 1-based, inclusive range of lines added by one diff
// hunk. StartLine <= EndLine always holds; a pure-deletion hunk produces no
// interval at all.
type ChangedInterval struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Contains reports whether the 1-based line falls inside the interval.
func (c ChangedInterval) Contains(line int) bool {
	return c.StartLine <= line && line <= c.EndLine
}

// ChangeSet maps repository-root-relative file paths to the intervals their
// hunks added. Intervals per file keep hunk order and are never merged; the
// filter treats the list as a disjunction. Warnings records hunk headers that
// were skipped as unparseable.
type ChangeSet struct {
	Files    map[Path][]ChangedInterval `json:"files"`
	Warnings []string                   `json:"warnings,omitempty"`
}
