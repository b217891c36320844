// Package domain holds the scanning core: diff range extraction, violation
// filtering, symbol/test-name tables, the reference matcher and the workflow
// tying them together. All components here are pure transformations over
// in-memory values; process execution and disk access live in adapter.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

// hunkHeaderRe matches "@@ -old[,count] +new[,count] @@", optionally followed
// by section text.
var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// ExtractChangeSet parses unified-diff text produced with --unified=0 into
// per-file changed intervals. Only the post-image matters: a hunk
// "@@ -o,c +S,N @@" yields the interval [S, S+N-1], N defaulting to 1 when
// omitted, and a pure deletion (N == 0) yields nothing. "--- a/" marker lines
// refer to the pre-image and are ignored. A hunk header that does not parse
// is skipped and recorded as a warning; text that is not a unified diff at
// all is an error.
func ExtractChangeSet(diff string) (m.ChangeSet, error) {
	changes := m.ChangeSet{Files: make(map[m.Path][]m.ChangedInterval)}
	if strings.TrimSpace(diff) == "" {
		return changes, nil
	}

	var current m.Path

	sawFileMarker := false

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ "):
			sawFileMarker = true
			current = postImagePath(line)
		case strings.HasPrefix(line, "--- "):
			sawFileMarker = true
		case strings.HasPrefix(line, "@@"):
			if !sawFileMarker {
				return m.ChangeSet{}, fmt.Errorf("not a unified diff: hunk header %q before any file marker", line)
			}

			if current == "" {
				// post-image is /dev/null, nothing to track
				continue
			}

			interval, count, ok := parseHunkHeader(line)
			if !ok {
				changes.Warnings = append(changes.Warnings,
					fmt.Sprintf("%s: skipped malformed hunk header %q", current, line))

				continue
			}

			if count == 0 {
				continue
			}

			changes.Files[current] = append(changes.Files[current], interval)
		}
	}

	if !sawFileMarker {
		return m.ChangeSet{}, fmt.Errorf("not a unified diff: no file markers found")
	}

	return changes, nil
}

// postImagePath extracts the new-revision path from a "+++ " marker line,
// stripping the conventional b/ prefix. A /dev/null post-image (file
// deletion) yields the empty path.
func postImagePath(line string) m.Path {
	path := strings.TrimPrefix(line, "+++ ")
	if i := strings.IndexByte(path, '\t'); i >= 0 {
		path = path[:i]
	}

	if path == "/dev/null" {
		return ""
	}

	return m.Path(strings.TrimPrefix(path, "b/"))
}

// parseHunkHeader returns the added interval and added-line count of a hunk
// header. ok is false when the header does not match the expected shape.
func parseHunkHeader(line string) (m.ChangedInterval, int, bool) {
	groups := hunkHeaderRe.FindStringSubmatch(line)
	if groups == nil {
		return m.ChangedInterval{}, 0, false
	}

	start, err := strconv.Atoi(groups[1])
	if err != nil {
		return m.ChangedInterval{}, 0, false
	}

	count := 1

	if groups[2] != "" {
		count, err = strconv.Atoi(groups[2])
		if err != nil {
			return m.ChangedInterval{}, 0, false
		}
	}

	if count == 0 {
		return m.ChangedInterval{}, 0, true
	}

	return m.ChangedInterval{StartLine: start, EndLine: start + count - 1}, count, true
}
