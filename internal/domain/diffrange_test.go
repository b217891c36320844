package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/graybeam/testpolicy/internal/model"
)

func TestExtractChangeSet_SingleHunk(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/a.py",
		"+++ b/a.py",
		"@@ -10,0 +10,3 @@",
		"+x = 1",
		"+y = 2",
		"+z = 3",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)

	require.Contains(t, changes.Files, m.Path("a.py"))
	require.Equal(t, []m.ChangedInterval{{StartLine: 10, EndLine: 12}}, changes.Files[m.Path("a.py")])
	assert.Empty(t, changes.Warnings)
}

func TestExtractChangeSet_OmittedCountDefaultsToOne(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/src/app.ts",
		"+++ b/src/app.ts",
		"@@ -5 +7 @@",
		"+const x = 1;",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)
	require.Equal(t, []m.ChangedInterval{{StartLine: 7, EndLine: 7}}, changes.Files[m.Path("src/app.ts")])
}

func TestExtractChangeSet_PureDeletionYieldsNoInterval(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/a.py",
		"+++ b/a.py",
		"@@ -4,2 +3,0 @@",
		"-old line",
		"-another old line",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)
	assert.NotContains(t, changes.Files, m.Path("a.py"))
	assert.Empty(t, changes.Warnings)
}

func TestExtractChangeSet_MultipleHunksAndFiles(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/a.py",
		"+++ b/a.py",
		"@@ -1,0 +1,2 @@",
		"+a",
		"+b",
		"@@ -9,1 +10,4 @@",
		"-gone",
		"+c",
		"+d",
		"+e",
		"+f",
		"--- a/b.py",
		"+++ b/b.py",
		"@@ -2,0 +3,1 @@",
		"+g",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)

	require.Equal(t, []m.ChangedInterval{
		{StartLine: 1, EndLine: 2},
		{StartLine: 10, EndLine: 13},
	}, changes.Files[m.Path("a.py")])
	require.Equal(t, []m.ChangedInterval{{StartLine: 3, EndLine: 3}}, changes.Files[m.Path("b.py")])
}

func TestExtractChangeSet_DeletedFileIsSkipped(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/gone.py",
		"+++ /dev/null",
		"@@ -1,3 +0,0 @@",
		"-a",
		"-b",
		"-c",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)
	assert.Empty(t, changes.Files)
}

func TestExtractChangeSet_MalformedHunkSkippedWithWarning(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/a.py",
		"+++ b/a.py",
		"@@ garbage @@",
		"@@ -1,0 +4,2 @@",
		"+x",
		"+y",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)

	// one corrupt hunk must not abort analysis of the rest
	require.Equal(t, []m.ChangedInterval{{StartLine: 4, EndLine: 5}}, changes.Files[m.Path("a.py")])
	require.Len(t, changes.Warnings, 1)
	assert.Contains(t, changes.Warnings[0], "malformed hunk header")
}

func TestExtractChangeSet_NotADiffFailsFast(t *testing.T) {
	_, err := ExtractChangeSet("this is not a diff at all\njust text\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a unified diff")
}

func TestExtractChangeSet_HunkBeforeMarkerFailsFast(t *testing.T) {
	_, err := ExtractChangeSet("@@ -1,0 +1,1 @@\n+x\n")
	require.Error(t, err)
}

func TestExtractChangeSet_EmptyDiff(t *testing.T) {
	changes, err := ExtractChangeSet("")
	require.NoError(t, err)
	assert.Empty(t, changes.Files)
}

func TestExtractChangeSet_RenameWithoutHunks(t *testing.T) {
	// A pure rename carries markers but no hunks; no intervals means
	// "nothing to check", not an error.
	diff := strings.Join([]string{
		"--- a/old_name.py",
		"+++ b/new_name.py",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)
	assert.Empty(t, changes.Files)
}

func TestExtractChangeSet_HeaderWithSectionText(t *testing.T) {
	diff := strings.Join([]string{
		"--- a/a.py",
		"+++ b/a.py",
		"@@ -3,0 +4,2 @@ def outer():",
		"+x",
		"+y",
	}, "\n")

	changes, err := ExtractChangeSet(diff)
	require.NoError(t, err)
	require.Equal(t, []m.ChangedInterval{{StartLine: 4, EndLine: 5}}, changes.Files[m.Path("a.py")])
}
