package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graybeam/testpolicy/internal/domain"
	m "github.com/graybeam/testpolicy/internal/model"
)

type fakeWorkflow struct {
	report      m.Report
	err         error
	scanArgs    *domain.ScanArgs
	changedArgs *domain.ChangedArgs
}

func (f *fakeWorkflow) Scan(_ context.Context, args domain.ScanArgs) (m.Report, error) {
	f.scanArgs = &args
	return f.report, f.err
}

func (f *fakeWorkflow) ScanChanged(_ context.Context, args domain.ChangedArgs) (m.Report, error) {
	f.changedArgs = &args
	return f.report, f.err
}

type fakeReportStore struct {
	saved map[m.Path]m.Report
}

func (f *fakeReportStore) Save(path m.Path, report m.Report) error {
	if f.saved == nil {
		f.saved = make(map[m.Path]m.Report)
	}

	f.saved[path] = report

	return nil
}

func (f *fakeReportStore) Load(_ m.Path) (m.Report, error) {
	return m.Report{}, nil
}

// runCommand swaps the wired workflow and report store for fakes, resets the
// flag variables left over from previous runs, and executes the root command
// with the given arguments.
func runCommand(t *testing.T, fake *fakeWorkflow, args ...string) (string, error) {
	t.Helper()

	origWorkflow, origStore := workflow, reportStore
	workflow = fake
	reportStore = &fakeReportStore{}

	t.Cleanup(func() {
		workflow, reportStore = origWorkflow, origStore
	})

	rootParallelFlag, rootExcludeFlags, rootReportFileFlag = 0, nil, ""
	checkParallelFlag, checkExcludeFlags, checkReportFileFlag = 0, nil, ""
	changedStagedFlag, changedBaseFlag = false, ""
	changedParallelFlag, changedExcludeFlags, changedReportFileFlag = 0, nil, ""

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestRootCommand_CleanScan(t *testing.T) {
	fake := &fakeWorkflow{}

	out, err := runCommand(t, fake)
	require.NoError(t, err)

	require.NotNil(t, fake.scanArgs)
	assert.Equal(t, m.Path("."), fake.scanArgs.Root)
	assert.Contains(t, out, "PASS")
}

func TestRootCommand_FlagsReachScan(t *testing.T) {
	fake := &fakeWorkflow{}

	_, err := runCommand(t, fake, "some/dir", "-p", "8", "-x", "fixtures/", "-x", "generated/")
	require.NoError(t, err)

	require.NotNil(t, fake.scanArgs)
	assert.Equal(t, m.Path("some/dir"), fake.scanArgs.Root)
	assert.Equal(t, 8, fake.scanArgs.Workers)
	assert.Equal(t, []string{"fixtures/", "generated/"}, fake.scanArgs.Exclude)
}

func TestRootCommand_ViolationsExitContract(t *testing.T) {
	fake := &fakeWorkflow{report: m.Report{
		Violations: []m.Violation{{File: "a.py", RuleID: "py-no-mock", Category: m.CategoryPattern}},
	}}

	out, err := runCommand(t, fake)
	require.ErrorIs(t, err, m.ErrViolationsFound)
	assert.Contains(t, out, "FAIL: 1 policy violation(s)")
}

func TestRootCommand_ReportFile(t *testing.T) {
	fake := &fakeWorkflow{report: m.Report{
		Violations: []m.Violation{{File: "a.py", RuleID: "py-no-mock", Category: m.CategoryPattern}},
	}}

	origWorkflow, origStore := workflow, reportStore
	store := &fakeReportStore{}
	workflow, reportStore = fake, store

	t.Cleanup(func() {
		workflow, reportStore = origWorkflow, origStore
	})

	rootParallelFlag, rootExcludeFlags, rootReportFileFlag = 0, nil, ""

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"-o", "report.json"})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, m.ErrViolationsFound)

	saved, ok := store.saved["report.json"]
	require.True(t, ok)
	assert.Equal(t, fake.report, saved)
}

func TestParseRoot(t *testing.T) {
	assert.Equal(t, m.Path("."), parseRoot(nil))
	assert.Equal(t, m.Path("src"), parseRoot([]string{"src"}))
}
