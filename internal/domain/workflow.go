package domain

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/graybeam/testpolicy/internal/adapter"
	m "github.com/graybeam/testpolicy/internal/model"
)

// ChangeScope selects which revision range a changed-scope scan covers.
type ChangeScope int

const (
	// ScopeUnstaged compares the working tree against the index.
	ScopeUnstaged ChangeScope = iota
	// ScopeStaged compares the index against HEAD.
	ScopeStaged
	// ScopeBase compares the working tree against a named base revision.
	ScopeBase
)

// ScanArgs configures a scan. Root defaults to the current directory; for
// changed-scope scans it must be the repository root so diff paths and
// walker paths agree.
type ScanArgs struct {
	Root    m.Path
	Exclude []string
	Workers int
}

// ChangedArgs configures a changed-scope scan. Base is required for
// ScopeBase and ignored otherwise.
type ChangedArgs struct {
	ScanArgs
	Scope ChangeScope
	Base  string
}

// Workflow runs policy scans end to end.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) (m.Report, error)
	ScanChanged(ctx context.Context, args ChangedArgs) (m.Report, error)
}

type workflow struct {
	walker  adapter.SourceWalker
	matcher adapter.StructuralMatcher
	git     adapter.GitClient
	config  adapter.ConfigLoader
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(
	walker adapter.SourceWalker,
	matcher adapter.StructuralMatcher,
	git adapter.GitClient,
	config adapter.ConfigLoader,
) Workflow {
	return &workflow{walker: walker, matcher: matcher, git: git, config: config}
}

// Scan runs every check over the full tree under args.Root: structural
// anti-pattern rules over test files, the symbol-reference check over test
// names, and the colocation check. The symbol table is assembled once,
// before any matching starts, and reused for every test name.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.Report, error) {
	root := args.Root
	if root == "" {
		root = "."
	}

	cfg, err := w.config.Load(root)
	if err != nil {
		return m.Report{}, err
	}

	exclude := append(append([]string{}, cfg.Exclude...), args.Exclude...)

	files, err := w.walker.Collect(root, exclude)
	if err != nil {
		return m.Report{}, err
	}

	workers := args.Workers
	if workers <= 0 {
		workers = cfg.Workers
	}

	if workers <= 0 {
		workers = 1
	}

	var report m.Report

	if !w.matcher.Available() {
		report.Notes = append(report.Notes,
			"structural engine (ast-grep) not found: pattern and symbol-reference checks skipped")
	} else {
		patternViolations, err := w.matcher.ScanRules(ctx, root, files.Tests)
		if err != nil {
			return m.Report{}, err
		}

		report.Violations = append(report.Violations, patternViolations...)

		symbols, err := w.collectSymbols(ctx, root, files.Sources, workers)
		if err != nil {
			return m.Report{}, err
		}

		table := NewSymbolTable(symbols)
		if table.Len() == 0 {
			report.Notes = append(report.Notes,
				"symbol-reference check skipped: no symbols above the length threshold")
		} else {
			tests, err := w.collectTests(ctx, root, files.Tests, workers)
			if err != nil {
				return m.Report{}, err
			}

			report.Violations = append(report.Violations, CheckTestNames(tests, table)...)
		}
	}

	report.Violations = append(report.Violations, CheckColocation(files.Tests, cfg.Colocation)...)

	report.Violations = FilterIgnored(report.Violations, func(path m.Path) ([]byte, error) {
		return w.walker.ReadFile(m.Path(filepath.Join(string(root), string(path))))
	})

	return report, nil
}

// ScanChanged restricts a scan to the lines changed in the selected revision
// range. The diff is taken first so malformed input fails before any
// scanning work; an empty change set short-circuits the scan entirely.
func (w *workflow) ScanChanged(ctx context.Context, args ChangedArgs) (m.Report, error) {
	root := args.Root
	if root == "" {
		root = "."
	}

	diff, err := w.takeDiff(ctx, root, args)
	if err != nil {
		return m.Report{}, err
	}

	changes, err := ExtractChangeSet(diff)
	if err != nil {
		return m.Report{}, err
	}

	if len(changes.Files) == 0 {
		return m.Report{
			Warnings: changes.Warnings,
			Notes:    []string{"no changed lines in scope: nothing to check"},
		}, nil
	}

	report, err := w.Scan(ctx, args.ScanArgs)
	if err != nil {
		return m.Report{}, err
	}

	report.Violations = FilterChanged(report.Violations, changes)
	report.Warnings = append(changes.Warnings, report.Warnings...)

	return report, nil
}

func (w *workflow) takeDiff(ctx context.Context, root m.Path, args ChangedArgs) (string, error) {
	switch args.Scope {
	case ScopeStaged:
		return w.git.DiffStaged(ctx, root)
	case ScopeBase:
		if args.Base == "" {
			return "", fmt.Errorf("base revision required for base-scope scan")
		}

		return w.git.DiffBase(ctx, root, args.Base)
	default:
		return w.git.DiffUnstaged(ctx, root)
	}
}

// collectSymbols fans symbol discovery out across implementation files. Each
// file's output is independent; the final set is joined only after every
// file finished, because matching requires the complete table.
func (w *workflow) collectSymbols(ctx context.Context, root m.Path, files []m.Path, workers int) ([]m.Symbol, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([][]m.Symbol, len(files))

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			symbols, err := w.matcher.CollectSymbols(ctx, root, file)
			if err != nil {
				return fmt.Errorf("collect symbols in %s: %w", file, err)
			}

			results[i] = symbols

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []m.Symbol
	for _, batch := range results {
		all = append(all, batch...)
	}

	return all, nil
}

// collectTests fans test-case discovery out across test files, preserving
// file order in the joined result.
func (w *workflow) collectTests(ctx context.Context, root m.Path, files []m.Path, workers int) ([]m.TestCase, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([][]m.TestCase, len(files))

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			tests, err := w.matcher.CollectTests(ctx, root, file)
			if err != nil {
				return fmt.Errorf("collect tests in %s: %w", file, err)
			}

			results[i] = tests

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []m.TestCase
	for _, batch := range results {
		all = append(all, batch...)
	}

	return all, nil
}
