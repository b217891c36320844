package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	m "github.com/graybeam/testpolicy/internal/model"
)

// supported source extensions; language dispatch elsewhere keys off the same
// set.
var sourceExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".py":  true,
}

// skippedDirs are always excluded from walking regardless of .gitignore.
var skippedDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".pytest_cache": true,
	".next":         true,
	"coverage":      true,
}

// SourceSet separates implementation files from test files. All paths are
// slash-separated and relative to the walked root.
type SourceSet struct {
	Sources []m.Path
	Tests   []m.Path
}

// SourceWalker enumerates the files a scan covers and reads their contents.
type SourceWalker interface {
	Collect(root m.Path, exclude []string) (SourceSet, error)
	ReadFile(path m.Path) ([]byte, error)
}

// LocalSourceWalker walks the real filesystem, honoring the root's .gitignore
// and a fixed skip-set of vendor/cache directories.
type LocalSourceWalker struct{}

// NewLocalSourceWalker constructs a LocalSourceWalker.
func NewLocalSourceWalker() *LocalSourceWalker {
	return &LocalSourceWalker{}
}

// Collect walks root and returns the supported source files, split into
// implementation and test files. Exclude patterns are regular expressions
// matched against the slash-separated relative path.
func (w *LocalSourceWalker) Collect(root m.Path, exclude []string) (SourceSet, error) {
	excludeRes, err := compilePatterns(exclude)
	if err != nil {
		return SourceSet{}, err
	}

	gitignore := loadGitignore(string(root))

	var set SourceSet

	err = filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(string(root), path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path != string(root) && (skippedDirs[info.Name()] || (gitignore != nil && gitignore.MatchesPath(rel+"/"))) {
				return filepath.SkipDir
			}

			return nil
		}

		if !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if gitignore != nil && gitignore.MatchesPath(rel) {
			return nil
		}

		for _, re := range excludeRes {
			if re.MatchString(rel) {
				return nil
			}
		}

		if IsTestFile(m.Path(rel)) {
			set.Tests = append(set.Tests, m.Path(rel))
		} else {
			set.Sources = append(set.Sources, m.Path(rel))
		}

		return nil
	})
	if err != nil {
		return SourceSet{}, fmt.Errorf("walk %s: %w", root, err)
	}

	return set, nil
}

// ReadFile loads a file from disk and returns its contents.
func (w *LocalSourceWalker) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// IsTestFile classifies a path by naming convention: a test_ basename prefix
// (Python), a _test.py suffix, or a .test. / .spec. infix (TypeScript).
func IsTestFile(path m.Path) bool {
	base := strings.ToLower(filepath.Base(string(path)))

	if strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.py") {
		return true
	}

	return strings.Contains(base, ".test.") || strings.Contains(base, ".spec.")
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		res = append(res, re)
	}

	return res, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(path); err != nil {
		return nil
	}

	gitignore, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}

	return gitignore
}
