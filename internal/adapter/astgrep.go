// Package adapter contains infrastructure adapters for the testpolicy CLI:
// the structural matching engine, git, the filesystem walker and config
// loading. It intentionally hides process execution and disk access so the
// domain layer can be tested without either.
package adapter

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

//go:embed rules/*.yml
var policyRules embed.FS

// ScanMatch mirrors one record of ast-grep's JSON output.
type ScanMatch struct {
	File   string `json:"file"`
	RuleID string `json:"ruleId"`
	Text   string `json:"text"`
	Range  struct {
		Start struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"start"`
	} `json:"range"`
	MetaVariables struct {
		Single map[string]struct {
			Text string `json:"text"`
		} `json:"single"`
	} `json:"metaVariables"`
}

// StructuralMatcher is the pattern-matching oracle behind anti-pattern rules
// and symbol/test discovery. An unavailable engine or empty engine output
// means zero matches, never an error.
type StructuralMatcher interface {
	Available() bool
	ScanRules(ctx context.Context, root m.Path, paths []m.Path) ([]m.Violation, error)
	CollectSymbols(ctx context.Context, root, file m.Path) ([]m.Symbol, error)
	CollectTests(ctx context.Context, root, file m.Path) ([]m.TestCase, error)
	Rules() map[string]m.RuleInfo
}

// AstGrepMatcher runs the ast-grep binary with embedded YAML rules.
type AstGrepMatcher struct {
	binary string
	rules  map[string]m.RuleInfo
}

// NewAstGrepMatcher locates the engine binary and loads rule metadata from
// the embedded rule files. A missing binary is not an error; the matcher
// reports Available() == false and every query returns zero matches.
func NewAstGrepMatcher() *AstGrepMatcher {
	rules, err := LoadRuleInfo()
	if err != nil {
		rules = map[string]m.RuleInfo{}
	}

	return &AstGrepMatcher{binary: findAstGrepBinary(), rules: rules}
}

// findAstGrepBinary checks for "ast-grep" first, then "sg".
// Linux has a system "sg" command (setgroups), so ast-grep wins.
func findAstGrepBinary() string {
	if _, err := exec.LookPath("ast-grep"); err == nil {
		return "ast-grep"
	}

	if _, err := exec.LookPath("sg"); err == nil {
		return "sg"
	}

	return ""
}

// Available reports whether the engine binary was found.
func (a *AstGrepMatcher) Available() bool {
	return a.binary != ""
}

// Rules returns the metadata of the embedded anti-pattern rules, keyed by id.
func (a *AstGrepMatcher) Rules() map[string]m.RuleInfo {
	return a.rules
}

// ScanRules runs the embedded anti-pattern rules over the given files and
// converts the matches to violations. The engine runs with its working
// directory at root and paths are passed through verbatim, so root-relative
// inputs come back root-relative on each violation, matching the paths git
// reports in diffs.
func (a *AstGrepMatcher) ScanRules(ctx context.Context, root m.Path, paths []m.Path) ([]m.Violation, error) {
	if !a.Available() || len(paths) == 0 {
		return nil, nil
	}

	inline, err := inlineEmbeddedRules()
	if err != nil {
		return nil, err
	}

	matches, err := a.run(ctx, root, inline, paths)
	if err != nil {
		return nil, err
	}

	violations := make([]m.Violation, 0, len(matches))

	for _, match := range matches {
		message := match.Text
		if info, ok := a.rules[match.RuleID]; ok {
			message = info.Message
		}

		violations = append(violations, m.Violation{
			File:        m.Path(filepath.ToSlash(match.File)),
			Line:        match.Range.Start.Line,
			Column:      match.Range.Start.Column,
			RuleID:      match.RuleID,
			Message:     message,
			Category:    m.CategoryPattern,
			MatchedText: match.Text,
		})
	}

	return violations, nil
}

// CollectSymbols enumerates declarations in a single implementation file
// using the discovery shapes for the file's language.
func (a *AstGrepMatcher) CollectSymbols(ctx context.Context, root, file m.Path) ([]m.Symbol, error) {
	shapes := symbolShapesFor(file)
	if !a.Available() || len(shapes) == 0 {
		return nil, nil
	}

	matches, err := a.run(ctx, root, inlineShapes(shapes), []m.Path{file})
	if err != nil {
		return nil, err
	}

	var symbols []m.Symbol

	for _, match := range matches {
		name := match.MetaVariables.Single["NAME"].Text
		if name == "" {
			continue
		}

		symbols = append(symbols, m.Symbol{
			RawName:    name,
			Kind:       refineKind(shapeKind(match.RuleID), match.Text),
			SourceFile: file,
		})
	}

	return symbols, nil
}

// CollectTests enumerates test cases in a single test file: registration
// calls with a string-literal first argument for TypeScript, test-prefixed
// declarations for Python.
func (a *AstGrepMatcher) CollectTests(ctx context.Context, root, file m.Path) ([]m.TestCase, error) {
	shapes := testShapesFor(file)
	if !a.Available() || len(shapes) == 0 {
		return nil, nil
	}

	matches, err := a.run(ctx, root, inlineShapes(shapes), []m.Path{file})
	if err != nil {
		return nil, err
	}

	var tests []m.TestCase

	for _, match := range matches {
		name, ok := testCaseName(match)
		if !ok {
			continue
		}

		tests = append(tests, m.TestCase{
			RawName:    name,
			SourceFile: file,
			Line:       match.Range.Start.Line,
			Column:     match.Range.Start.Column,
		})
	}

	return tests, nil
}

// run invokes "ast-grep scan --inline-rules ... --json" on the given paths.
// Empty output means "no matches" regardless of exit status, as does a
// non-zero exit with output that is not a JSON array (the engine exits
// non-zero when findings exist too, so exit status alone is meaningless
// here).
func (a *AstGrepMatcher) run(ctx context.Context, root m.Path, inlineRules string, paths []m.Path) ([]ScanMatch, error) {
	args := []string{"scan", "--inline-rules", inlineRules, "--json"}
	for _, p := range paths {
		args = append(args, string(p))
	}

	cmd := exec.CommandContext(ctx, a.binary, args...)
	cmd.Dir = string(root)

	out, err := cmd.Output()

	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		// no output means no matches, whatever the exit status
		return nil, nil
	}

	if err != nil && !strings.HasPrefix(trimmed, "[") {
		return nil, nil
	}

	var matches []ScanMatch
	if err := json.Unmarshal(out, &matches); err != nil {
		return nil, fmt.Errorf("decode ast-grep output: %w", err)
	}

	return matches, nil
}

// inlineEmbeddedRules joins the embedded anti-pattern rule files into one
// inline-rules document separated by "---".
func inlineEmbeddedRules() (string, error) {
	entries, err := policyRules.ReadDir("rules")
	if err != nil {
		return "", fmt.Errorf("read embedded rules: %w", err)
	}

	var docs []string

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		content, err := policyRules.ReadFile("rules/" + entry.Name())
		if err != nil {
			return "", fmt.Errorf("read embedded rule %s: %w", entry.Name(), err)
		}

		docs = append(docs, string(content))
	}

	return strings.Join(docs, "\n---\n"), nil
}

// testCaseName extracts the test-case name from a discovery match. For
// registration calls the NAME metavariable must be a string literal; its
// surrounding backticks are trimmed here while single and double quotes are
// left for the segmenter. For prefix-named declarations the NAME is the
// declaration identifier and must carry the marker prefix.
func testCaseName(match ScanMatch) (string, bool) {
	name := match.MetaVariables.Single["NAME"].Text
	if name == "" {
		return "", false
	}

	if strings.HasPrefix(match.RuleID, "discover-call-") {
		if !isStringLiteral(name) {
			return "", false
		}

		return strings.Trim(name, "`"), true
	}

	if !strings.HasPrefix(strings.ToLower(name), "test") {
		return "", false
	}

	return name, true
}

func isStringLiteral(text string) bool {
	if len(text) < 2 {
		return false
	}

	switch text[0] {
	case '\'', '"', '`':
		return text[len(text)-1] == text[0]
	}

	return false
}
