// Package model defines the data structures for policy scanning.
package model

// Path represents a file system path. Paths that flow through the change
// filter are repository-root relative with forward slashes and no leading
// "./", matching the paths git reports in diffs.
type Path string

// SymbolKind represents the declaration shape a symbol was found in.
type SymbolKind string

const (
	// SymbolFunction represents free function declarations, including
	// arrow functions assigned to a name.
	SymbolFunction SymbolKind = "function"
	// SymbolMethod represents functions declared on a receiver/instance.
	SymbolMethod SymbolKind = "method"
	// SymbolClass represents class or type declarations.
	SymbolClass SymbolKind = "class"
)

// Symbol is a declared identifier found in implementation code. Symbols live
// for the duration of a single scan; nothing is persisted across runs.
type Symbol struct {
	RawName    string     `json:"raw_name"`
	Kind       SymbolKind `json:"kind"`
	SourceFile Path       `json:"source_file"`
}

// TestCase is a discovered test: either a declaration whose name carries the
// test marker prefix, or a registration call whose first argument is a string
// literal. RawName keeps the literal's quote characters; segmenting strips
// them. Line and Column are 0-based, as reported by the matching engine.
type TestCase struct {
	RawName    string `json:"raw_name"`
	SourceFile Path   `json:"source_file"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
}
