package domain

import (
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

const (
	// wordSeparator delimits words in identifiers and normalized test names.
	wordSeparator = "_"

	// minSymbolLen is the shortest normalized symbol worth matching.
	// Anything shorter collides with ordinary English words in test names.
	minSymbolLen = 4

	// testMarkerPrefix marks test declarations. Symbols carrying it are test
	// helpers and are not checked against themselves.
	testMarkerPrefix = "test"
)

// NormalizeSymbol lowercases a declared name and removes every word
// separator, producing the lookup key the reference matcher compares
// against. calculate_total and calculateTotal both normalize to
// calculatetotal.
func NormalizeSymbol(raw string) string {
	return strings.ReplaceAll(strings.ToLower(raw), wordSeparator, "")
}

// SymbolTable holds the deduplicated normalized symbols of one scan, each
// mapped back to the first declaration it was seen at. The table is built
// once per scan and read-only afterwards.
type SymbolTable struct {
	entries map[string]m.Symbol
}

// NewSymbolTable builds the table from raw declarations: lowercase,
// separators removed entirely, names normalizing below the minimum length
// discarded, test-prefixed names discarded, duplicates collapsed.
func NewSymbolTable(symbols []m.Symbol) SymbolTable {
	entries := make(map[string]m.Symbol, len(symbols))

	for _, sym := range symbols {
		if strings.HasPrefix(strings.ToLower(sym.RawName), testMarkerPrefix) {
			continue
		}

		key := NormalizeSymbol(sym.RawName)
		if len(key) < minSymbolLen {
			continue
		}

		if _, ok := entries[key]; !ok {
			entries[key] = sym
		}
	}

	return SymbolTable{entries: entries}
}

// Len returns the number of distinct normalized symbols.
func (t SymbolTable) Len() int {
	return len(t.entries)
}

// Lookup returns the declaration behind a normalized key.
func (t SymbolTable) Lookup(key string) (m.Symbol, bool) {
	sym, ok := t.entries[key]
	return sym, ok
}
