package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	m "github.com/graybeam/testpolicy/internal/model"
)

// discoveryShape is one syntactic shape the engine searches for. The pattern
// must bind the declaration or literal name to $NAME.
type discoveryShape struct {
	id       string
	language string
	kind     m.SymbolKind
	pattern  string
}

// tsSymbolShapes cover the TypeScript declaration forms the symbol table is
// built from: free functions with and without a return annotation, classes,
// and named arrow functions with and without annotation or async marker.
var tsSymbolShapes = []discoveryShape{
	{id: "discover-ts-function", language: "typescript", kind: m.SymbolFunction,
		pattern: "function $NAME($$$PARAMS) { $$$BODY }"},
	{id: "discover-ts-function-ret", language: "typescript", kind: m.SymbolFunction,
		pattern: "function $NAME($$$PARAMS): $RET { $$$BODY }"},
	{id: "discover-ts-class", language: "typescript", kind: m.SymbolClass,
		pattern: "class $NAME { $$$BODY }"},
	{id: "discover-ts-arrow", language: "typescript", kind: m.SymbolFunction,
		pattern: "const $NAME = ($$$PARAMS) => $BODY"},
	{id: "discover-ts-arrow-ret", language: "typescript", kind: m.SymbolFunction,
		pattern: "const $NAME = ($$$PARAMS): $RET => $BODY"},
	{id: "discover-ts-arrow-async", language: "typescript", kind: m.SymbolFunction,
		pattern: "const $NAME = async ($$$PARAMS) => $BODY"},
}

var pySymbolShapes = []discoveryShape{
	{id: "discover-py-function", language: "python", kind: m.SymbolFunction,
		pattern: "def $NAME($$$PARAMS):\n  $$$BODY"},
	{id: "discover-py-class", language: "python", kind: m.SymbolClass,
		pattern: "class $NAME:\n  $$$BODY"},
	{id: "discover-py-class-bases", language: "python", kind: m.SymbolClass,
		pattern: "class $NAME($$$BASES):\n  $$$BODY"},
}

// tsTestShapes find registration calls; the string-literal constraint on the
// first argument is enforced after matching.
var tsTestShapes = []discoveryShape{
	{id: "discover-call-it", language: "typescript", pattern: "it($NAME, $$$REST)"},
	{id: "discover-call-test", language: "typescript", pattern: "test($NAME, $$$REST)"},
}

// pyTestShapes reuse the def shape; the marker-prefix constraint on the name
// is enforced after matching.
var pyTestShapes = []discoveryShape{
	{id: "discover-py-test-def", language: "python", pattern: "def $NAME($$$PARAMS):\n  $$$BODY"},
}

func symbolShapesFor(file m.Path) []discoveryShape {
	switch strings.ToLower(filepath.Ext(string(file))) {
	case ".ts", ".tsx":
		return tsSymbolShapes
	case ".py":
		return pySymbolShapes
	}

	return nil
}

func testShapesFor(file m.Path) []discoveryShape {
	switch strings.ToLower(filepath.Ext(string(file))) {
	case ".ts", ".tsx":
		return tsTestShapes
	case ".py":
		return pyTestShapes
	}

	return nil
}

// inlineShapes renders shapes as an inline-rules document for one engine
// invocation, so discovery never spawns one process per shape.
func inlineShapes(shapes []discoveryShape) string {
	docs := make([]string, 0, len(shapes))

	for _, shape := range shapes {
		pattern := shape.pattern
		if strings.Contains(pattern, "\n") {
			pattern = "|\n    " + strings.ReplaceAll(pattern, "\n", "\n    ")
		}

		docs = append(docs, fmt.Sprintf("id: %s\nlanguage: %s\nrule:\n  pattern: %s\n", shape.id, shape.language, pattern))
	}

	return strings.Join(docs, "---\n")
}

// shapeKind maps a discovery rule id back to the symbol kind of its shape.
func shapeKind(ruleID string) m.SymbolKind {
	for _, shapes := range [][]discoveryShape{tsSymbolShapes, pySymbolShapes} {
		for _, shape := range shapes {
			if shape.id == ruleID {
				return shape.kind
			}
		}
	}

	return m.SymbolFunction
}

// refineKind upgrades Python functions whose first parameter is self to
// methods. The shape patterns cannot distinguish the two.
func refineKind(kind m.SymbolKind, matchText string) m.SymbolKind {
	if kind != m.SymbolFunction {
		return kind
	}

	head := matchText
	if i := strings.IndexByte(head, ')'); i >= 0 {
		head = head[:i]
	}

	if strings.Contains(head, "(self") {
		return m.SymbolMethod
	}

	return kind
}
