// Package extractor parses one Python source file into a tree-sitter syntax
// tree and collects the set of imported module names. Parsing is purely
// structural; nothing in the file is ever executed or evaluated.
package extractor

import (
	"bytes"
	"context"
	"os"
	"sync"

	forestpython "github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/ethanolivertroy/porter/internal/models"
)

// DefaultMaxFileSize bounds memory and parse time on pathological input.
// Files above it are rejected before any content read.
const DefaultMaxFileSize = 10 * 1024 * 1024

var pythonLanguage = sitter.NewLanguage(forestpython.GetLanguage())

// Extractor extracts import statements from Python files
type Extractor struct {
	// MaxFileSize is the hard ceiling in bytes; zero means DefaultMaxFileSize
	MaxFileSize int64

	parserPool sync.Pool
}

// New creates an Extractor with the default size ceiling
func New() *Extractor {
	return &Extractor{
		MaxFileSize: DefaultMaxFileSize,
		parserPool: sync.Pool{
			New: func() any {
				p := sitter.NewParser()
				p.SetLanguage(pythonLanguage)
				return p
			},
		},
	}
}

// Extract returns the set of dotted module names imported by the file at
// path. Every failure path yields a typed error: *AccessError,
// *CapacityError, *EncodingError, *SyntaxError, or the ErrEmptyFile
// sentinel for a zero-byte file (a warning, paired with an empty set).
func (e *Extractor) Extract(path string) (models.ImportSet, error) {
	limit := e.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}
	if info.Size() > limit {
		return nil, &CapacityError{Path: path, Size: info.Size(), Limit: limit}
	}
	if info.Size() == 0 {
		return models.NewImportSet(), ErrEmptyFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}

	text, _, err := decodeText(data)
	if err != nil {
		return nil, &EncodingError{Path: path}
	}

	return e.parse(path, text)
}

// parse builds the syntax tree and walks it for import statements
func (e *Extractor) parse(path string, src []byte) (models.ImportSet, error) {
	// CPython rejects a stray U+FEFF that survives plain UTF-8 decoding;
	// tree-sitter would silently skip it, so the check is explicit here.
	if bytes.HasPrefix(src, utf8BOM) {
		return nil, &SyntaxError{Path: path, Line: 1, Msg: "invalid non-printable character U+FEFF"}
	}

	parser, ok := e.parserPool.Get().(*sitter.Parser)
	if !ok {
		return nil, &SyntaxError{Path: path, Line: 1, Msg: "parser unavailable"}
	}
	defer e.parserPool.Put(parser)

	tree, err := parser.ParseString(context.Background(), nil, src)
	if err != nil {
		return nil, &SyntaxError{Path: path, Line: 1, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, &SyntaxError{Path: path, Line: 1, Msg: "no parse tree produced"}
	}
	if root.HasError() {
		line := uint(1)
		if bad, found := firstBadNode(root); found {
			line = uint(bad.StartPoint().Row) + 1
		}
		return nil, &SyntaxError{Path: path, Line: line, Msg: "invalid syntax"}
	}

	imports := models.NewImportSet()
	collectImports(root, src, imports)
	return imports, nil
}

// collectImports walks the tree and records the module name of every import
// form. Imports can appear anywhere (inside functions, conditionals, try
// blocks), so the whole tree is visited.
func collectImports(n sitter.Node, src []byte, out models.ImportSet) {
	switch n.Type() {
	case "import_statement":
		// import a.b, c as d  ->  children are dotted_name / aliased_import
		for i := range n.NamedChildCount() {
			child := n.NamedChild(i)
			switch child.Type() {
			case "dotted_name":
				addName(child, src, out)
			case "aliased_import":
				if name := child.ChildByFieldName("name"); !name.IsNull() {
					addName(name, src, out)
				}
			}
		}
	case "import_from_statement":
		// from X import ...  ->  X is a dotted_name or relative_import;
		// relative imports keep their leading-dot text (".utils", "..").
		if mod := n.ChildByFieldName("module_name"); !mod.IsNull() {
			addName(mod, src, out)
		}
	case "future_import_statement":
		out.Add("__future__")
	}

	for i := range n.NamedChildCount() {
		collectImports(n.NamedChild(i), src, out)
	}
}

func addName(n sitter.Node, src []byte, out models.ImportSet) {
	if name := nodeText(n, src); name != "" {
		out.Add(name)
	}
}

// nodeText slices the node's span out of the source bytes
func nodeText(n sitter.Node, src []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(src)) || start > end {
		return ""
	}
	return string(src[start:end])
}

// firstBadNode locates the first ERROR or missing node for diagnostics.
// It scans all children, not just named ones: missing nodes are zero-width
// and unnamed.
func firstBadNode(n sitter.Node) (sitter.Node, bool) {
	if n.IsError() || n.IsMissing() {
		return n, true
	}
	for i := range n.ChildCount() {
		if bad, found := firstBadNode(n.Child(i)); found {
			return bad, true
		}
	}
	return sitter.Node{}, false
}
