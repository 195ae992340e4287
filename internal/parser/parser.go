package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// UnsupportedLanguageError is returned when no grammar is registered
// for a file's extension.
type UnsupportedLanguageError struct {
	Path string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("no parser available for %s", e.Path)
}

// ParseError is returned when the source is not syntactically valid.
// Line and Column point at the first error region, 1-based.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: syntax error at line %d, column %d", e.Path, e.Line, e.Column)
}

// Registry holds one grammar and parser pool per supported language,
// keyed by file extension.
type Registry struct {
	grammars map[string]*grammar
	pools    map[string]*Pool
}

func NewRegistry() *Registry {
	r := &Registry{
		grammars: make(map[string]*grammar),
		pools:    make(map[string]*Pool),
	}

	for _, g := range []*grammar{
		goGrammar(),
		pythonGrammar(),
		javaGrammar(),
		typescriptGrammar(),
		cGrammar(),
	} {
		r.register(g)
	}

	return r
}

func (r *Registry) register(g *grammar) {
	for _, ext := range g.extensions {
		r.grammars[ext] = g
	}
	r.pools[g.name] = NewPool(g.language)
}

func (r *Registry) grammarFor(path string) *grammar {
	ext := strings.ToLower(filepath.Ext(path))
	return r.grammars[ext]
}

// Supported reports whether a grammar is registered for the file.
func (r *Registry) Supported(path string) bool {
	return r.grammarFor(path) != nil
}

// Language returns the registered language name for the file, or "".
func (r *Registry) Language(path string) string {
	if g := r.grammarFor(path); g != nil {
		return g.name
	}
	return ""
}

// Languages returns the distinct registered language names.
func (r *Registry) Languages() []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range r.grammars {
		if !seen[g.name] {
			seen[g.name] = true
			names = append(names, g.name)
		}
	}
	return names
}

// Parse builds the normalized syntax tree for the file's full content.
// It returns *UnsupportedLanguageError when no grammar matches the
// extension and *ParseError when the content is syntactically invalid.
func (r *Registry) Parse(path string, content []byte) (*Tree, error) {
	g := r.grammarFor(path)
	if g == nil {
		return nil, &UnsupportedLanguageError{Path: path}
	}

	pool := r.pools[g.name]
	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Line: 1, Column: 1}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line, column := firstErrorPosition(root)
		return nil, &ParseError{Path: path, Line: line, Column: column}
	}

	return newTree(root, content, g), nil
}

// firstErrorPosition descends to the deepest subtree still carrying a
// parse error and returns its 1-based start position.
func firstErrorPosition(n *sitter.Node) (int, int) {
	for {
		var next *sitter.Node
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child != nil && child.HasError() {
				next = child
				break
			}
		}
		if next == nil {
			pos := n.StartPosition()
			return int(pos.Row) + 1, int(pos.Column) + 1
		}
		n = next
	}
}
