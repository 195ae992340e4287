package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"diffscope/internal/types"
)

// Tree is the normalized syntax tree: an arena of SyntaxNodes owned by
// index, with an explicit node->parent index built during construction.
// Index 0 is always the module root.
type Tree struct {
	Nodes    []types.SyntaxNode
	Parent   []int
	Language string

	lines []string
}

func newTree(root *sitter.Node, src []byte, g *grammar) *Tree {
	t := &Tree{
		Nodes:    []types.SyntaxNode{{Kind: types.KindModule, Span: nodeSpan(root)}},
		Parent:   []int{-1},
		Language: g.name,
		lines:    strings.Split(string(src), "\n"),
	}
	t.walk(root, 0, src, g)
	return t
}

func (t *Tree) walk(n *sitter.Node, parent int, src []byte, g *grammar) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		if bindings, ok := g.importBindings(child, src); ok {
			span := nodeSpan(child)
			for _, binding := range bindings {
				t.add(types.KindImport, binding, span, parent)
			}
			continue
		}

		if kind, name, ok := g.classify(child, src); ok {
			id := t.add(kind, name, nodeSpan(child), parent)
			t.walk(child, id, src, g)
		} else {
			t.walk(child, parent, src, g)
		}
	}
}

func (t *Tree) add(kind types.NodeKind, name string, span types.LineInterval, parent int) int {
	id := len(t.Nodes)
	t.Nodes = append(t.Nodes, types.SyntaxNode{Kind: kind, Name: name, Span: span})
	t.Parent = append(t.Parent, parent)
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	return id
}

// Root returns the arena index of the module node.
func (t *Tree) Root() int { return 0 }

// Slice returns the verbatim source text covered by span, inclusive on
// both ends. Out-of-range lines are clipped.
func (t *Tree) Slice(span types.LineInterval) string {
	start := span.Start
	if start < 1 {
		start = 1
	}
	end := span.End
	if end > len(t.lines) {
		end = len(t.lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(t.lines[start-1:end], "\n")
}

// LineCount returns the number of lines in the source file.
func (t *Tree) LineCount() int { return len(t.lines) }

// QualifiedName returns the node's name prefixed with the names of its
// enclosing definitions, dotted, outermost first.
func (t *Tree) QualifiedName(idx int) string {
	parts := []string{t.Nodes[idx].Name}
	for p := t.Parent[idx]; p > 0; p = t.Parent[p] {
		if t.Nodes[p].Kind.IsDefinition() && t.Nodes[p].Name != "" {
			parts = append([]string{t.Nodes[p].Name}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// WalkSubtree visits idx and all its descendants in source order. The
// visitor returns false to prune descent below a node.
func (t *Tree) WalkSubtree(idx int, visit func(int) bool) {
	if !visit(idx) {
		return
	}
	for _, child := range t.Nodes[idx].Children {
		t.WalkSubtree(child, visit)
	}
}

// InsideDefinition reports whether the node has a definition among its
// proper ancestors.
func (t *Tree) InsideDefinition(idx int) bool {
	for p := t.Parent[idx]; p > 0; p = t.Parent[p] {
		if t.Nodes[p].Kind.IsDefinition() {
			return true
		}
	}
	return false
}
