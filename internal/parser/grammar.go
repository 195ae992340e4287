package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"diffscope/internal/types"
)

// grammar adapts one tree-sitter language to the normalized node model.
// classify maps a concrete syntax node onto the closed NodeKind set;
// ok=false means the node is structural noise the walker descends
// through without materializing. importBindings reports the local names
// bound by an import-like node; ok=true marks the node as an import
// even when it binds nothing usable.
type grammar struct {
	name       string
	extensions []string
	language   *sitter.Language

	classify       func(n *sitter.Node, src []byte) (types.NodeKind, string, bool)
	importBindings func(n *sitter.Node, src []byte) ([]string, bool)
}

func nodeSpan(n *sitter.Node) types.LineInterval {
	return types.LineInterval{
		Start: int(n.StartPosition().Row) + 1,
		End:   int(n.EndPosition().Row) + 1,
	}
}

func textOf(n *sitter.Node, src []byte) string {
	return strings.TrimSpace(n.Utf8Text(src))
}

// nameField returns the text of the node's "name" field, or "".
func nameField(n *sitter.Node, src []byte) string {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return textOf(nameNode, src)
}

// isField reports whether child occupies the named field of parent.
// Nodes are compared by byte offsets since the binding hands out fresh
// node values on every accessor call.
func isField(parent *sitter.Node, field string, child *sitter.Node) bool {
	f := parent.ChildByFieldName(field)
	return f != nil && f.StartByte() == child.StartByte() && f.EndByte() == child.EndByte()
}

// fieldContains reports whether child sits inside the named field of
// parent (e.g. an identifier inside the left-hand expression list of an
// assignment).
func fieldContains(parent *sitter.Node, field string, child *sitter.Node) bool {
	f := parent.ChildByFieldName(field)
	return f != nil && f.StartByte() <= child.StartByte() && child.EndByte() <= f.EndByte()
}

// calleeName extracts a printable callee for a call node's function
// field. Anonymous or multi-line callees yield "".
func calleeName(fn *sitter.Node, src []byte) string {
	if fn == nil {
		return ""
	}
	text := textOf(fn, src)
	if text == "" || strings.ContainsAny(text, "\n({") {
		return ""
	}
	return text
}
