package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"diffscope/internal/types"
)

func cGrammar() *grammar {
	lang := sitter.NewLanguage(tree_sitter_c.Language())
	g := &grammar{
		name:       "c",
		extensions: []string{".c", ".h"},
		language:   lang,
	}

	g.classify = func(n *sitter.Node, src []byte) (types.NodeKind, string, bool) {
		switch n.Kind() {
		case "function_definition":
			return types.KindFunctionDef, cDeclaratorName(n, src), true
		case "struct_specifier", "union_specifier", "enum_specifier":
			// Only named definitions with a body; bare references like
			// "struct foo *p" stay transparent.
			if n.ChildByFieldName("body") == nil {
				return 0, "", false
			}
			name := nameField(n, src)
			if name == "" {
				return 0, "", false
			}
			return types.KindClassDef, name, true
		case "type_definition":
			if declarator := n.ChildByFieldName("declarator"); declarator != nil {
				return types.KindClassDef, textOf(declarator, src), true
			}
			return 0, "", false
		case "call_expression":
			if callee := calleeName(n.ChildByFieldName("function"), src); callee != "" {
				return types.KindCall, callee, true
			}
			return 0, "", false
		case "identifier", "field_identifier", "type_identifier":
			if cBindsIdentifier(n) {
				return types.KindAssign, textOf(n, src), true
			}
			return types.KindOther, textOf(n, src), true
		}
		return 0, "", false
	}

	g.importBindings = func(n *sitter.Node, src []byte) ([]string, bool) {
		if n.Kind() != "preproc_include" {
			return nil, false
		}
		path := n.ChildByFieldName("path")
		if path == nil {
			return nil, true
		}
		header := strings.Trim(textOf(path, src), `<>"`)
		if header == "" {
			return nil, true
		}
		base := filepath.Base(header)
		return []string{strings.TrimSuffix(base, filepath.Ext(base))}, true
	}

	return g
}

// cDeclaratorName unwraps nested declarators (pointers, functions) to
// the declared identifier.
func cDeclaratorName(n *sitter.Node, src []byte) string {
	d := n.ChildByFieldName("declarator")
	for d != nil {
		switch d.Kind() {
		case "identifier", "field_identifier", "type_identifier":
			return textOf(d, src)
		}
		d = d.ChildByFieldName("declarator")
	}
	return ""
}

func cBindsIdentifier(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "init_declarator", "declaration", "parameter_declaration", "function_declarator":
		return fieldContains(parent, "declarator", n)
	case "assignment_expression":
		return fieldContains(parent, "left", n)
	case "preproc_def", "preproc_function_def":
		return isField(parent, "name", n)
	}

	return false
}
