package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"diffscope/internal/types"
)

func goGrammar() *grammar {
	lang := sitter.NewLanguage(tree_sitter_go.Language())
	g := &grammar{
		name:       "go",
		extensions: []string{".go"},
		language:   lang,
	}

	g.classify = func(n *sitter.Node, src []byte) (types.NodeKind, string, bool) {
		switch n.Kind() {
		case "function_declaration":
			return types.KindFunctionDef, nameField(n, src), true
		case "method_declaration":
			name := nameField(n, src)
			if recv := goReceiverType(n, src); recv != "" {
				name = recv + "." + name
			}
			return types.KindFunctionDef, name, true
		case "type_spec":
			return types.KindClassDef, nameField(n, src), true
		case "call_expression":
			if callee := calleeName(n.ChildByFieldName("function"), src); callee != "" {
				return types.KindCall, callee, true
			}
			return 0, "", false
		case "identifier", "field_identifier", "type_identifier", "package_identifier":
			if goBindsIdentifier(n) {
				return types.KindAssign, textOf(n, src), true
			}
			return types.KindOther, textOf(n, src), true
		}
		return 0, "", false
	}

	g.importBindings = func(n *sitter.Node, src []byte) ([]string, bool) {
		if n.Kind() != "import_spec" {
			return nil, false
		}
		if alias := n.ChildByFieldName("name"); alias != nil {
			name := textOf(alias, src)
			if name == "_" || name == "." {
				return nil, true
			}
			return []string{name}, true
		}
		path := strings.Trim(textOf(n.ChildByFieldName("path"), src), "`\"")
		if path == "" {
			return nil, true
		}
		segments := strings.Split(path, "/")
		return []string{segments[len(segments)-1]}, true
	}

	return g
}

// goReceiverType extracts the bare receiver type name of a method
// declaration, without pointer or generic decoration.
func goReceiverType(n *sitter.Node, src []byte) string {
	recv := n.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	for i := uint(0); i < recv.ChildCount(); i++ {
		child := recv.Child(i)
		if child == nil || child.Kind() != "parameter_declaration" {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			return ""
		}
		text := strings.TrimPrefix(textOf(typeNode, src), "*")
		if idx := strings.IndexAny(text, "["); idx > 0 {
			text = text[:idx]
		}
		return text
	}
	return ""
}

// goBindsIdentifier reports whether the identifier introduces a binding
// rather than referencing one.
func goBindsIdentifier(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "var_spec", "const_spec":
		// Direct identifier children of a spec are the declared names;
		// initializer identifiers sit under an expression_list.
		return n.Kind() == "identifier"
	case "parameter_declaration", "variadic_parameter_declaration":
		return isField(parent, "name", n)
	case "function_declaration", "method_declaration", "type_spec":
		return isField(parent, "name", n)
	case "expression_list":
		grandparent := parent.Parent()
		if grandparent == nil {
			return false
		}
		switch grandparent.Kind() {
		case "short_var_declaration", "assignment_statement", "range_clause":
			return fieldContains(grandparent, "left", n)
		}
	}

	return false
}
