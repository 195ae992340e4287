package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"diffscope/internal/types"
)

func javaGrammar() *grammar {
	lang := sitter.NewLanguage(tree_sitter_java.Language())
	g := &grammar{
		name:       "java",
		extensions: []string{".java"},
		language:   lang,
	}

	g.classify = func(n *sitter.Node, src []byte) (types.NodeKind, string, bool) {
		switch n.Kind() {
		case "method_declaration", "constructor_declaration":
			return types.KindFunctionDef, nameField(n, src), true
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			return types.KindClassDef, nameField(n, src), true
		case "method_invocation":
			name := nameField(n, src)
			if name == "" {
				return 0, "", false
			}
			if object := n.ChildByFieldName("object"); object != nil {
				if objText := calleeName(object, src); objText != "" {
					name = objText + "." + name
				}
			}
			return types.KindCall, name, true
		case "object_creation_expression":
			if typeNode := n.ChildByFieldName("type"); typeNode != nil {
				return types.KindCall, textOf(typeNode, src), true
			}
			return 0, "", false
		case "identifier", "type_identifier":
			if javaBindsIdentifier(n) {
				return types.KindAssign, textOf(n, src), true
			}
			return types.KindOther, textOf(n, src), true
		}
		return 0, "", false
	}

	g.importBindings = func(n *sitter.Node, src []byte) ([]string, bool) {
		if n.Kind() != "import_declaration" {
			return nil, false
		}
		// Wildcard imports bind no single name the resolver can match.
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child != nil && child.Kind() == "asterisk" {
				return nil, true
			}
		}
		text := strings.TrimSuffix(textOf(n, src), ";")
		text = strings.TrimSpace(strings.TrimPrefix(text, "import"))
		text = strings.TrimSpace(strings.TrimPrefix(text, "static"))
		if text == "" {
			return nil, true
		}
		segments := strings.Split(text, ".")
		return []string{segments[len(segments)-1]}, true
	}

	return g
}

func javaBindsIdentifier(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "variable_declarator", "formal_parameter", "catch_formal_parameter",
		"enhanced_for_statement", "record_pattern_component":
		return isField(parent, "name", n)
	case "assignment_expression":
		return fieldContains(parent, "left", n)
	case "method_declaration", "constructor_declaration", "class_declaration",
		"interface_declaration", "enum_declaration", "record_declaration":
		return isField(parent, "name", n)
	}

	return false
}
