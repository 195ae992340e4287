package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"diffscope/internal/types"
)

func pythonGrammar() *grammar {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	g := &grammar{
		name:       "python",
		extensions: []string{".py", ".pyw"},
		language:   lang,
	}

	g.classify = func(n *sitter.Node, src []byte) (types.NodeKind, string, bool) {
		switch n.Kind() {
		case "function_definition":
			return types.KindFunctionDef, nameField(n, src), true
		case "class_definition":
			return types.KindClassDef, nameField(n, src), true
		case "call":
			if callee := calleeName(n.ChildByFieldName("function"), src); callee != "" {
				return types.KindCall, callee, true
			}
			return 0, "", false
		case "identifier":
			if pythonBindsIdentifier(n) {
				return types.KindAssign, textOf(n, src), true
			}
			return types.KindOther, textOf(n, src), true
		}
		return 0, "", false
	}

	g.importBindings = func(n *sitter.Node, src []byte) ([]string, bool) {
		switch n.Kind() {
		case "import_statement":
			// "import os.path" binds "os"; "import numpy as np" binds "np".
			var bindings []string
			for i := uint(0); i < n.ChildCount(); i++ {
				child := n.Child(i)
				if child == nil {
					continue
				}
				switch child.Kind() {
				case "dotted_name":
					name := textOf(child, src)
					bindings = append(bindings, strings.SplitN(name, ".", 2)[0])
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						bindings = append(bindings, textOf(alias, src))
					}
				}
			}
			return bindings, true
		case "import_from_statement", "future_import_statement":
			moduleName := n.ChildByFieldName("module_name")
			var bindings []string
			for i := uint(0); i < n.ChildCount(); i++ {
				child := n.Child(i)
				if child == nil {
					continue
				}
				if moduleName != nil && child.StartByte() == moduleName.StartByte() {
					continue
				}
				switch child.Kind() {
				case "dotted_name":
					bindings = append(bindings, textOf(child, src))
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						bindings = append(bindings, textOf(alias, src))
					}
				}
			}
			return bindings, true
		}
		return nil, false
	}

	return g
}

func pythonBindsIdentifier(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "assignment", "augmented_assignment":
		return fieldContains(parent, "left", n)
	case "pattern_list", "tuple_pattern", "list_pattern":
		return true
	case "parameters", "lambda_parameters":
		return true
	case "default_parameter", "typed_default_parameter":
		return isField(parent, "name", n)
	case "typed_parameter":
		// In "x: int" the declared name leads the parameter.
		return n.StartByte() == parent.StartByte()
	case "for_statement", "for_in_clause":
		return fieldContains(parent, "left", n)
	case "function_definition", "class_definition":
		return isField(parent, "name", n)
	case "named_expression":
		return isField(parent, "name", n)
	case "as_pattern_target":
		return true
	case "global_statement", "nonlocal_statement":
		return true
	}

	return false
}
