package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"diffscope/internal/types"
)

func typescriptGrammar() *grammar {
	lang := sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	g := &grammar{
		name:       "typescript",
		extensions: []string{".ts", ".tsx", ".js", ".jsx", ".mjs"},
		language:   lang,
	}
	g.classify = tsClassify
	g.importBindings = tsImportBindings
	return g
}

func tsClassify(n *sitter.Node, src []byte) (types.NodeKind, string, bool) {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration", "method_definition":
		return types.KindFunctionDef, nameField(n, src), true
	case "variable_declarator":
		// "const handler = () => {...}" is a function definition in
		// everything but syntax.
		if value := n.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "arrow_function", "function_expression", "function":
				return types.KindFunctionDef, nameField(n, src), true
			}
		}
		return 0, "", false
	case "class_declaration", "abstract_class_declaration", "interface_declaration",
		"enum_declaration":
		return types.KindClassDef, nameField(n, src), true
	case "call_expression":
		if callee := calleeName(n.ChildByFieldName("function"), src); callee != "" {
			return types.KindCall, callee, true
		}
		return 0, "", false
	case "identifier", "property_identifier", "type_identifier",
		"shorthand_property_identifier":
		if tsBindsIdentifier(n) {
			return types.KindAssign, textOf(n, src), true
		}
		return types.KindOther, textOf(n, src), true
	}
	return 0, "", false
}

func tsBindsIdentifier(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "variable_declarator":
		return isField(parent, "name", n)
	case "required_parameter", "optional_parameter":
		return fieldContains(parent, "pattern", n)
	case "assignment_expression", "augmented_assignment_expression":
		return fieldContains(parent, "left", n)
	case "for_in_statement":
		return fieldContains(parent, "left", n)
	case "function_declaration", "generator_function_declaration", "method_definition",
		"class_declaration", "abstract_class_declaration", "interface_declaration",
		"enum_declaration":
		return isField(parent, "name", n)
	case "catch_clause":
		return fieldContains(parent, "parameter", n)
	}

	return false
}

func tsImportBindings(n *sitter.Node, src []byte) ([]string, bool) {
	if n.Kind() != "import_statement" {
		return nil, false
	}
	var bindings []string
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == "import_clause" {
			tsCollectImportNames(child, src, &bindings)
		}
	}
	return bindings, true
}

func tsCollectImportNames(n *sitter.Node, src []byte, out *[]string) {
	switch n.Kind() {
	case "import_specifier":
		if alias := n.ChildByFieldName("alias"); alias != nil {
			*out = append(*out, textOf(alias, src))
		} else if name := n.ChildByFieldName("name"); name != nil {
			*out = append(*out, textOf(name, src))
		}
		return
	case "identifier":
		*out = append(*out, textOf(n, src))
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil {
			tsCollectImportNames(child, src, out)
		}
	}
}
