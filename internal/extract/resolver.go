package extract

import (
	"strings"

	"diffscope/internal/parser"
	"diffscope/internal/types"
)

// Calls returns the call targets found inside the definition's subtree,
// in first-occurrence order, deduplicated. Names are textual; no
// attempt is made to resolve them to their definitions.
func Calls(t *parser.Tree, def int) []string {
	var calls []string
	seen := make(map[string]bool)
	t.WalkSubtree(def, func(idx int) bool {
		node := t.Nodes[idx]
		if node.Kind == types.KindCall && node.Name != "" && !seen[node.Name] {
			seen[node.Name] = true
			calls = append(calls, node.Name)
		}
		return true
	})
	return calls
}

// RelevantImports returns the spans of the file's top-level imports
// referenced by at least one of the given definitions, in source order,
// deduplicated by span. Relevance is a textual heuristic: an import is
// kept when its bound name occurs free in a definition or prefixes a
// call target.
func RelevantImports(t *parser.Tree, defs []int) []types.LineInterval {
	free := make(map[string]bool)
	var calls []string
	for _, def := range defs {
		collectFreeIdentifiers(t, def, free)
		calls = append(calls, Calls(t, def)...)
	}

	var spans []types.LineInterval
	seenSpan := make(map[types.LineInterval]bool)
	for idx, node := range t.Nodes {
		if node.Kind != types.KindImport || node.Name == "" {
			continue
		}
		if t.InsideDefinition(idx) {
			continue
		}
		if !importReferenced(node.Name, free, calls) {
			continue
		}
		if !seenSpan[node.Span] {
			seenSpan[node.Span] = true
			spans = append(spans, node.Span)
		}
	}
	return spans
}

func importReferenced(binding string, free map[string]bool, calls []string) bool {
	if free[binding] {
		return true
	}
	for _, call := range calls {
		if call == binding || strings.HasPrefix(call, binding+".") {
			return true
		}
	}
	return false
}

// collectFreeIdentifiers gathers names referenced but not locally bound
// within the definition's subtree. Shadowing and dynamic access are
// accepted blind spots.
func collectFreeIdentifiers(t *parser.Tree, def int, out map[string]bool) {
	bound := make(map[string]bool)
	referenced := make(map[string]bool)

	t.WalkSubtree(def, func(idx int) bool {
		node := t.Nodes[idx]
		switch node.Kind {
		case types.KindAssign:
			if node.Name != "" {
				bound[node.Name] = true
			}
		case types.KindOther:
			if node.Name != "" {
				referenced[node.Name] = true
			}
		case types.KindCall:
			if base := strings.SplitN(node.Name, ".", 2)[0]; base != "" {
				referenced[base] = true
			}
		case types.KindImport:
			// An import nested inside the definition binds locally.
			if node.Name != "" {
				bound[node.Name] = true
			}
		}
		return true
	})

	for name := range referenced {
		if !bound[name] {
			out[name] = true
		}
	}
}
