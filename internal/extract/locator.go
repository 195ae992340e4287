package extract

import (
	"fmt"

	"diffscope/internal/parser"
	"diffscope/internal/types"
)

// Locate returns the arena indices of the definitions selected for the
// changed intervals, in ascending span-start order, deduplicated.
//
// Selection policy: the innermost definition containing a change wins.
// An enclosing definition is selected instead when changed lines fall
// on its own body outside every nested definition (e.g. a class
// attribute), and once a definition is selected its subtree is not
// searched further.
func Locate(t *parser.Tree, intervals []types.LineInterval) []int {
	var selected []int
	seen := make(map[string]bool)

	var visit func(idx int)
	visit = func(idx int) {
		node := t.Nodes[idx]

		if !node.Kind.IsDefinition() {
			for _, child := range node.Children {
				visit(child)
			}
			return
		}

		overlapping := overlappingIntervals(node.Span, intervals)
		if len(overlapping) == 0 {
			return
		}

		nested := nestedDefinitions(t, idx)
		if touchesOwnBody(t, node.Span, overlapping, nested) {
			key := fmt.Sprintf("%s:%d-%d", node.Name, node.Span.Start, node.Span.End)
			if !seen[key] {
				seen[key] = true
				selected = append(selected, idx)
			}
			return
		}

		for _, child := range nested {
			visit(child)
		}
	}

	visit(t.Root())
	return selected
}

func overlappingIntervals(span types.LineInterval, intervals []types.LineInterval) []types.LineInterval {
	var overlapping []types.LineInterval
	for _, interval := range intervals {
		if span.Overlaps(interval) {
			overlapping = append(overlapping, interval)
		}
	}
	return overlapping
}

// nestedDefinitions returns the definitions directly nested in idx,
// without crossing into deeper definitions.
func nestedDefinitions(t *parser.Tree, idx int) []int {
	var defs []int
	var walk func(int)
	walk = func(i int) {
		for _, child := range t.Nodes[i].Children {
			if t.Nodes[child].Kind.IsDefinition() {
				defs = append(defs, child)
				continue
			}
			walk(child)
		}
	}
	walk(idx)
	return defs
}

// touchesOwnBody reports whether any changed line inside span lies
// outside every nested definition, i.e. the change hits the enclosing
// definition's own body.
func touchesOwnBody(t *parser.Tree, span types.LineInterval, intervals []types.LineInterval, nested []int) bool {
	for _, interval := range intervals {
		lo := max(interval.Start, span.Start)
		hi := min(interval.End, span.End)
		for line := lo; line <= hi; line++ {
			covered := false
			for _, def := range nested {
				if t.Nodes[def].Span.Contains(line) {
					covered = true
					break
				}
			}
			if !covered {
				return true
			}
		}
	}
	return false
}
