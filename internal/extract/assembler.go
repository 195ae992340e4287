package extract

import (
	"fmt"
	"strings"

	"diffscope/internal/diffparse"
	"diffscope/internal/parser"
	"diffscope/internal/types"
)

// Assemble renders the bundle entry for one file: relevant imports
// first, then each selected definition's verbatim source in span order.
// When no definition overlaps the changed lines, the overlapping
// top-level statements are emitted verbatim instead so the change still
// reaches the reviewer.
func Assemble(path string, t *parser.Tree, intervals []types.LineInterval, selected []int) types.FileContext {
	fc := types.FileContext{Path: path}

	if len(selected) == 0 {
		fc.TopLevel = topLevelSlices(t, intervals)
		return fc
	}

	for _, span := range RelevantImports(t, selected) {
		fc.ImportLines = append(fc.ImportLines, t.Slice(span))
	}

	for _, def := range selected {
		node := t.Nodes[def]
		fc.Definitions = append(fc.Definitions, types.DefinitionExtract{
			Name:   t.QualifiedName(def),
			Kind:   node.Kind,
			Span:   node.Span,
			Source: t.Slice(node.Span),
			Calls:  Calls(t, def),
		})
	}

	return fc
}

// topLevelSlices extracts the verbatim text of top-level statements
// overlapping the intervals. If the change hit nothing the tree tracks
// (comments, blank lines), the changed lines themselves are emitted.
func topLevelSlices(t *parser.Tree, intervals []types.LineInterval) []string {
	var spans []types.LineInterval
	for _, idx := range t.Nodes[t.Root()].Children {
		node := t.Nodes[idx]
		for _, interval := range intervals {
			if node.Span.Overlaps(interval) {
				spans = append(spans, node.Span)
				break
			}
		}
	}

	if len(spans) == 0 {
		spans = intervals
	}

	var slices []string
	for _, span := range diffparse.Merge(spans) {
		if text := t.Slice(span); text != "" {
			slices = append(slices, text)
		}
	}
	return slices
}

// Render flattens a bundle into the delimited text block handed to the
// reviewing model. Degraded files appear with their reason so nothing
// is silently dropped.
func Render(bundle types.ContextBundle) string {
	var b strings.Builder

	for _, file := range bundle.Files {
		fmt.Fprintf(&b, ">>>>> File: %s\n", file.Path)

		if len(file.ImportLines) > 0 {
			b.WriteString(">>>>>> Relevant imports:\n")
			for _, line := range file.ImportLines {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}

		for _, def := range file.Definitions {
			label := "Function"
			if def.Kind == types.KindClassDef {
				label = "Class"
			}
			fmt.Fprintf(&b, ">>>>>> %s `%s` (lines %d-%d):\n", label, def.Name, def.Span.Start, def.Span.End)
			b.WriteString(def.Source)
			b.WriteString("\n")
			if len(def.Calls) > 0 {
				fmt.Fprintf(&b, ">>>>>> Calls made by `%s`: %s\n", def.Name, strings.Join(def.Calls, ", "))
			}
		}

		if len(file.TopLevel) > 0 {
			b.WriteString(">>>>>> Changed top-level statements:\n")
			for _, text := range file.TopLevel {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}

		b.WriteString("\n")
	}

	for _, degraded := range bundle.Degraded {
		fmt.Fprintf(&b, ">>>>> File: %s\n>>>>>> Structural analysis skipped: %s", degraded.Path, degraded.Reason)
		if degraded.Detail != "" {
			fmt.Fprintf(&b, " (%s)", degraded.Detail)
		}
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
