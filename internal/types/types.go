package types

import "fmt"

// LineInterval is a closed, inclusive, 1-indexed line range.
type LineInterval struct {
	Start int
	End   int
}

func (i LineInterval) Overlaps(o LineInterval) bool {
	return i.Start <= o.End && i.End >= o.Start
}

func (i LineInterval) Contains(line int) bool {
	return i.Start <= line && line <= i.End
}

// Lines returns the number of lines covered by the interval.
func (i LineInterval) Lines() int {
	return i.End - i.Start + 1
}

func (i LineInterval) String() string {
	return fmt.Sprintf("[%d,%d]", i.Start, i.End)
}

// NodeKind is the closed set of syntax node categories the pipeline
// distinguishes. Everything the locator and resolver don't care about
// collapses into KindOther.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindFunctionDef
	KindClassDef
	KindImport
	KindCall
	KindAssign
	KindOther
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindFunctionDef:
		return "function"
	case KindClassDef:
		return "class"
	case KindImport:
		return "import"
	case KindCall:
		return "call"
	case KindAssign:
		return "assign"
	default:
		return "other"
	}
}

// IsDefinition reports whether the kind names an extractable definition.
func (k NodeKind) IsDefinition() bool {
	return k == KindFunctionDef || k == KindClassDef
}

// SyntaxNode is one node of the normalized syntax tree. Children are
// arena indices; the owning tree keeps a separate node->parent index so
// no back-pointers are needed.
type SyntaxNode struct {
	Kind     NodeKind
	Name     string
	Span     LineInterval
	Children []int
}

// DefinitionExtract is one touched definition rendered for the bundle:
// its qualified name, verbatim source slice and the call targets found
// inside it.
type DefinitionExtract struct {
	Name   string
	Kind   NodeKind
	Span   LineInterval
	Source string
	Calls  []string
}

// FileContext is the per-file entry of a ContextBundle. When no
// definition overlaps the changed lines, TopLevel carries the verbatim
// text of the overlapping top-level statements instead so the change is
// never dropped from context.
type FileContext struct {
	Path        string
	ImportLines []string
	Definitions []DefinitionExtract
	TopLevel    []string
}

// DegradedReason classifies why a file could not be analyzed
// structurally.
type DegradedReason string

const (
	ReasonParseFailure        DegradedReason = "parse failure"
	ReasonUnsupportedLanguage DegradedReason = "unsupported language"
	ReasonTimeout             DegradedReason = "analysis timeout"
	ReasonExcluded            DegradedReason = "excluded by configuration"
	ReasonCanceled            DegradedReason = "canceled"
	ReasonContentUnavailable  DegradedReason = "content unavailable"
)

// DegradedFile marks a file that appears in the diff but could not be
// analyzed. Degraded files are surfaced explicitly, never dropped.
type DegradedFile struct {
	Path   string
	Reason DegradedReason
	Detail string
}

// ContextBundle is the final artifact of one extraction run: successful
// per-file contexts plus the files that degraded, both ordered by path.
type ContextBundle struct {
	Files    []FileContext
	Degraded []DegradedFile
}

// Empty reports whether the bundle carries no context at all.
func (b ContextBundle) Empty() bool {
	return len(b.Files) == 0 && len(b.Degraded) == 0
}
