// Package model holds the shared data model (§3 of the spec this module
// implements): statements, WrapKind, and modules. Every analysis subsystem
// downstream of the parser operates on these types rather than threading
// the raw jsast tree through each pass.
package model

// WrapKind is a statement's (or module's) role in module wrapping.
type WrapKind string

const (
	WrapCJS     WrapKind = "CJS"
	WrapESM     WrapKind = "ESM"
	WrapRuntime WrapKind = "RUNTIME"
	WrapImport  WrapKind = "IMPORT"
	WrapNone    WrapKind = "None"
)

// Statement is one top-level AST node plus everything the analysis passes
// attach to it. ModuleID is -1 until the module identifier assigns it.
type Statement struct {
	Index      int
	Start, End int32 // byte offsets in the stripped body
	LineStart  int
	LineEnd    int
	Category   string
	Wrap       WrapKind
	Names      []string
	ModuleID   int
}

func (s *Statement) Bytes() int { return int(s.End - s.Start) }

// Module is a dense-id group of statements sharing a WrapKind per §3/§4.8.
type Module struct {
	ID         int
	Wrap       WrapKind
	Statements []int // sorted ascending
	Primary    int
	LineStart  int
	LineEnd    int
	Bytes      int
	InnerStmts int
	DepsOut    []int
	DepsIn     []int
}

func (m *Module) StmtCount() int {
	if m.InnerStmts > 0 {
		return m.InnerStmts + (len(m.Statements) - 1)
	}
	return len(m.Statements)
}
