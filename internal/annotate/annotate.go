// Package annotate implements the byte-preserving annotator (spec §4.9):
// it emits a header comment block, per-module-boundary comments, and
// per-statement annotation comments into the source body without
// altering a single byte of the original program text.
package annotate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cversek/js-demini/internal/fingerprint"
	"github.com/cversek/js-demini/internal/model"
)

// Stats is the byte-accounting ledger required by spec §4.9/§7: the sum
// of statement bytes and gap bytes must equal the body length.
type Stats struct {
	TotalBytesStatements int
	TotalBytesGaps       int
	AnnotationBytes      int
	BodyLen              int
	Match                bool
}

// Annotate produces the full annotated file (shebang + header + body)
// and the byte-accounting stats.
func Annotate(shebang, body string, stmts []model.Statement, modules []*model.Module, fp fingerprint.Result) (string, Stats) {
	minIndexModule := map[int]*model.Module{}
	for _, m := range modules {
		min := m.Statements[0]
		for _, i := range m.Statements {
			if i < min {
				min = i
			}
		}
		minIndexModule[min] = m
	}

	wrapCounts := map[model.WrapKind]int{}
	for i := range stmts {
		wrapCounts[stmts[i].Wrap]++
	}

	var out strings.Builder
	header := buildHeader(fp, len(stmts), wrapCounts, len(body))
	out.WriteString(header)
	stats := Stats{BodyLen: len(body), AnnotationBytes: len(header)}

	ordered := make([]int, len(stmts))
	for i := range ordered {
		ordered[i] = i
	}
	sort.Slice(ordered, func(a, b int) bool { return stmts[ordered[a]].Start < stmts[ordered[b]].Start })

	cursor := int32(0)
	for _, i := range ordered {
		s := stmts[i]
		if s.Start > cursor {
			gap := body[cursor:s.Start]
			out.WriteString(gap)
			stats.TotalBytesGaps += len(gap)
		}
		if m, ok := minIndexModule[i]; ok {
			boundary := moduleBoundaryComment(m)
			out.WriteString(boundary)
			out.WriteString("\n")
			stats.AnnotationBytes += len(boundary) + 1
		}
		stmtComment := statementComment(s)
		out.WriteString(stmtComment)
		out.WriteString("\n")
		stats.AnnotationBytes += len(stmtComment) + 1

		text := body[s.Start:s.End]
		out.WriteString(text)
		stats.TotalBytesStatements += len(text)
		cursor = s.End
	}
	if int(cursor) < len(body) {
		tail := body[cursor:]
		out.WriteString(tail)
		stats.TotalBytesGaps += len(tail)
	}

	stats.Match = stats.TotalBytesStatements+stats.TotalBytesGaps == stats.BodyLen
	return shebang + out.String(), stats
}

func buildHeader(fp fingerprint.Result, total int, wrapCounts map[model.WrapKind]int, bodySize int) string {
	var wrapParts []string
	for _, k := range []model.WrapKind{model.WrapCJS, model.WrapESM, model.WrapRuntime, model.WrapImport, model.WrapNone} {
		wrapParts = append(wrapParts, fmt.Sprintf("%s=%d", k, wrapCounts[k]))
	}
	return fmt.Sprintf(
		"/*\n"+
			" * DEMINI-CLASSIFY BUNDLE ANALYSIS\n"+
			" * Bundler: %s (confidence: %s)\n"+
			" * Statements: %d\n"+
			" * WrapKind: %s\n"+
			" * Size: body=%d bytes\n"+
			" * Generated statically; does not alter program behavior.\n"+
			" */\n",
		fp.Bundler, fp.Confidence, total, strings.Join(wrapParts, " "), bodySize,
	)
}

func statementComment(s model.Statement) string {
	name := strings.Join(s.Names, ",")
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf(
		"/* === [%04d] TYPE: %s | WRAPKIND: %s | NAME: %s | LINES: %d-%d | BYTES: %d === */",
		s.Index, s.Category, s.Wrap, name, s.LineStart, s.LineEnd, s.Bytes(),
	)
}

func moduleBoundaryComment(m *model.Module) string {
	var label string
	if m.InnerStmts > 0 {
		hoisted := len(m.Statements) - 1
		label = fmt.Sprintf("%d inner + %d hoisted", m.InnerStmts, hoisted)
	} else {
		label = fmt.Sprintf("%d stmts", len(m.Statements))
	}
	return fmt.Sprintf("/* --- MODULE BOUNDARY [%03d] Wrap%s (%s, %d bytes) --- */", m.ID, m.Wrap, label, m.Bytes)
}
