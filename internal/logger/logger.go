// Package logger carries compiler-style diagnostics through the analysis
// pipeline. It is a trimmed adaptation of esbuild's internal/logger: the
// same Loc/Range/Source shapes (byte offsets, not pointers into the AST),
// the same clang-flavored single-line message format, and the same
// per-platform terminal color detection.
package logger

import (
	"fmt"
	"sort"
	"strings"
)

// Loc is a 0-based byte offset from the start of the source body.
type Loc struct {
	Start int32
}

// Range is a byte span starting at Loc with length Len.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// Source is the body under analysis plus enough metadata to translate a
// byte offset into a human-readable line/column.
type Source struct {
	Index          uint32
	KeyPath        string
	PrettyPath     string
	Contents       string
	IdentifierName string
}

// LineColumn converts a byte offset into a 1-based line and 0-based column,
// both counted in bytes (matching the teacher's convention of byte, not
// rune, columns so offsets stay simple to reason about).
func (s *Source) LineColumn(offset int32) (line int, column int) {
	line = 1
	lineStart := 0
	text := s.Contents
	limit := int(offset)
	if limit > len(text) {
		limit = len(text)
	}
	for i := 0; i < limit; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, limit - lineStart
}

// LineText returns the full source line containing offset, for use in
// single-line error messages.
func (s *Source) LineText(offset int32) string {
	text := s.Contents
	start := int(offset)
	if start > len(text) {
		start = len(text)
	}
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end := int(offset)
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return text[start:end]
}

// TextForRange returns the verbatim source slice for r.
func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start:r.End()]
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("unreachable")
	}
}

type MsgLocation struct {
	File     string
	Line     int
	Column   int
	Length   int
	LineText string
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

type Msg struct {
	Kind  MsgKind
	Data  MsgData
	Notes []MsgData
}

// String renders a message the way clang (and esbuild) render diagnostics:
// "path:line:col: kind: text" followed by the offending source line.
func (msg Msg) String() string {
	var b strings.Builder
	loc := msg.Data.Location
	if loc != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", loc.File, loc.Line, loc.Column)
	}
	fmt.Fprintf(&b, "%s: %s\n", msg.Kind.String(), msg.Data.Text)
	if loc != nil && loc.LineText != "" {
		fmt.Fprintf(&b, "  %s\n", loc.LineText)
	}
	for _, note := range msg.Notes {
		fmt.Fprintf(&b, "  note: %s\n", note.Text)
	}
	return b.String()
}

// Log collects messages during a single analysis run. Unlike esbuild's
// streaming Log (which supports concurrent builds), this one is a plain
// synchronous slice: spec.md §5 requires the engine itself to be
// single-threaded, so there is no need for the mutex/channel machinery the
// teacher uses to support concurrent packages.
type Log struct {
	msgs []Msg
}

func NewLog() *Log { return &Log{} }

func (log *Log) AddMsg(msg Msg) { log.msgs = append(log.msgs, msg) }

func (log *Log) AddError(source *Source, r Range, text string) {
	log.AddMsg(Msg{Kind: Error, Data: msgDataFor(source, r, text)})
}

func (log *Log) AddErrorNoLoc(text string) {
	log.AddMsg(Msg{Kind: Error, Data: MsgData{Text: text}})
}

func (log *Log) HasErrors() bool {
	for _, msg := range log.msgs {
		if msg.Kind == Error {
			return true
		}
	}
	return false
}

func (log *Log) Done() []Msg {
	sorted := make([]Msg, len(log.msgs))
	copy(sorted, log.msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Data.Location, sorted[j].Data.Location
		if ai == nil || aj == nil {
			return aj != nil
		}
		if ai.Line != aj.Line {
			return ai.Line < aj.Line
		}
		return ai.Column < aj.Column
	})
	return sorted
}

func msgDataFor(source *Source, r Range, text string) MsgData {
	if source == nil {
		return MsgData{Text: text}
	}
	line, column := source.LineColumn(r.Loc.Start)
	return MsgData{
		Text: text,
		Location: &MsgLocation{
			File:     source.PrettyPath,
			Line:     line,
			Column:   column,
			Length:   int(r.Len),
			LineText: source.LineText(r.Loc.Start),
		},
	}
}

// TerminalInfo describes what the output file descriptor supports. It is
// filled in per-platform (see logger_unix.go / logger_windows.go /
// logger_other.go).
type TerminalInfo struct {
	IsTTY           bool
	Width           int
	Height          int
	UseColorEscapes bool
}
