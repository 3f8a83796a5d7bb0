// Package report implements the report writer (spec §4.10): the classify
// and trace JSON documents, matching the exact shapes in spec §6.
package report

import (
	"sort"

	"github.com/cversek/js-demini/internal/annotate"
	"github.com/cversek/js-demini/internal/fingerprint"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/model"
	"github.com/cversek/js-demini/internal/refgraph"
)

// Classify is the classify.json document.
type Classify struct {
	InputFile           string           `json:"input_file"`
	OriginalSize        int              `json:"original_size"`
	BodySize            int              `json:"body_size"`
	ShebangSize         int              `json:"shebang_size"`
	Bundler             string           `json:"bundler"`
	BundlerConfidence   string           `json:"bundler_confidence"`
	BundlerSignals      []string         `json:"bundler_signals"`
	RuntimeHelpers      map[string]string `json:"runtime_helpers"`
	TotalStatements      int              `json:"total_statements"`
	Categories           map[string]int   `json:"categories"`
	WrapKindDistribution map[string]int   `json:"wrapkind_distribution"`
	TotalBytesStatements int              `json:"total_bytes_statements"`
	TotalBytesGaps       int              `json:"total_bytes_gaps"`
	AnnotationBytes      int              `json:"annotation_bytes"`
	ByteAccountingMatch  bool             `json:"byte_accounting_match"`
	Statements           []ClassifyStmt   `json:"statements"`
	RunID                string           `json:"run_id,omitempty"`
}

type ClassifyStmt struct {
	Index     int    `json:"index"`
	Category  string `json:"category"`
	WrapKind  string `json:"wrapKind"`
	Name      string `json:"name,omitempty"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Bytes     int    `json:"bytes"`
}

// Trace is the trace.json document.
type Trace struct {
	Bundler         string          `json:"bundler"`
	TotalStatements int             `json:"total_statements"`
	TotalModules    int             `json:"total_modules"`
	TotalEdges      int             `json:"total_edges"`
	TopLevelNames   int             `json:"top_level_names"`
	WrapkindModules map[string]int  `json:"wrapkind_modules"`
	Modules         []TraceModule   `json:"modules"`
	Statements      []TraceStmt     `json:"statements"`
	RunID           string          `json:"run_id,omitempty"`
}

type TraceModule struct {
	ID        int    `json:"id"`
	WrapKind  string `json:"wrapKind"`
	Statements []int `json:"statements"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
	Bytes     int    `json:"bytes"`
	DepsOut   []int  `json:"deps_out"`
	DepsIn    []int  `json:"deps_in"`
}

type TraceStmt struct {
	Index     int      `json:"index"`
	ModuleID  int      `json:"module_id"`
	WrapKind  string   `json:"wrapKind"`
	Names     []string `json:"names"`
	LineStart int      `json:"line_start"`
	LineEnd   int      `json:"line_end"`
	RefsOut   []int    `json:"refs_out"`
	RefsIn    []int    `json:"refs_in"`
}

// BuildClassify assembles the classify JSON document.
func BuildClassify(inputFile string, originalSize, bodySize, shebangSize int, fp fingerprint.Result, helpers helper.Map, stmts []model.Statement, stats annotate.Stats, runID string) Classify {
	runtimeHelpers := map[string]string{}
	for name, kind := range helpers {
		runtimeHelpers[name] = string(kind)
	}

	categories := map[string]int{}
	wrapDist := map[string]int{}
	statementsOut := make([]ClassifyStmt, len(stmts))
	for i, s := range stmts {
		categories[s.Category]++
		wrapDist[string(s.Wrap)]++
		name := ""
		if len(s.Names) > 0 {
			name = s.Names[0]
		}
		statementsOut[i] = ClassifyStmt{
			Index: s.Index, Category: s.Category, WrapKind: string(s.Wrap),
			Name: name, StartLine: s.LineStart, EndLine: s.LineEnd, Bytes: s.Bytes(),
		}
	}

	return Classify{
		InputFile: inputFile, OriginalSize: originalSize, BodySize: bodySize, ShebangSize: shebangSize,
		Bundler: fp.Bundler, BundlerConfidence: string(fp.Confidence), BundlerSignals: fp.Signals,
		RuntimeHelpers: runtimeHelpers, TotalStatements: len(stmts),
		Categories: categories, WrapKindDistribution: wrapDist,
		TotalBytesStatements: stats.TotalBytesStatements, TotalBytesGaps: stats.TotalBytesGaps,
		AnnotationBytes: stats.AnnotationBytes, ByteAccountingMatch: stats.Match,
		Statements: statementsOut, RunID: runID,
	}
}

// BuildTrace assembles the trace JSON document.
func BuildTrace(bundler string, stmts []model.Statement, modules []*model.Module, refg *refgraph.Graph, topLevelNames int, runID string) Trace {
	wrapModules := map[string]int{}
	refOutTotal := 0
	for i := range stmts {
		refOutTotal += len(refg.Out[i])
	}
	modulesOut := make([]TraceModule, len(modules))
	for i, m := range modules {
		wrapModules[string(m.Wrap)]++
		statementsSorted := append([]int{}, m.Statements...)
		sort.Ints(statementsSorted)
		modulesOut[i] = TraceModule{
			ID: m.ID, WrapKind: string(m.Wrap), Statements: statementsSorted,
			LineStart: m.LineStart, LineEnd: m.LineEnd, Bytes: m.Bytes,
			DepsOut: m.DepsOut, DepsIn: m.DepsIn,
		}
	}

	statementsOut := make([]TraceStmt, len(stmts))
	for i, s := range stmts {
		statementsOut[i] = TraceStmt{
			Index: s.Index, ModuleID: s.ModuleID, WrapKind: string(s.Wrap), Names: s.Names,
			LineStart: s.LineStart, LineEnd: s.LineEnd,
			RefsOut: refg.Out[i], RefsIn: refg.In[i],
		}
	}

	return Trace{
		Bundler: bundler, TotalStatements: len(stmts), TotalModules: len(modules),
		TotalEdges: refOutTotal, TopLevelNames: topLevelNames, WrapkindModules: wrapModules,
		Modules: modulesOut, Statements: statementsOut, RunID: runID,
	}
}
