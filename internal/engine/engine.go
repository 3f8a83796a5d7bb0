// Package engine ties the parser adapter and all five analysis
// subsystems together into one pure function of (source bytes,
// configuration), per spec §5: single-threaded, deterministic,
// synchronous, no suspension points.
package engine

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cversek/js-demini/internal/annotate"
	"github.com/cversek/js-demini/internal/classify"
	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/defmap"
	"github.com/cversek/js-demini/internal/fingerprint"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
	"github.com/cversek/js-demini/internal/model"
	"github.com/cversek/js-demini/internal/moduleid"
	"github.com/cversek/js-demini/internal/refgraph"
	"github.com/cversek/js-demini/internal/report"
)

// Result is everything a driver needs to write to disk: the annotated
// source, and the two JSON documents.
type Result struct {
	Annotated string
	Classify  report.Classify
	Trace     report.Trace
}

// Analyze runs the full pipeline over one input file's bytes. log may be
// nil, in which case a no-op logger is used.
func Analyze(path string, src []byte, opts config.EngineOptions, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	log.Info("analysis started", zap.String("input_file", path))

	if !utf8.Valid(src) {
		return nil, &InputError{Path: path, Reason: "not valid UTF-8"}
	}

	shebang, body := splitShebang(string(src))
	if shebang != "" && len(stripSpace(body)) == 0 {
		return nil, &InputError{Path: path, Reason: "shebang-only input"}
	}

	diagLog := logger.NewLog()
	source := &logger.Source{KeyPath: path, PrettyPath: path, Contents: body}

	prog, err := jsparser.Parse(diagLog, source)
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return nil, &ParseError{Message: err.Error()}
	}
	log.Debug("parse complete", zap.Int("statements", len(prog.Stmts)), zap.Duration("elapsed", time.Since(start)))

	helpers := helper.Detect(prog.Stmts, body)
	stmts := classify.Categories(prog.Stmts, helpers)
	for i := range stmts {
		stmts[i].LineStart, _ = source.LineColumn(stmts[i].Start)
		endOffset := stmts[i].End
		if endOffset > 0 {
			endOffset--
		}
		stmts[i].LineEnd, _ = source.LineColumn(endOffset)
		stmts[i].Names = defmap.NamesDefined(prog.Stmts[i])
	}

	defs := defmap.Build(prog.Stmts)
	refg := refgraph.Build(prog.Stmts, defs)

	modules := moduleid.Identify(prog.Stmts, stmts, helpers, refg)
	moduleid.Compile(modules, stmts, prog.Stmts, refg)
	log.Debug("module identification complete", zap.Int("modules", len(modules)))

	if err := checkInvariants(stmts, modules); err != nil {
		log.Error("invariant violation", zap.Error(err))
		return nil, err
	}

	fp := fingerprint.Fingerprint(prog.Stmts, helpers, body)

	annotated, stats := annotate.Annotate(shebang, body, stmts, modules, fp)
	if !stats.Match {
		return nil, &InvariantError{Invariant: "byte-accounting", Index: -1}
	}
	log.Info("byte accounting", zap.Bool("match", stats.Match),
		zap.Int("statement_bytes", stats.TotalBytesStatements),
		zap.Int("gap_bytes", stats.TotalBytesGaps))

	runID := uuid.NewString()
	classifyDoc := report.BuildClassify(path, len(src), len(body), len(shebang), fp, helpers, stmts, stats, runID)
	traceDoc := report.BuildTrace(fp.Bundler, stmts, modules, refg, len(defs), runID)

	log.Info("analysis finished", zap.Duration("elapsed", time.Since(start)), zap.String("bundler", fp.Bundler))
	return &Result{Annotated: annotated, Classify: classifyDoc, Trace: traceDoc}, nil
}

// checkInvariants enforces spec §7's assertion-failure list: every
// statement must end up assigned (I2), no module may be empty, and
// module ids must be dense (I4). Contiguity (I3) is enforced by
// construction in moduleid.Identify and is not re-checked here.
func checkInvariants(stmts []model.Statement, modules []*model.Module) error {
	for i := range stmts {
		if stmts[i].ModuleID == -1 {
			return &InvariantError{Invariant: "statement unassigned after pass 5", Index: i}
		}
	}
	seen := map[int]bool{}
	for _, m := range modules {
		if len(m.Statements) == 0 {
			return &InvariantError{Invariant: "empty module", Index: m.ID}
		}
		if seen[m.ID] {
			return &InvariantError{Invariant: "duplicate module id", Index: m.ID}
		}
		seen[m.ID] = true
	}
	for i, m := range modules {
		if m.ID != i {
			return &InvariantError{Invariant: "module ids not dense", Index: m.ID}
		}
	}
	return nil
}

func splitShebang(src string) (shebang, body string) {
	if len(src) < 2 || src[0] != '#' || src[1] != '!' {
		return "", src
	}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			return src[:i+1], src[i+1:]
		}
	}
	return src, ""
}

func stripSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
