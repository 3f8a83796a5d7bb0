// Package fingerprint implements the bundler fingerprinter (spec §4.4):
// aggregates helper signals, preamble boilerplate, and characteristic
// strings into a (bundler, confidence, signals) verdict. The taxonomy is
// open — this package only emits "esbuild" or "unknown" today, but
// downstream consumers (the module identifier) never inspect the bundler
// tag, only helper information, so adding bundlers later is safe.
package fingerprint

import (
	"sort"
	"strings"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsast"
)

type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

type Result struct {
	Bundler    string
	Confidence Confidence
	Signals    []string
}

var objectAliasNeedles = []string{
	"Object.create",
	"Object.defineProperty",
	"Object.getOwnPropertyDescriptor",
	"Object.getOwnPropertyNames",
}

// Fingerprint inspects helpers, the first five top-level statements'
// source text, and the full body to produce a bundler verdict.
func Fingerprint(stmts []jsast.Stmt, helpers helper.Map, body string) Result {
	var signals []string

	kinds := map[helper.Kind]bool{}
	for _, k := range helpers {
		kinds[k] = true
	}
	for _, k := range []helper.Kind{helper.CommonJS, helper.ESM, helper.ToESM, helper.CopyProps} {
		if kinds[k] {
			signals = append(signals, "helper:"+string(k))
		}
	}

	preambleHits := 0
	limit := len(stmts)
	if limit > 5 {
		limit = 5
	}
	for _, s := range stmts[:limit] {
		text := sliceRange(body, s.Range)
		for _, needle := range objectAliasNeedles {
			if strings.Contains(text, needle) {
				preambleHits++
				break
			}
		}
	}
	if preambleHits >= config.PreambleSignalCount {
		signals = append(signals, "preamble-object-aliases")
	}

	if strings.Contains(body, "createRequire") && strings.Contains(body, "import.meta.url") {
		signals = append(signals, "createRequire+import.meta.url")
	}

	sort.Strings(signals)

	var bundler string
	var confidence Confidence
	switch {
	case len(signals) >= 2:
		bundler, confidence = "esbuild", High
	case len(signals) == 1:
		bundler, confidence = "esbuild", Medium
	default:
		bundler, confidence = "unknown", Low
	}
	return Result{Bundler: bundler, Confidence: confidence, Signals: signals}
}

func sliceRange(body string, r jsast.Range) string {
	start := r.Loc.Start
	end := r.End()
	if start < 0 {
		start = 0
	}
	if int(end) > len(body) {
		end = int32(len(body))
	}
	if start > end {
		return ""
	}
	return body[start:end]
}
