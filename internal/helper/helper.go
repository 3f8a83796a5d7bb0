// Package helper implements the bundler-injected runtime helper detector
// (spec §4.2): it walks only the top-level statement list and recognizes
// the four esbuild interop shims by AST shape, since minification erases
// their original names.
package helper

import (
	"strings"
	"unicode"

	"github.com/cversek/js-demini/internal/jsast"
)

// Kind is one of the four recognized helper shapes, or preamble (used by
// the statement classifier, not produced here).
type Kind string

const (
	CommonJS  Kind = "__commonJS"
	ESM       Kind = "__esm"
	ToESM     Kind = "__toESM"
	CopyProps Kind = "__copyProps"
	Preamble  Kind = "preamble"
)

// Map is a partial function identifier -> Kind, built once from the AST.
// Its domain contains only top-level variable binding names.
type Map map[string]Kind

var knownNames = map[string]Kind{
	string(CommonJS):  CommonJS,
	string(ESM):       ESM,
	string(ToESM):     ToESM,
	string(CopyProps): CopyProps,
}

// Detect walks stmts and returns the union of every declarator's helper
// kind, per declarator, first-matching-rule-wins.
func Detect(stmts []jsast.Stmt, body string) Map {
	m := Map{}
	for _, s := range stmts {
		sv, ok := s.Data.(*jsast.SVar)
		if !ok {
			continue
		}
		for _, decl := range sv.Decls {
			if decl.Binding.Kind != jsast.BindIdentifier {
				continue
			}
			n := decl.Binding.Name
			if kind, ok := detectDeclarator(n, decl.Init, body); ok {
				m[n] = kind
			}
		}
	}
	return m
}

func detectDeclarator(n string, init *jsast.Expr, body string) (Kind, bool) {
	// Known name shortcut.
	if kind, ok := knownNames[n]; ok {
		return kind, true
	}
	if init == nil {
		return "", false
	}

	// Curried arrow shape: (a,b) => () => ...
	if outer, ok := init.Data.(*jsast.EArrow); ok && len(outer.Fn.Params) == 2 && outer.Fn.ArrowExpr != nil {
		if inner, ok := outer.Fn.ArrowExpr.Data.(*jsast.EArrow); ok && len(inner.Fn.Params) == 0 {
			var innerRange jsast.Range
			if inner.Fn.ArrowExpr != nil {
				innerRange = inner.Fn.ArrowExpr.Range
			} else {
				innerRange = outer.Fn.ArrowExpr.Range
			}
			stripped := stripWhitespace(sliceRange(body, innerRange))
			switch {
			case strings.Contains(stripped, "exports") && strings.Contains(stripped, "{}"):
				return CommonJS, true
			case strings.Contains(stripped, "=0") && !strings.Contains(stripped, "exports"):
				return ESM, true
			}
		}
	}

	// Function (arrow or expression) containing __esModule / esModule.
	if isFunctionLike(init.Data) {
		raw := sliceRange(body, init.Range)
		if strings.Contains(raw, "__esModule") || strings.Contains(raw, "esModule") {
			return ToESM, true
		}
		if strings.Contains(raw, "getOwnPropertyNames") && strings.Contains(raw, "defineProperty") {
			return CopyProps, true
		}
	}

	return "", false
}

func isFunctionLike(e jsast.E) bool {
	switch e.(type) {
	case *jsast.EArrow, *jsast.EFunction:
		return true
	}
	return false
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

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
