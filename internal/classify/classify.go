// Package classify implements the statement classifier (spec §4.3):
// assigns each top-level statement a category string from a mostly-closed
// set, and derives its WrapKind from that category.
package classify

import (
	"sort"
	"strings"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/model"
)

var objectAliasMethods = map[string]bool{
	"create":                   true,
	"defineProperty":           true,
	"getOwnPropertyDescriptor": true,
	"getOwnPropertyNames":      true,
	"getPrototypeOf":           true,
}

// Categories classifies every statement in order, given the helper map
// the detector already built. The WrapKind IMPORT is never produced here
// (§4.3: "IMPORT is not assigned here; it is produced only in §4.8 pass 4").
func Categories(stmts []jsast.Stmt, helpers helper.Map) []model.Statement {
	out := make([]model.Statement, len(stmts))
	for i, s := range stmts {
		cat := categoryFor(s, i, helpers)
		out[i] = model.Statement{
			Index:    i,
			Start:    s.Range.Loc.Start,
			End:      s.Range.End(),
			Category: cat,
			Wrap:     wrapKindFor(cat),
			ModuleID: -1,
		}
	}
	return out
}

func categoryFor(s jsast.Stmt, index int, helpers helper.Map) string {
	switch d := s.Data.(type) {
	case *jsast.SVar:
		return categorizeVar(d, index, helpers)
	case *jsast.SFunction:
		return "FUNCTION_DECL"
	case *jsast.SClass:
		return "CLASS_DECL"
	case *jsast.SExpr:
		return "EXPRESSION"
	case *jsast.SImport:
		return "IMPORT"
	case *jsast.SExportNamed:
		return "EXPORT_NAMED"
	case *jsast.SExportDefault:
		return "EXPORT_DEFAULT"
	case *jsast.SExportAll:
		return "EXPORT_ALL"
	case *jsast.SIf:
		return "IF_STMT"
	case *jsast.SFor:
		return "FOR_STMT"
	case *jsast.SWhile, *jsast.SDoWhile:
		return "WHILE_STMT"
	case *jsast.STry:
		return "TRY_STMT"
	case *jsast.SSwitch:
		return "SWITCH_STMT"
	case *jsast.SBlock:
		return "BLOCK_STMT"
	case *jsast.SEmpty:
		return "EMPTY"
	case *jsast.SReturn:
		return "RETURN"
	case *jsast.SThrow:
		return "THROW"
	case *jsast.SBreak:
		return "BREAK"
	case *jsast.SContinue:
		return "CONTINUE"
	case *jsast.SLabel:
		return "LABEL"
	case *jsast.SDebugger:
		return "DEBUGGER"
	case *jsast.SDirective:
		return "DIRECTIVE"
	default:
		return "UNKNOWN"
	}
}

func categorizeVar(d *jsast.SVar, index int, helpers helper.Map) string {
	var helperDefs, factories []string
	other := false

	for _, decl := range d.Decls {
		if decl.Binding.Kind == jsast.BindIdentifier {
			if kind, ok := helpers[decl.Binding.Name]; ok {
				helperDefs = append(helperDefs, "RUNTIME_HELPER."+string(kind))
				continue
			}
		}
		if decl.Init != nil && index < config.PreambleCutoff && isObjectAlias(decl.Init.Data) {
			helperDefs = append(helperDefs, "RUNTIME_HELPER."+string(helper.Preamble))
			continue
		}
		if decl.Init != nil {
			if call, ok := decl.Init.Data.(*jsast.ECall); ok {
				if name, ok := jsast.CalleeName(call.Target); ok {
					if kind, ok := helpers[name]; ok {
						factories = append(factories, factoryCategory(kind))
						continue
					}
				}
			}
		}
		other = true
	}

	var contributions []string
	if len(helperDefs) > 0 {
		// If both helper-definition and factory-call contributions exist
		// for one statement, helper-definition wins.
		contributions = helperDefs
	} else if len(factories) > 0 {
		contributions = factories
	}
	if len(contributions) == 0 {
		return "VAR_DECL"
	}
	if other {
		contributions = append(contributions, "VAR_DECL")
	}
	return dedupJoin(contributions)
}

func factoryCategory(kind helper.Kind) string {
	switch kind {
	case helper.CommonJS:
		return "MODULE_FACTORY.__commonJS"
	case helper.ESM:
		return "MODULE_FACTORY.__esm"
	case helper.ToESM:
		return "ADAPTED_IMPORT.__toESM"
	case helper.CopyProps:
		return "REEXPORT.__copyProps"
	}
	return "VAR_DECL"
}

// isObjectAlias recognizes `Object.create`, `Object.defineProperty`, ...
// and `Object.prototype.hasOwnProperty` member expressions.
func isObjectAlias(e jsast.E) bool {
	member, ok := e.(*jsast.EMember)
	if !ok || member.Computed {
		return false
	}
	if id, ok := member.Target.Data.(*jsast.EIdentifier); ok && id.Name == "Object" {
		if objectAliasMethods[member.Property] {
			return true
		}
	}
	// Object.prototype.hasOwnProperty
	if inner, ok := member.Target.Data.(*jsast.EMember); ok && !inner.Computed && member.Property == "hasOwnProperty" {
		if id, ok := inner.Target.Data.(*jsast.EIdentifier); ok && id.Name == "Object" && inner.Property == "prototype" {
			return true
		}
	}
	return false
}

func dedupJoin(items []string) string {
	seen := map[string]bool{}
	var uniq []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			uniq = append(uniq, it)
		}
	}
	sort.Strings(uniq)
	return strings.Join(uniq, "+")
}

// wrapKindFor derives a statement's WrapKind from its category by prefix.
func wrapKindFor(category string) model.WrapKind {
	parts := strings.Split(category, "+")
	hasRuntime, hasCJS, hasESM := false, false, false
	for _, p := range parts {
		switch {
		case strings.HasPrefix(p, "RUNTIME_HELPER."):
			hasRuntime = true
		case p == "MODULE_FACTORY.__commonJS":
			hasCJS = true
		case p == "MODULE_FACTORY.__esm", p == "ADAPTED_IMPORT.__toESM", p == "REEXPORT.__copyProps":
			hasESM = true
		}
	}
	switch {
	case hasRuntime:
		return model.WrapRuntime
	case hasCJS:
		return model.WrapCJS
	case hasESM:
		return model.WrapESM
	default:
		return model.WrapNone
	}
}
