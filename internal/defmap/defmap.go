// Package defmap builds the global definition map (spec §4.5): identifier
// -> first top-level statement index that binds it, first-definition-wins.
// It also exposes NamesDefined, the per-statement name extraction that the
// reference graph builder (internal/refgraph) reuses as the self(i) filter.
package defmap

import "github.com/cversek/js-demini/internal/jsast"

// Map is identifier -> first defining statement index.
type Map map[string]int

// Build walks stmts in order and records, for each defined name, the
// first statement index that defines it.
func Build(stmts []jsast.Stmt) Map {
	m := Map{}
	for i, s := range stmts {
		for _, n := range NamesDefined(s) {
			if _, exists := m[n]; !exists {
				m[n] = i
			}
		}
	}
	return m
}

// NamesDefined extracts every name a single statement defines: variable
// declarator ids (recursing through object/array destructuring patterns
// down to identifier leaves), function/class declaration names, and
// names contributed by the declaration wrapped inside an export.
func NamesDefined(s jsast.Stmt) []string {
	return namesFromStmtData(s.Data)
}

func namesFromStmtData(data jsast.S) []string {
	switch d := data.(type) {
	case *jsast.SVar:
		var names []string
		for _, decl := range d.Decls {
			names = append(names, namesFromBinding(decl.Binding)...)
		}
		return names
	case *jsast.SFunction:
		if d.Name != nil {
			return []string{*d.Name}
		}
	case *jsast.SClass:
		if d.Name != nil {
			return []string{*d.Name}
		}
	case *jsast.SExportNamed:
		if d.Decl != nil {
			return namesFromStmtData(d.Decl)
		}
	case *jsast.SExportDefault:
		if d.Decl != nil {
			return namesFromStmtData(d.Decl)
		}
	}
	return nil
}

func namesFromBinding(b jsast.Binding) []string {
	switch b.Kind {
	case jsast.BindIdentifier:
		if b.Name == "" {
			return nil
		}
		return []string{b.Name}
	case jsast.BindObject:
		var names []string
		for _, prop := range b.Properties {
			names = append(names, namesFromBinding(prop.Value)...)
		}
		return names
	case jsast.BindArray:
		var names []string
		for _, item := range b.Items {
			names = append(names, namesFromBinding(item)...)
		}
		return names
	}
	return nil
}
