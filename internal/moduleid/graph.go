package moduleid

import (
	"sort"

	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/model"
	"github.com/cversek/js-demini/internal/refgraph"
)

// Compile fills in each module's line span, byte count, inner statement
// count, and module-level dependency edges (spec §4.8 "Module graph
// compile").
func Compile(modules []*model.Module, stmts []model.Statement, raw []jsast.Stmt, refg *refgraph.Graph) {
	for _, m := range modules {
		lineStart, lineEnd, bytes := -1, -1, 0
		for _, i := range m.Statements {
			s := stmts[i]
			if lineStart == -1 || s.LineStart < lineStart {
				lineStart = s.LineStart
			}
			if lineEnd == -1 || s.LineEnd > lineEnd {
				lineEnd = s.LineEnd
			}
			bytes += s.Bytes()
		}
		m.LineStart, m.LineEnd, m.Bytes = lineStart, lineEnd, bytes

		depsOut := map[int]bool{}
		depsIn := map[int]bool{}
		for _, i := range m.Statements {
			for _, j := range refg.Out[i] {
				if stmts[j].ModuleID != m.ID {
					depsOut[stmts[j].ModuleID] = true
				}
			}
			for _, j := range refg.In[i] {
				if stmts[j].ModuleID != m.ID {
					depsIn[stmts[j].ModuleID] = true
				}
			}
		}
		m.DepsOut = sortedInts(depsOut)
		m.DepsIn = sortedInts(depsIn)

		if m.Wrap == model.WrapCJS || m.Wrap == model.WrapESM {
			m.InnerStmts = innerStatementCount(raw[m.Primary])
		}
	}
}

func sortedInts(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// innerStatementCount walks the BlockStatement-shaped bodies inside the
// first argument of a factory call (a var declarator whose init is a
// call like `w((e,m) => {...})` or `v(() => {...})`) and sums their
// body lengths, per spec §4.8. It does not descend into nested
// function/arrow bodies, since those belong to a different closure than
// the factory's own statement list.
func innerStatementCount(s jsast.Stmt) int {
	sv, ok := s.Data.(*jsast.SVar)
	if !ok {
		return 0
	}
	for _, decl := range sv.Decls {
		if decl.Init == nil {
			continue
		}
		call, ok := decl.Init.Data.(*jsast.ECall)
		if !ok || len(call.Args) == 0 {
			continue
		}
		fn := fnFromExpr(call.Args[0])
		if fn == nil {
			continue
		}
		return countBlocks(fn.Body)
	}
	return 0
}

func fnFromExpr(e jsast.Expr) *jsast.Fn {
	switch d := e.Data.(type) {
	case *jsast.EArrow:
		return &d.Fn
	case *jsast.EFunction:
		return &d.Fn
	}
	return nil
}

func countBlocks(stmts []jsast.Stmt) int {
	total := len(stmts)
	for _, s := range stmts {
		total += countBlocksIn(s)
	}
	return total
}

func countBlocksIn(s jsast.Stmt) int {
	switch d := s.Data.(type) {
	case *jsast.SBlock:
		return countBlocks(d.Stmts)
	case *jsast.SIf:
		n := countBlocksIn(d.Yes)
		if d.No != nil {
			n += countBlocksIn(*d.No)
		}
		return n
	case *jsast.SFor:
		return countBlocksIn(d.Body)
	case *jsast.SWhile:
		return countBlocksIn(d.Body)
	case *jsast.SDoWhile:
		return countBlocksIn(d.Body)
	case *jsast.STry:
		n := countBlocks(d.Body)
		if d.Catch != nil {
			n += countBlocks(d.Catch.Body)
		}
		if d.Finally != nil {
			n += countBlocks(*d.Finally)
		}
		return n
	case *jsast.SSwitch:
		n := 0
		for _, c := range d.Cases {
			n += countBlocks(c.Body)
		}
		return n
	case *jsast.SLabel:
		return countBlocksIn(d.Body)
	}
	return 0
}
