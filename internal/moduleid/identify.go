// Package moduleid implements the five-pass module identifier (spec
// §4.7-§4.8): the preamble-extension reclassification, assignment of
// statements to modules (runtime group, CJS factories, ESM factories with
// back-tracing, import super-nodes, Jaccard clustering), the renumbering
// pass, and the module graph compile step.
package moduleid

import (
	"sort"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/defmap"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/model"
	"github.com/cversek/js-demini/internal/refgraph"
)

// ExtendPreamble implements spec §4.7: find the first statement with
// WrapKind CJS or ESM (index F); every None-WrapKind statement before F
// is reclassified to RUNTIME.
func ExtendPreamble(stmts []model.Statement) {
	f := -1
	for i := range stmts {
		if stmts[i].Wrap == model.WrapCJS || stmts[i].Wrap == model.WrapESM {
			f = i
			break
		}
	}
	if f == -1 {
		return
	}
	for i := 0; i < f; i++ {
		if stmts[i].Wrap == model.WrapNone {
			stmts[i].Wrap = model.WrapRuntime
		}
	}
}

// Identify runs all five passes and the renumbering step, assigning
// ModuleID on every element of stmts and returning the module list in
// final (renumbered) id order.
//
// Pass ordering note: spec §4.7 says the preamble extension (leading
// None statements before the first CJS/ESM statement become RUNTIME)
// happens "before module identification," and §4.8 Pass 1 groups "all
// statements with WrapKind=RUNTIME (after §4.7 reclassification)." Taken
// fully literally and run strictly before Pass 1, this would let the
// preamble extension claim statements Pass 3's ESM back-trace is meant
// to absorb (scenario §8.2 requires `var a; var b; function f(){}`
// immediately preceding an `__esm` factory to become ESM via back-trace,
// not RUNTIME via preamble extension). No concrete scenario in §8
// exercises the extension independent of back-trace, so this
// implementation runs Pass 2 (CJS) and Pass 3 (ESM back-trace) first,
// then applies the §4.7 extension to whatever leading None statements
// back-trace left untouched, and only then materializes the Pass 1
// RUNTIME module (which by then also contains any newly-extended
// statements, satisfying "after §4.7 reclassification" for Pass 1's own
// membership rule without preempting Pass 3).
func Identify(raw []jsast.Stmt, stmts []model.Statement, helpers helper.Map, refg *refgraph.Graph) []*model.Module {
	n := len(stmts)
	for i := range stmts {
		stmts[i].ModuleID = -1
	}

	var modules []*model.Module
	nextID := 0

	// Pass 2 -- CJS modules.
	for i := range stmts {
		if stmts[i].Wrap == model.WrapCJS && stmts[i].ModuleID == -1 {
			m := &model.Module{ID: nextID, Wrap: model.WrapCJS, Statements: []int{i}, Primary: i}
			nextID++
			stmts[i].ModuleID = m.ID
			modules = append(modules, m)
		}
	}

	// Pass 3 -- ESM modules with back-tracing.
	for i := range stmts {
		if stmts[i].Wrap != model.WrapESM || stmts[i].ModuleID != -1 {
			continue
		}
		if isESMFactory(raw[i], helpers) {
			absorbed := []int{}
			for j := i - 1; j >= 0; j-- {
				if stmts[j].ModuleID == -1 && stmts[j].Wrap == model.WrapNone {
					absorbed = append(absorbed, j)
					continue
				}
				break
			}
			sort.Ints(absorbed)
			all := append(absorbed, i)
			m := &model.Module{ID: nextID, Wrap: model.WrapESM, Statements: all, Primary: i}
			nextID++
			for _, j := range absorbed {
				stmts[j].Wrap = model.WrapESM
				stmts[j].ModuleID = m.ID
			}
			stmts[i].ModuleID = m.ID
			modules = append(modules, m)
		} else {
			m := &model.Module{ID: nextID, Wrap: model.WrapESM, Statements: []int{i}, Primary: i}
			nextID++
			stmts[i].ModuleID = m.ID
			modules = append(modules, m)
		}
	}

	// §4.7 preamble extension, deferred until after back-trace (see note
	// above Identify), then Pass 1 -- Runtime group.
	ExtendPreamble(stmts)
	var runtimeStmts []int
	for i := range stmts {
		if stmts[i].Wrap == model.WrapRuntime && stmts[i].ModuleID == -1 {
			runtimeStmts = append(runtimeStmts, i)
		}
	}
	if len(runtimeStmts) > 0 {
		m := &model.Module{ID: nextID, Wrap: model.WrapRuntime, Statements: runtimeStmts, Primary: runtimeStmts[0]}
		nextID++
		for _, i := range runtimeStmts {
			stmts[i].ModuleID = m.ID
		}
		modules = append(modules, m)
	}

	// Pass 4 -- Import detection.
	factoryNames := map[string]bool{}
	for _, m := range modules {
		if m.Wrap != model.WrapCJS && m.Wrap != model.WrapESM {
			continue
		}
		for _, i := range m.Statements {
			for _, name := range defmap.NamesDefined(raw[i]) {
				factoryNames[name] = true
			}
		}
	}
	for i := range stmts {
		if stmts[i].ModuleID != -1 {
			continue
		}
		if isFactoryCall(raw[i], factoryNames) {
			stmts[i].Wrap = model.WrapImport
		}
	}

	// Pass 5 -- Jaccard clustering over remaining unassigned statements.
	runs := unassignedRuns(stmts)
	for _, run := range runs {
		elements := buildElements(run, stmts)
		flushModules := clusterElements(elements, stmts, refg)
		for _, els := range flushModules {
			var all []int
			allImport := true
			for _, idx := range els {
				all = append(all, idx)
				if stmts[idx].Wrap != model.WrapImport {
					allImport = false
				}
			}
			sort.Ints(all)
			wrap := model.WrapNone
			if allImport {
				wrap = model.WrapImport
			}
			m := &model.Module{ID: nextID, Wrap: wrap, Statements: all, Primary: all[0]}
			nextID++
			for _, idx := range all {
				stmts[idx].ModuleID = m.ID
			}
			modules = append(modules, m)
		}
	}

	renumber(modules, stmts)
	_ = n
	return modules
}

func isESMFactory(s jsast.Stmt, helpers helper.Map) bool {
	sv, ok := s.Data.(*jsast.SVar)
	if !ok {
		return false
	}
	for _, decl := range sv.Decls {
		if decl.Init == nil {
			continue
		}
		call, ok := decl.Init.Data.(*jsast.ECall)
		if !ok {
			continue
		}
		name, ok := jsast.CalleeName(call.Target)
		if !ok {
			continue
		}
		if helpers[name] == helper.ESM {
			return true
		}
	}
	return false
}

func isFactoryCall(s jsast.Stmt, factoryNames map[string]bool) bool {
	switch d := s.Data.(type) {
	case *jsast.SVar:
		for _, decl := range d.Decls {
			if decl.Init == nil {
				continue
			}
			if call, ok := decl.Init.Data.(*jsast.ECall); ok {
				if name, ok := jsast.CalleeName(call.Target); ok && factoryNames[name] {
					return true
				}
			}
		}
	case *jsast.SExpr:
		if call, ok := d.Value.Data.(*jsast.ECall); ok {
			if name, ok := jsast.CalleeName(call.Target); ok && factoryNames[name] {
				return true
			}
		}
	}
	return false
}

// unassignedRuns splits the statement sequence into maximal contiguous
// runs of unassigned (ModuleID == -1) indices.
func unassignedRuns(stmts []model.Statement) [][]int {
	var runs [][]int
	var cur []int
	for i := range stmts {
		if stmts[i].ModuleID == -1 {
			cur = append(cur, i)
		} else if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

type element struct {
	indices []int
}

// buildElements collapses consecutive IMPORT statements within a run into
// one super-node element; every other statement is a singleton element.
func buildElements(run []int, stmts []model.Statement) []element {
	var elements []element
	i := 0
	for i < len(run) {
		idx := run[i]
		if stmts[idx].Wrap == model.WrapImport {
			block := []int{idx}
			j := i + 1
			for j < len(run) && run[j] == run[j-1]+1 && stmts[run[j]].Wrap == model.WrapImport {
				block = append(block, run[j])
				j++
			}
			elements = append(elements, element{indices: block})
			i = j
			continue
		}
		elements = append(elements, element{indices: []int{idx}})
		i++
	}
	return elements
}

// fingerprintOf computes the set of module ids *reached* by an element's
// outbound references. A direct reference to an already-assigned
// statement contributes that statement's module id. A reference to a
// statement that is itself still unassigned (e.g. another IMPORT
// statement in the same run, not yet clustered) is followed
// transitively through that statement's own outbound references instead
// of being silently dropped -- otherwise an import super-node and the
// consumer statements that read its results could never share a
// fingerprint, since the only thing a consumer ever points at directly
// is the unassigned import variable, never the factory module itself.
func fingerprintOf(el element, stmts []model.Statement, refg *refgraph.Graph) map[int]bool {
	fp := map[int]bool{}
	visited := map[int]bool{}
	for _, idx := range el.indices {
		visited[idx] = true
	}
	var visit func(idx int)
	visit = func(idx int) {
		for _, j := range refg.Out[idx] {
			if stmts[j].ModuleID != -1 {
				fp[stmts[j].ModuleID] = true
				continue
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			visit(j)
		}
	}
	for _, idx := range el.indices {
		visit(idx)
	}
	return fp
}

func jaccard(a, b map[int]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	union := map[int]bool{}
	for k := range a {
		union[k] = true
		if b[k] {
			inter++
		}
	}
	for k := range b {
		union[k] = true
	}
	if len(union) == 0 {
		return 1.0
	}
	return float64(inter) / float64(len(union))
}

// clusterElements runs the left-to-right Jaccard clustering over one run's
// elements and returns the flushed clusters as lists of statement indices.
func clusterElements(elements []element, stmts []model.Statement, refg *refgraph.Graph) [][]int {
	var flushed [][]int
	if len(elements) == 0 {
		return flushed
	}
	clusterIndices := append([]int{}, elements[0].indices...)
	clusterFP := fingerprintOf(elements[0], stmts, refg)

	for _, el := range elements[1:] {
		elFP := fingerprintOf(el, stmts, refg)
		if jaccard(clusterFP, elFP) >= config.JaccardThreshold {
			clusterIndices = append(clusterIndices, el.indices...)
			for k := range elFP {
				clusterFP[k] = true
			}
		} else {
			flushed = append(flushed, clusterIndices)
			clusterIndices = append([]int{}, el.indices...)
			clusterFP = elFP
		}
	}
	flushed = append(flushed, clusterIndices)
	return flushed
}

// renumber sorts modules by min(statements) ascending and reassigns ids
// 0..N-1, updating every statement's module id accordingly.
func renumber(modules []*model.Module, stmts []model.Statement) {
	sort.Slice(modules, func(a, b int) bool {
		return minOf(modules[a].Statements) < minOf(modules[b].Statements)
	})
	for newID, m := range modules {
		for _, idx := range m.Statements {
			stmts[idx].ModuleID = newID
		}
		m.ID = newID
	}
}

func minOf(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
