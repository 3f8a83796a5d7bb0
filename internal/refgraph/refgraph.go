// Package refgraph builds the statement-level reference graph (spec
// §4.6): for each statement, the set of other statements it references
// and the set of statements that reference it, by walking every
// identifier in the statement's subtree and looking each one up in the
// definition map.
//
// Shadowing by nested binders is ignored deliberately (a documented
// approximation, see spec §4.6/§9): bundled code uses globally unique
// mangled names, so treating each statement as a flat scope is safe for
// the target input class.
package refgraph

import (
	"sort"

	"github.com/cversek/js-demini/internal/defmap"
	"github.com/cversek/js-demini/internal/jsast"
)

// Graph holds sorted adjacency sets keyed by statement index, per spec §9
// ("graphs with integer keys... arrays of sorted integer sets").
type Graph struct {
	Out [][]int
	In  [][]int
}

// Build constructs the reference graph over stmts using defs as the
// name -> owning-statement lookup.
func Build(stmts []jsast.Stmt, defs defmap.Map) *Graph {
	n := len(stmts)
	outSets := make([]map[int]bool, n)
	inSets := make([]map[int]bool, n)
	for i := range outSets {
		outSets[i] = map[int]bool{}
		inSets[i] = map[int]bool{}
	}

	for i, s := range stmts {
		self := map[string]bool{}
		for _, n := range defmap.NamesDefined(s) {
			self[n] = true
		}
		jsast.WalkIdentifiers([]jsast.Stmt{s}, func(name string) {
			j, ok := defs[name]
			if !ok || j == i || self[name] {
				return
			}
			outSets[i][j] = true
			inSets[j][i] = true
		})
	}

	g := &Graph{Out: make([][]int, n), In: make([][]int, n)}
	for i := 0; i < n; i++ {
		g.Out[i] = sortedKeys(outSets[i])
		g.In[i] = sortedKeys(inSets[i])
	}
	return g
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
