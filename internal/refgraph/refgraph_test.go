package refgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/defmap"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func build(t *testing.T, src string) *Graph {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	defs := defmap.Build(prog.Stmts)
	return Build(prog.Stmts, defs)
}

func TestBuildSymmetry(t *testing.T) {
	g := build(t, "var a=1;\nvar b=a+1;\n")
	require.Equal(t, []int{0}, g.Out[1])
	require.Equal(t, []int{1}, g.In[0])
	require.Empty(t, g.Out[0])
	require.Empty(t, g.In[1])
}

func TestBuildNoSelfLoop(t *testing.T) {
	g := build(t, "var a=a;\n")
	require.Empty(t, g.Out[0])
	require.Empty(t, g.In[0])
}

func TestBuildUndefinedReferenceIgnored(t *testing.T) {
	g := build(t, "var a=undefinedGlobal+1;\n")
	require.Empty(t, g.Out[0])
}
