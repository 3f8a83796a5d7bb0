package moduleid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/classify"
	"github.com/cversek/js-demini/internal/defmap"
	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
	"github.com/cversek/js-demini/internal/model"
	"github.com/cversek/js-demini/internal/refgraph"
)

func identify(t *testing.T, src string) ([]model.Statement, []*model.Module) {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	h := helper.Detect(prog.Stmts, src)
	stmts := classify.Categories(prog.Stmts, h)
	defs := defmap.Build(prog.Stmts)
	refg := refgraph.Build(prog.Stmts, defs)
	modules := Identify(prog.Stmts, stmts, h, refg)
	return stmts, modules
}

func TestIdentifyRuntimeBeforeCJS(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r=w((e,m)=>{m.exports=1;});
`
	stmts, modules := identify(t, src)
	require.Len(t, modules, 2)
	require.Equal(t, model.WrapRuntime, modules[stmts[0].ModuleID].Wrap)
	require.Equal(t, model.WrapCJS, modules[stmts[1].ModuleID].Wrap)
	require.True(t, stmts[0].ModuleID < stmts[1].ModuleID)
}

func TestExtendPreambleOnlyClaimsLeadingNone(t *testing.T) {
	stmts := []model.Statement{
		{Index: 0, Wrap: model.WrapNone},
		{Index: 1, Wrap: model.WrapNone},
		{Index: 2, Wrap: model.WrapCJS},
		{Index: 3, Wrap: model.WrapNone},
	}
	ExtendPreamble(stmts)
	require.Equal(t, model.WrapRuntime, stmts[0].Wrap)
	require.Equal(t, model.WrapRuntime, stmts[1].Wrap)
	require.Equal(t, model.WrapCJS, stmts[2].Wrap)
	require.Equal(t, model.WrapNone, stmts[3].Wrap)
}

func TestExtendPreambleNoOpWhenNoFactory(t *testing.T) {
	stmts := []model.Statement{
		{Index: 0, Wrap: model.WrapNone},
		{Index: 1, Wrap: model.WrapNone},
	}
	ExtendPreamble(stmts)
	require.Equal(t, model.WrapNone, stmts[0].Wrap)
	require.Equal(t, model.WrapNone, stmts[1].Wrap)
}

func TestAllModulesDenseAndContiguous(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r=w((e,m)=>{m.exports=1;});
var p1;
var p2;
var g=p1+p2;
`
	_, modules := identify(t, src)
	for i, m := range modules {
		require.Equal(t, i, m.ID)
		require.NotEmpty(t, m.Statements)
		if m.Wrap != model.WrapRuntime {
			for k := 1; k < len(m.Statements); k++ {
				require.Equal(t, m.Statements[k-1]+1, m.Statements[k])
			}
		}
	}
}
