package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
	"github.com/cversek/js-demini/internal/model"
)

func categoriesOf(t *testing.T, src string) []model.Statement {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	h := helper.Detect(prog.Stmts, src)
	return Categories(prog.Stmts, h)
}

func TestVarDeclPlain(t *testing.T) {
	out := categoriesOf(t, "var x=1;")
	require.Equal(t, "VAR_DECL", out[0].Category)
	require.Equal(t, model.WrapNone, out[0].Wrap)
}

func TestRuntimeHelperDefinitionCategory(t *testing.T) {
	out := categoriesOf(t, "var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);")
	require.Equal(t, "RUNTIME_HELPER.__commonJS", out[0].Category)
	require.Equal(t, model.WrapRuntime, out[0].Wrap)
}

func TestModuleFactoryCategory(t *testing.T) {
	out := categoriesOf(t, "var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);\nvar r=w((e,m)=>{m.exports=1;});")
	require.Equal(t, "MODULE_FACTORY.__commonJS", out[1].Category)
	require.Equal(t, model.WrapCJS, out[1].Wrap)
}

func TestFunctionDeclCategory(t *testing.T) {
	out := categoriesOf(t, "function f(){}")
	require.Equal(t, "FUNCTION_DECL", out[0].Category)
	require.Equal(t, model.WrapNone, out[0].Wrap)
}

func TestObjectAliasPreambleWithinCutoff(t *testing.T) {
	out := categoriesOf(t, "var d=Object.defineProperty;")
	require.Equal(t, "RUNTIME_HELPER.preamble", out[0].Category)
	require.Equal(t, model.WrapRuntime, out[0].Wrap)
}
