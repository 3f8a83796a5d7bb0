package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/model"
)

func analyze(t *testing.T, src string) *Result {
	t.Helper()
	r, err := Analyze("test.js", []byte(src), config.DefaultEngineOptions(), nil)
	require.NoError(t, err)
	return r
}

// Scenario 1: pure CJS factory bundle (spec §8 scenario 1).
func TestPureCJSFactoryBundle(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r=w((e,m)=>{m.exports=1;});
`
	r := analyze(t, src)
	require.Equal(t, "__commonJS", r.Classify.RuntimeHelpers["w"])
	require.Equal(t, 2, r.Trace.TotalModules)

	var runtime, cjs *int
	for _, m := range r.Trace.Modules {
		id := m.ID
		switch m.WrapKind {
		case string(model.WrapRuntime):
			runtime = &id
		case string(model.WrapCJS):
			cjs = &id
		}
	}
	require.NotNil(t, runtime)
	require.NotNil(t, cjs)
	require.True(t, *runtime < *cjs)
	require.True(t, r.Classify.ByteAccountingMatch)
}

// Scenario 2: ESM back-trace (spec §8 scenario 2).
func TestESMBackTrace(t *testing.T) {
	src := `var v=(a,b)=>()=>(b||a(b={},()=>{x=0;}),b);
var a;
var b;
function f(){}
var m=v(()=>{a=b=f();});
`
	r := analyze(t, src)
	require.Equal(t, "__esm", r.Classify.RuntimeHelpers["v"])

	var esmModule *struct {
		Statements []int
	}
	for _, m := range r.Trace.Modules {
		if m.WrapKind == string(model.WrapESM) {
			esmModule = &struct{ Statements []int }{Statements: m.Statements}
		}
	}
	require.NotNil(t, esmModule)
	require.Equal(t, []int{1, 2, 3, 4}, esmModule.Statements)
}

// Scenario 4: Jaccard split (two consumer statements whose fingerprints
// reach disjoint sets of already-assigned CJS modules must land in
// separate modules rather than clustering together).
func TestJaccardSplitsUnrelatedStatements(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r1=w((e,m)=>{m.exports=1;});
var r2=w((e,m)=>{m.exports=2;});
var r3=w((e,m)=>{m.exports=3;});
var r4=w((e,m)=>{m.exports=4;});
var r5=w((e,m)=>{m.exports=5;});
var r6=w((e,m)=>{m.exports=6;});
var r7=w((e,m)=>{m.exports=7;});
var r8=w((e,m)=>{m.exports=8;});
var g1=r1+r2;
var g2=r7+r8;
`
	r := analyze(t, src)
	var g1Module, g2Module int = -1, -1
	for _, s := range r.Trace.Statements {
		if contains(s.Names, "g1") {
			g1Module = s.ModuleID
		}
		if contains(s.Names, "g2") {
			g2Module = s.ModuleID
		}
	}
	require.NotEqual(t, -1, g1Module)
	require.NotEqual(t, -1, g2Module)
	require.NotEqual(t, g1Module, g2Module)
}

// Scenario 3: import super-node + clustering. Three consecutive import
// calls against already-established CJS factory names collapse into one
// element, and two consumer statements that read the imported variables
// reach the same underlying factory modules transitively, so the whole
// block of five statements clusters into one WrapKind=None module.
func TestImportSuperNodeClustersWithConsumers(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var R1=w((e,m)=>{m.exports=1;});
var R2=w((e,m)=>{m.exports=2;});
var R3=w((e,m)=>{m.exports=3;});
var x1=R1();
var x2=R2();
var x3=R3();
var g1=x1+x2;
var g2=x3+g1;
`
	r := analyze(t, src)
	var x1Module, g2Module int = -1, -1
	for _, s := range r.Trace.Statements {
		if contains(s.Names, "x1") {
			x1Module = s.ModuleID
		}
		if contains(s.Names, "g2") {
			g2Module = s.ModuleID
		}
	}
	require.NotEqual(t, -1, x1Module)
	require.Equal(t, x1Module, g2Module)

	var merged *struct {
		WrapKind   string
		Statements []int
	}
	for _, m := range r.Trace.Modules {
		if m.ID == x1Module {
			merged = &struct {
				WrapKind   string
				Statements []int
			}{WrapKind: m.WrapKind, Statements: m.Statements}
		}
	}
	require.NotNil(t, merged)
	require.Equal(t, string(model.WrapNone), merged.WrapKind)
	require.Len(t, merged.Statements, 5)
}

// Scenario 5: preamble promotion. Three leading Object.* alias
// statements, grouped with a preceding helper definition, are promoted
// to RUNTIME and merged into module 0; the CJS factory call that follows
// becomes module 1.
func TestPreamblePromotion(t *testing.T) {
	src := `var __commonJS=1;
var _=Object.create;
var __=Object.defineProperty;
var ___=Object.getOwnPropertyNames;
var r=__commonJS((e,m)=>{m.exports=1;});
`
	r := analyze(t, src)
	require.Equal(t, 2, r.Trace.TotalModules)

	var runtimeModule, cjsModule *struct {
		ID         int
		Statements []int
	}
	for _, m := range r.Trace.Modules {
		id, stmts := m.ID, m.Statements
		switch m.WrapKind {
		case string(model.WrapRuntime):
			runtimeModule = &struct {
				ID         int
				Statements []int
			}{ID: id, Statements: stmts}
		case string(model.WrapCJS):
			cjsModule = &struct {
				ID         int
				Statements []int
			}{ID: id, Statements: stmts}
		}
	}
	require.NotNil(t, runtimeModule)
	require.NotNil(t, cjsModule)
	require.Equal(t, 0, runtimeModule.ID)
	require.Equal(t, 1, cjsModule.ID)
	require.Equal(t, []int{0, 1, 2, 3}, runtimeModule.Statements)
	require.Equal(t, []int{4}, cjsModule.Statements)
}

// Scenario 6: idempotent re-annotation.
func TestIdempotentReAnnotation(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r=w((e,m)=>{m.exports=1;});
`
	first := analyze(t, src)
	second := analyze(t, first.Annotated)
	require.Equal(t, first.Classify.TotalStatements, second.Classify.TotalStatements)
}

func TestZeroStatementInputIsWellFormed(t *testing.T) {
	r := analyze(t, "")
	require.Equal(t, 0, r.Classify.TotalStatements)
	require.True(t, r.Classify.ByteAccountingMatch)
}

func TestShebangOnlyInputIsAnInputError(t *testing.T) {
	_, err := Analyze("test.js", []byte("#!/usr/bin/env node\n"), config.DefaultEngineOptions(), nil)
	require.Error(t, err)
	require.IsType(t, &InputError{}, err)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
