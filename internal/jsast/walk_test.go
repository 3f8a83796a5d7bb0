package jsast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func identifiers(t *testing.T, src string) []string {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	var names []string
	jsast.WalkIdentifiers(prog.Stmts, func(n string) { names = append(names, n) })
	return names
}

func TestWalkIdentifiersSkipsBindingNames(t *testing.T) {
	names := identifiers(t, "var a=b;\n")
	require.Contains(t, names, "b")
	require.NotContains(t, names, "a")
}

func TestWalkIdentifiersSkipsNonComputedMemberProperty(t *testing.T) {
	names := identifiers(t, "var x=obj.prop;\n")
	require.Contains(t, names, "obj")
	require.NotContains(t, names, "prop")
}

func TestWalkIdentifiersRecursesIntoArrowBody(t *testing.T) {
	names := identifiers(t, "var f=()=>outer;\n")
	require.Contains(t, names, "outer")
}

func TestWalkIdentifiersVisitsObjectBindingDefault(t *testing.T) {
	names := identifiers(t, "var {x=fallback}=obj;\n")
	require.Contains(t, names, "fallback")
	require.NotContains(t, names, "x")
}

func TestWalkIdentifiersVisitsArrayBindingDefault(t *testing.T) {
	names := identifiers(t, "var [a=fallback]=arr;\n")
	require.Contains(t, names, "fallback")
	require.NotContains(t, names, "a")
}

func TestWalkIdentifiersVisitsParamDefault(t *testing.T) {
	names := identifiers(t, "function f(a,b=c){}\n")
	require.Contains(t, names, "c")
	require.NotContains(t, names, "b")
}

func TestWalkIdentifiersVisitsArrowParamDefault(t *testing.T) {
	names := identifiers(t, "var f=(a=b)=>a;\n")
	require.Contains(t, names, "b")
}

func TestWalkIdentifiersVisitsForInObject(t *testing.T) {
	names := identifiers(t, "for(var k in someObject){}\n")
	require.Contains(t, names, "someObject")
	require.NotContains(t, names, "k")
}

func TestWalkIdentifiersVisitsForOfIterable(t *testing.T) {
	names := identifiers(t, "for(const x of someArray){}\n")
	require.Contains(t, names, "someArray")
	require.NotContains(t, names, "x")
}
