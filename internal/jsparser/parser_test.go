package jsparser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/jsast"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func parse(t *testing.T, src string) *jsast.Program {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	return prog
}

func TestParseVarDeclByteRange(t *testing.T) {
	src := "var x=1;\n"
	prog := parse(t, src)
	require.Len(t, prog.Stmts, 1)
	s := prog.Stmts[0]
	require.Equal(t, "var x=1;", src[s.Range.Loc.Start:s.Range.End()])
}

func TestParseClassExtendsIsWalkable(t *testing.T) {
	src := "class Foo extends Base {}\n"
	prog := parse(t, src)
	require.Len(t, prog.Stmts, 1)
	cls, ok := prog.Stmts[0].Data.(*jsast.SClass)
	require.True(t, ok)
	require.NotNil(t, cls.Extends)

	var names []string
	jsast.WalkIdentifiers(prog.Stmts, func(n string) { names = append(names, n) })
	require.Contains(t, names, "Base")
}

func TestParseForInCapturesIterable(t *testing.T) {
	src := "for(var k in someObject){}\n"
	prog := parse(t, src)
	require.Len(t, prog.Stmts, 1)
	f, ok := prog.Stmts[0].Data.(*jsast.SFor)
	require.True(t, ok)
	require.NotNil(t, f.Object)

	var names []string
	jsast.WalkIdentifiers(prog.Stmts, func(n string) { names = append(names, n) })
	require.Contains(t, names, "someObject")
}

func TestParseInvalidSyntaxReturnsError(t *testing.T) {
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: "var ;"}
	_, err := jsparser.Parse(logger.NewLog(), source)
	require.Error(t, err)
}
