package defmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func TestBuildFirstDefinitionWins(t *testing.T) {
	src := "var x=1;\nvar x=2;\nfunction f(){}\n"
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)

	m := Build(prog.Stmts)
	require.Equal(t, 0, m["x"])
	require.Equal(t, 2, m["f"])
}

func TestNamesDefinedDestructuring(t *testing.T) {
	src := "var {a,b:[c,d]}=obj;\n"
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)

	names := NamesDefined(prog.Stmts[0])
	require.ElementsMatch(t, []string{"a", "c", "d"}, names)
}
