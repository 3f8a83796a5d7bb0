package helper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func TestDetectCommonJSCurriedShape(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	require.Equal(t, CommonJS, m["w"])
}

func TestDetectESMCurriedShape(t *testing.T) {
	src := `var v=(a,b)=>()=>(b||a(b={},()=>{x=0;}),b);`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	require.Equal(t, ESM, m["v"])
}

func TestDetectKnownNameShortcut(t *testing.T) {
	src := `var __commonJS=1;`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	require.Equal(t, CommonJS, m["__commonJS"])
}

func TestDetectToESM(t *testing.T) {
	src := `var t=e=>e&&e.__esModule?e:{default:e};`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	require.Equal(t, ToESM, m["t"])
}

func TestDetectCopyProps(t *testing.T) {
	src := `var c=function(to,from){Object.getOwnPropertyNames(from);Object.defineProperty(to,"x",{});return to;};`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	require.Equal(t, CopyProps, m["c"])
}

func TestDetectNoMatch(t *testing.T) {
	src := `var q=1;`
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	m := Detect(prog.Stmts, src)
	_, ok := m["q"]
	require.False(t, ok)
}
