package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/helper"
	"github.com/cversek/js-demini/internal/jsparser"
	"github.com/cversek/js-demini/internal/logger"
)

func fp(t *testing.T, src string) Result {
	t.Helper()
	source := &logger.Source{KeyPath: "t.js", PrettyPath: "t.js", Contents: src}
	prog, err := jsparser.Parse(logger.NewLog(), source)
	require.NoError(t, err)
	h := helper.Detect(prog.Stmts, src)
	return Fingerprint(prog.Stmts, h, src)
}

func TestUnknownWithNoSignals(t *testing.T) {
	r := fp(t, "var x=1;\n")
	require.Equal(t, "unknown", r.Bundler)
	require.Equal(t, Low, r.Confidence)
}

func TestHighConfidenceOnTwoSignals(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var d=Object.defineProperty;
var c=Object.create;
var n=Object.getOwnPropertyNames;
`
	r := fp(t, src)
	require.Contains(t, r.Signals, "helper:__commonJS")
	require.Contains(t, r.Signals, "preamble-object-aliases")
	require.Equal(t, "esbuild", r.Bundler)
	require.Equal(t, High, r.Confidence)
}

func TestCreateRequireImportMetaSignal(t *testing.T) {
	src := "var req=createRequire(import.meta.url);\n"
	r := fp(t, src)
	require.Contains(t, r.Signals, "createRequire+import.meta.url")
}
