package report_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/engine"
)

func TestBuildClassifyAndTraceShapes(t *testing.T) {
	src := `var w=(a,b)=>()=>(b||a((b={exports:{}}).exports,b),b.exports);
var r=w((e,m)=>{m.exports=1;});
`
	res, err := engine.Analyze("t.js", []byte(src), config.DefaultEngineOptions(), nil)
	require.NoError(t, err)

	require.Equal(t, 2, res.Classify.TotalStatements)
	require.Len(t, res.Classify.Statements, 2)
	require.NotEmpty(t, res.Classify.RunID)
	require.True(t, res.Classify.ByteAccountingMatch)

	require.Equal(t, 2, res.Trace.TotalModules)
	require.Len(t, res.Trace.Statements, 2)
	for _, s := range res.Trace.Statements {
		require.NotNil(t, s.RefsOut)
	}
	require.NotEmpty(t, res.Trace.RunID)
}
