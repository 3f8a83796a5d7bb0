package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cversek/js-demini/internal/fingerprint"
	"github.com/cversek/js-demini/internal/model"
)

func TestAnnotatePreservesBodyBytesAndMatches(t *testing.T) {
	body := "var x=1;\nvar y=2;\n"
	stmts := []model.Statement{
		{Index: 0, Start: 0, End: 9, Category: "VAR_DECL", Wrap: model.WrapNone, Names: []string{"x"}, ModuleID: 0},
		{Index: 1, Start: 9, End: 18, Category: "VAR_DECL", Wrap: model.WrapNone, Names: []string{"y"}, ModuleID: 1},
	}
	modules := []*model.Module{
		{ID: 0, Wrap: model.WrapNone, Statements: []int{0}, Primary: 0, Bytes: 9},
		{ID: 1, Wrap: model.WrapNone, Statements: []int{1}, Primary: 1, Bytes: 9},
	}
	fp := fingerprint.Result{Bundler: "esbuild", Confidence: fingerprint.High}

	annotated, stats := Annotate("", body, stmts, modules, fp)

	require.True(t, stats.Match)
	require.Equal(t, len(body), stats.TotalBytesStatements+stats.TotalBytesGaps)
	require.Contains(t, annotated, "var x=1;")
	require.Contains(t, annotated, "var y=2;")
	require.Contains(t, annotated, "MODULE BOUNDARY [000]")
	require.Contains(t, annotated, "MODULE BOUNDARY [001]")
	require.Contains(t, annotated, "[0000] TYPE: VAR_DECL")
}

func TestAnnotateKeepsShebangOutsideAnnotation(t *testing.T) {
	shebang := "#!/usr/bin/env node\n"
	body := "var x=1;\n"
	stmts := []model.Statement{
		{Index: 0, Start: 0, End: 9, Category: "VAR_DECL", Wrap: model.WrapNone, ModuleID: 0},
	}
	modules := []*model.Module{{ID: 0, Wrap: model.WrapNone, Statements: []int{0}, Primary: 0, Bytes: 9}}
	fp := fingerprint.Result{Bundler: "unknown", Confidence: fingerprint.Low}

	annotated, stats := Annotate(shebang, body, stmts, modules, fp)
	require.True(t, stats.Match)
	require.True(t, len(annotated) > 0)
	require.Equal(t, shebang, annotated[:len(shebang)])
}
