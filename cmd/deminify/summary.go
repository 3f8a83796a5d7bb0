package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cversek/js-demini/internal/engine"
)

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#9aa5b1"))
	summaryOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	summaryBad   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5534b")).Bold(true)
)

// summaryView mirrors the teacher's own CLI build summary (cmd/esbuild):
// a short human-readable recap printed after the two JSON reports and the
// annotated file have already been written. It adds no analysis
// semantics of its own.
func summaryView(r *engine.Result) string {
	var b strings.Builder
	fmt.Fprintln(&b, summaryTitle.Render("DEMINI-CLASSIFY BUNDLE ANALYSIS"))
	fmt.Fprintf(&b, "%s %s (confidence: %s)\n", summaryLabel.Render("bundler:"), r.Classify.Bundler, r.Classify.BundlerConfidence)
	fmt.Fprintf(&b, "%s %d\n", summaryLabel.Render("statements:"), r.Classify.TotalStatements)
	fmt.Fprintf(&b, "%s %d\n", summaryLabel.Render("modules:"), r.Trace.TotalModules)

	wraps := make([]string, 0, len(r.Trace.WrapkindModules))
	for k := range r.Trace.WrapkindModules {
		wraps = append(wraps, k)
	}
	sort.Strings(wraps)
	var parts []string
	for _, k := range wraps {
		parts = append(parts, fmt.Sprintf("%s=%d", k, r.Trace.WrapkindModules[k]))
	}
	fmt.Fprintf(&b, "%s %s\n", summaryLabel.Render("wrapkind modules:"), strings.Join(parts, " "))

	matchStyle := summaryOK
	matchText := "match"
	if !r.Classify.ByteAccountingMatch {
		matchStyle = summaryBad
		matchText = "MISMATCH"
	}
	fmt.Fprintf(&b, "%s %s\n", summaryLabel.Render("byte accounting:"), matchStyle.Render(matchText))
	return b.String()
}
