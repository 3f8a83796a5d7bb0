// Command deminify reconstructs the internal module structure of a single
// bundled JavaScript file: which runtime helpers the bundler injected,
// where each original module was inlined, and how those modules depend on
// one another. It writes an annotated copy of the input plus two JSON
// reports; it never modifies executable bytes.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cversek/js-demini/internal/config"
	"github.com/cversek/js-demini/internal/engine"
)

var (
	flagOutputDir    string
	flagConfigPath   string
	flagPrintSummary bool
	flagVerbose      bool
)

func main() {
	root := &cobra.Command{
		Use:   "deminify [input.js]",
		Short: "Reconstruct the module structure of a bundled JS file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeminify,
	}
	root.Flags().StringVar(&flagOutputDir, "outdir", "", "directory to write outputs to (default: alongside input)")
	root.Flags().StringVar(&flagConfigPath, "config", "", "optional YAML driver config file")
	root.Flags().BoolVar(&flagPrintSummary, "summary", true, "print a terminal summary after analysis")
	root.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug-level logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func runDeminify(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	driverCfg, err := config.LoadDriverConfig(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagOutputDir != "" {
		driverCfg.OutputDir = flagOutputDir
	}
	if cmd.Flags().Changed("summary") {
		driverCfg.PrintSummary = flagPrintSummary
	}

	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(driverCfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	if flagVerbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.TimeKey = ""
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return &engine.InputError{Path: inputPath, Reason: err.Error()}
	}

	result, err := engine.Analyze(inputPath, src, config.DefaultEngineOptions(), logger)
	if err != nil {
		return err
	}

	outDir := driverCfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if err := writeOutputs(outDir, base, driverCfg.AnnotatedSuffix, result); err != nil {
		return err
	}

	if driverCfg.PrintSummary {
		fmt.Println(summaryView(result))
	}
	return nil
}

func writeOutputs(outDir, base, annotatedSuffix string, result *engine.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	annotatedPath := filepath.Join(outDir, base+annotatedSuffix)
	if err := os.WriteFile(annotatedPath, []byte(result.Annotated), 0o644); err != nil {
		return err
	}

	classifyBytes, err := json.MarshalIndent(result.Classify, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, base+".classify.json"), classifyBytes, 0o644); err != nil {
		return err
	}

	traceBytes, err := json.MarshalIndent(result.Trace, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, base+".trace.json"), traceBytes, 0o644)
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case *engine.InputError:
		return 1
	case *engine.ParseError:
		return 2
	case *engine.InvariantError:
		return 3
	default:
		return 1
	}
}
