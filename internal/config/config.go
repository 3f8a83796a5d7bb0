// Package config holds the engine's options (spec §6: "the only
// tunables"), trimmed down from the teacher's internal/config (which
// carries a much larger JSX/TS/platform options surface this analyzer
// has no use for) to the handful of knobs the spec actually names, plus
// driver-level settings loaded from an optional YAML file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ECMAVersion pins the parser's target level. The spec names 2022 as the
// only level this engine is built against; it is not meant to vary.
const ECMAVersion = 2022

// SourceType mirrors the teacher's js_parser.SourceType split between a
// bare script and an ES module.
type SourceType uint8

const (
	SourceTypeModule SourceType = iota
	SourceTypeScript
)

// EngineOptions are the spec's only real tunables (§6): the ECMAScript
// level is fixed at ECMAVersion and is not a field here on purpose.
type EngineOptions struct {
	SourceType          SourceType
	RecordLineColumn    bool
}

func DefaultEngineOptions() EngineOptions {
	return EngineOptions{SourceType: SourceTypeModule, RecordLineColumn: true}
}

// DriverConfig is loaded from an optional YAML file and controls the CLI
// driver, not the analysis engine itself: output paths, whether to print
// the terminal summary, and the log level. None of these affect analysis
// determinism (spec §5's "pure function of (source bytes, configuration)"
// refers to EngineOptions, not this).
type DriverConfig struct {
	OutputDir       string `yaml:"output_dir"`
	AnnotatedSuffix string `yaml:"annotated_suffix"`
	PrintSummary    bool   `yaml:"print_summary"`
	LogLevel        string `yaml:"log_level"`
}

func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		OutputDir:       "",
		AnnotatedSuffix: ".annotated.js",
		PrintSummary:    true,
		LogLevel:        "info",
	}
}

// LoadDriverConfig reads a YAML file at path, falling back to defaults
// for any field the file omits. A missing file is not an error; it just
// means defaults apply (spec §7's "non-errors" philosophy extends to the
// driver's own config, which has no required keys).
func LoadDriverConfig(path string) (DriverConfig, error) {
	cfg := DefaultDriverConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Fixed design constants (spec §6/§9): not configurable, not exposed on
// any options struct, and never sourced from YAML.
const (
	JaccardThreshold     = 0.5
	PreambleCutoff       = 10
	PreambleSignalCount  = 3
)
