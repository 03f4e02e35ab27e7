// Package pipeline drives a Captain run.
//
// A run is: load the run configuration, register the configured modules
// on a fresh event bus, then publish one topic per configured command,
// in order. The CLI is a thin wrapper around this package, so the same
// behavior is available as a library.
//
// # Architecture
//
// The run consists of three stages:
//
//  1. Configure: read config.yaml (version, modules, commands) and fail
//     fast on structural problems
//  2. Register: resolve module names against the static registry and let
//     each module subscribe its command topics
//  3. Dispatch: publish command:<name> for every configured command,
//     strictly in list order
//
// Handler failures are reported and skipped; only structural
// configuration errors abort a run.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := pipeline.NewRunner(nil, logger, nil)
//	err := runner.Run(ctx, pipeline.Options{
//	    ConfigPath: "config.yaml",
//	})
package pipeline

import (
	"github.com/matzehuels/captain/pkg/config"
	"github.com/matzehuels/captain/pkg/manifest"
)

// DefaultOutputDir is where artifacts land unless overridden.
const DefaultOutputDir = "Output"

// Options configures a single run.
type Options struct {
	// ConfigPath locates the run configuration file.
	ConfigPath string

	// Command, when non-empty, replaces the configured command list
	// with this single command.
	Command string

	// ManifestPath locates the dependency manifest converters read.
	ManifestPath string

	// OutputDir receives the generated artifacts.
	OutputDir string
}

// WithDefaults returns a copy of the options with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.ConfigPath == "" {
		o.ConfigPath = config.DefaultFile
	}
	if o.ManifestPath == "" {
		o.ManifestPath = manifest.DefaultFile
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	return o
}
