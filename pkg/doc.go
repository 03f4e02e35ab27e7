// Package pkg provides the core libraries for Captain manifest conversion.
//
// # Overview
//
// Captain reads a project dependency manifest (build.yaml) and converts it
// into downstream packaging formats such as requirements.txt and
// pyproject.toml. Which conversions run, and in what order, is driven by a
// separate run configuration (config.yaml). The pkg directory is organized
// into four main areas:
//
//  1. [bus] - Synchronous publish/subscribe dispatch for commands
//  2. [module] - Module registry and per-run context
//  3. [convert] - Built-in converter and validator modules
//  4. [pipeline] - Orchestration (config → modules → dispatch)
//
// # Architecture
//
// The typical data flow through Captain:
//
//	config.yaml + build.yaml
//	         ↓
//	    [config] package (load version, modules, commands)
//	         ↓
//	    [module] package (resolve and register modules)
//	         ↓
//	    [bus] package (publish one topic per command)
//	         ↓
//	    [convert] handlers (read manifest, write artifacts)
//	         ↓
//	    requirements.txt / pyproject.toml / dependencies.svg
//
// # Quick Start
//
// Run a full conversion pass from code:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/captain/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	err := runner.Run(context.Background(), pipeline.Options{
//	    ConfigPath:   "config.yaml",
//	    ManifestPath: "build.yaml",
//	    OutputDir:    "Output",
//	})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [bus] - Minimal synchronous event bus. Handlers subscribe to topics of the
// form "command:<name>"; Publish invokes them in subscription order and
// isolates failures so one handler cannot stop the rest.
//
// [module] - Module identity and lifecycle. The Registry normalizes
// configured names (dots become underscores), rejects duplicates and the
// reserved "core" name, and wires each selected module onto the bus. The
// RunContext carries the manifest path, output directory, and the artifact
// record for a single run.
//
// [convert] - Built-in modules: requirements.txt and pyproject.toml
// converters, a manifest validator, and a Graphviz dependency diagram.
// Converters re-read the manifest on every invocation so repeated commands
// observe edits between dispatches.
//
// ## Input Formats
//
// [manifest] - build.yaml loading (project name plus dependency list) and the
// raw Inspect form used by the validator.
//
// [config] - config.yaml loading with structural validation. Structural
// errors map to a distinct exit code so callers can tell bad configuration
// from runtime failure.
//
// ## Infrastructure
//
// [pipeline] - Complete run orchestration used by the CLI: load config,
// build the registry, publish each command, report artifacts.
//
// [console] - The user-facing reporting protocol ([OK] to stdout, [WARN] and
// [ERR] to stderr) with color when attached to a terminal.
//
// [errors] - Exit-code classification for the CLI (success, failure,
// invalid configuration).
//
// [observability] - Optional run hooks (run start/complete, dispatch,
// handler error) with a no-op default.
//
// [buildinfo] - Build version metadata stamped via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/convert/...      # Converter modules only
//	go test -run TestRun ./pkg/pipeline
//
// [bus]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/bus
// [module]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/module
// [convert]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/convert
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/config
// [manifest]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/manifest
// [console]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/console
// [errors]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/captain/pkg/buildinfo
package pkg
