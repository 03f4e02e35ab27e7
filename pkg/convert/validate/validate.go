// Package validate checks the build manifest structure and reports
// findings on the console.
//
// Rules, checked in order with the first failure ending the run:
//
//   - the manifest exists and parses to a non-empty YAML mapping,
//   - keys outside myproject and dependencies draw a warning only,
//   - myproject, when present, is a non-empty string,
//   - dependencies, when present, is a list of non-empty strings.
//
// Findings are console output, not handler errors: the handler always
// returns nil so a failed validation never aborts the command sequence.
package validate

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/manifest"
	"github.com/matzehuels/captain/pkg/module"
)

const (
	// Name is the registry name this module is configured under.
	Name = "validator_build"
	// Command is the dispatch command the module answers to. Command
	// names may carry spaces; the dispatcher treats them as opaque.
	Command = "validate build"
)

// Module validates the manifest without producing an artifact.
type Module struct{}

// New returns the manifest validator.
func New() *Module { return &Module{} }

func (m *Module) Info() module.Info {
	return module.Info{
		Name:        Name,
		Description: "check the build manifest structure",
		Topics:      []string{bus.CommandTopic(Command)},
	}
}

func (m *Module) Register(b *bus.Bus, rc *module.RunContext) {
	b.Subscribe(bus.CommandTopic(Command), func(string, any) error {
		m.validate(rc)
		return nil
	})
}

func (m *Module) validate(rc *module.RunContext) {
	file := filepath.Base(rc.ManifestPath)

	doc, err := manifest.Inspect(rc.ManifestPath)
	if err != nil {
		rc.Console.Errorf("Missing or unreadable %s", file)
		return
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		// A document of the wrong shape reads the same as no document.
		rc.Console.Errorf("Missing or unreadable %s", file)
		return
	}
	if len(mapping) == 0 {
		rc.Console.Errorf("%s must be a non-empty dictionary (YAML mapping)", file)
		return
	}

	if unknown := unknownKeys(mapping); len(unknown) > 0 {
		rc.Console.Warnf("Unknown keys: %s", strings.Join(unknown, ", "))
	}

	if v, present := mapping[manifest.KeyProject]; present {
		s, isString := v.(string)
		if !isString || strings.TrimSpace(s) == "" {
			rc.Console.Errorf("'%s' must be a non-empty string", manifest.KeyProject)
			return
		}
	}

	if v, present := mapping[manifest.KeyDependencies]; present {
		deps, isList := v.([]any)
		if !isList {
			rc.Console.Errorf("'%s' must be a list of strings", manifest.KeyDependencies)
			return
		}
		for i, item := range deps {
			s, isString := item.(string)
			if !isString || strings.TrimSpace(s) == "" {
				rc.Console.Errorf("%s[%d] must be a non-empty string", manifest.KeyDependencies, i)
				return
			}
		}
	}

	rc.Console.OK(file)
}

// unknownKeys returns the mapping keys outside the manifest schema, sorted.
func unknownKeys(mapping map[string]any) []string {
	var unknown []string
	for key := range mapping {
		if key != manifest.KeyProject && key != manifest.KeyDependencies {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}
