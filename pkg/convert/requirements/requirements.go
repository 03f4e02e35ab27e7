// Package requirements emits a flat requirements.txt from the build manifest.
package requirements

import (
	"os"
	"strings"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/manifest"
	"github.com/matzehuels/captain/pkg/module"
)

const (
	// Name is the registry name this module is configured under.
	Name = "parser_requirements"
	// Command is the dispatch command the module answers to.
	Command = "req"
	// Artifact is the filename written to the output directory.
	Artifact = "requirements.txt"
)

// Module converts the manifest dependency list into requirements.txt.
// Version constraints embedded in dependency strings pass through opaque,
// so "plumbum>=1.8" stays one line.
type Module struct{}

// New returns the requirements converter.
func New() *Module { return &Module{} }

func (m *Module) Info() module.Info {
	return module.Info{
		Name:        Name,
		Description: "generate requirements.txt from the build manifest",
		Topics:      []string{bus.CommandTopic(Command)},
	}
}

func (m *Module) Register(b *bus.Bus, rc *module.RunContext) {
	b.Subscribe(bus.CommandTopic(Command), func(string, any) error {
		return m.convert(rc)
	})
}

func (m *Module) convert(rc *module.RunContext) error {
	man, err := manifest.Load(rc.ManifestPath)
	if err != nil {
		return err
	}
	if err := rc.EnsureOutputDir(); err != nil {
		return err
	}

	path := rc.ArtifactPath(Artifact)
	if err := os.WriteFile(path, []byte(Render(man.Dependencies)), 0o644); err != nil {
		return err
	}

	rc.AddArtifact(Artifact)
	rc.Logger.Debug("wrote artifact", "module", Name, "path", path, "deps", len(man.Dependencies))
	rc.Console.OK(Artifact)
	return nil
}

// Render produces the file content: one dependency per line with a trailing
// newline, or the empty string when there are no dependencies.
func Render(deps []string) string {
	if len(deps) == 0 {
		return ""
	}
	return strings.Join(deps, "\n") + "\n"
}
