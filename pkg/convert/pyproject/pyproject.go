// Package pyproject emits a PEP 621 pyproject.toml from the build manifest.
package pyproject

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/manifest"
	"github.com/matzehuels/captain/pkg/module"
)

const (
	// Name is the registry name this module is configured under.
	Name = "parser_pyproject"
	// Command is the dispatch command the module answers to.
	Command = "pyproject"
	// Artifact is the filename written to the output directory.
	Artifact = "pyproject.toml"

	// projectVersion is stamped into every generated file. The manifest
	// carries no version field, so the value is fixed.
	projectVersion = "1.0"
)

// Document is the generated pyproject.toml, [project] table first.
type Document struct {
	Project     Project     `toml:"project"`
	BuildSystem BuildSystem `toml:"build-system"`
}

type Project struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Dependencies []string `toml:"dependencies"`
}

type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

// Module converts the manifest into a setuptools pyproject.toml.
type Module struct{}

// New returns the pyproject converter.
func New() *Module { return &Module{} }

func (m *Module) Info() module.Info {
	return module.Info{
		Name:        Name,
		Description: "generate pyproject.toml from the build manifest",
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

	data, err := Render(Build(man))
	if err != nil {
		return err
	}
	if err := rc.EnsureOutputDir(); err != nil {
		return err
	}

	path := rc.ArtifactPath(Artifact)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	rc.AddArtifact(Artifact)
	rc.Logger.Debug("wrote artifact", "module", Name, "path", path, "project", man.ProjectName())
	rc.Console.OK(Artifact)
	return nil
}

// Build assembles the document from the manifest. The project name falls
// back to the manifest default when the myproject key is absent.
func Build(man *manifest.Manifest) Document {
	return Document{
		Project: Project{
			Name:         man.ProjectName(),
			Version:      projectVersion,
			Dependencies: man.Dependencies,
		},
		BuildSystem: BuildSystem{
			Requires:     []string{"setuptools", "wheel"},
			BuildBackend: "setuptools.build_meta",
		},
	}
}

// Render encodes the document as TOML without table indentation.
func Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
