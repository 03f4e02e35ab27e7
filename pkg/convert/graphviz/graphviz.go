// Package graphviz renders the manifest dependency list as an SVG graph.
//
// The graph is a star: the project node on top, one node per dependency
// name, and edges labelled with the version constraint when the
// requirement carries one ("plumbum>=1.8" becomes plumbum with a ">=1.8"
// edge label).
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	gviz "github.com/goccy/go-graphviz"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/manifest"
	"github.com/matzehuels/captain/pkg/module"
)

const (
	// Name is the registry name this module is configured under.
	Name = "parser_graphviz"
	// Command is the dispatch command the module answers to.
	Command = "graph"
	// Artifact is the filename written to the output directory.
	Artifact = "dependencies.svg"
)

// depNameRE matches the package name prefix of a requirement string.
var depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// Module draws the manifest as a dependency graph.
type Module struct{}

// New returns the graph converter.
func New() *Module { return &Module{} }

func (m *Module) Info() module.Info {
	return module.Info{
		Name:        Name,
		Description: "render the manifest dependency graph as SVG",
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

	svg, err := RenderSVG(ToDOT(man))
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	if err := rc.EnsureOutputDir(); err != nil {
		return err
	}

	path := rc.ArtifactPath(Artifact)
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return err
	}

	rc.AddArtifact(Artifact)
	rc.Logger.Debug("wrote artifact", "module", Name, "path", path)
	rc.Console.OK(Artifact)
	return nil
}

// splitRequirement separates a requirement string into package name and
// version constraint. Strings without a recognizable name come back whole,
// with an empty constraint.
func splitRequirement(req string) (name, constraint string) {
	m := depNameRE.FindStringSubmatch(req)
	if len(m) < 2 {
		return req, ""
	}
	return m[1], strings.TrimSpace(req[len(m[1]):])
}

// ToDOT converts the manifest to Graphviz DOT format. Duplicate dependency
// names collapse into one node; the first occurrence wins.
func ToDOT(man *manifest.Manifest) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	root := man.ProjectName()
	fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,bold\", fillcolor=lightgrey];\n", root)

	seen := make(map[string]bool)
	for _, req := range man.Dependencies {
		name, constraint := splitRequirement(req)
		if seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintf(&buf, "  %q;\n", name)
		if constraint != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", root, name, constraint)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", root, name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := gviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := gviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
