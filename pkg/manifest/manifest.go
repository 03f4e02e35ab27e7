// Package manifest loads Captain's dependency manifest (build.yaml).
//
// The manifest is a YAML mapping with two keys:
//
//	myproject: demo-app
//	dependencies:
//	  - plumbum>=1.8
//	  - pyyaml
//
// Two lenses exist over the same file. Load is the tolerant view used by
// format converters: entries that are not non-empty strings are skipped,
// whitespace is trimmed, order and duplicates are preserved. Inspect is
// the raw view used by the structure validator: it returns the decoded
// document as-is so every shape problem stays observable.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the manifest filename Captain looks for by default.
const DefaultFile = "build.yaml"

// DefaultProjectName is used when the manifest does not name the project.
const DefaultProjectName = "example-app"

// Top-level manifest keys.
const (
	KeyProject      = "myproject"
	KeyDependencies = "dependencies"
)

// Manifest is the converter view of build.yaml. Dependencies preserve
// manifest file order; duplicates are not collapsed. Each dependency
// string may embed a version constraint, which Captain treats as opaque.
type Manifest struct {
	Name         string
	Dependencies []string
}

// ProjectName returns the manifest's project name, or DefaultProjectName
// when the manifest does not provide one.
func (m *Manifest) ProjectName() string {
	if m.Name == "" {
		return DefaultProjectName
	}
	return m.Name
}

// LoadError reports a manifest that could not be read or parsed. Its
// message is the user-facing console form, so a handler can return it
// unchanged and the run reports "[ERR] Cannot read <file>: <reason>".
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Cannot read %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and parses the manifest at path through the tolerant lens.
// A missing or unparseable file yields a *LoadError; a readable document
// of the wrong shape (not a mapping) yields an empty Manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: readReason(err)}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return m, nil
}

// Parse decodes manifest bytes through the tolerant lens.
func Parse(data []byte) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	mapping, _ := doc.(map[string]any)
	return fromMapping(mapping), nil
}

// Inspect reads the manifest at path and returns the decoded document
// without interpretation. An empty file yields an empty mapping, matching
// the converters' view of it.
func Inspect(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: readReason(err)}
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return doc, nil
}

// fromMapping extracts the typed manifest from a decoded document.
// A nil mapping (empty file, non-mapping document) yields an empty
// manifest rather than an error.
func fromMapping(mapping map[string]any) *Manifest {
	m := &Manifest{}
	if s, ok := mapping[KeyProject].(string); ok {
		m.Name = strings.TrimSpace(s)
	}
	raw, ok := mapping[KeyDependencies].([]any)
	if !ok {
		return m
	}
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		m.Dependencies = append(m.Dependencies, s)
	}
	return m
}

// readReason strips the redundant path prefix from file read errors, so
// "Cannot read build.yaml: open build.yaml: no such file or directory"
// becomes "Cannot read build.yaml: no such file or directory".
func readReason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
