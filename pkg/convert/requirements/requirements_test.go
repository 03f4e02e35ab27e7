package requirements

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/console"
	"github.com/matzehuels/captain/pkg/module"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		deps     []string
		expected string
	}{
		{
			name:     "multiple",
			deps:     []string{"plumbum>=1.8", "pyyaml", "requests"},
			expected: "plumbum>=1.8\npyyaml\nrequests\n",
		},
		{
			name:     "single",
			deps:     []string{"flask"},
			expected: "flask\n",
		},
		{
			name:     "duplicates preserved",
			deps:     []string{"flask", "flask"},
			expected: "flask\nflask\n",
		},
		{
			name:     "empty",
			deps:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.deps); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "build.yaml")
	writeFile(t, manifestPath, "myproject: demo\ndependencies:\n  - plumbum>=1.8\n  - pyyaml\n")

	var out, errBuf bytes.Buffer
	rc := &module.RunContext{
		ManifestPath: manifestPath,
		OutputDir:    filepath.Join(dir, "Output"),
		Logger:       log.New(io.Discard),
		Console:      console.New(&out, &errBuf),
	}

	b := bus.New()
	New().Register(b, rc)

	if n := b.Publish(bus.CommandTopic(Command), rc); n != 1 {
		t.Fatalf("Publish() = %d handlers, want 1", n)
	}

	data, err := os.ReadFile(filepath.Join(rc.OutputDir, Artifact))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(data), "plumbum>=1.8\npyyaml\n"; got != want {
		t.Errorf("artifact = %q, want %q", got, want)
	}
	if got, want := out.String(), "[OK] requirements.txt\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if len(rc.Artifacts) != 1 || rc.Artifacts[0] != Artifact {
		t.Errorf("Artifacts = %v, want [%s]", rc.Artifacts, Artifact)
	}
}

func TestConvertEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "build.yaml")
	writeFile(t, manifestPath, "")

	rc := &module.RunContext{
		ManifestPath: manifestPath,
		OutputDir:    filepath.Join(dir, "Output"),
		Logger:       log.New(io.Discard),
		Console:      console.New(io.Discard, io.Discard),
	}

	b := bus.New()
	New().Register(b, rc)
	b.Publish(bus.CommandTopic(Command), rc)

	data, err := os.ReadFile(filepath.Join(rc.OutputDir, Artifact))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("artifact = %q, want empty file", data)
	}
}

func TestConvertMissingManifest(t *testing.T) {
	dir := t.TempDir()

	var out, errBuf bytes.Buffer
	rc := &module.RunContext{
		ManifestPath: filepath.Join(dir, "build.yaml"),
		OutputDir:    filepath.Join(dir, "Output"),
		Logger:       log.New(io.Discard),
		Console:      console.New(&out, &errBuf),
	}

	var reported error
	b := bus.New(bus.WithErrorHandler(func(topic string, err error) {
		reported = err
	}))
	New().Register(b, rc)
	b.Publish(bus.CommandTopic(Command), rc)

	if reported == nil {
		t.Fatal("expected handler error for missing manifest")
	}
	if !strings.HasPrefix(reported.Error(), "Cannot read ") {
		t.Errorf("error = %q, want Cannot read prefix", reported)
	}

	// No artifact must be written on a failed read.
	if _, err := os.Stat(filepath.Join(rc.OutputDir, Artifact)); !os.IsNotExist(err) {
		t.Errorf("Stat() error = %v, want not-exist", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected stdout: %q", out.String())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}
