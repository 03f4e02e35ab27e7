package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/captain/pkg/console"
	caperrors "github.com/matzehuels/captain/pkg/errors"
	"github.com/matzehuels/captain/pkg/observability"
)

const testManifest = "myproject: demo-app\ndependencies:\n  - plumbum>=1.8\n  - pyyaml\n"

const testConfig = `version: "2.0"
modules:
  - parser_requirements
  - parser_pyproject
  - validator_build
commands:
  - validate build
  - req
  - pyproject
`

// testRun wires a runner against buffers in a temp dir.
type testRun struct {
	dir  string
	out  bytes.Buffer
	err  bytes.Buffer
	opts Options
}

func newTestRun(t *testing.T, manifest, config string) *testRun {
	t.Helper()
	dir := t.TempDir()
	tr := &testRun{dir: dir}
	tr.opts = Options{
		ConfigPath:   filepath.Join(dir, "config.yaml"),
		ManifestPath: filepath.Join(dir, "build.yaml"),
		OutputDir:    filepath.Join(dir, "Output"),
	}
	if manifest != "" {
		writeFile(t, tr.opts.ManifestPath, manifest)
	}
	if config != "" {
		writeFile(t, tr.opts.ConfigPath, config)
	}
	return tr
}

func (tr *testRun) runner() *Runner {
	return NewRunner(nil, log.New(io.Discard), console.New(&tr.out, &tr.err))
}

func (tr *testRun) artifact(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.opts.OutputDir, name))
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", name, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestRun(t *testing.T) {
	tr := newTestRun(t, testManifest, testConfig)

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Banner first, then one [OK] line per command, in command order.
	wantOut := "Captain 2.0\n" +
		"[OK] build.yaml\n" +
		"[OK] requirements.txt\n" +
		"[OK] pyproject.toml\n"
	if got := tr.out.String(); got != wantOut {
		t.Errorf("stdout = %q, want %q", got, wantOut)
	}
	if tr.err.Len() != 0 {
		t.Errorf("stderr = %q, want empty", tr.err.String())
	}

	if got, want := tr.artifact(t, "requirements.txt"), "plumbum>=1.8\npyyaml\n"; got != want {
		t.Errorf("requirements.txt = %q, want %q", got, want)
	}
	if py := tr.artifact(t, "pyproject.toml"); !strings.Contains(py, `name = "demo-app"`) {
		t.Errorf("pyproject.toml missing project name:\n%s", py)
	}
}

func TestRunCommandOverride(t *testing.T) {
	tr := newTestRun(t, testManifest, testConfig)
	tr.opts.Command = "req"

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantOut := "Captain 2.0\n[OK] requirements.txt\n"
	if got := tr.out.String(); got != wantOut {
		t.Errorf("stdout = %q, want %q", got, wantOut)
	}
	if _, err := os.Stat(filepath.Join(tr.opts.OutputDir, "pyproject.toml")); !os.IsNotExist(err) {
		t.Errorf("pyproject.toml written despite override, Stat() error = %v", err)
	}
}

func TestRunMissingModule(t *testing.T) {
	config := `version: "2.0"
modules:
  - parser_nope
  - parser_requirements
commands:
  - req
`
	tr := newTestRun(t, testManifest, config)

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := tr.err.String(), "[WARN] missing module: parser_nope\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	// The remaining module still converts.
	if got, want := tr.artifact(t, "requirements.txt"), "plumbum>=1.8\npyyaml\n"; got != want {
		t.Errorf("requirements.txt = %q, want %q", got, want)
	}
}

func TestRunNoHandlerForCommand(t *testing.T) {
	config := `version: "2.0"
modules:
  - parser_requirements
commands:
  - bogus
  - req
`
	tr := newTestRun(t, testManifest, config)

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := tr.err.String(), "[WARN] no handler for command: bogus\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	// Unrouted commands never halt subsequent dispatches.
	if !strings.Contains(tr.out.String(), "[OK] requirements.txt\n") {
		t.Errorf("stdout = %q, want req to still run", tr.out.String())
	}
}

func TestRunStructuralConfigError(t *testing.T) {
	config := "version: \"2.0\"\nmodules:\n  - parser_requirements\ncommands: req\n"
	tr := newTestRun(t, testManifest, config)

	err := tr.runner().Run(context.Background(), tr.opts)
	if err == nil {
		t.Fatal("Run() expected structural config error")
	}
	if got := caperrors.ExitCode(err); got != caperrors.ExitInvalidConfig {
		t.Errorf("ExitCode() = %d, want %d", got, caperrors.ExitInvalidConfig)
	}
	// Nothing runs and nothing is written before the failure.
	if tr.out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", tr.out.String())
	}
	if _, statErr := os.Stat(tr.opts.OutputDir); !os.IsNotExist(statErr) {
		t.Errorf("output dir created despite config error, Stat() error = %v", statErr)
	}
}

func TestRunMissingConfig(t *testing.T) {
	tr := newTestRun(t, testManifest, "")

	err := tr.runner().Run(context.Background(), tr.opts)
	if err == nil {
		t.Fatal("Run() expected error for missing config")
	}
	if got := caperrors.ExitCode(err); got != caperrors.ExitFailure {
		t.Errorf("ExitCode() = %d, want %d", got, caperrors.ExitFailure)
	}
}

func TestRunMissingManifest(t *testing.T) {
	config := `version: "2.0"
modules:
  - parser_requirements
commands:
  - req
`
	tr := newTestRun(t, "", config)

	// A converter-level read failure is reported, not returned.
	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := tr.err.String()
	if !strings.HasPrefix(got, "[ERR] Cannot read ") || !strings.HasSuffix(got, "no such file or directory\n") {
		t.Errorf("stderr = %q, want [ERR] Cannot read line", got)
	}
	if _, err := os.Stat(filepath.Join(tr.opts.OutputDir, "requirements.txt")); !os.IsNotExist(err) {
		t.Errorf("artifact written despite read failure, Stat() error = %v", err)
	}
}

func TestRunDuplicateCommands(t *testing.T) {
	config := `version: "2.0"
modules:
  - parser_requirements
commands:
  - req
  - req
`
	tr := newTestRun(t, testManifest, config)

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := strings.Count(tr.out.String(), "[OK] requirements.txt\n"); got != 2 {
		t.Errorf("req ran %d times, want 2:\n%s", got, tr.out.String())
	}
}

func TestRunIdempotent(t *testing.T) {
	tr := newTestRun(t, testManifest, testConfig)
	r := tr.runner()

	if err := r.Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	first := map[string]string{
		"requirements.txt": tr.artifact(t, "requirements.txt"),
		"pyproject.toml":   tr.artifact(t, "pyproject.toml"),
	}

	if err := r.Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() second error = %v", err)
	}
	for name, want := range first {
		if got := tr.artifact(t, name); got != want {
			t.Errorf("%s changed across identical runs", name)
		}
	}
}

func TestRunCanceledContext(t *testing.T) {
	tr := newTestRun(t, testManifest, testConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.runner().Run(ctx, tr.opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(filepath.Join(tr.opts.OutputDir, "requirements.txt")); !os.IsNotExist(statErr) {
		t.Errorf("artifact written despite cancellation, Stat() error = %v", statErr)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()

	if opts.ConfigPath != "config.yaml" {
		t.Errorf("ConfigPath = %q, want config.yaml", opts.ConfigPath)
	}
	if opts.ManifestPath != "build.yaml" {
		t.Errorf("ManifestPath = %q, want build.yaml", opts.ManifestPath)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, DefaultOutputDir)
	}

	// Set fields survive.
	opts = Options{ConfigPath: "x.yaml", Command: "req"}.WithDefaults()
	if opts.ConfigPath != "x.yaml" || opts.Command != "req" {
		t.Errorf("WithDefaults() overwrote set fields: %+v", opts)
	}
}

type recordingHooks struct {
	observability.NoopRunHooks
	starts     int
	completes  int
	dispatches []string
	errs       []string
}

func (h *recordingHooks) OnRunStart(_ context.Context, _, _ string) { h.starts++ }

func (h *recordingHooks) OnRunComplete(_ context.Context, _ string, _, _ int, _ time.Duration) {
	h.completes++
}

func (h *recordingHooks) OnDispatch(_ context.Context, _, topic string, _ int) {
	h.dispatches = append(h.dispatches, topic)
}

func (h *recordingHooks) OnHandlerError(_ context.Context, _, topic string, _ error) {
	h.errs = append(h.errs, topic)
}

func TestRunEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetRunHooks(hooks)
	t.Cleanup(observability.Reset)

	tr := newTestRun(t, testManifest, testConfig)
	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("hooks = %d starts / %d completes, want 1/1", hooks.starts, hooks.completes)
	}
	wantTopics := []string{"command:validate build", "command:req", "command:pyproject"}
	if len(hooks.dispatches) != len(wantTopics) {
		t.Fatalf("dispatches = %v, want %v", hooks.dispatches, wantTopics)
	}
	for i, topic := range wantTopics {
		if hooks.dispatches[i] != topic {
			t.Errorf("dispatch[%d] = %q, want %q", i, hooks.dispatches[i], topic)
		}
	}
	if len(hooks.errs) != 0 {
		t.Errorf("handler errors reported for clean run: %v", hooks.errs)
	}
}

func TestRunEmitsHandlerErrorHook(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetRunHooks(hooks)
	t.Cleanup(observability.Reset)

	tr := newTestRun(t, testManifest, testConfig)
	if err := os.Remove(tr.opts.ManifestPath); err != nil {
		t.Fatal(err)
	}

	if err := tr.runner().Run(context.Background(), tr.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(hooks.errs) == 0 {
		t.Fatal("no handler errors reported for missing manifest")
	}
	if hooks.errs[0] != "command:req" {
		t.Errorf("first error topic = %q, want command:req", hooks.errs[0])
	}
}
