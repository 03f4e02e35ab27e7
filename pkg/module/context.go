package module

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/captain/pkg/console"
)

// RunContext carries the state shared by the driver and modules during a
// single run. It replaces an open-ended key/value bag with a closed field
// set so the contract between driver and modules stays checkable.
//
// The context is passed by pointer and mutated in place. Captain runs
// single-threaded, so no locking is needed; any concurrent extension
// would have to add one.
type RunContext struct {
	Version      string // version string shown in the banner
	RunID        string // unique id for this run, used in debug logs
	ManifestPath string // manifest converters read (default "build.yaml")
	OutputDir    string // directory artifacts are written to

	// Artifacts lists the files written so far, in write order.
	// Converters append via AddArtifact; the driver reads it for the
	// end-of-run summary.
	Artifacts []string

	Logger  *log.Logger
	Console *console.Reporter
}

// AddArtifact records a written artifact path.
func (rc *RunContext) AddArtifact(path string) {
	rc.Artifacts = append(rc.Artifacts, path)
}

// ArtifactPath returns the location of a named artifact inside the run's
// output directory.
func (rc *RunContext) ArtifactPath(name string) string {
	return filepath.Join(rc.OutputDir, name)
}

// EnsureOutputDir creates the output directory if it does not exist yet.
func (rc *RunContext) EnsureOutputDir() error {
	return os.MkdirAll(rc.OutputDir, 0o755)
}
