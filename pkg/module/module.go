// Package module defines Captain's converter module contract, the static
// registry the driver resolves modules from, and the run context shared
// by every handler.
//
// Captain does not discover modules at runtime. The full set of variants
// is compiled in (see pkg/convert), and config.yaml selects by name which
// of them participate in a run. Adding a new output format means adding a
// new variant and listing it in the built-in set.
package module

import (
	"github.com/matzehuels/captain/pkg/bus"
)

// Info describes a module for listings and logs.
type Info struct {
	Name        string   // registry name used in config.yaml, e.g. "parser_requirements"
	Description string   // one-line summary
	Topics      []string // topics the module subscribes to
}

// Module is a converter that can attach handlers to the bus.
//
// Register is called once per run, before any command is published. The
// contract is registration only: it may call Subscribe zero or more
// times, and it must not read or write files. File work happens inside
// the handlers, when a command arrives.
type Module interface {
	Info() Info
	Register(b *bus.Bus, rc *RunContext)
}
