// Package convert collects Captain's built-in converter modules.
//
// Modules are compiled in; config.yaml selects which of them join a run
// by listing their registry names under the modules key.
package convert

import (
	"github.com/matzehuels/captain/pkg/convert/graphviz"
	"github.com/matzehuels/captain/pkg/convert/pyproject"
	"github.com/matzehuels/captain/pkg/convert/requirements"
	"github.com/matzehuels/captain/pkg/convert/validate"
	"github.com/matzehuels/captain/pkg/module"
)

// Builtins returns the compiled-in modules.
func Builtins() []module.Module {
	return []module.Module{
		requirements.New(),
		pyproject.New(),
		validate.New(),
		graphviz.New(),
	}
}

// NewRegistry returns a registry holding every built-in module.
func NewRegistry() *module.Registry {
	r := module.NewRegistry()
	for _, m := range Builtins() {
		r.MustRegister(m)
	}
	return r
}
