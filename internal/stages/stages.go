// Package stages wires the built-in stage implementations into a registry.
package stages

import (
	"github.com/kingrea/combprep/internal/stage"
	"github.com/kingrea/combprep/internal/stages/catalog"
	"github.com/kingrea/combprep/internal/stages/combine"
	"github.com/kingrea/combprep/internal/stages/extract"
	"github.com/kingrea/combprep/internal/stages/filter"
	"github.com/kingrea/combprep/internal/stages/playdata"
)

// RegisterBuiltins installs every built-in stage.
func RegisterBuiltins(reg *stage.Registry) {
	if reg == nil {
		return
	}
	filter.Register(reg)
	extract.Register(reg)
	combine.Register(reg)
	playdata.Register(reg)
	catalog.Register(reg)
}

// NewRegistry returns a registry holding the built-in stages.
func NewRegistry() *stage.Registry {
	reg := stage.NewRegistry()
	RegisterBuiltins(reg)
	return reg
}
