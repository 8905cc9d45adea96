package pipeline

import (
	"github.com/lumen-lang/lumen/internal/typesystem"
)

// Context is the state threaded through the check stages of one compilation
// unit.
type Context struct {
	UnitID string

	// Solver is the unit's binding arena. One solver per unit; nothing is
	// shared across units.
	Solver *typesystem.Solver

	// Bindings are the resolved name -> scheme results produced by the
	// final stage.
	Bindings map[string]typesystem.PolyType

	// Errors accumulates diagnostics from every stage.
	Errors []error
}

func NewContext(unitID string) *Context {
	return &Context{
		UnitID:   unitID,
		Solver:   typesystem.NewSolver(),
		Bindings: make(map[string]typesystem.PolyType),
	}
}

// AddError records a stage diagnostic.
func (c *Context) AddError(err error) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any stage failed.
func (c *Context) HasErrors() bool { return len(c.Errors) > 0 }
