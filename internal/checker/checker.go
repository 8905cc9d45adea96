// Package checker orchestrates constraint solving over compilation units
// and runs solver scenarios.
package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/pipeline"
	"github.com/lumen-lang/lumen/internal/typesystem"
)

// Unit is one compilation unit. Each gets its own solver; nothing is shared
// across units.
type Unit struct {
	ID   uuid.UUID
	Name string
}

func NewUnit(name string) Unit {
	return Unit{ID: uuid.New(), Name: name}
}

// Report is the outcome of running one scenario.
type Report struct {
	Unit     Unit
	Resolved map[string]string
	Errors   []error
	Failures []string
}

// Passed reports whether the scenario met its expectations.
func (r *Report) Passed() bool { return len(r.Failures) == 0 }

// Checker runs scenarios through the check pipeline.
type Checker struct {
	cfg config.Config
}

func New(cfg config.Config) *Checker {
	return &Checker{cfg: cfg}
}

// CheckScenario allocates the scenario's variables, queues its constraints,
// solves, and compares the resolutions against the expectations. In strict
// mode a variable no constraint pinned down is an error.
func (c *Checker) CheckScenario(sc *Scenario) *Report {
	unit := NewUnit(sc.Name)
	ctx := pipeline.NewContext(unit.ID.String())

	vars := make(map[string]typesystem.MonoType, len(sc.Vars))

	p := pipeline.New(
		&constrainStage{scenario: sc, vars: vars},
		&solveStage{},
		&resolveStage{vars: vars},
	)
	ctx = p.Run(ctx)

	if c.cfg.Strict {
		for name, scheme := range ctx.Bindings {
			if !scheme.IsMono() {
				ctx.AddError(fmt.Errorf("%s: type is unconstrained", name))
			}
		}
	}

	report := &Report{
		Unit:     unit,
		Resolved: make(map[string]string, len(vars)),
		Errors:   ctx.Errors,
	}
	for name, scheme := range ctx.Bindings {
		report.Resolved[name] = scheme.TypeName()
	}

	for name, want := range sc.Expect {
		got, ok := report.Resolved[name]
		if !ok {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: not a declared variable", name))
			continue
		}
		if got != want {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: resolved to %s, want %s", name, got, want))
		}
	}
	if len(ctx.Errors) != sc.WantErrors {
		report.Failures = append(report.Failures,
			fmt.Sprintf("got %d constraint errors, want %d", len(ctx.Errors), sc.WantErrors))
	}
	return report
}

// constrainStage allocates scenario variables and queues the constraints.
type constrainStage struct {
	scenario *Scenario
	vars     map[string]typesystem.MonoType
}

func (st *constrainStage) Process(ctx *pipeline.Context) *pipeline.Context {
	for _, name := range st.scenario.Vars {
		st.vars[name] = ctx.Solver.NewVar()
	}

	for i, cs := range st.scenario.Constraints {
		span := ast.Span{Line: i + 1}
		left, err := cs.Left.toType(st.vars)
		if err != nil {
			ctx.AddError(fmt.Errorf("constraint %d: %w", i+1, err))
			continue
		}
		right, err := cs.Right.toType(st.vars)
		if err != nil {
			ctx.AddError(fmt.Errorf("constraint %d: %w", i+1, err))
			continue
		}
		ctx.Solver.AddConstraint(left, right, span)
	}
	return ctx
}

// solveStage drains the constraint queue.
type solveStage struct{}

func (st *solveStage) Process(ctx *pipeline.Context) *pipeline.Context {
	for _, err := range ctx.Solver.Solve() {
		ctx.AddError(err)
	}
	return ctx
}

// resolveStage generalizes each declared variable's resolution into the
// result bindings.
type resolveStage struct {
	vars map[string]typesystem.MonoType
}

func (st *resolveStage) Process(ctx *pipeline.Context) *pipeline.Context {
	for name, v := range st.vars {
		resolved := ctx.Solver.ResolveType(v)
		ctx.Bindings[name] = ctx.Solver.Generalize(resolved)
	}
	return ctx
}
