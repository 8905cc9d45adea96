// Package pipeline chains check stages over a compilation unit.
package pipeline

// Processor is one stage of the check pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs its processors in order.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages run even after earlier ones report
// errors so one pass collects every stage's diagnostics.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
