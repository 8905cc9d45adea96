package traits

import (
	"hash/fnv"

	"github.com/hashicorp/go-set/v3"
	"github.com/lumen-lang/lumen/internal/ast"
)

// Obligation is a (type, trait) pair requiring proof. The span locates the
// use that raised it and does not participate in identity.
type Obligation struct {
	Type  string
	Trait TraitRef
	Span  ast.Span
}

// Hash keys obligations in the solver's hashed sets. Spans are excluded so
// the same obligation raised at two sites memoizes once.
func (o Obligation) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(o.Type))
	h.Write([]byte{0})
	h.Write([]byte(o.Trait.Name))
	for _, a := range o.Trait.Args {
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	return h.Sum64()
}

// Solver proves trait obligations against an environment. Proven results
// are memoized; the in-progress set turns re-entrant proofs into cycle
// errors instead of divergence.
type Solver struct {
	env        *Environment
	proven     *set.HashSet[Obligation, uint64]
	inProgress *set.HashSet[Obligation, uint64]
}

func NewSolver(env *Environment) *Solver {
	return &Solver{
		env:        env,
		proven:     set.NewHashSet[Obligation, uint64](0),
		inProgress: set.NewHashSet[Obligation, uint64](0),
	}
}

// ProveObligation proves one obligation: direct implementation lookup first,
// then each declared supertrait recursively. Exhausting both yields
// ImplNotFoundError.
func (s *Solver) ProveObligation(o Obligation) error {
	if s.proven.Contains(o) {
		return nil
	}
	if s.inProgress.Contains(o) {
		return &ObligationCycleError{Obligations: []Obligation{o}, Span: o.Span}
	}
	s.inProgress.Insert(o)
	defer s.inProgress.Remove(o)

	def := s.env.GetTrait(o.Trait.Name)
	if def == nil {
		return &TraitNotFoundError{Trait: o.Trait.Name, Span: o.Span}
	}

	for _, impl := range s.env.Impls(o.Trait.Name, o.Type) {
		if s.validImpl(impl, o) {
			s.proven.Insert(o)
			return nil
		}
	}

	for _, super := range def.SuperTraits {
		superObligation := Obligation{Type: o.Type, Trait: super, Span: o.Span}
		if s.ProveObligation(superObligation) == nil {
			s.proven.Insert(o)
			return nil
		}
	}

	return &ImplNotFoundError{Type: o.Type, Trait: o.Trait.Name, Span: o.Span}
}

// ProveAll proves obligations in order, failing on the first unprovable one.
func (s *Solver) ProveAll(obligations []Obligation) error {
	for _, o := range obligations {
		if err := s.ProveObligation(o); err != nil {
			return err
		}
	}
	return nil
}

// IsProven reports whether the obligation has already been proved.
func (s *Solver) IsProven(o Obligation) bool {
	return s.proven.Contains(o)
}

func (s *Solver) validImpl(impl *TraitImpl, o Obligation) bool {
	if impl.Trait.Name != o.Trait.Name || impl.ForType != o.Type {
		return false
	}
	return len(impl.Trait.Args) == len(o.Trait.Args)
}
