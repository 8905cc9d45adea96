package typesystem

import "strings"

// Specializer monomorphizes generic schemes and memoizes the results within
// one compilation unit. The cache is two-level: scheme signature first, then
// the concrete argument tuple.
type Specializer struct {
	cache map[string]map[string]PolyType
}

func NewSpecializer() *Specializer {
	return &Specializer{cache: make(map[string]map[string]PolyType)}
}

// Reset drops all cached specializations.
func (sp *Specializer) Reset() {
	sp.cache = make(map[string]map[string]PolyType)
}

// Specialize rewrites the scheme body with args substituted for its binders,
// in binder order. The argument count must match the binder count exactly.
func (sp *Specializer) Specialize(poly PolyType, args []MonoType) (MonoType, error) {
	if len(poly.Binders) != len(args) {
		return nil, &ArityMismatchError{Expected: len(poly.Binders), Found: len(args)}
	}

	sub := make(map[TypeVar]MonoType, len(args))
	for i, v := range poly.Binders {
		sub[v] = args[i]
	}
	return Substitute(poly.Body, sub), nil
}

// SpecializeCached is Specialize with memoization. A cache hit is
// re-instantiated through the solver so repeated call sites never share
// residual variables.
func (sp *Specializer) SpecializeCached(poly PolyType, args []MonoType, s *Solver) (MonoType, error) {
	signature := sp.signature(poly, args)
	key := argKey(args)

	if cached, ok := sp.cache[signature][key]; ok {
		return s.Instantiate(cached), nil
	}

	result, err := sp.Specialize(poly, args)
	if err != nil {
		return nil, err
	}

	if sp.cache[signature] == nil {
		sp.cache[signature] = make(map[string]PolyType)
	}
	sp.cache[signature][key] = Mono(result)
	return result, nil
}

func (sp *Specializer) signature(poly PolyType, args []MonoType) string {
	binders := make([]string, len(poly.Binders))
	for i, v := range poly.Binders {
		binders[i] = v.String()
	}
	return "fn(" + strings.Join(binders, ",") + ") -> (" + joinTypeNames(args, ",") + ")"
}

func argKey(args []MonoType) string {
	return "[" + joinTypeNames(args, ",") + "]"
}
