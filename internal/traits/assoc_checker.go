package traits

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/lumen-lang/lumen/internal/ast"
)

type assocKey struct {
	Trait string
	Assoc string
}

func (k assocKey) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(k.Trait))
	h.Write([]byte{0})
	h.Write([]byte(k.Assoc))
	return h.Sum64()
}

// AssocTypeChecker verifies that trait implementations carry consistent
// associated types: each slot is inferable, satisfies its bounds, and agrees
// with supertrait declarations. Per-(trait, impl) inferences are cached; the
// in-progress set reports self-referential definitions as inference
// failures instead of looping.
type AssocTypeChecker struct {
	gatEnv      *GATEnvironment
	traitEnv    *Environment
	traitSolver *Solver
	checked     *set.HashSet[assocKey, uint64]
	inProgress  *set.HashSet[assocKey, uint64]
	inference   map[string]ast.Type
}

func NewAssocTypeChecker(gatEnv *GATEnvironment, traitEnv *Environment) *AssocTypeChecker {
	return &AssocTypeChecker{
		gatEnv:      gatEnv,
		traitEnv:    traitEnv,
		traitSolver: NewSolver(traitEnv),
		checked:     set.NewHashSet[assocKey, uint64](0),
		inProgress:  set.NewHashSet[assocKey, uint64](0),
		inference:   make(map[string]ast.Type),
	}
}

// CheckImplAssocTypes verifies every associated type the trait declares for
// one implementing type, then the supertrait compatibility rules.
func (c *AssocTypeChecker) CheckImplAssocTypes(traitName string, implType ast.Type, span ast.Span) error {
	def := c.traitEnv.GetTrait(traitName)
	if def == nil {
		return &UndefinedAssocTypeError{Trait: traitName, Span: span}
	}

	for _, gat := range c.gatEnv.GATs(traitName) {
		if err := c.checkAssocDefinition(traitName, gat, implType, span); err != nil {
			return err
		}
	}

	for _, super := range def.SuperTraits {
		if err := c.checkSuperTraitAssocTypes(traitName, super.Name, span); err != nil {
			return err
		}
	}

	return nil
}

func (c *AssocTypeChecker) checkAssocDefinition(traitName string, gat GenericAssocType, implType ast.Type, span ast.Span) error {
	key := assocKey{Trait: traitName, Assoc: gat.Name}
	if c.inProgress.Contains(key) {
		return &InferenceFailedError{
			Assoc:  gat.Name,
			Reason: "cyclic dependency detected",
			Span:   span,
		}
	}

	// A slot whose own parameters shadow a host parameter is
	// self-referential and can never be inferred.
	for _, host := range gat.HostParams {
		for _, assoc := range gat.AssocParams {
			if host == assoc {
				return &InferenceFailedError{
					Assoc:  gat.Name,
					Reason: "cyclic dependency detected",
					Span:   span,
				}
			}
		}
	}

	c.inProgress.Insert(key)
	defer c.inProgress.Remove(key)

	cacheKey := traitName + "." + TypeExprName(implType)
	if cached, ok := c.inference[cacheKey]; ok {
		return c.verifyBounds(gat, cached, span)
	}

	inferred, err := c.inferFromImpl(traitName, gat, implType, span)
	if err != nil {
		return err
	}
	if err := c.verifyBounds(gat, inferred, span); err != nil {
		return err
	}

	c.inference[cacheKey] = inferred
	c.checked.Insert(key)
	return nil
}

func (c *AssocTypeChecker) inferFromImpl(traitName string, gat GenericAssocType, implType ast.Type, span ast.Span) (ast.Type, error) {
	switch t := implType.(type) {
	case *ast.NamedType:
		if len(t.Args) > 0 {
			// Container implementations project their first type argument,
			// e.g. implementing an iteration trait for List<Int> makes the
			// element slot Int.
			return t.Args[0], nil
		}
		if impl := c.gatEnv.FindImpl(t.Name, gat.Name); impl != nil {
			return impl.Impl, nil
		}
	case *ast.ListType:
		return t.Elem, nil
	case *ast.SetType:
		return t.Elem, nil
	}

	if gat.Default != nil {
		return gat.Default, nil
	}

	return nil, &InferenceFailedError{
		Assoc:  gat.Name,
		Reason: fmt.Sprintf("cannot infer from impl type %s", TypeExprName(implType)),
		Span:   span,
	}
}

// verifyBounds checks the inferred type against each declared bound. Bounds
// naming a registered trait are proved as obligations; unregistered marker
// bounds (Send, Sync) are accepted.
func (c *AssocTypeChecker) verifyBounds(gat GenericAssocType, assocTy ast.Type, span ast.Span) error {
	for _, bound := range gat.Bounds {
		if c.traitEnv.GetTrait(bound) == nil {
			continue
		}
		obligation := Obligation{
			Type:  TypeExprName(assocTy),
			Trait: TraitRef{Name: bound},
			Span:  span,
		}
		if err := c.traitSolver.ProveObligation(obligation); err != nil {
			return &AssocBoundUnsatisfiedError{
				Assoc:    gat.Name,
				Bound:    bound,
				TypeName: TypeExprName(assocTy),
				Span:     span,
			}
		}
	}
	return nil
}

func (c *AssocTypeChecker) checkSuperTraitAssocTypes(childTrait, superTrait string, span ast.Span) error {
	for _, superGAT := range c.gatEnv.GATs(superTrait) {
		childGAT := c.gatEnv.FindGAT(childTrait, superGAT.Name)
		if childGAT == nil {
			continue
		}
		if err := checkAssocCompatibility(superGAT, *childGAT, span); err != nil {
			return err
		}
	}
	return nil
}

// checkAssocCompatibility requires the child's bound set to be a superset of
// the parent's for the same-named slot.
func checkAssocCompatibility(superGAT, childGAT GenericAssocType, span ast.Span) error {
	for _, bound := range superGAT.Bounds {
		found := false
		for _, childBound := range childGAT.Bounds {
			if childBound == bound {
				found = true
				break
			}
		}
		if !found {
			return &AssocCompatibilityError{
				Assoc:    superGAT.Name,
				Expected: "trait bound " + bound,
				Actual:   "missing bound",
				Span:     span,
			}
		}
	}
	return nil
}

// ValidateCompleteDefinition reports whether trait::assocName is usable: it
// was either already checked against an implementation or declares a
// default.
func (c *AssocTypeChecker) ValidateCompleteDefinition(traitName, assocName string) error {
	if c.checked.Contains(assocKey{Trait: traitName, Assoc: assocName}) {
		return nil
	}

	gat := c.gatEnv.FindGAT(traitName, assocName)
	if gat == nil {
		return &UndefinedAssocTypeError{Assoc: assocName, Trait: traitName}
	}
	if gat.Default == nil {
		return &UndefinedAssocTypeError{Assoc: assocName, Trait: traitName, Span: gat.Span}
	}
	return nil
}

// ClearCache resets all memoized state for a new checking session.
func (c *AssocTypeChecker) ClearCache() {
	c.checked = set.NewHashSet[assocKey, uint64](0)
	c.inProgress = set.NewHashSet[assocKey, uint64](0)
	c.inference = make(map[string]ast.Type)
}

// CachedInferences returns the number of memoized associated-type results.
func (c *AssocTypeChecker) CachedInferences() int {
	return len(c.inference)
}

// TypeExprName renders a type expression's name for registry keys and
// diagnostics.
func TypeExprName(t ast.Type) string {
	switch t := t.(type) {
	case *ast.NamedType:
		if len(t.Args) == 0 {
			return t.Name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = TypeExprName(a)
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case *ast.ListType:
		return "List<" + TypeExprName(t.Elem) + ">"
	case *ast.SetType:
		return "Set<" + TypeExprName(t.Elem) + ">"
	case *ast.DictType:
		return "Dict<" + TypeExprName(t.Key) + ", " + TypeExprName(t.Value) + ">"
	case *ast.TupleType:
		parts := make([]string, len(t.Types))
		for i, e := range t.Types {
			parts[i] = TypeExprName(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.StructType:
		if t.Name != "" {
			return t.Name
		}
		return "{...}"
	case *ast.EnumType:
		return t.Name
	case *ast.AssocType:
		return TypeExprName(t.Host) + "::" + t.Name
	case *ast.FunctionType:
		return "fn"
	case *ast.OptionType:
		return "Option<" + TypeExprName(t.Elem) + ">"
	case *ast.ResultType:
		return "Result<" + TypeExprName(t.Ok) + ", " + TypeExprName(t.Err) + ">"
	case *ast.UnionType:
		return "union"
	case *ast.IntersectionType:
		return "intersection"
	}
	return "<unknown>"
}
