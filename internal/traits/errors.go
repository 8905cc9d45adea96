package traits

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/ast"
)

// TraitNotFoundError indicates an obligation references an undeclared trait.
type TraitNotFoundError struct {
	Trait string
	Span  ast.Span
}

func (e *TraitNotFoundError) Error() string {
	return fmt.Sprintf("trait '%s' not found", e.Trait)
}

// ImplNotFoundError indicates no implementation or supertrait derivation
// proves the obligation.
type ImplNotFoundError struct {
	Type  string
	Trait string
	Span  ast.Span
}

func (e *ImplNotFoundError) Error() string {
	return fmt.Sprintf("impl of trait '%s' for type '%s' not found", e.Trait, e.Type)
}

// ObligationCycleError indicates proof search re-entered an obligation it
// was already proving.
type ObligationCycleError struct {
	Obligations []Obligation
	Span        ast.Span
}

func (e *ObligationCycleError) Error() string {
	parts := make([]string, len(e.Obligations))
	for i, o := range e.Obligations {
		parts[i] = fmt.Sprintf("%s: %s", o.Type, o.Trait.Name)
	}
	return "cycle detected in trait constraints: " + strings.Join(parts, " -> ")
}

// UndefinedAssocTypeError indicates a referenced associated type is not
// declared by the trait.
type UndefinedAssocTypeError struct {
	Assoc string
	Trait string
	Span  ast.Span
}

func (e *UndefinedAssocTypeError) Error() string {
	return fmt.Sprintf("associated type '%s' not found in trait '%s'", e.Assoc, e.Trait)
}

// GenericParamCountMismatchError indicates a GAT was applied to the wrong
// number of host type arguments.
type GenericParamCountMismatchError struct {
	Expected int
	Actual   int
	Span     ast.Span
}

func (e *GenericParamCountMismatchError) Error() string {
	return fmt.Sprintf("generic parameter count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// CyclicAssocTypeError indicates an associated type definition references
// itself through its own parameters.
type CyclicAssocTypeError struct {
	AssocTypes []string
	Span       ast.Span
}

func (e *CyclicAssocTypeError) Error() string {
	return "cyclic associated types: " + strings.Join(e.AssocTypes, " -> ")
}

// CannotInferAssocTypeError indicates inference found neither an
// implementation nor a default for an associated type.
type CannotInferAssocTypeError struct {
	Assoc   string
	Context string
	Span    ast.Span
}

func (e *CannotInferAssocTypeError) Error() string {
	return fmt.Sprintf("cannot infer associated type '%s' in context: %s", e.Assoc, e.Context)
}

// InferenceFailedError indicates associated-type checking could not complete
// for an implementation, including the self-referential case.
type InferenceFailedError struct {
	Assoc  string
	Reason string
	Span   ast.Span
}

func (e *InferenceFailedError) Error() string {
	return fmt.Sprintf("failed to infer associated type '%s': %s", e.Assoc, e.Reason)
}

// AssocBoundUnsatisfiedError indicates an inferred associated type fails one
// of its declared bounds.
type AssocBoundUnsatisfiedError struct {
	Assoc    string
	Bound    string
	TypeName string
	Span     ast.Span
}

func (e *AssocBoundUnsatisfiedError) Error() string {
	return fmt.Sprintf("associated type '%s' = %s does not satisfy bound '%s'", e.Assoc, e.TypeName, e.Bound)
}

// AssocCompatibilityError indicates a subtrait's associated type is not
// compatible with the supertrait's declaration of the same name.
type AssocCompatibilityError struct {
	Assoc    string
	Expected string
	Actual   string
	Span     ast.Span
}

func (e *AssocCompatibilityError) Error() string {
	return fmt.Sprintf("associated type '%s' mismatch: expected %s, got %s", e.Assoc, e.Expected, e.Actual)
}
