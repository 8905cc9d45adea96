package typesystem

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/ast"
)

// TypeMismatch indicates two irreconcilable types met during unification or
// binding. It is a structural value; rendering happens downstream.
type TypeMismatch struct {
	Left  MonoType
	Right MonoType
	Span  ast.Span
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.Left.TypeName(), e.Right.TypeName())
}

func NewTypeMismatch(left, right MonoType) *TypeMismatch {
	return &TypeMismatch{Left: left, Right: right}
}

// ConstraintError is a mismatch attributed to the source span of the
// deferred constraint that produced it.
type ConstraintError struct {
	Err  *TypeMismatch
	Span ast.Span
}

func (e *ConstraintError) Error() string {
	if e.Span.IsZero() {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Span)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// ArityMismatchError indicates a specialization call supplied the wrong
// number of type arguments for a scheme.
type ArityMismatchError struct {
	Expected int
	Found    int
	Span     ast.Span
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("expected %d type arguments, got %d", e.Expected, e.Found)
}

// ConstraintViolation reports why a type fails a structural constraint:
// required methods that are missing, and methods present with an
// incompatible signature.
type ConstraintViolation struct {
	TypeName       string
	ConstraintName string
	Missing        []string
	Mismatched     []SignatureMismatch
	Span           ast.Span
}

// SignatureMismatch is one method whose found signature does not satisfy the
// constraint's signature.
type SignatureMismatch struct {
	Name     string
	Expected string
	Found    string
}

func (e *ConstraintViolation) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing methods: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Mismatched) > 0 {
		names := make([]string, len(e.Mismatched))
		for i, m := range e.Mismatched {
			names[i] = fmt.Sprintf("%s (expected %s, found %s)", m.Name, m.Expected, m.Found)
		}
		parts = append(parts, fmt.Sprintf("incompatible signatures: %s", strings.Join(names, ", ")))
	}
	return fmt.Sprintf("%s does not satisfy %s: %s",
		e.TypeName, e.ConstraintName, strings.Join(parts, "; "))
}
