package typesystem

import (
	"fmt"
	"strings"
)

// TypeVar is an index into a Solver's binding arena. Indices are unique per
// solver instance and never reused within one compilation.
type TypeVar int

func (v TypeVar) Index() int { return int(v) }

func (v TypeVar) String() string { return fmt.Sprintf("t%d", int(v)) }

// BindingState discriminates the union-find node states.
type BindingState int

const (
	BindingUnbound BindingState = iota
	BindingBound
	BindingLink
)

// TypeBinding is one union-find node. Bound is meaningful only in state
// BindingBound, Link only in BindingLink.
type TypeBinding struct {
	State BindingState
	Bound MonoType
	Link  TypeVar
}

// MonoType is a concrete, possibly partially-unknown type value. All
// variants are plain value structs; the solver treats them as immutable and
// produces new values on every rewrite.
type MonoType interface {
	// TypeName returns the short display form used in diagnostics and
	// specialization cache keys.
	TypeName() string
	monoType()
}

type TVoid struct{}

type TBool struct{}

// TInt is a sized integer (8/16/32/64).
type TInt struct {
	Width int
}

// TFloat is a sized float (32/64).
type TFloat struct {
	Width int
}

type TChar struct{}

type TString struct{}

type TBytes struct{}

// Field is one ordered struct field. Mutability is part of the struct's
// identity for unification.
type Field struct {
	Name    string
	Type    MonoType
	Mutable bool
}

// TStruct is a nominal or anonymous record. A struct whose every field is a
// function type doubles as a structural constraint (interface); see
// IsConstraint.
type TStruct struct {
	Name    string
	Fields  []Field
	Methods map[string]PolyType
}

// TEnum is a closed variant list. Variants carry no payload types at this
// level; payload checking happens in the expression walker.
type TEnum struct {
	Name     string
	Variants []string
}

type TTuple struct {
	Elems []MonoType
}

type TList struct {
	Elem MonoType
}

type TDict struct {
	Key   MonoType
	Value MonoType
}

type TSet struct {
	Elem MonoType
}

// TRange is the type of start..end expressions.
type TRange struct {
	Elem MonoType
}

type TFn struct {
	Params  []MonoType
	Return  MonoType
	IsAsync bool
}

// TVar references a solver type variable.
type TVar struct {
	Var TypeVar
}

// TRef is an unresolved named type reference. Builtin names are resolved by
// Solver.ExpandType; user-defined names stay symbolic until the declaration
// layer resolves them.
type TRef struct {
	Name string
}

type TUnion struct {
	Members []MonoType
}

type TIntersection struct {
	Members []MonoType
}

// TShared is the shared-ownership reference wrapper. Inside the checker it
// is an inert wrapper: it expands and substitutes through its payload and
// otherwise only compares structurally.
type TShared struct {
	Inner MonoType
}

// TWeak is the non-owning counterpart of TShared.
type TWeak struct {
	Inner MonoType
}

// TAssoc is an associated-type projection, e.g. T::Item<U>.
type TAssoc struct {
	Host MonoType
	Name string
	Args []MonoType
}

// TMeta is the type of types (universe Level, applied Params).
type TMeta struct {
	Level  int
	Params []MonoType
}

// TLiteral lifts a literal value into the type level, e.g. the type "42".
type TLiteral struct {
	Value string
	Base  MonoType
}

func (TVoid) monoType() {}
func (TBool) monoType() {}
func (TInt) monoType() {}
func (TFloat) monoType() {}
func (TChar) monoType() {}
func (TString) monoType() {}
func (TBytes) monoType() {}
func (TStruct) monoType() {}
func (TEnum) monoType() {}
func (TTuple) monoType() {}
func (TList) monoType() {}
func (TDict) monoType() {}
func (TSet) monoType() {}
func (TRange) monoType() {}
func (TFn) monoType() {}
func (TVar) monoType() {}
func (TRef) monoType() {}
func (TUnion) monoType() {}
func (TIntersection) monoType() {}
func (TShared) monoType() {}
func (TWeak) monoType() {}
func (TAssoc) monoType() {}
func (TMeta) monoType() {}
func (TLiteral) monoType() {}

func (TVoid) TypeName() string { return "void" }
func (TBool) TypeName() string { return "bool" }
func (t TInt) TypeName() string { return fmt.Sprintf("int%d", t.Width) }
func (t TFloat) TypeName() string { return fmt.Sprintf("float%d", t.Width) }
func (TChar) TypeName() string { return "char" }
func (TString) TypeName() string { return "string" }
func (TBytes) TypeName() string { return "bytes" }

func (t TStruct) TypeName() string {
	if t.Name != "" {
		return t.Name
	}
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.TypeName())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t TEnum) TypeName() string {
	if t.Name != "" {
		return t.Name
	}
	return strings.Join(t.Variants, " | ")
}

func (t TTuple) TypeName() string {
	return "(" + joinTypeNames(t.Elems, ", ") + ")"
}

func (t TList) TypeName() string { return "List<" + t.Elem.TypeName() + ">" }

func (t TDict) TypeName() string {
	return "Dict<" + t.Key.TypeName() + ", " + t.Value.TypeName() + ">"
}

func (t TSet) TypeName() string { return "Set<" + t.Elem.TypeName() + ">" }
func (t TRange) TypeName() string { return "Range<" + t.Elem.TypeName() + ">" }

func (t TFn) TypeName() string {
	return "fn(" + joinTypeNames(t.Params, ", ") + ") -> " + t.Return.TypeName()
}

func (t TVar) TypeName() string { return t.Var.String() }
func (t TRef) TypeName() string { return t.Name }

func (t TUnion) TypeName() string {
	return "(" + joinTypeNames(t.Members, " | ") + ")"
}

func (t TIntersection) TypeName() string {
	return "(" + joinTypeNames(t.Members, " & ") + ")"
}

func (t TShared) TypeName() string { return "Shared<" + t.Inner.TypeName() + ">" }
func (t TWeak) TypeName() string { return "Weak<" + t.Inner.TypeName() + ">" }

func (t TAssoc) TypeName() string {
	name := t.Host.TypeName() + "::" + t.Name
	if len(t.Args) > 0 {
		name += "<" + joinTypeNames(t.Args, ", ") + ">"
	}
	return name
}

func (t TMeta) TypeName() string {
	name := fmt.Sprintf("Type@%d", t.Level)
	if len(t.Params) > 0 {
		name += "<" + joinTypeNames(t.Params, ", ") + ">"
	}
	return name
}

func (t TLiteral) TypeName() string { return t.Value }

func joinTypeNames(types []MonoType, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.TypeName()
	}
	return strings.Join(parts, sep)
}

// IsNumeric reports whether t is an integer or float type.
func IsNumeric(t MonoType) bool {
	switch t.(type) {
	case TInt, TFloat:
		return true
	}
	return false
}

// IsConstraint reports whether t is a structural interface: a struct whose
// every field is a function type (vacuously true for the empty struct).
// Named references are never constraints here; resolving them needs the
// declaration environment.
func IsConstraint(t MonoType) bool {
	s, ok := t.(TStruct)
	if !ok {
		return false
	}
	for _, f := range s.Fields {
		if _, ok := f.Type.(TFn); !ok {
			return false
		}
	}
	return true
}

// ConstraintFields returns the function-typed fields of t, in declaration
// order. Empty for non-struct types.
func ConstraintFields(t MonoType) []Field {
	s, ok := t.(TStruct)
	if !ok {
		return nil
	}
	var fields []Field
	for _, f := range s.Fields {
		if _, ok := f.Type.(TFn); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// PolyType is a universally-quantified type scheme. Binder order is
// significant for instantiation but irrelevant for equality.
type PolyType struct {
	Binders []TypeVar
	Body    MonoType
}

// Mono wraps a monotype into a scheme with no binders.
func Mono(body MonoType) PolyType {
	return PolyType{Body: body}
}

// IsMono reports whether the scheme quantifies over nothing.
func (p PolyType) IsMono() bool { return len(p.Binders) == 0 }

func (p PolyType) TypeName() string { return p.Body.TypeName() }
