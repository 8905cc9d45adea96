package ast

// --- Type System Nodes ---

// Type represents a source-syntax type expression as produced by the parser.
// The checker converts these into the typesystem's value model; nothing here
// carries inference state.
type Type interface {
	typeNode()
	GetSpan() Span
}

// NamedType is a simple named type like 'Int', 'Money', or a generic
// application like 'List<Int>' when Args is non-empty.
type NamedType struct {
	Name string
	Args []Type
	Span Span
}

func (t *NamedType) typeNode() {}
func (t *NamedType) GetSpan() Span { return t.Span }

// TupleType is a tuple type, e.g. (Int, Bool).
type TupleType struct {
	Types []Type
	Span  Span
}

func (t *TupleType) typeNode() {}
func (t *TupleType) GetSpan() Span { return t.Span }

// StructField is a single named field of a struct type expression.
type StructField struct {
	Name    string
	Type    Type
	Mutable bool
}

// StructType is a structural record type, e.g. { x: Int, mut y: Bool }.
// Name is empty for anonymous structs.
type StructType struct {
	Name   string
	Fields []StructField
	Span   Span
}

func (t *StructType) typeNode() {}
func (t *StructType) GetSpan() Span { return t.Span }

// EnumType is a closed variant list, e.g. type Color = red | green | blue.
type EnumType struct {
	Name     string
	Variants []string
	Span     Span
}

func (t *EnumType) typeNode() {}
func (t *EnumType) GetSpan() Span { return t.Span }

// FunctionType is a function type, e.g. fn(Int, Int) -> Bool.
type FunctionType struct {
	Params  []Type
	Return  Type
	IsAsync bool
	Span    Span
}

func (t *FunctionType) typeNode() {}
func (t *FunctionType) GetSpan() Span { return t.Span }

// ListType is List<T>.
type ListType struct {
	Elem Type
	Span Span
}

func (t *ListType) typeNode() {}
func (t *ListType) GetSpan() Span { return t.Span }

// DictType is Dict<K, V>.
type DictType struct {
	Key   Type
	Value Type
	Span  Span
}

func (t *DictType) typeNode() {}
func (t *DictType) GetSpan() Span { return t.Span }

// SetType is Set<T>.
type SetType struct {
	Elem Type
	Span Span
}

func (t *SetType) typeNode() {}
func (t *SetType) GetSpan() Span { return t.Span }

// UnionType is T1 | T2.
type UnionType struct {
	Members []Type
	Span    Span
}

func (t *UnionType) typeNode() {}
func (t *UnionType) GetSpan() Span { return t.Span }

// IntersectionType is T1 & T2.
type IntersectionType struct {
	Members []Type
	Span    Span
}

func (t *IntersectionType) typeNode() {}
func (t *IntersectionType) GetSpan() Span { return t.Span }

// AssocType is an associated-type projection, e.g. T::Item or T::Item<U>.
type AssocType struct {
	Host Type
	Name string
	Args []Type
	Span Span
}

func (t *AssocType) typeNode() {}
func (t *AssocType) GetSpan() Span { return t.Span }

// OptionType is the Option<T> sugar; the checker lowers it to the builtin
// Option enum.
type OptionType struct {
	Elem Type
	Span Span
}

func (t *OptionType) typeNode() {}
func (t *OptionType) GetSpan() Span { return t.Span }

// ResultType is the Result<T, E> sugar; lowered to the builtin Result enum.
type ResultType struct {
	Ok   Type
	Err  Type
	Span Span
}

func (t *ResultType) typeNode() {}
func (t *ResultType) GetSpan() Span { return t.Span }
