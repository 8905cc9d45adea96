package typesystem

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
)

// Constraint is a deferred equality between two types, attributed to the
// source span that produced it.
type Constraint struct {
	Left  MonoType
	Right MonoType
	Span  ast.Span
}

// Solver owns the union-find binding arena and the queue of deferred
// constraints for one compilation unit. It has a single mutable owner; the
// inference walk threads it through by pointer, never concurrently.
type Solver struct {
	bindings    []TypeBinding
	constraints []Constraint
	genericVars map[TypeVar]int
}

func NewSolver() *Solver {
	return &Solver{genericVars: make(map[TypeVar]int)}
}

// Reset discards all bindings, constraints and generic markers.
func (s *Solver) Reset() {
	s.bindings = s.bindings[:0]
	s.constraints = s.constraints[:0]
	s.genericVars = make(map[TypeVar]int)
}

func (s *Solver) checkVar(v TypeVar) {
	if v < 0 || int(v) >= len(s.bindings) {
		panic(fmt.Sprintf("typesystem: type variable %s was not allocated by this solver", v))
	}
}

// NewVar allocates a fresh unbound variable and returns it as a type.
func (s *Solver) NewVar() MonoType {
	v := TypeVar(len(s.bindings))
	s.bindings = append(s.bindings, TypeBinding{State: BindingUnbound})
	return TVar{Var: v}
}

// NewGenericVar allocates a fresh unbound variable marked as a scheme-bound
// placeholder: it is never collected by Generalize.
func (s *Solver) NewGenericVar() TypeVar {
	v := TypeVar(len(s.bindings))
	s.bindings = append(s.bindings, TypeBinding{State: BindingUnbound})
	s.genericVars[v] = len(s.genericVars)
	return v
}

// Find returns the root of v's link chain, compressing intermediate links to
// point at the root directly.
func (s *Solver) Find(v TypeVar) TypeVar {
	s.checkVar(v)
	root := v
	for s.bindings[root].State == BindingLink {
		root = s.bindings[root].Link
	}
	for v != root {
		next := s.bindings[v].Link
		s.bindings[v] = TypeBinding{State: BindingLink, Link: root}
		v = next
	}
	return root
}

// Binding returns the current binding node of v without path compression.
func (s *Solver) Binding(v TypeVar) TypeBinding {
	s.checkVar(v)
	return s.bindings[v]
}

// IsUnconstrained reports whether v is still unbound. Callers use it to flag
// parameters whose type no use site pinned down, which must be reported
// rather than silently defaulted.
func (s *Solver) IsUnconstrained(v TypeVar) bool {
	return s.bindings[s.Find(v)].State == BindingUnbound
}

// Bind resolves v to its root and binds it to ty. The occurs check rejects
// bindings that would create an infinite type. Rebinding an already-bound
// root succeeds only if the existing value is structurally equal to the
// expanded ty; no nested re-unification is attempted.
func (s *Solver) Bind(v TypeVar, ty MonoType) *TypeMismatch {
	root := s.Find(v)
	expanded := s.ExpandType(ty)

	if s.ContainsVar(expanded, root) {
		return NewTypeMismatch(TVar{Var: root}, expanded)
	}

	switch b := s.bindings[root]; b.State {
	case BindingUnbound:
		if tv, ok := expanded.(TVar); ok {
			s.bindings[root] = TypeBinding{State: BindingLink, Link: s.Find(tv.Var)}
			return nil
		}
		s.bindings[root] = TypeBinding{State: BindingBound, Bound: expanded}
		return nil
	case BindingBound:
		if typesEqual(b.Bound, expanded) {
			return nil
		}
		return NewTypeMismatch(b.Bound, expanded)
	default:
		panic("typesystem: link at union-find root")
	}
}

// ExpandType recursively replaces every reachable bound variable with its
// current value and resolves builtin named references. Unbound variables are
// normalized to their root; user-defined named references stay symbolic.
func (s *Solver) ExpandType(ty MonoType) MonoType {
	switch t := ty.(type) {
	case TVar:
		root := s.Find(t.Var)
		if b := s.bindings[root]; b.State == BindingBound {
			return s.ExpandType(b.Bound)
		}
		return TVar{Var: root}
	case TRef:
		switch t.Name {
		case "Int", "int", "int64", "i64":
			return TInt{Width: 64}
		case "Int32", "int32", "i32":
			return TInt{Width: 32}
		case "Int16", "int16", "i16":
			return TInt{Width: 16}
		case "Int8", "int8", "i8":
			return TInt{Width: 8}
		case "Float", "float", "float64", "f64":
			return TFloat{Width: 64}
		case "Float32", "float32", "f32":
			return TFloat{Width: 32}
		case "Bool", "bool":
			return TBool{}
		case "Char", "char":
			return TChar{}
		case "String", "string", "str":
			return TString{}
		case "Bytes", "bytes":
			return TBytes{}
		case "Void", "void", "()":
			return TVoid{}
		}
		return t
	case TStruct:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: s.ExpandType(f.Type), Mutable: f.Mutable}
		}
		return TStruct{Name: t.Name, Fields: fields, Methods: t.Methods}
	case TTuple:
		return TTuple{Elems: s.expandAll(t.Elems)}
	case TList:
		return TList{Elem: s.ExpandType(t.Elem)}
	case TDict:
		return TDict{Key: s.ExpandType(t.Key), Value: s.ExpandType(t.Value)}
	case TSet:
		return TSet{Elem: s.ExpandType(t.Elem)}
	case TRange:
		return TRange{Elem: s.ExpandType(t.Elem)}
	case TFn:
		return TFn{
			Params:  s.expandAll(t.Params),
			Return:  s.ExpandType(t.Return),
			IsAsync: t.IsAsync,
		}
	case TUnion:
		return TUnion{Members: s.expandAll(t.Members)}
	case TIntersection:
		return TIntersection{Members: s.expandAll(t.Members)}
	case TShared:
		return TShared{Inner: s.ExpandType(t.Inner)}
	case TWeak:
		return TWeak{Inner: s.ExpandType(t.Inner)}
	case TAssoc:
		return TAssoc{Host: s.ExpandType(t.Host), Name: t.Name, Args: s.expandAll(t.Args)}
	case TMeta:
		return TMeta{Level: t.Level, Params: s.expandAll(t.Params)}
	case TLiteral:
		if t.Base != nil {
			return TLiteral{Value: t.Value, Base: s.ExpandType(t.Base)}
		}
		return t
	}
	return ty
}

func (s *Solver) expandAll(types []MonoType) []MonoType {
	out := make([]MonoType, len(types))
	for i, t := range types {
		out[i] = s.ExpandType(t)
	}
	return out
}

// ResolveType is the read-only entry point for consumers that want a type
// with all known bindings substituted in.
func (s *Solver) ResolveType(ty MonoType) MonoType {
	return s.ExpandType(ty)
}

// AddConstraint queues a deferred equality for Solve.
func (s *Solver) AddConstraint(left, right MonoType, span ast.Span) {
	s.constraints = append(s.constraints, Constraint{Left: left, Right: right, Span: span})
}

// Solve drains every queued constraint and accumulates all failures, so one
// pass reports every independent type error. Returns nil on success.
func (s *Solver) Solve() []*ConstraintError {
	pending := s.constraints
	s.constraints = nil

	var errs []*ConstraintError
	for _, c := range pending {
		if err := s.Unify(c.Left, c.Right); err != nil {
			errs = append(errs, &ConstraintError{Err: err, Span: c.Span})
		}
	}
	return errs
}

// ContainsVar reports whether v's root occurs anywhere inside ty. This is
// the occurs check used by Bind.
func (s *Solver) ContainsVar(ty MonoType, v TypeVar) bool {
	root := s.Find(v)
	var walk func(MonoType) bool
	walk = func(t MonoType) bool {
		switch t := t.(type) {
		case TVar:
			return s.Find(t.Var) == root
		case TStruct:
			for _, f := range t.Fields {
				if walk(f.Type) {
					return true
				}
			}
		case TTuple:
			return anyType(t.Elems, walk)
		case TList:
			return walk(t.Elem)
		case TDict:
			return walk(t.Key) || walk(t.Value)
		case TSet:
			return walk(t.Elem)
		case TRange:
			return walk(t.Elem)
		case TFn:
			return anyType(t.Params, walk) || walk(t.Return)
		case TUnion:
			return anyType(t.Members, walk)
		case TIntersection:
			return anyType(t.Members, walk)
		case TShared:
			return walk(t.Inner)
		case TWeak:
			return walk(t.Inner)
		case TAssoc:
			return walk(t.Host) || anyType(t.Args, walk)
		case TMeta:
			return anyType(t.Params, walk)
		case TLiteral:
			return t.Base != nil && walk(t.Base)
		}
		return false
	}
	return walk(ty)
}

func anyType(types []MonoType, pred func(MonoType) bool) bool {
	for _, t := range types {
		if pred(t) {
			return true
		}
	}
	return false
}

// Generalize fully resolves ty and abstracts its free unbound, non-generic
// variables into a scheme (let-generalization). Binders appear in first
// occurrence order.
func (s *Solver) Generalize(ty MonoType) PolyType {
	body := s.ExpandType(ty)

	seen := make(map[TypeVar]bool)
	var binders []TypeVar
	var collect func(MonoType)
	collect = func(t MonoType) {
		switch t := t.(type) {
		case TVar:
			root := s.Find(t.Var)
			if _, generic := s.genericVars[root]; generic {
				return
			}
			if s.bindings[root].State == BindingUnbound && !seen[root] {
				seen[root] = true
				binders = append(binders, root)
			}
		case TStruct:
			for _, f := range t.Fields {
				collect(f.Type)
			}
		case TTuple:
			eachType(t.Elems, collect)
		case TList:
			collect(t.Elem)
		case TDict:
			collect(t.Key)
			collect(t.Value)
		case TSet:
			collect(t.Elem)
		case TRange:
			collect(t.Elem)
		case TFn:
			eachType(t.Params, collect)
			collect(t.Return)
		case TUnion:
			eachType(t.Members, collect)
		case TIntersection:
			eachType(t.Members, collect)
		case TShared:
			collect(t.Inner)
		case TWeak:
			collect(t.Inner)
		case TAssoc:
			collect(t.Host)
			eachType(t.Args, collect)
		case TMeta:
			eachType(t.Params, collect)
		case TLiteral:
			if t.Base != nil {
				collect(t.Base)
			}
		}
	}
	collect(body)

	return PolyType{Binders: binders, Body: body}
}

func eachType(types []MonoType, f func(MonoType)) {
	for _, t := range types {
		f(t)
	}
}

// Instantiate replaces each scheme binder with a fresh variable throughout
// the body (use-site specialization).
func (s *Solver) Instantiate(poly PolyType) MonoType {
	return Substitute(poly.Body, s.FreshSubstitution(poly.Binders))
}

// FreshSubstitution maps each binder to a newly allocated variable.
func (s *Solver) FreshSubstitution(binders []TypeVar) map[TypeVar]MonoType {
	sub := make(map[TypeVar]MonoType, len(binders))
	for _, v := range binders {
		sub[v] = s.NewVar()
	}
	return sub
}

// Snapshot copies the current binding arena. Backtracking contexts pair it
// with Restore around each speculative attempt; a full copy of a small slice
// beats an undo log here.
func (s *Solver) Snapshot() []TypeBinding {
	snap := make([]TypeBinding, len(s.bindings))
	copy(snap, s.bindings)
	return snap
}

// Restore rewinds the arena to a snapshot taken on the same solver.
func (s *Solver) Restore(snap []TypeBinding) {
	s.bindings = s.bindings[:len(snap)]
	copy(s.bindings, snap)
}
