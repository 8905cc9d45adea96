package typesystem

// Unify makes t1 and t2 structurally equal by binding variables, failing
// fast on the first irreconcilable pair within this call. Both sides are
// expanded first, so variable cases below only see unbound roots.
func (s *Solver) Unify(t1, t2 MonoType) *TypeMismatch {
	a := s.ExpandType(t1)
	b := s.ExpandType(t2)

	switch at := a.(type) {
	case TVar:
		if bt, ok := b.(TVar); ok {
			v1 := s.Find(at.Var)
			v2 := s.Find(bt.Var)
			if v1 == v2 {
				return nil
			}
			return s.Bind(v1, TVar{Var: v2})
		}
		return s.Bind(at.Var, b)
	}
	if bt, ok := b.(TVar); ok {
		return s.Bind(bt.Var, a)
	}

	switch at := a.(type) {
	case TVoid:
		if _, ok := b.(TVoid); ok {
			return nil
		}
	case TBool:
		if _, ok := b.(TBool); ok {
			return nil
		}
	case TInt:
		if bt, ok := b.(TInt); ok && at.Width == bt.Width {
			return nil
		}
	case TFloat:
		if bt, ok := b.(TFloat); ok && at.Width == bt.Width {
			return nil
		}
	case TChar:
		if _, ok := b.(TChar); ok {
			return nil
		}
	case TString:
		if _, ok := b.(TString); ok {
			return nil
		}
	case TBytes:
		if _, ok := b.(TBytes); ok {
			return nil
		}

	case TFn:
		bt, ok := b.(TFn)
		if !ok {
			break
		}
		if len(at.Params) != len(bt.Params) || at.IsAsync != bt.IsAsync {
			return NewTypeMismatch(a, b)
		}
		for i := range at.Params {
			if err := s.Unify(at.Params[i], bt.Params[i]); err != nil {
				return err
			}
		}
		return s.Unify(at.Return, bt.Return)

	case TStruct:
		bt, ok := b.(TStruct)
		if !ok {
			break
		}
		if at.Name != bt.Name || len(at.Fields) != len(bt.Fields) {
			return NewTypeMismatch(a, b)
		}
		for i := range at.Fields {
			af, bf := at.Fields[i], bt.Fields[i]
			if af.Name != bf.Name || af.Mutable != bf.Mutable {
				return NewTypeMismatch(a, b)
			}
			if err := s.Unify(af.Type, bf.Type); err != nil {
				return err
			}
		}
		return nil

	case TEnum:
		bt, ok := b.(TEnum)
		if !ok {
			break
		}
		if at.Name != bt.Name || len(at.Variants) != len(bt.Variants) {
			return NewTypeMismatch(a, b)
		}
		for i := range at.Variants {
			if at.Variants[i] != bt.Variants[i] {
				return NewTypeMismatch(a, b)
			}
		}
		return nil

	case TTuple:
		bt, ok := b.(TTuple)
		if !ok {
			break
		}
		if len(at.Elems) != len(bt.Elems) {
			return NewTypeMismatch(a, b)
		}
		return s.unifyAll(at.Elems, bt.Elems)

	case TList:
		if bt, ok := b.(TList); ok {
			return s.Unify(at.Elem, bt.Elem)
		}
	case TDict:
		if bt, ok := b.(TDict); ok {
			if err := s.Unify(at.Key, bt.Key); err != nil {
				return err
			}
			return s.Unify(at.Value, bt.Value)
		}
	case TSet:
		if bt, ok := b.(TSet); ok {
			return s.Unify(at.Elem, bt.Elem)
		}
	case TRange:
		if bt, ok := b.(TRange); ok {
			return s.Unify(at.Elem, bt.Elem)
		}
	case TShared:
		if bt, ok := b.(TShared); ok {
			return s.Unify(at.Inner, bt.Inner)
		}
	case TWeak:
		if bt, ok := b.(TWeak); ok {
			return s.Unify(at.Inner, bt.Inner)
		}

	case TAssoc:
		bt, ok := b.(TAssoc)
		if !ok {
			break
		}
		if at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return NewTypeMismatch(a, b)
		}
		if err := s.Unify(at.Host, bt.Host); err != nil {
			return err
		}
		return s.unifyAll(at.Args, bt.Args)

	case TRef:
		// Named references left by expansion are user-defined: equal only
		// if names are literally equal, no resolution here.
		if bt, ok := b.(TRef); ok && at.Name == bt.Name {
			return nil
		}

	case TLiteral:
		if bt, ok := b.(TLiteral); ok && at.Value == bt.Value {
			return nil
		}
	case TMeta:
		bt, ok := b.(TMeta)
		if !ok {
			break
		}
		if at.Level != bt.Level || len(at.Params) != len(bt.Params) {
			return NewTypeMismatch(a, b)
		}
		return s.unifyAll(at.Params, bt.Params)
	}

	// Union and intersection pairings come after every concrete case so a
	// concrete-vs-concrete mismatch never backtracks.
	if au, ok := a.(TUnion); ok {
		if bu, ok := b.(TUnion); ok {
			if len(au.Members) != len(bu.Members) || !s.unifyUnordered(au.Members, bu.Members) {
				return NewTypeMismatch(a, b)
			}
			return nil
		}
		return s.unifyUnionWith(au, b)
	}
	if bu, ok := b.(TUnion); ok {
		return s.unifyUnionWith(bu, a)
	}

	if ai, ok := a.(TIntersection); ok {
		if bi, ok := b.(TIntersection); ok {
			if len(ai.Members) != len(bi.Members) || !s.unifyUnordered(ai.Members, bi.Members) {
				return NewTypeMismatch(a, b)
			}
			return nil
		}
		return s.unifyIntersectionWith(ai, b)
	}
	if bi, ok := b.(TIntersection); ok {
		return s.unifyIntersectionWith(bi, a)
	}

	return NewTypeMismatch(a, b)
}

func (s *Solver) unifyAll(left, right []MonoType) *TypeMismatch {
	for i := range left {
		if err := s.Unify(left[i], right[i]); err != nil {
			return err
		}
	}
	return nil
}

// unifyUnordered searches for a bijection between the two member multisets
// under which every pair unifies. Each speculative pairing runs against a
// snapshot of the arena and is rolled back on failure.
func (s *Solver) unifyUnordered(left, right []MonoType) bool {
	if len(left) == 0 {
		return true
	}
	used := make([]bool, len(right))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(left) {
			return true
		}
		for j := range right {
			if used[j] {
				continue
			}
			snap := s.Snapshot()
			if s.Unify(left[i], right[j]) == nil {
				used[j] = true
				if match(i + 1) {
					return true
				}
				used[j] = false
			}
			s.Restore(snap)
		}
		return false
	}
	return match(0)
}

// unifyUnionWith tries each union member against the concrete type in turn,
// rolling back between attempts and accepting the first success
// (least-commitment resolution).
func (s *Solver) unifyUnionWith(u TUnion, other MonoType) *TypeMismatch {
	for _, member := range u.Members {
		snap := s.Snapshot()
		if s.Unify(member, other) == nil {
			return nil
		}
		s.Restore(snap)
	}
	return NewTypeMismatch(u, other)
}

// unifyIntersectionWith requires the concrete type to unify with every
// member (conjunctive).
func (s *Solver) unifyIntersectionWith(in TIntersection, other MonoType) *TypeMismatch {
	for _, member := range in.Members {
		if err := s.Unify(member, other); err != nil {
			return err
		}
	}
	return nil
}
