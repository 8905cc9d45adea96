package typesystem

// DispatchKind classifies how a constraint-typed binding dispatches method
// calls. A statically known implementer gets direct calls; everything else
// goes through the indirect table.
type DispatchKind int

const (
	// DispatchConcrete: the right-hand side is a named, non-constraint
	// struct, so call targets are resolvable at compile time.
	DispatchConcrete DispatchKind = iota
	// DispatchDynamic: the right-hand side is unresolved or non-nominal and
	// needs indirect dispatch.
	DispatchDynamic
)

func (k DispatchKind) String() string {
	if k == DispatchConcrete {
		return "concrete"
	}
	return "dynamic"
}

// IsSubtype reports whether sub may be used where sup is expected. This is
// the asymmetric assignment relation, distinct from unification: nothing is
// bound, widths widen, and variance applies.
func IsSubtype(sub, sup MonoType) bool {
	if typesEqual(sub, sup) {
		return true
	}

	// A constraint supertype is satisfied structurally, not nominally.
	if IsConstraint(sup) {
		return SatisfiesConstraint(sub, sup) == nil
	}

	switch supT := sup.(type) {
	case TFloat:
		// Integers widen to floats.
		if _, ok := sub.(TInt); ok {
			return true
		}
	case TList:
		if subT, ok := sub.(TList); ok {
			return IsSubtype(subT.Elem, supT.Elem)
		}
	case TFn:
		subT, ok := sub.(TFn)
		if !ok {
			return false
		}
		if subT.IsAsync != supT.IsAsync || len(subT.Params) != len(supT.Params) {
			return false
		}
		// Contravariant parameters, covariant return.
		for i := range subT.Params {
			if !IsSubtype(supT.Params[i], subT.Params[i]) {
				return false
			}
		}
		return IsSubtype(subT.Return, supT.Return)
	case TStruct:
		subT, ok := sub.(TStruct)
		if !ok {
			return false
		}
		if subT.Name != supT.Name || len(subT.Fields) != len(supT.Fields) {
			return false
		}
		for i := range subT.Fields {
			if subT.Fields[i].Name != supT.Fields[i].Name {
				return false
			}
			if !IsSubtype(subT.Fields[i].Type, supT.Fields[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}

// SatisfiesConstraint checks structural interface satisfaction: every
// function field of the constraint must exist on ty with a compatible
// signature. The empty constraint is satisfied by anything. Returns nil on
// success, otherwise a violation listing every missing and mismatched
// method.
func SatisfiesConstraint(ty, constraint MonoType) *ConstraintViolation {
	required := ConstraintFields(constraint)
	if len(required) == 0 {
		return nil
	}

	var candidate []Field
	if s, ok := ty.(TStruct); ok {
		for _, f := range s.Fields {
			if _, ok := f.Type.(TFn); ok {
				candidate = append(candidate, f)
			}
		}
	}

	violation := &ConstraintViolation{
		TypeName:       ty.TypeName(),
		ConstraintName: constraint.TypeName(),
	}
	for _, req := range required {
		found := false
		for _, have := range candidate {
			if have.Name != req.Name {
				continue
			}
			found = true
			if !FnSignatureCompatible(have.Type.(TFn), req.Type.(TFn)) {
				violation.Mismatched = append(violation.Mismatched, SignatureMismatch{
					Name:     req.Name,
					Expected: req.Type.TypeName(),
					Found:    have.Type.TypeName(),
				})
			}
			break
		}
		if !found {
			violation.Missing = append(violation.Missing, req.Name)
		}
	}

	if len(violation.Missing) > 0 || len(violation.Mismatched) > 0 {
		return violation
	}
	return nil
}

// FnSignatureCompatible reports whether a found method signature satisfies a
// constraint's signature: covariant return, contravariant parameters, and
// either exact arity or exactly one extra leading parameter on the found
// side, treated as the implicit receiver and skipped.
func FnSignatureCompatible(found, want TFn) bool {
	if !IsSubtype(found.Return, want.Return) {
		return false
	}

	params := found.Params
	switch {
	case len(params) == len(want.Params):
	case len(params) == len(want.Params)+1:
		params = params[1:]
	default:
		return false
	}
	for i := range params {
		if !IsSubtype(want.Params[i], params[i]) {
			return false
		}
	}
	return true
}

// CheckAssignment decides whether rhs may be assigned to an lhs-typed slot.
// For constraint-typed slots it runs structural satisfaction and classifies
// the binding for dispatch; otherwise it falls back to the subtype relation.
func CheckAssignment(lhs, rhs MonoType) (DispatchKind, error) {
	if IsConstraint(lhs) {
		if v := SatisfiesConstraint(rhs, lhs); v != nil {
			return DispatchDynamic, v
		}
		if s, ok := rhs.(TStruct); ok && s.Name != "" && !IsConstraint(rhs) {
			return DispatchConcrete, nil
		}
		return DispatchDynamic, nil
	}

	if !IsSubtype(rhs, lhs) {
		return DispatchConcrete, NewTypeMismatch(lhs, rhs)
	}
	return DispatchConcrete, nil
}
