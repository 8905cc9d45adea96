package typesystem

import "reflect"

// typesEqual is structural equality over type values. Types are plain value
// structs, so deep equality is the comparison the arena model needs.
func typesEqual(a, b MonoType) bool {
	return reflect.DeepEqual(a, b)
}

// Substitute rewrites ty, replacing every variable present in sub with its
// mapped type. Variables outside the map are left untouched; the result
// shares no mutable state with the input.
func Substitute(ty MonoType, sub map[TypeVar]MonoType) MonoType {
	if len(sub) == 0 {
		return ty
	}
	switch t := ty.(type) {
	case TVar:
		if repl, ok := sub[t.Var]; ok {
			return repl
		}
		return t
	case TStruct:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: Substitute(f.Type, sub), Mutable: f.Mutable}
		}
		return TStruct{Name: t.Name, Fields: fields, Methods: t.Methods}
	case TTuple:
		return TTuple{Elems: substituteAll(t.Elems, sub)}
	case TList:
		return TList{Elem: Substitute(t.Elem, sub)}
	case TDict:
		return TDict{Key: Substitute(t.Key, sub), Value: Substitute(t.Value, sub)}
	case TSet:
		return TSet{Elem: Substitute(t.Elem, sub)}
	case TRange:
		return TRange{Elem: Substitute(t.Elem, sub)}
	case TFn:
		return TFn{
			Params:  substituteAll(t.Params, sub),
			Return:  Substitute(t.Return, sub),
			IsAsync: t.IsAsync,
		}
	case TUnion:
		return TUnion{Members: substituteAll(t.Members, sub)}
	case TIntersection:
		return TIntersection{Members: substituteAll(t.Members, sub)}
	case TShared:
		return TShared{Inner: Substitute(t.Inner, sub)}
	case TWeak:
		return TWeak{Inner: Substitute(t.Inner, sub)}
	case TAssoc:
		return TAssoc{Host: Substitute(t.Host, sub), Name: t.Name, Args: substituteAll(t.Args, sub)}
	case TMeta:
		return TMeta{Level: t.Level, Params: substituteAll(t.Params, sub)}
	case TLiteral:
		if t.Base != nil {
			return TLiteral{Value: t.Value, Base: Substitute(t.Base, sub)}
		}
		return t
	}
	return ty
}

func substituteAll(types []MonoType, sub map[TypeVar]MonoType) []MonoType {
	out := make([]MonoType, len(types))
	for i, t := range types {
		out[i] = Substitute(t, sub)
	}
	return out
}
