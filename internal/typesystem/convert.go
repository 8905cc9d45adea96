package typesystem

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/ast"
)

// FromAST converts a source-syntax type expression into the value model.
// Builtin names stay as references here; Solver.ExpandType resolves them.
// The conversion is purely structural and never consults inference state.
func FromAST(t ast.Type) MonoType {
	switch t := t.(type) {
	case *ast.NamedType:
		if len(t.Args) == 0 {
			return TRef{Name: t.Name}
		}
		switch t.Name {
		case "List":
			if len(t.Args) == 1 {
				return TList{Elem: FromAST(t.Args[0])}
			}
		case "Set":
			if len(t.Args) == 1 {
				return TSet{Elem: FromAST(t.Args[0])}
			}
		case "Dict":
			if len(t.Args) == 2 {
				return TDict{Key: FromAST(t.Args[0]), Value: FromAST(t.Args[1])}
			}
		}
		// Other generic applications stay symbolic until declarations
		// resolve them.
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = FromAST(a).TypeName()
		}
		return TRef{Name: t.Name + "<" + strings.Join(args, ", ") + ">"}

	case *ast.TupleType:
		return TTuple{Elems: fromASTAll(t.Types)}

	case *ast.StructType:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Type: FromAST(f.Type), Mutable: f.Mutable}
		}
		return TStruct{Name: t.Name, Fields: fields}

	case *ast.EnumType:
		return TEnum{Name: t.Name, Variants: t.Variants}

	case *ast.FunctionType:
		return TFn{
			Params:  fromASTAll(t.Params),
			Return:  FromAST(t.Return),
			IsAsync: t.IsAsync,
		}

	case *ast.ListType:
		return TList{Elem: FromAST(t.Elem)}

	case *ast.DictType:
		return TDict{Key: FromAST(t.Key), Value: FromAST(t.Value)}

	case *ast.SetType:
		return TSet{Elem: FromAST(t.Elem)}

	case *ast.UnionType:
		return TUnion{Members: fromASTAll(t.Members)}

	case *ast.IntersectionType:
		return TIntersection{Members: fromASTAll(t.Members)}

	case *ast.AssocType:
		return TAssoc{Host: FromAST(t.Host), Name: t.Name, Args: fromASTAll(t.Args)}

	case *ast.OptionType:
		return TEnum{Name: "Option", Variants: []string{"Some", "None"}}

	case *ast.ResultType:
		return TEnum{Name: "Result", Variants: []string{"Ok", "Err"}}
	}

	panic("typesystem: unhandled type expression")
}

func fromASTAll(types []ast.Type) []MonoType {
	out := make([]MonoType, len(types))
	for i, t := range types {
		out[i] = FromAST(t)
	}
	return out
}
