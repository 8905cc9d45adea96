package typesystem

import (
	"reflect"
	"testing"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		ty   MonoType
		want string
	}{
		{"int", TInt{Width: 64}, "int64"},
		{"float", TFloat{Width: 32}, "float32"},
		{"var", TVar{Var: 3}, "t3"},
		{"named struct", TStruct{Name: "Point"}, "Point"},
		{
			"anonymous struct",
			TStruct{Fields: []Field{{Name: "x", Type: TInt{Width: 64}}}},
			"{x: int64}",
		},
		{"anonymous enum", TEnum{Variants: []string{"red", "green"}}, "red | green"},
		{"tuple", TTuple{Elems: []MonoType{TInt{Width: 64}, TBool{}}}, "(int64, bool)"},
		{"list", TList{Elem: TString{}}, "List<string>"},
		{"dict", TDict{Key: TString{}, Value: TInt{Width: 64}}, "Dict<string, int64>"},
		{
			"fn",
			TFn{Params: []MonoType{TInt{Width: 64}}, Return: TBool{}},
			"fn(int64) -> bool",
		},
		{"union", TUnion{Members: []MonoType{TInt{Width: 64}, TBool{}}}, "(int64 | bool)"},
		{"shared", TShared{Inner: TRef{Name: "Node"}}, "Shared<Node>"},
		{
			"assoc with args",
			TAssoc{Host: TRef{Name: "T"}, Name: "Item", Args: []MonoType{TInt{Width: 64}}},
			"T::Item<int64>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ty.TypeName(); got != tt.want {
				t.Errorf("TypeName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric(TInt{Width: 8}) || !IsNumeric(TFloat{Width: 64}) {
		t.Errorf("numeric types not recognized")
	}
	if IsNumeric(TBool{}) || IsNumeric(TString{}) {
		t.Errorf("non-numeric type recognized as numeric")
	}
}

func TestIsConstraint(t *testing.T) {
	draw := Field{Name: "draw", Type: TFn{Return: TVoid{}}}

	tests := []struct {
		name string
		ty   MonoType
		want bool
	}{
		{"all fn fields", TStruct{Name: "Drawable", Fields: []Field{draw}}, true},
		{"empty struct", TStruct{Name: "Any"}, true},
		{
			"mixed fields",
			TStruct{Name: "Circle", Fields: []Field{draw, {Name: "r", Type: TFloat{Width: 64}}}},
			false,
		},
		{"non-struct", TInt{Width: 64}, false},
		{"named reference", TRef{Name: "Drawable"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConstraint(tt.ty); got != tt.want {
				t.Errorf("IsConstraint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstraintFields(t *testing.T) {
	s := TStruct{Name: "Circle", Fields: []Field{
		{Name: "radius", Type: TFloat{Width: 64}},
		{Name: "draw", Type: TFn{Return: TVoid{}}},
	}}

	fields := ConstraintFields(s)
	if len(fields) != 1 || fields[0].Name != "draw" {
		t.Errorf("ConstraintFields = %v, want just draw", fields)
	}
	if ConstraintFields(TBool{}) != nil {
		t.Errorf("ConstraintFields on a non-struct is not nil")
	}
}

func TestPolyType(t *testing.T) {
	mono := Mono(TInt{Width: 64})
	if !mono.IsMono() {
		t.Errorf("Mono scheme reports binders")
	}
	if mono.TypeName() != "int64" {
		t.Errorf("scheme TypeName = %q, want int64", mono.TypeName())
	}

	poly := PolyType{Binders: []TypeVar{0}, Body: TVar{Var: 0}}
	if poly.IsMono() {
		t.Errorf("quantified scheme reports mono")
	}
}

func TestSubstitute(t *testing.T) {
	v0, v1 := TypeVar(0), TypeVar(1)
	sub := map[TypeVar]MonoType{v0: TInt{Width: 64}}

	in := TFn{
		Params: []MonoType{TVar{Var: v0}, TVar{Var: v1}},
		Return: TList{Elem: TVar{Var: v0}},
	}
	want := TFn{
		Params: []MonoType{TInt{Width: 64}, TVar{Var: v1}},
		Return: TList{Elem: TInt{Width: 64}},
	}
	if got := Substitute(in, sub); !reflect.DeepEqual(got, want) {
		t.Errorf("Substitute = %#v, want %#v", got, want)
	}

	if got := Substitute(in, nil); !reflect.DeepEqual(got, in) {
		t.Errorf("empty substitution rewrote the type")
	}
}
