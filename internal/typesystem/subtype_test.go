package typesystem

import (
	"testing"
)

func surfaceDraw(params ...MonoType) TFn {
	return TFn{Params: params, Return: TVoid{}}
}

func drawable() TStruct {
	return TStruct{Name: "Drawable", Fields: []Field{
		{Name: "draw", Type: surfaceDraw(TRef{Name: "Surface"})},
	}}
}

func TestIsSubtype(t *testing.T) {
	tests := []struct {
		name string
		sub  MonoType
		sup  MonoType
		want bool
	}{
		{"identity", TInt{Width: 64}, TInt{Width: 64}, true},
		{"int widens to float", TInt{Width: 64}, TFloat{Width: 64}, true},
		{"float does not narrow to int", TFloat{Width: 64}, TInt{Width: 64}, false},
		{"list covariance", TList{Elem: TInt{Width: 64}}, TList{Elem: TFloat{Width: 64}}, true},
		{"list covariance fails", TList{Elem: TFloat{Width: 64}}, TList{Elem: TInt{Width: 64}}, false},
		{
			"fn covariant return",
			TFn{Return: TInt{Width: 64}},
			TFn{Return: TFloat{Width: 64}},
			true,
		},
		{
			"fn contravariant params",
			TFn{Params: []MonoType{TFloat{Width: 64}}, Return: TVoid{}},
			TFn{Params: []MonoType{TInt{Width: 64}}, Return: TVoid{}},
			true,
		},
		{
			"fn params not covariant",
			TFn{Params: []MonoType{TInt{Width: 64}}, Return: TVoid{}},
			TFn{Params: []MonoType{TFloat{Width: 64}}, Return: TVoid{}},
			false,
		},
		{
			"fn async mismatch",
			TFn{Return: TVoid{}, IsAsync: true},
			TFn{Return: TVoid{}},
			false,
		},
		{
			"struct field covariance",
			TStruct{Name: "P", Fields: []Field{{Name: "x", Type: TInt{Width: 64}}}},
			TStruct{Name: "P", Fields: []Field{{Name: "x", Type: TFloat{Width: 64}}}},
			true,
		},
		{
			"struct name mismatch",
			TStruct{Name: "P", Fields: []Field{{Name: "x", Type: TInt{Width: 64}}}},
			TStruct{Name: "Q", Fields: []Field{{Name: "x", Type: TInt{Width: 64}}}},
			false,
		},
		{"unrelated", TBool{}, TString{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubtype(tt.sub, tt.sup); got != tt.want {
				t.Errorf("IsSubtype(%s, %s) = %v, want %v", tt.sub.TypeName(), tt.sup.TypeName(), got, tt.want)
			}
		})
	}
}

func TestSatisfiesConstraintWithReceiver(t *testing.T) {
	// Circle's draw takes an extra leading receiver parameter; the data field
	// is ignored by structural satisfaction.
	circle := TStruct{Name: "Circle", Fields: []Field{
		{Name: "radius", Type: TFloat{Width: 64}},
		{Name: "draw", Type: surfaceDraw(TRef{Name: "Circle"}, TRef{Name: "Surface"})},
	}}

	if v := SatisfiesConstraint(circle, drawable()); v != nil {
		t.Errorf("Circle does not satisfy Drawable: %v", v)
	}
}

func TestSatisfiesConstraintMissingMethod(t *testing.T) {
	rect := TStruct{Name: "Rect", Fields: []Field{
		{Name: "w", Type: TFloat{Width: 64}},
		{Name: "h", Type: TFloat{Width: 64}},
	}}

	v := SatisfiesConstraint(rect, drawable())
	if v == nil {
		t.Fatalf("Rect satisfied Drawable without a draw method")
	}
	if len(v.Missing) != 1 || v.Missing[0] != "draw" {
		t.Errorf("Missing = %v, want [draw]", v.Missing)
	}
	if len(v.Mismatched) != 0 {
		t.Errorf("Mismatched = %v, want none", v.Mismatched)
	}
}

func TestSatisfiesConstraintSignatureMismatch(t *testing.T) {
	shape := TStruct{Name: "Shape", Fields: []Field{
		{Name: "draw", Type: TFn{Params: []MonoType{TRef{Name: "Surface"}}, Return: TInt{Width: 64}}},
	}}

	v := SatisfiesConstraint(shape, drawable())
	if v == nil {
		t.Fatalf("Shape satisfied Drawable despite the wrong return type")
	}
	if len(v.Mismatched) != 1 || v.Mismatched[0].Name != "draw" {
		t.Errorf("Mismatched = %v, want one entry for draw", v.Mismatched)
	}
}

func TestEmptyConstraintSatisfiedByAnything(t *testing.T) {
	empty := TStruct{Name: "Any"}

	if !IsConstraint(empty) {
		t.Fatalf("empty struct not classified as a constraint")
	}
	for _, ty := range []MonoType{TInt{Width: 64}, TString{}, TList{Elem: TBool{}}} {
		if v := SatisfiesConstraint(ty, empty); v != nil {
			t.Errorf("%s does not satisfy the empty constraint: %v", ty.TypeName(), v)
		}
	}
}

func TestFnSignatureCompatible(t *testing.T) {
	want := surfaceDraw(TRef{Name: "Surface"})

	tests := []struct {
		name  string
		found TFn
		ok    bool
	}{
		{"exact", surfaceDraw(TRef{Name: "Surface"}), true},
		{"receiver skipped", surfaceDraw(TRef{Name: "Circle"}, TRef{Name: "Surface"}), true},
		{"two extra params", surfaceDraw(TRef{Name: "Circle"}, TRef{Name: "Circle"}, TRef{Name: "Surface"}), false},
		{"wrong param", surfaceDraw(TRef{Name: "Canvas"}), false},
		{"wrong return", TFn{Params: []MonoType{TRef{Name: "Surface"}}, Return: TBool{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FnSignatureCompatible(tt.found, want); got != tt.ok {
				t.Errorf("FnSignatureCompatible = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestCheckAssignmentDispatch(t *testing.T) {
	circle := TStruct{Name: "Circle", Fields: []Field{
		{Name: "radius", Type: TFloat{Width: 64}},
		{Name: "draw", Type: surfaceDraw(TRef{Name: "Circle"}, TRef{Name: "Surface"})},
	}}

	t.Run("named implementer is concrete", func(t *testing.T) {
		kind, err := CheckAssignment(drawable(), circle)
		if err != nil {
			t.Fatalf("CheckAssignment failed: %v", err)
		}
		if kind != DispatchConcrete {
			t.Errorf("kind = %s, want concrete", kind)
		}
	})

	t.Run("non-struct satisfier is dynamic", func(t *testing.T) {
		s := NewSolver()
		kind, err := CheckAssignment(TStruct{Name: "Any"}, s.NewVar())
		if err != nil {
			t.Fatalf("CheckAssignment failed: %v", err)
		}
		if kind != DispatchDynamic {
			t.Errorf("kind = %s, want dynamic", kind)
		}
	})

	t.Run("violation is dynamic with error", func(t *testing.T) {
		kind, err := CheckAssignment(drawable(), TInt{Width: 64})
		if err == nil {
			t.Fatalf("Int satisfied Drawable")
		}
		if kind != DispatchDynamic {
			t.Errorf("kind = %s, want dynamic", kind)
		}
	})

	t.Run("plain subtyping", func(t *testing.T) {
		if _, err := CheckAssignment(TFloat{Width: 64}, TInt{Width: 64}); err != nil {
			t.Errorf("Int -> Float assignment failed: %v", err)
		}
		if _, err := CheckAssignment(TInt{Width: 64}, TBool{}); err == nil {
			t.Errorf("Bool -> Int assignment succeeded")
		}
	})
}
