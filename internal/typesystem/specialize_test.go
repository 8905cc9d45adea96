package typesystem

import (
	"reflect"
	"testing"
)

func identityScheme(s *Solver) PolyType {
	v := s.NewVar()
	return s.Generalize(TFn{Params: []MonoType{v}, Return: v})
}

func TestSpecialize(t *testing.T) {
	s := NewSolver()
	sp := NewSpecializer()
	poly := identityScheme(s)

	got, err := sp.Specialize(poly, []MonoType{TInt{Width: 64}})
	if err != nil {
		t.Fatalf("Specialize failed: %v", err)
	}
	want := TFn{Params: []MonoType{TInt{Width: 64}}, Return: TInt{Width: 64}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Specialize = %s, want %s", got.TypeName(), want.TypeName())
	}
}

func TestSpecializeArityMismatch(t *testing.T) {
	s := NewSolver()
	sp := NewSpecializer()
	poly := identityScheme(s)

	_, err := sp.Specialize(poly, []MonoType{TInt{Width: 64}, TBool{}})
	if err == nil {
		t.Fatalf("Specialize accepted the wrong argument count")
	}
	arity, ok := err.(*ArityMismatchError)
	if !ok {
		t.Fatalf("error is %T, want *ArityMismatchError", err)
	}
	if arity.Expected != 1 || arity.Found != 2 {
		t.Errorf("arity error = expected %d found %d, want expected 1 found 2", arity.Expected, arity.Found)
	}
}

func TestSpecializeCached(t *testing.T) {
	s := NewSolver()
	sp := NewSpecializer()
	poly := identityScheme(s)
	args := []MonoType{TString{}}

	first, err := sp.SpecializeCached(poly, args, s)
	if err != nil {
		t.Fatalf("first SpecializeCached failed: %v", err)
	}
	second, err := sp.SpecializeCached(poly, args, s)
	if err != nil {
		t.Fatalf("second SpecializeCached failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache hit produced %s, first call produced %s", second.TypeName(), first.TypeName())
	}

	sp.Reset()
	third, err := sp.SpecializeCached(poly, args, s)
	if err != nil {
		t.Fatalf("SpecializeCached after Reset failed: %v", err)
	}
	if !reflect.DeepEqual(first, third) {
		t.Errorf("Reset changed the specialization result: %s vs %s", first.TypeName(), third.TypeName())
	}
}

func TestSpecializeCachedDistinctArgs(t *testing.T) {
	s := NewSolver()
	sp := NewSpecializer()
	poly := identityScheme(s)

	intFn, err := sp.SpecializeCached(poly, []MonoType{TInt{Width: 64}}, s)
	if err != nil {
		t.Fatalf("SpecializeCached(Int) failed: %v", err)
	}
	strFn, err := sp.SpecializeCached(poly, []MonoType{TString{}}, s)
	if err != nil {
		t.Fatalf("SpecializeCached(String) failed: %v", err)
	}

	if !reflect.DeepEqual(intFn.(TFn).Return, TInt{Width: 64}) {
		t.Errorf("Int specialization returns %s", intFn.(TFn).Return.TypeName())
	}
	if !reflect.DeepEqual(strFn.(TFn).Return, TString{}) {
		t.Errorf("String specialization returns %s", strFn.(TFn).Return.TypeName())
	}
}
