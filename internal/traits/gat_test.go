package traits

import (
	"reflect"
	"testing"

	"github.com/lumen-lang/lumen/internal/ast"
)

func named(name string, args ...ast.Type) *ast.NamedType {
	return &ast.NamedType{Name: name, Args: args}
}

func TestGATRegistration(t *testing.T) {
	env := NewGATEnvironment()
	env.RegisterAssocType("Iterator", AssocTypeDef{Name: "Item"})
	env.RegisterGAT("Container", GenericAssocType{
		Name:        "Slice",
		HostParams:  []string{"T"},
		AssocParams: []string{"N"},
	})

	if def := env.FindAssocType("Iterator", "Item"); def == nil {
		t.Errorf("FindAssocType missed a registered slot")
	}
	if def := env.FindAssocType("Iterator", "Key"); def != nil {
		t.Errorf("FindAssocType returned an unregistered slot")
	}
	if gat := env.FindGAT("Container", "Slice"); gat == nil {
		t.Errorf("FindGAT missed a registered slot")
	}
	if got := len(env.GATs("Container")); got != 1 {
		t.Errorf("GATs(Container) has %d slots, want 1", got)
	}
}

func TestGATFindImpl(t *testing.T) {
	env := NewGATEnvironment()
	env.RegisterImpl(GATImpl{ForType: "Vec", AssocName: "Item", Impl: named("Int")})

	impl := env.FindImpl("Vec", "Item")
	if impl == nil {
		t.Fatalf("FindImpl missed a registered implementation")
	}
	if TypeExprName(impl.Impl) != "Int" {
		t.Errorf("impl type = %s, want Int", TypeExprName(impl.Impl))
	}
	if env.FindImpl("Vec", "Key") != nil {
		t.Errorf("FindImpl matched the wrong slot name")
	}
}

func TestInferAssocType(t *testing.T) {
	env := NewGATEnvironment()
	env.RegisterGAT("Container", GenericAssocType{
		Name:       "Item",
		HostParams: []string{"T"},
		Default:    named("Int"),
	})
	env.RegisterGAT("Container", GenericAssocType{
		Name:       "Key",
		HostParams: []string{"T"},
	})

	t.Run("default wins", func(t *testing.T) {
		got, err := env.InferAssocType("Container", "Item", []ast.Type{named("String")})
		if err != nil {
			t.Fatalf("InferAssocType failed: %v", err)
		}
		if TypeExprName(got) != "Int" {
			t.Errorf("inferred %s, want the declared default Int", TypeExprName(got))
		}
	})

	t.Run("undefined slot", func(t *testing.T) {
		_, err := env.InferAssocType("Container", "Missing", nil)
		if _, ok := err.(*UndefinedAssocTypeError); !ok {
			t.Errorf("error is %T, want *UndefinedAssocTypeError", err)
		}
	})

	t.Run("host arity mismatch", func(t *testing.T) {
		_, err := env.InferAssocType("Container", "Item", []ast.Type{named("A"), named("B")})
		mismatch, ok := err.(*GenericParamCountMismatchError)
		if !ok {
			t.Fatalf("error is %T, want *GenericParamCountMismatchError", err)
		}
		if mismatch.Expected != 1 || mismatch.Actual != 2 {
			t.Errorf("mismatch = %d/%d, want 1/2", mismatch.Expected, mismatch.Actual)
		}
	})

	t.Run("no default", func(t *testing.T) {
		_, err := env.InferAssocType("Container", "Key", []ast.Type{named("String")})
		if _, ok := err.(*CannotInferAssocTypeError); !ok {
			t.Errorf("error is %T, want *CannotInferAssocTypeError", err)
		}
	})
}

func TestGATCheckCycles(t *testing.T) {
	clean := NewGATEnvironment()
	clean.RegisterGAT("Container", GenericAssocType{
		Name:        "Item",
		HostParams:  []string{"T"},
		AssocParams: []string{"N"},
	})
	if err := clean.Validate(); err != nil {
		t.Errorf("Validate rejected a clean registry: %v", err)
	}

	cyclic := NewGATEnvironment()
	cyclic.RegisterGAT("Container", GenericAssocType{
		Name:        "Item",
		HostParams:  []string{"T"},
		AssocParams: []string{"T"},
	})
	err := cyclic.Validate()
	cycleErr, ok := err.(*CyclicAssocTypeError)
	if !ok {
		t.Fatalf("error is %T, want *CyclicAssocTypeError", err)
	}
	want := []string{"Container.Item"}
	if !reflect.DeepEqual(cycleErr.AssocTypes, want) {
		t.Errorf("cycle names %v, want %v", cycleErr.AssocTypes, want)
	}
}

func TestRegisteredTraits(t *testing.T) {
	env := NewGATEnvironment()
	env.RegisterAssocType("Iterator", AssocTypeDef{Name: "Item"})
	env.RegisterGAT("Iterator", GenericAssocType{Name: "Windows", HostParams: []string{"T"}})
	env.RegisterGAT("Container", GenericAssocType{Name: "Slice", HostParams: []string{"T"}})

	want := []string{"Container", "Iterator"}
	if got := env.RegisteredTraits(); !reflect.DeepEqual(got, want) {
		t.Errorf("RegisteredTraits = %v, want %v", got, want)
	}
}
