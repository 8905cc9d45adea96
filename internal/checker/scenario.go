package checker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumen-lang/lumen/internal/typesystem"
)

// Scenario is a YAML fixture for the constraint solver: declared variables,
// the constraints between them, and the expected resolutions. Scenarios are
// the developer-facing probe for the inference core.
type Scenario struct {
	Name        string           `yaml:"name"`
	Vars        []string         `yaml:"vars,omitempty"`
	Constraints []ConstraintSpec `yaml:"constraints"`

	// Expect maps variable names to the type name they must resolve to.
	// Variables listed in Vars but absent here are only checked for solve
	// success.
	Expect map[string]string `yaml:"expect,omitempty"`

	// WantErrors is the number of constraint errors the scenario must
	// produce; fixtures for failure cases set it above zero.
	WantErrors int `yaml:"want_errors,omitempty"`
}

// ConstraintSpec is one deferred equality.
type ConstraintSpec struct {
	Left  TypeSpec `yaml:"left"`
	Right TypeSpec `yaml:"right"`
}

// TypeSpec is the YAML surface syntax for a type term. Exactly one field
// should be set.
type TypeSpec struct {
	Var          string      `yaml:"var,omitempty"`
	Name         string      `yaml:"name,omitempty"`
	Int          *int        `yaml:"int,omitempty"`
	Float        *int        `yaml:"float,omitempty"`
	List         *TypeSpec   `yaml:"list,omitempty"`
	Set          *TypeSpec   `yaml:"set,omitempty"`
	Tuple        []TypeSpec  `yaml:"tuple,omitempty"`
	Dict         *DictSpec   `yaml:"dict,omitempty"`
	Fn           *FnSpec     `yaml:"fn,omitempty"`
	Union        []TypeSpec  `yaml:"union,omitempty"`
	Intersection []TypeSpec  `yaml:"intersection,omitempty"`
	Struct       *StructSpec `yaml:"struct,omitempty"`
	Enum         *EnumSpec   `yaml:"enum,omitempty"`
}

type DictSpec struct {
	Key   TypeSpec `yaml:"key"`
	Value TypeSpec `yaml:"value"`
}

type FnSpec struct {
	Params []TypeSpec `yaml:"params,omitempty"`
	Return TypeSpec   `yaml:"return"`
	Async  bool       `yaml:"async,omitempty"`
}

type StructSpec struct {
	Name   string      `yaml:"name,omitempty"`
	Fields []FieldSpec `yaml:"fields"`
}

type FieldSpec struct {
	Name    string   `yaml:"name"`
	Type    TypeSpec `yaml:"type"`
	Mutable bool     `yaml:"mutable,omitempty"`
}

type EnumSpec struct {
	Name     string   `yaml:"name,omitempty"`
	Variants []string `yaml:"variants"`
}

// LoadScenario reads one scenario fixture from disk.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(sc.Constraints) == 0 {
		return nil, fmt.Errorf("scenario %q declares no constraints", sc.Name)
	}
	return &sc, nil
}

// toType builds the type term a spec denotes, resolving var references
// through the scenario's variable table.
func (sp TypeSpec) toType(vars map[string]typesystem.MonoType) (typesystem.MonoType, error) {
	switch {
	case sp.Var != "":
		v, ok := vars[sp.Var]
		if !ok {
			return nil, fmt.Errorf("undeclared variable %q", sp.Var)
		}
		return v, nil
	case sp.Name != "":
		return typesystem.TRef{Name: sp.Name}, nil
	case sp.Int != nil:
		return typesystem.TInt{Width: *sp.Int}, nil
	case sp.Float != nil:
		return typesystem.TFloat{Width: *sp.Float}, nil
	case sp.List != nil:
		elem, err := sp.List.toType(vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TList{Elem: elem}, nil
	case sp.Set != nil:
		elem, err := sp.Set.toType(vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TSet{Elem: elem}, nil
	case sp.Tuple != nil:
		elems, err := specsToTypes(sp.Tuple, vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TTuple{Elems: elems}, nil
	case sp.Dict != nil:
		key, err := sp.Dict.Key.toType(vars)
		if err != nil {
			return nil, err
		}
		value, err := sp.Dict.Value.toType(vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TDict{Key: key, Value: value}, nil
	case sp.Fn != nil:
		params, err := specsToTypes(sp.Fn.Params, vars)
		if err != nil {
			return nil, err
		}
		ret, err := sp.Fn.Return.toType(vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TFn{Params: params, Return: ret, IsAsync: sp.Fn.Async}, nil
	case sp.Union != nil:
		members, err := specsToTypes(sp.Union, vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TUnion{Members: members}, nil
	case sp.Intersection != nil:
		members, err := specsToTypes(sp.Intersection, vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TIntersection{Members: members}, nil
	case sp.Struct != nil:
		fields := make([]typesystem.Field, len(sp.Struct.Fields))
		for i, f := range sp.Struct.Fields {
			ft, err := f.Type.toType(vars)
			if err != nil {
				return nil, err
			}
			fields[i] = typesystem.Field{Name: f.Name, Type: ft, Mutable: f.Mutable}
		}
		return typesystem.TStruct{Name: sp.Struct.Name, Fields: fields}, nil
	case sp.Enum != nil:
		return typesystem.TEnum{Name: sp.Enum.Name, Variants: sp.Enum.Variants}, nil
	}
	return nil, fmt.Errorf("empty type spec")
}

func specsToTypes(specs []TypeSpec, vars map[string]typesystem.MonoType) ([]typesystem.MonoType, error) {
	out := make([]typesystem.MonoType, len(specs))
	for i, sp := range specs {
		t, err := sp.toType(vars)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
