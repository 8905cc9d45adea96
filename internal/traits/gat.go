package traits

import (
	"fmt"
	"sort"

	"github.com/lumen-lang/lumen/internal/ast"
)

// AssocTypeDef is a plain (non-generic) associated type slot of a trait.
type AssocTypeDef struct {
	Name          string
	GenericParams []string
	Bounds        []string
	Default       ast.Type
	Span          ast.Span
}

// GenericAssocType is an associated type that is itself generic: host
// params come from the declaring trait, assoc params belong to the slot.
type GenericAssocType struct {
	Name        string
	HostParams  []string
	AssocParams []string
	Bounds      []string
	Default     ast.Type
	Span        ast.Span
}

// GATImpl supplies the concrete associated type for one implementation.
type GATImpl struct {
	ForType      string
	HostTypeArgs []ast.Type
	AssocName    string
	AssocArgs    []ast.Type
	Impl         ast.Type
	Span         ast.Span
}

// GATEnvironment holds all associated-type declarations and implementations
// for one compilation unit.
type GATEnvironment struct {
	assocTypes map[string][]AssocTypeDef
	gats       map[string][]GenericAssocType
	impls      []GATImpl
}

func NewGATEnvironment() *GATEnvironment {
	return &GATEnvironment{
		assocTypes: make(map[string][]AssocTypeDef),
		gats:       make(map[string][]GenericAssocType),
	}
}

// RegisterAssocType adds a plain associated type slot to a trait.
func (e *GATEnvironment) RegisterAssocType(traitName string, def AssocTypeDef) {
	e.assocTypes[traitName] = append(e.assocTypes[traitName], def)
}

// RegisterGAT adds a generic associated type slot to a trait.
func (e *GATEnvironment) RegisterGAT(traitName string, gat GenericAssocType) {
	e.gats[traitName] = append(e.gats[traitName], gat)
}

// RegisterImpl records a concrete associated type for an implementation.
func (e *GATEnvironment) RegisterImpl(impl GATImpl) {
	e.impls = append(e.impls, impl)
}

// AssocTypes returns a trait's plain associated type slots.
func (e *GATEnvironment) AssocTypes(traitName string) []AssocTypeDef {
	return e.assocTypes[traitName]
}

// GATs returns a trait's generic associated type slots.
func (e *GATEnvironment) GATs(traitName string) []GenericAssocType {
	return e.gats[traitName]
}

// FindAssocType looks up a plain slot by trait and name.
func (e *GATEnvironment) FindAssocType(traitName, assocName string) *AssocTypeDef {
	for i := range e.assocTypes[traitName] {
		if e.assocTypes[traitName][i].Name == assocName {
			return &e.assocTypes[traitName][i]
		}
	}
	return nil
}

// FindGAT looks up a generic slot by trait and name.
func (e *GATEnvironment) FindGAT(traitName, assocName string) *GenericAssocType {
	for i := range e.gats[traitName] {
		if e.gats[traitName][i].Name == assocName {
			return &e.gats[traitName][i]
		}
	}
	return nil
}

// FindImpl looks up the registered associated type for an implementing type.
func (e *GATEnvironment) FindImpl(forType, assocName string) *GATImpl {
	for i := range e.impls {
		if e.impls[i].ForType == forType && e.impls[i].AssocName == assocName {
			return &e.impls[i]
		}
	}
	return nil
}

// InferAssocType resolves trait::assocName for the given host arguments:
// the slot must exist, arity must match, and a declared default wins before
// inference gives up.
func (e *GATEnvironment) InferAssocType(traitName, assocName string, hostArgs []ast.Type) (ast.Type, error) {
	gat := e.FindGAT(traitName, assocName)
	if gat == nil {
		return nil, &UndefinedAssocTypeError{Assoc: assocName, Trait: traitName}
	}

	if len(gat.HostParams) != len(hostArgs) {
		return nil, &GenericParamCountMismatchError{
			Expected: len(gat.HostParams),
			Actual:   len(hostArgs),
			Span:     gat.Span,
		}
	}

	if gat.Default != nil {
		return gat.Default, nil
	}

	return nil, &CannotInferAssocTypeError{
		Assoc:   assocName,
		Context: fmt.Sprintf("trait: %s, host args: %d", traitName, len(hostArgs)),
		Span:    gat.Span,
	}
}

// CheckCycles rejects GATs whose own parameters shadow a host parameter,
// the direct self-reference case.
func (e *GATEnvironment) CheckCycles() error {
	for traitName, gats := range e.gats {
		for _, gat := range gats {
			for _, host := range gat.HostParams {
				for _, assoc := range gat.AssocParams {
					if host == assoc {
						return &CyclicAssocTypeError{
							AssocTypes: []string{traitName + "." + gat.Name},
							Span:       gat.Span,
						}
					}
				}
			}
		}
	}
	return nil
}

// Validate checks the registry's internal consistency.
func (e *GATEnvironment) Validate() error {
	return e.CheckCycles()
}

// RegisteredTraits returns the sorted names of traits with any associated
// type slot.
func (e *GATEnvironment) RegisteredTraits() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range e.assocTypes {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range e.gats {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
