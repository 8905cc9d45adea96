// Package traits implements the trait obligation solver and the generic
// associated type (GAT) layer on top of the typesystem core.
package traits

import (
	"github.com/lumen-lang/lumen/internal/ast"
)

// TraitRef names a trait together with its generic arguments.
type TraitRef struct {
	Name string
	Args []string
}

// MethodSignature is the declared shape of a trait method, by type name.
// Full signature checking against implementations happens in the typesystem
// layer; the trait registry only needs the declared surface.
type MethodSignature struct {
	Params []string
	Return string
}

// TraitMethod is one required method of a trait.
type TraitMethod struct {
	Name      string
	Signature MethodSignature
}

// TraitDef is a trait declaration: supertraits give inheritance, methods
// give the required surface.
type TraitDef struct {
	Name        string
	TypeParams  []string
	SuperTraits []TraitRef
	Methods     []TraitMethod
	Span        ast.Span
}

// TraitImpl records that ForType implements a trait.
type TraitImpl struct {
	ForType string
	Trait   TraitRef
	Methods map[string]MethodSignature
	Span    ast.Span
}

// Environment is the registry of trait definitions and implementations for
// one compilation unit.
type Environment struct {
	traits map[string]*TraitDef
	impls  map[string][]*TraitImpl
}

func NewEnvironment() *Environment {
	return &Environment{
		traits: make(map[string]*TraitDef),
		impls:  make(map[string][]*TraitImpl),
	}
}

// RegisterTrait records a trait definition, replacing any previous one with
// the same name.
func (e *Environment) RegisterTrait(def *TraitDef) {
	e.traits[def.Name] = def
}

// RegisterImpl records an implementation of a trait for a type.
func (e *Environment) RegisterImpl(impl *TraitImpl) {
	key := implKey(impl.Trait.Name, impl.ForType)
	e.impls[key] = append(e.impls[key], impl)
}

// GetTrait returns the definition for name, or nil.
func (e *Environment) GetTrait(name string) *TraitDef {
	return e.traits[name]
}

// Impls returns the registered implementations of traitName for forType.
func (e *Environment) Impls(traitName, forType string) []*TraitImpl {
	return e.impls[implKey(traitName, forType)]
}

func implKey(traitName, forType string) string {
	return traitName + " for " + forType
}
