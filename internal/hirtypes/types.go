// Package hirtypes defines the HIR-level type representation: primitives,
// class references, nullability, function types, generics, and the
// deferred/unresolved placeholder used while names are still being
// settled. There is no inference engine here (Non-goal per spec.md §1) —
// types are propagated from declared annotations only.
package hirtypes

import (
	"fmt"
	"strings"
)

// Type is any HIR-level type.
type Type interface {
	String() string
	typeNode()
}

// PrimitiveKind enumerates the eight primitive kinds.
type PrimitiveKind int

const (
	Int PrimitiveKind = iota
	Long
	Float
	Double
	Boolean
	Char
	Unit
	Nothing
)

func (k PrimitiveKind) String() string {
	switch k {
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case Unit:
		return "unit"
	case Nothing:
		return "nothing"
	default:
		return "?"
	}
}

// Primitive is one of the eight primitive types.
type Primitive struct{ Kind PrimitiveKind }

func (p Primitive) String() string { return p.Kind.String() }
func (Primitive) typeNode()        {}

// Class is a reference to a declared or external class/interface/enum by
// its internal name, with optional type arguments.
type Class struct {
	InternalName string
	TypeArgs     []Type
}

func (c Class) String() string {
	if len(c.TypeArgs) == 0 {
		return c.InternalName
	}
	parts := make([]string, len(c.TypeArgs))
	for i, a := range c.TypeArgs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", c.InternalName, strings.Join(parts, ", "))
}
func (Class) typeNode() {}

// Nullable wraps Inner as a nullable type.
type Nullable struct{ Inner Type }

func (n Nullable) String() string { return n.Inner.String() + "?" }
func (Nullable) typeNode()        {}

// Function is a function type: an optional extension receiver, ordered
// parameter types, a return type, and the suspend flag.
type Function struct {
	Receiver Type // nil unless an extension-function type
	Params   []Type
	Return   Type
	Suspend  bool
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if f.Receiver != nil {
		prefix = f.Receiver.String() + "."
	}
	return fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(parts, ", "), f.Return)
}
func (Function) typeNode() {}

// Generic is a type-parameter-applied reference distinct from Class: Base
// names an unresolved generic definition (used before the base's internal
// name is known), Args are its supplied arguments.
type Generic struct {
	Base Type
	Args []Type
}

func (g Generic) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Base, strings.Join(parts, ", "))
}
func (Generic) typeNode() {}

// Unresolved is a deferred type, kept around with a diagnostic hint until
// a later pass can settle it (or it falls back to object).
type Unresolved struct{ Hint string }

func (u Unresolved) String() string {
	if u.Hint == "" {
		return "<unresolved>"
	}
	return "<unresolved:" + u.Hint + ">"
}
func (Unresolved) typeNode() {}

// Object is the fallback reference type used whenever a type cannot be
// determined (§7: "Unknown type ... defensive fallback").
var Object = Class{InternalName: "java/lang/Object"}

// IsObject reports whether t is exactly the fallback Object class.
func IsObject(t Type) bool {
	c, ok := t.(Class)
	return ok && c.InternalName == Object.InternalName && len(c.TypeArgs) == 0
}
