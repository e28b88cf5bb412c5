package mir

import "github.com/novalang/novalang/internal/hirtypes"

// TypeTag is the restricted erased-type tag set MIR uses (spec.md §3):
// no nullability, no generics, no function types survive into MIR —
// those are fully erased by the time HirToMir emits a MirType.
type TypeTag int

const (
	TVoid TypeTag = iota
	TInt
	TLong
	TFloat
	TDouble
	TBoolean
	TChar
	TObject
)

// Type is an erased MIR-level type. ClassName is set only when Tag ==
// TObject; an array type is encoded as an object type whose ClassName
// starts with "[" (spec.md §3).
type Type struct {
	Tag       TypeTag
	ClassName string
}

// Erase projects a (possibly nullable/generic/function) HIR type down to
// its MIR representation. Nullability, generic arguments, and function
// shape are all erased to their runtime representation, matching the
// descriptor encoder's own collapsing rules (internal/hirtypes.Descriptor).
func Erase(t hirtypes.Type) Type {
	switch v := t.(type) {
	case hirtypes.Primitive:
		return Type{Tag: erasePrimitive(v.Kind)}
	case hirtypes.Nullable:
		return Erase(v.Inner)
	case hirtypes.Class:
		return Type{Tag: TObject, ClassName: v.InternalName}
	default:
		// Generic, Unresolved, Function: erase to Object (§4.1 fallback rule).
		return Type{Tag: TObject, ClassName: hirtypes.Object.InternalName}
	}
}

func erasePrimitive(k hirtypes.PrimitiveKind) TypeTag {
	switch k {
	case hirtypes.Int:
		return TInt
	case hirtypes.Long:
		return TLong
	case hirtypes.Float:
		return TFloat
	case hirtypes.Double:
		return TDouble
	case hirtypes.Boolean:
		return TBoolean
	case hirtypes.Char:
		return TChar
	case hirtypes.Unit:
		return TVoid
	case hirtypes.Nothing:
		return TObject
	default:
		return TObject
	}
}

// ArrayOf returns the MIR array type over elem, one dimension deep.
func ArrayOf(elem Type) Type {
	name := elem.ClassName
	if elem.Tag != TObject {
		name = primitiveArrayCode(elem.Tag)
	}
	return Type{Tag: TObject, ClassName: "[" + name}
}

func primitiveArrayCode(tag TypeTag) string {
	switch tag {
	case TInt:
		return "I"
	case TLong:
		return "J"
	case TFloat:
		return "F"
	case TDouble:
		return "D"
	case TBoolean:
		return "Z"
	case TChar:
		return "C"
	default:
		return "Ljava/lang/Object;"
	}
}
