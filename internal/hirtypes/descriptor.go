package hirtypes

import "strings"

// Descriptor encodes a method signature as "(<P1><P2>...)<R>" using the
// bit-exact external contract of spec.md §4.1/§6: primitives collapse to a
// single character (I J F D Z C for the NovaLang primitive set, plus V for
// void/unit returns), each array dimension prepends "[", and object types
// are written "L<internal/name>;". Parameters or a return type that are
// unresolved or generic collapse to "Ljava/lang/Object;".
func Descriptor(params []Type, ret Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(paramCode(p))
	}
	b.WriteByte(')')
	b.WriteString(returnCode(ret))
	return b.String()
}

func paramCode(t Type) string {
	switch v := t.(type) {
	case Primitive:
		return primitiveCode(v.Kind)
	case Nullable:
		return paramCode(v.Inner)
	case Class:
		if len(v.TypeArgs) > 0 {
			// Generic type arguments are erased at the descriptor level.
			return classCode(v.InternalName)
		}
		return classCode(v.InternalName)
	default:
		// Unresolved, Generic, Function: collapse to Object per §4.1.
		return classCode(Object.InternalName)
	}
}

func returnCode(t Type) string {
	if p, ok := t.(Primitive); ok {
		if p.Kind == Unit {
			return "V"
		}
		return primitiveCode(p.Kind)
	}
	return paramCode(t)
}

func primitiveCode(k PrimitiveKind) string {
	switch k {
	case Int:
		return "I"
	case Long:
		return "J"
	case Float:
		return "F"
	case Double:
		return "D"
	case Boolean:
		return "Z"
	case Char:
		return "C"
	case Unit:
		return "V"
	case Nothing:
		return classCode(Object.InternalName)
	default:
		return classCode(Object.InternalName)
	}
}

func classCode(internalName string) string {
	if strings.HasPrefix(internalName, "[") {
		return internalName
	}
	return "L" + internalName + ";"
}

// FallbackDescriptor returns the arity-matched all-Object descriptor used
// when a method name cannot be resolved anywhere (§4.1 Failure rule).
func FallbackDescriptor(arity int) string {
	params := make([]Type, arity)
	for i := range params {
		params[i] = Object
	}
	return Descriptor(params, Object)
}
