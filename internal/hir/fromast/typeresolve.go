package fromast

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/hirtypes"
)

// primitiveNames maps NovaLang's built-in primitive type names to their
// hirtypes.PrimitiveKind. Anything else is treated as a class reference.
var primitiveNames = map[string]hirtypes.PrimitiveKind{
	"Int":     hirtypes.Int,
	"Long":    hirtypes.Long,
	"Float":   hirtypes.Float,
	"Double":  hirtypes.Double,
	"Boolean": hirtypes.Boolean,
	"Char":    hirtypes.Char,
	"Unit":    hirtypes.Unit,
	"Nothing": hirtypes.Nothing,
}

// resolveType converts a source-position ast.TypeRef into a hirtypes.Type.
// There is no inference here (Non-goal): an unresolvable or absent
// reference becomes hirtypes.Unresolved, settled downstream to Object.
func resolveType(ref ast.TypeRef) hirtypes.Type {
	if ref == nil {
		return hirtypes.Unresolved{}
	}
	switch t := ref.(type) {
	case *ast.SimpleTypeRef:
		if kind, ok := primitiveNames[t.Name]; ok {
			return hirtypes.Primitive{Kind: kind}
		}
		return hirtypes.Class{InternalName: t.Name}
	case *ast.NullableTypeRef:
		return hirtypes.Nullable{Inner: resolveType(t.Inner)}
	case *ast.GenericTypeRef:
		args := make([]hirtypes.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = resolveType(a.Type)
		}
		return hirtypes.Generic{Base: resolveType(t.Base), Args: args}
	case *ast.FunctionTypeRef:
		params := make([]hirtypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = resolveType(p)
		}
		var recv hirtypes.Type
		if t.Receiver != nil {
			recv = resolveType(t.Receiver)
		}
		return hirtypes.Function{Receiver: recv, Params: params, Return: resolveType(t.Return), Suspend: t.Suspend}
	case *ast.TypeParamRef:
		return hirtypes.Unresolved{Hint: t.Name}
	default:
		return hirtypes.Unresolved{}
	}
}
