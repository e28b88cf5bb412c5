package mir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/mir"
)

func TestEraseCollapsesNullableAndGeneric(t *testing.T) {
	assert.Equal(t, mir.Type{Tag: mir.TInt}, mir.Erase(hirtypes.Nullable{Inner: hirtypes.Primitive{Kind: hirtypes.Int}}))
	g := hirtypes.Generic{Base: hirtypes.Class{InternalName: "List"}, Args: []hirtypes.Type{hirtypes.Primitive{Kind: hirtypes.Int}}}
	assert.Equal(t, mir.Type{Tag: mir.TObject, ClassName: hirtypes.Object.InternalName}, mir.Erase(g))
}

func TestEraseClassKeepsInternalName(t *testing.T) {
	got := mir.Erase(hirtypes.Class{InternalName: "app/Point"})
	assert.Equal(t, mir.Type{Tag: mir.TObject, ClassName: "app/Point"}, got)
}

func TestArrayOfPrimitive(t *testing.T) {
	got := mir.ArrayOf(mir.Type{Tag: mir.TInt})
	assert.Equal(t, "[I", got.ClassName)
}

func TestArrayOfObject(t *testing.T) {
	got := mir.ArrayOf(mir.Type{Tag: mir.TObject, ClassName: "app/Point"})
	assert.Equal(t, "[app/Point", got.ClassName)
}

func TestFunctionLocalAllocationIsDense(t *testing.T) {
	f := mir.NewFunction("add")
	this := f.AddLocal("this", mir.Type{Tag: mir.TObject, ClassName: "app/Calc"})
	a := f.AddLocal("a", mir.Type{Tag: mir.TInt})
	assert.Equal(t, 0, this.Index)
	assert.Equal(t, 1, a.Index)
	assert.Same(t, this, f.ThisLocal())
}

func TestThisLocalNilWhenNoLocals(t *testing.T) {
	f := mir.NewFunction("add")
	assert.Nil(t, f.ThisLocal())
}
