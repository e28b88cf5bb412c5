package hirtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novalang/novalang/internal/hirtypes"
)

func TestDescriptorPrimitives(t *testing.T) {
	d := hirtypes.Descriptor(
		[]hirtypes.Type{hirtypes.Primitive{Kind: hirtypes.Int}, hirtypes.Primitive{Kind: hirtypes.Int}},
		hirtypes.Primitive{Kind: hirtypes.Int},
	)
	assert.Equal(t, "(II)I", d)
}

func TestDescriptorClassAndVoid(t *testing.T) {
	d := hirtypes.Descriptor(
		[]hirtypes.Type{hirtypes.Class{InternalName: "novalang/String"}},
		hirtypes.Primitive{Kind: hirtypes.Unit},
	)
	assert.Equal(t, "(Lnovalang/String;)V", d)
}

func TestDescriptorUnresolvedCollapsesToObject(t *testing.T) {
	d := hirtypes.Descriptor([]hirtypes.Type{hirtypes.Unresolved{Hint: "T"}}, hirtypes.Object)
	assert.Equal(t, "(Ljava/lang/Object;)Ljava/lang/Object;", d)
}

func TestDescriptorNullableUnwraps(t *testing.T) {
	d := hirtypes.Descriptor(
		[]hirtypes.Type{hirtypes.Nullable{Inner: hirtypes.Primitive{Kind: hirtypes.Int}}},
		hirtypes.Primitive{Kind: hirtypes.Unit},
	)
	assert.Equal(t, "(I)V", d)
}

func TestFallbackDescriptorArity(t *testing.T) {
	assert.Equal(t, "()Ljava/lang/Object;", hirtypes.FallbackDescriptor(0))
	assert.Equal(t, "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;", hirtypes.FallbackDescriptor(2))
}

func TestIsObject(t *testing.T) {
	assert.True(t, hirtypes.IsObject(hirtypes.Object))
	assert.False(t, hirtypes.IsObject(hirtypes.Class{InternalName: "Foo"}))
}
