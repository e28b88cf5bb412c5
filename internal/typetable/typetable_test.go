package typetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/typetable"
)

func TestDeclareIsIdempotent(t *testing.T) {
	tt := typetable.New()
	a := tt.Declare("app/Point")
	b := tt.Declare("app/Point")
	assert.Same(t, a, b)
}

func TestResolveDescriptorFindsOwnMethod(t *testing.T) {
	tt := typetable.New()
	ci := tt.Declare("app/Point")
	ci.Methods["length"] = "()D"

	got := tt.ResolveDescriptor("app/Point", "length", 0, nil)
	assert.Equal(t, "()D", got)
}

func TestAncestorDescriptorSkipsOwnClass(t *testing.T) {
	tt := typetable.New()
	base := tt.Declare("app/Shape")
	base.Methods["area"] = "()D"

	child := tt.Declare("app/Circle")
	child.SuperClass = "app/Shape"
	child.Methods["area"] = "()I" // overrides with a (wrong) descriptor pre-resolution

	desc, found := tt.AncestorDescriptor("app/Circle", "area")
	require.True(t, found)
	assert.Equal(t, "()D", desc)
}

func TestResolveOverridesRewritesToNearestAncestor(t *testing.T) {
	tt := typetable.New()
	grandparent := tt.Declare("app/Animal")
	grandparent.Methods["speak"] = "()Ljava/lang/String;"

	parent := tt.Declare("app/Mammal")
	parent.SuperClass = "app/Animal"

	child := tt.Declare("app/Dog")
	child.SuperClass = "app/Mammal"
	child.Methods["speak"] = "()I" // wrong pre-override descriptor

	overrides := map[string][]string{"app/Dog": {"speak"}}
	tt.ResolveOverrides(overrides, nil)

	assert.Equal(t, "()Ljava/lang/String;", child.Methods["speak"])
}

func TestOverrideWithNoAncestorReportsDSC002(t *testing.T) {
	tt := typetable.New()
	orphan := tt.Declare("app/Orphan")
	orphan.Methods["greet"] = "()V"

	sink := &errors.Sink{}
	tt.ResolveOverrides(map[string][]string{"app/Orphan": {"greet"}}, sink)

	require.False(t, sink.Empty())
	assert.Equal(t, errors.DSC002, sink.Reports()[0].Code)
}

func TestAncestorDescriptorFallsBackToInterfaceOnlyWhenClassChainMisses(t *testing.T) {
	tt := typetable.New()
	iface := tt.Declare("app/Named")
	iface.IsInterface = true
	iface.Methods["name"] = "()Ljava/lang/String;"

	tt.Declare("app/Base")
	// app/Base declares no "name" method, so the class chain misses.

	child := tt.Declare("app/Widget")
	child.SuperClass = "app/Base"
	child.Interfaces = []string{"app/Named"}

	desc, found := tt.AncestorDescriptor("app/Widget", "name")
	require.True(t, found)
	assert.Equal(t, "()Ljava/lang/String;", desc)
}

func TestResolveDescriptorFallsBackToArityMatchedObjectDescriptor(t *testing.T) {
	tt := typetable.New()
	tt.Declare("app/Mystery")

	sink := &errors.Sink{}
	got := tt.ResolveDescriptor("app/Mystery", "unknownMethod", 2, sink)

	assert.Equal(t, "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;", got)
	require.False(t, sink.Empty())
	assert.Equal(t, errors.DSC001, sink.Reports()[0].Code)
}

func TestDescriptorCacheDistinguishesUnknownFromMiss(t *testing.T) {
	tt := typetable.New()
	tt.Declare("app/Loner")

	_, found := tt.AncestorDescriptor("app/Loner", "nope")
	assert.False(t, found)

	// Second lookup must hit the memoized cached-miss sentinel, not panic
	// or re-walk, and must still report "not found".
	_, found = tt.AncestorDescriptor("app/Loner", "nope")
	assert.False(t, found)
}

func TestRegisterExternalClassesMergesRatherThanReplaces(t *testing.T) {
	tt := typetable.New()
	tt.Declare("app/Known").Fields["x"] = true

	extra := typetable.ClassInfo{
		InternalName: "app/Known",
		SuperClass:   "app/Base",
	}
	extra.Fields = map[string]bool{"y": true}
	extra.Methods = map[string]string{"getY": "()I"}

	tt.RegisterExternalClasses([]*typetable.ClassInfo{&extra})

	ci, ok := tt.Lookup("app/Known")
	require.True(t, ok)
	assert.True(t, ci.Fields["x"])
	assert.True(t, ci.Fields["y"])
	assert.Equal(t, "()I", ci.Methods["getY"])
	assert.Equal(t, "app/Base", ci.SuperClass)
}
