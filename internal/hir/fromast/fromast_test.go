package fromast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hir/fromast"
	"github.com/novalang/novalang/internal/hirtypes"
)

func TestParamBackedFieldRecorded(t *testing.T) {
	prog := &ast.Program{
		Decls: []ast.Decl{
			&ast.ClassDecl{
				Name: "Point",
				PrimaryCtor: &ast.PrimaryConstructor{
					Params: []*ast.CtorParam{
						{Name: "x", Type: &ast.SimpleTypeRef{Name: "Int"}, IsField: true},
					},
				},
			},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	require.Len(t, m.Decls, 1)
	class := m.Decls[0].(*hir.Class)
	require.Len(t, class.Fields, 1)
	assert.True(t, class.Fields[0].IsParamBacked)
	assert.Equal(t, "x", class.Fields[0].Name)
	assert.Equal(t, hirtypes.Primitive{Kind: hirtypes.Int}, class.Fields[0].Type)
}

func TestInstanceInitializersPreserveSourceOrder(t *testing.T) {
	first := &ast.PropertyDecl{Name: "a", Initializer: &ast.Literal{Kind: ast.IntLit}}
	block := &ast.InitBlock{Body: &ast.BlockStmt{}}
	second := &ast.PropertyDecl{Name: "b", Initializer: &ast.Literal{Kind: ast.IntLit}}

	prog := &ast.Program{
		Decls: []ast.Decl{
			&ast.ClassDecl{Name: "Widget", Members: []ast.Decl{first, block, second}},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	class := m.Decls[0].(*hir.Class)
	require.Len(t, class.InstanceInitializers, 3)

	fi0, ok := class.InstanceInitializers[0].(hir.FieldInit)
	require.True(t, ok)
	assert.Equal(t, "a", fi0.FieldName)

	_, ok = class.InstanceInitializers[1].(hir.InitBlockRun)
	assert.True(t, ok)

	fi2, ok := class.InstanceInitializers[2].(hir.FieldInit)
	require.True(t, ok)
	assert.Equal(t, "b", fi2.FieldName)
}

func TestExtensionFunctionGetsImplicitThisParam(t *testing.T) {
	prog := &ast.Program{
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name:         "double",
				ReceiverType: &ast.SimpleTypeRef{Name: "Int"},
				Params:       nil,
				ReturnType:   &ast.SimpleTypeRef{Name: "Int"},
			},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	fn := m.Decls[0].(*hir.Function)
	require.True(t, fn.IsExtension)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "$this", fn.Params[0].Name)
	assert.Equal(t, hirtypes.Primitive{Kind: hirtypes.Int}, fn.Params[0].Type)
}

func TestEnumGetsHiddenFieldsAndOrdinals(t *testing.T) {
	prog := &ast.Program{
		Decls: []ast.Decl{
			&ast.EnumDecl{
				Name: "Color",
				Entries: []*ast.EnumEntry{
					{Name: "RED"},
					{Name: "GREEN"},
				},
			},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	class := m.Decls[0].(*hir.Class)
	require.True(t, class.IsEnum)
	require.Len(t, class.Fields, 2)
	assert.Equal(t, "$name", class.Fields[0].Name)
	assert.Equal(t, "$ordinal", class.Fields[1].Name)

	require.Len(t, class.EnumEntries, 2)
	assert.Equal(t, 0, class.EnumEntries[0].Ordinal)
	assert.Equal(t, 1, class.EnumEntries[1].Ordinal)
}

func TestPropertyAccessorsRecordedOnField(t *testing.T) {
	getter := &ast.Accessor{Body: &ast.Literal{Kind: ast.IntLit}}
	prog := &ast.Program{
		Decls: []ast.Decl{
			&ast.ClassDecl{
				Name: "Box",
				Members: []ast.Decl{
					&ast.PropertyDecl{Name: "size", Getter: getter},
				},
			},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	class := m.Decls[0].(*hir.Class)
	require.Len(t, class.Fields, 1)
	assert.Same(t, getter, class.Fields[0].Getter)
}

func TestImportsClassifiedFourWays(t *testing.T) {
	prog := &ast.Program{
		Imports: []*ast.ImportDecl{
			{Path: "java.util.List", Foreign: true},
			{Path: "app.Util", Static: true, Symbols: []string{"helper"}},
			{Path: "app.widgets", Wildcard: true},
			{Path: "app.Point"},
		},
	}

	m := fromast.AstToHir(prog, &errors.Sink{})
	assert.Equal(t, "java.util.List", m.NativeForeignImports["List"])
	assert.Equal(t, "app.Util.helper", m.StaticImports["helper"])
	assert.Contains(t, m.WildcardImports, "app.widgets")
	require.Len(t, m.SourceImports, 1)
	assert.Equal(t, "app.Point", m.SourceImports[0].QualifiedName)
}
