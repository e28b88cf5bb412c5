package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/source"
)

func TestClassDeclString(t *testing.T) {
	c := &ast.ClassDecl{Name: "Point", Pos: source.Pos{File: "a.nova", Line: 1}}
	assert.Equal(t, "class Point", c.String())
	assert.Equal(t, 1, c.Position().Line)
}

func TestFunctionDeclParamsInString(t *testing.T) {
	f := &ast.FunctionDecl{
		Name: "add",
		Params: []*ast.Param{
			{Name: "a"},
			{Name: "b"},
		},
	}
	assert.Equal(t, "fun add(a, b)", f.String())
}

func TestBinaryExprString(t *testing.T) {
	b := &ast.BinaryExpr{
		Left:  &ast.IdentExpr{Name: "a"},
		Op:    "+",
		Right: &ast.IdentExpr{Name: "b"},
	}
	assert.Equal(t, "(a + b)", b.String())
}

func TestNullableTypeRef(t *testing.T) {
	nt := &ast.NullableTypeRef{Inner: &ast.SimpleTypeRef{Name: "Int"}}
	assert.Equal(t, "Int?", nt.String())
}

func TestModifierHas(t *testing.T) {
	mods := []ast.Modifier{ast.ModPublic, ast.ModOverride}
	assert.True(t, ast.Has(mods, ast.ModOverride))
	assert.False(t, ast.Has(mods, ast.ModAbstract))
}

func TestUnknownPosition(t *testing.T) {
	assert.True(t, source.Unknown.IsUnknown())
	p := source.Pos{File: "x", Line: 1, Column: 1}
	assert.False(t, p.IsUnknown())
}
