package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/lower"
	"github.com/novalang/novalang/internal/mir"
)

func intLit(v int64) *ast.Literal { return &ast.Literal{Kind: ast.IntLit, Value: v} }

func findFunc(t *testing.T, functions []*mir.Function, name string) *mir.Function {
	t.Helper()
	for _, f := range functions {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("function %q not found", name)
	return nil
}

func TestLowerFunctionAutoReturnsFinalExprValue(t *testing.T) {
	fn := &hir.Function{
		Name:       "double",
		Params:     []*hir.Param{{Name: "x", Type: hirtypes.Primitive{Kind: hirtypes.Int}}},
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Int},
		Body: &ast.BinaryExpr{
			Left:  &ast.IdentExpr{Name: "x"},
			Op:    "+",
			Right: &ast.IdentExpr{Name: "x"},
		},
	}
	m := &hir.Module{Decls: []hir.Decl{fn}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	got := findFunc(t, mmod.Functions, "double")
	assert.Equal(t, "(I)I", got.Descriptor)
	last := got.Blocks[len(got.Blocks)-1]
	require.NotNil(t, last.Term)
	assert.Equal(t, mir.TermReturn, last.Term.Kind)
}

func TestLowerFunctionDefaultParamPrologueBranches(t *testing.T) {
	fn := &hir.Function{
		Name: "greet",
		Params: []*hir.Param{
			{Name: "name", Type: hirtypes.Class{InternalName: "java/lang/String"}, Default: &ast.Literal{Kind: ast.StringLit, Value: "world"}},
		},
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Unit},
		Body:       &ast.BlockStmt{},
	}
	m := &hir.Module{Decls: []hir.Decl{fn}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	got := findFunc(t, mmod.Functions, "greet")
	// entry block must branch to test default-ness before reaching BodyStartBlockID.
	entry := got.Blocks[0]
	require.NotNil(t, entry.Term)
	assert.Equal(t, mir.TermBranch, entry.Term.Kind)
	assert.Greater(t, got.BodyStartBlockID, 0)
}

func TestLowerIfStmtProducesOneBranch(t *testing.T) {
	fn := &hir.Function{
		Name:       "classify",
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Unit},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.IfStmt{
				Cond: &ast.Literal{Kind: ast.BoolLit, Value: true},
				Then: &ast.ExprStmt{Expr: intLit(1)},
				Else: &ast.ExprStmt{Expr: intLit(2)},
			},
		}},
	}
	m := &hir.Module{Decls: []hir.Decl{fn}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	got := findFunc(t, mmod.Functions, "classify")
	var branches int
	for _, b := range got.Blocks {
		if b.Term != nil && b.Term.Kind == mir.TermBranch {
			branches++
		}
	}
	assert.Equal(t, 1, branches)
}

func TestLowerWhileLoopBreakTargetsExit(t *testing.T) {
	fn := &hir.Function{
		Name:       "spin",
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Unit},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.WhileStmt{
				Cond: &ast.Literal{Kind: ast.BoolLit, Value: true},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
			},
		}},
	}
	m := &hir.Module{Decls: []hir.Decl{fn}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	got := findFunc(t, mmod.Functions, "spin")
	var gotos int
	for _, b := range got.Blocks {
		if b.Term != nil && b.Term.Kind == mir.TermGoto {
			gotos++
		}
	}
	assert.GreaterOrEqual(t, gotos, 2) // entry-to-header goto + break goto
}

func TestLowerTryFinallyInlinesAlongReturnPath(t *testing.T) {
	fn := &hir.Function{
		Name:       "withCleanup",
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Int},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.TryStmt{
				Body:    &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: intLit(1)}}},
				Finally: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: intLit(2)}}},
			},
		}},
	}
	m := &hir.Module{Decls: []hir.Decl{fn}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	got := findFunc(t, mmod.Functions, "withCleanup")
	// The finally body's literal (2) must appear before the try's return is
	// reached, proving it was inlined rather than skipped.
	var sawFinallyConst, sawReturn bool
	for _, b := range got.Blocks {
		for _, inst := range b.Instructions {
			if inst.Op == mir.ConstInt && inst.Imm == int64(2) {
				sawFinallyConst = true
			}
		}
		if b.Term != nil && b.Term.Kind == mir.TermReturn {
			sawReturn = true
		}
	}
	assert.True(t, sawFinallyConst, "finally body should be inlined")
	assert.True(t, sawReturn)
	assert.NotEmpty(t, got.TryCatchEntries, "catch-all handler registered for exceptional unwind")
}

func TestLowerClassPrimaryCtorStoresParamBackedFields(t *testing.T) {
	class := &hir.Class{
		Name: "app/Point",
		PrimaryCtor: &hir.PrimaryCtor{
			Params: []*hir.Param{
				{Name: "x", Type: hirtypes.Primitive{Kind: hirtypes.Int}, IsField: true},
				{Name: "y", Type: hirtypes.Primitive{Kind: hirtypes.Int}, IsField: true},
			},
		},
		Fields: []*hir.Field{
			{Name: "x", Type: hirtypes.Primitive{Kind: hirtypes.Int}, IsParamBacked: true},
			{Name: "y", Type: hirtypes.Primitive{Kind: hirtypes.Int}, IsParamBacked: true},
		},
	}
	m := &hir.Module{Decls: []hir.Decl{class}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)
	require.Len(t, mmod.Classes, 1)

	ctor := findFunc(t, mmod.Classes[0].Methods, "<init>")
	var stores int
	for _, b := range ctor.Blocks {
		for _, inst := range b.Instructions {
			if inst.Op == mir.SetField && (inst.Imm == "x" || inst.Imm == "y") {
				stores++
			}
		}
	}
	assert.Equal(t, 2, stores)
}

func TestLowerSecondaryCtorKeepsDelegationBlockAtHead(t *testing.T) {
	class := &hir.Class{
		Name: "app/Box",
		SecondaryCtors: []*hir.SecondaryCtor{
			{
				Params: []*hir.Param{{Name: "v", Type: hirtypes.Primitive{Kind: hirtypes.Int}}},
				Delegation: &hir.Delegation{
					ToSuper: false,
					Args:    []ast.Expr{&ast.IdentExpr{Name: "v"}},
				},
				Body: &ast.BlockStmt{},
			},
		},
	}
	m := &hir.Module{Decls: []hir.Decl{class}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	ctor := findFunc(t, mmod.Classes[0].Methods, "<init>")
	require.NotEmpty(t, ctor.DelegationArgLocals)
	// The delegation block sits at Blocks[0] and its goto must target the
	// remapped BodyStartBlockID, not a stale pre-reorder index.
	first := ctor.Blocks[0]
	require.NotNil(t, first.Term)
	assert.Equal(t, mir.TermGoto, first.Term.Kind)
	assert.Equal(t, ctor.BodyStartBlockID, first.Term.Target)
}

func TestLowerOverrideMethodDescriptorMatchesAncestor(t *testing.T) {
	base := &hir.Class{
		Name: "app/Animal",
		Methods: []*hir.Function{
			{Name: "speak", ReturnType: hirtypes.Class{InternalName: "java/lang/String"}, Body: &ast.Literal{Kind: ast.StringLit, Value: "..."}},
		},
	}
	dog := &hir.Class{
		Name:           "app/Dog",
		SuperClassName: "app/Animal",
		Methods: []*hir.Function{
			{
				Name:       "speak",
				Modifiers:  []ast.Modifier{ast.ModOverride},
				ReturnType: hirtypes.Class{InternalName: "java/lang/String"},
				Body:       &ast.Literal{Kind: ast.StringLit, Value: "Woof"},
			},
		},
	}
	m := &hir.Module{Decls: []hir.Decl{base, dog}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)

	var dogClass *mir.Class
	for _, c := range mmod.Classes {
		if c.InternalName == "app/Dog" {
			dogClass = c
		}
	}
	require.NotNil(t, dogClass)
	speak := findFunc(t, dogClass.Methods, "speak")
	assert.Equal(t, "()Ljava/lang/String;", speak.Descriptor)
}

func TestLowerEnumGeneratesAccessorsAndClinit(t *testing.T) {
	class := &hir.Class{
		Name:   "app/Color",
		IsEnum: true,
		EnumEntries: []*hir.EnumEntry{
			{Name: "RED", Ordinal: 0},
			{Name: "GREEN", Ordinal: 1},
		},
	}
	m := &hir.Module{Decls: []hir.Decl{class}}

	mmod, reports := lower.Lower(m, lower.Options{})
	require.Empty(t, reports)
	require.Len(t, mmod.Classes, 1)

	_ = findFunc(t, mmod.Classes[0].Methods, "name")
	_ = findFunc(t, mmod.Classes[0].Methods, "ordinal")
	clinit := findFunc(t, mmod.Classes[0].Methods, "<clinit>")

	var news int
	for _, b := range clinit.Blocks {
		for _, inst := range b.Instructions {
			if inst.Op == mir.NewObject {
				news++
			}
		}
	}
	assert.Equal(t, 2, news)
}
