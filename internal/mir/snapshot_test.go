package mir_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/lower"
	"github.com/novalang/novalang/internal/mir"
)

// TestPrettySnapshotClassWithWhenAndOperatorMethod lowers a small fixture
// module, a class declaring a `plus` operator method alongside a function
// exercising §4.3.3 when-switch lowering, snapshotting the pretty-printed
// module so a future regression in either shows up as a diff. No `+` is
// applied to a Vector, so operator-method dispatch itself is not exercised.
func TestPrettySnapshotClassWithWhenAndOperatorMethod(t *testing.T) {
	vector := &hir.Class{
		Name: "Vector",
		PrimaryCtor: &hir.PrimaryCtor{
			Params: []*hir.Param{
				{Name: "x", Type: hirtypes.Primitive{Kind: hirtypes.Int}},
			},
		},
		Fields: []*hir.Field{
			{Name: "x", Type: hirtypes.Primitive{Kind: hirtypes.Int}, IsParamBacked: true},
		},
		Methods: []*hir.Function{
			{
				Name:       "plus",
				Params:     []*hir.Param{{Name: "other", Type: hirtypes.Class{InternalName: "Vector"}}},
				ReturnType: hirtypes.Class{InternalName: "Vector"},
				Body: &ast.MemberExpr{
					Receiver: &ast.IdentExpr{Name: "this"},
					Name:     "x",
				},
			},
		},
	}

	classify := &hir.Function{
		Name:       "classify",
		Params:     []*hir.Param{{Name: "code", Type: hirtypes.Primitive{Kind: hirtypes.Int}}},
		ReturnType: hirtypes.Primitive{Kind: hirtypes.Int},
		Body: &ast.WhenExpr{
			Subject: &ast.IdentExpr{Name: "code"},
			Cases: []*ast.WhenCase{
				{Values: []ast.Expr{intLiteral(1), intLiteral(2)}, Body: intLiteral(10)},
				{Values: []ast.Expr{intLiteral(3)}, Body: intLiteral(20)},
			},
			ElseBody: intLiteral(0),
		},
	}

	m := &hir.Module{Decls: []hir.Decl{vector, classify}}
	mmod, reports := lower.Lower(m, lower.Options{})
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", reports)
	}

	snaps.MatchSnapshot(t, "vector_and_classify", mir.Pretty(mmod))
}

func intLiteral(v int64) *ast.Literal { return &ast.Literal{Kind: ast.IntLit, Value: v} }
