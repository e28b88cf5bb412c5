package main

import (
	"encoding/json"
	"fmt"

	"github.com/novalang/novalang/internal/ast"
)

// fixture is the JSON shape `novalang lower`/`dump-mir`/`repl` read a
// declaration from. No lexer or parser ships in this module (spec.md
// Non-goal), so this is a hand-built stand-in for source text: a deliberately
// small subset of internal/ast covering top-level functions and classes with
// primary-constructor fields, literal/ident/binary/if bodies. It is not a
// general AST serialization format.
type fixture struct {
	Package   string           `json:"package"`
	Functions []fixtureFunc    `json:"functions"`
	Classes   []fixtureClass   `json:"classes"`
}

type fixtureFunc struct {
	Name       string           `json:"name"`
	Override   bool             `json:"override"`
	Params     []fixtureParam   `json:"params"`
	ReturnType string           `json:"returnType"`
	Body       *fixtureExpr     `json:"body"`
}

type fixtureParam struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default *fixtureExpr `json:"default"`
}

type fixtureClass struct {
	Name           string         `json:"name"`
	SuperClass     string         `json:"superClass"`
	IsEnum         bool           `json:"isEnum"`
	PrimaryFields  []fixtureParam `json:"primaryFields"`
	Methods        []fixtureFunc  `json:"methods"`
	EnumEntries    []string       `json:"enumEntries"`
}

// fixtureExpr is a tagged union over the handful of expression forms the
// fixture format supports: "int"/"string"/"bool" literals, "ident", "binary"
// (op, left, right), and "if" (cond, then, else).
type fixtureExpr struct {
	Kind  string       `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
	Name  string       `json:"name,omitempty"`
	Op    string       `json:"op,omitempty"`
	Left  *fixtureExpr `json:"left,omitempty"`
	Right *fixtureExpr `json:"right,omitempty"`
	Cond  *fixtureExpr `json:"cond,omitempty"`
	Then  *fixtureExpr `json:"then,omitempty"`
	Else  *fixtureExpr `json:"else,omitempty"`
}

func decodeFixture(data []byte) (*ast.Program, error) {
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	prog := &ast.Program{Package: &ast.PackageDecl{Name: f.Package}}
	for _, fn := range f.Functions {
		prog.Decls = append(prog.Decls, toFunctionDecl(fn))
	}
	for _, c := range f.Classes {
		if c.IsEnum {
			prog.Decls = append(prog.Decls, toEnumDecl(c))
			continue
		}
		prog.Decls = append(prog.Decls, toClassDecl(c))
	}
	return prog, nil
}

// toEnumDecl handles the fixtureClass.IsEnum case: each name in EnumEntries
// becomes a no-arg, no-body ast.EnumEntry, and any fixture methods are
// shared members of the enum class.
func toEnumDecl(c fixtureClass) *ast.EnumDecl {
	decl := &ast.EnumDecl{Name: c.Name}
	for _, name := range c.EnumEntries {
		decl.Entries = append(decl.Entries, &ast.EnumEntry{Name: name})
	}
	for _, m := range c.Methods {
		decl.Members = append(decl.Members, toFunctionDecl(m))
	}
	return decl
}

func toFunctionDecl(fn fixtureFunc) *ast.FunctionDecl {
	decl := &ast.FunctionDecl{
		Name:       fn.Name,
		ReturnType: toTypeRef(fn.ReturnType),
	}
	if fn.Override {
		decl.Modifiers = append(decl.Modifiers, ast.ModOverride)
	}
	for _, p := range fn.Params {
		decl.Params = append(decl.Params, &ast.Param{
			Name:    p.Name,
			Type:    toTypeRef(p.Type),
			Default: toExpr(p.Default),
		})
	}
	if fn.Body != nil {
		decl.Body = toExpr(fn.Body)
	}
	return decl
}

func toClassDecl(c fixtureClass) *ast.ClassDecl {
	decl := &ast.ClassDecl{Name: c.Name, IsData: false}
	if c.SuperClass != "" {
		decl.SuperClass = &ast.SuperCall{ClassName: c.SuperClass}
	}
	if len(c.PrimaryFields) > 0 {
		ctor := &ast.PrimaryConstructor{}
		for _, p := range c.PrimaryFields {
			ctor.Params = append(ctor.Params, &ast.CtorParam{
				Name: p.Name, Type: toTypeRef(p.Type), IsField: true, IsMutable: false,
			})
		}
		decl.PrimaryCtor = ctor
	}
	for _, m := range c.Methods {
		decl.Members = append(decl.Members, toFunctionDecl(m))
	}
	return decl
}

func toTypeRef(name string) ast.TypeRef {
	if name == "" {
		name = "Unit"
	}
	return &ast.SimpleTypeRef{Name: name}
}

func toExpr(e *fixtureExpr) ast.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case "int":
		var v int64
		_ = json.Unmarshal(e.Value, &v)
		return &ast.Literal{Kind: ast.IntLit, Value: v}
	case "string":
		var v string
		_ = json.Unmarshal(e.Value, &v)
		return &ast.Literal{Kind: ast.StringLit, Value: v}
	case "bool":
		var v bool
		_ = json.Unmarshal(e.Value, &v)
		return &ast.Literal{Kind: ast.BoolLit, Value: v}
	case "ident":
		return &ast.IdentExpr{Name: e.Name}
	case "binary":
		return &ast.BinaryExpr{Left: toExpr(e.Left), Op: e.Op, Right: toExpr(e.Right)}
	case "if":
		var elseExpr ast.Expr
		if e.Else != nil {
			elseExpr = toExpr(e.Else)
		}
		return &ast.IfExpr{Cond: toExpr(e.Cond), Then: toExpr(e.Then), Else: elseExpr}
	default:
		return &ast.Literal{Kind: ast.NullLit}
	}
}
