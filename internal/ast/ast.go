// Package ast defines the NovaLang abstract syntax tree: the immutable,
// tagged-variant tree produced by the lexer/parser (out of scope for this
// module) and consumed by internal/hir's AstToHir pass.
package ast

import "github.com/novalang/novalang/internal/source"

// Node is the base capability every AST entity implements.
type Node interface {
	String() string
	Position() source.Pos
}

// Decl is a top-level or class-member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeRef is a reference to a type in source position (as opposed to a
// resolved HIR type).
type TypeRef interface {
	Node
	typeRefNode()
}

// Modifier is a declaration modifier keyword.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModPrivate   Modifier = "private"
	ModProtected Modifier = "protected"
	ModInternal  Modifier = "internal"
	ModAbstract  Modifier = "abstract"
	ModOpen      Modifier = "open"
	ModOverride  Modifier = "override"
	ModFinal     Modifier = "final"
	ModStatic    Modifier = "static"
	ModSuspend   Modifier = "suspend"
	ModOperator  Modifier = "operator"
	ModInfix     Modifier = "infix"
	ModData      Modifier = "data"
	ModCompanion Modifier = "companion"
	ModLateinit  Modifier = "lateinit"
	ModConst     Modifier = "const"
	ModInline    Modifier = "inline"
	ModVararg    Modifier = "vararg"
	ModExtension Modifier = "extension"
)

// Has reports whether mods contains m.
func Has(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// Variance is the declared-site variance of a generic type argument.
type Variance int

const (
	Invariant Variance = iota
	Covariant          // out T
	Contravariant      // in T
)

// Annotation is an annotation attached to a declaration, e.g. @data.
type Annotation struct {
	Name string
	Args []*Argument
	Pos  source.Pos
}

// TypeParam is a generic type parameter with an optional upper bound.
type TypeParam struct {
	Name     string
	Bound    TypeRef
	Variance Variance
	Reified  bool
	Pos      source.Pos
}

// Program is the root of one parsed file.
type Program struct {
	Package *PackageDecl
	Imports []*ImportDecl
	Decls   []Decl
	Pos     source.Pos
}

func (p *Program) String() string   { return "<program>" }
func (p *Program) Position() source.Pos { return p.Pos }

// PackageDecl names the file's package.
type PackageDecl struct {
	Name string
	Pos  source.Pos
}

func (p *PackageDecl) String() string   { return "package " + p.Name }
func (p *PackageDecl) Position() source.Pos { return p.Pos }

// ImportDecl is one import line. A native-foreign import targets a host
// platform class; a wildcard import has Wildcard set; a static import
// selects members of Symbols from a companion/object.
type ImportDecl struct {
	Path     string
	Alias    string
	Symbols  []string
	Wildcard bool
	Static   bool
	Foreign  bool
	Pos      source.Pos
}

func (i *ImportDecl) String() string   { return "import " + i.Path }
func (i *ImportDecl) Position() source.Pos { return i.Pos }
