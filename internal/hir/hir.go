// Package hir defines the HIR (high-level IR) produced from internal/ast by
// internal/hir/fromast: a package-and-imports-resolved, modifier/annotation-
// settled, instance-initializer-ordered shape of the program ready for
// internal/lower to turn into MIR, per spec.md §4.2.
package hir

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/source"
)

// Module is the root HIR artifact for one compiled unit.
type Module struct {
	PackageName string

	// Resolved imports, split four ways per §4.2.
	NativeForeignImports map[string]string // simple name -> fully qualified name
	StaticImports        map[string]string // simple name -> fully qualified member
	WildcardImports      []string
	SourceImports        []SourceImport

	Decls []Decl
}

// SourceImport is one source-level (in-language) import.
type SourceImport struct {
	QualifiedName string
	Alias         string
	Wildcard      bool
	Pos           source.Pos
}

// Decl is any top-level or nested HIR declaration.
type Decl interface {
	Position() source.Pos
	hirDeclNode()
}

// Class is a lowered class/interface/object/enum declaration, with fields
// and methods resolved to their HIR-level types and instance initializers
// merged into one ordered list per §4.2.
type Class struct {
	Name        string
	Modifiers   []ast.Modifier
	Annotations []*ast.Annotation
	TypeParams  []*ast.TypeParam

	IsInterface bool
	IsObject    bool
	IsEnum      bool
	IsData      bool

	SuperClassName string // "" if none
	SuperCtorArgs  []ast.Expr
	Interfaces     []string

	PrimaryCtor          *PrimaryCtor
	SecondaryCtors       []*SecondaryCtor
	Fields               []*Field
	Methods              []*Function
	InstanceInitializers []InstanceInitializer
	EnumEntries          []*EnumEntry
	NestedTypes          []Decl

	// Enclosing is non-nil for a class nested inside another class.
	Enclosing *Class

	Pos source.Pos
}

func (c *Class) Position() source.Pos { return c.Pos }
func (c *Class) hirDeclNode()         {}

// PrimaryCtor is the resolved primary-constructor parameter list. Params
// whose IsField is set name a parameter-backed field (§4.2 rule 1): the
// constructor must store the parameter before any user code runs.
type PrimaryCtor struct {
	Params []*Param
	Pos    source.Pos
}

// SecondaryCtor is a resolved `constructor(...)` with its delegation call.
type SecondaryCtor struct {
	Params      []*Param
	Delegation  *Delegation
	Body        *ast.BlockStmt
	Pos         source.Pos
}

// Delegation is the resolved `this(...)` / `super(...)` forwarding call at
// the head of a secondary constructor.
type Delegation struct {
	ToSuper bool
	Args    []ast.Expr
	Pos     source.Pos
}

// Field is a resolved field declaration, whether it originated from a
// primary-constructor parameter, a class-body property, or an enum's
// hidden `$name`/`$ordinal` fields.
type Field struct {
	Name          string
	Type          hirtypes.Type
	Mutable       bool
	IsParamBacked bool

	Getter *ast.Accessor // recorded for later get$name synthesis (§4.2 rule 4)
	Setter *ast.Accessor // recorded for later set$name synthesis

	Pos source.Pos
}

func (f *Field) Position() source.Pos { return f.Pos }
func (f *Field) hirDeclNode()         {}

// InstanceInitializer is either a field initializer or an `init` block,
// merged into Class.InstanceInitializers in source order (§4.2 rule 2).
type InstanceInitializer interface {
	instanceInitNode()
}

// FieldInit runs a field's initializer expression.
type FieldInit struct {
	FieldName   string
	Initializer ast.Expr
	Pos         source.Pos
}

func (FieldInit) instanceInitNode() {}

// InitBlockRun runs an `init { ... }` block body.
type InitBlockRun struct {
	Body *ast.BlockStmt
	Pos  source.Pos
}

func (InitBlockRun) instanceInitNode() {}

// Function is a resolved top-level function or class method. IsExtension
// marks a function lowered from `fun T.foo(...)`; ReceiverType then names
// T and Params[0] is the synthesized `$this` parameter (§4.2 rule 3).
type Function struct {
	Name         string
	Modifiers    []ast.Modifier
	Annotations  []*ast.Annotation
	TypeParams   []*ast.TypeParam
	Params       []*Param
	ReturnType   hirtypes.Type
	Body         ast.Node // Expr (= expr form) or *ast.BlockStmt; nil if abstract
	IsExtension  bool
	ReceiverType hirtypes.Type

	Enclosing *Class // non-nil for a method

	Pos source.Pos
}

func (f *Function) Position() source.Pos { return f.Pos }
func (f *Function) hirDeclNode()         {}

// Param is a resolved function/constructor/lambda parameter.
type Param struct {
	Name      string
	Type      hirtypes.Type
	Default   ast.Expr
	Vararg    bool
	IsField   bool // primary-ctor params only: parameter-backed field
	IsMutable bool // IsField only: var vs val
	Pos       source.Pos
}

// EnumEntry is one resolved `NAME(args) { ... }` enum entry, with its
// ordinal assigned by declaration order.
type EnumEntry struct {
	Name    string
	Ordinal int
	Args    []ast.Expr
	Members []Decl
	Pos     source.Pos
}

// TypeAlias records `type Alias = Target` for name-resolution purposes;
// lowering never emits anything for it directly.
type TypeAlias struct {
	Name   string
	Target hirtypes.Type
	Pos    source.Pos
}

func (t *TypeAlias) Position() source.Pos { return t.Pos }
func (t *TypeAlias) hirDeclNode()         {}
