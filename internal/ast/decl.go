package ast

import (
	"fmt"
	"strings"

	"github.com/novalang/novalang/internal/source"
)

// ClassDecl declares a class, its primary constructor, supertype and
// members. A class with IsData set requests data-class semantics
// (component/copy synthesis happens downstream in HIR->MIR).
type ClassDecl struct {
	Name           string
	Modifiers      []Modifier
	Annotations    []*Annotation
	TypeParams     []*TypeParam
	PrimaryCtor    *PrimaryConstructor
	SecondaryCtors []*SecondaryConstructor
	SuperClass     *SuperCall
	Interfaces     []TypeRef
	Members        []Decl
	IsData         bool
	Pos            source.Pos
}

func (c *ClassDecl) String() string       { return "class " + c.Name }
func (c *ClassDecl) Position() source.Pos { return c.Pos }
func (c *ClassDecl) declNode()            {}

// PrimaryConstructor is the parameter list declared on the class header.
// A parameter with IsField set is backed by a field of the same name
// (val/var in the class header).
type PrimaryConstructor struct {
	Params []*CtorParam
	Pos    source.Pos
}

// CtorParam is one primary-constructor parameter.
type CtorParam struct {
	Name      string
	Type      TypeRef
	IsField   bool
	IsMutable bool // var vs val when IsField
	Default   Expr
	Vararg    bool
	Pos       source.Pos
}

// SecondaryConstructor is a `constructor(...)` declaration that must
// delegate to the primary constructor or another secondary constructor via
// `this(...)`.
type SecondaryConstructor struct {
	Params     []*Param
	Delegation *DelegationCall
	Body       *BlockStmt
	Pos        source.Pos
}

// DelegationCall is the `this(...)` or `super(...)` forwarding call at the
// head of a secondary constructor.
type DelegationCall struct {
	Args []*Argument
	Pos  source.Pos
}

// SuperCall names the superclass and its constructor arguments.
type SuperCall struct {
	ClassName string
	Args      []*Argument
	Pos       source.Pos
}

// InterfaceDecl declares an interface.
type InterfaceDecl struct {
	Name       string
	TypeParams []*TypeParam
	Interfaces []TypeRef
	Members    []Decl
	Pos        source.Pos
}

func (i *InterfaceDecl) String() string       { return "interface " + i.Name }
func (i *InterfaceDecl) Position() source.Pos { return i.Pos }
func (i *InterfaceDecl) declNode()            {}

// ObjectDecl declares a singleton object.
type ObjectDecl struct {
	Name       string
	SuperClass *SuperCall
	Interfaces []TypeRef
	Members    []Decl
	Pos        source.Pos
}

func (o *ObjectDecl) String() string       { return "object " + o.Name }
func (o *ObjectDecl) Position() source.Pos { return o.Pos }
func (o *ObjectDecl) declNode()            {}

// EnumDecl declares an enum class, its entries and any members shared by
// every entry.
type EnumDecl struct {
	Name        string
	Interfaces  []TypeRef
	PrimaryCtor *PrimaryConstructor
	Entries     []*EnumEntry
	Members     []Decl
	Pos         source.Pos
}

func (e *EnumDecl) String() string       { return "enum " + e.Name }
func (e *EnumDecl) Position() source.Pos { return e.Pos }
func (e *EnumDecl) declNode()            {}

// EnumEntry is one `NAME(args) { ... }` entry of an enum.
type EnumEntry struct {
	Name string
	Args []*Argument
	Body []Decl
	Pos  source.Pos
}

// FunctionDecl declares a top-level function or a class method. A non-nil
// ReceiverType marks it as an extension function.
type FunctionDecl struct {
	Name         string
	Modifiers    []Modifier
	Annotations  []*Annotation
	TypeParams   []*TypeParam
	ReceiverType TypeRef
	Params       []*Param
	ReturnType   TypeRef
	Body         Node // Expr (= expr form) or *BlockStmt, nil if abstract
	Pos          source.Pos
}

func (f *FunctionDecl) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("fun %s(%s)", f.Name, strings.Join(names, ", "))
}
func (f *FunctionDecl) Position() source.Pos { return f.Pos }
func (f *FunctionDecl) declNode()            {}

// Param is a function or lambda parameter.
type Param struct {
	Name    string
	Type    TypeRef
	Default Expr
	Vararg  bool
	Pos     source.Pos
}

// PropertyDecl declares a val/var field or top-level property, optionally
// with custom accessors.
type PropertyDecl struct {
	Name        string
	Modifiers   []Modifier
	Annotations []*Annotation
	Type        TypeRef
	Mutable     bool
	Initializer Expr
	Getter      *Accessor
	Setter      *Accessor
	Pos         source.Pos
}

func (p *PropertyDecl) String() string {
	kw := "val"
	if p.Mutable {
		kw = "var"
	}
	return kw + " " + p.Name
}
func (p *PropertyDecl) Position() source.Pos { return p.Pos }
func (p *PropertyDecl) declNode()            {}

// Accessor is a custom `get()`/`set(v)` property accessor body.
type Accessor struct {
	Param *Param // non-nil for setters
	Body  Expr
	Pos   source.Pos
}

// TypeAliasDecl declares `type Alias = Target`.
type TypeAliasDecl struct {
	Name       string
	TypeParams []*TypeParam
	Target     TypeRef
	Pos        source.Pos
}

func (t *TypeAliasDecl) String() string       { return "type " + t.Name }
func (t *TypeAliasDecl) Position() source.Pos { return t.Pos }
func (t *TypeAliasDecl) declNode()            {}

// InitBlock is a class `init { ... }` block; together with field
// initializers it forms the source-ordered instance-initializer list.
type InitBlock struct {
	Body *BlockStmt
	Pos  source.Pos
}

func (i *InitBlock) String() string       { return "init { ... }" }
func (i *InitBlock) Position() source.Pos { return i.Pos }
func (i *InitBlock) declNode()            {}
