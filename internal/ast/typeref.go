package ast

import (
	"fmt"
	"strings"

	"github.com/novalang/novalang/internal/source"
)

// SimpleTypeRef is a bare name, e.g. `Int` or `String`.
type SimpleTypeRef struct {
	Name string
	Pos  source.Pos
}

func (s *SimpleTypeRef) String() string       { return s.Name }
func (s *SimpleTypeRef) Position() source.Pos { return s.Pos }
func (s *SimpleTypeRef) typeRefNode()         {}

// NullableTypeRef is `T?`.
type NullableTypeRef struct {
	Inner TypeRef
	Pos   source.Pos
}

func (n *NullableTypeRef) String() string       { return n.Inner.String() + "?" }
func (n *NullableTypeRef) Position() source.Pos { return n.Pos }
func (n *NullableTypeRef) typeRefNode()         {}

// TypeArg is one argument of a generic type reference, with its
// declared-site variance.
type TypeArg struct {
	Variance Variance
	Type     TypeRef
	Pos      source.Pos
}

// GenericTypeRef is `Base<Arg1, Arg2>`.
type GenericTypeRef struct {
	Base TypeRef
	Args []*TypeArg
	Pos  source.Pos
}

func (g *GenericTypeRef) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.Type.String()
	}
	return fmt.Sprintf("%s<%s>", g.Base, strings.Join(parts, ", "))
}
func (g *GenericTypeRef) Position() source.Pos { return g.Pos }
func (g *GenericTypeRef) typeRefNode()         {}

// FunctionTypeRef is `(Params) -> Return`, optionally a suspend function
// type or an extension-function type with a receiver.
type FunctionTypeRef struct {
	Receiver TypeRef
	Params   []TypeRef
	Return   TypeRef
	Suspend  bool
	Pos      source.Pos
}

func (f *FunctionTypeRef) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return)
}
func (f *FunctionTypeRef) Position() source.Pos { return f.Pos }
func (f *FunctionTypeRef) typeRefNode()         {}

// TypeParamRef references a declared type parameter by name, carrying its
// upper bound for use sites that need it without a symbol-table lookup.
type TypeParamRef struct {
	Name  string
	Bound TypeRef
	Pos   source.Pos
}

func (t *TypeParamRef) String() string       { return t.Name }
func (t *TypeParamRef) Position() source.Pos { return t.Pos }
func (t *TypeParamRef) typeRefNode()         {}
