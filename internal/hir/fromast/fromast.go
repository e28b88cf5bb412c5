// Package fromast implements AstToHir, spec.md §4.2: lowering the parsed
// internal/ast tree into an internal/hir.Module with resolved imports,
// merged instance initializers, extension-function desugaring, recorded
// property accessors, and enum hidden fields.
package fromast

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hirtypes"
)

// AstToHir converts prog into a hir.Module. sink is threaded through the
// declaration converters, but this pass records no diagnostics on it;
// every import lands in one of the four buckets.
func AstToHir(prog *ast.Program, sink *errors.Sink) *hir.Module {
	m := &hir.Module{
		NativeForeignImports: make(map[string]string),
		StaticImports:        make(map[string]string),
	}

	if prog.Package != nil {
		m.PackageName = prog.Package.Name
	}

	for _, imp := range prog.Imports {
		classifyImport(m, imp)
	}

	for _, d := range prog.Decls {
		if conv := convertTopDecl(d, nil, sink); conv != nil {
			m.Decls = append(m.Decls, conv...)
		}
	}

	return m
}

// classifyImport routes one resolved import into the four §4.2 buckets.
func classifyImport(m *hir.Module, imp *ast.ImportDecl) {
	switch {
	case imp.Wildcard:
		m.WildcardImports = append(m.WildcardImports, imp.Path)
	case imp.Static:
		for _, sym := range imp.Symbols {
			m.StaticImports[sym] = imp.Path + "." + sym
		}
	case imp.Foreign:
		name := imp.Alias
		if name == "" {
			name = lastSegment(imp.Path)
		}
		m.NativeForeignImports[name] = imp.Path
	default:
		m.SourceImports = append(m.SourceImports, hir.SourceImport{
			QualifiedName: imp.Path,
			Alias:         imp.Alias,
			Wildcard:      false,
			Pos:           imp.Pos,
		})
	}
}

func lastSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' || path[i] == '/' {
			last = path[i+1:]
			break
		}
	}
	return last
}

// convertTopDecl converts one ast.Decl reachable at the top level or
// nested inside a class body. enclosing is nil at the top level.
func convertTopDecl(d ast.Decl, enclosing *hir.Class, sink *errors.Sink) []hir.Decl {
	switch n := d.(type) {
	case *ast.ClassDecl:
		return []hir.Decl{convertClass(n, enclosing, sink)}
	case *ast.InterfaceDecl:
		return []hir.Decl{convertInterface(n, enclosing, sink)}
	case *ast.ObjectDecl:
		return []hir.Decl{convertObject(n, enclosing, sink)}
	case *ast.EnumDecl:
		return []hir.Decl{convertEnum(n, enclosing, sink)}
	case *ast.FunctionDecl:
		return []hir.Decl{convertFunction(n, enclosing)}
	case *ast.PropertyDecl:
		return []hir.Decl{convertField(n)}
	case *ast.TypeAliasDecl:
		return []hir.Decl{&hir.TypeAlias{Name: n.Name, Target: resolveType(n.Target), Pos: n.Pos}}
	default:
		return nil
	}
}

func convertClass(n *ast.ClassDecl, enclosing *hir.Class, sink *errors.Sink) *hir.Class {
	c := &hir.Class{
		Name:        n.Name,
		Modifiers:   n.Modifiers,
		Annotations: n.Annotations,
		TypeParams:  n.TypeParams,
		IsData:      n.IsData,
		Enclosing:   enclosing,
		Pos:         n.Pos,
	}
	if n.SuperClass != nil {
		c.SuperClassName = n.SuperClass.ClassName
		for _, a := range n.SuperClass.Args {
			c.SuperCtorArgs = append(c.SuperCtorArgs, a.Value)
		}
	}
	for _, ifc := range n.Interfaces {
		c.Interfaces = append(c.Interfaces, ifc.String())
	}
	if n.PrimaryCtor != nil {
		c.PrimaryCtor = convertPrimaryCtor(n.PrimaryCtor)
		appendParamBackedFields(c, c.PrimaryCtor)
	}
	for _, sc := range n.SecondaryCtors {
		c.SecondaryCtors = append(c.SecondaryCtors, convertSecondaryCtor(sc))
	}
	populateMembers(c, n.Members, sink)
	return c
}

func convertInterface(n *ast.InterfaceDecl, enclosing *hir.Class, sink *errors.Sink) *hir.Class {
	c := &hir.Class{
		Name:        n.Name,
		TypeParams:  n.TypeParams,
		IsInterface: true,
		Enclosing:   enclosing,
		Pos:         n.Pos,
	}
	for _, ifc := range n.Interfaces {
		c.Interfaces = append(c.Interfaces, ifc.String())
	}
	populateMembers(c, n.Members, sink)
	return c
}

func convertObject(n *ast.ObjectDecl, enclosing *hir.Class, sink *errors.Sink) *hir.Class {
	c := &hir.Class{
		Name:      n.Name,
		IsObject:  true,
		Enclosing: enclosing,
		Pos:       n.Pos,
	}
	if n.SuperClass != nil {
		c.SuperClassName = n.SuperClass.ClassName
		for _, a := range n.SuperClass.Args {
			c.SuperCtorArgs = append(c.SuperCtorArgs, a.Value)
		}
	}
	for _, ifc := range n.Interfaces {
		c.Interfaces = append(c.Interfaces, ifc.String())
	}
	populateMembers(c, n.Members, sink)
	return c
}

// convertEnum converts an enum declaration, recording its entry list with
// assigned ordinals and synthesizing the two hidden fields $name/$ordinal
// (§4.2 rule 5).
func convertEnum(n *ast.EnumDecl, enclosing *hir.Class, sink *errors.Sink) *hir.Class {
	c := &hir.Class{
		Name:      n.Name,
		IsEnum:    true,
		Enclosing: enclosing,
		Pos:       n.Pos,
	}
	for _, ifc := range n.Interfaces {
		c.Interfaces = append(c.Interfaces, ifc.String())
	}
	if n.PrimaryCtor != nil {
		c.PrimaryCtor = convertPrimaryCtor(n.PrimaryCtor)
		appendParamBackedFields(c, c.PrimaryCtor)
	}
	c.Fields = append(c.Fields,
		&hir.Field{Name: "$name", Type: hirtypes.Class{InternalName: "java/lang/String"}, Pos: n.Pos},
		&hir.Field{Name: "$ordinal", Type: hirtypes.Primitive{Kind: hirtypes.Int}, Pos: n.Pos},
	)
	for i, entry := range n.Entries {
		e := &hir.EnumEntry{Name: entry.Name, Ordinal: i, Pos: entry.Pos}
		for _, a := range entry.Args {
			e.Args = append(e.Args, a.Value)
		}
		for _, member := range entry.Body {
			e.Members = append(e.Members, convertTopDecl(member, c, sink)...)
		}
		c.EnumEntries = append(c.EnumEntries, e)
	}
	populateMembers(c, n.Members, sink)
	return c
}

// populateMembers walks a class/interface/object body in source order,
// splitting properties into fields-plus-initializers, init blocks into
// InstanceInitializer entries, and recursing into nested declarations. The
// resulting InstanceInitializers list preserves declaration order across
// both kinds, per §4.2 rule 2.
func populateMembers(c *hir.Class, members []ast.Decl, sink *errors.Sink) {
	for _, member := range members {
		switch n := member.(type) {
		case *ast.PropertyDecl:
			f := convertField(n)
			c.Fields = append(c.Fields, f)
			if n.Initializer != nil {
				c.InstanceInitializers = append(c.InstanceInitializers, hir.FieldInit{
					FieldName:   n.Name,
					Initializer: n.Initializer,
					Pos:         n.Pos,
				})
			}
		case *ast.InitBlock:
			c.InstanceInitializers = append(c.InstanceInitializers, hir.InitBlockRun{
				Body: n.Body,
				Pos:  n.Pos,
			})
		case *ast.FunctionDecl:
			c.Methods = append(c.Methods, convertFunction(n, c))
		default:
			// Nested type declarations (classes/interfaces/objects/enums)
			// inside a class body, e.g. a companion object.
			c.NestedTypes = append(c.NestedTypes, convertTopDecl(member, c, sink)...)
		}
	}
}

func convertField(n *ast.PropertyDecl) *hir.Field {
	return &hir.Field{
		Name:    n.Name,
		Type:    resolveType(n.Type),
		Mutable: n.Mutable,
		Getter:  n.Getter,
		Setter:  n.Setter,
		Pos:     n.Pos,
	}
}

func convertPrimaryCtor(n *ast.PrimaryConstructor) *hir.PrimaryCtor {
	pc := &hir.PrimaryCtor{Pos: n.Pos}
	for _, p := range n.Params {
		pc.Params = append(pc.Params, &hir.Param{
			Name:      p.Name,
			Type:      resolveType(p.Type),
			Default:   p.Default,
			Vararg:    p.Vararg,
			IsField:   p.IsField,
			IsMutable: p.IsMutable,
			Pos:       p.Pos,
		})
	}
	return pc
}

// appendParamBackedFields implements §4.2 rule 1: every primary-constructor
// parameter declared `val`/`var` in the class header is a field the
// constructor must store into before user code runs.
func appendParamBackedFields(c *hir.Class, pc *hir.PrimaryCtor) {
	for _, p := range pc.Params {
		if !p.IsField {
			continue
		}
		c.Fields = append(c.Fields, &hir.Field{
			Name:          p.Name,
			Type:          p.Type,
			Mutable:       p.IsMutable,
			IsParamBacked: true,
			Pos:           p.Pos,
		})
	}
}

func convertSecondaryCtor(n *ast.SecondaryConstructor) *hir.SecondaryCtor {
	sc := &hir.SecondaryCtor{Body: n.Body, Pos: n.Pos}
	for _, p := range n.Params {
		sc.Params = append(sc.Params, &hir.Param{
			Name:    p.Name,
			Type:    resolveType(p.Type),
			Default: p.Default,
			Vararg:  p.Vararg,
			Pos:     p.Pos,
		})
	}
	if n.Delegation != nil {
		d := &hir.Delegation{Pos: n.Delegation.Pos}
		for _, a := range n.Delegation.Args {
			d.Args = append(d.Args, a.Value)
		}
		sc.Delegation = d
	}
	return sc
}

// convertFunction converts a function or method declaration. A non-nil
// ReceiverType marks an extension function: it is lowered here to a
// function taking an implicit first parameter `$this` of that type
// (§4.2 rule 3); references to `this` inside the body are resolved to that
// parameter by internal/lower, not here.
func convertFunction(n *ast.FunctionDecl, enclosing *hir.Class) *hir.Function {
	f := &hir.Function{
		Name:        n.Name,
		Modifiers:   n.Modifiers,
		Annotations: n.Annotations,
		TypeParams:  n.TypeParams,
		ReturnType:  resolveType(n.ReturnType),
		Body:        n.Body,
		Enclosing:   enclosing,
		Pos:         n.Pos,
	}
	if n.ReceiverType != nil {
		f.IsExtension = true
		f.ReceiverType = resolveType(n.ReceiverType)
		f.Params = append(f.Params, &hir.Param{Name: "$this", Type: f.ReceiverType, Pos: n.Pos})
	}
	for _, p := range n.Params {
		f.Params = append(f.Params, &hir.Param{
			Name:    p.Name,
			Type:    resolveType(p.Type),
			Default: p.Default,
			Vararg:  p.Vararg,
			Pos:     p.Pos,
		})
	}
	return f
}
