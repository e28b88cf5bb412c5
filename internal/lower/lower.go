package lower

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/typetable"
)

// Lower is the HirToMir entry point of §4.3/§5: three phases (global
// discovery, override propagation, per-declaration lowering), single-
// threaded, returning the lowered module plus every recoverable diagnostic
// accumulated along the way.
func Lower(hirModule *hir.Module, opts Options) (*mir.Module, []*errors.Report) {
	sink := &errors.Sink{}
	types := typetable.New()
	if len(opts.ExternalClasses) > 0 {
		types.RegisterExternalClasses(opts.ExternalClasses)
	}

	overrideAnnotated := discoverGlobals(types, hirModule)
	types.ResolveOverrides(overrideAnnotated, sink)

	mmod := &mir.Module{
		PackageName:          hirModule.PackageName,
		NativeForeignImports: hirModule.NativeForeignImports,
		StaticImports:        hirModule.StaticImports,
		WildcardImports:      hirModule.WildcardImports,
	}
	for _, si := range hirModule.SourceImports {
		mmod.SourceImports = append(mmod.SourceImports, mir.SourceImportInfo{
			QualifiedName: si.QualifiedName,
			Alias:         si.Alias,
			IsWildcard:    si.Wildcard,
		})
	}

	staticFunctions := collectStaticFunctionDescriptors(hirModule)
	mctx := &moduleCtx{anonSeq: opts.AnonClassSeed}

	for _, d := range hirModule.Decls {
		switch n := d.(type) {
		case *hir.Class:
			mmod.Classes = append(mmod.Classes, lowerClass(&opts, types, sink, staticFunctions, mctx, n))
		case *hir.Function:
			fn := mir.NewFunction(n.Name)
			fn.Descriptor = descriptorFor(n)
			c := newFuncCtx(&opts, types, sink, staticFunctions, mctx, fn)
			lowerFunction(c, n)
			mmod.Functions = append(mmod.Functions, fn)
			if n.IsExtension {
				mmod.ExtensionFunctions = append(mmod.ExtensionFunctions, mir.ExtensionFunctionInfo{
					ReceiverInternalName: n.ReceiverType.String(),
					FunctionName:         n.Name,
				})
			}
		}
	}

	mmod.Classes = append(mmod.Classes, mctx.lambdaClasses...)
	return mmod, sink.Reports()
}

// discoverGlobals implements Phase 1: walk declarations populating every
// TypeTable map (names, field sets, descriptors, super-class links,
// interface lists), returning the override-annotated method set consumed
// by Phase 2.
func discoverGlobals(types *typetable.TypeTable, m *hir.Module) map[string][]string {
	overrideAnnotated := make(map[string][]string)
	for _, d := range m.Decls {
		class, ok := d.(*hir.Class)
		if !ok {
			continue
		}
		registerClass(types, overrideAnnotated, class)
	}
	return overrideAnnotated
}

func registerClass(types *typetable.TypeTable, overrideAnnotated map[string][]string, class *hir.Class) {
	ci := types.Declare(class.Name)
	ci.IsInterface = class.IsInterface
	ci.IsEnum = class.IsEnum
	ci.IsObject = class.IsObject
	ci.IsData = class.IsData
	ci.SuperClass = class.SuperClassName
	ci.Interfaces = class.Interfaces
	for _, f := range class.Fields {
		ci.Fields[f.Name] = true
		ci.FieldOrder = append(ci.FieldOrder, f.Name)
	}
	for _, method := range class.Methods {
		ci.Methods[method.Name] = descriptorFor(method)
		if ast.Has(method.Modifiers, ast.ModOverride) {
			overrideAnnotated[class.Name] = append(overrideAnnotated[class.Name], method.Name)
		}
	}
	for _, nested := range class.NestedTypes {
		if nc, ok := nested.(*hir.Class); ok {
			registerClass(types, overrideAnnotated, nc)
		}
	}
}

// descriptorFor computes a function's bit-exact descriptor from its
// pre-erasure HIR parameter/return types (§4.1/§6), before construction of
// the erased MIR types.
func descriptorFor(f *hir.Function) string {
	params := make([]hirtypes.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return hirtypes.Descriptor(params, f.ReturnType)
}

// collectStaticFunctionDescriptors builds the name->descriptor table used
// by call resolution's unqualified-identifier level (§4.3.7).
func collectStaticFunctionDescriptors(m *hir.Module) map[string]string {
	out := make(map[string]string)
	for _, d := range m.Decls {
		if fn, ok := d.(*hir.Function); ok {
			out[fn.Name] = descriptorFor(fn)
		}
	}
	return out
}

// lowerClass implements Phase 3 for one class: constructors, methods,
// synthesized accessors/clinit, recorded as a mir.Class.
func lowerClass(opts *Options, types *typetable.TypeTable, sink *errors.Sink, staticFunctions map[string]string, mctx *moduleCtx, class *hir.Class) *mir.Class {
	mclass := &mir.Class{
		InternalName: class.Name,
		SuperClass:   class.SuperClassName,
		Interfaces:   class.Interfaces,
	}
	if mclass.SuperClass == "" && !class.IsInterface {
		mclass.SuperClass = "java/lang/Object"
	}
	switch {
	case class.IsInterface:
		mclass.Kind = mir.KindInterface
	case class.IsObject:
		mclass.Kind = mir.KindObject
	case class.IsEnum:
		mclass.Kind = mir.KindEnum
	default:
		mclass.Kind = mir.KindClass
	}

	for _, f := range class.Fields {
		mclass.Fields = append(mclass.Fields, &mir.Field{
			Name: f.Name,
			Type: mir.Erase(f.Type),
		})
	}

	// An object declaration is a singleton: its "instance" initializers run
	// once in <clinit>, each field initializer stored with SetStatic under
	// the field's own name, rather than in a caller-visible constructor
	// (§4.2 object semantics).
	var staticInits []hir.InstanceInitializer
	if class.IsObject {
		staticInits = class.InstanceInitializers
	} else if class.PrimaryCtor != nil || len(class.InstanceInitializers) > 0 {
		fn := mir.NewFunction("<init>")
		c := newFuncCtx(opts, types, sink, staticFunctions, mctx, fn)
		mclass.Methods = append(mclass.Methods, lowerPrimaryCtor(c, class))
	}
	for _, sc := range class.SecondaryCtors {
		fn := mir.NewFunction("<init>")
		c := newFuncCtx(opts, types, sink, staticFunctions, mctx, fn)
		mclass.Methods = append(mclass.Methods, lowerSecondaryCtor(c, class, sc))
	}

	for _, m := range class.Methods {
		fn := mir.NewFunction(m.Name)
		fn.Descriptor = descriptorFor(m)
		fn.TypeParams = typeParamNames(m)
		c := newFuncCtx(opts, types, sink, staticFunctions, mctx, fn)
		lowerFunction(c, m)
		mclass.Methods = append(mclass.Methods, fn)
	}

	synthAccessors(opts, types, sink, mctx, class, mclass)

	if class.IsData {
		mclass.Methods = append(mclass.Methods, synthDataClassMembers(opts, types, sink, mctx, class)...)
	}
	if class.IsEnum {
		mclass.Methods = append(mclass.Methods, synthEnumAccessors(opts, types, sink, mctx, class)...)
	}
	if len(staticInits) > 0 || class.IsEnum {
		mclass.Methods = append(mclass.Methods, synthClinit(opts, types, sink, mctx, class, staticInits))
	}

	return mclass
}

func typeParamNames(f *hir.Function) []string {
	names := make([]string, len(f.TypeParams))
	for i, tp := range f.TypeParams {
		names[i] = tp.Name
	}
	return names
}
