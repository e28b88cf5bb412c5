package lower

import (
	"strconv"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/typetable"
)

// synthAccessors appends the `get$<name>`/`set$<name>` methods for every
// field that recorded a custom accessor (§4.2 rule 4 / §4.4). A default
// (compiler-generated) accessor reads/writes the field directly; a custom
// one lowers its declared body with an implicit `this`.
func synthAccessors(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class, mclass *mir.Class) {
	for _, f := range class.Fields {
		if f.Getter != nil {
			mclass.Methods = append(mclass.Methods, synthGetter(opts, types, sink, mctx, class, f))
		}
		if f.Setter != nil && f.Mutable {
			mclass.Methods = append(mclass.Methods, synthSetter(opts, types, sink, mctx, class, f))
		}
	}
}

func synthGetter(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class, f *hir.Field) *mir.Function {
	fn := mir.NewFunction("get$" + f.Name)
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry

	result := c.lowerExpr(f.Getter.Body)
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: result})
	fn.ReturnType = mir.Erase(f.Type)
	c.finish()
	return fn
}

func synthSetter(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class, f *hir.Field) *mir.Function {
	fn := mir.NewFunction("set$" + f.Name)
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	this := c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	valueType := mir.Erase(f.Type)
	value := c.declareLocal(f.Setter.Param.Name, valueType)
	fn.Params = append(fn.Params, valueType)
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry

	if f.Setter.Body != nil {
		c.lowerExpr(f.Setter.Body)
	} else {
		c.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, value.Index}, Imm: f.Name})
	}
	c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
	fn.ReturnType = mir.Type{Tag: mir.TVoid}
	c.finish()
	return fn
}

// synthFieldInitConstructor is the field-init constructor generator
// for a class (including an enum, before its entry-specific
// construction) declares fields with initializers but no explicit primary
// constructor: a synthesized no-arg `<init>` runs instanceInitializers.
func synthFieldInitConstructor(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class) *mir.Function {
	fn := mir.NewFunction("<init>")
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	return lowerPrimaryCtor(c, class)
}

// synthEnumAccessors generates the `name()`/`ordinal()` methods every enum
// class receives, reading the hidden `$name`/`$ordinal` fields (§4.2 rule
// 5 / §4.4).
func synthEnumAccessors(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class) []*mir.Function {
	name := mir.NewFunction("name")
	nc := newFuncCtx(opts, types, sink, nil, mctx, name)
	nc.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	entry := nc.newBlock()
	nc.setCurrent(entry)
	nc.fn.BodyStartBlockID = entry
	t := nc.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/String"})
	nc.emit(&mir.Inst{Op: mir.GetField, Dest: t.Index, Operands: []int{0}, Imm: "$name"})
	nc.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: t.Index})
	name.ReturnType = mir.Type{Tag: mir.TObject, ClassName: "java/lang/String"}
	nc.finish()

	ordinal := mir.NewFunction("ordinal")
	oc := newFuncCtx(opts, types, sink, nil, mctx, ordinal)
	oc.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	entry2 := oc.newBlock()
	oc.setCurrent(entry2)
	oc.fn.BodyStartBlockID = entry2
	t2 := oc.newTemp(mir.Type{Tag: mir.TInt})
	oc.emit(&mir.Inst{Op: mir.GetField, Dest: t2.Index, Operands: []int{0}, Imm: "$ordinal"})
	oc.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: t2.Index})
	ordinal.ReturnType = mir.Type{Tag: mir.TInt}
	oc.finish()

	return []*mir.Function{name, ordinal}
}

// synthClinit generates the static `<clinit>` that runs a class's static
// (companion/top-level-object) field initializers and, for an enum, builds
// and stores each entry instance into its static field.
func synthClinit(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class, staticInits []hir.InstanceInitializer) *mir.Function {
	fn := mir.NewFunction("<clinit>")
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry

	for _, init := range staticInits {
		switch in := init.(type) {
		case hir.FieldInit:
			val := c.lowerExpr(in.Initializer)
			c.emit(&mir.Inst{Op: mir.SetStatic, Operands: []int{val}, Imm: in.FieldName})
		case hir.InitBlockRun:
			c.lowerStmt(in.Body)
		}
	}

	for _, entry := range class.EnumEntries {
		obj := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: class.Name})
		args := make([]int, len(entry.Args))
		for i, a := range entry.Args {
			args[i] = c.lowerExpr(a)
		}
		c.emit(&mir.Inst{Op: mir.NewObject, Dest: obj.Index, Operands: args, Imm: class.Name})
		c.emit(&mir.Inst{Op: mir.SetStatic, Operands: []int{obj.Index}, Imm: entry.Name})
	}

	c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
	fn.ReturnType = mir.Type{Tag: mir.TVoid}
	c.finish()
	return fn
}

// synthDataClassMembers generates the `copy`/`componentN` methods a data
// class receives for its declared fields, in source order (§4.3.7 level
// 12, §4.3.11). `copy` always takes every field positionally; a call site
// omitting a named argument fills it in with a read of the receiver's
// current value (handled in lowerCall, not here).
func synthDataClassMembers(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class) []*mir.Function {
	out := []*mir.Function{synthCopy(opts, types, sink, mctx, class)}
	for i, f := range class.Fields {
		out = append(out, synthComponent(opts, types, sink, mctx, class, i+1, f))
	}
	return out
}

func synthCopy(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class) *mir.Function {
	fn := mir.NewFunction("copy")
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry

	paramLocals := make([]int, len(class.Fields))
	for i, f := range class.Fields {
		t := mir.Erase(f.Type)
		p := c.declareLocal(f.Name, t)
		fn.Params = append(fn.Params, t)
		paramLocals[i] = p.Index
	}

	obj := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: class.Name})
	c.emit(&mir.Inst{Op: mir.NewObject, Dest: obj.Index, Operands: paramLocals, Imm: class.Name})
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: obj.Index})
	fn.ReturnType = mir.Type{Tag: mir.TObject, ClassName: class.Name}
	c.finish()
	return fn
}

func synthComponent(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, class *hir.Class, n int, f *hir.Field) *mir.Function {
	fn := mir.NewFunction("component" + strconv.Itoa(n))
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	this := c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry
	fieldType := mir.Erase(f.Type)
	t := c.newTemp(fieldType)
	c.emit(&mir.Inst{Op: mir.GetField, Dest: t.Index, Operands: []int{this.Index}, Imm: f.Name})
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: t.Index})
	fn.ReturnType = fieldType
	c.finish()
	return fn
}

// synthExtensionPropertyGetter generates `$extProp$<receiver>$<name>`, the
// dispatch target an extension property's get() compiles to (§4.4), taking
// the receiver as an explicit first (and only) parameter.
func synthExtensionPropertyGetter(opts *Options, types *typetable.TypeTable, sink *errors.Sink, mctx *moduleCtx, receiverInternalName string, f *hir.Field) *mir.Function {
	fn := mir.NewFunction("$extProp$" + receiverInternalName + "$" + f.Name)
	c := newFuncCtx(opts, types, sink, nil, mctx, fn)
	this := c.declareLocal("$this", mir.Type{Tag: mir.TObject, ClassName: receiverInternalName})
	fn.Params = append(fn.Params, this.Type)
	entry := c.newBlock()
	c.setCurrent(entry)
	c.fn.BodyStartBlockID = entry

	result := c.lowerExpr(f.Getter.Body)
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: result})
	fn.ReturnType = mir.Erase(f.Type)
	c.finish()
	return fn
}
