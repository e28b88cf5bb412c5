package lower

import (
	"sort"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/source"
)

// lowerLambda implements §4.3.6: synthesize a `<Enclosing>$Lambda$<n>`
// class capturing the body's free outer locals (transitively, through
// nested lambdas), allocate an instance at the use site, and return it.
func (c *funcCtx) lowerLambda(n *ast.LambdaExpr) int {
	params := n.Params
	if len(params) == 0 && usesImplicitIt(n.Body) {
		params = []*ast.Param{{Name: "it", Pos: n.Pos}}
	}

	bound := make(map[string]bool, len(params))
	for _, p := range params {
		bound[p.Name] = true
	}
	free := map[string]bool{}
	mutated := map[string]bool{}
	collectCaptures(n.Body, bound, free, mutated)

	usesOuterThis := free["this"]
	delete(free, "this")

	var captures []string
	for name := range free {
		if _, ok := c.lookupLocal(name); ok {
			captures = append(captures, name)
		}
	}
	sort.Strings(captures)

	boxed := make(map[string]bool, len(captures))
	for _, name := range captures {
		if mutated[name] {
			boxed[name] = true
		}
	}

	className := c.mctx.nextLambdaClassName(c.fn.Name)
	lclass := &mir.Class{InternalName: className, Kind: mir.KindClass, SuperClass: "java/lang/Object"}

	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}
	for _, name := range captures {
		fieldType := objType
		if boxed[name] {
			fieldType = mir.Type{Tag: mir.TObject, ClassName: "[Ljava/lang/Object;"}
		}
		lclass.Fields = append(lclass.Fields, &mir.Field{Name: name, Type: fieldType})
	}
	var outerClassName string
	if usesOuterThis && c.fn.ThisLocal() != nil {
		outerClassName = c.fn.ThisLocal().Type.ClassName
		lclass.Fields = append(lclass.Fields, &mir.Field{Name: "$outer", Type: mir.Type{Tag: mir.TObject, ClassName: outerClassName}})
	}

	lclass.Methods = append(lclass.Methods, c.synthLambdaCtor(className, captures, boxed, outerClassName))
	lclass.Methods = append(lclass.Methods, c.synthLambdaInvoke(className, params, n.Body, captures, boxed, outerClassName))
	c.mctx.lambdaClasses = append(c.mctx.lambdaClasses, lclass)

	obj := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: className})
	args := make([]int, 0, len(captures)+1)
	for _, name := range captures {
		if boxed[name] {
			box, _ := c.ensureMutableBox(name, n.Pos)
			args = append(args, box)
			continue
		}
		idx, _ := c.lookupLocal(name)
		args = append(args, idx)
	}
	if outerClassName != "" {
		args = append(args, c.fn.ThisLocal().Index)
	}
	c.emit(&mir.Inst{Op: mir.NewObject, Dest: obj.Index, Operands: args, Imm: className, Pos: n.Pos})
	return obj.Index
}

// synthLambdaCtor builds the synthesized lambda class's constructor,
// storing each capture (boxed captures store the Object[1] box itself)
// and, when present, the `$outer` enclosing-instance reference.
func (c *funcCtx) synthLambdaCtor(className string, captures []string, boxed map[string]bool, outerClassName string) *mir.Function {
	fn := mir.NewFunction("<init>")
	fc := newFuncCtx(c.opts, c.types, c.sink, c.staticFunctions, c.mctx, fn)
	this := fc.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: className})

	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}
	boxType := mir.Type{Tag: mir.TObject, ClassName: "[Ljava/lang/Object;"}
	paramLocals := make([]int, len(captures))
	for i, name := range captures {
		pt := objType
		if boxed[name] {
			pt = boxType
		}
		p := fc.declareLocal(name, pt)
		fn.Params = append(fn.Params, pt)
		paramLocals[i] = p.Index
	}
	outerLocal := -1
	if outerClassName != "" {
		outerType := mir.Type{Tag: mir.TObject, ClassName: outerClassName}
		p := fc.declareLocal("$outer", outerType)
		fn.Params = append(fn.Params, outerType)
		outerLocal = p.Index
	}

	entry := fc.newBlock()
	fc.setCurrent(entry)
	fc.fn.BodyStartBlockID = entry
	for i, name := range captures {
		fc.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, paramLocals[i]}, Imm: name})
	}
	if outerLocal != -1 {
		fc.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, outerLocal}, Imm: "$outer"})
	}
	fc.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
	fn.ReturnType = mir.Type{Tag: mir.TVoid}
	fc.finish()
	return fn
}

// synthLambdaInvoke lowers the lambda body into the synthesized class's
// `invoke` method: captures are fetched from fields into a fresh funcCtx's
// scope at the prologue (boxed ones registered in mutableCaptureBoxes so
// reads/writes inside the body go through IndexGet/IndexSet, same as in
// the enclosing function), and a bound `this` aliases `$outer` when the
// body refers to the enclosing instance.
func (c *funcCtx) synthLambdaInvoke(className string, params []*ast.Param, body ast.Expr, captures []string, boxed map[string]bool, outerClassName string) *mir.Function {
	fn := mir.NewFunction("invoke")
	fc := newFuncCtx(c.opts, c.types, c.sink, c.staticFunctions, c.mctx, fn)
	self := fc.declareLocal("$this", mir.Type{Tag: mir.TObject, ClassName: className})

	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}
	for _, p := range params {
		fc.declareLocal(p.Name, objType)
		fn.Params = append(fn.Params, objType)
	}

	entry := fc.newBlock()
	fc.setCurrent(entry)
	fc.fn.BodyStartBlockID = entry

	for _, name := range captures {
		if boxed[name] {
			box := fc.newTemp(mir.Type{Tag: mir.TObject, ClassName: "[Ljava/lang/Object;"})
			fc.emit(&mir.Inst{Op: mir.GetField, Dest: box.Index, Operands: []int{self.Index}, Imm: name})
			fc.mutableCaptureBoxes[name] = box.Index
			continue
		}
		v := fc.newTemp(objType)
		fc.emit(&mir.Inst{Op: mir.GetField, Dest: v.Index, Operands: []int{self.Index}, Imm: name})
		fc.scope[name] = v.Index
	}
	if outerClassName != "" {
		outerType := mir.Type{Tag: mir.TObject, ClassName: outerClassName}
		outer := fc.newTemp(outerType)
		fc.emit(&mir.Inst{Op: mir.GetField, Dest: outer.Index, Operands: []int{self.Index}, Imm: "$outer"})
		fc.scope["this"] = outer.Index
	}

	result := fc.lowerExpr(body)
	fc.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: result})
	fn.ReturnType = objType
	fc.finish()
	return fn
}

// ensureMutableBox lazily boxes an enclosing local into a single-slot
// Object[1] array the first time a lambda captures it by mutable
// reference (§4.3.6); every subsequent read/write of name in this
// function goes through the box via lowerIdent/lowerAssign.
func (c *funcCtx) ensureMutableBox(name string, pos source.Pos) (int, bool) {
	if box, ok := c.mutableCaptureBoxes[name]; ok {
		return box, true
	}
	idx, ok := c.lookupLocal(name)
	if !ok {
		return 0, false
	}
	one := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: one.Index, Imm: int64(1), Pos: pos})
	box := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "[Ljava/lang/Object;"})
	c.emit(&mir.Inst{Op: mir.NewArray, Dest: box.Index, Operands: []int{one.Index}, Pos: pos})
	c.storeBox(box.Index, idx, pos)
	c.mutableCaptureBoxes[name] = box.Index
	return box.Index, true
}

// loadBox/storeBox read/write slot 0 of a mutable-capture box, the shared
// convention lowerIdent and lowerAssign use for both the enclosing
// function and a lambda's own invoke method.
func (c *funcCtx) loadBox(box int, pos source.Pos) int {
	zero := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: zero.Index, Imm: int64(0), Pos: pos})
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.emit(&mir.Inst{Op: mir.IndexGet, Dest: t.Index, Operands: []int{box, zero.Index}, Pos: pos})
	return t.Index
}

func (c *funcCtx) storeBox(box, value int, pos source.Pos) {
	zero := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: zero.Index, Imm: int64(0), Pos: pos})
	c.emit(&mir.Inst{Op: mir.IndexSet, Operands: []int{box, zero.Index, value}, Pos: pos})
}

// usesImplicitIt reports whether body references `it`, a conservative
// (non-shadowing-aware) scan over the expression forms lowerExpr
// understands, used to decide the implicit single-parameter form of a
// lambda with no declared params.
func usesImplicitIt(body ast.Expr) bool {
	found := false
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		if e == nil || found {
			return
		}
		switch n := e.(type) {
		case *ast.IdentExpr:
			if n.Name == "it" {
				found = true
			}
		case *ast.BinaryExpr:
			walk(n.Left)
			walk(n.Right)
		case *ast.UnaryExpr:
			walk(n.Operand)
		case *ast.MemberExpr:
			walk(n.Receiver)
		case *ast.AssignExpr:
			walk(n.Target)
			walk(n.Value)
		case *ast.CallExpr:
			walk(n.Callee)
			for _, a := range n.Args {
				walk(a.Value)
			}
		case *ast.IfExpr:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case *ast.WhenExpr:
			walk(n.Subject)
			for _, cs := range n.Cases {
				for _, v := range cs.Values {
					walk(v)
				}
				walk(cs.Condition)
				if b, ok := cs.Body.(ast.Expr); ok {
					walk(b)
				}
			}
			walk(n.ElseBody)
		case *ast.IndexExpr:
			walk(n.Receiver)
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(body)
	return found
}

// collectCaptures walks e (the expression forms lowerExpr understands),
// recording every identifier not in bound as free, and flagging free
// names ever used as an assignment target as mutated. Nested lambdas
// recurse with their own params added to bound, giving the transitive
// capture analysis §4.3.6 requires.
func collectCaptures(e ast.Expr, bound map[string]bool, free map[string]bool, mutated map[string]bool) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Literal:
	case *ast.IdentExpr:
		if !bound[n.Name] {
			free[n.Name] = true
		}
	case *ast.BinaryExpr:
		collectCaptures(n.Left, bound, free, mutated)
		collectCaptures(n.Right, bound, free, mutated)
	case *ast.UnaryExpr:
		collectCaptures(n.Operand, bound, free, mutated)
		if ident, ok := n.Operand.(*ast.IdentExpr); ok && !bound[ident.Name] {
			mutated[ident.Name] = true
		}
	case *ast.MemberExpr:
		collectCaptures(n.Receiver, bound, free, mutated)
	case *ast.AssignExpr:
		collectCaptures(n.Value, bound, free, mutated)
		if ident, ok := n.Target.(*ast.IdentExpr); ok {
			if !bound[ident.Name] {
				free[ident.Name] = true
				mutated[ident.Name] = true
			}
		} else {
			collectCaptures(n.Target, bound, free, mutated)
		}
	case *ast.CallExpr:
		collectCaptures(n.Callee, bound, free, mutated)
		for _, a := range n.Args {
			collectCaptures(a.Value, bound, free, mutated)
		}
		if n.TrailingLambda != nil {
			collectCaptures(n.TrailingLambda, bound, free, mutated)
		}
	case *ast.IfExpr:
		collectCaptures(n.Cond, bound, free, mutated)
		collectCaptures(n.Then, bound, free, mutated)
		collectCaptures(n.Else, bound, free, mutated)
	case *ast.WhenExpr:
		collectCaptures(n.Subject, bound, free, mutated)
		for _, cs := range n.Cases {
			for _, v := range cs.Values {
				collectCaptures(v, bound, free, mutated)
			}
			collectCaptures(cs.Condition, bound, free, mutated)
			if body, ok := cs.Body.(ast.Expr); ok {
				collectCaptures(body, bound, free, mutated)
			}
		}
		collectCaptures(n.ElseBody, bound, free, mutated)
	case *ast.IndexExpr:
		collectCaptures(n.Receiver, bound, free, mutated)
		for _, a := range n.Args {
			collectCaptures(a, bound, free, mutated)
		}
	case *ast.LambdaExpr:
		inner := make(map[string]bool, len(bound)+len(n.Params))
		for k := range bound {
			inner[k] = true
		}
		for _, p := range n.Params {
			inner[p.Name] = true
		}
		collectCaptures(n.Body, inner, free, mutated)
	default:
		// Other expression forms (try/async/await/type-check/range/...) are
		// not walked: lowerExpr lowers them to a null constant with an MIR001
		// report, so identifiers inside them are never looked up.
	}
}
