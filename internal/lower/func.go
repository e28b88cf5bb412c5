package lower

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/hirtypes"
	"github.com/novalang/novalang/internal/mir"
)

// lowerFunction implements §4.3.1: local allocation (this, then params,
// then reified type-parameter markers), the default-parameter prologue,
// body lowering, and the auto-return/abstract rules.
func lowerFunction(c *funcCtx, f *hir.Function) *mir.Function {
	if f.Enclosing != nil {
		c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: f.Enclosing.Name})
	}
	paramLocals := make([]*mir.Local, len(f.Params))
	for i, p := range f.Params {
		paramLocals[i] = c.declareLocal(p.Name, mir.Erase(p.Type))
		c.fn.Params = append(c.fn.Params, paramLocals[i].Type)
	}
	for _, tp := range f.TypeParams {
		if tp.Reified {
			c.declareLocal("__reified_"+tp.Name, mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
		}
	}

	if f.Body == nil {
		c.fn.Abstract = true
		c.fn.ReturnType = mir.Erase(f.ReturnType)
		c.finish()
		return c.fn
	}

	entry := c.newBlock()
	c.setCurrent(entry)
	emitDefaultParamPrologue(c, f.Params, paramLocals)
	c.fn.BodyStartBlockID = c.current

	lowerFunctionBody(c, f.Body)
	ensureTerminated(c, f.ReturnType)

	c.fn.ReturnType = mir.Erase(f.ReturnType)
	c.finish()
	return c.fn
}

// emitDefaultParamPrologue implements §4.3.1: for each parameter with a
// default, test `param == null` and assign the default on the true
// branch, joining back before the user body. bodyStartBlockId is the
// join block reached once every default has been applied.
func emitDefaultParamPrologue(c *funcCtx, params []*hir.Param, locals []*mir.Local) {
	for i, p := range params {
		if p.Default == nil {
			continue
		}
		isNull := c.newTemp(mir.Type{Tag: mir.TBoolean})
		nullConst := c.newTemp(locals[i].Type)
		c.emit(&mir.Inst{Op: mir.ConstNull, Dest: nullConst.Index, Pos: p.Pos})
		c.emit(&mir.Inst{Op: mir.BinOp, Dest: isNull.Index, Operands: []int{locals[i].Index, nullConst.Index}, Imm: binOpEq(), Pos: p.Pos})

		applyDefault := c.newBlock()
		join := c.newBlock()
		c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: isNull.Index, ThenTgt: applyDefault, ElseTgt: join, Pos: p.Pos})

		c.setCurrent(applyDefault)
		defaultVal := c.lowerExpr(p.Default)
		c.emit(&mir.Inst{Op: mir.Move, Dest: locals[i].Index, Operands: []int{defaultVal}, Pos: p.Pos})
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: join, Pos: p.Pos})

		c.setCurrent(join)
	}
}

func binOpEq() mir.BinOpKind { return mir.OpEq }

// lowerFunctionBody lowers a `= expr` body (the final value becomes the
// return, handled by ensureTerminated) or a `{ ... }` block body.
func lowerFunctionBody(c *funcCtx, body ast.Node) {
	switch n := body.(type) {
	case *ast.BlockStmt:
		c.lowerStmt(n)
	case ast.Expr:
		result := c.lowerExpr(n)
		c.emit(&mir.Inst{Op: mir.Move, Dest: result, Pos: n.Position()})
	}
}

// ensureTerminated implements the auto-return rule: if the final block has
// no terminator, emit Return <last value> for a non-void return type, else
// ReturnVoid.
func ensureTerminated(c *funcCtx, returnType hirtypes.Type) {
	if c.blocks[c.current].Term != nil {
		return
	}
	erased := mir.Erase(returnType)
	if erased.Tag == mir.TVoid {
		c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
		return
	}
	last := lastWrittenLocal(c)
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: last})
}

// lastWrittenLocal returns the most recently assigned local's index in the
// current block, or the current block's last instruction destination,
// falling back to a fresh null constant if the block is empty (e.g. an
// empty function body).
func lastWrittenLocal(c *funcCtx) int {
	instrs := c.blocks[c.current].Instructions
	if len(instrs) > 0 {
		if d := instrs[len(instrs)-1].Dest; d >= 0 {
			return d
		}
	}
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.emit(&mir.Inst{Op: mir.ConstNull, Dest: t.Index})
	return t.Index
}
