package lower

import (
	"strconv"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/mir"
)

// lowerStmt lowers s, appending to the current block (and possibly
// switching the current block, e.g. for control flow).
func (c *funcCtx) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		c.pushScope()
		for _, stmt := range n.Stmts {
			c.lowerStmt(stmt)
		}
		c.popScope()
	case *ast.ExprStmt:
		c.lowerExpr(n.Expr)
	case *ast.IfStmt:
		c.lowerIfStmt(n)
	case *ast.WhileStmt:
		c.lowerWhile(n)
	case *ast.DoWhileStmt:
		c.lowerDoWhile(n)
	case *ast.ForStmt:
		c.lowerFor(n)
	case *ast.ReturnStmt:
		c.lowerReturn(n)
	case *ast.BreakStmt:
		c.lowerBreak(n)
	case *ast.ContinueStmt:
		c.lowerContinue(n)
	case *ast.ThrowStmt:
		c.lowerThrow(n)
	case *ast.TryStmt:
		c.lowerTry(n)
	case *ast.WhenStmt:
		c.lowerWhenStmt(n)
	default:
		c.sink.WarnAt(errors.MIR001, "unsupported statement form", s.Position())
	}
}

func (c *funcCtx) lowerIfStmt(n *ast.IfStmt) {
	cond := c.lowerExpr(n.Cond)
	thenID := c.newBlock()
	elseID := c.newBlock()
	mergeID := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: thenID, ElseTgt: elseID, Pos: n.Pos})

	c.setCurrent(thenID)
	c.lowerStmt(n.Then)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})
	}

	c.setCurrent(elseID)
	if n.Else != nil {
		c.lowerStmt(n.Else)
	}
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})
	}

	c.setCurrent(mergeID)
}

// lowerWhile implements §4.3.3: header block evaluates cond then branches.
func (c *funcCtx) lowerWhile(n *ast.WhileStmt) {
	header := c.newBlock()
	body := c.newBlock()
	exit := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(header)
	cond := c.lowerExpr(n.Cond)
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: body, ElseTgt: exit, Pos: n.Pos})

	c.loopStack = append(c.loopStack, loopFrame{label: n.Label, header: header, exit: exit, incr: -1})
	c.setCurrent(body)
	c.lowerStmt(n.Body)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})
	}
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.setCurrent(exit)
}

// lowerDoWhile implements §4.3.3: entry jumps to body then to header.
func (c *funcCtx) lowerDoWhile(n *ast.DoWhileStmt) {
	body := c.newBlock()
	header := c.newBlock()
	exit := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: body, Pos: n.Pos})

	c.loopStack = append(c.loopStack, loopFrame{label: n.Label, header: header, exit: exit, incr: -1})
	c.setCurrent(body)
	c.lowerStmt(n.Body)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})
	}
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.setCurrent(header)
	cond := c.lowerExpr(n.Cond)
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: body, ElseTgt: exit, Pos: n.Pos})

	c.setCurrent(exit)
}

// lowerFor implements the integer-range specialization of §4.3.3: a range
// literal iterable becomes a counting loop with an int-typed loop variable
// and an increment block that `continue` targets. Any other iterable falls
// back to the generic Iterable protocol (iterator()/hasNext()/next()).
func (c *funcCtx) lowerFor(n *ast.ForStmt) {
	rangeLit, isRange := n.Iterable.(*ast.RangeExpr)
	if !isRange {
		c.lowerGenericFor(n)
		return
	}

	from := c.lowerExpr(rangeLit.From)
	to := c.lowerExpr(rangeLit.To)
	loopVar := c.declareLocal(n.VarName, mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.Move, Dest: loopVar.Index, Operands: []int{from}, Pos: n.Pos})

	header := c.newBlock()
	body := c.newBlock()
	incr := c.newBlock()
	exit := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(header)
	cmpKind := mir.OpLe
	if !rangeLit.Inclusive {
		cmpKind = mir.OpLt
	}
	cond := c.newTemp(mir.Type{Tag: mir.TBoolean})
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: cond.Index, Operands: []int{loopVar.Index, to}, Imm: cmpKind, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond.Index, ThenTgt: body, ElseTgt: exit, Pos: n.Pos})

	c.loopStack = append(c.loopStack, loopFrame{label: n.Label, header: incr, exit: exit, incr: incr})
	c.setCurrent(body)
	c.lowerStmt(n.Body)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: incr, Pos: n.Pos})
	}
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.setCurrent(incr)
	one := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: one.Index, Imm: int64(1), Pos: n.Pos})
	next := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: next.Index, Operands: []int{loopVar.Index, one.Index}, Imm: mir.OpAdd, Pos: n.Pos})
	c.emit(&mir.Inst{Op: mir.Move, Dest: loopVar.Index, Operands: []int{next.Index}, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(exit)
}

// lowerGenericFor lowers `for (x in iterable)` via the Iterable protocol:
// iterator(), then a header testing hasNext(), body binding x := next().
// Destructuring `for ((k,v) in ...)` additionally calls componentN(i) on
// each iteration's element.
func (c *funcCtx) lowerGenericFor(n *ast.ForStmt) {
	iterable := c.lowerExpr(n.Iterable)
	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}
	iter := c.newTemp(objType)
	c.emit(&mir.Inst{Op: mir.InvokeInterface, Dest: iter.Index, Operands: []int{iterable}, Imm: callImm{name: "iterator"}, Pos: n.Pos})

	header := c.newBlock()
	body := c.newBlock()
	exit := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(header)
	hasNext := c.newTemp(mir.Type{Tag: mir.TBoolean})
	c.emit(&mir.Inst{Op: mir.InvokeInterface, Dest: hasNext.Index, Operands: []int{iter.Index}, Imm: callImm{name: "hasNext"}, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: hasNext.Index, ThenTgt: body, ElseTgt: exit, Pos: n.Pos})

	c.loopStack = append(c.loopStack, loopFrame{label: n.Label, header: header, exit: exit, incr: -1})
	c.setCurrent(body)
	element := c.declareLocal(n.VarName, objType)
	if len(n.Destructure) > 0 {
		element.Name = "$element"
	}
	c.emit(&mir.Inst{Op: mir.InvokeInterface, Dest: element.Index, Operands: []int{iter.Index}, Imm: callImm{name: "next"}, Pos: n.Pos})
	for i, name := range n.Destructure {
		comp := c.declareLocal(name, objType)
		c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: comp.Index, Operands: []int{element.Index}, Imm: callImm{name: "component" + strconv.Itoa(i+1)}, Pos: n.Pos})
	}
	c.lowerStmt(n.Body)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})
	}
	c.loopStack = c.loopStack[:len(c.loopStack)-1]

	c.setCurrent(exit)
}

// lowerReturn implements the normal-path half of §4.3.4's dual finally
// strategy: every enclosing finally is inlined, innermost first, before
// the Return/ReturnVoid terminator is emitted.
func (c *funcCtx) lowerReturn(n *ast.ReturnStmt) {
	var value int = -1
	if n.Value != nil {
		value = c.lowerExpr(n.Value)
	}
	frames := c.tryStack
	for i := len(frames) - 1; i >= 0; i-- {
		c.tryStack = frames[:i]
		frames[i].inline(c)
	}
	c.tryStack = frames
	if value == -1 {
		c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid, Pos: n.Pos})
		return
	}
	c.terminate(&mir.Terminator{Kind: mir.TermReturn, Value: value, Pos: n.Pos})
}

// lowerBreak/lowerContinue resolve against the loop-context stack; a
// labeled jump uses the first matching frame walking from innermost.
func (c *funcCtx) lowerBreak(n *ast.BreakStmt) {
	frame, ok := c.findLoop(n.Label)
	if !ok {
		c.sink.WarnAt(errors.MIR001, "break outside any loop", n.Pos)
		return
	}
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: frame.exit, Pos: n.Pos})
}

func (c *funcCtx) lowerContinue(n *ast.ContinueStmt) {
	frame, ok := c.findLoop(n.Label)
	if !ok {
		c.sink.WarnAt(errors.MIR001, "continue outside any loop", n.Pos)
		return
	}
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: frame.header, Pos: n.Pos})
}

func (c *funcCtx) findLoop(label string) (loopFrame, bool) {
	if label == "" {
		if len(c.loopStack) == 0 {
			return loopFrame{}, false
		}
		return c.loopStack[len(c.loopStack)-1], true
	}
	for i := len(c.loopStack) - 1; i >= 0; i-- {
		if c.loopStack[i].label == label {
			return c.loopStack[i], true
		}
	}
	return loopFrame{}, false
}

func (c *funcCtx) lowerThrow(n *ast.ThrowStmt) {
	value := c.lowerExpr(n.Value)
	c.terminate(&mir.Terminator{Kind: mir.TermThrow, Value: value, Pos: n.Pos})
}
