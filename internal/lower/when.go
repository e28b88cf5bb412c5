package lower

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/source"
)

// whenSwitchKey extracts a Switch key from one `when`-case value: an
// int/string literal, or a bare identifier treated as an enum-entry name
// (§4.3.3).
func whenSwitchKey(v ast.Expr) (any, bool) {
	switch e := v.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.IntLit, ast.StringLit:
			return e.Value, true
		}
		return nil, false
	case *ast.IdentExpr:
		return e.Name, true
	default:
		return nil, false
	}
}

// tryWhenSwitchKeys attempts the §4.3.3 switch-optimization precondition:
// every case is `subject == V1, V2, ... -> body` with no guard condition,
// each V an int/string literal or enum-entry name. Returns the flattened
// (key, body) pairs, succeeding only once at least 2 distinct keys are
// collected.
func tryWhenSwitchKeys(cases []*ast.WhenCase) ([]any, []ast.Node, bool) {
	var keys []any
	var bodies []ast.Node
	distinct := map[any]bool{}
	for _, cs := range cases {
		if cs.Condition != nil || len(cs.Values) == 0 {
			return nil, nil, false
		}
		for _, v := range cs.Values {
			key, ok := whenSwitchKey(v)
			if !ok {
				return nil, nil, false
			}
			keys = append(keys, key)
			bodies = append(bodies, cs.Body)
			distinct[key] = true
		}
	}
	if len(distinct) < 2 {
		return nil, nil, false
	}
	return keys, bodies, true
}

// whenCaseCond lowers one nested-if fallback case's test: a guard
// condition if declared, else `subject == V1 || subject == V2 || ...`.
func (c *funcCtx) whenCaseCond(subject ast.Expr, cs *ast.WhenCase) int {
	if cs.Condition != nil {
		return c.lowerExpr(cs.Condition)
	}
	subj := c.lowerExpr(subject)
	acc := -1
	for _, v := range cs.Values {
		val := c.lowerExpr(v)
		eq := c.newTemp(mir.Type{Tag: mir.TBoolean})
		c.emit(&mir.Inst{Op: mir.BinOp, Dest: eq.Index, Operands: []int{subj, val}, Imm: mir.OpEq, Pos: cs.Pos})
		if acc == -1 {
			acc = eq.Index
			continue
		}
		or := c.newTemp(mir.Type{Tag: mir.TBoolean})
		c.emit(&mir.Inst{Op: mir.BinOp, Dest: or.Index, Operands: []int{acc, eq.Index}, Imm: mir.OpOr, Pos: cs.Pos})
		acc = or.Index
	}
	return acc
}

// lowerWhenStmt implements §4.3.3 for a `when` used as a statement:
// attempt the Switch optimization first, falling back to a cascading-if
// chain.
func (c *funcCtx) lowerWhenStmt(n *ast.WhenStmt) {
	if keys, bodies, ok := tryWhenSwitchKeys(n.Cases); ok {
		c.emitWhenStmtSwitch(n, keys, bodies)
		return
	}
	c.lowerWhenStmtChain(n.Subject, n.Cases, n.ElseBody, n.Pos, 0)
}

// emitWhenStmtSwitch builds one Switch terminator, deduplicating case
// blocks by reference identity of the case body (so `1, 2 -> body` share
// a block, per §8's round-trip law).
func (c *funcCtx) emitWhenStmtSwitch(n *ast.WhenStmt, keys []any, bodies []ast.Node) {
	subject := c.lowerExpr(n.Subject)
	blockFor := make(map[ast.Node]int)
	var order []ast.Node
	for _, b := range bodies {
		if _, ok := blockFor[b]; !ok {
			blockFor[b] = c.newBlock()
			order = append(order, b)
		}
	}
	mergeID := c.newBlock()
	defaultID := c.newBlock()

	cases := make([]mir.SwitchCase, len(keys))
	for i, k := range keys {
		cases[i] = mir.SwitchCase{Key: k, Target: blockFor[bodies[i]]}
	}
	c.terminate(&mir.Terminator{Kind: mir.TermSwitch, Subject: subject, Cases: cases, Default: defaultID, Pos: n.Pos})

	for _, b := range order {
		c.setCurrent(blockFor[b])
		c.lowerStmt(b.(ast.Stmt))
		if c.blocks[c.current].Term == nil {
			c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})
		}
	}

	c.setCurrent(defaultID)
	if n.ElseBody != nil {
		c.lowerStmt(n.ElseBody)
	}
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})
	}

	c.setCurrent(mergeID)
}

// lowerWhenStmtChain is the nested-if fallback: case idx's test branches
// to its body or recurses into case idx+1, mirroring lowerIfStmt's
// block-allocation idiom one case at a time.
func (c *funcCtx) lowerWhenStmtChain(subject ast.Expr, cases []*ast.WhenCase, elseBody ast.Stmt, pos source.Pos, idx int) {
	if idx >= len(cases) {
		if elseBody != nil {
			c.lowerStmt(elseBody)
		}
		return
	}
	cs := cases[idx]
	cond := c.whenCaseCond(subject, cs)
	thenID := c.newBlock()
	elseID := c.newBlock()
	mergeID := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: thenID, ElseTgt: elseID, Pos: cs.Pos})

	c.setCurrent(thenID)
	c.lowerStmt(cs.Body.(ast.Stmt))
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: cs.Pos})
	}

	c.setCurrent(elseID)
	c.lowerWhenStmtChain(subject, cases, elseBody, pos, idx+1)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: cs.Pos})
	}

	c.setCurrent(mergeID)
}

// lowerWhenExpr is WhenStmt's value-producing sibling: same switch-vs-
// chain strategy, writing each arm's value into one shared result local.
func (c *funcCtx) lowerWhenExpr(n *ast.WhenExpr) int {
	if keys, bodies, ok := tryWhenSwitchKeys(n.Cases); ok {
		return c.emitWhenExprSwitch(n, keys, bodies)
	}
	result := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.lowerWhenExprChain(result.Index, n.Subject, n.Cases, n.ElseBody, n.Pos, 0)
	return result.Index
}

func (c *funcCtx) emitWhenExprSwitch(n *ast.WhenExpr, keys []any, bodies []ast.Node) int {
	subject := c.lowerExpr(n.Subject)
	result := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	blockFor := make(map[ast.Node]int)
	var order []ast.Node
	for _, b := range bodies {
		if _, ok := blockFor[b]; !ok {
			blockFor[b] = c.newBlock()
			order = append(order, b)
		}
	}
	mergeID := c.newBlock()
	defaultID := c.newBlock()

	cases := make([]mir.SwitchCase, len(keys))
	for i, k := range keys {
		cases[i] = mir.SwitchCase{Key: k, Target: blockFor[bodies[i]]}
	}
	c.terminate(&mir.Terminator{Kind: mir.TermSwitch, Subject: subject, Cases: cases, Default: defaultID, Pos: n.Pos})

	for _, b := range order {
		c.setCurrent(blockFor[b])
		val := c.lowerExpr(b.(ast.Expr))
		c.emit(&mir.Inst{Op: mir.Move, Dest: result.Index, Operands: []int{val}, Pos: n.Pos})
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})
	}

	c.setCurrent(defaultID)
	if n.ElseBody != nil {
		val := c.lowerExpr(n.ElseBody)
		c.emit(&mir.Inst{Op: mir.Move, Dest: result.Index, Operands: []int{val}, Pos: n.Pos})
	} else {
		c.emit(&mir.Inst{Op: mir.ConstNull, Dest: result.Index, Pos: n.Pos})
	}
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})

	c.setCurrent(mergeID)
	return result.Index
}

func (c *funcCtx) lowerWhenExprChain(result int, subject ast.Expr, cases []*ast.WhenCase, elseBody ast.Expr, pos source.Pos, idx int) {
	if idx >= len(cases) {
		if elseBody != nil {
			val := c.lowerExpr(elseBody)
			c.emit(&mir.Inst{Op: mir.Move, Dest: result, Operands: []int{val}, Pos: pos})
		} else {
			c.emit(&mir.Inst{Op: mir.ConstNull, Dest: result, Pos: pos})
		}
		return
	}
	cs := cases[idx]
	cond := c.whenCaseCond(subject, cs)
	thenID := c.newBlock()
	elseID := c.newBlock()
	mergeID := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: thenID, ElseTgt: elseID, Pos: cs.Pos})

	c.setCurrent(thenID)
	val := c.lowerExpr(cs.Body.(ast.Expr))
	c.emit(&mir.Inst{Op: mir.Move, Dest: result, Operands: []int{val}, Pos: cs.Pos})
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: cs.Pos})
	}

	c.setCurrent(elseID)
	c.lowerWhenExprChain(result, subject, cases, elseBody, pos, idx+1)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: cs.Pos})
	}

	c.setCurrent(mergeID)
}
