package lower

import (
	"github.com/novalang/novalang/internal/hir"
	"github.com/novalang/novalang/internal/mir"
)

// lowerPrimaryCtor implements §4.3.2 steps 1-4: `this` at index 0,
// parameter-backed-field stores at the head of bodyStartBlockId, the
// merged instanceInitializers list spliced immediately after, then the
// superclass constructor argument locals recorded for the backend.
func lowerPrimaryCtor(c *funcCtx, class *hir.Class) *mir.Function {
	c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})

	var params []*hir.Param
	if class.PrimaryCtor != nil {
		params = class.PrimaryCtor.Params
	}
	paramLocals := make([]*mir.Local, len(params))
	for i, p := range params {
		paramLocals[i] = c.declareLocal(p.Name, mir.Erase(p.Type))
		c.fn.Params = append(c.fn.Params, paramLocals[i].Type)
	}

	entry := c.newBlock()
	c.setCurrent(entry)
	emitDefaultParamPrologue(c, params, paramLocals)
	c.fn.BodyStartBlockID = c.current

	this := c.fn.ThisLocal()
	for i, p := range params {
		if !p.IsField {
			continue
		}
		c.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, paramLocals[i].Index}, Imm: p.Name, Pos: p.Pos})
	}

	for _, init := range class.InstanceInitializers {
		switch in := init.(type) {
		case hir.FieldInit:
			val := c.lowerExpr(in.Initializer)
			c.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, val}, Imm: in.FieldName, Pos: in.Pos})
		case hir.InitBlockRun:
			c.lowerStmt(in.Body)
		}
	}

	if class.SuperClassName != "" && len(class.SuperCtorArgs) > 0 {
		args := make([]int, len(class.SuperCtorArgs))
		for i, a := range class.SuperCtorArgs {
			args[i] = c.lowerExpr(a)
		}
		c.fn.SuperInitArgLocals = args
		c.fn.SuperClassName = class.SuperClassName
	}

	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
	}
	c.fn.ReturnType = mir.Type{Tag: mir.TVoid}
	c.finish()
	return c.fn
}

// lowerSecondaryCtor implements §4.3.2 steps 1-3 minus delegation-chain
// inlining: the delegation block is always kept and its argument locals
// recorded in DelegationArgLocals, matching the "if any step fails, keep
// the delegation block" fallback of §4.3.2 step 4 — resolving the static
// sibling-constructor chain for literal/identifier-only delegations is
// left to a future pass (see DESIGN.md).
func lowerSecondaryCtor(c *funcCtx, class *hir.Class, sc *hir.SecondaryCtor) *mir.Function {
	c.declareLocal("this", mir.Type{Tag: mir.TObject, ClassName: class.Name})
	paramLocals := make([]*mir.Local, len(sc.Params))
	for i, p := range sc.Params {
		paramLocals[i] = c.declareLocal(p.Name, mir.Erase(p.Type))
		c.fn.Params = append(c.fn.Params, paramLocals[i].Type)
	}

	bodyEntry := c.newBlock()
	c.setCurrent(bodyEntry)
	emitDefaultParamPrologue(c, sc.Params, paramLocals)
	c.fn.BodyStartBlockID = c.current
	if sc.Body != nil {
		c.lowerStmt(sc.Body)
	}
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermReturnVoid})
	}

	if sc.Delegation != nil {
		delegationBlock := c.newBlock()
		saved := c.current
		c.setCurrent(delegationBlock)
		args := make([]int, len(sc.Delegation.Args))
		for i, a := range sc.Delegation.Args {
			args[i] = c.lowerExpr(a)
		}
		c.fn.DelegationArgLocals = args
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: bodyEntry})
		c.setCurrent(saved)

		// Move the delegation block to position 0 of the block list
		// (§4.3.2 step 2.3).
		c.blocks = append([]*mir.BasicBlock{c.blocks[delegationBlock]}, append(c.blocks[:delegationBlock], c.blocks[delegationBlock+1:]...)...)
		oldToNew := renumberBlocks(c.blocks)
		c.fn.BodyStartBlockID = oldToNew[c.fn.BodyStartBlockID]
	}

	c.fn.ReturnType = mir.Type{Tag: mir.TVoid}
	c.finish()
	return c.fn
}

// renumberBlocks reassigns dense IDs and fixes up every terminator
// reference after a block reordering, returning the old-ID-to-new-ID map
// so the caller can remap any block ID it was holding on the side (e.g.
// BodyStartBlockID).
func renumberBlocks(blocks []*mir.BasicBlock) map[int]int {
	oldToNew := make(map[int]int, len(blocks))
	for newID, b := range blocks {
		oldToNew[b.ID] = newID
	}
	for newID, b := range blocks {
		b.ID = newID
		if b.Term == nil {
			continue
		}
		switch b.Term.Kind {
		case mir.TermGoto:
			b.Term.Target = oldToNew[b.Term.Target]
		case mir.TermBranch:
			b.Term.ThenTgt = oldToNew[b.Term.ThenTgt]
			b.Term.ElseTgt = oldToNew[b.Term.ElseTgt]
		case mir.TermSwitch:
			b.Term.Default = oldToNew[b.Term.Default]
			for i := range b.Term.Cases {
				b.Term.Cases[i].Target = oldToNew[b.Term.Cases[i].Target]
			}
		}
	}
	return oldToNew
}
