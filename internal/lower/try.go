package lower

import (
	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/mir"
)

// lowerTry implements §4.3.4's dual finally strategy: the finally body is
// inlined along every normal-completion path (try body, each catch body,
// and every `return` that unwinds through this try via the finallyStack),
// and additionally guarded by a catch-all TryCatchEntry along exceptional
// paths so a throw inside the try or a catch body still runs it exactly
// once before rethrowing.
func (c *funcCtx) lowerTry(n *ast.TryStmt) {
	tryStart := c.newBlock()
	merge := c.newBlock()

	continuation := merge
	if n.Finally != nil {
		continuation = c.newBlock()
	}

	if n.Finally != nil {
		frame := tryFrame{inline: func(c *funcCtx) { c.lowerFinallyBody(n.Finally) }}
		c.tryStack = append(c.tryStack, frame)
	}

	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: tryStart, Pos: n.Pos})
	c.setCurrent(tryStart)
	c.lowerStmt(n.Body)
	if c.blocks[c.current].Term == nil {
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: continuation, Pos: n.Pos})
	}
	tryEnd := c.current

	handlers := make([]int, len(n.Catches))
	for i, catch := range n.Catches {
		handler := c.newBlock()
		handlers[i] = handler
		c.setCurrent(handler)

		excType := "java/lang/Throwable"
		if catch.Type != nil {
			excType = catch.Type.String()
		}
		excLocal := c.declareLocal("$catch$"+catch.Name, mir.Type{Tag: mir.TObject, ClassName: excType})

		c.fn.TryCatchEntries = append(c.fn.TryCatchEntries, &mir.TryCatchEntry{
			StartBlock:     tryStart,
			EndBlock:       tryEnd,
			Handler:        handler,
			ExceptionType:  excType,
			ExceptionLocal: excLocal.Index,
		})

		c.lowerStmt(catch.Body)
		if c.blocks[c.current].Term == nil {
			c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: continuation, Pos: catch.Pos})
		}
	}

	if n.Finally != nil {
		c.tryStack = c.tryStack[:len(c.tryStack)-1]

		finallyHandler := c.newBlock()
		c.setCurrent(finallyHandler)
		excLocal := c.declareLocal("$finally$exc", mir.Type{Tag: mir.TObject, ClassName: "java/lang/Throwable"})
		c.lowerFinallyBody(n.Finally)
		c.terminate(&mir.Terminator{Kind: mir.TermThrow, Value: excLocal.Index, Pos: n.Pos})

		c.fn.TryCatchEntries = append(c.fn.TryCatchEntries, &mir.TryCatchEntry{
			StartBlock:     tryStart,
			EndBlock:       tryEnd,
			Handler:        finallyHandler,
			ExceptionType:  "",
			ExceptionLocal: excLocal.Index,
		})
		if len(handlers) > 0 {
			c.fn.TryCatchEntries = append(c.fn.TryCatchEntries, &mir.TryCatchEntry{
				StartBlock:     handlers[0],
				EndBlock:       finallyHandler,
				Handler:        finallyHandler,
				ExceptionType:  "",
				ExceptionLocal: excLocal.Index,
			})
		}

		c.setCurrent(continuation)
		c.lowerFinallyBody(n.Finally)
		c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: merge, Pos: n.Pos})
	}

	c.setCurrent(merge)
}

// lowerFinallyBody inlines the finally block's statements at the current
// cursor without pushing a finally frame of its own. lowerReturn takes each
// frame off tryStack while inlining it, so a return inside the finally body
// does not inline that same finally again.
func (c *funcCtx) lowerFinallyBody(finally *ast.BlockStmt) {
	c.pushScope()
	for _, stmt := range finally.Stmts {
		c.lowerStmt(stmt)
	}
	c.popScope()
}
