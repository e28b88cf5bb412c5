package lower

import (
	"strconv"

	"github.com/novalang/novalang/internal/ast"
	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/source"
)

// lowerExpr lowers e into zero or more instructions appended to the
// current block, returning the local index holding its value.
func (c *funcCtx) lowerExpr(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.Literal:
		return c.lowerLiteral(n)
	case *ast.IdentExpr:
		return c.lowerIdent(n)
	case *ast.BinaryExpr:
		return c.lowerBinary(n)
	case *ast.UnaryExpr:
		return c.lowerUnary(n)
	case *ast.MemberExpr:
		return c.lowerMember(n)
	case *ast.AssignExpr:
		return c.lowerAssign(n)
	case *ast.CallExpr:
		return c.lowerCall(n)
	case *ast.IfExpr:
		return c.lowerIfExpr(n)
	case *ast.WhenExpr:
		return c.lowerWhenExpr(n)
	case *ast.LambdaExpr:
		return c.lowerLambda(n)
	default:
		c.sink.WarnAt(errors.MIR001, "unsupported expression form, falling back to null", e.Position())
		t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
		c.emit(&mir.Inst{Op: mir.ConstNull, Dest: t.Index, Pos: e.Position()})
		return t.Index
	}
}

func (c *funcCtx) lowerLiteral(n *ast.Literal) int {
	switch n.Kind {
	case ast.IntLit:
		t := c.newTemp(mir.Type{Tag: mir.TInt})
		c.emit(&mir.Inst{Op: mir.ConstInt, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.LongLit:
		t := c.newTemp(mir.Type{Tag: mir.TLong})
		c.emit(&mir.Inst{Op: mir.ConstLong, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.FloatLit:
		t := c.newTemp(mir.Type{Tag: mir.TFloat})
		c.emit(&mir.Inst{Op: mir.ConstFloat, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.DoubleLit:
		t := c.newTemp(mir.Type{Tag: mir.TDouble})
		c.emit(&mir.Inst{Op: mir.ConstDouble, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.CharLit:
		t := c.newTemp(mir.Type{Tag: mir.TChar})
		c.emit(&mir.Inst{Op: mir.ConstChar, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.StringLit:
		t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/String"})
		c.emit(&mir.Inst{Op: mir.ConstString, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	case ast.BoolLit:
		t := c.newTemp(mir.Type{Tag: mir.TBoolean})
		c.emit(&mir.Inst{Op: mir.ConstBool, Dest: t.Index, Imm: n.Value, Pos: n.Pos})
		return t.Index
	default: // NullLit
		t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
		c.emit(&mir.Inst{Op: mir.ConstNull, Dest: t.Index, Pos: n.Pos})
		return t.Index
	}
}

func (c *funcCtx) lowerIdent(n *ast.IdentExpr) int {
	if box, ok := c.mutableCaptureBoxes[n.Name]; ok {
		return c.loadBox(box, n.Pos)
	}
	if idx, ok := c.lookupLocal(n.Name); ok {
		return idx
	}
	if this := c.fn.ThisLocal(); this != nil && c.types.HasField(this.Type.ClassName, n.Name) {
		t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
		c.emit(&mir.Inst{Op: mir.GetField, Dest: t.Index, Operands: []int{this.Index}, Imm: n.Name, Pos: n.Pos})
		return t.Index
	}
	// Unqualified static field of a known class, e.g. a companion constant.
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.emit(&mir.Inst{Op: mir.GetStatic, Dest: t.Index, Imm: n.Name, Pos: n.Pos})
	return t.Index
}

var binOpKinds = map[string]mir.BinOpKind{
	"+": mir.OpAdd, "-": mir.OpSub, "*": mir.OpMul, "/": mir.OpDiv, "%": mir.OpRem,
	"==": mir.OpEq, "!=": mir.OpNeq, "<": mir.OpLt, "<=": mir.OpLe, ">": mir.OpGt, ">=": mir.OpGe,
	"&&": mir.OpAnd, "||": mir.OpOr,
}

// operatorMethodNames maps a native arithmetic operator to the method
// name §4.3.11 dispatches to when the left operand's class declares it.
var operatorMethodNames = map[string]string{
	"+": "plus", "-": "minus", "*": "times", "/": "div", "%": "rem",
}

// comparisonOps maps a relational operator to the BinOp it reduces to
// after a `compareTo` dispatch (§4.3.11).
var comparisonOps = map[string]mir.BinOpKind{
	"<": mir.OpLt, "<=": mir.OpLe, ">": mir.OpGt, ">=": mir.OpGe,
}

// operatorMethodDescriptor reports whether class (or an ancestor) declares
// method, without the ResolveDescriptor DSC001 fallback-warning behavior:
// "does this class implement an operator method" must be a clean yes/no.
func (c *funcCtx) operatorMethodDescriptor(className, method string) (string, bool) {
	if className == "" {
		return "", false
	}
	if ci, ok := c.types.Lookup(className); ok {
		if d, ok := ci.Methods[method]; ok {
			return d, true
		}
	}
	return c.types.AncestorDescriptor(className, method)
}

func (c *funcCtx) lowerBinary(n *ast.BinaryExpr) int {
	l := c.lowerExpr(n.Left)
	leftType := c.fn.Locals[l].Type

	if leftType.Tag == mir.TObject {
		if method, ok := operatorMethodNames[n.Op]; ok {
			if desc, ok := c.operatorMethodDescriptor(leftType.ClassName, method); ok {
				r := c.lowerExpr(n.Right)
				t := c.newTemp(leftType)
				c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: t.Index, Operands: []int{l, r}, Imm: callImm{name: method, descriptor: desc}, Pos: n.Pos})
				return t.Index
			}
		}
		if cmpKind, ok := comparisonOps[n.Op]; ok {
			if desc, ok := c.operatorMethodDescriptor(leftType.ClassName, "compareTo"); ok {
				r := c.lowerExpr(n.Right)
				cmp := c.newTemp(mir.Type{Tag: mir.TInt})
				c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: cmp.Index, Operands: []int{l, r}, Imm: callImm{name: "compareTo", descriptor: desc}, Pos: n.Pos})
				zero := c.newTemp(mir.Type{Tag: mir.TInt})
				c.emit(&mir.Inst{Op: mir.ConstInt, Dest: zero.Index, Imm: int64(0), Pos: n.Pos})
				t := c.newTemp(mir.Type{Tag: mir.TBoolean})
				c.emit(&mir.Inst{Op: mir.BinOp, Dest: t.Index, Operands: []int{cmp.Index, zero.Index}, Imm: cmpKind, Pos: n.Pos})
				return t.Index
			}
		}
	}

	r := c.lowerExpr(n.Right)
	kind, ok := binOpKinds[n.Op]
	if !ok {
		c.sink.WarnAt(errors.MIR001, "unknown binary operator "+n.Op, n.Pos)
		kind = mir.OpEq
	}
	resultType := mir.Type{Tag: mir.TBoolean}
	switch kind {
	case mir.OpAdd, mir.OpSub, mir.OpMul, mir.OpDiv, mir.OpRem:
		resultType = leftType
	}
	t := c.newTemp(resultType)
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: t.Index, Operands: []int{l, r}, Imm: kind, Pos: n.Pos})
	return t.Index
}

var unaryOpKinds = map[string]mir.UnaryOpKind{
	"-": mir.OpNeg, "!": mir.OpNot, "~": mir.OpBitNot,
}

func (c *funcCtx) lowerUnary(n *ast.UnaryExpr) int {
	operand := c.lowerExpr(n.Operand)
	if kind, ok := unaryOpKinds[n.Op]; ok {
		t := c.newTemp(c.fn.Locals[operand].Type)
		c.emit(&mir.Inst{Op: mir.UnaryOp, Dest: t.Index, Operands: []int{operand}, Imm: kind, Pos: n.Pos})
		return t.Index
	}
	// ++ / -- : desugar to operand = operand + 1, returning the new value.
	// Prefix/postfix distinction is a backend concern once values are
	// reused at call sites; this lowering always yields the updated value.
	one := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: one.Index, Imm: int64(1), Pos: n.Pos})
	kind := mir.OpAdd
	if n.Op == "--" {
		kind = mir.OpSub
	}
	t := c.newTemp(c.fn.Locals[operand].Type)
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: t.Index, Operands: []int{operand, one.Index}, Imm: kind, Pos: n.Pos})
	if ident, ok := n.Operand.(*ast.IdentExpr); ok {
		if idx, ok := c.lookupLocal(ident.Name); ok {
			c.emit(&mir.Inst{Op: mir.Move, Dest: idx, Operands: []int{t.Index}, Pos: n.Pos})
		}
	}
	return t.Index
}

func (c *funcCtx) lowerMember(n *ast.MemberExpr) int {
	recv := c.lowerExpr(n.Receiver)
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.emit(&mir.Inst{Op: mir.GetField, Dest: t.Index, Operands: []int{recv}, Imm: n.Name, Pos: n.Pos})
	return t.Index
}

func (c *funcCtx) lowerAssign(n *ast.AssignExpr) int {
	value := c.lowerExpr(n.Value)
	if n.Op != "=" {
		// Compound assignment `target op= value` desugars to
		// `target = target op value` before storing.
		current := c.lowerExpr(n.Target)
		op := n.Op[:len(n.Op)-1]
		kind, ok := binOpKinds[op]
		if !ok {
			kind = mir.OpAdd
		}
		t := c.newTemp(c.fn.Locals[current].Type)
		c.emit(&mir.Inst{Op: mir.BinOp, Dest: t.Index, Operands: []int{current, value}, Imm: kind, Pos: n.Pos})
		value = t.Index
	}
	switch target := n.Target.(type) {
	case *ast.IdentExpr:
		if box, ok := c.mutableCaptureBoxes[target.Name]; ok {
			c.storeBox(box, value, n.Pos)
			return value
		}
		if idx, ok := c.lookupLocal(target.Name); ok {
			c.emit(&mir.Inst{Op: mir.Move, Dest: idx, Operands: []int{value}, Pos: n.Pos})
			return idx
		}
		if this := c.fn.ThisLocal(); this != nil {
			c.emit(&mir.Inst{Op: mir.SetField, Operands: []int{this.Index, value}, Imm: target.Name, Pos: n.Pos})
			return value
		}
	case *ast.MemberExpr:
		recv := c.lowerExpr(target.Receiver)
		c.emit(&mir.Inst{Op: mir.SetField, Operands: []int{recv, value}, Imm: target.Name, Pos: n.Pos})
		return value
	case *ast.IndexExpr:
		recv := c.lowerExpr(target.Receiver)
		operands := []int{recv}
		for _, a := range target.Args {
			operands = append(operands, c.lowerExpr(a))
		}
		operands = append(operands, value)
		c.emit(&mir.Inst{Op: mir.IndexSet, Operands: operands, Pos: n.Pos})
		return value
	}
	c.sink.WarnAt(errors.MIR001, "unsupported assignment target", n.Pos)
	return value
}

// lowerCall implements the §4.3.7 priority chain: receiver-lambda builder
// sugar and partial application intercept before any argument is lowered
// (level 1's `_` holes aren't lowerable expressions); then print/println
// routing, `Array(n[, init])` allocation (level 9), unqualified calls to
// known top-level functions, receiver-lambda implicit-receiver dispatch,
// data-class `copy` rewriting and ordinary method calls through a
// resolved receiver type (level 12), and the final `$PipeCall` fallback
// (level 14) for anything else, reported as MIR005.
func (c *funcCtx) lowerCall(n *ast.CallExpr) int {
	if entry, ok := receiverLambdaEntries[calleeName(n.Callee)]; ok && n.TrailingLambda != nil {
		return c.lowerReceiverLambda(entry, n.TrailingLambda, n.Pos)
	}
	if hasPlaceholder(n.Args) {
		return c.lowerPartialApplication(n)
	}

	args := make([]int, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, c.lowerExpr(a.Value))
	}

	if ident, ok := n.Callee.(*ast.IdentExpr); ok {
		switch {
		case (ident.Name == "print" || ident.Name == "println") && !c.opts.InterpreterMode:
			t := c.newTemp(mir.Type{Tag: mir.TVoid})
			c.emit(&mir.Inst{Op: mir.InvokeStatic, Dest: t.Index, Operands: args, Imm: callImm{name: "$stdout$" + ident.Name}, Pos: n.Pos})
			return t.Index
		case ident.Name == "Array" && len(n.Args) >= 1 && len(n.Args) <= 2:
			return c.lowerArrayConstructor(n, args)
		}
		if desc, ok := c.staticFunctions[ident.Name]; ok {
			t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
			c.emit(&mir.Inst{Op: mir.InvokeStatic, Dest: t.Index, Operands: args, Imm: callImm{name: ident.Name, descriptor: desc}, Pos: n.Pos})
			return t.Index
		}
		if c.receiverLambdaRecv != -1 {
			recvType := c.fn.Locals[c.receiverLambdaRecv].Type
			desc := c.types.ResolveDescriptor(recvType.ClassName, ident.Name, len(args), c.sink)
			t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
			operands := append([]int{c.receiverLambdaRecv}, args...)
			c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: t.Index, Operands: operands, Imm: callImm{name: ident.Name, descriptor: desc}, Pos: n.Pos})
			return t.Index
		}
	}

	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		recv := c.lowerExpr(member.Receiver)
		recvType := c.fn.Locals[recv].Type
		if member.Name == "copy" {
			if ci, ok := c.types.Lookup(recvType.ClassName); ok && ci.IsData {
				return c.lowerDataClassCopy(n, args, recv, recvType.ClassName)
			}
		}
		desc := c.types.ResolveDescriptor(recvType.ClassName, member.Name, len(args), c.sink)
		t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
		operands := append([]int{recv}, args...)
		op := mir.InvokeVirtual
		if ci, ok := c.types.Lookup(recvType.ClassName); ok && ci.IsInterface {
			op = mir.InvokeInterface
		}
		c.emit(&mir.Inst{Op: op, Dest: t.Index, Operands: operands, Imm: callImm{name: member.Name, descriptor: desc}, Pos: n.Pos})
		return t.Index
	}

	c.sink.WarnAt(errors.MIR005, "call site fell through to $PipeCall", n.Pos)
	callee := c.lowerExpr(n.Callee)
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	operands := append([]int{callee}, args...)
	c.emit(&mir.Inst{Op: mir.InvokeStatic, Dest: t.Index, Operands: operands, Imm: callImm{name: "$PipeCall"}, Pos: n.Pos})
	return t.Index
}

func calleeName(e ast.Expr) string {
	if ident, ok := e.(*ast.IdentExpr); ok {
		return ident.Name
	}
	return ""
}

// hasPlaceholder reports whether any argument is the `_` partial-
// application hole (§4.3.7 level 1).
func hasPlaceholder(args []*ast.Argument) bool {
	for _, a := range args {
		if _, ok := a.Value.(*ast.PlaceholderExpr); ok {
			return true
		}
	}
	return false
}

// lowerPartialApplication desugars a call with one or more `_` arguments
// into a lambda over fresh parameters plugged into the placeholder
// positions, then lowers it like any other closure (§4.3.6).
func (c *funcCtx) lowerPartialApplication(n *ast.CallExpr) int {
	newArgs := make([]*ast.Argument, len(n.Args))
	var params []*ast.Param
	for i, a := range n.Args {
		if _, ok := a.Value.(*ast.PlaceholderExpr); ok {
			name := "$partial" + strconv.Itoa(len(params))
			params = append(params, &ast.Param{Name: name, Pos: a.Pos})
			newArgs[i] = &ast.Argument{Name: a.Name, Value: &ast.IdentExpr{Name: name, Pos: a.Pos}, Pos: a.Pos}
			continue
		}
		newArgs[i] = a
	}
	inner := &ast.CallExpr{Callee: n.Callee, Args: newArgs, TypeArgs: n.TypeArgs, TrailingLambda: n.TrailingLambda, Safe: n.Safe, Pos: n.Pos}
	return c.lowerLambda(&ast.LambdaExpr{Params: params, Body: inner, Pos: n.Pos})
}

// lowerArrayConstructor implements §4.3.7 level 9: `Array(n)` allocates n
// null slots; `Array(n, init)` additionally fills each slot, invoking init
// per index when it is a lambda, or storing its single value otherwise.
func (c *funcCtx) lowerArrayConstructor(n *ast.CallExpr, args []int) int {
	length := args[0]
	arr := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "[Ljava/lang/Object;"})
	c.emit(&mir.Inst{Op: mir.NewArray, Dest: arr.Index, Operands: []int{length}, Pos: n.Pos})
	if len(n.Args) == 1 {
		return arr.Index
	}

	_, isLambda := n.Args[1].Value.(*ast.LambdaExpr)
	initVal := args[1]
	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}

	i := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: i.Index, Imm: int64(0), Pos: n.Pos})

	header := c.newBlock()
	body := c.newBlock()
	exit := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(header)
	cond := c.newTemp(mir.Type{Tag: mir.TBoolean})
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: cond.Index, Operands: []int{i.Index, length}, Imm: mir.OpLt, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond.Index, ThenTgt: body, ElseTgt: exit, Pos: n.Pos})

	c.setCurrent(body)
	elemVal := initVal
	if isLambda {
		inv := c.newTemp(objType)
		c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: inv.Index, Operands: []int{initVal, i.Index}, Imm: callImm{name: "invoke"}, Pos: n.Pos})
		elemVal = inv.Index
	}
	c.emit(&mir.Inst{Op: mir.IndexSet, Operands: []int{arr.Index, i.Index, elemVal}, Pos: n.Pos})
	one := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.ConstInt, Dest: one.Index, Imm: int64(1), Pos: n.Pos})
	next := c.newTemp(mir.Type{Tag: mir.TInt})
	c.emit(&mir.Inst{Op: mir.BinOp, Dest: next.Index, Operands: []int{i.Index, one.Index}, Imm: mir.OpAdd, Pos: n.Pos})
	c.emit(&mir.Inst{Op: mir.Move, Dest: i.Index, Operands: []int{next.Index}, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: header, Pos: n.Pos})

	c.setCurrent(exit)
	return arr.Index
}

// lowerDataClassCopy implements §4.3.7 level 12: `recv.copy(named=...)`
// rewrites into a full positional call to the synthesized `copy` method,
// filling any field omitted from the named arguments with a GetField read
// of the receiver's current value.
func (c *funcCtx) lowerDataClassCopy(n *ast.CallExpr, args []int, recv int, className string) int {
	ci, _ := c.types.Lookup(className)
	named := make(map[string]int, len(n.Args))
	for i, a := range n.Args {
		if a.Name != "" {
			named[a.Name] = args[i]
		}
	}
	objType := mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"}
	operands := make([]int, 0, len(ci.FieldOrder)+1)
	operands = append(operands, recv)
	for _, field := range ci.FieldOrder {
		if v, ok := named[field]; ok {
			operands = append(operands, v)
			continue
		}
		t := c.newTemp(objType)
		c.emit(&mir.Inst{Op: mir.GetField, Dest: t.Index, Operands: []int{recv}, Imm: field, Pos: n.Pos})
		operands = append(operands, t.Index)
	}
	desc := c.types.ResolveDescriptor(className, "copy", len(ci.FieldOrder), c.sink)
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: className})
	c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: t.Index, Operands: operands, Imm: callImm{name: "copy", descriptor: desc}, Pos: n.Pos})
	return t.Index
}

// receiverLambdaEntry is one §4.3.8 registered builder-pattern callee.
type receiverLambdaEntry struct {
	receiverType    string
	finalizerMethod string
}

// receiverLambdaEntries is the fixed registry of builder-pattern callees
// this module recognizes; an unregistered name is just an ordinary call.
var receiverLambdaEntries = map[string]receiverLambdaEntry{
	"buildString": {receiverType: "java/lang/StringBuilder", finalizerMethod: "toString"},
	"buildList":   {receiverType: "java/util/ArrayList"},
	"buildMap":    {receiverType: "java/util/HashMap"},
	"buildSet":    {receiverType: "java/util/HashSet"},
}

// lowerReceiverLambda implements §4.3.8: allocate a receiver, lower the
// lambda body inline with identifier calls re-routed to virtual calls on
// the receiver, then call the finalizer (or return the receiver itself).
func (c *funcCtx) lowerReceiverLambda(entry receiverLambdaEntry, lambda *ast.LambdaExpr, pos source.Pos) int {
	recv := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: entry.receiverType})
	c.emit(&mir.Inst{Op: mir.NewObject, Dest: recv.Index, Imm: entry.receiverType, Pos: pos})

	outer := c.receiverLambdaRecv
	c.receiverLambdaRecv = recv.Index
	c.pushScope()
	for _, p := range lambda.Params {
		c.declareLocal(p.Name, mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	}
	c.lowerExpr(lambda.Body)
	c.popScope()
	c.receiverLambdaRecv = outer

	if entry.finalizerMethod == "" {
		return recv.Index
	}
	desc := c.types.ResolveDescriptor(entry.receiverType, entry.finalizerMethod, 0, c.sink)
	t := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	c.emit(&mir.Inst{Op: mir.InvokeVirtual, Dest: t.Index, Operands: []int{recv.Index}, Imm: callImm{name: entry.finalizerMethod, descriptor: desc}, Pos: pos})
	return t.Index
}

// callImm is the Inst.Imm payload for Invoke* instructions.
type callImm struct {
	name       string
	descriptor string
}

func (c *funcCtx) lowerIfExpr(n *ast.IfExpr) int {
	cond := c.lowerExpr(n.Cond)
	result := c.newTemp(mir.Type{Tag: mir.TObject, ClassName: "java/lang/Object"})
	thenID := c.newBlock()
	elseID := c.newBlock()
	mergeID := c.newBlock()
	c.terminate(&mir.Terminator{Kind: mir.TermBranch, Cond: cond, ThenTgt: thenID, ElseTgt: elseID, Pos: n.Pos})

	c.setCurrent(thenID)
	thenVal := c.lowerExpr(n.Then)
	c.emit(&mir.Inst{Op: mir.Move, Dest: result.Index, Operands: []int{thenVal}, Pos: n.Pos})
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})

	c.setCurrent(elseID)
	if n.Else != nil {
		elseVal := c.lowerExpr(n.Else)
		c.emit(&mir.Inst{Op: mir.Move, Dest: result.Index, Operands: []int{elseVal}, Pos: n.Pos})
	}
	c.terminate(&mir.Terminator{Kind: mir.TermGoto, Target: mergeID, Pos: n.Pos})

	c.setCurrent(mergeID)
	return result.Index
}
