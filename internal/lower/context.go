// Package lower implements HirToMir, spec.md §4.3: the function/constructor
// lowering, control-flow and exception lowering, closure conversion, call
// resolution, and synthetic-method generation that turn an internal/hir.Module
// into an internal/mir.Module.
package lower

import (
	"strconv"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/mir"
	"github.com/novalang/novalang/internal/typetable"
)

// Options carries the two pieces of state spec.md §9 calls out as
// explicitly cross-module rather than hidden globals: the seed for
// anonymous-lambda-class naming, and external class registrations the
// driver accumulated from previously lowered units (e.g. across REPL
// increments).
type Options struct {
	AnonClassSeed    int
	ExternalClasses  []*typetable.ClassInfo
	InterpreterMode  bool
}

// loopFrame is one entry of the break/continue resolution stack (§4.3.3).
type loopFrame struct {
	label  string
	header int
	exit   int
	incr   int // increment block, valid for counting for-loops; -1 otherwise
}

// tryFrame is one entry of the finally-inlining stack (§4.3.4): inline
// lowers the enclosing try's finally block at the current cursor position.
// return statements walk this stack innermost-outward before emitting the
// actual Return/ReturnVoid terminator.
type tryFrame struct {
	inline func(c *funcCtx)
}

// moduleCtx is the state shared, read-and-write, across every per-function
// funcCtx created while lowering one hir.Module (§4.3.6): synthesized
// lambda classes accumulate in lambdaClasses for the caller to append to
// mir.Module.Classes, and anonSeq keeps `<Enclosing>$Lambda$<n>` names
// unique across every function lowered in this call.
type moduleCtx struct {
	lambdaClasses []*mir.Class
	anonSeq       int
}

// nextLambdaClassName allocates the next anonymous lambda class name and
// advances the counter.
func (m *moduleCtx) nextLambdaClassName(enclosing string) string {
	name := enclosing + "$Lambda$" + strconv.Itoa(m.anonSeq)
	m.anonSeq++
	return name
}

// funcCtx is the lowering context threaded by pointer through every
// lowering function for a single mir.Function, per spec.md §2/§9. It is
// discarded when the function is done; only Options, the type table, the
// diagnostic sink, staticFunctions and mctx are shared across functions.
type funcCtx struct {
	opts  *Options
	types *typetable.TypeTable
	sink  *errors.Sink

	// staticFunctions maps a top-level function name to its descriptor,
	// populated once during Phase 1 discovery and shared read-only across
	// every per-function funcCtx (§4.3.7 level for unqualified call
	// resolution against module-level functions).
	staticFunctions map[string]string

	// mctx is shared across every funcCtx created while lowering the
	// enclosing module, collecting synthesized lambda classes (§4.3.6).
	mctx *moduleCtx

	fn      *mir.Function
	blocks  []*mir.BasicBlock
	current int // index into blocks of the block currently being appended to

	tempSeq int

	loopStack []loopFrame
	tryStack  []tryFrame

	// scope maps a source-level name to its local index. Nested blocks
	// shadow by pushing/popping on scopeStack.
	scope      map[string]int
	scopeStack []map[string]int

	// mutableCaptureBoxes maps a boxed outer local's name to the local index
	// holding its Object[1] box, for lambda lowering (§4.3.6).
	mutableCaptureBoxes map[string]int

	// receiverLambdaRecv is the local index of the implicit receiver while
	// lowering inside a §4.3.8 receiver-lambda's body, or -1 outside one.
	receiverLambdaRecv int
}

func newFuncCtx(opts *Options, types *typetable.TypeTable, sink *errors.Sink, staticFunctions map[string]string, mctx *moduleCtx, fn *mir.Function) *funcCtx {
	return &funcCtx{
		opts:                opts,
		types:               types,
		sink:                sink,
		staticFunctions:     staticFunctions,
		mctx:                mctx,
		fn:                  fn,
		scope:               make(map[string]int),
		mutableCaptureBoxes: make(map[string]int),
		receiverLambdaRecv:  -1,
	}
}

// newBlock allocates a fresh block with the next dense ID and appends it to
// the function's block list, returning its ID.
func (c *funcCtx) newBlock() int {
	id := len(c.blocks)
	c.blocks = append(c.blocks, &mir.BasicBlock{ID: id})
	return id
}

// setCurrent switches the append cursor to block id.
func (c *funcCtx) setCurrent(id int) { c.current = id }

// emit appends inst to the current block.
func (c *funcCtx) emit(inst *mir.Inst) {
	c.blocks[c.current].Instructions = append(c.blocks[c.current].Instructions, inst)
}

// terminate sets the current block's terminator, once.
func (c *funcCtx) terminate(term *mir.Terminator) {
	c.blocks[c.current].Term = term
}

// newTemp allocates a fresh unnamed local of typ, named `$t<n>`.
func (c *funcCtx) newTemp(typ mir.Type) *mir.Local {
	l := c.fn.AddLocal("$t"+strconv.Itoa(c.tempSeq), typ)
	c.tempSeq++
	return l
}

// declareLocal binds name to a freshly allocated local of typ in the
// current scope.
func (c *funcCtx) declareLocal(name string, typ mir.Type) *mir.Local {
	l := c.fn.AddLocal(name, typ)
	c.scope[name] = l.Index
	return l
}

// lookupLocal resolves name against the live scope stack, innermost first.
func (c *funcCtx) lookupLocal(name string) (int, bool) {
	if idx, ok := c.scope[name]; ok {
		return idx, true
	}
	for i := len(c.scopeStack) - 1; i >= 0; i-- {
		if idx, ok := c.scopeStack[i][name]; ok {
			return idx, true
		}
	}
	return 0, false
}

func (c *funcCtx) pushScope() {
	c.scopeStack = append(c.scopeStack, c.scope)
	c.scope = make(map[string]int)
}

func (c *funcCtx) popScope() {
	n := len(c.scopeStack)
	c.scope = c.scopeStack[n-1]
	c.scopeStack = c.scopeStack[:n-1]
}

// finish copies the accumulated blocks onto c.fn, deriving BodyStartBlockID
// from whatever the caller already set (function lowering sets it
// explicitly once the default-parameter prologue is emitted).
func (c *funcCtx) finish() {
	c.fn.Blocks = c.blocks
}
