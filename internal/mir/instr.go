package mir

import "github.com/novalang/novalang/internal/source"

// Opcode is a three-address MIR instruction kind (spec.md §6, open set —
// the constants below are the minimum every backend must handle).
type Opcode int

const (
	ConstInt Opcode = iota
	ConstLong
	ConstFloat
	ConstDouble
	ConstString
	ConstBool
	ConstChar
	ConstNull
	ConstClass
	Move
	NewObject
	NewArray
	NewTypedArray
	GetField
	SetField
	GetStatic
	SetStatic
	IndexGet
	IndexSet
	InvokeStatic
	InvokeVirtual
	InvokeInterface
	BinOp
	UnaryOp
	TypeCheck
	TypeCast
)

// BinOpKind is the immediate payload of a BinOp instruction.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// UnaryOpKind is the immediate payload of a UnaryOp instruction.
type UnaryOpKind int

const (
	OpNeg UnaryOpKind = iota
	OpNot
	OpBitNot
)

// Inst is one three-address instruction. Dest is -1 for a void result.
type Inst struct {
	Op       Opcode
	Dest     int
	Operands []int // operand local indices
	Imm      any   // opcode-specific immediate payload (string name, BinOpKind, ...)
	Pos      source.Pos
}

// TerminatorKind is the terminator a BasicBlock ends with.
type TerminatorKind int

const (
	TermReturn TerminatorKind = iota
	TermReturnVoid
	TermGoto
	TermBranch
	TermSwitch
	TermThrow
	TermUnreachable
)

// Terminator ends exactly one BasicBlock.
type Terminator struct {
	Kind TerminatorKind

	// TermReturn / TermThrow
	Value int // local index, or -1

	// TermGoto
	Target int // block id

	// TermBranch
	Cond     int
	ThenTgt  int
	ElseTgt  int

	// TermSwitch
	Subject int
	Cases   []SwitchCase
	Default int

	Pos source.Pos
}

// SwitchCase maps one constant key to a target block.
type SwitchCase struct {
	Key    any // int64, string, or enum-entry name
	Target int
}

// BasicBlock is a dense-ID sequence of instructions ending in exactly one
// terminator (spec.md §3 invariant).
type BasicBlock struct {
	ID           int
	Instructions []*Inst
	Term         *Terminator
}

// TryCatchEntry covers [StartBlock, EndBlock) with Handler. An empty
// ExceptionType denotes a catch-all.
type TryCatchEntry struct {
	StartBlock      int
	EndBlock        int
	Handler         int
	ExceptionType   string // internal name, empty = catch-all
	ExceptionLocal  int
}
