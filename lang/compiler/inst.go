// Package compiler lowers the structured Expr AST to bytecode (§4.3): a
// stack of Context objects tracks lexical scope and locals, forward jumps
// are patched via bookmarks, and Fn literals are closure-converted by
// computing their free-variable capture sets.
package compiler

import (
	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/value"
)

// Opcode identifies the operation an Inst performs.
type Opcode uint8

const (
	Nop Opcode = iota
	Drop
	OpValue
	OpList
	OpCompound
	OpClosure
	OpUnOp
	OpBinOp
	OpGet
	OpSet
	OpJump
	OpJumpIf
	OpJumpIfNot
	OpCall
	OpReturn
	OpRecur
)

func (op Opcode) String() string {
	switch op {
	case Nop:
		return "nop"
	case Drop:
		return "drop"
	case OpValue:
		return "value"
	case OpList:
		return "list"
	case OpCompound:
		return "compound"
	case OpClosure:
		return "closure"
	case OpUnOp:
		return "unop"
	case OpBinOp:
		return "binop"
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpJump:
		return "jump"
	case OpJumpIf:
		return "jumpif"
	case OpJumpIfNot:
		return "jumpifnot"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpRecur:
		return "recur"
	default:
		return "illegal"
	}
}

// Inst is one bytecode instruction. It is a flat, variable-width logical
// form: only the operand fields relevant to Op are meaningful, matching the
// §3 contract that Inst is a plain Go value directly inspectable and
// constructible from test code (no byte-packed encoding).
type Inst struct {
	Op Opcode

	Value value.Value // OpValue
	N     int         // OpList(n) / OpCompound(_,n) / OpClosure(_,n) / OpCall(arity)
	Tag   value.Symbol // OpCompound(tag,_)
	FnID  value.FnId   // OpClosure(fn_id,_)
	UnOp  ast.Op        // OpUnOp
	BinOp ast.Op        // OpBinOp
	Depth int           // OpGet/OpSet/OpRecur frame depth
	Index int           // OpGet/OpSet local index
	PC    int           // OpJump/OpJumpIf/OpJumpIfNot/OpRecur target pc
}
