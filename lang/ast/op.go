package ast

import "github.com/mna/jymbol/lang/value"

// Op identifies one of the $-prefixed arithmetic/bitwise/comparison
// operators (§6, "reserved symbols").
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg
	OpAbs
	OpSqrt
	OpTrunc
	OpFract
	OpRound
	OpFloor
	OpCeil
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

var opNames = [...]string{
	OpAdd: "$add", OpSub: "$sub", OpMul: "$mul", OpDiv: "$div", OpMod: "$mod",
	OpPow: "$pow", OpShl: "$shl", OpShr: "$shr", OpAnd: "$and", OpOr: "$or",
	OpXor: "$xor", OpNot: "$not", OpNeg: "$neg", OpAbs: "$abs", OpSqrt: "$sqrt",
	OpTrunc: "$trunc", OpFract: "$fract", OpRound: "$round", OpFloor: "$floor",
	OpCeil: "$ceil", OpEq: "$eq", OpNe: "$ne", OpLt: "$lt", OpGt: "$gt",
	OpLe: "$le", OpGe: "$ge",
}

func (o Op) String() string { return opNames[o] }

// unaryOps is the set of operators that take exactly one operand; every
// other Op takes exactly two.
var unaryOps = map[Op]bool{
	OpNot: true, OpNeg: true, OpAbs: true, OpSqrt: true, OpTrunc: true,
	OpFract: true, OpRound: true, OpFloor: true, OpCeil: true,
}

// IsUnary reports whether op is a unary operator.
func (o Op) IsUnary() bool { return unaryOps[o] }

// Arity returns 1 for unary operators and 2 for binary operators.
func (o Op) Arity() int {
	if o.IsUnary() {
		return 1
	}
	return 2
}

// opSymbols maps every reserved operator symbol to its Op.
var opSymbols = map[value.Symbol]Op{}

func init() {
	for op, name := range opNames {
		opSymbols[value.Intern(name)] = Op(op)
	}
}

// LookupOp reports the Op denoted by sym, if any.
func LookupOp(sym value.Symbol) (Op, bool) {
	op, ok := opSymbols[sym]
	return op, ok
}
