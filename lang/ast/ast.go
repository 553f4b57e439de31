// Package ast defines the structured expression tree (§3, "Expr") and the
// builder that classifies a reader-produced Value tree into it (§4.2).
package ast

import "github.com/mna/jymbol/lang/value"

// Expr is the structured-expression AST node interface. Every concrete node
// type below implements it.
type Expr interface {
	exprNode()
}

// ValueNode wraps a literal Value: a number, string, nil/true/false, or a
// quoted datum.
type ValueNode struct{ V value.Value }

// Var references a lexical variable by its interned name.
type Var struct{ Sym value.Symbol }

// List evaluates each element in order and collects the results into a
// runtime list (distinct from a quoted literal list: each element is
// itself evaluated).
type List struct{ Elems []Expr }

// Do sequences expressions, yielding the value of the last one (or nil if
// empty).
type Do struct{ Elems []Expr }

// UnOp applies a unary operator to its operand.
type UnOp struct {
	Op Op
	X  Expr
}

// BinOp applies a binary operator to its operands.
type BinOp struct {
	Op   Op
	L, R Expr
}

// Call invokes Fn with the evaluated Args.
type Call struct {
	Fn   Expr
	Args []Expr
}

// Fn is a function literal: zero or more parameters and a single body
// expression (use Do to sequence multiple forms).
type Fn struct {
	Params []value.Symbol
	Body   Expr
}

// Binding is one (name, init-expression) pair, used by both Let and Loop.
type Binding struct {
	Name value.Symbol
	Init Expr
}

// Let introduces bindings, evaluated left to right and visible to later
// bindings and to Body.
type Let struct {
	Bindings []Binding
	Body     Expr
}

// IfArm is one (condition, then) pair of an If form.
type IfArm struct {
	Cond, Then Expr
}

// If tries each arm's condition in order, evaluating the first arm whose
// condition is truthy; if none match, evaluates Else.
type If struct {
	Arms []IfArm
	Else Expr
}

// Loop establishes tail-recursive named bindings and a body that may
// contain a Recur targeting this loop.
type Loop struct {
	Bindings []Binding
	Body     Expr
}

// Recur rebinds the enclosing Loop's variables and jumps back to its body.
type Recur struct{ Args []Expr }

func (ValueNode) exprNode() {}
func (Var) exprNode()       {}
func (List) exprNode()      {}
func (Do) exprNode()        {}
func (UnOp) exprNode()      {}
func (BinOp) exprNode()     {}
func (Call) exprNode()      {}
func (Fn) exprNode()        {}
func (Let) exprNode()       {}
func (If) exprNode()        {}
func (Loop) exprNode()      {}
func (Recur) exprNode()     {}

// Special-form head symbols.
var (
	SymDo    = value.Intern("do")
	SymFn    = value.Intern("fn")
	SymLet   = value.Intern("let")
	SymIf    = value.Intern("if")
	SymLoop  = value.Intern("loop")
	SymRecur = value.Intern("recur")
)

// Reserved is the set of symbols that cannot be bound (§6): nil/true/false,
// every special-form head, and every operator name.
var Reserved = map[value.Symbol]bool{}

func init() {
	for _, s := range []value.Symbol{
		value.SymNil, value.SymTrue, value.SymFalse,
		SymDo, SymFn, SymLet, SymIf, SymLoop, SymRecur,
	} {
		Reserved[s] = true
	}
	for _, name := range opNames {
		Reserved[value.Intern(name)] = true
	}
}
