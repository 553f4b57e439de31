package compiler

import (
	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/token"
	"github.com/mna/jymbol/lang/value"
)

// Registrar registers a freshly-compiled function body, returning the FnId
// under which the machine will look it up at Call/Closure time. The VM
// implements this interface; the compiler depends only on the interface so
// that the two packages do not import each other.
type Registrar interface {
	RegisterClosure(arity value.Arity, code []Inst) value.FnId
}

// Compiler lowers Expr to bytecode, maintaining the stack of Contexts
// described in §4.3: one per nested function currently being compiled.
type Compiler struct {
	reg      Registrar
	contexts []*Context
}

// New creates a Compiler that registers closures it compiles with reg.
func New(reg Registrar) *Compiler { return &Compiler{reg: reg} }

func (c *Compiler) current() *Context { return c.contexts[len(c.contexts)-1] }

func (c *Compiler) pushContext(ctx *Context) { c.contexts = append(c.contexts, ctx) }

func (c *Compiler) popContext() *Context {
	n := len(c.contexts)
	ctx := c.contexts[n-1]
	c.contexts = c.contexts[:n-1]
	return ctx
}

// lookup resolves sym against the context stack: the current context first
// (frame_depth 0), then outer contexts innermost-out (frame_depth k for the
// k-th outer context that contains it).
func (c *Compiler) lookup(sym value.Symbol) (depth, index int, ok bool) {
	n := len(c.contexts)
	for i := n - 1; i >= 0; i-- {
		if idx, found := c.contexts[i].lookupLocal(sym); found {
			return n - 1 - i, idx, true
		}
	}
	return 0, 0, false
}

// CompileRoot compiles body as a fresh 0-context function whose locals are
// declared from params (the root eval workflow's free variables, §4.4), and
// returns its bytecode ending in Return.
func (c *Compiler) CompileRoot(params []value.Symbol, body ast.Expr) ([]Inst, error) {
	return c.compileFunction(params, body)
}

func (c *Compiler) compileFunction(params []value.Symbol, body ast.Expr) ([]Inst, error) {
	ctx := newContext()
	for _, p := range params {
		if _, err := ctx.declare(p); err != nil {
			return nil, err
		}
	}
	c.pushContext(ctx)
	defer c.popContext()

	if err := c.compileExpr(body); err != nil {
		return nil, err
	}
	ctx.emit(Inst{Op: OpReturn})
	return ctx.extract(), nil
}

// compileExpr compiles e into the current context, leaving exactly one
// value on the VM's value stack (§4.3).
func (c *Compiler) compileExpr(e ast.Expr) error {
	ctx := c.current()

	switch e := e.(type) {
	case ast.ValueNode:
		ctx.emit(Inst{Op: OpValue, Value: e.V})
		return nil

	case ast.Var:
		depth, index, ok := c.lookup(e.Sym)
		if !ok {
			return value.NewError(value.Undefined, "%s is not defined", e.Sym)
		}
		ctx.emit(Inst{Op: OpGet, Depth: depth, Index: index})
		return nil

	case ast.List:
		for _, el := range e.Elems {
			if err := c.compileExpr(el); err != nil {
				return err
			}
		}
		ctx.emit(Inst{Op: OpList, N: len(e.Elems)})
		return nil

	case ast.Do:
		return c.compileDo(e)

	case ast.UnOp:
		if err := c.compileExpr(e.X); err != nil {
			return err
		}
		ctx.emit(Inst{Op: OpUnOp, UnOp: e.Op})
		return nil

	case ast.BinOp:
		if err := c.compileExpr(e.L); err != nil {
			return err
		}
		if err := c.compileExpr(e.R); err != nil {
			return err
		}
		ctx.emit(Inst{Op: OpBinOp, BinOp: e.Op})
		return nil

	case ast.Call:
		for _, a := range e.Args {
			if err := c.compileExpr(a); err != nil {
				return err
			}
		}
		if err := c.compileExpr(e.Fn); err != nil {
			return err
		}
		ctx.emit(Inst{Op: OpCall, N: len(e.Args)})
		return nil

	case ast.Fn:
		return c.compileFn(e)

	case ast.Let:
		return c.compileLet(e)

	case ast.If:
		return c.compileIf(e)

	case ast.Loop:
		return c.compileLoop(e)

	case ast.Recur:
		return c.compileRecur(e)

	default:
		return value.NewError(value.Compile, "unhandled expression node %T", e)
	}
}

func (c *Compiler) compileDo(e ast.Do) error {
	ctx := c.current()
	if len(e.Elems) == 0 {
		ctx.emit(Inst{Op: OpValue, Value: value.Nil()})
		return nil
	}
	for i, el := range e.Elems {
		if err := c.compileExpr(el); err != nil {
			return err
		}
		if i < len(e.Elems)-1 {
			ctx.emit(Inst{Op: Drop})
		}
	}
	return nil
}

func (c *Compiler) compileLet(e ast.Let) error {
	ctx := c.current()
	for _, b := range e.Bindings {
		if err := c.compileExpr(b.Init); err != nil {
			return err
		}
		idx, err := ctx.declare(b.Name)
		if err != nil {
			return err
		}
		ctx.emit(Inst{Op: OpSet, Depth: 0, Index: idx})
	}
	return c.compileExpr(e.Body)
}

func (c *Compiler) compileIf(e ast.If) error {
	ctx := c.current()

	type armSlots struct{ branch, exit int }
	entries := make([]int, len(e.Arms)+1)
	slots := make([]armSlots, len(e.Arms))

	for i, arm := range e.Arms {
		entries[i] = ctx.pc()
		if err := c.compileExpr(arm.Cond); err != nil {
			return err
		}
		branch := ctx.bookmark()
		if err := c.compileExpr(arm.Then); err != nil {
			return err
		}
		exit := ctx.bookmark()
		slots[i] = armSlots{branch: branch, exit: exit}
	}

	entries[len(e.Arms)] = ctx.pc()
	if err := c.compileExpr(e.Else); err != nil {
		return err
	}
	end := ctx.pc()

	for i, s := range slots {
		ctx.patch(s.branch, Inst{Op: OpJumpIfNot, PC: entries[i+1]})
		ctx.patch(s.exit, Inst{Op: OpJump, PC: end})
	}
	return nil
}

// compileFn performs closure conversion (§4.3):
//  1. compute the captured set (free vars minus params), in deterministic order
//  2. in the current context, evaluate each captured variable by ordinary lookup
//  3. compile the body in a fresh context whose locals are captured vars then params
//  4. register the compiled body and emit Closure(fn_id, captured_count)
func (c *Compiler) compileFn(e ast.Fn) error {
	outer := c.current()

	captured := ast.FreeVars(e)

	for _, sym := range captured {
		depth, index, ok := c.lookup(sym)
		if !ok {
			return value.NewError(value.Undefined, "%s is not defined", sym)
		}
		outer.emit(Inst{Op: OpGet, Depth: depth, Index: index})
	}

	inner := newContext()
	for _, sym := range captured {
		if _, err := inner.declare(sym); err != nil {
			return err
		}
	}
	for _, p := range e.Params {
		if _, err := inner.declare(p); err != nil {
			return err
		}
	}

	c.pushContext(inner)
	err := c.compileExpr(e.Body)
	if err == nil {
		inner.emit(Inst{Op: OpReturn})
	}
	c.popContext()
	if err != nil {
		return err
	}

	fnID := c.reg.RegisterClosure(value.ExactlyN(len(e.Params)), inner.extract())
	outer.emit(Inst{Op: OpClosure, FnID: fnID, N: len(captured)})
	return nil
}

func (c *Compiler) compileLoop(e ast.Loop) error {
	ctx := c.current()
	if ctx.loop != nil {
		return value.NewError(value.Malformed, "nested loop is not allowed within the same function")
	}

	localsOffset := len(ctx.vars)
	for _, b := range e.Bindings {
		if err := c.compileExpr(b.Init); err != nil {
			return err
		}
		idx, err := ctx.declare(b.Name)
		if err != nil {
			return err
		}
		ctx.emit(Inst{Op: OpSet, Depth: 0, Index: idx})
	}

	loopBodyPC := ctx.pc()
	ctx.loop = &LoopContext{
		FrameOffset:  0,
		LocalsOffset: localsOffset,
		LoopBodyPC:   loopBodyPC,
		LoopArity:    len(e.Bindings),
	}

	err := c.compileExpr(e.Body)
	ctx.loop = nil
	return err
}

func (c *Compiler) compileRecur(e ast.Recur) error {
	ctx := c.current()
	lc := ctx.loop
	if lc == nil {
		return value.NewError(value.Malformed, "recur used outside of a loop")
	}
	if len(e.Args) != lc.LoopArity {
		return value.NewArityError(token.Pos{}, value.ExactlyN(lc.LoopArity), len(e.Args))
	}

	for _, a := range e.Args {
		if err := c.compileExpr(a); err != nil {
			return err
		}
	}
	for i := len(e.Args) - 1; i >= 0; i-- {
		ctx.emit(Inst{Op: OpSet, Depth: lc.FrameOffset, Index: lc.LocalsOffset + i})
	}
	ctx.emit(Inst{Op: OpRecur, Depth: lc.FrameOffset, PC: lc.LoopBodyPC})
	return nil
}
