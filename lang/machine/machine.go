package machine

import (
	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/compiler"
	"github.com/mna/jymbol/lang/value"
)

// VM owns a value stack, a frame stack, and the registries of compiled and
// native functions (§4.4). A VM is not safe to share across goroutines
// (§5); one evaluation owns one VM, though state (registered functions)
// persists across Eval calls on the same VM.
type VM struct {
	reg *registry

	// MaxSteps bounds the number of dispatched instructions before an
	// evaluation is aborted with a Runtime error. Zero means unlimited.
	MaxSteps uint64

	// ValueStackHint and FrameStackHint presize the value/frame stacks used
	// by each Eval call, as a performance hint only.
	ValueStackHint int
	FrameStackHint int
}

// New creates an empty VM with default limits.
func New() *VM {
	return &VM{reg: newRegistry()}
}

// Eval implements the §4.4 eval(env, expr) workflow: it builds the
// structured Expr AST, verifies every free variable is bound in env,
// compiles a fresh root function over those free variables, and runs it to
// completion. A failed Eval discards in-flight frames and values but leaves
// the VM's registries intact (§7).
func (vm *VM) Eval(env map[value.Symbol]value.Value, v value.Value) (value.Value, error) {
	expr, err := ast.Build(v)
	if err != nil {
		return nil, err
	}
	return vm.EvalExpr(env, expr)
}

// EvalExpr is like Eval but takes an already-built Expr, for callers that
// have already parsed and classified their source.
func (vm *VM) EvalExpr(env map[value.Symbol]value.Value, expr ast.Expr) (value.Value, error) {
	free := ast.FreeVars(expr)
	locals := make([]value.Value, len(free))
	for i, sym := range free {
		val, ok := env[sym]
		if !ok {
			return nil, value.NewError(value.Undefined, "undefined variable: %s", sym)
		}
		locals[i] = val
	}

	c := compiler.New(vm)
	code, err := c.CompileRoot(free, expr)
	if err != nil {
		return nil, err
	}

	fnID := vm.RegisterClosure(value.ExactlyN(0), code)
	root := &CompiledFrame{FnID: fnID, Locals: locals, PC: 0}
	return vm.run(root)
}
