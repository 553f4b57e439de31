package compiler_test

import (
	"testing"

	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/compiler"
	"github.com/mna/jymbol/lang/reader"
	"github.com/mna/jymbol/lang/value"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	next     value.FnId
	arities  []value.Arity
	programs [][]compiler.Inst
}

func (f *fakeRegistrar) RegisterClosure(arity value.Arity, code []compiler.Inst) value.FnId {
	f.next++
	f.arities = append(f.arities, arity)
	f.programs = append(f.programs, code)
	return f.next
}

func compileSrc(t *testing.T, src string) ([]compiler.Inst, *fakeRegistrar) {
	t.Helper()
	v, err := reader.Read(src)
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	reg := &fakeRegistrar{}
	c := compiler.New(reg)
	code, err := c.CompileRoot(nil, e)
	require.NoError(t, err)
	return code, reg
}

func TestCompileValueLiteral(t *testing.T) {
	code, _ := compileSrc(t, "42")
	require.Equal(t, []compiler.Inst{
		{Op: compiler.OpValue, Value: value.Number(42)},
		{Op: compiler.OpReturn},
	}, code)
}

func TestCompileUndefinedVar(t *testing.T) {
	v, err := reader.Read("undefined_name")
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	_, err = compiler.New(&fakeRegistrar{}).CompileRoot(nil, e)
	require.True(t, value.IsKind(err, value.Undefined))
}

func TestCompileLetEmitsSet(t *testing.T) {
	code, _ := compileSrc(t, "(let (x 10) x)")
	var sawSet, sawGet bool
	for _, in := range code {
		if in.Op == compiler.OpSet {
			sawSet = true
		}
		if in.Op == compiler.OpGet {
			sawGet = true
		}
	}
	require.True(t, sawSet)
	require.True(t, sawGet)
}

func TestCompileIfPatchesJumps(t *testing.T) {
	code, _ := compileSrc(t, "(if true 1 2)")
	var sawJumpIfNot, sawJump bool
	for _, in := range code {
		if in.Op == compiler.OpJumpIfNot {
			sawJumpIfNot = true
			require.Greater(t, in.PC, 0)
		}
		if in.Op == compiler.OpJump {
			sawJump = true
		}
	}
	require.True(t, sawJumpIfNot)
	require.True(t, sawJump)
}

func TestCompileFnRegistersClosure(t *testing.T) {
	code, reg := compileSrc(t, "(fn (x) x)")
	require.Len(t, reg.programs, 1)
	require.Equal(t, value.ExactlyN(1), reg.arities[0])

	var sawClosure bool
	for _, in := range code {
		if in.Op == compiler.OpClosure {
			sawClosure = true
			require.Equal(t, 0, in.N) // no captures
		}
	}
	require.True(t, sawClosure)
}

func TestCompileFnCapturesFreeVars(t *testing.T) {
	code, reg := compileSrc(t, "(let (n 10) (fn (x) ($add x n)))")
	require.Len(t, reg.programs, 1)

	var closureInst compiler.Inst
	for _, in := range code {
		if in.Op == compiler.OpClosure {
			closureInst = in
		}
	}
	require.Equal(t, 1, closureInst.N) // captures `n`

	// the outer context reads `n` by ordinary lookup before building the
	// closure value.
	var sawOuterGet bool
	for _, in := range code {
		if in.Op == compiler.OpGet && in.Depth == 0 {
			sawOuterGet = true
		}
	}
	require.True(t, sawOuterGet)

	// inside the closure body, the captured variable is one of its own
	// locals (declared captured-then-params), so it resolves at depth 0
	// in the closure's own frame, matching how the VM builds that frame's
	// locals as captured++args.
	var sawInnerGet bool
	for _, in := range reg.programs[0] {
		if in.Op == compiler.OpGet && in.Depth == 0 {
			sawInnerGet = true
		}
	}
	require.True(t, sawInnerGet)
}

func TestCompileRecurOutsideLoopErrors(t *testing.T) {
	v, err := reader.Read("(recur 1)")
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	_, err = compiler.New(&fakeRegistrar{}).CompileRoot(nil, e)
	require.True(t, value.IsKind(err, value.Malformed))
}

func TestCompileNestedLoopErrors(t *testing.T) {
	v, err := reader.Read("(loop (n 1) (loop (m 2) (recur m)))")
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	_, err = compiler.New(&fakeRegistrar{}).CompileRoot(nil, e)
	require.True(t, value.IsKind(err, value.Malformed))
}

func TestCompileSequentialLoopsOK(t *testing.T) {
	v, err := reader.Read("(do (loop (n 1) n) (loop (m 2) m))")
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	_, err = compiler.New(&fakeRegistrar{}).CompileRoot(nil, e)
	require.NoError(t, err)
}

func TestCompileRecurEmitsReverseSetsAndRecur(t *testing.T) {
	v, err := reader.Read("(loop (n 10 acc 0) (recur ($sub n 1) ($add acc 1)))")
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	code, err := compiler.New(&fakeRegistrar{}).CompileRoot(nil, e)
	require.NoError(t, err)

	var setIdxOrder []int
	var sawRecur bool
	for _, in := range code {
		if in.Op == compiler.OpSet && in.Depth == 0 {
			setIdxOrder = append(setIdxOrder, in.Index)
		}
		if in.Op == compiler.OpRecur {
			sawRecur = true
		}
	}
	require.True(t, sawRecur)
	// last two Sets (the recur's) write index 1 then 0, in reverse order.
	require.Equal(t, []int{0, 1, 1, 0}, setIdxOrder)
}
