package ast_test

import (
	"testing"

	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/reader"
	"github.com/mna/jymbol/lang/value"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, src string) ast.Expr {
	t.Helper()
	v, err := reader.Read(src)
	require.NoError(t, err)
	e, err := ast.Build(v)
	require.NoError(t, err)
	return e
}

func TestBuildAtoms(t *testing.T) {
	require.Equal(t, ast.ValueNode{V: value.Number(3)}, build(t, "3"))
	require.Equal(t, ast.Var{Sym: value.Intern("x")}, build(t, "x"))
	require.Equal(t, ast.ValueNode{V: value.SymNil}, build(t, "nil"))
}

func TestBuildQuote(t *testing.T) {
	e := build(t, "'abc").(ast.ValueNode)
	require.Equal(t, value.Intern("abc"), e.V)
}

func TestBuildFn(t *testing.T) {
	e := build(t, "(fn (x y) ($add x y))").(ast.Fn)
	require.Equal(t, []value.Symbol{value.Intern("x"), value.Intern("y")}, e.Params)
	require.IsType(t, ast.BinOp{}, e.Body)
}

func TestBuildFnRejectsReservedParam(t *testing.T) {
	v, err := reader.Read("(fn (nil) nil)")
	require.NoError(t, err)
	_, err = ast.Build(v)
	require.True(t, value.IsKind(err, value.Reserved))
}

func TestBuildLet(t *testing.T) {
	e := build(t, "(let (x 10 y ($add x 5)) ($mul x y))").(ast.Let)
	require.Len(t, e.Bindings, 2)
	require.Equal(t, value.Intern("x"), e.Bindings[0].Name)
}

func TestBuildLetOddBindingsError(t *testing.T) {
	v, err := reader.Read("(let (x 10 y) x)")
	require.NoError(t, err)
	_, err = ast.Build(v)
	require.True(t, value.IsKind(err, value.Malformed))
}

func TestBuildIf(t *testing.T) {
	e := build(t, "(if ($lt 1 2) 'yes 'no)").(ast.If)
	require.Len(t, e.Arms, 1)
}

func TestBuildIfMultiArm(t *testing.T) {
	e := build(t, "(if 1 'a 2 'b 'c)").(ast.If)
	require.Len(t, e.Arms, 2)
}

func TestBuildLoopRecur(t *testing.T) {
	e := build(t, "(loop (n 10) (recur ($sub n 1)))").(ast.Loop)
	require.Len(t, e.Bindings, 1)
	rec := e.Body.(ast.Recur)
	require.Len(t, rec.Args, 1)
}

func TestBuildDoEmpty(t *testing.T) {
	e := build(t, "(do)").(ast.Do)
	require.Empty(t, e.Elems)
}

func TestBuildCall(t *testing.T) {
	e := build(t, "(foo 1 2)").(ast.Call)
	require.Equal(t, ast.Var{Sym: value.Intern("foo")}, e.Fn)
	require.Len(t, e.Args, 2)
}

func TestBuildOperatorArity(t *testing.T) {
	v, err := reader.Read("($add 1)")
	require.NoError(t, err)
	_, err = ast.Build(v)
	require.True(t, value.IsKind(err, value.Arity))
}

func TestFreeVars(t *testing.T) {
	e := build(t, "(fn (x) ($add x y))")
	free := ast.FreeVars(e)
	require.Equal(t, []value.Symbol{value.Intern("y")}, free)
}

func TestFreeVarsLetSequential(t *testing.T) {
	e := build(t, "(let (x a y x) y)")
	free := ast.FreeVars(e)
	require.Equal(t, []value.Symbol{value.Intern("a")}, free)
}
