package value_test

import (
	"math"
	"testing"

	"github.com/mna/jymbol/lang/value"
	"github.com/stretchr/testify/require"
)

func TestInternStable(t *testing.T) {
	a := value.Intern("frobnicate")
	b := value.Intern("frobnicate")
	require.Equal(t, a, b)
	require.Equal(t, "frobnicate", a.String())
}

func TestTruthy(t *testing.T) {
	require.True(t, value.Truthy(value.Nil()))
	require.True(t, value.Truthy(value.Number(0)))
	require.True(t, value.Truthy(value.SymTrue))
	require.False(t, value.Truthy(value.SymFalse))
}

func TestListRoundtrip(t *testing.T) {
	l := value.List(value.Number(1), value.Number(2), value.Number(3))
	elems, err := value.Iterate(l)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, elems)
}

func TestImproperListErrors(t *testing.T) {
	l := value.Cons(value.Number(1), value.Number(2))
	_, err := value.Iterate(l)
	require.Error(t, err)
	require.True(t, value.IsKind(err, value.Type))
}

func TestPrintNumbers(t *testing.T) {
	require.Equal(t, "3", value.Print(value.Number(3)))
	require.Equal(t, "-2", value.Print(value.Number(-2)))
	require.Equal(t, "3.1416", value.Print(value.Number(3.1416)))
}

func TestPrintList(t *testing.T) {
	l := value.List(value.SymNil, value.SymFalse, value.SymTrue, value.Number(1), value.Str("hello world"))
	require.Equal(t, `(nil false true 1 "hello world")`, value.Print(l))
}

func TestPrintQuote(t *testing.T) {
	q := value.Compound{Tag: value.SymQuote, Values: []value.Value{value.Intern("abc")}}
	require.Equal(t, "'abc", value.Print(q))
}

func TestCompareAndEqual(t *testing.T) {
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(math.NaN()), value.Number(math.NaN())))
	require.Less(t, value.Compare(value.Number(1), value.Number(2)), 0)
}
