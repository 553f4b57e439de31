package reader_test

import (
	"testing"

	"github.com/mna/jymbol/lang/reader"
	"github.com/mna/jymbol/lang/value"
	"github.com/stretchr/testify/require"
)

func TestReadAtoms(t *testing.T) {
	v, err := reader.Read("42")
	require.NoError(t, err)
	require.Equal(t, value.Number(42), v)

	v, err = reader.Read(`"hi there"`)
	require.NoError(t, err)
	require.Equal(t, value.Str("hi there"), v)

	v, err = reader.Read("foo")
	require.NoError(t, err)
	require.Equal(t, value.Intern("foo"), v)
}

func TestReadList(t *testing.T) {
	v, err := reader.Read("(a b c)")
	require.NoError(t, err)
	elems, err := value.Iterate(v)
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.Intern("a"), value.Intern("b"), value.Intern("c")}, elems)
}

func TestReadBracketsEquivalent(t *testing.T) {
	v1, err := reader.Read("(a b)")
	require.NoError(t, err)
	v2, err := reader.Read("[a b]")
	require.NoError(t, err)
	require.Equal(t, value.Print(v1), value.Print(v2))
}

func TestReadQuotePrefixes(t *testing.T) {
	v, err := reader.Read("'x")
	require.NoError(t, err)
	require.Equal(t, value.Compound{Tag: value.SymQuote, Values: []value.Value{value.Intern("x")}}, v)

	v, err = reader.Read("`x")
	require.NoError(t, err)
	require.Equal(t, value.SymQuasiquote, v.(value.Compound).Tag)

	v, err = reader.Read(",x")
	require.NoError(t, err)
	require.Equal(t, value.SymUnquote, v.(value.Compound).Tag)

	v, err = reader.Read(",@x")
	require.NoError(t, err)
	require.Equal(t, value.SymUnquoteSplicing, v.(value.Compound).Tag)
}

func TestReadAllMultipleForms(t *testing.T) {
	vs, err := reader.ReadAll("1 2 (a b)")
	require.NoError(t, err)
	require.Len(t, vs, 3)
}

func TestReadErrors(t *testing.T) {
	_, err := reader.Read("(a b")
	require.Error(t, err)

	_, err = reader.Read("(a b]")
	require.Error(t, err)

	_, err = reader.Read(`"unterminated`)
	require.Error(t, err)
}

func TestReadPrintRoundtrip(t *testing.T) {
	for _, s := range []string{"3", "3.1416", "hello", `"hello world"`} {
		v1, err := reader.Read(s)
		require.NoError(t, err)
		v2, err := reader.Read(value.Print(v1))
		require.NoError(t, err)
		require.Equal(t, v1, v2)
	}
}
