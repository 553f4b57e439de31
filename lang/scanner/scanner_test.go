package scanner_test

import (
	"testing"

	"github.com/mna/jymbol/lang/scanner"
	"github.com/mna/jymbol/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, []token.Value) {
	t.Helper()
	var s scanner.Scanner
	var el scanner.ErrorList
	s.Init([]byte(src), el.Add)

	var toks []token.Token
	var vals []token.Value
	for {
		var v token.Value
		tok := s.Scan(&v)
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	require.NoError(t, el.Err())
	return toks, vals
}

func TestScanPunctuation(t *testing.T) {
	toks, _ := scanAll(t, "([ ])'`,@,")
	require.Equal(t, []token.Token{
		token.LPAREN, token.LBRACK, token.RBRACK, token.RPAREN,
		token.QUOTE, token.QUASIQUOTE, token.UNQUOTE_SPLICING, token.UNQUOTE,
		token.EOF,
	}, toks)
}

func TestScanNumbers(t *testing.T) {
	toks, vals := scanAll(t, "3 -2 3.1416 1e10 -1.5e-3")
	for _, tok := range toks[:len(toks)-1] {
		require.Equal(t, token.NUMBER, tok)
	}
	require.InDelta(t, 3, vals[0].Number, 0)
	require.InDelta(t, -2, vals[1].Number, 0)
	require.InDelta(t, 3.1416, vals[2].Number, 1e-9)
	require.InDelta(t, 1e10, vals[3].Number, 1)
	require.InDelta(t, -1.5e-3, vals[4].Number, 1e-9)
}

func TestScanString(t *testing.T) {
	toks, vals := scanAll(t, `"hello\nworld" "\u{48}i"`)
	require.Equal(t, token.STRING, toks[0])
	require.Equal(t, "hello\nworld", vals[0].String)
	require.Equal(t, token.STRING, toks[1])
	require.Equal(t, "Hi", vals[1].String)
}

func TestScanSymbols(t *testing.T) {
	toks, vals := scanAll(t, "foo + $add list->vector &")
	for _, tok := range toks[:len(toks)-1] {
		require.Equal(t, token.SYMBOL, tok)
	}
	require.Equal(t, "foo", vals[0].Raw)
	require.Equal(t, "+", vals[1].Raw)
	require.Equal(t, "$add", vals[2].Raw)
	require.Equal(t, "list->vector", vals[3].Raw)
	require.Equal(t, "&", vals[4].Raw)
}

func TestScanErrors(t *testing.T) {
	var s scanner.Scanner
	var el scanner.ErrorList
	s.Init([]byte(`"unterminated`), el.Add)
	var v token.Value
	s.Scan(&v)
	require.Error(t, el.Err())
}
