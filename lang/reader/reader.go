// Package reader turns Lisp source text into a Value tree (§4.1): the first
// stage of the pipeline, producing only data with no semantic
// interpretation.
package reader

import (
	"github.com/mna/jymbol/lang/scanner"
	"github.com/mna/jymbol/lang/token"
	"github.com/mna/jymbol/lang/value"
)

// Reader incrementally parses Value forms out of a fixed source buffer.
type Reader struct {
	sc   scanner.Scanner
	errs scanner.ErrorList

	tok token.Token
	val token.Value
}

// New prepares a Reader over src.
func New(src []byte) *Reader {
	r := &Reader{}
	r.sc.Init(src, r.errs.Add)
	r.next()
	return r
}

func (r *Reader) next() { r.tok = r.sc.Scan(&r.val) }

// Read parses a single Value form from the given source text.
func Read(src string) (value.Value, error) {
	r := New([]byte(src))
	v, err := r.readForm()
	if err != nil {
		return nil, err
	}
	if len(r.errs) > 0 {
		return nil, parseError(r.errs[0].Pos, r.errs[0].Msg)
	}
	return v, nil
}

// ReadAll parses every top-level form in the given source text, in order,
// until EOF.
func ReadAll(src string) ([]value.Value, error) {
	r := New([]byte(src))
	var out []value.Value
	for r.tok != token.EOF {
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(r.errs) > 0 {
		r.errs.Sort()
		return nil, parseError(r.errs[0].Pos, r.errs[0].Msg)
	}
	return out, nil
}

func parseError(pos token.Pos, msg string, args ...any) error {
	return value.NewErrorAt(value.Parse, pos, msg, args...)
}

// readForm parses exactly one Value form starting at the current token.
func (r *Reader) readForm() (value.Value, error) {
	switch r.tok {
	case token.EOF:
		return nil, parseError(r.val.Pos, "unexpected end of input")

	case token.ILLEGAL:
		return nil, parseError(r.val.Pos, "unparseable input near %q", r.val.Raw)

	case token.NUMBER:
		v := value.Number(r.val.Number)
		r.next()
		return v, nil

	case token.STRING:
		v := value.Str(r.val.String)
		r.next()
		return v, nil

	case token.SYMBOL:
		v := value.Intern(r.val.Raw)
		r.next()
		return v, nil

	case token.LPAREN:
		return r.readList(token.RPAREN)

	case token.LBRACK:
		return r.readList(token.RBRACK)

	case token.RPAREN, token.RBRACK:
		return nil, parseError(r.val.Pos, "unexpected %s", r.tok)

	case token.QUOTE:
		return r.readPrefixed(value.SymQuote)

	case token.QUASIQUOTE:
		return r.readPrefixed(value.SymQuasiquote)

	case token.UNQUOTE:
		return r.readPrefixed(value.SymUnquote)

	case token.UNQUOTE_SPLICING:
		return r.readPrefixed(value.SymUnquoteSplicing)

	default:
		return nil, parseError(r.val.Pos, "unexpected token %s", r.tok)
	}
}

func (r *Reader) readPrefixed(tag value.Symbol) (value.Value, error) {
	r.next()
	inner, err := r.readForm()
	if err != nil {
		return nil, err
	}
	return value.Compound{Tag: tag, Values: []value.Value{inner}}, nil
}

func (r *Reader) readList(close token.Token) (value.Value, error) {
	openPos := r.val.Pos
	openTok := r.tok
	r.next()

	var elems []value.Value
	for {
		if r.tok == close {
			r.next()
			return value.List(elems...), nil
		}
		if r.tok == token.EOF {
			return nil, parseError(openPos, "unterminated list starting with %s", openTok)
		}
		if r.tok == token.RPAREN || r.tok == token.RBRACK {
			return nil, parseError(r.val.Pos, "mismatched brackets: expected %s, got %s", close, r.tok)
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}
