package ast

import (
	"github.com/mna/jymbol/lang/token"
	"github.com/mna/jymbol/lang/value"
)

// quoteTags is the set of reader-macro tags whose arity-1 Compound lowers
// to a literal, unevaluated datum (§4.2, "Quote compound of arity 1").
var quoteTags = map[value.Symbol]bool{
	value.SymQuote:           true,
	value.SymQuasiquote:      true,
	value.SymUnquote:         true,
	value.SymUnquoteSplicing: true,
}

// Build classifies a reader-produced Value tree into the structured Expr
// AST (§4.2).
func Build(v value.Value) (Expr, error) {
	switch v := v.(type) {
	case value.Symbol:
		switch v {
		case value.SymNil, value.SymTrue, value.SymFalse:
			return ValueNode{V: v}, nil
		}
		return Var{Sym: v}, nil

	case value.Number, value.Str:
		return ValueNode{V: v}, nil

	case value.Compound:
		if v.Tag == value.SymCons {
			return buildList(v)
		}
		if quoteTags[v.Tag] && len(v.Values) == 1 {
			return ValueNode{V: v.Values[0]}, nil
		}
		return nil, value.NewError(value.Malformed, "unexpected compound form tagged %s", v.Tag)

	default:
		return nil, value.NewError(value.Malformed, "cannot build an expression from %s", value.Print(v))
	}
}

func buildList(v value.Value) (Expr, error) {
	elems, err := value.Iterate(v)
	if err != nil {
		return nil, value.NewError(value.Malformed, "improper list cannot be used as a form")
	}
	if len(elems) == 0 {
		return ValueNode{V: value.Nil()}, nil
	}

	if headSym, ok := elems[0].(value.Symbol); ok {
		rest := elems[1:]
		switch headSym {
		case SymDo:
			return buildDo(rest)
		case SymFn:
			return buildFn(rest)
		case SymLet:
			return buildLet(rest)
		case SymIf:
			return buildIf(rest)
		case SymLoop:
			return buildLoop(rest)
		case SymRecur:
			return buildRecur(rest)
		}
		if op, ok := LookupOp(headSym); ok {
			return buildOp(op, rest)
		}
	}

	fn, err := Build(elems[0])
	if err != nil {
		return nil, err
	}
	args, err := buildAll(elems[1:])
	if err != nil {
		return nil, err
	}
	return Call{Fn: fn, Args: args}, nil
}

func buildAll(vs []value.Value) ([]Expr, error) {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		e, err := Build(v)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func buildDo(rest []value.Value) (Expr, error) {
	elems, err := buildAll(rest)
	if err != nil {
		return nil, err
	}
	return Do{Elems: elems}, nil
}

func symbolOf(v value.Value) (value.Symbol, error) {
	s, ok := v.(value.Symbol)
	if !ok {
		return 0, value.NewError(value.Malformed, "expected a symbol, got %s", value.Print(v))
	}
	return s, nil
}

func checkNotReserved(s value.Symbol) error {
	if Reserved[s] {
		return value.NewError(value.Reserved, "cannot bind reserved name %s", s)
	}
	return nil
}

func buildFn(rest []value.Value) (Expr, error) {
	if len(rest) != 2 {
		return nil, value.NewError(value.Malformed, "fn: expected (fn (params...) body), got %d forms", len(rest))
	}
	paramVals, err := value.Iterate(rest[0])
	if err != nil {
		return nil, value.NewError(value.Malformed, "fn: parameter list must be a proper list")
	}
	params := make([]value.Symbol, len(paramVals))
	for i, pv := range paramVals {
		s, err := symbolOf(pv)
		if err != nil {
			return nil, value.NewError(value.Malformed, "fn: parameter must be a symbol, got %s", value.Print(pv))
		}
		if err := checkNotReserved(s); err != nil {
			return nil, err
		}
		params[i] = s
	}
	body, err := Build(rest[1])
	if err != nil {
		return nil, err
	}
	return Fn{Params: params, Body: body}, nil
}

func buildBindings(v value.Value) ([]Binding, error) {
	vals, err := value.Iterate(v)
	if err != nil {
		return nil, value.NewError(value.Malformed, "bindings must be a proper list")
	}
	if len(vals)%2 != 0 {
		return nil, value.NewError(value.Malformed, "bindings must contain an even number of forms, got %d", len(vals))
	}
	bindings := make([]Binding, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		name, err := symbolOf(vals[i])
		if err != nil {
			return nil, value.NewError(value.Malformed, "binding name must be a symbol, got %s", value.Print(vals[i]))
		}
		if err := checkNotReserved(name); err != nil {
			return nil, err
		}
		init, err := Build(vals[i+1])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: name, Init: init})
	}
	return bindings, nil
}

func buildLet(rest []value.Value) (Expr, error) {
	if len(rest) != 2 {
		return nil, value.NewError(value.Malformed, "let: expected (let (bindings...) body), got %d forms", len(rest))
	}
	bindings, err := buildBindings(rest[0])
	if err != nil {
		return nil, err
	}
	body, err := Build(rest[1])
	if err != nil {
		return nil, err
	}
	return Let{Bindings: bindings, Body: body}, nil
}

func buildLoop(rest []value.Value) (Expr, error) {
	if len(rest) != 2 {
		return nil, value.NewError(value.Malformed, "loop: expected (loop (bindings...) body), got %d forms", len(rest))
	}
	bindings, err := buildBindings(rest[0])
	if err != nil {
		return nil, err
	}
	body, err := Build(rest[1])
	if err != nil {
		return nil, err
	}
	return Loop{Bindings: bindings, Body: body}, nil
}

func buildRecur(rest []value.Value) (Expr, error) {
	args, err := buildAll(rest)
	if err != nil {
		return nil, err
	}
	return Recur{Args: args}, nil
}

func buildIf(rest []value.Value) (Expr, error) {
	// (if c1 t1 c2 t2 ... cm tm else): one or more (cond, then) pairs plus a
	// trailing else, so the list length must be odd and >= 3.
	if len(rest) < 3 || len(rest)%2 == 0 {
		return nil, value.NewError(value.Malformed, "if: expected one or more (cond then) pairs followed by an else form, got %d forms", len(rest))
	}
	n := (len(rest) - 1) / 2
	arms := make([]IfArm, n)
	for i := 0; i < n; i++ {
		cond, err := Build(rest[2*i])
		if err != nil {
			return nil, err
		}
		then, err := Build(rest[2*i+1])
		if err != nil {
			return nil, err
		}
		arms[i] = IfArm{Cond: cond, Then: then}
	}
	elseExpr, err := Build(rest[len(rest)-1])
	if err != nil {
		return nil, err
	}
	return If{Arms: arms, Else: elseExpr}, nil
}

func buildOp(op Op, rest []value.Value) (Expr, error) {
	if len(rest) != op.Arity() {
		return nil, value.NewArityError(token.Pos{}, value.ExactlyN(op.Arity()), len(rest))
	}
	args, err := buildAll(rest)
	if err != nil {
		return nil, err
	}
	if op.IsUnary() {
		return UnOp{Op: op, X: args[0]}, nil
	}
	return BinOp{Op: op, L: args[0], R: args[1]}, nil
}
