package ast

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mna/jymbol/lang/value"
)

// FreeVars returns the free variables referenced in e, in deterministic
// (sorted by name) order. Let bindings shadow cumulatively (a later
// binding's initializer sees earlier bindings as bound); Fn subtracts its
// parameters.
func FreeVars(e Expr) []value.Symbol {
	set := map[value.Symbol]bool{}
	collectFree(e, map[value.Symbol]bool{}, set)
	return sortedSymbols(set)
}

func sortedSymbols(set map[value.Symbol]bool) []value.Symbol {
	out := maps.Keys(set)
	slices.SortFunc(out, func(a, b value.Symbol) int { return strings.Compare(a.String(), b.String()) })
	return out
}

// collectFree walks e, adding to free every Var reference not present in
// bound.
func collectFree(e Expr, bound map[value.Symbol]bool, free map[value.Symbol]bool) {
	switch e := e.(type) {
	case ValueNode:
		// no references

	case Var:
		if !bound[e.Sym] {
			free[e.Sym] = true
		}

	case List:
		for _, el := range e.Elems {
			collectFree(el, bound, free)
		}

	case Do:
		for _, el := range e.Elems {
			collectFree(el, bound, free)
		}

	case UnOp:
		collectFree(e.X, bound, free)

	case BinOp:
		collectFree(e.L, bound, free)
		collectFree(e.R, bound, free)

	case Call:
		collectFree(e.Fn, bound, free)
		for _, a := range e.Args {
			collectFree(a, bound, free)
		}

	case Fn:
		inner := cloneBound(bound)
		for _, p := range e.Params {
			inner[p] = true
		}
		collectFree(e.Body, inner, free)

	case Let:
		inner := cloneBound(bound)
		for _, b := range e.Bindings {
			collectFree(b.Init, inner, free)
			inner[b.Name] = true
		}
		collectFree(e.Body, inner, free)

	case If:
		for _, arm := range e.Arms {
			collectFree(arm.Cond, bound, free)
			collectFree(arm.Then, bound, free)
		}
		collectFree(e.Else, bound, free)

	case Loop:
		inner := cloneBound(bound)
		for _, b := range e.Bindings {
			collectFree(b.Init, inner, free)
			inner[b.Name] = true
		}
		collectFree(e.Body, inner, free)

	case Recur:
		for _, a := range e.Args {
			collectFree(a, bound, free)
		}
	}
}

func cloneBound(bound map[value.Symbol]bool) map[value.Symbol]bool {
	out := make(map[value.Symbol]bool, len(bound)+1)
	for k := range bound {
		out[k] = true
	}
	return out
}
