package value

import (
	"fmt"
	"sync"

	"github.com/dolthub/swiss"
)

// Symbol is a stable, nonzero, process-wide integer identity interned from a
// byte string. Two symbols are equal iff their identities match; the
// originating string is always recoverable via String.
type Symbol uint32

func (s Symbol) String() string { return lookupSymbol(s) }
func (Symbol) Type() string     { return "symbol" }

// symbolTable interns strings to Symbol identities. It is process-wide,
// append-only, and safe for concurrent use: interning is its only mutation,
// guarded by a mutex, matching the contract that the symbol table is a
// shared resource implementations on multi-threaded runtimes must
// synchronize (§5).
type symbolTable struct {
	mu     sync.Mutex
	byName *swiss.Map[string, Symbol]
	byID   []string
}

var table = newSymbolTable()

func newSymbolTable() *symbolTable {
	return &symbolTable{
		byName: swiss.NewMap[string, Symbol](64),
		// index 0 is reserved so the zero Symbol value is never valid.
		byID: []string{""},
	}
}

// Intern returns the stable Symbol identity for s, assigning a fresh one the
// first time s is seen.
func Intern(s string) Symbol {
	table.mu.Lock()
	defer table.mu.Unlock()

	if id, ok := table.byName.Get(s); ok {
		return id
	}
	id := Symbol(len(table.byID))
	table.byID = append(table.byID, s)
	table.byName.Put(s, id)
	return id
}

func lookupSymbol(s Symbol) string {
	table.mu.Lock()
	defer table.mu.Unlock()
	if int(s) <= 0 || int(s) >= len(table.byID) {
		return fmt.Sprintf("<bad-symbol:%d>", s)
	}
	return table.byID[s]
}

// Well-known symbols used throughout the reader, compiler and machine.
var (
	SymNil             = Intern("nil")
	SymTrue            = Intern("true")
	SymFalse           = Intern("false")
	SymCons            = Intern("cons")
	SymQuote           = Intern("quote")
	SymQuasiquote      = Intern("quasiquote")
	SymUnquote         = Intern("unquote")
	SymUnquoteSplicing = Intern("unquote-splicing")
	SymAmpersand       = Intern("&")
)
