// Package value implements the Lisp value domain: interned symbols, the
// tagged Value variants (§3), list/cons helpers, printing and ordering.
package value

// Value is the interface implemented by every value manipulated by the
// reader, compiler and machine: numbers, symbols, strings, compounds,
// closures and native-function references.
type Value interface {
	// String returns the printed representation of the value (§6).
	String() string
	// Type returns a short name for the value's runtime type.
	Type() string
}

// Number is an IEEE-754 double, the sole numeric type in the language.
type Number float64

func (Number) Type() string { return "number" }

// Str is an immutable byte sequence. Go strings are already immutable, so
// Str is a direct wrapper with no extra indirection needed for sharing.
type Str string

func (Str) Type() string { return "string" }

// Compound is a labeled tuple: the uniform representation for cons cells
// (Tag == SymCons, two elements), quote wrappers (Tag one of
// quote/quasiquote/unquote/unquote-splicing, one element), and any
// user-tagged record.
type Compound struct {
	Tag    Symbol
	Values []Value
}

func (Compound) Type() string { return "compound" }

// FnId is the opaque, monotonically-issued identity of a registered
// compiled or native function body. Identity is not observable from within
// the language; only the machine package issues FnIds.
type FnId uint32

// Closure refers by FnId to a registered compiled function body and carries
// the snapshot of its captured free-variable values taken at construction
// time (§9, "copy-at-capture-time").
type Closure struct {
	FnID     FnId
	Captured []Value
}

func (Closure) Type() string { return "closure" }

// NativeFunction refers by FnId to a registered host-language callback.
type NativeFunction struct {
	FnID FnId
}

func (NativeFunction) Type() string { return "native-function" }

func (n Number) String() string         { return Print(n) }
func (s Str) String() string            { return Print(s) }
func (c Compound) String() string       { return Print(c) }
func (c Closure) String() string        { return Print(c) }
func (f NativeFunction) String() string { return Print(f) }

// Truthy reports whether v is truthy: every value is truthy except the
// symbol false (§3). Note this makes nil truthy, per spec.md §9's resolved
// open question.
func Truthy(v Value) bool {
	s, ok := v.(Symbol)
	return !(ok && s == SymFalse)
}

// Cons builds a single cons cell: a Compound tagged `cons` with [head, tail].
func Cons(head, tail Value) Value {
	return Compound{Tag: SymCons, Values: []Value{head, tail}}
}

// IsCons reports whether v is a cons cell.
func IsCons(v Value) bool {
	c, ok := v.(Compound)
	return ok && c.Tag == SymCons && len(c.Values) == 2
}

// Nil is the canonical empty-list / nil value: the symbol `nil`.
func Nil() Value { return SymNil }

// IsNil reports whether v is the symbol nil.
func IsNil(v Value) bool {
	s, ok := v.(Symbol)
	return ok && s == SymNil
}

// List builds the right-nested cons chain for elems, terminated by nil
// (§3, "Lists").
func List(elems ...Value) Value {
	var tail Value = Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		tail = Cons(elems[i], tail)
	}
	return tail
}

// Iterate walks a proper list (a cons chain terminated by nil), returning
// its elements in order. A non-nil, non-cons tail is a Type error (§3).
func Iterate(v Value) ([]Value, error) {
	var out []Value
	for {
		if IsNil(v) {
			return out, nil
		}
		c, ok := v.(Compound)
		if !ok || c.Tag != SymCons || len(c.Values) != 2 {
			return nil, NewError(Type, "improper list: non-nil, non-cons tail %s", Print(v))
		}
		out = append(out, c.Values[0])
		v = c.Values[1]
	}
}
