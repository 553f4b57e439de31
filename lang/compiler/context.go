package compiler

import "github.com/mna/jymbol/lang/value"

// LoopContext records the state needed to compile `recur` forms within the
// body of the loop that installed it (§4.3).
type LoopContext struct {
	FrameOffset  int
	LocalsOffset int
	LoopBodyPC   int
	LoopArity    int
}

// Context holds the compiler state for one nested function being compiled:
// its locals (an ordered name -> index map, with a parallel vars slice for
// enumeration), its code buffer, and an optional active LoopContext.
type Context struct {
	locals map[value.Symbol]int
	vars   []value.Symbol
	code   []Inst
	loop   *LoopContext
}

func newContext() *Context {
	return &Context{locals: make(map[value.Symbol]int)}
}

// maxLocalIndex is the largest local slot index the compiler accepts: local
// indices are limited to the 16-bit range (§7, Compile errors), although
// Inst.Index itself is an int.
const maxLocalIndex = 1<<16 - 1

// declare assigns sym the next local slot index, shadowing any earlier
// local of the same name (later declarations of the same name always win
// lookup, matching §4.3's "declare x at next local slot i").
func (c *Context) declare(sym value.Symbol) (int, error) {
	idx := len(c.vars)
	if idx > maxLocalIndex {
		return 0, value.NewError(value.Compile, "local index %d exceeds maximum of %d", idx, maxLocalIndex)
	}
	c.vars = append(c.vars, sym)
	c.locals[sym] = idx
	return idx, nil
}

// lookupLocal returns the most recently declared index for sym in this
// context, if any.
func (c *Context) lookupLocal(sym value.Symbol) (int, bool) {
	idx, ok := c.locals[sym]
	return idx, ok
}

func (c *Context) pc() int { return len(c.code) }

func (c *Context) emit(i Inst) int {
	c.code = append(c.code, i)
	return len(c.code) - 1
}

// bookmark reserves a Nop slot, returning its pc so a later patch call can
// rewrite it in place once the forward-jump target is known.
func (c *Context) bookmark() int { return c.emit(Inst{Op: Nop}) }

func (c *Context) patch(pos int, i Inst) { c.code[pos] = i }

func (c *Context) extract() []Inst { return c.code }
