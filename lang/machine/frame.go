// Package machine implements the virtual machine (§4.4): a value stack and
// a frame stack, dispatching bytecode one instruction at a time and
// switching frames between compiled and native callees on Call/Return.
package machine

import "github.com/mna/jymbol/lang/value"

// Frame is one activation record on the VM's frame stack: either a
// CompiledFrame (stepping through bytecode) or a NativeFrame (executed
// atomically in one shot).
type Frame interface {
	isFrame()
}

// CompiledFrame records an activation of a registered compiled function: its
// locals and its program counter into that function's code.
type CompiledFrame struct {
	FnID   value.FnId
	Locals []value.Value
	PC     int
}

// NativeFrame records an activation of a registered native function. It has
// no pc: native frames execute atomically to completion within one step.
type NativeFrame struct {
	FnID   value.FnId
	Locals []value.Value
}

func (*CompiledFrame) isFrame() {}
func (*NativeFrame) isFrame()   {}
