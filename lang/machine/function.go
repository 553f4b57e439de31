package machine

import (
	"github.com/dolthub/swiss"

	"github.com/mna/jymbol/lang/compiler"
	"github.com/mna/jymbol/lang/value"
)

// Compiled is a registered compiled function body (§3): an opaque identity,
// its required arity, and its immutable bytecode.
type Compiled struct {
	FnID  value.FnId
	Arity value.Arity
	Code  []compiler.Inst
}

// NativeFunc is the Go signature a host registers as a native callable.
// Natives receive a slice of already-evaluated argument values and run
// synchronously to completion within their frame (§9).
type NativeFunc func(args []value.Value) (value.Value, error)

// Native is a registered host-language callback.
type Native struct {
	FnID  value.FnId
	Arity value.Arity
	Fn    NativeFunc
}

// registry owns the VM's compiled_functions and native_functions tables
// (§4.4), backed by swiss.Map for open-addressing lookup performance on the
// hot Get/Call paths.
type registry struct {
	nextID   value.FnId
	compiled *swiss.Map[value.FnId, *Compiled]
	natives  *swiss.Map[value.FnId, *Native]
}

func newRegistry() *registry {
	return &registry{
		compiled: swiss.NewMap[value.FnId, *Compiled](16),
		natives:  swiss.NewMap[value.FnId, *Native](8),
	}
}

func (r *registry) freshID() value.FnId {
	r.nextID++
	return r.nextID
}

// RegisterClosure registers a freshly compiled function body (implements
// compiler.Registrar). Per §9, this implementation issues a fresh FnId per
// call and does not structurally deduplicate.
func (vm *VM) RegisterClosure(arity value.Arity, code []compiler.Inst) value.FnId {
	id := vm.reg.freshID()
	vm.reg.compiled.Put(id, &Compiled{FnID: id, Arity: arity, Code: code})
	return id
}

// RegisterNative registers a host callback, returning its FnId.
func (vm *VM) RegisterNative(arity value.Arity, fn NativeFunc) value.FnId {
	id := vm.reg.freshID()
	vm.reg.natives.Put(id, &Native{FnID: id, Arity: arity, Fn: fn})
	return id
}
