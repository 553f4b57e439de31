package machine

import (
	"github.com/mna/jymbol/lang/compiler"
	"github.com/mna/jymbol/lang/token"
	"github.com/mna/jymbol/lang/value"
)

// run executes the dispatch loop until the frame stack empties, returning
// the sole remaining value on the value stack (§4.4).
func (vm *VM) run(root *CompiledFrame) (value.Value, error) {
	frameCap := vm.FrameStackHint
	if frameCap == 0 {
		frameCap = 64
	}
	valueCap := vm.ValueStackHint
	if valueCap == 0 {
		valueCap = 64
	}

	frames := make([]Frame, 0, frameCap)
	frames = append(frames, root)
	values := make([]value.Value, 0, valueCap)

	var steps uint64
	for len(frames) > 0 {
		steps++
		if vm.MaxSteps > 0 && steps > vm.MaxSteps {
			return nil, value.NewError(value.Runtime, "exceeded maximum step count (%d)", vm.MaxSteps)
		}

		top := frames[len(frames)-1]
		frames = frames[:len(frames)-1]

		switch fr := top.(type) {
		case *NativeFrame:
			nat, ok := vm.reg.natives.Get(fr.FnID)
			if !ok {
				return nil, value.NewError(value.Runtime, "unregistered native function %d", fr.FnID)
			}
			result, err := nat.Fn(fr.Locals)
			if err != nil {
				return nil, value.NewError(value.Runtime, "native function error: %v", err)
			}
			values = append(values, result)

		case *CompiledFrame:
			cf, ok := vm.reg.compiled.Get(fr.FnID)
			if !ok {
				return nil, value.NewError(value.Runtime, "unregistered compiled function %d", fr.FnID)
			}
			if fr.PC < 0 || fr.PC >= len(cf.Code) {
				return nil, value.NewError(value.Runtime, "program counter %d out of range for function %d", fr.PC, fr.FnID)
			}
			inst := cf.Code[fr.PC]
			fr.PC++

			cont, err := vm.step(fr, inst, &values, &frames)
			if err != nil {
				return nil, err
			}
			if cont {
				frames = append(frames, fr)
			}

		default:
			return nil, value.NewError(value.Runtime, "unknown frame type %T", top)
		}
	}

	if len(values) != 1 {
		return nil, value.NewError(value.Runtime, "expected exactly one result value, got %d", len(values))
	}
	return values[0], nil
}

func popValue(values *[]value.Value) (value.Value, error) {
	n := len(*values)
	if n == 0 {
		return nil, value.NewError(value.Runtime, "value stack underflow")
	}
	v := (*values)[n-1]
	*values = (*values)[:n-1]
	return v, nil
}

// popValues returns the top n values in stack order (earliest pushed
// first), matching the §4.4 contract for Call argument order.
func popValues(values *[]value.Value, n int) ([]value.Value, error) {
	cur := *values
	if len(cur) < n {
		return nil, value.NewError(value.Runtime, "value stack underflow: need %d, have %d", n, len(cur))
	}
	out := make([]value.Value, n)
	copy(out, cur[len(cur)-n:])
	*values = cur[:len(cur)-n]
	return out, nil
}

// relativeFrame resolves frame_depth addressing (§4.4): depth 0 is the
// current (held-out) frame; depth k>0 is the k-th frame from the top of
// the remaining frame stack (the current frame's k-th lexical parent).
func relativeFrame(frames []Frame, current *CompiledFrame, depth int) (*CompiledFrame, error) {
	if depth == 0 {
		return current, nil
	}
	idx := len(frames) - depth
	if idx < 0 || idx >= len(frames) {
		return nil, value.NewError(value.Runtime, "frame depth %d out of range", depth)
	}
	cf, ok := frames[idx].(*CompiledFrame)
	if !ok {
		return nil, value.NewError(value.Runtime, "frame at depth %d is not a compiled frame", depth)
	}
	return cf, nil
}

func growLocals(fr *CompiledFrame, index int) {
	for len(fr.Locals) <= index {
		fr.Locals = append(fr.Locals, value.Nil())
	}
}

// step executes a single instruction of fr, reporting whether fr should
// continue executing (pushed back onto frames by the caller) or not
// (Return, or Call — which pushes frames itself).
func (vm *VM) step(fr *CompiledFrame, inst compiler.Inst, values *[]value.Value, frames *[]Frame) (bool, error) {
	switch inst.Op {
	case compiler.Nop:
		return true, nil

	case compiler.Drop:
		if _, err := popValue(values); err != nil {
			return false, err
		}
		return true, nil

	case compiler.OpValue:
		*values = append(*values, inst.Value)
		return true, nil

	case compiler.OpList:
		elems, err := popValues(values, inst.N)
		if err != nil {
			return false, err
		}
		*values = append(*values, value.List(elems...))
		return true, nil

	case compiler.OpCompound:
		elems, err := popValues(values, inst.N)
		if err != nil {
			return false, err
		}
		*values = append(*values, value.Compound{Tag: inst.Tag, Values: elems})
		return true, nil

	case compiler.OpClosure:
		captured, err := popValues(values, inst.N)
		if err != nil {
			return false, err
		}
		*values = append(*values, value.Closure{FnID: inst.FnID, Captured: captured})
		return true, nil

	case compiler.OpUnOp:
		x, err := popValue(values)
		if err != nil {
			return false, err
		}
		result, err := applyUnOp(inst.UnOp, x)
		if err != nil {
			return false, err
		}
		*values = append(*values, result)
		return true, nil

	case compiler.OpBinOp:
		y, err := popValue(values)
		if err != nil {
			return false, err
		}
		x, err := popValue(values)
		if err != nil {
			return false, err
		}
		result, err := applyBinOp(inst.BinOp, x, y)
		if err != nil {
			return false, err
		}
		*values = append(*values, result)
		return true, nil

	case compiler.OpGet:
		target, err := relativeFrame(*frames, fr, inst.Depth)
		if err != nil {
			return false, err
		}
		if inst.Index < 0 || inst.Index >= len(target.Locals) {
			return false, value.NewError(value.Runtime, "local index %d out of range", inst.Index)
		}
		*values = append(*values, target.Locals[inst.Index])
		return true, nil

	case compiler.OpSet:
		v, err := popValue(values)
		if err != nil {
			return false, err
		}
		target, err := relativeFrame(*frames, fr, inst.Depth)
		if err != nil {
			return false, err
		}
		growLocals(target, inst.Index)
		target.Locals[inst.Index] = v
		return true, nil

	case compiler.OpJump:
		fr.PC = inst.PC
		return true, nil

	case compiler.OpJumpIf:
		v, err := popValue(values)
		if err != nil {
			return false, err
		}
		if value.Truthy(v) {
			fr.PC = inst.PC
		}
		return true, nil

	case compiler.OpJumpIfNot:
		v, err := popValue(values)
		if err != nil {
			return false, err
		}
		if !value.Truthy(v) {
			fr.PC = inst.PC
		}
		return true, nil

	case compiler.OpCall:
		return vm.call(fr, inst, values, frames)

	case compiler.OpReturn:
		return false, nil

	case compiler.OpRecur:
		target, err := relativeFrame(*frames, fr, inst.Depth)
		if err != nil {
			return false, err
		}
		target.PC = inst.PC
		return true, nil

	default:
		return false, value.NewError(value.Compile, "unknown opcode %v", inst.Op)
	}
}

func (vm *VM) call(fr *CompiledFrame, inst compiler.Inst, values *[]value.Value, frames *[]Frame) (bool, error) {
	callee, err := popValue(values)
	if err != nil {
		return false, err
	}
	args, err := popValues(values, inst.N)
	if err != nil {
		return false, err
	}

	var next Frame
	switch callee := callee.(type) {
	case value.Closure:
		cf, ok := vm.reg.compiled.Get(callee.FnID)
		if !ok {
			return false, value.NewError(value.Runtime, "unregistered compiled function %d", callee.FnID)
		}
		if !cf.Arity.Accepts(len(args)) {
			return false, value.NewArityError(token.Pos{}, cf.Arity, len(args))
		}
		locals := make([]value.Value, 0, len(callee.Captured)+len(args))
		locals = append(locals, callee.Captured...)
		locals = append(locals, args...)
		next = &CompiledFrame{FnID: callee.FnID, Locals: locals}

	case value.NativeFunction:
		nat, ok := vm.reg.natives.Get(callee.FnID)
		if !ok {
			return false, value.NewError(value.Runtime, "unregistered native function %d", callee.FnID)
		}
		if !nat.Arity.Accepts(len(args)) {
			return false, value.NewArityError(token.Pos{}, nat.Arity, len(args))
		}
		next = &NativeFrame{FnID: callee.FnID, Locals: args}

	default:
		return false, value.NewError(value.Type, "%s is not callable", value.Print(callee))
	}

	*frames = append(*frames, fr, next)
	return false, nil
}
