package emu

import (
	"fmt"

	"github.com/nido/Oclgrind/ir"
)

// WorkItemState marks what state a work-item is in.
type WorkItemState int

// A list of all possible work-item states.
const (
	WorkItemReady     WorkItemState = iota // schedulable
	WorkItemAtBarrier                      // suspended at a barrier
	WorkItemFinished                       // retired its return instruction
	WorkItemFaulted                        // stopped by a fault or a divergent barrier
)

var workItemStateNames = [...]string{
	WorkItemReady:     "ready",
	WorkItemAtBarrier: "at-barrier",
	WorkItemFinished:  "finished",
	WorkItemFaulted:   "faulted",
}

func (s WorkItemState) String() string {
	if int(s) < len(workItemStateNames) {
		return workItemStateNames[s]
	}
	return "unknown"
}

// A WorkItem is a single point of execution of the kernel function. It
// owns a private memory region, a register file indexed by SSA value ID,
// and a program counter into the function's CFG. The group scheduler
// drives it one instruction at a time through Step.
type WorkItem struct {
	group    *WorkGroup
	ctx      *Context
	inv      *KernelInvocation
	function *ir.Function

	globalID [3]uint64
	localID  [3]uint64

	privateMemory *Memory
	registers     []TypedValue
	globalValues  map[int]TypedValue

	block     *ir.Block
	prevBlock *ir.Block
	pc        int

	state        WorkItemState
	barrierFlags uint32
}

func newWorkItem(group *WorkGroup, localID [3]uint64) *WorkItem {
	inv := group.inv
	w := &WorkItem{
		group:         group,
		ctx:           group.ctx,
		inv:           inv,
		function:      inv.Kernel.function,
		localID:       localID,
		privateMemory: newMemory(group.ctx, ir.AddrSpacePrivate, privateMemorySize),
		globalValues:  map[int]TypedValue{},
	}
	for d := 0; d < 3; d++ {
		w.globalID[d] = group.groupID[d]*inv.LocalSize[d] +
			localID[d] + inv.GlobalOffset[d]
	}

	w.registers = make([]TypedValue, w.function.NumValues())
	for _, b := range group.bindings {
		if b.key.arg >= 0 {
			param := w.function.Params[b.key.arg]
			w.registers[param.ID] = b.value.Clone()
		} else {
			w.globalValues[b.key.global] = b.value.Clone()
		}
	}

	w.block = w.function.Entry()
	return w
}

// State returns the current execution state.
func (w *WorkItem) State() WorkItemState {
	return w.state
}

// GlobalID returns the work-item's global id triple.
func (w *WorkItem) GlobalID() [3]uint64 {
	return w.globalID
}

// LocalID returns the id within the containing work-group.
func (w *WorkItem) LocalID() [3]uint64 {
	return w.localID
}

// WorkGroup returns the containing group.
func (w *WorkItem) WorkGroup() *WorkGroup {
	return w.group
}

// PrivateMemory returns the item's private region, for debugger use.
func (w *WorkItem) PrivateMemory() *Memory {
	return w.privateMemory
}

func (w *WorkItem) String() string {
	return fmt.Sprintf("work-item (%d,%d,%d)",
		w.globalID[0], w.globalID[1], w.globalID[2])
}

// Step retires the next instruction and returns the new state. Barriers
// suspend the item without moving the program counter past them; the
// group advances it when the barrier releases.
func (w *WorkItem) Step() WorkItemState {
	if w.state != WorkItemReady {
		return w.state
	}

	inst := w.block.Values[w.pc]
	result, err := w.execute(inst)
	if err != nil {
		w.fault(err)
		return w.state
	}
	if _, void := inst.Type.(*ir.VoidType); !void && inst.Type != nil {
		w.registers[inst.ID] = result
	}
	w.ctx.notifyInstructionExecuted(w, inst, result)

	switch inst.Op {
	case ir.OpBarrier:
		w.state = WorkItemAtBarrier
		w.barrierFlags = uint32(inst.AuxInt)
	case ir.OpRet:
		w.state = WorkItemFinished
		w.ctx.notifyWorkItemComplete(w)
	case ir.OpBr:
		w.jump(inst.Aux.(*ir.Block))
	case ir.OpCondBr:
		targets := inst.Aux.([2]*ir.Block)
		if w.operand(inst.Args[0]).Uint(0) != 0 {
			w.jump(targets[0])
		} else {
			w.jump(targets[1])
		}
	default:
		w.pc++
	}
	return w.state
}

func (w *WorkItem) jump(target *ir.Block) {
	w.prevBlock = w.block
	w.block = target
	w.pc = 0
}

// clearBarrier releases a suspended item past its barrier.
func (w *WorkItem) clearBarrier() {
	w.state = WorkItemReady
	w.pc++
}

func (w *WorkItem) fault(err error) {
	w.ctx.Message(MessageError, fmt.Sprintf("%s: %v", w, err))
	w.state = WorkItemFaulted
	w.ctx.notifyWorkItemComplete(w)
}

// operand resolves an SSA value to its current bits.
func (w *WorkItem) operand(v *ir.Value) TypedValue {
	switch v.Op {
	case ir.OpConstInt:
		tv := newValueFor(v.Type)
		for i := 0; i < tv.Num; i++ {
			tv.SetUint(i, uint64(v.AuxInt))
		}
		return tv
	case ir.OpConstFloat:
		tv := newValueFor(v.Type)
		for i := 0; i < tv.Num; i++ {
			tv.SetFloat(i, v.AuxFloat)
		}
		return tv
	case ir.OpGlobalRef:
		return w.globalValues[v.Aux.(*ir.Global).ID]
	default:
		return w.registers[v.ID]
	}
}

// newValueFor lays out a result buffer for a type: one lane per vector
// element, a single element otherwise.
func newValueFor(typ ir.Type) TypedValue {
	if vec, ok := typ.(*ir.VectorType); ok {
		return NewTypedValue(vec.Elem.Size(), vec.Num)
	}
	return NewTypedValue(typ.Size(), 1)
}

func (w *WorkItem) memoryFor(space ir.AddressSpace) *Memory {
	switch space {
	case ir.AddrSpacePrivate:
		return w.privateMemory
	case ir.AddrSpaceLocal:
		return w.group.localMemory
	default:
		return w.ctx.globalMemory
	}
}

func (w *WorkItem) execute(inst *ir.Value) (TypedValue, error) {
	switch inst.Op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpUDiv, ir.OpSDiv, ir.OpURem,
		ir.OpSRem, ir.OpAnd, ir.OpOr, ir.OpXor, ir.OpShl, ir.OpLShr,
		ir.OpAShr:
		return w.intBinop(inst), nil

	case ir.OpFAdd, ir.OpFSub, ir.OpFMul, ir.OpFDiv:
		return w.floatBinop(inst), nil

	case ir.OpEq, ir.OpNe, ir.OpULt, ir.OpULe, ir.OpUGt, ir.OpUGe,
		ir.OpSLt, ir.OpSLe, ir.OpSGt, ir.OpSGe:
		return w.intCompare(inst), nil

	case ir.OpFEq, ir.OpFNe, ir.OpFLt, ir.OpFLe, ir.OpFGt, ir.OpFGe:
		return w.floatCompare(inst), nil

	case ir.OpTrunc, ir.OpZExt:
		a := w.operand(inst.Args[0])
		r := newValueFor(inst.Type)
		for i := 0; i < r.Num; i++ {
			r.SetUint(i, a.Uint(i%a.Num))
		}
		return r, nil

	case ir.OpSExt:
		a := w.operand(inst.Args[0])
		r := newValueFor(inst.Type)
		for i := 0; i < r.Num; i++ {
			r.SetUint(i, uint64(a.Int(i%a.Num)))
		}
		return r, nil

	case ir.OpSIToFP:
		a := w.operand(inst.Args[0])
		r := newValueFor(inst.Type)
		for i := 0; i < r.Num; i++ {
			r.SetFloat(i, float64(a.Int(i%a.Num)))
		}
		return r, nil

	case ir.OpFPToSI:
		a := w.operand(inst.Args[0])
		r := newValueFor(inst.Type)
		for i := 0; i < r.Num; i++ {
			r.SetUint(i, uint64(int64(a.Float(i%a.Num))))
		}
		return r, nil

	case ir.OpSelect:
		if w.operand(inst.Args[0]).Uint(0) != 0 {
			return w.operand(inst.Args[1]).Clone(), nil
		}
		return w.operand(inst.Args[2]).Clone(), nil

	case ir.OpAlloca:
		typ := inst.Aux.(ir.Type)
		address, err := w.privateMemory.Allocate(typ.Size())
		if err != nil {
			return TypedValue{}, err
		}
		return NewPointerValue(address), nil

	case ir.OpLoad:
		return w.executeLoad(inst)

	case ir.OpStore:
		return TypedValue{}, w.executeStore(inst)

	case ir.OpGetElementPtr:
		ptype := inst.Args[0].Type.(*ir.PointerType)
		base := w.operand(inst.Args[0]).Pointer()
		index := w.operand(inst.Args[1]).Uint(0)
		return NewPointerValue(base + index*ptype.Elem.Size()), nil

	case ir.OpAtomic:
		return w.executeAtomic(inst)

	case ir.OpCall:
		return w.executeCall(inst)

	case ir.OpPhi:
		for i, pred := range inst.Block.Preds {
			if pred == w.prevBlock {
				return w.operand(inst.Args[i]).Clone(), nil
			}
		}
		return TypedValue{}, launchFault(FaultInvalidArgument,
			"phi in %s has no edge from %s", inst.Block, w.prevBlock)

	case ir.OpBarrier, ir.OpBr, ir.OpCondBr, ir.OpRet:
		return TypedValue{}, nil
	}

	return TypedValue{}, launchFault(FaultInvalidArgument,
		"cannot execute op %s", inst.Op)
}

func (w *WorkItem) executeLoad(inst *ir.Value) (TypedValue, error) {
	ptype := inst.Args[0].Type.(*ir.PointerType)
	address := w.operand(inst.Args[0]).Pointer()
	memory := w.memoryFor(ptype.Space)
	size := inst.Type.Size()

	data, err := memory.load(address, size)
	if err != nil {
		return TypedValue{}, err
	}
	w.ctx.notifyMemoryLoad(memory, w, address, size)

	r := newValueFor(inst.Type)
	copy(r.Data, data)
	return r, nil
}

func (w *WorkItem) executeStore(inst *ir.Value) error {
	ptype := inst.Args[0].Type.(*ir.PointerType)
	address := w.operand(inst.Args[0]).Pointer()
	memory := w.memoryFor(ptype.Space)
	value := w.operand(inst.Args[1])

	if err := memory.store(address, value.Data); err != nil {
		return err
	}
	w.ctx.notifyMemoryStore(memory, w, address, uint64(len(value.Data)), value.Data)
	return nil
}

func (w *WorkItem) executeAtomic(inst *ir.Value) (TypedValue, error) {
	op := ir.AtomicOp(inst.AuxInt)
	ptype := inst.Args[0].Type.(*ir.PointerType)
	address := w.operand(inst.Args[0]).Pointer()
	memory := w.memoryFor(ptype.Space)

	var operand, cmp uint32
	switch op {
	case ir.AtomicCmpxchg:
		cmp = uint32(w.operand(inst.Args[1]).Uint(0))
		operand = uint32(w.operand(inst.Args[2]).Uint(0))
	case ir.AtomicInc, ir.AtomicDec, ir.AtomicLoad:
		// no operand
	default:
		operand = uint32(w.operand(inst.Args[1]).Uint(0))
	}

	old, err := memory.atomic(op, address, operand, cmp)
	if err != nil {
		return TypedValue{}, err
	}
	if op != ir.AtomicStore {
		w.ctx.notifyMemoryAtomicLoad(memory, w, op, address, 4)
	}
	if op != ir.AtomicLoad {
		w.ctx.notifyMemoryAtomicStore(memory, w, op, address, 4)
	}

	r := NewTypedValue(4, 1)
	r.SetUint(0, uint64(old))
	return r, nil
}

func (w *WorkItem) executeCall(inst *ir.Value) (TypedValue, error) {
	name := inst.Aux.(string)
	switch name {
	case "get_work_dim":
		r := newValueFor(inst.Type)
		r.SetUint(0, uint64(w.inv.WorkDim))
		return r, nil
	case "get_global_id", "get_local_id", "get_group_id", "get_global_size",
		"get_local_size", "get_num_groups", "get_global_offset":
		dim := 0
		if len(inst.Args) > 0 {
			dim = int(w.operand(inst.Args[0]).Uint(0))
		}
		r := newValueFor(inst.Type)
		if dim > 2 {
			return r, nil
		}
		switch name {
		case "get_global_id":
			r.SetUint(0, w.globalID[dim])
		case "get_local_id":
			r.SetUint(0, w.localID[dim])
		case "get_group_id":
			r.SetUint(0, w.group.groupID[dim])
		case "get_global_size":
			r.SetUint(0, w.inv.GlobalSize[dim])
		case "get_local_size":
			r.SetUint(0, w.inv.LocalSize[dim])
		case "get_num_groups":
			r.SetUint(0, w.inv.NumGroups[dim])
		case "get_global_offset":
			r.SetUint(0, w.inv.GlobalOffset[dim])
		}
		return r, nil

	case "async_work_group_copy":
		return w.executeAsyncCopy(inst)

	case "wait_group_events":
		// Copies are performed with group attribution at the call
		// site, so the wait itself has nothing left to drain.
		return TypedValue{}, nil
	}

	return TypedValue{}, launchFault(FaultInvalidArgument,
		"call to unknown built-in %q", name)
}

// executeAsyncCopy performs an async_work_group_copy. The transfer is
// attributed to the work-group, not the calling item.
func (w *WorkItem) executeAsyncCopy(inst *ir.Value) (TypedValue, error) {
	dstType := inst.Args[0].Type.(*ir.PointerType)
	srcType := inst.Args[1].Type.(*ir.PointerType)
	dst := w.operand(inst.Args[0]).Pointer()
	src := w.operand(inst.Args[1]).Pointer()
	num := w.operand(inst.Args[2]).Uint(0)
	size := num * dstType.Elem.Size()

	err := w.group.copyMemory(
		w.memoryFor(dstType.Space), dst,
		w.memoryFor(srcType.Space), src, size)
	if err != nil {
		return TypedValue{}, err
	}

	if len(inst.Args) > 3 {
		return w.operand(inst.Args[3]).Clone(), nil
	}
	return NewTypedValue(8, 1), nil
}

func (w *WorkItem) intBinop(inst *ir.Value) TypedValue {
	a := w.operand(inst.Args[0])
	b := w.operand(inst.Args[1])
	r := newValueFor(inst.Type)
	bits := r.Size * 8
	for i := 0; i < r.Num; i++ {
		x := a.Uint(i % a.Num)
		y := b.Uint(i % b.Num)
		var z uint64
		switch inst.Op {
		case ir.OpAdd:
			z = x + y
		case ir.OpSub:
			z = x - y
		case ir.OpMul:
			z = x * y
		case ir.OpUDiv:
			if y != 0 {
				z = x / y
			}
		case ir.OpSDiv:
			if y != 0 {
				z = uint64(a.Int(i%a.Num) / b.Int(i%b.Num))
			}
		case ir.OpURem:
			if y != 0 {
				z = x % y
			}
		case ir.OpSRem:
			if y != 0 {
				z = uint64(a.Int(i%a.Num) % b.Int(i%b.Num))
			}
		case ir.OpAnd:
			z = x & y
		case ir.OpOr:
			z = x | y
		case ir.OpXor:
			z = x ^ y
		case ir.OpShl:
			z = x << (y % bits)
		case ir.OpLShr:
			z = x >> (y % bits)
		case ir.OpAShr:
			z = uint64(a.Int(i%a.Num) >> (y % bits))
		}
		r.SetUint(i, z)
	}
	return r
}

func (w *WorkItem) floatBinop(inst *ir.Value) TypedValue {
	a := w.operand(inst.Args[0])
	b := w.operand(inst.Args[1])
	r := newValueFor(inst.Type)
	for i := 0; i < r.Num; i++ {
		x := a.Float(i % a.Num)
		y := b.Float(i % b.Num)
		var z float64
		switch inst.Op {
		case ir.OpFAdd:
			z = x + y
		case ir.OpFSub:
			z = x - y
		case ir.OpFMul:
			z = x * y
		case ir.OpFDiv:
			z = x / y
		}
		r.SetFloat(i, z)
	}
	return r
}

func (w *WorkItem) intCompare(inst *ir.Value) TypedValue {
	a := w.operand(inst.Args[0])
	b := w.operand(inst.Args[1])
	r := newValueFor(inst.Type)
	for i := 0; i < r.Num; i++ {
		var t bool
		switch inst.Op {
		case ir.OpEq:
			t = a.Uint(i%a.Num) == b.Uint(i%b.Num)
		case ir.OpNe:
			t = a.Uint(i%a.Num) != b.Uint(i%b.Num)
		case ir.OpULt:
			t = a.Uint(i%a.Num) < b.Uint(i%b.Num)
		case ir.OpULe:
			t = a.Uint(i%a.Num) <= b.Uint(i%b.Num)
		case ir.OpUGt:
			t = a.Uint(i%a.Num) > b.Uint(i%b.Num)
		case ir.OpUGe:
			t = a.Uint(i%a.Num) >= b.Uint(i%b.Num)
		case ir.OpSLt:
			t = a.Int(i%a.Num) < b.Int(i%b.Num)
		case ir.OpSLe:
			t = a.Int(i%a.Num) <= b.Int(i%b.Num)
		case ir.OpSGt:
			t = a.Int(i%a.Num) > b.Int(i%b.Num)
		case ir.OpSGe:
			t = a.Int(i%a.Num) >= b.Int(i%b.Num)
		}
		if t {
			r.SetUint(i, 1)
		}
	}
	return r
}

func (w *WorkItem) floatCompare(inst *ir.Value) TypedValue {
	a := w.operand(inst.Args[0])
	b := w.operand(inst.Args[1])
	r := newValueFor(inst.Type)
	for i := 0; i < r.Num; i++ {
		x := a.Float(i % a.Num)
		y := b.Float(i % b.Num)
		var t bool
		switch inst.Op {
		case ir.OpFEq:
			t = x == y
		case ir.OpFNe:
			t = x != y
		case ir.OpFLt:
			t = x < y
		case ir.OpFLe:
			t = x <= y
		case ir.OpFGt:
			t = x > y
		case ir.OpFGe:
			t = x >= y
		}
		if t {
			r.SetUint(i, 1)
		}
	}
	return r
}
