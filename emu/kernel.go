package emu

import (
	"fmt"

	"github.com/nido/Oclgrind/ir"
)

// OpenCL kernel-argument address qualifier values, passed through the
// introspection API verbatim.
const (
	KernelArgAddressGlobal   = 0x119B
	KernelArgAddressLocal    = 0x119C
	KernelArgAddressConstant = 0x119D
	KernelArgAddressPrivate  = 0x119E
)

// A bindingKey names the owner of an argument binding: a formal
// parameter by index, or a module-scope variable by global ID. Value
// keys keep the argument map free of IR pointers.
type bindingKey struct {
	arg    int // parameter index, or -1
	global int // global variable ID, or -1
}

func argKey(index int) bindingKey { return bindingKey{arg: index, global: -1} }
func globalKey(id int) bindingKey { return bindingKey{arg: -1, global: id} }

// A binding pairs a key with its typed value. localPtr bindings hold
// offsets into the group's local region and are rebased per work-group.
type binding struct {
	key      bindingKey
	space    ir.AddressSpace
	localPtr bool
	value    TypedValue
}

// A Kernel is an immutable program plus mutable argument bindings. It is
// not safe to launch one Kernel from two dispatchers concurrently: the
// argument map and local-memory cursor mutate under SetArgument, and
// launches snapshot them.
type Kernel struct {
	function *ir.Function
	module   *ir.Module

	name              string
	reqdWorkGroupSize [3]uint32
	localMemory       uint64
	constants         []*ir.Global
	constantOwned     []uint64
	bindings          []binding
}

// NewKernel builds a kernel object for the named function of a module:
// records the name and any reqd_work_group_size metadata, reserves local
// offsets for module-scope local variables, and enumerates program-scope
// constants for per-launch staging.
func NewKernel(function *ir.Function, module *ir.Module) *Kernel {
	k := &Kernel{
		function: function,
		module:   module,
		name:     function.Name,
	}

	if md, ok := module.KernelMetadata(k.name); ok {
		k.reqdWorkGroupSize = md.ReqdWorkGroupSize
	}

	for _, g := range module.Globals {
		if g.Space == ir.AddrSpaceLocal {
			size := g.Type.Size()
			k.setBinding(binding{
				key:      globalKey(g.ID),
				space:    ir.AddrSpaceLocal,
				localPtr: true,
				value:    NewPointerValue(k.localMemory),
			})
			k.localMemory += size
		}
		if g.Const {
			k.constants = append(k.constants, g)
		}
	}

	return k
}

func (k *Kernel) setBinding(b binding) {
	for i := range k.bindings {
		if k.bindings[i].key == b.key {
			k.bindings[i] = b
			return
		}
	}
	k.bindings = append(k.bindings, b)
}

func (k *Kernel) bindingFor(key bindingKey) (binding, bool) {
	for _, b := range k.bindings {
		if b.key == key {
			return b, true
		}
	}
	return binding{}, false
}

// SetArgument binds formal parameter index. For local pointer parameters
// the value's Size is the requested dynamic local byte count: a fresh
// local offset is reserved and the local-memory size grows by the
// request. Vector parameters are re-laned so each lane is one element.
func (k *Kernel) SetArgument(index int, value TypedValue) error {
	if index < 0 || index >= len(k.function.Params) {
		return launchFault(FaultInvalidArgument,
			"argument index %d out of range for kernel %s", index, k.name)
	}

	param := k.function.Params[index]
	if ptype, ok := param.Type.(*ir.PointerType); ok && ptype.Space == ir.AddrSpaceLocal {
		k.setBinding(binding{
			key:      argKey(index),
			space:    ir.AddrSpaceLocal,
			localPtr: true,
			value:    NewPointerValue(k.localMemory),
		})
		k.localMemory += value.Size
		return nil
	}

	if value.Size*uint64(value.Num) != k.ArgumentSize(index) {
		return launchFault(FaultInvalidArgument,
			"argument %d of kernel %s needs %d bytes, got %d",
			index, k.name, k.ArgumentSize(index), value.Size*uint64(value.Num))
	}

	v := value.Clone()
	if vec, ok := param.Type.(*ir.VectorType); ok {
		v.Num = vec.Num
		v.Size = vec.Elem.Size()
	}

	space := ir.AddrSpacePrivate
	if ptype, ok := param.Type.(*ir.PointerType); ok {
		space = ptype.Space
	}
	k.setBinding(binding{key: argKey(index), space: space, value: v})
	return nil
}

// AllocateConstants stages every program-scope constant into the global
// region: one buffer per constant, initializer written element-by-element
// for arrays and directly for scalars. Initializer shapes the simulator
// cannot serialize are logged and skipped; the launch continues.
func (k *Kernel) AllocateConstants(memory *Memory) error {
	for _, g := range k.constants {
		size := g.Type.Size()
		address, err := memory.Allocate(size)
		if err != nil {
			return err
		}
		k.constantOwned = append(k.constantOwned, address)
		k.setBinding(binding{
			key:   globalKey(g.ID),
			space: ir.AddrSpaceConstant,
			value: NewPointerValue(address),
		})

		init := g.Init
		if init == nil {
			continue
		}
		switch init.Op {
		case ir.OpConstArray:
			elemSize := init.Args[0].Type.Size()
			for i, el := range init.Args {
				if err := storeConstant(memory, address+uint64(i)*elemSize, el); err != nil {
					memory.ctx.Message(MessageWarning, err.Error())
					break
				}
			}
		case ir.OpConstInt, ir.OpConstFloat:
			if err := storeConstant(memory, address, init); err != nil {
				memory.ctx.Message(MessageWarning, err.Error())
			}
		default:
			memory.ctx.Message(MessageWarning, launchFault(FaultUnhandledConstant,
				"constant %s has initializer %s", g.Name, init.Op).Error())
		}
	}
	return nil
}

// storeConstant serializes one scalar constant at address.
func storeConstant(memory *Memory, address uint64, c *ir.Value) error {
	size := c.Type.Size()
	v := NewTypedValue(size, 1)
	switch c.Op {
	case ir.OpConstInt:
		v.SetUint(0, uint64(c.AuxInt))
	case ir.OpConstFloat:
		v.SetFloat(0, c.AuxFloat)
	default:
		return launchFault(FaultUnhandledConstant,
			"cannot serialize %s element at 0x%x", c.Op, address)
	}
	return memory.store(address, v.Data)
}

// DeallocateConstants releases the buffers staged by AllocateConstants.
func (k *Kernel) DeallocateConstants(memory *Memory) {
	for _, address := range k.constantOwned {
		if err := memory.Deallocate(address); err != nil {
			memory.ctx.Message(MessageError, err.Error())
		}
	}
	k.constantOwned = k.constantOwned[:0]
}

// allArgumentsBound reports whether every formal parameter has a binding.
func (k *Kernel) allArgumentsBound() bool {
	for i := range k.function.Params {
		if _, ok := k.bindingFor(argKey(i)); !ok {
			return false
		}
	}
	return true
}

// Name returns the kernel function name.
func (k *Kernel) Name() string {
	return k.name
}

// RequiredWorkGroupSize returns the reqd_work_group_size triple; zeroes
// mean unconstrained.
func (k *Kernel) RequiredWorkGroupSize() [3]uint32 {
	return k.reqdWorkGroupSize
}

// NumArguments returns the number of formal parameters.
func (k *Kernel) NumArguments() int {
	return len(k.function.Params)
}

// ArgumentSize returns the pointer width for pointer parameters and the
// value width otherwise.
func (k *Kernel) ArgumentSize(index int) uint64 {
	return k.function.Params[index].Type.Size()
}

// ArgumentAddressSpace returns the OpenCL address qualifier of parameter
// index, using the CL_KERNEL_ARG_ADDRESS_* values.
func (k *Kernel) ArgumentAddressSpace(index int) int {
	ptype, ok := k.function.Params[index].Type.(*ir.PointerType)
	if !ok {
		return KernelArgAddressPrivate
	}
	switch ptype.Space {
	case ir.AddrSpaceGlobal:
		return KernelArgAddressGlobal
	case ir.AddrSpaceConstant:
		return KernelArgAddressConstant
	case ir.AddrSpaceLocal:
		return KernelArgAddressLocal
	}
	return KernelArgAddressPrivate
}

// LocalMemorySize returns the static local bytes plus any dynamic local
// argument requests so far.
func (k *Kernel) LocalMemorySize() uint64 {
	return k.localMemory
}

// String renders the kernel for debugger output.
func (k *Kernel) String() string {
	return fmt.Sprintf("kernel %s (%d args, %d bytes local)",
		k.name, k.NumArguments(), k.localMemory)
}
