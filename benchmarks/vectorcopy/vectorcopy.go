// Package vectorcopy is the simplest end-to-end benchmark: each
// work-item copies one 32-bit element from an input buffer to an output
// buffer at its global id.
package vectorcopy

import (
	"fmt"

	"github.com/nido/Oclgrind/emu"
	"github.com/nido/Oclgrind/ir"
)

// A Benchmark holds the buffers and kernel of one vector-copy run.
type Benchmark struct {
	device *emu.Device

	N         uint64
	LocalSize uint64

	in  uint64
	out uint64
}

// NewBenchmark creates the benchmark with default sizes.
func NewBenchmark(device *emu.Device) *Benchmark {
	return &Benchmark{
		device:    device,
		N:         1024,
		LocalSize: 16,
	}
}

// buildModule assembles:
//
//	kernel void copy(global int *in, global int *out) {
//	    size_t g = get_global_id(0);
//	    out[g] = in[g];
//	}
func buildModule() *ir.Module {
	m := ir.NewModule()

	f := ir.NewFunction("copy")
	in := f.NewParam(ir.NewPointer(ir.Int32, ir.AddrSpaceGlobal))
	out := f.NewParam(ir.NewPointer(ir.Int32, ir.AddrSpaceGlobal))

	b := f.NewBlock()
	g := f.Call(b, "get_global_id", ir.SizeT, f.ConstInt(ir.Int32, 0))
	src := f.NewValue(b, ir.OpGetElementPtr, in.Type, in, g)
	v := f.NewValue(b, ir.OpLoad, ir.Int32, src)
	dst := f.NewValue(b, ir.OpGetElementPtr, out.Type, out, g)
	f.NewValue(b, ir.OpStore, ir.Void, dst, v)
	f.Ret(b, nil)

	m.AddFunction(f)
	return m
}

// Run allocates the buffers, binds them, and launches the kernel.
func (b *Benchmark) Run() error {
	module := buildModule()
	kernel := emu.NewKernel(module.Function("copy"), module)

	gm := b.device.GlobalMemory()
	var err error
	if b.in, err = gm.Allocate(4 * b.N); err != nil {
		return err
	}
	if b.out, err = gm.Allocate(4 * b.N); err != nil {
		return err
	}

	input := emu.NewTypedValue(4, int(b.N))
	for i := 0; i < int(b.N); i++ {
		input.SetUint(i, uint64(i)+1)
	}
	if err := gm.Store(b.in, input.Data); err != nil {
		return err
	}

	if err := kernel.SetArgument(0, emu.NewPointerValue(b.in)); err != nil {
		return err
	}
	if err := kernel.SetArgument(1, emu.NewPointerValue(b.out)); err != nil {
		return err
	}

	return b.device.Run(kernel, 1, nil,
		[]uint64{b.N}, []uint64{b.LocalSize})
}

// Verify reads the output buffer back and checks every element.
func (b *Benchmark) Verify() error {
	data, err := b.device.GlobalMemory().Load(b.out, 4*b.N)
	if err != nil {
		return err
	}
	result := emu.TypedValue{Size: 4, Num: int(b.N), Data: data}
	for i := 0; i < int(b.N); i++ {
		if result.Uint(i) != uint64(i)+1 {
			return fmt.Errorf("element %d is %d, want %d",
				i, result.Uint(i), i+1)
		}
	}
	return nil
}
