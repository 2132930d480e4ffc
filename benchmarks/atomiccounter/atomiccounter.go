// Package atomiccounter stresses global-memory atomics: every work-item
// increments one shared counter, so the final value must equal the
// global work size.
package atomiccounter

import (
	"encoding/binary"
	"fmt"

	"github.com/nido/Oclgrind/emu"
	"github.com/nido/Oclgrind/ir"
)

// A Benchmark holds the counter buffer and launch geometry.
type Benchmark struct {
	device *emu.Device

	N         uint64
	LocalSize uint64

	counter uint64
}

// NewBenchmark creates the benchmark with default sizes.
func NewBenchmark(device *emu.Device) *Benchmark {
	return &Benchmark{
		device:    device,
		N:         16,
		LocalSize: 4,
	}
}

// buildModule assembles:
//
//	kernel void count(global int *counter) {
//	    atomic_inc(counter);
//	}
func buildModule() *ir.Module {
	m := ir.NewModule()

	f := ir.NewFunction("count")
	counter := f.NewParam(ir.NewPointer(ir.Int32, ir.AddrSpaceGlobal))

	b := f.NewBlock()
	f.Atomic(b, ir.AtomicInc, counter)
	f.Ret(b, nil)

	m.AddFunction(f)
	return m
}

// Run allocates the counter, zeroes it, and launches the kernel.
func (b *Benchmark) Run() error {
	module := buildModule()
	kernel := emu.NewKernel(module.Function("count"), module)

	gm := b.device.GlobalMemory()
	var err error
	if b.counter, err = gm.Allocate(4); err != nil {
		return err
	}
	if err := gm.Store(b.counter, make([]byte, 4)); err != nil {
		return err
	}
	if err := kernel.SetArgument(0, emu.NewPointerValue(b.counter)); err != nil {
		return err
	}

	return b.device.Run(kernel, 1, nil,
		[]uint64{b.N}, []uint64{b.LocalSize})
}

// Verify checks the counter reached the global work size.
func (b *Benchmark) Verify() error {
	data, err := b.device.GlobalMemory().Load(b.counter, 4)
	if err != nil {
		return err
	}
	got := binary.LittleEndian.Uint32(data)
	if uint64(got) != b.N {
		return fmt.Errorf("counter is %d, want %d", got, b.N)
	}
	return nil
}
