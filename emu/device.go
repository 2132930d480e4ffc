package emu

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/math"
	"github.com/rs/xid"
)

// A KernelInvocation records one launch: the kernel, the normalized N-D
// range, and the group decomposition. Plugins receive it with
// kernelBegin/kernelEnd.
type KernelInvocation struct {
	ID     string
	Kernel *Kernel

	WorkDim      int
	GlobalOffset [3]uint64
	GlobalSize   [3]uint64
	LocalSize    [3]uint64
	NumGroups    [3]uint64

	ctx *Context
}

// A Device dispatches kernels over an N-D range. It owns the global
// memory region, which persists across launches in the same context, and
// the plugin registry.
type Device struct {
	ctx         *Context
	interactive bool

	// NumWorkers enables concurrent group execution when greater than
	// one. It only takes effect when every registered plugin is
	// thread-safe; otherwise groups run serially so notifications stay
	// single-threaded.
	NumWorkers int

	workGroups []*WorkGroup
}

// NewDevice creates a device with a fresh context. Interactive mode is
// selected by OCLGRIND_INTERACTIVE being the literal "1"; the hand-off
// happens only if a Controller plugin is registered at launch.
func NewDevice() *Device {
	d := &Device{
		ctx:        NewContext(),
		NumWorkers: 1,
	}
	if os.Getenv("OCLGRIND_INTERACTIVE") == "1" {
		d.interactive = true
	}
	return d
}

// GlobalMemory returns the region backing clCreateBuffer-style
// allocations. Host-side access surfaces as hostMemoryLoad/Store.
func (d *Device) GlobalMemory() *Memory {
	return d.ctx.GlobalMemory()
}

// AddPlugin registers an observer; invalid during a launch.
func (d *Device) AddPlugin(p Plugin) error {
	return d.ctx.AddPlugin(p)
}

// RemovePlugin unregisters an observer; invalid during a launch.
func (d *Device) RemovePlugin(p Plugin) error {
	return d.ctx.RemovePlugin(p)
}

// Run launches the kernel over the given range. Offsets and sizes beyond
// workDim default to offset 0, size 1, local size 1. Each local size
// must divide the corresponding global size and match any non-zero
// required work-group size; violations fail the launch before any group
// is created.
func (d *Device) Run(kernel *Kernel, workDim int,
	globalOffset, globalSize, localSize []uint64) error {
	if workDim < 1 || workDim > 3 {
		return d.launchError(launchFault(FaultInvalidWorkSize,
			"work dimension %d not in [1,3]", workDim))
	}

	inv := &KernelInvocation{
		ID:           xid.New().String(),
		Kernel:       kernel,
		WorkDim:      workDim,
		GlobalOffset: [3]uint64{0, 0, 0},
		GlobalSize:   [3]uint64{1, 1, 1},
		LocalSize:    [3]uint64{1, 1, 1},
		ctx:          d.ctx,
	}
	for i := 0; i < workDim; i++ {
		inv.GlobalSize[i] = globalSize[i]
		if i < len(globalOffset) && globalOffset[i] != 0 {
			inv.GlobalOffset[i] = globalOffset[i]
		}
		// An explicit zero must be kept so the work-size check below
		// rejects it; only unsupplied dimensions default to 1.
		if i < len(localSize) {
			inv.LocalSize[i] = localSize[i]
		}
	}

	reqd := kernel.RequiredWorkGroupSize()
	for i := 0; i < 3; i++ {
		if inv.LocalSize[i] == 0 || inv.GlobalSize[i]%inv.LocalSize[i] != 0 {
			return d.launchError(launchFault(FaultInvalidWorkSize,
				"local size %d does not divide global size %d in dimension %d",
				inv.LocalSize[i], inv.GlobalSize[i], i))
		}
		if reqd[i] != 0 && inv.LocalSize[i] != uint64(reqd[i]) {
			return d.launchError(launchFault(FaultInvalidWorkSize,
				"local size %d violates required work-group size %d in dimension %d",
				inv.LocalSize[i], reqd[i], i))
		}
		inv.NumGroups[i] = inv.GlobalSize[i] / inv.LocalSize[i]
	}

	if !kernel.allArgumentsBound() {
		return d.launchError(launchFault(FaultInvalidArgument,
			"kernel %s launched with unbound arguments", kernel.Name()))
	}

	d.ctx.running = true
	defer func() { d.ctx.running = false }()

	d.ctx.notifyKernelBegin(inv)

	if err := kernel.AllocateConstants(d.ctx.globalMemory); err != nil {
		d.ctx.Message(MessageError, err.Error())
		d.ctx.notifyKernelEnd(inv)
		return err
	}

	// Materialise groups in the flat row-major layout; bindings are
	// snapshotted per group, regions stay shared by reference.
	d.workGroups = make([]*WorkGroup, 0,
		inv.NumGroups[0]*inv.NumGroups[1]*inv.NumGroups[2])
	for k := uint64(0); k < inv.NumGroups[2]; k++ {
		for j := uint64(0); j < inv.NumGroups[1]; j++ {
			for i := uint64(0); i < inv.NumGroups[0]; i++ {
				d.workGroups = append(d.workGroups, newWorkGroup(inv, i, j, k))
			}
		}
	}

	if controller := d.controller(); d.interactive && controller != nil {
		controller.RunKernel(inv, d.workGroups)
	} else {
		d.runGroups()
	}

	d.ctx.notifyKernelEnd(inv)
	kernel.DeallocateConstants(d.ctx.globalMemory)
	d.workGroups = nil
	return nil
}

func (d *Device) launchError(err *Fault) error {
	d.ctx.Message(MessageError, err.Error())
	return err
}

func (d *Device) controller() Controller {
	for _, p := range d.ctx.plugins {
		if c, ok := p.(Controller); ok {
			return c
		}
	}
	return nil
}

// runGroups executes the materialised groups: serially in lexicographic
// order by default, or on a worker pool when NumWorkers allows it and
// every plugin is thread-safe.
func (d *Device) runGroups() {
	workers := math.MinInt(d.NumWorkers, len(d.workGroups))
	if workers > 1 && d.ctx.allThreadSafe() {
		workers = math.MinInt(workers, runtime.NumCPU())
		d.ctx.serial = false
		defer func() { d.ctx.serial = true }()

		groups := make(chan *WorkGroup)
		var wg sync.WaitGroup
		wg.Add(workers)
		for n := 0; n < workers; n++ {
			go func() {
				defer wg.Done()
				for g := range groups {
					g.Run()
				}
			}()
		}
		for _, g := range d.workGroups {
			groups <- g
		}
		close(groups)
		wg.Wait()
		return
	}

	for _, g := range d.workGroups {
		g.Run()
	}
}
